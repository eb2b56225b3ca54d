// Package bitmap expands a section 6 bitmap into a per-grid-point
// present/missing mask, interleaving a packing decoder's output with the
// IEEE 754 quiet NaN sentinel at missing positions. Bit addressing is
// MSB-first, grounded on Geal-AI-grib2hrrr's applyBitmap/bitmapBit.
package bitmap

import (
	"fmt"

	"github.com/sdifrance/grib2/numeric"
	"github.com/sdifrance/grib2/section"
)

// ValueSource is the pull-based interface a packing decoder's output
// satisfies: one value per present grid point, consumed in order.
type ValueSource interface {
	Next() (float32, bool, error)
}

// Bit reports whether grid point i (0-based) has a value present in bits,
// MSB-first within each byte. Indices beyond the bitmap's length report
// false, matching the reference behavior of treating a short bitmap as
// "nothing more is present."
func Bit(bits []byte, i int) bool {
	byteIdx := i / 8
	if byteIdx >= len(bits) {
		return false
	}
	return (bits[byteIdx]>>uint(7-(i%8)))&1 == 1
}

// CountSet counts set bits among the first totalPoints positions.
func CountSet(bits []byte, totalPoints int) int {
	n := 0
	for i := 0; i < totalPoints; i++ {
		if Bit(bits, i) {
			n++
		}
	}
	return n
}

// Iterator lazily produces the length-totalPoints sequence a decoded
// submessage exposes to callers: decoder output at present positions,
// numeric.QuietNaN32() at positions the bitmap marks absent.
type Iterator struct {
	sec6   *section.Section6
	total  int
	index  int
	values ValueSource
}

// NewIterator builds a bitmap-aware iterator over a decoder's raw output.
// sec6 may be nil, meaning "no bitmap section at all" (every point present).
func NewIterator(sec6 *section.Section6, totalPoints int, values ValueSource) *Iterator {
	return &Iterator{sec6: sec6, total: totalPoints, values: values}
}

// Len returns the remaining number of points this iterator will produce,
// decreasing by exactly one per Next() call — spec.md's size-hint property.
func (it *Iterator) Len() int {
	return it.total - it.index
}

// Next returns the next grid point's value, or ok=false once totalPoints
// values have been produced.
func (it *Iterator) Next() (float32, bool, error) {
	if it.index >= it.total {
		return 0, false, nil
	}
	present := true
	if it.sec6 != nil && it.sec6.Indicator == section.BitmapPresent {
		present = Bit(it.sec6.Bits, it.index)
	} else if it.sec6 != nil && it.sec6.Indicator != section.BitmapAbsent {
		return 0, false, fmt.Errorf("bitmap: section 6 indicator %d was not resolved to present/absent before decode", it.sec6.Indicator)
	}
	it.index++
	if !present {
		return numeric.QuietNaN32(), true, nil
	}
	v, ok, err := it.values.Next()
	if err != nil {
		return 0, false, err
	}
	if !ok {
		return 0, false, fmt.Errorf("bitmap: decoder exhausted before bitmap's present-point count")
	}
	return v, true, nil
}

// Expand drains the iterator into a slice, for callers that want the whole
// field at once rather than pulling lazily.
func Expand(sec6 *section.Section6, totalPoints int, values ValueSource) ([]float32, error) {
	it := NewIterator(sec6, totalPoints, values)
	out := make([]float32, 0, totalPoints)
	for {
		v, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out, nil
}
