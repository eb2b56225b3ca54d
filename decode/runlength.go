// Run-length packing (5.200/7.200), grounded on original_source's
// rleunpack: fixed-width symbols where a value at or below MaxValue starts
// a new run (and is itself the run's first occurrence), and a value above
// MaxValue is a positional-system extension digit multiplying the running
// base by an accumulating power, appended as more copies of the run's
// value.
package decode

import (
	"fmt"
	"math"

	"github.com/sdifrance/grib2/bitio"
	"github.com/sdifrance/grib2/section"
)

// RunLengthDecoder decodes Data Representation Template 5.200/7.200.
type RunLengthDecoder struct {
	values []float32
	index  int
}

// NewRunLengthDecoder expands sec7's run-length stream into numPoints
// physical values.
func NewRunLengthDecoder(hdr *section.DataRepresentationTemplate200, sec7 *section.Section7, numPoints int) (*RunLengthDecoder, error) {
	levels, err := rleUnpack(sec7.Raw, int(hdr.Nbits), hdr.MaxValue, numPoints)
	if err != nil {
		return nil, err
	}

	levelMap := make([]float32, 1+len(hdr.LevelValues))
	levelMap[0] = float32(math.NaN())
	factor := math.Pow(10, -float64(hdr.DecimalScaleFactor))
	for i, lv := range hdr.LevelValues {
		levelMap[i+1] = float32(float64(lv) * factor)
	}

	values := make([]float32, len(levels))
	for i, lv := range levels {
		if int(lv) >= len(levelMap) {
			return nil, &DecodeError{Detail: fmt.Sprintf("run-length: decoded level %d has no entry in the level table", lv)}
		}
		values[i] = levelMap[lv]
	}
	return &RunLengthDecoder{values: values}, nil
}

// Next implements bitmap.ValueSource.
func (d *RunLengthDecoder) Next() (float32, bool, error) {
	if d.index >= len(d.values) {
		return 0, false, nil
	}
	v := d.values[d.index]
	d.index++
	return v, true, nil
}

func rleUnpack(data []byte, nbit int, maxv uint16, expectedLen int) ([]uint16, error) {
	rlbase := uint64(maxv) + 1
	lngu := (uint64(1) << uint(nbit)) - rlbase
	if lngu == 0 {
		return nil, &DecodeError{Detail: "run-length: no symbol values left for extension digits (nbits too small for MaxValue)"}
	}

	out := make([]uint16, 0, expectedLen)
	r := bitio.New(data)
	var cached uint16
	haveCached := false
	exp := uint64(1)

	for r.Remaining() >= int64(nbit) {
		raw, err := r.ReadBits(nbit)
		if err != nil {
			return nil, &DecodeError{Detail: "run-length: " + err.Error()}
		}
		v := uint16(raw)
		if uint64(v) < rlbase {
			out = append(out, v)
			cached = v
			haveCached = true
			exp = 1
			continue
		}
		if !haveCached {
			return nil, &DecodeError{Detail: "run-length: extension digit with no preceding run value"}
		}
		length := (uint64(v) - rlbase) * exp
		for i := uint64(0); i < length; i++ {
			out = append(out, cached)
		}
		exp *= lngu
	}

	if expectedLen >= 0 && len(out) != expectedLen {
		return nil, &DecodeError{Detail: fmt.Sprintf("run-length: decoded %d values, want %d", len(out), expectedLen)}
	}
	return out, nil
}
