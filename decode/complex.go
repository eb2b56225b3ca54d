// Complex packing (5.2/7.2) and complex packing with spatial differencing
// (5.3/7.3), grounded on original_source's decoder/complex module: three
// byte-aligned metadata arrays (group references, widths, lengths) followed
// by a tightly bit-packed run of per-group payloads, decoded in one pass
// since group boundaries aren't known ahead of the previous group's width.
package decode

import (
	"fmt"

	"github.com/sdifrance/grib2/bitio"
	"github.com/sdifrance/grib2/codetables"
	"github.com/sdifrance/grib2/numeric"
	"github.com/sdifrance/grib2/section"
)

// complexValue is a decoded-but-not-yet-scaled integer, or a missing-value
// sentinel that spatial differencing must pass through without updating
// its running state.
type complexValue struct {
	missing bool
	v       int64
}

// ComplexDecoder decodes Data Representation Template 5.2/7.2, and (when
// hdr carries a SpatialDifferencingOrder) 5.3/7.3.
type ComplexDecoder struct {
	hdr    *section.DataRepresentationTemplate2
	values []complexValue
	index  int
}

// NewComplexDecoder builds a decoder and eagerly walks the group structure:
// unlike simple packing, a group's byte offset depends on every group
// width and length before it, so there's no one-value-at-a-time read to
// defer. Next() still only ever hands the caller one value per call.
func NewComplexDecoder(hdr *section.DataRepresentationTemplate2, sec7 *section.Section7, numPoints int) (*ComplexDecoder, error) {
	if hdr.OriginalFieldType != 0 {
		return nil, &UnsupportedEncodingError{
			TemplateNumber: 2,
			Detail:         fmt.Sprintf("original field type %d is not floating point", hdr.OriginalFieldType),
		}
	}
	if hdr.GroupSplittingMethod != 1 {
		return nil, &UnsupportedEncodingError{TemplateNumber: 2, Detail: "group splitting method other than general"}
	}
	if !hdr.MissingValueManagement.Valid() {
		return nil, &UnsupportedEncodingError{TemplateNumber: 2, Detail: fmt.Sprintf("missing value management %d", hdr.MissingValueManagement)}
	}

	raw := sec7.Raw
	spatialDiff := hdr.SpatialDifferencingOrder != 0

	var ival1, ival2, imin int64
	offset := 0
	if spatialDiff {
		n := int(hdr.SpatialDifferencingExtraOctets)
		if n == 0 || n > 4 {
			return nil, &DecodeError{Detail: fmt.Sprintf("spatial differencing extra-descriptor width %d octets is out of range", n)}
		}
		order := 1
		if hdr.SpatialDifferencingOrder == 2 {
			order = 2
		}
		need := (order + 1) * n
		if len(raw) < need {
			return nil, &DecodeError{Detail: "section 7 too short for spatial differencing extra descriptors"}
		}
		ival1 = numeric.GribSignedInt(beUint(raw[0:n]), n*8)
		if order == 2 {
			ival2 = numeric.GribSignedInt(beUint(raw[n:2*n]), n*8)
		}
		imin = numeric.GribSignedInt(beUint(raw[order*n:need]), n*8)
		offset = need
	}

	groupValues, err := decodeGroups(hdr, raw[offset:])
	if err != nil {
		return nil, err
	}
	if len(groupValues) != numPoints {
		return nil, &DecodeError{Detail: fmt.Sprintf("complex packing produced %d values, want %d", len(groupValues), numPoints)}
	}

	if spatialDiff {
		reverseSpatialDifferencing(groupValues, hdr.SpatialDifferencingOrder, ival1, ival2, imin)
	}

	return &ComplexDecoder{hdr: hdr, values: groupValues}, nil
}

// Next implements bitmap.ValueSource.
func (d *ComplexDecoder) Next() (float32, bool, error) {
	if d.index >= len(d.values) {
		return 0, false, nil
	}
	v := d.values[d.index]
	d.index++
	if v.missing {
		return numeric.QuietNaN32(), true, nil
	}
	return numeric.ScaledValue(d.hdr.Reference, v.v, d.hdr.BinaryScaleFactor, d.hdr.DecimalScaleFactor), true, nil
}

func beUint(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

// decodeGroups reads the three byte-aligned metadata arrays (group
// references, widths, lengths) and then the tightly bit-packed group
// payloads, expanding each group into its flat run of complexValues.
func decodeGroups(hdr *section.DataRepresentationTemplate2, data []byte) ([]complexValue, error) {
	g := int(hdr.NumberOfGroups)
	if g == 0 {
		return nil, nil
	}

	r := bitio.New(data)
	refs := make([]int64, g)
	for i := range refs {
		x, err := r.ReadBits(int(hdr.Nbits))
		if err != nil {
			return nil, &DecodeError{Detail: "reading group reference: " + err.Error()}
		}
		refs[i] = int64(x)
	}
	r.Align()

	widths := make([]int, g)
	for i := range widths {
		x, err := r.ReadBits(int(hdr.GroupWidthBits))
		if err != nil {
			return nil, &DecodeError{Detail: "reading group width: " + err.Error()}
		}
		widths[i] = int(hdr.GroupWidthReference) + int(x)
	}
	r.Align()

	lengths := make([]int, g)
	for i := 0; i < g-1; i++ {
		x, err := r.ReadBits(int(hdr.GroupLengthBits))
		if err != nil {
			return nil, &DecodeError{Detail: "reading group length: " + err.Error()}
		}
		lengths[i] = int(hdr.GroupLengthReference) + int(x)*int(hdr.GroupLengthIncrement)
	}
	lengths[g-1] = int(hdr.GroupLengthLast)
	r.Align()

	var out []complexValue
	mvm := uint8(hdr.MissingValueManagement)
	for i := 0; i < g; i++ {
		ref, width, length := refs[i], widths[i], lengths[i]
		if width == 0 {
			// spec decision: a zero-width group always expands to its
			// reference value; missing-value substitution only applies
			// when the group actually carries width>0 packed bits.
			for j := 0; j < length; j++ {
				out = append(out, complexValue{v: ref})
			}
			continue
		}
		missing1 := int64(numeric.MaxUnsigned(width))
		missing2 := missing1 - 1
		for j := 0; j < length; j++ {
			x, err := r.ReadBits(width)
			if err != nil {
				return nil, &DecodeError{Detail: fmt.Sprintf("reading group %d value %d: %s", i, j, err.Error())}
			}
			v := int64(x)
			switch {
			case mvm > 0 && v == missing1:
				out = append(out, complexValue{missing: true})
			case mvm == 2 && v == missing2:
				out = append(out, complexValue{missing: true})
			default:
				out = append(out, complexValue{v: v + ref})
			}
		}
	}
	return out, nil
}

// reverseSpatialDifferencing undoes the first- or second-order differencing
// applied before packing, leaving missing entries untouched and without
// disturbing the running prev/prev1/prev2 state. Grounded on
// original_source's FirstOrder/SecondOrderSpatialDifferencingDecodeIterator,
// whose test cases show a missing value passing through unchanged between
// two otherwise-consecutive normal values.
func reverseSpatialDifferencing(values []complexValue, order codetables.SpatialDifferencingOrder, ival1, ival2, imin int64) {
	count := 0
	var prev1, prev2 int64
	for i := range values {
		if values[i].missing {
			continue
		}
		d := values[i].v + imin
		switch order {
		case codetables.SpatialDifferencingFirstOrder:
			if count == 0 {
				values[i].v = ival1
			} else {
				values[i].v = d + prev1
			}
			prev1 = values[i].v
			count++
		case codetables.SpatialDifferencingSecondOrder:
			switch count {
			case 0:
				values[i].v = ival1
				prev2 = values[i].v
			case 1:
				values[i].v = ival2
				prev1 = values[i].v
			default:
				values[i].v = d + 2*prev1 - prev2
				prev2 = prev1
				prev1 = values[i].v
			}
			count++
		}
	}
}
