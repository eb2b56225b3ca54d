// Package decode turns a submessage's Section 5 template plus Section 7
// payload into a lazy sequence of physical-unit float32 values, one per
// encoded grid point. Every decoder here implements bitmap.ValueSource so
// callers thread the same pull loop regardless of packing scheme.
//
// This mirrors Geal-AI-grib2hrrr's unpackDRS0: skip the section's 5-byte
// header, read N fixed-width integers MSB-first, apply the scaled-value
// formula. The difference is that simple packing here never materializes
// the whole field eagerly — Next() is called once per present grid point by
// package bitmap. The complex, run-length, PNG and JPEG 2000 decoders do
// unpack the whole field when they are built.
package decode

import (
	"fmt"

	"github.com/sdifrance/grib2/bitio"
	"github.com/sdifrance/grib2/numeric"
	"github.com/sdifrance/grib2/section"
)

// SimpleDecoder decodes Data Representation Template 5.0/7.0.
type SimpleDecoder struct {
	hdr      *section.DataRepresentationTemplate0
	r        *bitio.Reader
	total    int
	index    int
	constant bool
	value    float32
}

// NewSimpleDecoder builds a decoder for simple packing over sec7's payload.
// numPoints is Section 5's NumEncodedPoints.
func NewSimpleDecoder(hdr *section.DataRepresentationTemplate0, sec7 *section.Section7, numPoints int) *SimpleDecoder {
	d := &SimpleDecoder{hdr: hdr, total: numPoints}
	if hdr.Nbits == 0 {
		d.constant = true
		d.value = numeric.ScaledConstant(hdr.Reference, hdr.DecimalScaleFactor)
		return d
	}
	d.r = bitio.New(sec7.Raw)
	return d
}

// Next implements bitmap.ValueSource.
func (d *SimpleDecoder) Next() (float32, bool, error) {
	if d.index >= d.total {
		return 0, false, nil
	}
	d.index++
	if d.constant {
		return d.value, true, nil
	}
	x, err := d.r.ReadBits(int(d.hdr.Nbits))
	if err != nil {
		return 0, false, fmt.Errorf("decode: simple packing value %d: %w", d.index-1, err)
	}
	return numeric.ScaledValue(d.hdr.Reference, int64(x), d.hdr.BinaryScaleFactor, d.hdr.DecimalScaleFactor), true, nil
}
