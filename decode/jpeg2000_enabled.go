//go:build jpeg2000unpack

// JPEG 2000 packing (5.40/7.40), grounded on the codestream marker layout
// in mrjoshuak-go-jpeg2000__markers.go — the pack's only JP2 implementation.
// Gated behind the jpeg2000unpack build tag since decoding a full JP2
// codestream is a heavier dependency than most callers of this module want
// to carry by default.
package decode

import (
	"bytes"
	"fmt"

	jpeg2000 "github.com/mrjoshuak/go-jpeg2000"

	"github.com/sdifrance/grib2/numeric"
	"github.com/sdifrance/grib2/section"
)

// JPEG2000Decoder decodes Data Representation Template 5.40/7.40.
type JPEG2000Decoder struct {
	hdr    *section.DataRepresentationTemplate0
	total  int
	pixels []uint32
	index  int
}

// NewJPEG2000Decoder decodes sec7's JPEG 2000 codestream into a pixel
// stream, reconstructed with the scaled-value formula.
func NewJPEG2000Decoder(hdr *section.DataRepresentationTemplate0, sec7 *section.Section7, numPoints int) (*JPEG2000Decoder, error) {
	if hdr.Nbits == 0 {
		return &JPEG2000Decoder{hdr: hdr, total: numPoints}, nil
	}
	img, err := jpeg2000.Decode(bytes.NewReader(sec7.Raw))
	if err != nil {
		return nil, &DecodeError{Detail: "jpeg2000 packing: " + err.Error()}
	}
	pixels, err := grayPixelValues(img)
	if err != nil {
		return nil, err
	}
	if len(pixels) != numPoints {
		return nil, &DecodeError{Detail: fmt.Sprintf("jpeg2000 packing: image carries %d pixels, want %d", len(pixels), numPoints)}
	}
	return &JPEG2000Decoder{hdr: hdr, total: numPoints, pixels: pixels}, nil
}

// Next implements bitmap.ValueSource.
func (d *JPEG2000Decoder) Next() (float32, bool, error) {
	if d.index >= d.total {
		return 0, false, nil
	}
	d.index++
	if d.hdr.Nbits == 0 {
		return numeric.ScaledConstant(d.hdr.Reference, d.hdr.DecimalScaleFactor), true, nil
	}
	v := d.pixels[d.index-1]
	return numeric.ScaledValue(d.hdr.Reference, int64(v), d.hdr.BinaryScaleFactor, d.hdr.DecimalScaleFactor), true, nil
}
