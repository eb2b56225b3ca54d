// PNG packing (5.41/7.41) decodes §7 as a grayscale PNG whose pixel values
// are the simple-packing integers, per spec.md §4.H.4 ("otherwise as
// simple packing"). PNG support is always built in, unlike JPEG 2000 and
// CCSDS, since the decoder lives in the standard library.
package decode

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/sdifrance/grib2/numeric"
	"github.com/sdifrance/grib2/section"
)

// PNGDecoder decodes Data Representation Template 5.41/7.41.
type PNGDecoder struct {
	hdr    *section.DataRepresentationTemplate0
	total  int
	pixels []uint32
	index  int
}

// NewPNGDecoder decodes sec7's PNG image and prepares to reconstruct
// physical values from its pixel stream.
func NewPNGDecoder(hdr *section.DataRepresentationTemplate0, sec7 *section.Section7, numPoints int) (*PNGDecoder, error) {
	if hdr.Nbits == 0 {
		return &PNGDecoder{hdr: hdr, total: numPoints}, nil
	}
	img, err := png.Decode(bytes.NewReader(sec7.Raw))
	if err != nil {
		return nil, &DecodeError{Detail: "png packing: " + err.Error()}
	}

	pixels, err := grayPixelValues(img, hdr.Nbits)
	if err != nil {
		return nil, err
	}
	if len(pixels) != numPoints {
		return nil, &DecodeError{Detail: fmt.Sprintf("png packing: image carries %d pixels, want %d", len(pixels), numPoints)}
	}
	return &PNGDecoder{hdr: hdr, total: numPoints, pixels: pixels}, nil
}

// grayPixelValues extracts the packed nbit-wide codes GRIB2 stores as a
// grayscale PNG's pixel values. For bit depths under 8 (1, 2, 4),
// image/png's decoder returns an *image.Gray whose bytes have already been
// bit-replicated up to the full 0-255 range (e.g. a 1-bit 1 becomes 0xFF,
// a 2-bit 1 becomes 0x55) rather than the raw code GRIB2 packed — this
// divides that replication back out using the same multiplier the decoder
// applied, recovering the original 0..2^nbits-1 value exactly.
func grayPixelValues(img image.Image, nbits uint8) ([]uint32, error) {
	bounds := img.Bounds()
	n := bounds.Dx() * bounds.Dy()
	out := make([]uint32, 0, n)
	switch g := img.(type) {
	case *image.Gray:
		var replication uint32 = 1
		if nbits > 0 && nbits < 8 {
			replication = 255 / (uint32(1)<<nbits - 1)
		}
		for _, p := range g.Pix {
			out = append(out, uint32(p)/replication)
		}
	case *image.Gray16:
		for i := 0; i+1 < len(g.Pix); i += 2 {
			out = append(out, uint32(g.Pix[i])<<8|uint32(g.Pix[i+1]))
		}
	default:
		return nil, &DecodeError{Detail: fmt.Sprintf("png packing: unsupported PNG color model %T, want grayscale", img)}
	}
	return out, nil
}

// Next implements bitmap.ValueSource.
func (d *PNGDecoder) Next() (float32, bool, error) {
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
