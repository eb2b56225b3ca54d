//go:build !jpeg2000unpack

package decode

import "github.com/sdifrance/grib2/section"

// NewJPEG2000Decoder reports UnsupportedTemplateError when this build was
// compiled without the jpeg2000unpack tag.
func NewJPEG2000Decoder(hdr *section.DataRepresentationTemplate0, sec7 *section.Section7, numPoints int) (*JPEG2000Decoder, error) {
	return nil, &UnsupportedTemplateError{TemplateNumber: 40, Detail: "built without the jpeg2000unpack tag"}
}

// JPEG2000Decoder is an uninstantiable placeholder in builds without JPEG
// 2000 support, kept so callers can type-switch on *JPEG2000Decoder
// regardless of build configuration.
type JPEG2000Decoder struct{}

// Next is never reachable: NewJPEG2000Decoder always fails in this build.
func (d *JPEG2000Decoder) Next() (float32, bool, error) {
	return 0, false, &UnsupportedTemplateError{TemplateNumber: 40, Detail: "built without the jpeg2000unpack tag"}
}
