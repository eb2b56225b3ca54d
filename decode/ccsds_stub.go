package decode

import "github.com/sdifrance/grib2/section"

// NewCCSDSDecoder always fails: no pure-Go CCSDS/libaec binding exists in
// this module's dependency pack (see DESIGN.md). There is no
// ccsdsunpack-tagged counterpart the way there is for JPEG 2000 — nothing
// in the corpus to wire it to.
func NewCCSDSDecoder(hdr *section.DataRepresentationTemplate42, sec7 *section.Section7, numPoints int) (*CCSDSDecoder, error) {
	return nil, &UnsupportedTemplateError{TemplateNumber: 42, Detail: "no CCSDS/AEC decoder is available"}
}

// CCSDSDecoder is an uninstantiable placeholder; NewCCSDSDecoder always
// fails.
type CCSDSDecoder struct{}

// Next is never reachable.
func (d *CCSDSDecoder) Next() (float32, bool, error) {
	return 0, false, &UnsupportedTemplateError{TemplateNumber: 42, Detail: "no CCSDS/AEC decoder is available"}
}
