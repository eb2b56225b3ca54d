// Dispatch from a submessage's Section 5 template number to the matching
// packing decoder, per spec.md §4.H.
package decode

import (
	"fmt"

	"github.com/sdifrance/grib2/codetables"
	"github.com/sdifrance/grib2/section"
)

// ValueSource has the same method set as bitmap.ValueSource, so every
// decoder New returns can be passed straight to bitmap.NewIterator.
type ValueSource interface {
	Next() (float32, bool, error)
}

// New builds the packing decoder matching sec5's template number.
// numPoints is sec5.NumEncodedPoints, the length of the sequence the
// returned decoder will produce before reporting ok=false.
func New(sec5 *section.Section5, sec7 *section.Section7) (ValueSource, error) {
	numPoints := int(sec5.NumEncodedPoints)
	switch tmpl := codetables.DataRepresentationTemplate(sec5.TemplateNumber); tmpl {
	case codetables.DRTSimple:
		hdr, ok := sec5.Template.(*section.DataRepresentationTemplate0)
		if !ok {
			return nil, &DecodeError{Detail: "section 5 template 0 did not parse structurally"}
		}
		return NewSimpleDecoder(hdr, sec7, numPoints), nil
	case codetables.DRTComplex, codetables.DRTComplexSpatialDifferencing:
		hdr, ok := sec5.Template.(*section.DataRepresentationTemplate2)
		if !ok {
			return nil, &DecodeError{Detail: fmt.Sprintf("section 5 template %d did not parse structurally", sec5.TemplateNumber)}
		}
		return NewComplexDecoder(hdr, sec7, numPoints)
	case codetables.DRTJPEG2000:
		hdr, ok := sec5.Template.(*section.DataRepresentationTemplate40)
		if !ok {
			return nil, &DecodeError{Detail: "section 5 template 40 did not parse structurally"}
		}
		return NewJPEG2000Decoder(&hdr.DataRepresentationTemplate0, sec7, numPoints)
	case codetables.DRTPNG:
		hdr, ok := sec5.Template.(*section.DataRepresentationTemplate41)
		if !ok {
			return nil, &DecodeError{Detail: "section 5 template 41 did not parse structurally"}
		}
		return NewPNGDecoder(&hdr.DataRepresentationTemplate0, sec7, numPoints)
	case codetables.DRTCCSDS:
		hdr, ok := sec5.Template.(*section.DataRepresentationTemplate42)
		if !ok {
			return nil, &DecodeError{Detail: "section 5 template 42 did not parse structurally"}
		}
		return NewCCSDSDecoder(hdr, sec7, numPoints)
	case codetables.DRTRunLength:
		hdr, ok := sec5.Template.(*section.DataRepresentationTemplate200)
		if !ok {
			return nil, &DecodeError{Detail: "section 5 template 200 did not parse structurally"}
		}
		return NewRunLengthDecoder(hdr, sec7, numPoints)
	default:
		return nil, &UnsupportedTemplateError{
			TemplateNumber: sec5.TemplateNumber,
			Detail:         "no decoder registered for this data representation template",
		}
	}
}
