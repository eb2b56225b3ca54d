package grib2

import (
	"fmt"

	"github.com/sdifrance/grib2/bitmap"
	"github.com/sdifrance/grib2/codetables"
	"github.com/sdifrance/grib2/decode"
	"github.com/sdifrance/grib2/grid"
	"github.com/sdifrance/grib2/scanner"
	"github.com/sdifrance/grib2/section"
)

// Submessage is an immutable 7-slot reference bundle over one decoded
// submessage's sections, per spec.md §3. Section 2 (local use) has no
// accessor here. Bitmap() is never nil: the scanner rejects a section 7
// with no section 6 in scope.
type Submessage struct {
	raw scanner.Submessage
}

func (s *Submessage) Indicator() *section.Section0      { return s.raw.Section0 }
func (s *Submessage) Identification() *section.Section1 { return s.raw.Section1 }
func (s *Submessage) GridDef() *section.Section3        { return s.raw.Section3 }
func (s *Submessage) ProdDef() *section.Section4        { return s.raw.Section4 }
func (s *Submessage) DataRepr() *section.Section5       { return s.raw.Section5 }
func (s *Submessage) Bitmap() *section.Section6         { return s.raw.Section6 }
func (s *Submessage) Data() *section.Section7           { return s.raw.Section7 }

// Discipline is a convenience accessor for Indicator().Discipline.
func (s *Submessage) Discipline() codetables.Discipline {
	return s.raw.Section0.Discipline
}

// NumEncodedPoints is the number of points Section 5 actually encodes
// values for — may be fewer than GridShape's Ni*Nj when a bitmap is
// present, per spec.md §4.F.
func (s *Submessage) NumEncodedPoints() int {
	return int(s.raw.Section5.NumEncodedPoints)
}

// GridShape returns (Ni, Nj) from the grid definition template's own
// Ni/Nj fields (templates 3.0, 3.20, 3.30, 3.40); any other template
// reports UnsupportedGrid.
func (s *Submessage) GridShape() (ni, nj int, err error) {
	switch tmpl := s.raw.Section3.Template.(type) {
	case *section.GridDefinitionTemplate0:
		return int(tmpl.Ni), int(tmpl.Nj), nil
	case *section.GridDefinitionTemplate20:
		return int(tmpl.Ni), int(tmpl.Nj), nil
	case *section.GridDefinitionTemplate30:
		return int(tmpl.Ni), int(tmpl.Nj), nil
	default:
		return 0, 0, &UnsupportedGrid{TemplateNumber: s.raw.Section3.TemplateNumber, Detail: "grid shape is not known for this template"}
	}
}

// LatLons returns a lazy iterator over this submessage's grid-point
// coordinates, in the same order Values() serves decoded field values.
func (s *Submessage) LatLons() (grid.Iterator, error) {
	return grid.New(s.raw.Section3)
}

// Values returns a lazy iterator over this submessage's decoded field
// values: a packing decoder's output, merged against the bitmap (if any)
// so missing points report numeric.QuietNaN32() in place, per spec.md
// §4.G.
func (s *Submessage) Values() (bitmap.ValueSource, error) {
	src, err := decode.New(s.raw.Section5, s.raw.Section7)
	if err != nil {
		return nil, err
	}
	total := int(s.raw.Section3.NumDataPoints)
	return bitmap.NewIterator(s.raw.Section6, total, src), nil
}

// String renders a one-line summary of this submessage, mirroring the
// teacher lineage's grib1.Message.String().
func (s *Submessage) String() string {
	return fmt.Sprintf("submessage[%d.%d] discipline=%s category=%d number=%d reftime=%s",
		s.raw.MessageIndex, s.raw.SubmessageIndex,
		s.raw.Section0.Discipline,
		productCategory(s.raw.Section4),
		productNumber(s.raw.Section4),
		formatUtcDateTime(s.ReferenceTime()),
	)
}

func productCategory(sec4 *section.Section4) int {
	if tmpl, ok := sec4.Template.(*section.ProductDefinitionTemplate0); ok {
		return int(tmpl.ParameterCategory)
	}
	return -1
}

func productNumber(sec4 *section.Section4) int {
	if tmpl, ok := sec4.Template.(*section.ProductDefinitionTemplate0); ok {
		return int(tmpl.ParameterNumber)
	}
	return -1
}
