// Package grid turns a submessage's Section 3 grid definition template
// into a lazy sequence of (lat, lon) pairs in the scanning order its
// scanning-mode flags declare, per spec.md §4.I.
package grid

import (
	"fmt"

	"github.com/sdifrance/grib2/codetables"
	"github.com/sdifrance/grib2/section"
)

// Point is one grid point's geographic coordinate, in degrees.
type Point struct {
	Lat, Lon float64
}

// Iterator is the pull-based interface every grid template implements.
type Iterator interface {
	Next() (Point, bool, error)
}

// UnsupportedGridError reports a grid definition template, or a supported
// template with an unsupported flag combination (quasi-regular grids,
// irregular point lists, a projection capability built without its flag).
type UnsupportedGridError struct {
	TemplateNumber uint16
	Detail         string
}

func (e *UnsupportedGridError) Error() string {
	return fmt.Sprintf("grid: unsupported grid definition template %d: %s", e.TemplateNumber, e.Detail)
}

// ScanningMode decodes Section 3's scanning-mode octet per spec.md §4.I's
// four-bit table, MSB first.
type ScanningMode uint8

func (m ScanningMode) IScansNegative() bool       { return m&0x80 != 0 }
func (m ScanningMode) JScansPositive() bool       { return m&0x40 != 0 }
func (m ScanningMode) AdjacentJConsecutive() bool { return m&0x20 != 0 }
func (m ScanningMode) Boustrophedonic() bool      { return m&0x10 != 0 }

// scanOrder walks an Ni x Nj grid's (i, j) index pairs in the sequence
// Section 3's scanning-mode octet declares, per spec.md §4.I's four-bit
// table: row-major in i by default, column-major in j when
// AdjacentJConsecutive is set, and reversing the inner-loop direction on
// every other outer step when Boustrophedonic is set. Every concrete grid
// iterator asks scanOrder for the next (i, j) pair and computes that pair's
// Point itself — the coordinate math never has to know the walk order.
type scanOrder struct {
	outerLen, innerLen int
	adjacentJ          bool
	boustrophedonic    bool
	outer, inner       int
}

func newScanOrder(ni, nj int, mode ScanningMode) *scanOrder {
	s := &scanOrder{
		outerLen:        nj,
		innerLen:        ni,
		adjacentJ:       mode.AdjacentJConsecutive(),
		boustrophedonic: mode.Boustrophedonic(),
	}
	if s.adjacentJ {
		s.outerLen, s.innerLen = ni, nj
	}
	return s
}

func (s *scanOrder) next() (i, j int, ok bool) {
	if s.outer >= s.outerLen {
		return 0, 0, false
	}
	innerPos := s.inner
	if s.boustrophedonic && s.outer%2 == 1 {
		innerPos = s.innerLen - 1 - s.inner
	}
	if s.adjacentJ {
		i, j = s.outer, innerPos
	} else {
		i, j = innerPos, s.outer
	}
	s.inner++
	if s.inner >= s.innerLen {
		s.inner = 0
		s.outer++
	}
	return i, j, true
}

// New builds the grid iterator matching sec3's template number.
func New(sec3 *section.Section3) (Iterator, error) {
	switch codetables.GridDefinitionTemplate(sec3.TemplateNumber) {
	case codetables.GDTLatLon:
		tmpl, ok := sec3.Template.(*section.GridDefinitionTemplate0)
		if !ok {
			return nil, &UnsupportedGridError{TemplateNumber: sec3.TemplateNumber, Detail: "section 3 template 0 did not parse structurally"}
		}
		return NewLatLonIterator(tmpl)
	case codetables.GDTGaussianLatLon:
		tmpl, ok := sec3.Template.(*section.GridDefinitionTemplate0)
		if !ok {
			return nil, &UnsupportedGridError{TemplateNumber: sec3.TemplateNumber, Detail: "section 3 template 40 did not parse structurally"}
		}
		return NewGaussianIterator(tmpl)
	case codetables.GDTPolarStereographic:
		tmpl, ok := sec3.Template.(*section.GridDefinitionTemplate20)
		if !ok {
			return nil, &UnsupportedGridError{TemplateNumber: sec3.TemplateNumber, Detail: "section 3 template 20 did not parse structurally"}
		}
		return NewPolarStereographicIterator(tmpl)
	case codetables.GDTLambertConformal:
		tmpl, ok := sec3.Template.(*section.GridDefinitionTemplate30)
		if !ok {
			return nil, &UnsupportedGridError{TemplateNumber: sec3.TemplateNumber, Detail: "section 3 template 30 did not parse structurally"}
		}
		return NewLambertConformalIterator(tmpl)
	default:
		return nil, &UnsupportedGridError{
			TemplateNumber: sec3.TemplateNumber,
			Detail:         "no grid iterator registered for this grid definition template",
		}
	}
}
