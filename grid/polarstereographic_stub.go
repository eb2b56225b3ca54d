//go:build !gridpointsproj

package grid

import "github.com/sdifrance/grib2/section"

// PolarStereographicIterator is an uninstantiable placeholder; build with
// -tags gridpointsproj to get a working one.
type PolarStereographicIterator struct{}

// NewPolarStereographicIterator always fails without the gridpointsproj
// build tag: this module has no projection math in its default build, the
// same way JPEG 2000 has none without jpeg2000unpack.
func NewPolarStereographicIterator(tmpl *section.GridDefinitionTemplate20) (*PolarStereographicIterator, error) {
	return nil, &UnsupportedGridError{TemplateNumber: 20, Detail: "built without the gridpointsproj tag"}
}

// Next is never reachable.
func (it *PolarStereographicIterator) Next() (Point, bool, error) {
	return Point{}, false, &UnsupportedGridError{TemplateNumber: 20, Detail: "built without the gridpointsproj tag"}
}
