//go:build !gridpointsproj

package grid

import "github.com/sdifrance/grib2/section"

// LambertConformalIterator is an uninstantiable placeholder; build with
// -tags gridpointsproj to get a working one.
type LambertConformalIterator struct{}

// NewLambertConformalIterator always fails without the gridpointsproj
// build tag.
func NewLambertConformalIterator(tmpl *section.GridDefinitionTemplate30) (*LambertConformalIterator, error) {
	return nil, &UnsupportedGridError{TemplateNumber: 30, Detail: "built without the gridpointsproj tag"}
}

// Next is never reachable.
func (it *LambertConformalIterator) Next() (Point, bool, error) {
	return Point{}, false, &UnsupportedGridError{TemplateNumber: 30, Detail: "built without the gridpointsproj tag"}
}
