//go:build gridpointsproj

// Polar stereographic grids need an actual map projection, not a closed
// form like 3.0/3.40's direct lat/lon math, so this capability is gated
// behind the gridpointsproj build tag the way JPEG 2000 is gated behind
// jpeg2000unpack: only built when the caller opts into the extra
// dependency.
package grid

import (
	"github.com/sdifrance/grib2/section"
	"github.com/wroge/wgs84"
)

// PolarStereographicIterator decodes Grid Definition Template 3.20.
//
// Grounded on original_source/src/grid/polar_stereographic.rs's latlons():
// project the first grid point to the plane, walk an evenly spaced (x, y)
// grid in projected metres honoring the scanning-mode signs, then
// unproject each point back to lon/lat. The original wires this through
// the proj crate behind its own "gridpoints-proj" feature; this module
// substitutes github.com/wroge/wgs84, the closest pure-Go projection
// library in the retrieval pack (see DESIGN.md — this substitution's exact
// call shape is an assumption, not a retrieved file).
type PolarStereographicIterator struct {
	toLonLat func(x, y, z float64) (float64, float64, float64)
	x0, y0   float64
	dx, dy   float64
	order    *scanOrder
}

// NewPolarStereographicIterator builds an iterator over tmpl's Ni x Nj
// polar stereographic grid.
func NewPolarStereographicIterator(tmpl *section.GridDefinitionTemplate20) (*PolarStereographicIterator, error) {
	mode := ScanningMode(tmpl.ScanningMode)
	if tmpl.Ni == 0 || tmpl.Nj == 0 {
		return nil, &UnsupportedGridError{TemplateNumber: 20, Detail: "quasi-regular or zero-sized grid is not supported"}
	}
	if tmpl.ProjectionCentreFlag&0x40 != 0 {
		return nil, &UnsupportedGridError{TemplateNumber: 20, Detail: "bipolar and equatorial projection centre is not supported"}
	}

	major, minor := earthRadii{
		Shape:                tmpl.Shape,
		ScaleFactorRadius:    tmpl.ScaleFactorRadius,
		ScaledValueRadius:    tmpl.ScaledValueRadius,
		ScaleFactorMajorAxis: tmpl.ScaleFactorMajorAxis,
		ScaledValueMajorAxis: tmpl.ScaledValueMajorAxis,
		ScaleFactorMinorAxis: tmpl.ScaleFactorMinorAxis,
		ScaledValueMinorAxis: tmpl.ScaledValueMinorAxis,
	}.resolve()

	latOrigin := 90.0
	if tmpl.ProjectionCentreFlag&0x80 != 0 {
		latOrigin = -90.0
	}
	lov := float64(tmpl.Lov) * scaledDegree
	lad := float64(tmpl.Lad) * scaledDegree

	crs := wgs84.PolarStereographic(lov, latOrigin, lad, major, minor, 0, 0)
	toXY := wgs84.LonLat().To(crs)
	toLonLat := crs.To(wgs84.LonLat())

	lon1 := float64(tmpl.Lo1) * scaledDegree
	lat1 := float64(tmpl.La1) * scaledDegree
	x0, y0, _ := toXY(lon1, lat1, 0)

	dx := float64(tmpl.Dx) / 1000
	dy := float64(tmpl.Dy) / 1000
	if mode.IScansNegative() {
		dx = -dx
	}
	if !mode.JScansPositive() {
		dy = -dy
	}

	return &PolarStereographicIterator{
		toLonLat: toLonLat,
		x0:       x0, y0: y0, dx: dx, dy: dy,
		order: newScanOrder(int(tmpl.Ni), int(tmpl.Nj), mode),
	}, nil
}

// Next implements Iterator.
func (it *PolarStereographicIterator) Next() (Point, bool, error) {
	i, j, ok := it.order.next()
	if !ok {
		return Point{}, false, nil
	}
	x := it.x0 + it.dx*float64(i)
	y := it.y0 + it.dy*float64(j)
	lon, lat, _ := it.toLonLat(x, y, 0)
	return Point{Lat: lat, Lon: normalizeLon(lon)}, true, nil
}
