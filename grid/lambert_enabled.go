//go:build gridpointsproj

package grid

import (
	"github.com/sdifrance/grib2/section"
	"github.com/wroge/wgs84"
)

// LambertConformalIterator decodes Grid Definition Template 3.30, the same
// project-then-walk-the-plane approach as PolarStereographicIterator,
// grounded on original_source/src/grid/lambert.rs's latlons().
type LambertConformalIterator struct {
	toLonLat func(x, y, z float64) (float64, float64, float64)
	x0, y0   float64
	dx, dy   float64
	order    *scanOrder
}

// NewLambertConformalIterator builds an iterator over tmpl's Ni x Nj
// Lambert conformal conic grid.
func NewLambertConformalIterator(tmpl *section.GridDefinitionTemplate30) (*LambertConformalIterator, error) {
	mode := ScanningMode(tmpl.ScanningMode)
	if tmpl.Ni == 0 || tmpl.Nj == 0 {
		return nil, &UnsupportedGridError{TemplateNumber: 30, Detail: "quasi-regular or zero-sized grid is not supported"}
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

	lov := float64(tmpl.Lov) * scaledDegree
	lad := float64(tmpl.Lad) * scaledDegree
	latin1 := float64(tmpl.Latin1) * scaledDegree
	latin2 := float64(tmpl.Latin2) * scaledDegree

	crs := wgs84.LambertConformalConic2SP(lov, lad, latin1, latin2, major, minor, 0, 0)
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

	return &LambertConformalIterator{
		toLonLat: toLonLat,
		x0:       x0, y0: y0, dx: dx, dy: dy,
		order: newScanOrder(int(tmpl.Ni), int(tmpl.Nj), mode),
	}, nil
}

// Next implements Iterator.
func (it *LambertConformalIterator) Next() (Point, bool, error) {
	i, j, ok := it.order.next()
	if !ok {
		return Point{}, false, nil
	}
	x := it.x0 + it.dx*float64(i)
	y := it.y0 + it.dy*float64(j)
	lon, lat, _ := it.toLonLat(x, y, 0)
	return Point{Lat: lat, Lon: normalizeLon(lon)}, true, nil
}
