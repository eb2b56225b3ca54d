// Equirectangular (3.0) and Gaussian (3.40) grids share the same i-direction
// handling: longitude is uniform in i, honoring the scanning-mode sign.
// They differ only in how latitude is derived — linear for 3.0, Legendre
// roots for 3.40 — so latlon.go covers the linear case and gaussian.go
// overrides latitude generation.
package grid

import (
	"github.com/sdifrance/grib2/section"
)

const scaledDegree = 1e-6 // GRIB2 lat/lon fields are scaled by 1e6.

// LatLonIterator decodes Grid Definition Template 3.0, an equirectangular
// (regular lat/lon) grid.
type LatLonIterator struct {
	lat0  float64
	dLat  float64
	lon0  float64
	dLon  float64
	order *scanOrder
}

// NewLatLonIterator builds an iterator over tmpl's Ni x Nj grid.
//
// Per spec.md §4.I's Open Question decision: when the declared (La1, La2)
// pair disagrees with the scanning-mode j-bit about direction, the pair
// wins and Δφ is re-derived from it; the declared Dj increment (the
// template's DjOrN field) is not read.
func NewLatLonIterator(tmpl *section.GridDefinitionTemplate0) (*LatLonIterator, error) {
	mode := ScanningMode(tmpl.ScanningMode)
	if tmpl.Ni == 0 || tmpl.Nj == 0 {
		return nil, &UnsupportedGridError{TemplateNumber: 0, Detail: "quasi-regular or zero-sized grid is not supported"}
	}

	la1 := float64(tmpl.La1) * scaledDegree
	la2 := float64(tmpl.La2) * scaledDegree
	lo1 := float64(tmpl.Lo1) * scaledDegree

	// Δφ always comes from the declared endpoints, never from a trusted
	// increment: La1 and La2 pin down both the magnitude and the sign, so
	// a scan-j bit that disagrees with their ordering is simply outvoted.
	dLat := (la2 - la1) / float64(int(tmpl.Nj)-1)

	// Δλ is the declared increment's magnitude; Lo1/Lo2 commonly wrap
	// around the antimeridian and aren't a reliable sign source, so only
	// the scanning-mode bit decides direction here.
	dLon := float64(tmpl.Di) * scaledDegree
	if mode.IScansNegative() {
		dLon = -dLon
	}

	return &LatLonIterator{
		lat0: la1, dLat: dLat,
		lon0: lo1, dLon: dLon,
		order: newScanOrder(int(tmpl.Ni), int(tmpl.Nj), mode),
	}, nil
}

// Next implements Iterator, emitting points in the order scanOrder derives
// from the scanning-mode octet's adjacent-j-consecutive and boustrophedonic
// bits.
func (it *LatLonIterator) Next() (Point, bool, error) {
	i, j, ok := it.order.next()
	if !ok {
		return Point{}, false, nil
	}
	return Point{
		Lat: it.lat0 + float64(j)*it.dLat,
		Lon: normalizeLon(it.lon0 + float64(i)*it.dLon),
	}, true, nil
}

func normalizeLon(lon float64) float64 {
	for lon < 0 {
		lon += 360
	}
	for lon >= 360 {
		lon -= 360
	}
	return lon
}
