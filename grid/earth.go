package grid

import (
	"math"

	"github.com/sdifrance/grib2/codetables"
)

// earthRadii is the subset of Section 3's earth-shape octets every
// projected grid template (3.20, 3.30) carries identically, per WMO code
// table 3.2.
type earthRadii struct {
	Shape                codetables.ShapeOfEarth
	ScaleFactorRadius    uint8
	ScaledValueRadius    uint32
	ScaleFactorMajorAxis uint8
	ScaledValueMajorAxis uint32
	ScaleFactorMinorAxis uint8
	ScaledValueMinorAxis uint32
}

// resolve returns (majorAxis, minorAxis) in metres, falling back to the
// section's scaled fields for the shapes code table 3.2 leaves to the
// producer (1, 3, 7, 9); codetables.ShapeOfEarth.Radii handles the rest.
func (e earthRadii) resolve() (major, minor float64) {
	if maj, min, ok := e.Shape.Radii(); ok {
		return maj, min
	}
	switch e.Shape {
	case codetables.ShapeSphericalRadiusSpecified:
		r := scaledAxis(e.ScaleFactorRadius, e.ScaledValueRadius)
		return r, r
	case codetables.ShapeOblateSpecifiedKm:
		return scaledAxis(e.ScaleFactorMajorAxis, e.ScaledValueMajorAxis) * 1000,
			scaledAxis(e.ScaleFactorMinorAxis, e.ScaledValueMinorAxis) * 1000
	default: // 7, 9: axes already specified in metres
		return scaledAxis(e.ScaleFactorMajorAxis, e.ScaledValueMajorAxis),
			scaledAxis(e.ScaleFactorMinorAxis, e.ScaledValueMinorAxis)
	}
}

func scaledAxis(scaleFactor uint8, scaledValue uint32) float64 {
	return float64(scaledValue) / math.Pow(10, float64(scaleFactor))
}
