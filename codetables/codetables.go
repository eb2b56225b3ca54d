// Package codetables holds the static, process-global WMO code tables the
// decoder needs for control-flow decisions, not presentation. Every lookup
// function here returns a typed value or an "unknown" variant; none of
// them can fail, matching spec.md's "never fail" requirement for a
// well-formed-but-unrecognised code.
package codetables

import "fmt"

// Discipline is WMO code table 0.0 (GRIB master table discipline).
type Discipline uint8

const (
	DisciplineMeteorological Discipline = 0
	DisciplineHydrological   Discipline = 1
	DisciplineLandSurface    Discipline = 2
	DisciplineSatelliteSpace Discipline = 3
	DisciplineOceanographic  Discipline = 10
	DisciplineUnknown        Discipline = 255 // sentinel; see Discipline.Known
)

// Known reports whether d matches a discipline this registry recognises.
func (d Discipline) Known() bool {
	switch d {
	case DisciplineMeteorological, DisciplineHydrological, DisciplineLandSurface,
		DisciplineSatelliteSpace, DisciplineOceanographic:
		return true
	default:
		return false
	}
}

func (d Discipline) String() string {
	switch d {
	case DisciplineMeteorological:
		return "meteorological products"
	case DisciplineHydrological:
		return "hydrological products"
	case DisciplineLandSurface:
		return "land surface products"
	case DisciplineSatelliteSpace:
		return "satellite/space products"
	case DisciplineOceanographic:
		return "oceanographic products"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(d))
	}
}

// LookupDiscipline decodes code table 0.0, returning DisciplineUnknown
// rather than an error for any code this registry does not recognise. The
// raw code is not kept: every unrecognised code maps to the same value.
func LookupDiscipline(code uint8) Discipline {
	d := Discipline(code)
	if d.Known() {
		return d
	}
	return DisciplineUnknown
}

// ShapeOfEarth is WMO code table 3.2, needed by the grid engine to decide
// whether the earth radius is spherical or ellipsoidal and where the scale
// factor/value pairs in section 3 octets 15-30 come from.
type ShapeOfEarth uint8

const (
	ShapeSphericalRadius6367470             ShapeOfEarth = 0
	ShapeSphericalRadiusSpecified           ShapeOfEarth = 1
	ShapeOblateIAU1965                      ShapeOfEarth = 2
	ShapeOblateSpecifiedKm                  ShapeOfEarth = 3
	ShapeOblateIAG_GRS80                    ShapeOfEarth = 4
	ShapeOblateWGS84                        ShapeOfEarth = 5
	ShapeSphericalRadius6371229             ShapeOfEarth = 6
	ShapeOblateSpecifiedM                   ShapeOfEarth = 7
	ShapeSphericalRadius6371200             ShapeOfEarth = 8
	ShapeOblateSpecifiedMAlt                ShapeOfEarth = 9
)

// Radii returns (majorAxis, minorAxis) in metres for shapes whose axes are
// fixed by the table itself rather than by scaled values in the section 3
// payload. ok is false for shapes 1, 3, 7, 9 where the caller must read the
// scale factor/scaled value octets instead.
func (s ShapeOfEarth) Radii() (major, minor float64, ok bool) {
	switch s {
	case ShapeSphericalRadius6367470:
		return 6367470, 6367470, true
	case ShapeOblateIAU1965:
		return 6378160, 6356775, true
	case ShapeOblateIAG_GRS80:
		return 6378137, 6356752.314, true
	case ShapeOblateWGS84:
		return 6378137, 6356752.314245, true
	case ShapeSphericalRadius6371229:
		return 6371229, 6371229, true
	case ShapeSphericalRadius6371200:
		return 6371200, 6371200, true
	default:
		return 0, 0, false
	}
}

func (s ShapeOfEarth) String() string {
	switch s {
	case ShapeSphericalRadius6367470:
		return "spherical, radius 6367470 m"
	case ShapeSphericalRadiusSpecified:
		return "spherical, radius specified by data producer"
	case ShapeOblateIAU1965:
		return "oblate spheroid, IAU 1965"
	case ShapeOblateSpecifiedKm:
		return "oblate spheroid, axes specified in km"
	case ShapeOblateIAG_GRS80:
		return "oblate spheroid, IAG-GRS80"
	case ShapeOblateWGS84:
		return "oblate spheroid, WGS84"
	case ShapeSphericalRadius6371229:
		return "spherical, radius 6371229 m"
	case ShapeOblateSpecifiedM:
		return "oblate spheroid, axes specified in m"
	case ShapeSphericalRadius6371200:
		return "spherical, radius 6371200 m"
	case ShapeOblateSpecifiedMAlt:
		return "oblate spheroid, axes specified in m (alternate)"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// FixedSurfaceUnit is WMO code table 4.5 (type of first/second fixed
// surface), used by the product-definition decoder to interpret the
// surface-value octets.
type FixedSurfaceUnit uint8

const (
	SurfaceGroundOrWaterSurface FixedSurfaceUnit = 1
	SurfaceIsobaricSurfacePa    FixedSurfaceUnit = 100
	SurfaceMeanSeaLevel         FixedSurfaceUnit = 101
	SurfaceSpecifiedHeightAboveGround FixedSurfaceUnit = 103
	SurfaceSpecifiedHeightAboveMeanSeaLevel FixedSurfaceUnit = 102
	SurfaceIsothermalLevelK     FixedSurfaceUnit = 20
	SurfaceMissing              FixedSurfaceUnit = 255
)

func (s FixedSurfaceUnit) Unit() string {
	switch s {
	case SurfaceIsobaricSurfacePa:
		return "Pa"
	case SurfaceMeanSeaLevel, SurfaceSpecifiedHeightAboveMeanSeaLevel, SurfaceSpecifiedHeightAboveGround:
		return "m"
	case SurfaceIsothermalLevelK:
		return "K"
	case SurfaceGroundOrWaterSurface:
		return ""
	default:
		return "?"
	}
}

func (s FixedSurfaceUnit) String() string {
	switch s {
	case SurfaceGroundOrWaterSurface:
		return "ground or water surface"
	case SurfaceIsobaricSurfacePa:
		return "isobaric surface"
	case SurfaceMeanSeaLevel:
		return "mean sea level"
	case SurfaceSpecifiedHeightAboveMeanSeaLevel:
		return "specified height above mean sea level"
	case SurfaceSpecifiedHeightAboveGround:
		return "specified height above ground"
	case SurfaceIsothermalLevelK:
		return "isothermal level"
	case SurfaceMissing:
		return "missing"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// LookupFixedSurfaceUnit decodes code table 4.5.
func LookupFixedSurfaceUnit(code uint8) FixedSurfaceUnit {
	return FixedSurfaceUnit(code)
}

// MissingValueManagement is WMO code table 5.5, controlling whether complex
// packing treats the primary/secondary sentinels of a group with non-zero
// width as missing. Zero-width groups are never affected by it.
type MissingValueManagement uint8

const (
	MissingNone      MissingValueManagement = 0
	MissingPrimary   MissingValueManagement = 1
	MissingPrimaryAndSecondary MissingValueManagement = 2
)

func (m MissingValueManagement) Valid() bool {
	return m <= MissingPrimaryAndSecondary
}

// SpatialDifferencingOrder is WMO code table 5.6.
type SpatialDifferencingOrder uint8

const (
	SpatialDifferencingFirstOrder  SpatialDifferencingOrder = 1
	SpatialDifferencingSecondOrder SpatialDifferencingOrder = 2
)

// LookupSpatialDifferencingOrder decodes code table 5.6, reporting ok=false
// for any code other than 1 or 2 (the table defines no other values as of
// the current WMO manual revision, but an unrecognised code must not
// panic).
func LookupSpatialDifferencingOrder(code uint8) (SpatialDifferencingOrder, bool) {
	switch SpatialDifferencingOrder(code) {
	case SpatialDifferencingFirstOrder:
		return SpatialDifferencingFirstOrder, true
	case SpatialDifferencingSecondOrder:
		return SpatialDifferencingSecondOrder, true
	default:
		return 0, false
	}
}

// DataRepresentationTemplate is WMO code table 5.0, naming which packing
// scheme a section 5 payload uses. This registry only lists the templates
// §4.H of the spec implements; any other value reports false from
// Supported, and section parsing keeps the raw template number with an
// opaque payload.
type DataRepresentationTemplate uint16

const (
	DRTSimple                      DataRepresentationTemplate = 0
	DRTComplex                     DataRepresentationTemplate = 2
	DRTComplexSpatialDifferencing  DataRepresentationTemplate = 3
	DRTJPEG2000                    DataRepresentationTemplate = 40
	DRTPNG                         DataRepresentationTemplate = 41
	DRTCCSDS                       DataRepresentationTemplate = 42
	DRTRunLength                   DataRepresentationTemplate = 200
)

// Supported reports whether this build implements the given template
// number (independent of whether the build tag gating an external codec
// is enabled — that check happens in package decode).
func (t DataRepresentationTemplate) Supported() bool {
	switch t {
	case DRTSimple, DRTComplex, DRTComplexSpatialDifferencing, DRTJPEG2000, DRTPNG, DRTCCSDS, DRTRunLength:
		return true
	default:
		return false
	}
}

// GridDefinitionTemplate is WMO code table 3.1, naming which grid layout
// section 3's payload uses.
type GridDefinitionTemplate uint16

const (
	GDTLatLon             GridDefinitionTemplate = 0
	GDTRotatedLatLon      GridDefinitionTemplate = 1
	GDTPolarStereographic GridDefinitionTemplate = 20
	GDTLambertConformal   GridDefinitionTemplate = 30
	GDTGaussianLatLon     GridDefinitionTemplate = 40
)

func (t GridDefinitionTemplate) Supported() bool {
	switch t {
	case GDTLatLon, GDTPolarStereographic, GDTLambertConformal, GDTGaussianLatLon:
		return true
	default:
		return false
	}
}
