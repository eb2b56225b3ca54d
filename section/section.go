// Package section decodes one GRIB2 section header plus payload into a
// typed structure, following the same per-section "parseBytes(data) (int,
// error)" idiom the GRIB1 parser in this module's lineage uses. A section
// whose template number isn't one this build implements is retained as an
// OpaqueTemplate so the rest of the submessage stays inspectable; only an
// attempt to decode it later fails.
package section

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sdifrance/grib2/codetables"
	"github.com/sdifrance/grib2/numeric"
)

// Header is the common {length, section_number} prefix every section after
// 0 and 8 begins with.
type Header struct {
	Number uint8
	Length uint32
}

// ParseHeader reads the 5-byte length+number prefix shared by sections
// 1-7. It does not consume the payload.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < 5 {
		return Header{}, fmt.Errorf("section: header needs 5 bytes, got %d", len(data))
	}
	length := be32(data[0:4])
	if length < 5 {
		return Header{}, fmt.Errorf("section: declared length %d is less than the 5-byte header itself", length)
	}
	return Header{Number: data[4], Length: length}, nil
}

func be16(b []byte) uint16 { return uint16(b[0])<<8 | uint16(b[1]) }
func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
func be64(b []byte) uint64 {
	var v uint64
	for _, c := range b[:8] {
		v = v<<8 | uint64(c)
	}
	return v
}

// OpaqueTemplate preserves the raw bytes of a template this build does not
// structurally understand, keyed by its template number.
type OpaqueTemplate struct {
	Number uint16
	Raw    []byte
}

// Section0 is the 16-octet message indicator.
type Section0 struct {
	Discipline  codetables.Discipline
	Edition     uint8
	TotalLength uint64
}

// ParseSection0 parses the indicator section and returns the number of
// bytes consumed (always 16 for a well-formed section).
func ParseSection0(data []byte) (*Section0, int, error) {
	if len(data) < 16 {
		return nil, 0, fmt.Errorf("section0: need 16 bytes, got %d", len(data))
	}
	if got := string(data[0:4]); got != "GRIB" {
		return nil, 0, errors.Errorf("section0: magic = %q, want %q", got, "GRIB")
	}
	edition := data[7]
	if edition != 2 {
		return nil, 0, errors.Errorf("section0: edition = %d, want 2", edition)
	}
	return &Section0{
		Discipline:  codetables.LookupDiscipline(data[6]),
		Edition:     edition,
		TotalLength: be64(data[8:16]),
	}, 16, nil
}

// Section1 is the identification section.
type Section1 struct {
	OriginatingCentre       uint16
	OriginatingSubCentre    uint16
	MasterTablesVersion     uint8
	LocalTablesVersion      uint8
	SignificanceOfRefTime   uint8
	Year                    uint16
	Month, Day              uint8
	Hour, Minute, Second    uint8
	ProductionStatus        uint8
	TypeOfData              uint8
}

// ParseSection1 parses section 1. Returns bytes consumed (== header.Length).
func ParseSection1(data []byte, header Header) (*Section1, int, error) {
	n := int(header.Length)
	if len(data) < n || n < 21 {
		return nil, 0, fmt.Errorf("section1: declared length %d exceeds available %d bytes or is too short", n, len(data))
	}
	p := data[5:n]
	return &Section1{
		OriginatingCentre:     be16(p[0:2]),
		OriginatingSubCentre:  be16(p[2:4]),
		MasterTablesVersion:   p[4],
		LocalTablesVersion:    p[5],
		SignificanceOfRefTime: p[6],
		Year:                  be16(p[7:9]),
		Month:                 p[9],
		Day:                   p[10],
		Hour:                  p[11],
		Minute:                p[12],
		Second:                p[13],
		ProductionStatus:      p[14],
		TypeOfData:            p[15],
	}, n, nil
}

// Section2 is the opaque local-use section; its content is producer
// defined and is never validated, per spec.md §9.
type Section2 struct {
	Raw []byte
}

// ParseSection2 retains the payload verbatim.
func ParseSection2(data []byte, header Header) (*Section2, int, error) {
	n := int(header.Length)
	if len(data) < n {
		return nil, 0, fmt.Errorf("section2: declared length %d exceeds available %d bytes", n, len(data))
	}
	return &Section2{Raw: append([]byte(nil), data[5:n]...)}, n, nil
}

// Section3 is the grid definition section.
type Section3 struct {
	Source                   uint8
	NumDataPoints            uint32
	NumOctetsOptionalList    uint8
	InterpretationOfList     uint8
	TemplateNumber           uint16
	Template                 interface{} // GridDefinitionTemplate0/20/30/40 or OpaqueTemplate
}

// ParseSection3 parses section 3, dispatching the template tail by number.
func ParseSection3(data []byte, header Header) (*Section3, int, error) {
	n := int(header.Length)
	if len(data) < n || n < 14 {
		return nil, 0, fmt.Errorf("section3: declared length %d exceeds available %d bytes or is too short", n, len(data))
	}
	p := data[5:n]
	s := &Section3{
		Source:                p[0],
		NumDataPoints:         be32(p[1:5]),
		NumOctetsOptionalList: p[5],
		InterpretationOfList:  p[6],
		TemplateNumber:        be16(p[7:9]),
	}
	tail := p[9:]
	tmpl, err := parseGridTemplate(codetables.GridDefinitionTemplate(s.TemplateNumber), tail)
	if err != nil {
		return nil, 0, errors.Wrap(err, "section3")
	}
	s.Template = tmpl
	return s, n, nil
}

// GridDefinitionTemplate0 covers 3.0 (lat/lon) and 3.40 (Gaussian), which
// share every field except the j-direction increment: 3.0 declares Dj, 3.40
// declares N (parallels between pole and equator) in the same 4 octets.
type GridDefinitionTemplate0 struct {
	Shape                     codetables.ShapeOfEarth
	ScaleFactorRadius         uint8
	ScaledValueRadius         uint32
	ScaleFactorMajorAxis      uint8
	ScaledValueMajorAxis      uint32
	ScaleFactorMinorAxis      uint8
	ScaledValueMinorAxis      uint32
	Ni, Nj                    uint32
	BasicAngle                uint32
	SubdivisionsBasicAngle    uint32
	La1, Lo1                  int32
	ResolutionComponentFlags  uint8
	La2, Lo2                  int32
	Di                        uint32
	DjOrN                     uint32 // Dj for 3.0, N (parallels between pole and equator) for 3.40
	ScanningMode              uint8
}

// GridDefinitionTemplate20 is the polar stereographic projection grid.
type GridDefinitionTemplate20 struct {
	Shape                    codetables.ShapeOfEarth
	ScaleFactorRadius        uint8
	ScaledValueRadius        uint32
	ScaleFactorMajorAxis     uint8
	ScaledValueMajorAxis     uint32
	ScaleFactorMinorAxis     uint8
	ScaledValueMinorAxis     uint32
	Ni, Nj                   uint32
	La1, Lo1                 int32
	ResolutionComponentFlags uint8
	Lad, Lov                 int32
	Dx, Dy                   uint32
	ProjectionCentreFlag     uint8
	ScanningMode             uint8
}

// GridDefinitionTemplate30 is the Lambert conformal projection grid.
type GridDefinitionTemplate30 struct {
	Shape                    codetables.ShapeOfEarth
	ScaleFactorRadius        uint8
	ScaledValueRadius        uint32
	ScaleFactorMajorAxis     uint8
	ScaledValueMajorAxis     uint32
	ScaleFactorMinorAxis     uint8
	ScaledValueMinorAxis     uint32
	Ni, Nj                   uint32
	La1, Lo1                 int32
	ResolutionComponentFlags uint8
	Lad, Lov                 int32
	Dx, Dy                   uint32
	ProjectionCentreFlag     uint8
	ScanningMode             uint8
	Latin1, Latin2           int32
	LatSouthernPole          int32
	LonSouthernPole          int32
}

func parseGridTemplate(tmpl codetables.GridDefinitionTemplate, p []byte) (interface{}, error) {
	switch tmpl {
	case codetables.GDTLatLon, codetables.GDTGaussianLatLon:
		if len(p) < 58 {
			return nil, fmt.Errorf("grid template %d needs 58 bytes, got %d", tmpl, len(p))
		}
		return &GridDefinitionTemplate0{
			Shape:                    codetables.ShapeOfEarth(p[0]),
			ScaleFactorRadius:        p[1],
			ScaledValueRadius:        be32(p[2:6]),
			ScaleFactorMajorAxis:     p[6],
			ScaledValueMajorAxis:     be32(p[7:11]),
			ScaleFactorMinorAxis:     p[11],
			ScaledValueMinorAxis:     be32(p[12:16]),
			Ni:                       be32(p[16:20]),
			Nj:                       be32(p[20:24]),
			BasicAngle:               be32(p[24:28]),
			SubdivisionsBasicAngle:   be32(p[28:32]),
			La1:                      int32(be32(p[32:36])),
			Lo1:                      int32(be32(p[36:40])),
			ResolutionComponentFlags: p[40],
			La2:                      int32(be32(p[41:45])),
			Lo2:                      int32(be32(p[45:49])),
			Di:                       be32(p[49:53]),
			DjOrN:                    be32(p[53:57]),
			ScanningMode:             p[57],
		}, nil
	case codetables.GDTPolarStereographic:
		if len(p) < 51 {
			return nil, fmt.Errorf("grid template 20 needs 51 bytes, got %d", len(p))
		}
		return &GridDefinitionTemplate20{
			Shape:                    codetables.ShapeOfEarth(p[0]),
			ScaleFactorRadius:        p[1],
			ScaledValueRadius:        be32(p[2:6]),
			ScaleFactorMajorAxis:     p[6],
			ScaledValueMajorAxis:     be32(p[7:11]),
			ScaleFactorMinorAxis:     p[11],
			ScaledValueMinorAxis:     be32(p[12:16]),
			Ni:                       be32(p[16:20]),
			Nj:                       be32(p[20:24]),
			La1:                      int32(be32(p[24:28])),
			Lo1:                      int32(be32(p[28:32])),
			ResolutionComponentFlags: p[32],
			Lad:                      int32(be32(p[33:37])),
			Lov:                      int32(be32(p[37:41])),
			Dx:                       be32(p[41:45]),
			Dy:                       be32(p[45:49]),
			ProjectionCentreFlag:     p[49],
			ScanningMode:             p[50],
		}, nil
	case codetables.GDTLambertConformal:
		if len(p) < 67 {
			return nil, fmt.Errorf("grid template 30 needs 67 bytes, got %d", len(p))
		}
		return &GridDefinitionTemplate30{
			Shape:                    codetables.ShapeOfEarth(p[0]),
			ScaleFactorRadius:        p[1],
			ScaledValueRadius:        be32(p[2:6]),
			ScaleFactorMajorAxis:     p[6],
			ScaledValueMajorAxis:     be32(p[7:11]),
			ScaleFactorMinorAxis:     p[11],
			ScaledValueMinorAxis:     be32(p[12:16]),
			Ni:                       be32(p[16:20]),
			Nj:                       be32(p[20:24]),
			La1:                      int32(be32(p[24:28])),
			Lo1:                      int32(be32(p[28:32])),
			ResolutionComponentFlags: p[32],
			Lad:                      int32(be32(p[33:37])),
			Lov:                      int32(be32(p[37:41])),
			Dx:                       be32(p[41:45]),
			Dy:                       be32(p[45:49]),
			ProjectionCentreFlag:     p[49],
			ScanningMode:             p[50],
			Latin1:                   int32(be32(p[51:55])),
			Latin2:                   int32(be32(p[55:59])),
			LatSouthernPole:          int32(be32(p[59:63])),
			LonSouthernPole:          int32(be32(p[63:67])),
		}, nil
	default:
		return OpaqueTemplate{Number: uint16(tmpl), Raw: append([]byte(nil), p...)}, nil
	}
}

// Section4 is the product definition section.
type Section4 struct {
	NumCoordinateValues uint16
	TemplateNumber      uint16
	Template            interface{} // ProductDefinitionTemplate0 or OpaqueTemplate
}

// ParseSection4 parses section 4, dispatching the template tail by number.
// Only template 0 is parsed structurally; every other template is retained
// opaque (spec.md's "out of scope beyond code-table lookup").
func ParseSection4(data []byte, header Header) (*Section4, int, error) {
	n := int(header.Length)
	if len(data) < n || n < 9 {
		return nil, 0, fmt.Errorf("section4: declared length %d exceeds available %d bytes or is too short", n, len(data))
	}
	p := data[5:n]
	s := &Section4{
		NumCoordinateValues: be16(p[0:2]),
		TemplateNumber:      be16(p[2:4]),
	}
	tail := p[4:]
	if s.TemplateNumber == 0 {
		if len(tail) < 17 {
			return nil, 0, fmt.Errorf("section4: product template 0 needs 17 bytes, got %d", len(tail))
		}
		s.Template = &ProductDefinitionTemplate0{
			ParameterCategory:      tail[0],
			ParameterNumber:        tail[1],
			GeneratingProcess:      tail[2],
			HoursAfterDataCutoff:   be16(tail[3:5]),
			MinutesAfterDataCutoff: tail[5],
			TimeRangeUnit:          tail[6],
			ForecastTime:           be32(tail[7:11]),
			FixedSurfaceType1:      codetables.LookupFixedSurfaceUnit(tail[11]),
			ScaleFactorSurface1:    tail[12],
			ScaledValueSurface1:    be32(tail[13:17]),
		}
	} else {
		s.Template = OpaqueTemplate{Number: s.TemplateNumber, Raw: append([]byte(nil), tail...)}
	}
	return s, n, nil
}

// ProductDefinitionTemplate0 is "Analysis or forecast at a horizontal level
// or in a horizontal layer at a point in time", the one product-definition
// template this core parses structurally (recovered from
// other_examples/5afar-ParserGrib2's Product0 struct).
type ProductDefinitionTemplate0 struct {
	ParameterCategory      uint8
	ParameterNumber        uint8
	GeneratingProcess      uint8
	HoursAfterDataCutoff   uint16
	MinutesAfterDataCutoff uint8
	TimeRangeUnit          uint8
	ForecastTime           uint32
	FixedSurfaceType1      codetables.FixedSurfaceUnit
	ScaleFactorSurface1    uint8
	ScaledValueSurface1    uint32
}

// Section5 is the data representation section.
type Section5 struct {
	NumEncodedPoints uint32
	TemplateNumber   uint16
	Template         interface{}
}

// ParseSection5 parses section 5, dispatching the packing template tail by
// number. Unrecognised templates are retained opaque.
func ParseSection5(data []byte, header Header) (*Section5, int, error) {
	n := int(header.Length)
	if len(data) < n || n < 11 {
		return nil, 0, fmt.Errorf("section5: declared length %d exceeds available %d bytes or is too short", n, len(data))
	}
	p := data[5:n]
	s := &Section5{
		NumEncodedPoints: be32(p[0:4]),
		TemplateNumber:   be16(p[4:6]),
	}
	tail := p[6:]
	tmpl, err := parseDataRepresentationTemplate(codetables.DataRepresentationTemplate(s.TemplateNumber), tail)
	if err != nil {
		return nil, 0, errors.Wrap(err, "section5")
	}
	s.Template = tmpl
	return s, n, nil
}

// DataRepresentationTemplate0 is simple packing (5.0), also the common
// prefix of every other packing template's header fields.
type DataRepresentationTemplate0 struct {
	Reference         float32
	BinaryScaleFactor int16
	DecimalScaleFactor int16
	Nbits             uint8
	OriginalFieldType uint8
}

func parseSimpleHeader(p []byte) (DataRepresentationTemplate0, []byte, error) {
	if len(p) < 10 {
		return DataRepresentationTemplate0{}, nil, fmt.Errorf("data representation header needs 10 bytes, got %d", len(p))
	}
	return DataRepresentationTemplate0{
		Reference:          numeric.IEEEFloat32(be32(p[0:4])),
		BinaryScaleFactor:  numeric.GribSignedInt16(be16(p[4:6])),
		DecimalScaleFactor: numeric.GribSignedInt16(be16(p[6:8])),
		Nbits:              p[8],
		OriginalFieldType:  p[9],
	}, p[10:], nil
}

// DataRepresentationTemplate2 is complex packing (5.2); with a nonzero
// SpatialDifferencingOrder it also serves as 5.3 (complex packing with
// spatial differencing).
type DataRepresentationTemplate2 struct {
	DataRepresentationTemplate0
	GroupSplittingMethod               uint8
	MissingValueManagement             codetables.MissingValueManagement
	PrimaryMissingSubstitute           uint32
	SecondaryMissingSubstitute         uint32
	NumberOfGroups                     uint32
	GroupWidthReference                uint8
	GroupWidthBits                     uint8
	GroupLengthReference                uint32
	GroupLengthIncrement                uint8
	GroupLengthLast                     uint32
	GroupLengthBits                     uint8
	SpatialDifferencingOrder           codetables.SpatialDifferencingOrder
	SpatialDifferencingExtraOctets     uint8
}

func parseComplexTemplate(p []byte, spatialDifferencing bool) (*DataRepresentationTemplate2, error) {
	hdr, rest, err := parseSimpleHeader(p)
	if err != nil {
		return nil, err
	}
	if len(rest) < 16 {
		return nil, fmt.Errorf("complex packing template needs 16 more bytes, got %d", len(rest))
	}
	t := &DataRepresentationTemplate2{
		DataRepresentationTemplate0: hdr,
		GroupSplittingMethod:        rest[0],
		MissingValueManagement:      codetables.MissingValueManagement(rest[1]),
		PrimaryMissingSubstitute:    be32(rest[2:6]),
		SecondaryMissingSubstitute:  be32(rest[6:10]),
		NumberOfGroups:              be32(rest[10:14]),
		GroupWidthReference:         rest[14],
		GroupWidthBits:              rest[15],
	}
	rest = rest[16:]
	if len(rest) < 10 {
		return nil, fmt.Errorf("complex packing group-length fields need 10 bytes, got %d", len(rest))
	}
	t.GroupLengthReference = be32(rest[0:4])
	t.GroupLengthIncrement = rest[4]
	t.GroupLengthLast = be32(rest[5:9])
	t.GroupLengthBits = rest[9]
	rest = rest[10:]
	if spatialDifferencing {
		if len(rest) < 2 {
			return nil, fmt.Errorf("spatial differencing fields need 2 bytes, got %d", len(rest))
		}
		order, _ := codetables.LookupSpatialDifferencingOrder(rest[0])
		t.SpatialDifferencingOrder = order
		t.SpatialDifferencingExtraOctets = rest[1]
	}
	return t, nil
}

// DataRepresentationTemplate40 is JPEG 2000 packing (5.40).
type DataRepresentationTemplate40 struct {
	DataRepresentationTemplate0
	TypeOfCompression      uint8
	TargetCompressionRatio uint8
}

// DataRepresentationTemplate41 is PNG packing (5.41); it adds no fields
// beyond the common header.
type DataRepresentationTemplate41 struct {
	DataRepresentationTemplate0
}

// DataRepresentationTemplate42 is CCSDS/AEC packing (5.42).
type DataRepresentationTemplate42 struct {
	DataRepresentationTemplate0
	CCSDSFlags  uint8
	BlockSize   uint8
	RSISize     uint16
}

// DataRepresentationTemplate200 is run-length packing (5.200).
type DataRepresentationTemplate200 struct {
	Nbits              uint8
	MaxValue           uint16
	MaxLevel           uint16
	DecimalScaleFactor int16
	LevelValues        []uint16
}

func parseDataRepresentationTemplate(tmpl codetables.DataRepresentationTemplate, p []byte) (interface{}, error) {
	switch tmpl {
	case codetables.DRTSimple:
		hdr, _, err := parseSimpleHeader(p)
		if err != nil {
			return nil, err
		}
		return &hdr, nil
	case codetables.DRTComplex:
		return parseComplexTemplate(p, false)
	case codetables.DRTComplexSpatialDifferencing:
		return parseComplexTemplate(p, true)
	case codetables.DRTJPEG2000:
		hdr, rest, err := parseSimpleHeader(p)
		if err != nil {
			return nil, err
		}
		t := &DataRepresentationTemplate40{DataRepresentationTemplate0: hdr}
		if len(rest) >= 2 {
			t.TypeOfCompression = rest[0]
			t.TargetCompressionRatio = rest[1]
		}
		return t, nil
	case codetables.DRTPNG:
		hdr, _, err := parseSimpleHeader(p)
		if err != nil {
			return nil, err
		}
		return &DataRepresentationTemplate41{DataRepresentationTemplate0: hdr}, nil
	case codetables.DRTCCSDS:
		hdr, rest, err := parseSimpleHeader(p)
		if err != nil {
			return nil, err
		}
		t := &DataRepresentationTemplate42{DataRepresentationTemplate0: hdr}
		if len(rest) >= 4 {
			t.CCSDSFlags = rest[0]
			t.BlockSize = rest[1]
			t.RSISize = be16(rest[2:4])
		}
		return t, nil
	case codetables.DRTRunLength:
		if len(p) < 7 {
			return nil, fmt.Errorf("run-length template needs 7 bytes, got %d", len(p))
		}
		t := &DataRepresentationTemplate200{
			Nbits:              p[0],
			MaxValue:           be16(p[1:3]),
			MaxLevel:           be16(p[3:5]),
			DecimalScaleFactor: numeric.GribSignedInt16(be16(p[5:7])),
		}
		rest := p[7:]
		for i := 0; i+1 < len(rest) && len(t.LevelValues) < int(t.MaxLevel); i += 2 {
			t.LevelValues = append(t.LevelValues, be16(rest[i:i+2]))
		}
		return t, nil
	default:
		return OpaqueTemplate{Number: uint16(tmpl), Raw: append([]byte(nil), p...)}, nil
	}
}

// Section6 is the bitmap section.
type Section6 struct {
	Indicator uint8
	Bits      []byte // non-nil only when Indicator == 0
}

// Bitmap indicator values per spec.md §3.
const (
	BitmapPresent  = 0
	BitmapReuse    = 254
	BitmapAbsent   = 255
)

// ParseSection6 parses section 6.
func ParseSection6(data []byte, header Header) (*Section6, int, error) {
	n := int(header.Length)
	if len(data) < n {
		return nil, 0, fmt.Errorf("section6: declared length %d exceeds available %d bytes", n, len(data))
	}
	p := data[5:n]
	if len(p) < 1 {
		return nil, 0, fmt.Errorf("section6: missing bitmap indicator octet")
	}
	s := &Section6{Indicator: p[0]}
	if s.Indicator == BitmapPresent {
		s.Bits = append([]byte(nil), p[1:]...)
	}
	return s, n, nil
}

// Section7 is the raw packed-data payload, interpreted by package decode
// according to section 5's template.
type Section7 struct {
	Raw []byte
}

// ParseSection7 parses section 7.
func ParseSection7(data []byte, header Header) (*Section7, int, error) {
	n := int(header.Length)
	if len(data) < n {
		return nil, 0, fmt.Errorf("section7: declared length %d exceeds available %d bytes", n, len(data))
	}
	return &Section7{Raw: append([]byte(nil), data[5:n]...)}, n, nil
}

// Section8 is the 4-byte end marker "7777".
func ParseSection8(data []byte) (int, error) {
	if len(data) < 4 {
		return 0, fmt.Errorf("section8: need 4 bytes, got %d", len(data))
	}
	if got := string(data[0:4]); got != "7777" {
		return 0, errors.Errorf("section8: magic = %q, want %q", got, "7777")
	}
	return 4, nil
}
