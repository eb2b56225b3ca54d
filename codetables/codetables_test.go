package codetables

import "testing"

func TestLookupDisciplineKnown(t *testing.T) {
	if got := LookupDiscipline(0); got != DisciplineMeteorological {
		t.Errorf("got %v, want DisciplineMeteorological", got)
	}
	if got := LookupDiscipline(10); got != DisciplineOceanographic {
		t.Errorf("got %v, want DisciplineOceanographic", got)
	}
}

func TestLookupDisciplineUnknownNeverFails(t *testing.T) {
	got := LookupDiscipline(200)
	if got != DisciplineUnknown {
		t.Errorf("got %v, want DisciplineUnknown", got)
	}
	if got.String() == "" {
		t.Error("String() must still render something for an unknown code")
	}
}

func TestShapeOfEarthRadii(t *testing.T) {
	major, minor, ok := ShapeOblateWGS84.Radii()
	if !ok {
		t.Fatal("expected WGS84 radii to be known")
	}
	if major != 6378137 || minor != 6356752.314245 {
		t.Errorf("got (%v, %v)", major, minor)
	}
	if _, _, ok := ShapeSphericalRadiusSpecified.Radii(); ok {
		t.Error("shape 1 radii must come from the section 3 payload, not this table")
	}
}

func TestLookupSpatialDifferencingOrder(t *testing.T) {
	if _, ok := LookupSpatialDifferencingOrder(1); !ok {
		t.Error("order 1 should be recognised")
	}
	if _, ok := LookupSpatialDifferencingOrder(2); !ok {
		t.Error("order 2 should be recognised")
	}
	if _, ok := LookupSpatialDifferencingOrder(9); ok {
		t.Error("order 9 is not defined and must report ok=false, not panic")
	}
}

func TestDataRepresentationTemplateSupported(t *testing.T) {
	for _, tmpl := range []DataRepresentationTemplate{DRTSimple, DRTComplex, DRTComplexSpatialDifferencing, DRTJPEG2000, DRTPNG, DRTCCSDS, DRTRunLength} {
		if !tmpl.Supported() {
			t.Errorf("template %d should be supported", tmpl)
		}
	}
	if DataRepresentationTemplate(99).Supported() {
		t.Error("template 99 is not implemented and must report false")
	}
}

func TestGridDefinitionTemplateSupported(t *testing.T) {
	for _, tmpl := range []GridDefinitionTemplate{GDTLatLon, GDTPolarStereographic, GDTLambertConformal, GDTGaussianLatLon} {
		if !tmpl.Supported() {
			t.Errorf("template %d should be supported", tmpl)
		}
	}
	if GDTRotatedLatLon.Supported() {
		t.Error("rotated lat/lon is not implemented and must report false")
	}
}
