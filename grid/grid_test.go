package grid

import (
	"testing"

	"github.com/sdifrance/grib2/section"
)

func TestNewDispatchesLatLon(t *testing.T) {
	sec3 := &section.Section3{
		TemplateNumber: 0,
		Template: &section.GridDefinitionTemplate0{
			Ni: 2, Nj: 2,
			La1: 1_000_000, La2: 0,
			Lo1: 0, Di: 1_000_000,
		},
	}
	it, err := New(sec3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := it.(*LatLonIterator); !ok {
		t.Fatalf("got %T, want *LatLonIterator", it)
	}
}

func TestNewDispatchesGaussian(t *testing.T) {
	sec3 := &section.Section3{
		TemplateNumber: 40,
		Template: &section.GridDefinitionTemplate0{
			Ni: 2, Nj: 2, Lo1: 0, Di: 1_000_000,
		},
	}
	it, err := New(sec3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := it.(*GaussianIterator); !ok {
		t.Fatalf("got %T, want *GaussianIterator", it)
	}
}

func TestNewUnknownGridTemplateIsUnsupported(t *testing.T) {
	sec3 := &section.Section3{
		TemplateNumber: 9999,
		Template:       section.OpaqueTemplate{Number: 9999},
	}
	_, err := New(sec3)
	if err == nil {
		t.Fatal("expected UnsupportedGridError")
	}
	if _, ok := err.(*UnsupportedGridError); !ok {
		t.Fatalf("got %T, want *UnsupportedGridError", err)
	}
}
