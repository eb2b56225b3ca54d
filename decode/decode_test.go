package decode

import (
	"testing"

	"github.com/sdifrance/grib2/section"
)

func TestNewDispatchesSimplePacking(t *testing.T) {
	sec5 := &section.Section5{
		NumEncodedPoints: 2,
		TemplateNumber:   0,
		Template:         &section.DataRepresentationTemplate0{Nbits: 8},
	}
	sec7 := &section.Section7{Raw: []byte{1, 2}}
	src, err := New(sec5, sec7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := src.(*SimpleDecoder); !ok {
		t.Fatalf("got %T, want *SimpleDecoder", src)
	}
}

func TestNewUnknownTemplateIsUnsupported(t *testing.T) {
	sec5 := &section.Section5{
		NumEncodedPoints: 1,
		TemplateNumber:   9999,
		Template:         section.OpaqueTemplate{Number: 9999},
	}
	_, err := New(sec5, &section.Section7{})
	if err == nil {
		t.Fatal("expected UnsupportedTemplateError")
	}
	if _, ok := err.(*UnsupportedTemplateError); !ok {
		t.Fatalf("got %T, want *UnsupportedTemplateError", err)
	}
}

func TestNewCCSDSIsUnsupported(t *testing.T) {
	sec5 := &section.Section5{
		NumEncodedPoints: 1,
		TemplateNumber:   42,
		Template:         &section.DataRepresentationTemplate42{},
	}
	_, err := New(sec5, &section.Section7{})
	if err == nil {
		t.Fatal("expected an error for CCSDS")
	}
}
