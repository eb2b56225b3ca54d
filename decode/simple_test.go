package decode

import (
	"math"
	"testing"

	"github.com/sdifrance/grib2/section"
)

func TestSimpleDecoderConstantField(t *testing.T) {
	hdr := &section.DataRepresentationTemplate0{
		Reference:          273.15,
		BinaryScaleFactor:  0,
		DecimalScaleFactor: 2,
		Nbits:              0,
	}
	sec7 := &section.Section7{Raw: nil}
	d := NewSimpleDecoder(hdr, sec7, 4)

	for i := 0; i < 4; i++ {
		v, ok, err := d.Next()
		if err != nil || !ok {
			t.Fatalf("unexpected Next() result: ok=%v err=%v", ok, err)
		}
		if math.Abs(float64(v)-2.7315) > 1e-5 {
			t.Errorf("value %d = %v, want 2.7315", i, v)
		}
	}
	if _, ok, err := d.Next(); err != nil || ok {
		t.Fatalf("expected exhaustion after 4 values, got ok=%v err=%v", ok, err)
	}
}

func TestSimpleDecoderPackedValues(t *testing.T) {
	// nbits=8, R=0, E=0, D=0: raw bytes decode straight through as integers.
	hdr := &section.DataRepresentationTemplate0{
		Reference:          0,
		BinaryScaleFactor:  0,
		DecimalScaleFactor: 0,
		Nbits:              8,
	}
	sec7 := &section.Section7{Raw: []byte{10, 20, 30}}
	d := NewSimpleDecoder(hdr, sec7, 3)

	want := []float32{10, 20, 30}
	for i, w := range want {
		v, ok, err := d.Next()
		if err != nil || !ok {
			t.Fatalf("unexpected Next() result: ok=%v err=%v", ok, err)
		}
		if v != w {
			t.Errorf("value %d = %v, want %v", i, v, w)
		}
	}
}

func TestSimpleDecoderUnalignedWidths(t *testing.T) {
	// nbits=12, two values packed into 3 bytes: 0x0AB, 0x0CD.
	hdr := &section.DataRepresentationTemplate0{Nbits: 12, DecimalScaleFactor: 0}
	sec7 := &section.Section7{Raw: []byte{0x0A, 0xB0, 0xCD}}
	d := NewSimpleDecoder(hdr, sec7, 2)

	v1, _, err := d.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v1 != 0x0AB {
		t.Errorf("v1 = %v, want %v", v1, 0x0AB)
	}
	v2, _, err := d.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v2 != 0x0CD {
		t.Errorf("v2 = %v, want %v", v2, 0x0CD)
	}
}

func TestSimpleDecoderTruncatedPayloadErrors(t *testing.T) {
	hdr := &section.DataRepresentationTemplate0{Nbits: 16}
	sec7 := &section.Section7{Raw: []byte{0x00}} // not enough bits for even one value
	d := NewSimpleDecoder(hdr, sec7, 1)
	if _, _, err := d.Next(); err == nil {
		t.Fatal("expected error reading past end of section 7 payload")
	}
}
