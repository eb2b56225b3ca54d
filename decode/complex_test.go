package decode

import (
	"math"
	"testing"

	"github.com/sdifrance/grib2/codetables"
	"github.com/sdifrance/grib2/section"
)

func drainComplex(t *testing.T, d *ComplexDecoder) []float32 {
	t.Helper()
	var out []float32
	for {
		v, ok, err := d.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

func TestComplexDecoderTwoGroupsOneZeroWidth(t *testing.T) {
	hdr := &section.DataRepresentationTemplate2{
		DataRepresentationTemplate0: section.DataRepresentationTemplate0{
			Reference: 0, BinaryScaleFactor: 0, DecimalScaleFactor: 0, Nbits: 8,
		},
		GroupSplittingMethod:       1,
		MissingValueManagement:     codetables.MissingNone,
		NumberOfGroups:             2,
		GroupWidthReference:        0,
		GroupWidthBits:             8,
		GroupLengthReference:       0,
		GroupLengthIncrement:       1,
		GroupLengthLast:            2,
		GroupLengthBits:            8,
	}
	sec7 := &section.Section7{Raw: []byte{0x00, 0x64, 0x04, 0x00, 0x03, 0x12, 0x30}}

	d, err := NewComplexDecoder(hdr, sec7, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := drainComplex(t, d)
	want := []float32{1, 2, 3, 100, 100}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestComplexDecoderZeroWidthGroupBypassesMissingSubstitution(t *testing.T) {
	// S6: missing-value management = 1, zero-width group whose reference
	// equals 2^nbits-1 (the primary-missing sentinel width). Per spec.md,
	// zero-width groups never apply missing substitution.
	hdr := &section.DataRepresentationTemplate2{
		DataRepresentationTemplate0: section.DataRepresentationTemplate0{Nbits: 8},
		GroupSplittingMethod:        1,
		MissingValueManagement:      codetables.MissingPrimary,
		NumberOfGroups:              1,
		GroupWidthBits:              8,
		GroupLengthBits:             8,
		GroupLengthLast:             4,
	}
	// refs array: one 8-bit ref = 255 (0xFF); widths array: one 8-bit raw
	// width = 0; lengths array: empty (G-1=0), last length = 4 from header.
	sec7 := &section.Section7{Raw: []byte{0xFF, 0x00}}

	d, err := NewComplexDecoder(hdr, sec7, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := drainComplex(t, d)
	for i, v := range got {
		if math.IsNaN(float64(v)) || v != 255 {
			t.Errorf("value %d = %v, want 255 (no missing substitution)", i, v)
		}
	}
}

func TestComplexDecoderFirstOrderSpatialDifferencing(t *testing.T) {
	hdr := &section.DataRepresentationTemplate2{
		DataRepresentationTemplate0: section.DataRepresentationTemplate0{
			Reference: 0, BinaryScaleFactor: 0, DecimalScaleFactor: 0, Nbits: 8,
		},
		GroupSplittingMethod:           1,
		MissingValueManagement:        codetables.MissingNone,
		NumberOfGroups:                1,
		GroupWidthBits:                8,
		GroupLengthBits:                8,
		GroupLengthLast:                3,
		SpatialDifferencingOrder:      codetables.SpatialDifferencingFirstOrder,
		SpatialDifferencingExtraOctets: 1,
	}
	// extra descriptors: ival1=10 (0x0A), imin=-5 (sign-magnitude 0x85);
	// refs=[0], widths=[4], lengths=[] (last=3 from header); payload
	// packs three 4-bit values 0,1,2.
	sec7 := &section.Section7{Raw: []byte{0x0A, 0x85, 0x00, 0x04, 0x01, 0x20}}

	d, err := NewComplexDecoder(hdr, sec7, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := drainComplex(t, d)
	want := []float32{10, 6, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestComplexDecoderRejectsNonFloatOriginalType(t *testing.T) {
	hdr := &section.DataRepresentationTemplate2{
		DataRepresentationTemplate0: section.DataRepresentationTemplate0{OriginalFieldType: 1},
	}
	if _, err := NewComplexDecoder(hdr, &section.Section7{}, 0); err == nil {
		t.Fatal("expected UnsupportedEncodingError for non-float original field type")
	}
}
