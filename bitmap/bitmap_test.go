package bitmap

import (
	"math"
	"testing"

	"github.com/sdifrance/grib2/section"
)

type sliceSource struct {
	vals []float32
	i    int
}

func (s *sliceSource) Next() (float32, bool, error) {
	if s.i >= len(s.vals) {
		return 0, false, nil
	}
	v := s.vals[s.i]
	s.i++
	return v, true, nil
}

func TestBitMSBFirst(t *testing.T) {
	bits := []byte{0b10110000}
	want := []bool{true, false, true, true, false, false, false, false}
	for i, w := range want {
		if got := Bit(bits, i); got != w {
			t.Errorf("Bit(%d) = %v, want %v", i, got, w)
		}
	}
}

func TestExpandNoBitmap(t *testing.T) {
	src := &sliceSource{vals: []float32{1, 2, 3}}
	got, err := Expand(nil, 3, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("got %v", got)
	}
}

func TestExpandWithBitmapInterleavesNaN(t *testing.T) {
	bits := []byte{0b10110000}
	sec6 := &section.Section6{Indicator: section.BitmapPresent, Bits: bits}
	src := &sliceSource{vals: []float32{10, 20, 30}} // 3 set bits
	got, err := Expand(sec6, 8, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 8 {
		t.Fatalf("got %d values, want 8", len(got))
	}
	want := []float32{10, float32(math.NaN()), 20, 30, float32(math.NaN()), float32(math.NaN()), float32(math.NaN()), float32(math.NaN())}
	for i := range want {
		if math.IsNaN(float64(want[i])) {
			if !math.IsNaN(float64(got[i])) {
				t.Errorf("got[%d] = %v, want NaN", i, got[i])
			}
			continue
		}
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestExpandBitmapAbsentMeansAllPresent(t *testing.T) {
	sec6 := &section.Section6{Indicator: section.BitmapAbsent}
	src := &sliceSource{vals: []float32{1, 2}}
	got, err := Expand(sec6, 2, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != 1 || got[1] != 2 {
		t.Errorf("got %v", got)
	}
}

func TestIteratorLenDecreasesByOne(t *testing.T) {
	src := &sliceSource{vals: []float32{1, 2, 3}}
	it := NewIterator(nil, 3, src)
	for want := 3; want > 0; want-- {
		if it.Len() != want {
			t.Errorf("Len() = %d, want %d", it.Len(), want)
		}
		if _, ok, err := it.Next(); err != nil || !ok {
			t.Fatalf("unexpected Next() result: ok=%v err=%v", ok, err)
		}
	}
	if it.Len() != 0 {
		t.Errorf("Len() = %d, want 0", it.Len())
	}
}

func TestExpandDecoderTooShortErrors(t *testing.T) {
	bits := []byte{0b10000000}
	sec6 := &section.Section6{Indicator: section.BitmapPresent, Bits: bits}
	src := &sliceSource{vals: nil} // bitmap expects 1 present value, decoder has none
	if _, err := Expand(sec6, 8, src); err == nil {
		t.Fatal("expected error when decoder underproduces")
	}
}
