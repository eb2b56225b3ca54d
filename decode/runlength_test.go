package decode

import (
	"math"
	"testing"

	"github.com/sdifrance/grib2/section"
)

// Sample data from JMBSC's run-length encoding reference, shifted by +240
// to exercise symbol values near the top of an 8-bit range.
func TestRunLengthDecoderJMBSCSample(t *testing.T) {
	raw := []int{3, 9, 12, 6, 4, 15, 2, 1, 0, 13, 12, 2, 3}
	wantRaw := []int{3, 9, 9, 6, 4, 4, 4, 4, 4, 2, 1, 0, 0, 0, 0, 0, 0, 0, 0, 2, 3}

	data := make([]byte, len(raw))
	for i, v := range raw {
		data[i] = byte(v + 240)
	}

	levelValues := make([]uint16, 251) // level indices 1..251 map to values 1..251
	for i := range levelValues {
		levelValues[i] = uint16(i + 1)
	}
	hdr := &section.DataRepresentationTemplate200{
		Nbits:              8,
		MaxValue:           250,
		MaxLevel:           uint16(len(levelValues)),
		DecimalScaleFactor: 0,
		LevelValues:        levelValues,
	}

	d, err := NewRunLengthDecoder(hdr, &section.Section7{Raw: data}, len(wantRaw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, wr := range wantRaw {
		v, ok, err := d.Next()
		if err != nil || !ok {
			t.Fatalf("unexpected Next() result at %d: ok=%v err=%v", i, ok, err)
		}
		want := float32(wr + 240)
		if v != want {
			t.Errorf("value %d = %v, want %v", i, v, want)
		}
	}
}

func TestRunLengthDecoderZeroSymbolIsNaN(t *testing.T) {
	hdr := &section.DataRepresentationTemplate200{
		Nbits:       4,
		MaxValue:    3,
		MaxLevel:    3,
		LevelValues: []uint16{10, 20, 30},
	}
	// symbols: 0 (missing, begins run), extension digit 3+rlbase(4)=7 -> wait
	// rlbase=4, nbit=4 means values 4..15 are extension; value 7 means
	// length = (7-4)*1 = 3 extra copies, for a 4-symbol-wide total run of 4.
	data := []byte{0x07} // high nibble=0 (literal, missing), low nibble=7 (extension)
	d, err := NewRunLengthDecoder(hdr, &section.Section7{Raw: data}, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 4; i++ {
		v, ok, err := d.Next()
		if err != nil || !ok {
			t.Fatalf("unexpected Next() result: ok=%v err=%v", ok, err)
		}
		if !math.IsNaN(float64(v)) {
			t.Errorf("value %d = %v, want NaN", i, v)
		}
	}
}
