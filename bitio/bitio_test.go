package bitio

import "testing"

func TestReadBitsZeroWidthDoesNotAdvance(t *testing.T) {
	r := New(nil)
	v, err := r.ReadBits(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 0 {
		t.Errorf("got %d, want 0", v)
	}
	if r.BitPos() != 0 {
		t.Errorf("cursor advanced on zero-width read: %d", r.BitPos())
	}
}

func TestReadBitsByteAligned(t *testing.T) {
	r := New([]byte{0xAB, 0xCD})
	v, err := r.ReadBits(16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 0xABCD {
		t.Errorf("got %#x, want 0xABCD", v)
	}
}

func TestReadBitsUnaligned(t *testing.T) {
	// 0b1010_1100, read 4 bits at a time: 0b1010 = 10, 0b1100 = 12.
	r := New([]byte{0b1010_1100})
	for _, want := range []uint64{10, 12} {
		got, err := r.ReadBits(4)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("got %d, want %d", got, want)
		}
	}
}

func TestReadBitsPastEndFails(t *testing.T) {
	r := New([]byte{0x00})
	if _, err := r.ReadBits(9); err == nil {
		t.Fatal("expected error reading past end of buffer")
	}
}

func TestReadBitsArbitraryWidths(t *testing.T) {
	// 12-bit values packed consecutively: 0x0AB, 0x0CD -> bytes 0x0A 0xB0 0xCD.
	r := New([]byte{0x0A, 0xB0, 0xCD})
	v1, err := r.ReadBits(12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v1 != 0x0AB {
		t.Errorf("v1 = %#x, want 0x0AB", v1)
	}
	v2, err := r.ReadBits(12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v2 != 0x0CD {
		t.Errorf("v2 = %#x, want 0x0CD", v2)
	}
}

func TestAlign(t *testing.T) {
	r := New([]byte{0xFF, 0xFF})
	if _, err := r.ReadBits(3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r.Align()
	if r.BitPos() != 8 {
		t.Errorf("BitPos() = %d, want 8", r.BitPos())
	}
}

func TestReadBitsAtDoesNotDisturbCursor(t *testing.T) {
	r := New([]byte{0x12, 0x34, 0x56})
	if _, err := r.ReadBits(8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := r.ReadBitsAt(0, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 0x12 {
		t.Errorf("got %#x, want 0x12", v)
	}
	if r.BitPos() != 8 {
		t.Errorf("cursor disturbed by ReadBitsAt: %d", r.BitPos())
	}
}

func TestInvalidWidth(t *testing.T) {
	r := New([]byte{0, 0, 0, 0, 0, 0, 0, 0, 0})
	if _, err := r.ReadBits(65); err == nil {
		t.Fatal("expected error for width > 64")
	}
}
