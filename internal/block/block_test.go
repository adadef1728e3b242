package block

import "testing"

func TestRoundTrip(t *testing.T) {
	for id := uint16(0); id < 1024; id += 37 {
		for variant := uint16(0); variant < 8; variant++ {
			for orientation := uint16(0); orientation < 8; orientation++ {
				b := New(id, variant, orientation)
				if got := b.ID(); got != id {
					t.Fatalf("New(%d,%d,%d).ID() = %d, want %d", id, variant, orientation, got, id)
				}
				if got := uint16(b.Variant()); got != variant {
					t.Fatalf("New(%d,%d,%d).Variant() = %d, want %d", id, variant, orientation, got, variant)
				}
				if got := uint16(b.Orientation()); got != orientation {
					t.Fatalf("New(%d,%d,%d).Orientation() = %d, want %d", id, variant, orientation, got, orientation)
				}
			}
		}
	}
}

func TestTruncation(t *testing.T) {
	b := New(0xFFFF, 0xFF, 0xFF)
	if b.ID() != idMask {
		t.Fatalf("ID truncation: got %d, want %d", b.ID(), idMask)
	}
	if uint16(b.Variant()) != varMask {
		t.Fatalf("variant truncation: got %d, want %d", b.Variant(), varMask)
	}
	if uint16(b.Orientation()) != oriMask {
		t.Fatalf("orientation truncation: got %d, want %d", b.Orientation(), oriMask)
	}
}

func TestAirIsNotSolid(t *testing.T) {
	if Air.IsSolid() {
		t.Fatal("Air must not be solid")
	}
	if Block(0).IsSolid() {
		t.Fatal("Block(0) must not be solid")
	}
}

func TestNonZeroIsSolid(t *testing.T) {
	for id := uint16(1); id < 1024; id += 101 {
		if !New(id, 0, 0).IsSolid() {
			t.Fatalf("block with id %d should be solid", id)
		}
	}
}

func TestWithVariantOrientationPreserveID(t *testing.T) {
	b := New(42, 1, 2)
	b2 := b.WithVariant(5)
	if b2.ID() != 42 || b2.Orientation() != 2 || uint16(b2.Variant()) != 5 {
		t.Fatalf("WithVariant mutated unrelated fields: %+v", b2)
	}
	b3 := b.WithOrientation(6)
	if b3.ID() != 42 || uint16(b3.Variant()) != 1 || uint16(b3.Orientation()) != 6 {
		t.Fatalf("WithOrientation mutated unrelated fields: %+v", b3)
	}
}
