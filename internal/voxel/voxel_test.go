package voxel

import (
	"testing"

	"voxelstream/internal/block"
)

func TestSectionAddressing(t *testing.T) {
	s := NewSection()
	for x := 0; x < ChunkSize; x++ {
		for y := 0; y < ChunkSize; y++ {
			for z := 0; z < ChunkSize; z++ {
				b := block.New(uint16(x+1), uint16(y%8), uint16(z%8))
				s.Set(x, y, z, b)
				if got := s.Get(x, y, z); got != b {
					t.Fatalf("Get(%d,%d,%d) = %v, want %v", x, y, z, got, b)
				}
				s.Set(x, y, z, block.Air)
			}
		}
	}
}

func TestSectionOtherCellsUnchanged(t *testing.T) {
	s := NewSection()
	target := block.New(5, 1, 2)
	s.Set(3, 4, 5, target)
	for x := 0; x < ChunkSize; x++ {
		for y := 0; y < ChunkSize; y++ {
			for z := 0; z < ChunkSize; z++ {
				if x == 3 && y == 4 && z == 5 {
					continue
				}
				if got := s.Get(x, y, z); got != block.Air {
					t.Fatalf("unexpected write leaked to (%d,%d,%d): %v", x, y, z, got)
				}
			}
		}
	}
}

func TestSectionOutOfBounds(t *testing.T) {
	s := NewSection()
	cases := []struct{ x, y, z int }{
		{-1, 0, 0}, {0, -1, 0}, {0, 0, -1},
		{ChunkSize, 0, 0}, {0, ChunkSize, 0}, {0, 0, ChunkSize},
		{-100, 500, 16},
	}
	for _, c := range cases {
		if got := s.Get(c.x, c.y, c.z); got != block.Air {
			t.Fatalf("Get(%d,%d,%d) = %v, want Air", c.x, c.y, c.z, got)
		}
		s.Set(c.x, c.y, c.z, block.New(9, 0, 0))
		if !s.IsEmpty() {
			t.Fatalf("out-of-bounds Set(%d,%d,%d) mutated the section", c.x, c.y, c.z)
		}
	}
}

func TestSectionIsEmpty(t *testing.T) {
	s := NewSection()
	if !s.IsEmpty() {
		t.Fatal("fresh section should be empty")
	}
	s.Set(0, 0, 0, block.New(1, 0, 0))
	if s.IsEmpty() {
		t.Fatal("section with one solid block should not be empty")
	}
	s.Set(0, 0, 0, block.Air)
	if !s.IsEmpty() {
		t.Fatal("section should be empty again after clearing its only block")
	}
}

func TestChunkGetSetAcrossSections(t *testing.T) {
	c := NewChunk(ChunkPos{}, 2)
	c.Set(1, 20, 2, block.New(7, 0, 0))
	if got := c.Get(1, 20, 2); got.ID() != 7 {
		t.Fatalf("Get(1,20,2) = %v, want id 7", got)
	}
	if got := c.Section(1).Get(1, 4, 2); got.ID() != 7 {
		t.Fatalf("section 1 local (1,4,2) = %v, want id 7", got)
	}
}

func TestChunkMissingSectionReturnsAir(t *testing.T) {
	c := NewChunk(ChunkPos{}, 2)
	if got := c.Get(0, 1000, 0); got != block.Air {
		t.Fatalf("Get with missing section = %v, want Air", got)
	}
	c.Set(0, 1000, 0, block.New(3, 0, 0))
}

func TestChunkPosRadiusHelpers(t *testing.T) {
	center := ChunkPos{X: 5, Z: -3}
	if got := center.DistanceSquared(ChunkPos{X: 7, Z: -3}); got != 4 {
		t.Fatalf("DistanceSquared = %d, want 4", got)
	}
	if got := center.ChebyshevDistance(ChunkPos{X: 7, Z: -10}); got != 7 {
		t.Fatalf("ChebyshevDistance = %d, want 7", got)
	}
}

func TestFloorDiv(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{15, 16, 0}, {16, 16, 1}, {-1, 16, -1}, {-16, 16, -1}, {-17, 16, -2},
	}
	for _, c := range cases {
		if got := FloorDiv(c.a, c.b); got != c.want {
			t.Fatalf("FloorDiv(%d,%d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}
