package terrain

import (
	"testing"

	"voxelstream/internal/voxel"
)

func TestSphereGeneratorCenterIsSolid(t *testing.T) {
	c := SphereGenerator{}.Generate(voxel.ChunkPos{X: 3, Z: -2})
	if c.Pos != (voxel.ChunkPos{X: 3, Z: -2}) {
		t.Fatalf("Pos = %v, want {3,-2}", c.Pos)
	}
	if c.SectionCount() != sectionsPerChunk {
		t.Fatalf("SectionCount() = %d, want %d", c.SectionCount(), sectionsPerChunk)
	}
	for y := 0; y < sectionsPerChunk; y++ {
		if !c.Section(y).Get(8, 8, 8).IsSolid() {
			t.Fatalf("section %d center (8,8,8) should be solid", y)
		}
	}
}

func TestSphereGeneratorCornersAreAir(t *testing.T) {
	c := SphereGenerator{}.Generate(voxel.ChunkPos{})
	for y := 0; y < sectionsPerChunk; y++ {
		if c.Section(y).Get(0, 0, 0).IsSolid() {
			t.Fatalf("section %d corner (0,0,0) should be air (outside radius 8 sphere)", y)
		}
	}
}

func TestSphereGeneratorIsDeterministic(t *testing.T) {
	pos := voxel.ChunkPos{X: 10, Z: 10}
	a := SphereGenerator{}.Generate(pos)
	b := SphereGenerator{}.Generate(pos)
	for y := 0; y < sectionsPerChunk; y++ {
		for x := 0; x < voxel.ChunkSize; x++ {
			for sy := 0; sy < voxel.ChunkSize; sy++ {
				for z := 0; z < voxel.ChunkSize; z++ {
					if a.Section(y).Get(x, sy, z) != b.Section(y).Get(x, sy, z) {
						t.Fatalf("non-deterministic generation at section %d (%d,%d,%d)", y, x, sy, z)
					}
				}
			}
		}
	}
}
