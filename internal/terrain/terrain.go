// Package terrain generates chunk data for newly-resident chunks.
package terrain

import (
	"voxelstream/internal/block"
	"voxelstream/internal/voxel"
)

// Generator produces a fully-populated Chunk for a column position. It
// must be safe to call concurrently from multiple worker goroutines,
// since the pipeline's data tasks run in a worker pool.
type Generator interface {
	Generate(pos voxel.ChunkPos) *voxel.Chunk
}

// sphereRadius2 is the squared radius, in blocks, of the solid sphere
// each SphereGenerator section is filled with, centered on the section.
const sphereRadius2 = 64 // 8^2

// sectionsPerChunk is the fixed height of every chunk SphereGenerator
// produces.
const sectionsPerChunk = 2

// SphereGenerator is the reference terrain generator: every chunk gets
// sectionsPerChunk sections, each an independent solid sphere of radius
// 8 centered at local (8,8,8). It exists so the streaming pipeline has a
// real, deterministic data source without depending on a world-scale
// noise generator.
type SphereGenerator struct{}

// Generate implements Generator.
func (SphereGenerator) Generate(pos voxel.ChunkPos) *voxel.Chunk {
	c := voxel.NewChunk(pos, sectionsPerChunk)
	solid := block.New(1, 0, 0)
	for y := 0; y < sectionsPerChunk; y++ {
		sec := c.Section(y)
		for x := 0; x < voxel.ChunkSize; x++ {
			dx := x - 8
			for sy := 0; sy < voxel.ChunkSize; sy++ {
				dy := sy - 8
				for z := 0; z < voxel.ChunkSize; z++ {
					dz := z - 8
					if dx*dx+dy*dy+dz*dz < sphereRadius2 {
						sec.Set(x, sy, z, solid)
					}
				}
			}
		}
	}
	return c
}
