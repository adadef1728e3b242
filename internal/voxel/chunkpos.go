// Package voxel holds the chunk data model: sections, chunks, chunk
// coordinates and the padded-neighborhood snapshot the mesher consumes.
package voxel

// ChunkSize is the edge length of a Section in blocks.
const ChunkSize = 16

// PaddedChunkSize is the edge length of the mesher's padded sampling
// window (ChunkSize plus one voxel of skin on each side).
const PaddedChunkSize = 18

// ChunkPos is a column coordinate in chunk units.
type ChunkPos struct {
	X, Z int
}

// Add returns the position offset by (dx, dz).
func (p ChunkPos) Add(dx, dz int) ChunkPos {
	return ChunkPos{X: p.X + dx, Z: p.Z + dz}
}

// DistanceSquared returns the squared Euclidean distance, in chunks,
// between p and other.
func (p ChunkPos) DistanceSquared(other ChunkPos) int {
	dx := p.X - other.X
	dz := p.Z - other.Z
	return dx*dx + dz*dz
}

// ChebyshevDistance returns max(|dx|, |dz|) between p and other.
func (p ChunkPos) ChebyshevDistance(other ChunkPos) int {
	dx := abs(p.X - other.X)
	dz := abs(p.Z - other.Z)
	if dx > dz {
		return dx
	}
	return dz
}

// North, South, East and West return the four XZ-adjacent column
// positions. They follow the same axis convention as the mesher's
// Direction type: +Z is North, +X is East.
func (p ChunkPos) North() ChunkPos { return p.Add(0, 1) }
func (p ChunkPos) South() ChunkPos { return p.Add(0, -1) }
func (p ChunkPos) East() ChunkPos  { return p.Add(1, 0) }
func (p ChunkPos) West() ChunkPos  { return p.Add(-1, 0) }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// FloorDiv performs integer division that rounds towards negative
// infinity, the convention chunk-coordinate conversion needs for
// negative world coordinates.
func FloorDiv(a, b int) int {
	if (a < 0) != (b < 0) && a%b != 0 {
		return a/b - 1
	}
	return a / b
}
