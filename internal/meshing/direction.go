package meshing

import "github.com/go-gl/mathgl/mgl32"

// Direction identifies one of the six face directions a quad can face.
// Axis convention follows voxel.ChunkPos: +X is East, +Z is North.
type Direction uint8

const (
	Up Direction = iota
	Down
	North
	South
	East
	West
)

// Normal returns the outward unit normal for the direction.
func (d Direction) Normal() mgl32.Vec3 {
	switch d {
	case Up:
		return mgl32.Vec3{0, 1, 0}
	case Down:
		return mgl32.Vec3{0, -1, 0}
	case North:
		return mgl32.Vec3{0, 0, 1}
	case South:
		return mgl32.Vec3{0, 0, -1}
	case East:
		return mgl32.Vec3{1, 0, 0}
	case West:
		return mgl32.Vec3{-1, 0, 0}
	default:
		return mgl32.Vec3{}
	}
}

// positive reports whether the direction's normal points along the
// positive axis (Up/+Y, East/+X, North/+Z). Quads on a positive-facing
// direction sit on the +1 boundary of their voxel cell (Stage F of the
// mesher) and are exactly the directions whose vertex winding needs
// reversing to keep triangle winding matching the outward normal under
// this package's (layer,row,col) plane parameterization.
func (d Direction) positive() bool {
	switch d {
	case Up, East, North:
		return true
	default:
		return false
	}
}

// voxelAt inverts the per-axis plane sweep back to chunk-local (x,y,z).
// layer is the position along the direction's own (swept) axis; row and
// col are the position along the other two axes, in the order this
// package's greedy-merge sweep uses for that axis group.
func (d Direction) voxelAt(layer, row, col int) (x, y, z int) {
	switch d {
	case Up, Down:
		return row, layer, col
	case East, West:
		return layer, col, row
	case North, South:
		return col, row, layer
	default:
		return 0, 0, 0
	}
}
