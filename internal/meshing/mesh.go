package meshing

import "github.com/go-gl/mathgl/mgl32"

// SectionMesh is the triangle mesh produced for a single section. All
// coordinates are section-local, in [0,16]; the caller is responsible
// for translating by the section's world offset before upload.
type SectionMesh struct {
	Vertices []mgl32.Vec3
	Normals  []mgl32.Vec3
	Indices  []uint32
}

// IsEmpty reports whether the mesh carries no geometry.
func (m *SectionMesh) IsEmpty() bool {
	return m == nil || len(m.Indices) == 0
}

// quad is one greedily-merged rectangle on a bit-plane, in that plane's
// own (row, col) coordinates: row in [0,16), col in [0,16), spanning W
// rows and H columns.
type quad struct {
	Row, Col uint32
	W, H     uint32
}

func (m *SectionMesh) appendQuad(dir Direction, layer int, q quad) {
	x0, y0, z0 := dir.voxelAt(layer, int(q.Row), int(q.Col))
	x1, y1, z1 := dir.voxelAt(layer, int(q.Row+q.W), int(q.Col))
	x2, y2, z2 := dir.voxelAt(layer, int(q.Row+q.W), int(q.Col+q.H))
	x3, y3, z3 := dir.voxelAt(layer, int(q.Row), int(q.Col+q.H))

	corners := [4]mgl32.Vec3{
		faceVertex(dir, x0, y0, z0),
		faceVertex(dir, x1, y1, z1),
		faceVertex(dir, x2, y2, z2),
		faceVertex(dir, x3, y3, z3),
	}
	if dir.positive() {
		corners[1], corners[3] = corners[3], corners[1]
	}

	base := uint32(len(m.Vertices))
	normal := dir.Normal()
	for _, c := range corners {
		m.Vertices = append(m.Vertices, c)
		m.Normals = append(m.Normals, normal)
	}
	m.Indices = append(m.Indices,
		base, base+1, base+2,
		base, base+2, base+3,
	)
}

// faceVertex converts an integer voxel cell to the float corner of the
// unit cube that this direction's face actually sits on: the cell's own
// corner for negative-facing directions, the cell's +1 corner along the
// normal axis for positive-facing ones.
func faceVertex(dir Direction, x, y, z int) mgl32.Vec3 {
	fx, fy, fz := float32(x), float32(y), float32(z)
	switch dir {
	case Up:
		fy++
	case East:
		fx++
	case North:
		fz++
	}
	return mgl32.Vec3{fx, fy, fz}
}
