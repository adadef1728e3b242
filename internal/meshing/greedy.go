// Package meshing turns a padded neighborhood of voxel sections into a
// triangle mesh using binary greedy meshing: solidity along each axis is
// packed into 64-bit columns, face culling and padding removal are bit
// shifts, and same-block coplanar faces are merged into quads with
// trailing-zero/trailing-one bit tricks instead of a flood fill.
package meshing

import (
	"math/bits"
	"sort"

	"voxelstream/internal/block"
	"voxelstream/internal/voxel"
)

const (
	padded    = voxel.PaddedChunkSize // 18
	paddedLen = padded * padded       // 324, one u64 per (row,col) column
)

// planeKey groups culled faces that can share a greedy-merge pass: same
// direction, same plane (layer along that direction's axis), same block
// so two different block kinds never merge into one quad.
type planeKey struct {
	dir   Direction
	layer int
	b     block.Block
}

// Mesh runs the full binary greedy mesher over n and returns the
// resulting triangle mesh, or nil if the center section is absent, empty,
// or fully occluded (zero quads).
func Mesh(n voxel.SectionNeighbors) *SectionMesh {
	if n.Center == nil || n.Center.IsEmpty() {
		return nil
	}

	lattice := buildPaddedLattice(n)

	colsY := buildColumns(lattice, axisY)
	colsX := buildColumns(lattice, axisX)
	colsZ := buildColumns(lattice, axisZ)

	maskDown, maskUp := faceMasks(colsY)
	maskWest, maskEast := faceMasks(colsX)
	maskSouth, maskNorth := faceMasks(colsZ)

	planes := make(map[planeKey]*[voxel.ChunkSize]uint16)

	collectPlanes(planes, Down, maskDown, n.Center)
	collectPlanes(planes, Up, maskUp, n.Center)
	collectPlanes(planes, West, maskWest, n.Center)
	collectPlanes(planes, East, maskEast, n.Center)
	collectPlanes(planes, South, maskSouth, n.Center)
	collectPlanes(planes, North, maskNorth, n.Center)

	keys := make([]planeKey, 0, len(planes))
	for key := range planes {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.dir != b.dir {
			return a.dir < b.dir
		}
		if a.layer != b.layer {
			return a.layer < b.layer
		}
		return a.b < b.b
	})

	mesh := &SectionMesh{}
	for _, key := range keys {
		for _, q := range greedyMeshBinaryPlane(*planes[key]) {
			mesh.appendQuad(key.dir, key.layer, q)
		}
	}
	if mesh.IsEmpty() {
		return nil
	}
	return mesh
}

type axis int

const (
	axisY axis = iota
	axisX
	axisZ
)

// buildPaddedLattice samples n into an 18x18x18 flat array of blocks:
// the center section at padded indices [1,17) on every axis, with one
// voxel of skin copied in from each present face neighbor. Corner and
// edge padding cells (more than one axis out of range) have no defined
// neighbor and are left Air; they are never read by the face-culling
// bit shifts, which only ever compare cells one apart along a single
// axis.
func buildPaddedLattice(n voxel.SectionNeighbors) *[padded * padded * padded]block.Block {
	var out [padded * padded * padded]block.Block
	for pz := 0; pz < padded; pz++ {
		lz := pz - 1
		for py := 0; py < padded; py++ {
			ly := py - 1
			for px := 0; px < padded; px++ {
				lx := px - 1
				out[latticeIndex(px, py, pz)] = sampleNeighborhood(n, lx, ly, lz)
			}
		}
	}
	return &out
}

func latticeIndex(px, py, pz int) int {
	return px + padded*py + padded*padded*pz
}

func sampleNeighborhood(n voxel.SectionNeighbors, lx, ly, lz int) block.Block {
	outX := lx < 0 || lx >= voxel.ChunkSize
	outY := ly < 0 || ly >= voxel.ChunkSize
	outZ := lz < 0 || lz >= voxel.ChunkSize

	count := 0
	for _, v := range [3]bool{outX, outY, outZ} {
		if v {
			count++
		}
	}
	if count == 0 {
		return n.Center.Get(lx, ly, lz)
	}
	if count > 1 {
		return block.Air
	}

	switch {
	case outY && ly < 0:
		if n.Down == nil {
			return block.Air
		}
		return n.Down.Get(lx, voxel.ChunkSize+ly, lz)
	case outY && ly >= voxel.ChunkSize:
		if n.Up == nil {
			return block.Air
		}
		return n.Up.Get(lx, ly-voxel.ChunkSize, lz)
	case outX && lx < 0:
		if n.West == nil {
			return block.Air
		}
		return n.West.Get(voxel.ChunkSize+lx, ly, lz)
	case outX && lx >= voxel.ChunkSize:
		if n.East == nil {
			return block.Air
		}
		return n.East.Get(lx-voxel.ChunkSize, ly, lz)
	case outZ && lz < 0:
		if n.South == nil {
			return block.Air
		}
		return n.South.Get(lx, ly, voxel.ChunkSize+lz)
	case outZ && lz >= voxel.ChunkSize:
		if n.North == nil {
			return block.Air
		}
		return n.North.Get(lx, ly, lz-voxel.ChunkSize)
	default:
		return block.Air
	}
}

// buildColumns packs solidity along one axis into paddedLen 64-bit
// words. For axisY the word at index x*18+z has bit y set when
// (x,y,z) is solid; axisX indexes by (z,y) with bits along x; axisZ
// indexes by (y,x) with bits along z. The three orderings are chosen so
// that, combined with voxelAt, the resulting winding needs reversal on
// exactly the three positive-facing directions (see Direction.positive).
func buildColumns(lattice *[padded * padded * padded]block.Block, a axis) *[paddedLen]uint64 {
	var cols [paddedLen]uint64
	for pz := 0; pz < padded; pz++ {
		for py := 0; py < padded; py++ {
			for px := 0; px < padded; px++ {
				if !lattice[latticeIndex(px, py, pz)].IsSolid() {
					continue
				}
				switch a {
				case axisY:
					cols[px*padded+pz] |= uint64(1) << uint(py)
				case axisX:
					cols[pz*padded+py] |= uint64(1) << uint(px)
				case axisZ:
					cols[py*padded+px] |= uint64(1) << uint(pz)
				}
			}
		}
	}
	return &cols
}

// faceMasks derives the negative- and positive-facing exposed-face bit
// arrays from a packed solidity column array: a bit is set where a
// solid voxel's neighbor one step in that direction is air.
func faceMasks(cols *[paddedLen]uint64) (neg, pos *[paddedLen]uint64) {
	var n, p [paddedLen]uint64
	for i, c := range cols {
		n[i] = c &^ (c << 1)
		p[i] = c &^ (c >> 1)
	}
	return &n, &p
}

// collectPlanes strips the padding row/column from mask (see package
// doc) and groups the resulting in-chunk exposed faces for dir by
// (block, layer) into 16-wide row bitmasks ready for greedyMeshBinaryPlane.
func collectPlanes(planes map[planeKey]*[voxel.ChunkSize]uint16, dir Direction, mask *[paddedLen]uint64, center *voxel.Section) {
	for row := 0; row < voxel.ChunkSize; row++ {
		for col := 0; col < voxel.ChunkSize; col++ {
			word := mask[planeIndex(row, col)]
			word = (word >> 1) &^ (uint64(1) << uint(voxel.ChunkSize))
			for word != 0 {
				layer := bits.TrailingZeros64(word)
				word &^= uint64(1) << uint(layer)

				x, y, z := dir.voxelAt(layer, row, col)
				b := center.Get(x, y, z)

				key := planeKey{dir: dir, layer: layer, b: b}
				rows, ok := planes[key]
				if !ok {
					rows = &[voxel.ChunkSize]uint16{}
					planes[key] = rows
				}
				rows[row] |= uint16(1) << uint(col)
			}
		}
	}
}

// planeIndex returns the packed-column array index for in-chunk (row,col)
// on any axis group: the column arrays are all built row-major over the
// padded (18x18) domain, so shifting both by the one-cell skin border
// gives the same formula regardless of which axis row/col represent.
func planeIndex(row, col int) int {
	return (row+1)*padded + (col + 1)
}

// greedyMeshBinaryPlane merges a 16x16 bit-plane of same-block exposed
// faces into the minimal set of covering rectangles. data is consumed
// (cleared) as rectangles are carved out of it.
func greedyMeshBinaryPlane(data [voxel.ChunkSize]uint16) []quad {
	var quads []quad
	const size = voxel.ChunkSize

	for row := 0; row < size; row++ {
		var col uint32
		for col < size {
			shifted := data[row] >> col
			if shifted == 0 {
				break
			}
			col += uint32(bits.TrailingZeros16(shifted))
			if col >= size {
				break
			}

			h := uint32(trailingOnes16(data[row] >> col))
			var heightMask uint16
			if h >= 16 {
				heightMask = 0xFFFF
			} else {
				heightMask = uint16(1)<<h - 1
			}
			mask := heightMask << col
			data[row] &^= mask

			w := uint32(1)
			for row+int(w) < size {
				next := data[row+int(w)]
				if (next>>col)&heightMask != heightMask {
					break
				}
				data[row+int(w)] &^= mask
				w++
			}

			quads = append(quads, quad{Row: uint32(row), Col: col, W: w, H: h})
			col += h
		}
	}
	return quads
}

// trailingOnes16 returns the number of trailing one-bits in v.
func trailingOnes16(v uint16) int {
	return bits.TrailingZeros16(^v)
}
