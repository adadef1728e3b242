package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"voxelstream/internal/meshing"
	"voxelstream/internal/voxel"
)

// SpawnCall records one Spawn invocation against a NullSink.
type SpawnCall struct {
	Mesh      MeshHandle
	Material  MaterialHandle
	Transform mgl32.Mat4
	Tag       voxel.ChunkPos
}

// NullSink is a Sink that records every call instead of touching a GPU.
// It exists so the streaming pipeline can be tested without a live GL
// context or window.
type NullSink struct {
	Spawns    []SpawnCall
	Despawns  []Handle
	Meshes    []*meshing.SectionMesh
	Materials []mgl32.Vec3
}

// NewNullSink returns an empty NullSink.
func NewNullSink() *NullSink {
	return &NullSink{}
}

func (s *NullSink) AddMeshAsset(m *meshing.SectionMesh) MeshHandle {
	s.Meshes = append(s.Meshes, m)
	return uuid.New()
}

func (s *NullSink) AddMaterialAsset(color mgl32.Vec3) MaterialHandle {
	s.Materials = append(s.Materials, color)
	return uuid.New()
}

func (s *NullSink) Spawn(mesh MeshHandle, material MaterialHandle, transform mgl32.Mat4, tag voxel.ChunkPos) Handle {
	h := uuid.New()
	s.Spawns = append(s.Spawns, SpawnCall{Mesh: mesh, Material: material, Transform: transform, Tag: tag})
	return h
}

func (s *NullSink) Despawn(h Handle) {
	s.Despawns = append(s.Despawns, h)
}
