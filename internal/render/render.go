// Package render defines the contract the streaming pipeline uses to
// publish and retract geometry, without depending on any concrete
// graphics backend.
package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"voxelstream/internal/meshing"
	"voxelstream/internal/voxel"
)

// Handle identifies a spawned renderable entity. MeshHandle and
// MaterialHandle identify uploaded assets. All three are UUIDs so a
// handle minted by one coordinator run never collides with one from a
// previous run, even across a full coordinator restart.
type (
	Handle         = uuid.UUID
	MeshHandle     = uuid.UUID
	MaterialHandle = uuid.UUID
)

// Sink is the external rendering collaborator: it turns section meshes
// into visible geometry. Implementations must be safe to call from the
// pipeline's single driving goroutine; they need not be safe for
// concurrent use by multiple goroutines at once.
type Sink interface {
	// AddMeshAsset uploads m and returns a handle for later Spawn calls.
	AddMeshAsset(m *meshing.SectionMesh) MeshHandle
	// AddMaterialAsset registers a material of the given flat color.
	AddMaterialAsset(color mgl32.Vec3) MaterialHandle
	// Spawn places mesh/material in the world at transform, tagged with
	// the chunk position the geometry came from, and returns a handle
	// that later identifies it for Despawn.
	Spawn(mesh MeshHandle, material MaterialHandle, transform mgl32.Mat4, tag voxel.ChunkPos) Handle
	// Despawn removes a previously spawned entity. Despawning an unknown
	// or already-despawned handle is a no-op.
	Despawn(h Handle)
}
