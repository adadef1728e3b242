// Package stream implements the chunk streaming coordinator: a
// resident-set state machine driven by a five-phase per-tick pipeline,
// plus the per-observer ChunkLoader that feeds it.
package stream

import (
	"log/slog"
	"sync"

	"voxelstream/internal/render"
	"voxelstream/internal/voxel"
)

// meshKey identifies one section's mesh slot.
type meshKey struct {
	Pos      voxel.ChunkPos
	SectionY int
}

// meshUnload is a pending mesh eviction: a chunk position plus the
// section count it had while resident, so unload_meshes knows exactly
// which section_entities keys to despawn even after the chunk's data
// has already been removed from loaded_chunks.
type meshUnload struct {
	Pos          voxel.ChunkPos
	SectionCount int
}

// ResidentSet is the authoritative streaming state: which chunks have
// data resident, which sections have a live mesh entity, and the work
// queues/task registries connecting the two. All access is serialized
// by mu; the five pipeline phases in pipeline.go are the only code that
// should mutate it directly.
type ResidentSet struct {
	mu  sync.RWMutex
	log *slog.Logger

	loadedChunks map[voxel.ChunkPos]*voxel.Chunk

	dataToLoad   *orderedQueue[voxel.ChunkPos]
	dataToUnload *orderedQueue[voxel.ChunkPos]
	meshToLoad   *orderedQueue[voxel.ChunkPos]
	meshToUnload *orderedQueue[meshUnload]

	dataTasks map[voxel.ChunkPos]<-chan any
	meshTasks map[meshKey]<-chan any

	sectionEntities map[meshKey]render.Handle
}

// NewResidentSet returns an empty coordinator state. A nil logger
// defaults to slog.Default().
func NewResidentSet(log *slog.Logger) *ResidentSet {
	if log == nil {
		log = slog.Default()
	}
	return &ResidentSet{
		log:             log,
		loadedChunks:    make(map[voxel.ChunkPos]*voxel.Chunk),
		dataToLoad:      newOrderedQueue[voxel.ChunkPos](),
		dataToUnload:    newOrderedQueue[voxel.ChunkPos](),
		meshToLoad:      newOrderedQueue[voxel.ChunkPos](),
		meshToUnload:    newOrderedQueue[meshUnload](),
		dataTasks:       make(map[voxel.ChunkPos]<-chan any),
		meshTasks:       make(map[meshKey]<-chan any),
		sectionEntities: make(map[meshKey]render.Handle),
	}
}

// LoadChunk requests pos become data-resident. No-op if pos is already
// resident or already queued for load.
func (rs *ResidentSet) LoadChunk(pos voxel.ChunkPos) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if _, ok := rs.loadedChunks[pos]; ok {
		return
	}
	if rs.dataToLoad.Contains(pos) {
		return
	}
	rs.dataToUnload.Remove(pos)
	rs.dataToLoad.Push(pos)
}

// UnloadChunk requests pos be evicted. No-op if pos is neither resident
// nor queued for load.
func (rs *ResidentSet) UnloadChunk(pos voxel.ChunkPos) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	_, loaded := rs.loadedChunks[pos]
	if !loaded && !rs.dataToLoad.Contains(pos) {
		return
	}
	rs.dataToLoad.Remove(pos)
	rs.dataToUnload.Push(pos)
}

// IsLoaded reports whether pos currently has data resident.
func (rs *ResidentSet) IsLoaded(pos voxel.ChunkPos) bool {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	_, ok := rs.loadedChunks[pos]
	return ok
}

// Chunk returns the resident chunk at pos, or nil if not resident.
func (rs *ResidentSet) Chunk(pos voxel.ChunkPos) *voxel.Chunk {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.loadedChunks[pos]
}
