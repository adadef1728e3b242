package stream

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"voxelstream/internal/meshing"
	"voxelstream/internal/profiling"
	"voxelstream/internal/render"
	"voxelstream/internal/terrain"
	"voxelstream/internal/voxel"
)

// Tick runs the five-phase pipeline once: observer diff, start/join data
// tasks, start mesh tasks, then join mesh tasks / unload meshes / unload
// data chained in that order. Phases always run in this sequence; it is
// the only scheduling model this package supports, per the "phase order
// and visibility rules must be preserved" design note.
func Tick(rs *ResidentSet, loaders []*ChunkLoader, observers []Observer, gen terrain.Generator, sink render.Sink, pool *WorkerPool) {
	defer profiling.Track("stream.Tick")()

	observerDiff(rs, loaders, observers)
	startDataTasks(rs, gen, pool)
	joinDataTasks(rs)
	startMeshTasks(rs, pool)
	joinMeshTasks(rs, sink)
	unloadMeshes(rs, sink)
	unloadData(rs)
}

func observerDiff(rs *ResidentSet, loaders []*ChunkLoader, observers []Observer) {
	defer profiling.Track("stream.observerDiff")()
	n := len(loaders)
	if len(observers) < n {
		n = len(observers)
	}
	for i := 0; i < n; i++ {
		loaders[i].Update(observers[i], rs)
	}
}

func startDataTasks(rs *ResidentSet, gen terrain.Generator, pool *WorkerPool) {
	defer profiling.Track("stream.startDataTasks")()
	rs.mu.Lock()
	defer rs.mu.Unlock()
	started := 0
	for _, pos := range rs.dataToLoad.Drain() {
		if _, loaded := rs.loadedChunks[pos]; loaded {
			continue
		}
		if _, inFlight := rs.dataTasks[pos]; inFlight {
			continue
		}
		p := pos
		rs.dataTasks[pos] = pool.submit(func() any {
			return gen.Generate(p)
		})
		started++
	}
	rs.log.Debug("startDataTasks", slog.Int("started", started))
}

func joinDataTasks(rs *ResidentSet) {
	defer profiling.Track("stream.joinDataTasks")()
	rs.mu.Lock()
	defer rs.mu.Unlock()
	joined := 0
	for pos, ch := range rs.dataTasks {
		select {
		case result := <-ch:
			delete(rs.dataTasks, pos)
			chunk, _ := result.(*voxel.Chunk)
			if chunk == nil {
				continue
			}
			rs.loadedChunks[pos] = chunk
			rs.meshToLoad.Push(pos)
			requeueLoadedNeighbors(rs, pos)
			joined++
		default:
		}
	}
	rs.log.Debug("joinDataTasks", slog.Int("joined", joined))
}

// requeueLoadedNeighbors re-enqueues mesh_to_load for the XZ-adjacent
// neighbors of a chunk that just became resident, so their meshes pick
// up the newly-available boundary data instead of leaving a one-tick
// seam. It only fires for neighbors already resident — pos's own first
// mesh pass is queued by the caller in the same phase — and the queue's
// idempotent Push keeps this from growing mesh_to_load unboundedly: a
// resident chunk contributes at most four such extra pushes, ever, not
// one per tick.
func requeueLoadedNeighbors(rs *ResidentSet, pos voxel.ChunkPos) {
	for _, n := range [4]voxel.ChunkPos{pos.North(), pos.South(), pos.East(), pos.West()} {
		if _, ok := rs.loadedChunks[n]; ok {
			rs.meshToLoad.Push(n)
		}
	}
}

func startMeshTasks(rs *ResidentSet, pool *WorkerPool) {
	defer profiling.Track("stream.startMeshTasks")()
	rs.mu.Lock()
	defer rs.mu.Unlock()
	started := 0
	for _, pos := range rs.meshToLoad.Drain() {
		chunk, ok := rs.loadedChunks[pos]
		if !ok {
			rs.log.Debug("startMeshTasks: missing dependency", slog.Any("pos", pos))
			continue // evicted before its mesh pass ran this tick
		}
		north, hasNorth := rs.loadedChunks[pos.North()]
		south, hasSouth := rs.loadedChunks[pos.South()]
		east, hasEast := rs.loadedChunks[pos.East()]
		west, hasWest := rs.loadedChunks[pos.West()]
		if !hasNorth {
			north = nil
		}
		if !hasSouth {
			south = nil
		}
		if !hasEast {
			east = nil
		}
		if !hasWest {
			west = nil
		}

		for y := 0; y < chunk.SectionCount(); y++ {
			key := meshKey{Pos: pos, SectionY: y}
			if _, inFlight := rs.meshTasks[key]; inFlight {
				continue
			}
			neighbors := voxel.SnapshotNeighbors(chunk, y, north, south, east, west)
			rs.meshTasks[key] = pool.submit(func() any {
				return meshing.Mesh(neighbors)
			})
			started++
		}
	}
	rs.log.Debug("startMeshTasks", slog.Int("started", started))
}

func joinMeshTasks(rs *ResidentSet, sink render.Sink) {
	defer profiling.Track("stream.joinMeshTasks")()
	rs.mu.Lock()
	defer rs.mu.Unlock()
	spawned := 0
	for key, ch := range rs.meshTasks {
		var result any
		select {
		case result = <-ch:
		default:
			continue
		}
		delete(rs.meshTasks, key)

		if prior, ok := rs.sectionEntities[key]; ok {
			sink.Despawn(prior)
			delete(rs.sectionEntities, key)
		}

		if _, resident := rs.loadedChunks[key.Pos]; !resident {
			rs.log.Debug("joinMeshTasks: missing dependency at harvest", slog.Any("pos", key.Pos))
			continue // evicted before harvest, result discarded
		}

		mesh, _ := result.(*meshing.SectionMesh)
		if mesh.IsEmpty() {
			continue
		}
		meshHandle := sink.AddMeshAsset(mesh)
		materialHandle := sink.AddMaterialAsset(mgl32.Vec3{1, 1, 1})
		transform := mgl32.Translate3D(
			float32(key.Pos.X*voxel.ChunkSize),
			float32(key.SectionY*voxel.ChunkSize),
			float32(key.Pos.Z*voxel.ChunkSize),
		)
		rs.sectionEntities[key] = sink.Spawn(meshHandle, materialHandle, transform, key.Pos)
		spawned++
	}
	rs.log.Debug("joinMeshTasks", slog.Int("spawned", spawned))
}

func unloadMeshes(rs *ResidentSet, sink render.Sink) {
	defer profiling.Track("stream.unloadMeshes")()
	rs.mu.Lock()
	defer rs.mu.Unlock()
	despawned := 0
	for _, u := range rs.meshToUnload.Drain() {
		for y := 0; y < u.SectionCount; y++ {
			key := meshKey{Pos: u.Pos, SectionY: y}
			if h, ok := rs.sectionEntities[key]; ok {
				sink.Despawn(h)
				delete(rs.sectionEntities, key)
				despawned++
			}
		}
	}
	rs.log.Debug("unloadMeshes", slog.Int("despawned", despawned))
}

func unloadData(rs *ResidentSet) {
	defer profiling.Track("stream.unloadData")()
	rs.mu.Lock()
	defer rs.mu.Unlock()
	unloaded := 0
	for _, pos := range rs.dataToUnload.Drain() {
		chunk, ok := rs.loadedChunks[pos]
		if !ok {
			continue
		}
		delete(rs.loadedChunks, pos)
		rs.meshToUnload.Push(meshUnload{Pos: pos, SectionCount: chunk.SectionCount()})
		unloaded++
	}
	rs.log.Debug("unloadData", slog.Int("unloaded", unloaded))
}
