package stream

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"voxelstream/internal/voxel"
)

// Observer is a moving camera/player whose position drives chunk
// loading. Only the XZ plane matters; height never affects which
// columns are resident.
type Observer struct {
	ID       uint64
	Position mgl32.Vec2
}

// ObserverSource supplies the current set of observers each tick. The
// bootstrap binds this to a real input collaborator (adapter/observerinput
// integrates one observer's position from a GLFW window's WASD keys);
// Tick itself takes a plain []Observer, so tests and headless callers
// pass a literal slice instead.
type ObserverSource interface {
	Observers() []Observer
}

// DistanceMode selects the metric ChunkLoader uses to decide which
// chunks are "in radius".
type DistanceMode int

const (
	// Euclidean includes positions with x²+z² <= radius², a circular
	// footprint.
	Euclidean DistanceMode = iota
	// Chebyshev includes positions with max(|x|,|z|) <= radius, a
	// square footprint instead of a circular one.
	Chebyshev
)

// ChunkLoader tracks one observer's desired chunk set and emits
// load/unload calls against a ResidentSet as that set changes.
type ChunkLoader struct {
	Distance int
	Mode     DistanceMode

	previousChunk voxel.ChunkPos
	hasPrevious   bool
}

// NewChunkLoader returns a loader with the given radius and metric.
func NewChunkLoader(distance int, mode DistanceMode) *ChunkLoader {
	return &ChunkLoader{Distance: distance, Mode: mode}
}

// Update recomputes the desired set for observer and issues the
// load/unload calls for its symmetric difference against the previous
// tick's desired set. It is a no-op if the observer has not crossed
// into a new chunk since the last call.
func (l *ChunkLoader) Update(observer Observer, rs *ResidentSet) {
	current := voxel.ChunkPos{
		X: int(math.Floor(float64(observer.Position.X()) / float64(voxel.ChunkSize))),
		Z: int(math.Floor(float64(observer.Position.Y()) / float64(voxel.ChunkSize))),
	}
	if l.hasPrevious && current == l.previousChunk {
		return
	}
	previous := l.previousChunk
	hadPrevious := l.hasPrevious
	l.previousChunk = current
	l.hasPrevious = true

	desired := chunksInRadius(current, l.Distance, l.Mode)
	if !hadPrevious {
		for _, pos := range desired {
			rs.LoadChunk(pos)
		}
		return
	}
	previousSet := chunksInRadius(previous, l.Distance, l.Mode)

	desiredIndex := make(map[voxel.ChunkPos]struct{}, len(desired))
	for _, pos := range desired {
		desiredIndex[pos] = struct{}{}
	}
	previousIndex := make(map[voxel.ChunkPos]struct{}, len(previousSet))
	for _, pos := range previousSet {
		previousIndex[pos] = struct{}{}
	}

	for _, pos := range desired {
		if _, ok := previousIndex[pos]; !ok {
			rs.LoadChunk(pos)
		}
	}
	for _, pos := range previousSet {
		if _, ok := desiredIndex[pos]; !ok {
			rs.UnloadChunk(pos)
		}
	}
}

// chunksInRadius enumerates every ChunkPos within radius of center under
// mode, sorted ascending by squared distance from center — closest
// first, so it doubles as a load-priority order.
func chunksInRadius(center voxel.ChunkPos, radius int, mode DistanceMode) []voxel.ChunkPos {
	var out []voxel.ChunkPos
	r2 := radius * radius
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			switch mode {
			case Chebyshev:
				if dx < -radius || dx > radius || dz < -radius || dz > radius {
					continue
				}
			default:
				if dx*dx+dz*dz > r2 {
					continue
				}
			}
			out = append(out, center.Add(dx, dz))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DistanceSquared(center) < out[j].DistanceSquared(center)
	})
	return out
}
