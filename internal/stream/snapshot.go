package stream

// ResidentSnapshot is a point-in-time, read-only view of a ResidentSet's
// internal bookkeeping, for diagnostics and tests. It holds plain values
// only, never pointers back into the ResidentSet, so it stays valid after
// the set it was taken from keeps mutating.
type ResidentSnapshot struct {
	LoadedChunks int
	RenderedMesh int

	DataToLoad   int
	DataToUnload int
	MeshToLoad   int
	MeshToUnload int

	DataTasksInFlight int
	MeshTasksInFlight int
}

// Snapshot captures the current state of rs.
func (rs *ResidentSet) Snapshot() ResidentSnapshot {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return ResidentSnapshot{
		LoadedChunks:      len(rs.loadedChunks),
		RenderedMesh:      len(rs.sectionEntities),
		DataToLoad:        rs.dataToLoad.Len(),
		DataToUnload:      rs.dataToUnload.Len(),
		MeshToLoad:        rs.meshToLoad.Len(),
		MeshToUnload:      rs.meshToUnload.Len(),
		DataTasksInFlight: len(rs.dataTasks),
		MeshTasksInFlight: len(rs.meshTasks),
	}
}
