package core

// Snapshot is a point-in-time copy of container state: a deep clone of the
// binding registry plus the middleware reference in force when it was
// taken. Snapshots stack; Restore pops the most recent.
type Snapshot struct {
	Bindings   *Lookup
	Middleware Next
}

func newSnapshot(bindings *Lookup, middleware Next) *Snapshot {
	return &Snapshot{
		Bindings:   bindings,
		Middleware: middleware,
	}
}
