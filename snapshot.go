package gitlet

import (
	"maps"
	"slices"
)

// Snapshot maps file names to blob digests: a complete tree state.
// Snapshots handed out by this package are copies; mutating one never
// changes a commit or the staging index.
type Snapshot map[string]Digest

// Clone returns an independent copy. The clone of nil is an empty snapshot.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	maps.Copy(out, s)
	return out
}

// Tracks reports whether name is present.
func (s Snapshot) Tracks(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the file names in sorted order.
func (s Snapshot) Names() []string {
	return slices.Sorted(maps.Keys(s))
}
