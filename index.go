package gitlet

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/aweris/gitlet/internal/store"
)

const indexFormatVersion = 1

// Index is the staging area: pending additions and removals layered on top
// of the HEAD commit. A name is never both staged and removed.
type Index struct {
	staged  Snapshot
	removed Snapshot
}

func newIndex() *Index {
	return &Index{staged: Snapshot{}, removed: Snapshot{}}
}

// Staged returns a copy of the pending additions and modifications.
func (x *Index) Staged() Snapshot { return x.staged.Clone() }

// Removed returns a copy of the pending removals, each remembering the
// last tracked blob.
func (x *Index) Removed() Snapshot { return x.removed.Clone() }

// IsEmpty reports whether nothing is staged or removed.
func (x *Index) IsEmpty() bool { return len(x.staged) == 0 && len(x.removed) == 0 }

// Clear drops every pending change.
func (x *Index) Clear() {
	x.staged = Snapshot{}
	x.removed = Snapshot{}
}

// Add stages name at blob d against head. It reports whether the index
// changed.
func (x *Index) Add(name string, d Digest, head *Commit) bool {
	headBlob, tracked := head.BlobOf(name)

	if rm, ok := x.removed[name]; ok && rm == d && tracked && headBlob == d {
		delete(x.removed, name)
		return true
	}

	if cur, ok := x.staged[name]; ok {
		if cur == d {
			return false
		}
	} else if tracked && headBlob == d {
		if _, ok := x.removed[name]; ok {
			delete(x.removed, name)
			return true
		}
		return false
	}

	x.staged[name] = d
	delete(x.removed, name)
	return true
}

// Remove unstages name and, if head tracks it, records it as removed.
// untrack is true when the working copy should be deleted. A name that is
// neither staged nor tracked yields ErrNothingToDo.
func (x *Index) Remove(name string, head *Commit) (untrack bool, err error) {
	_, staged := x.staged[name]
	headBlob, tracked := head.BlobOf(name)

	if !staged && !tracked {
		return false, newError(ErrNothingToDo, "No reason to remove the file.")
	}
	if staged {
		delete(x.staged, name)
	}
	if tracked {
		x.removed[name] = headBlob
	}
	return tracked, nil
}

// Effective returns base's snapshot overlaid with staged entries and with
// removed names deleted.
func (x *Index) Effective(base *Commit) Snapshot {
	out := base.Snapshot()
	for name, d := range x.staged {
		out[name] = d
	}
	for name := range x.removed {
		delete(out, name)
	}
	return out
}

type indexRecord struct {
	V       int               `msgpack:"v"`
	Staged  map[string]string `msgpack:"staged"`
	Removed map[string]string `msgpack:"removed"`
}

// Encode returns the versioned on-disk encoding of the index.
func (x *Index) Encode() ([]byte, error) {
	rec := indexRecord{
		V:       indexFormatVersion,
		Staged:  make(map[string]string, len(x.staged)),
		Removed: make(map[string]string, len(x.removed)),
	}
	for k, v := range x.staged {
		rec.Staged[k] = string(v)
	}
	for k, v := range x.removed {
		rec.Removed[k] = string(v)
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(&rec); err != nil {
		return nil, fmt.Errorf("encode index: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeIndex parses an encoded index.
func DecodeIndex(data []byte) (*Index, error) {
	var rec indexRecord
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}
	if rec.V != indexFormatVersion {
		return nil, fmt.Errorf("unsupported index format version %d", rec.V)
	}

	x := newIndex()
	for k, v := range rec.Staged {
		x.staged[k] = Digest(v)
	}
	for k, v := range rec.Removed {
		if _, ok := x.staged[k]; ok {
			return nil, fmt.Errorf("index: %q is both staged and removed", k)
		}
		x.removed[k] = Digest(v)
	}
	return x, nil
}

func loadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return newIndex(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	return DecodeIndex(data)
}

func saveIndex(path string, x *Index) error {
	data, err := x.Encode()
	if err != nil {
		return err
	}
	if err := store.SafeWrite(path, data, 0644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}
