package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestObjectStore(t *testing.T, cacheSize int) *ObjectStore {
	t.Helper()
	s, err := NewObjectStore(filepath.Join(t.TempDir(), "objects"), cacheSize)
	require.NoError(t, err)
	return s
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(dir, func(_ string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			n++
		}
		return nil
	})
	require.NoError(t, err)
	return n
}

func TestObjectStore_PutIsIdempotent(t *testing.T) {
	s := newTestObjectStore(t, 0)

	h1, err := s.Put([]byte("same content"))
	require.NoError(t, err)
	h2, err := s.Put([]byte("same content"))
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Equal(t, 1, countFiles(t, s.dir))
}

func TestObjectStore_ShardedLayout(t *testing.T) {
	s := newTestObjectStore(t, 0)

	h, err := s.Put([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", h)

	data, err := os.ReadFile(filepath.Join(s.dir, "a9", "993e364706816aba3e25717850c26c9cd0d89d"))
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
}

func TestObjectStore_GetNotFound(t *testing.T) {
	s := newTestObjectStore(t, 16)

	_, err := s.Get("a9993e364706816aba3e25717850c26c9cd0d89d")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Get("../../etc/passwd")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestObjectStore_GetThroughCache(t *testing.T) {
	s := newTestObjectStore(t, 16)

	h, err := s.Put([]byte("cached"))
	require.NoError(t, err)

	got, err := s.Get(h)
	require.NoError(t, err)
	got[0] = 'X'

	again, err := s.Get(h)
	require.NoError(t, err)
	assert.Equal(t, "cached", string(again), "cache must not alias caller buffers")

	uncached, err := NewObjectStore(s.dir, 0)
	require.NoError(t, err)
	fromDisk, err := uncached.Get(h)
	require.NoError(t, err)
	assert.Equal(t, "cached", string(fromDisk))
}

func TestObjectStore_ResolvePrefix(t *testing.T) {
	s := newTestObjectStore(t, 0)

	h, err := s.Put([]byte("abc"))
	require.NoError(t, err)

	for _, prefix := range []string{h, h[:7], h[:2], h[:1]} {
		got, err := s.ResolvePrefix(prefix)
		require.NoError(t, err, prefix)
		assert.Equal(t, h, got, prefix)
	}

	_, err = s.ResolvePrefix("ffff")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.ResolvePrefix("")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.ResolvePrefix("zz")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestObjectStore_ResolvePrefixFirstMatchWins(t *testing.T) {
	s := newTestObjectStore(t, 0)

	shard := filepath.Join(s.dir, "ab")
	require.NoError(t, os.MkdirAll(shard, 0755))
	first := "00000000000000000000000000000000000001"
	second := "00000000000000000000000000000000000002"
	require.NoError(t, os.WriteFile(filepath.Join(shard, second), []byte("2"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(shard, first), []byte("1"), 0644))

	got, err := s.ResolvePrefix("ab0000")
	require.NoError(t, err)
	assert.Equal(t, "ab"+first, got)
}

func TestObjectStore_List(t *testing.T) {
	s := newTestObjectStore(t, 0)

	var want []string
	for _, c := range []string{"one", "two", "three"} {
		h, err := s.Put([]byte(c))
		require.NoError(t, err)
		want = append(want, h)
	}

	got, err := s.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, want, got)
	assert.IsIncreasing(t, got)
}
