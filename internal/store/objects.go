package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aweris/gitlet/internal/digest"
)

// ObjectStore implements content-addressed storage on the local filesystem.
// Objects are immutable: Put of existing content is a no-op.
type ObjectStore struct {
	dir   string
	cache Cache
}

// NewObjectStore opens (creating if needed) an object store rooted at dir.
// A cacheSize <= 0 disables the in-memory cache.
func NewObjectStore(dir string, cacheSize int) (*ObjectStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	var cache Cache = noCache{}
	if cacheSize > 0 {
		c, err := NewLRUCache(cacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create cache: %w", err)
		}
		cache = c
	}

	return &ObjectStore{dir: dir, cache: cache}, nil
}

// Put stores an object and returns its hash.
func (s *ObjectStore) Put(data []byte) (string, error) {
	hash, err := digest.Sum(data)
	if err != nil {
		return "", err
	}

	path := s.Path(hash)
	if _, err := os.Stat(path); err == nil {
		return hash, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := SafeWrite(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write object: %w", err)
	}

	s.cache.Add(hash, data)
	return hash, nil
}

// Get retrieves an object by hash.
func (s *ObjectStore) Get(hash string) ([]byte, error) {
	if data, ok := s.cache.Get(hash); ok {
		return data, nil
	}
	if !digest.IsFull(hash) {
		return nil, fmt.Errorf("object %q: %w", hash, ErrNotFound)
	}

	data, err := os.ReadFile(s.Path(hash))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("object %s: %w", hash, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read object: %w", err)
	}

	s.cache.Add(hash, data)
	return data, nil
}

// Has checks if an object exists.
func (s *ObjectStore) Has(hash string) bool {
	if s.cache.Has(hash) {
		return true
	}
	if !digest.IsFull(hash) {
		return false
	}
	_, err := os.Stat(s.Path(hash))
	return err == nil
}

// ResolvePrefix expands an abbreviated hash to the full hash of a stored
// object. Shards and file names are scanned in lexical order and the first
// match wins; no ambiguity check is made.
func (s *ObjectStore) ResolvePrefix(prefix string) (string, error) {
	if !digest.IsHex(prefix) || len(prefix) > digest.Size {
		return "", fmt.Errorf("object prefix %q: %w", prefix, ErrNotFound)
	}
	if len(prefix) == digest.Size {
		if s.Has(prefix) {
			return prefix, nil
		}
		return "", fmt.Errorf("object %s: %w", prefix, ErrNotFound)
	}

	shards, err := s.shards()
	if err != nil {
		return "", err
	}
	for _, shard := range shards {
		var rest string
		switch {
		case len(prefix) >= digest.ShardLen:
			if shard != prefix[:digest.ShardLen] {
				continue
			}
			rest = prefix[digest.ShardLen:]
		case !strings.HasPrefix(shard, prefix):
			continue
		}

		names, err := s.shardEntries(shard)
		if err != nil {
			return "", err
		}
		for _, name := range names {
			if strings.HasPrefix(name, rest) {
				return shard + name, nil
			}
		}
	}
	return "", fmt.Errorf("object prefix %s: %w", prefix, ErrNotFound)
}

// List returns every stored hash in lexical order.
func (s *ObjectStore) List() ([]string, error) {
	shards, err := s.shards()
	if err != nil {
		return nil, err
	}
	var hashes []string
	for _, shard := range shards {
		names, err := s.shardEntries(shard)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			hashes = append(hashes, shard+name)
		}
	}
	return hashes, nil
}

// Path returns the filesystem path for an object hash.
// Git-style sharding: ab/cd123...
func (s *ObjectStore) Path(hash string) string {
	shard, rest := digest.Split(hash)
	if rest == "" {
		return filepath.Join(s.dir, shard)
	}
	return filepath.Join(s.dir, shard, rest)
}

func (s *ObjectStore) shards() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list shards: %w", err)
	}
	shards := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() && len(e.Name()) == digest.ShardLen && digest.IsHex(e.Name()) {
			shards = append(shards, e.Name())
		}
	}
	return shards, nil
}

func (s *ObjectStore) shardEntries(shard string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, shard))
	if err != nil {
		return nil, fmt.Errorf("list shard %s: %w", shard, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.Type().IsRegular() && len(name) == digest.Size-digest.ShardLen && digest.IsHex(name) {
			names = append(names, name)
		}
	}
	return names, nil
}
