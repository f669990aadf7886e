package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// RefStore manages branch name -> commit hash mappings and the HEAD pointer.
// Each branch is a file in the branches directory whose content is the hash;
// HEAD holds the name of the current branch.
type RefStore struct {
	dir      string
	headPath string
}

// NewRefStore creates a RefStore over the given branches directory and HEAD file.
func NewRefStore(dir, headPath string) (*RefStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return &RefStore{dir: dir, headPath: headPath}, nil
}

// ValidName reports whether name can be used as a branch file name.
func ValidName(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return false
	}
	return !strings.ContainsAny(name, `/\`+"\x00")
}

// Get resolves a branch to its commit hash.
func (r *RefStore) Get(name string) (string, error) {
	if !ValidName(name) {
		return "", fmt.Errorf("branch %q: %w", name, ErrInvalidName)
	}
	data, err := os.ReadFile(r.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("branch %s: %w", name, ErrNotFound)
		}
		return "", fmt.Errorf("read branch %s: %w", name, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Set points a branch at hash, creating it if needed.
func (r *RefStore) Set(name, hash string) error {
	if !ValidName(name) {
		return fmt.Errorf("branch %q: %w", name, ErrInvalidName)
	}
	if err := SafeWrite(r.path(name), []byte(hash), 0644); err != nil {
		return fmt.Errorf("write branch %s: %w", name, err)
	}
	return nil
}

// Has checks if a branch exists.
func (r *RefStore) Has(name string) bool {
	if !ValidName(name) {
		return false
	}
	_, err := os.Stat(r.path(name))
	return err == nil
}

// Delete removes a branch.
func (r *RefStore) Delete(name string) error {
	if !ValidName(name) {
		return fmt.Errorf("branch %q: %w", name, ErrInvalidName)
	}
	if err := os.Remove(r.path(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("branch %s: %w", name, ErrNotFound)
		}
		return fmt.Errorf("delete branch %s: %w", name, err)
	}
	return nil
}

// List returns all branch names, sorted.
func (r *RefStore) List() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !ValidName(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Head returns the name of the current branch.
func (r *RefStore) Head() (string, error) {
	data, err := os.ReadFile(r.headPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("HEAD: %w", ErrNotFound)
		}
		return "", fmt.Errorf("read HEAD: %w", err)
	}
	name := strings.TrimSpace(string(data))
	if name == "" {
		return "", fmt.Errorf("HEAD is empty: %w", ErrNotFound)
	}
	return name, nil
}

// SetHead makes name the current branch.
func (r *RefStore) SetHead(name string) error {
	if !ValidName(name) {
		return fmt.Errorf("branch %q: %w", name, ErrInvalidName)
	}
	if err := SafeWrite(r.headPath, []byte(name), 0644); err != nil {
		return fmt.Errorf("write HEAD: %w", err)
	}
	return nil
}

func (r *RefStore) path(name string) string {
	return filepath.Join(r.dir, name)
}
