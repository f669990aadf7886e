package gitlet

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"

	"github.com/aweris/gitlet/internal/digest"
	"github.com/aweris/gitlet/internal/store"
)

// validFileName reports whether name denotes a plain file directly under
// the repository root.
func (r *Repository) validFileName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`+"\x00") {
		return false
	}
	return name != filepath.Base(r.paths.Meta)
}

func (r *Repository) workPath(name string) string {
	return filepath.Join(r.paths.Root, name)
}

// WorkingFiles lists the regular files directly under the root, sorted.
// Directories, the metadata directory included, are skipped.
func (r *Repository) WorkingFiles() ([]string, error) {
	entries, err := os.ReadDir(r.paths.Root)
	if err != nil {
		return nil, fmt.Errorf("list working directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || !r.validFileName(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

type workingFile struct {
	name   string
	digest Digest
}

// WorkingSnapshot hashes every working file. Nothing is written to the
// object store.
func (r *Repository) WorkingSnapshot() (Snapshot, error) {
	names, err := r.WorkingFiles()
	if err != nil {
		return nil, err
	}

	p := pool.NewWithResults[workingFile]().WithErrors().WithMaxGoroutines(r.opts.Concurrency)
	for _, name := range names {
		p.Go(func() (workingFile, error) {
			data, err := os.ReadFile(r.workPath(name))
			if err != nil {
				return workingFile{}, fmt.Errorf("read %s: %w", name, err)
			}
			h, err := digest.Sum(data)
			if err != nil {
				return workingFile{}, fmt.Errorf("hash %s: %w", name, err)
			}
			return workingFile{name: name, digest: Digest(h)}, nil
		})
	}
	files, err := p.Wait()
	if err != nil {
		return nil, err
	}

	snap := make(Snapshot, len(files))
	for _, f := range files {
		snap[f.name] = f.digest
	}
	return snap, nil
}

// checkUntracked fails if a working file that tracked does not cover would
// be overwritten by target.
func (r *Repository) checkUntracked(tracked Snapshot, target *Commit) error {
	names, err := r.WorkingFiles()
	if err != nil {
		return err
	}
	for _, name := range names {
		if !tracked.Tracks(name) && target.Tracks(name) {
			r.log.WithField("file", name).Debug("untracked file would be overwritten")
			return newError(ErrOverwriteHazard, msgUntrackedInWay)
		}
	}
	return nil
}

// writeWorkingFile replaces the working copy of name, keeping the mode of
// an existing file. The tempfile lives in the metadata directory so an
// interrupted write never shows up as an untracked file.
func (r *Repository) writeWorkingFile(name string, data []byte) error {
	path := r.workPath(name)
	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		perm = info.Mode().Perm()
	}
	if err := store.SafeWriteIn(r.paths.Meta, path, data, perm); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (r *Repository) deleteWorkingFile(name string) error {
	if err := os.Remove(r.workPath(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}

// checkoutCommit makes the working directory match target: files only
// tracked by head are deleted, every file of target is written, and the
// index is cleared. Nothing is touched if an untracked file is in the way.
func (r *Repository) checkoutCommit(head *Commit, x *Index, target *Commit) error {
	if err := r.checkUntracked(x.Effective(head), target); err != nil {
		return err
	}

	contents := make(map[string][]byte, len(target.files))
	for name, id := range target.files {
		data, err := r.ReadBlob(id)
		if err != nil {
			return fmt.Errorf("checkout %s: %w", name, err)
		}
		contents[name] = data
	}

	for name := range head.files {
		if target.Tracks(name) {
			continue
		}
		if err := r.deleteWorkingFile(name); err != nil {
			return err
		}
	}
	for _, name := range target.files.Names() {
		if err := r.writeWorkingFile(name, contents[name]); err != nil {
			return err
		}
	}

	x.Clear()
	if err := r.saveIndex(x); err != nil {
		return err
	}

	r.log.WithFields(logrus.Fields{"op": "checkout", "files": len(target.files)}).
		Debug("working directory synchronized")
	return nil
}

// checkoutFile overwrites the working copy of name with its version in c.
// Untracked content is not protected.
func (r *Repository) checkoutFile(c *Commit, name string) error {
	id, ok := c.BlobOf(name)
	if !ok {
		return newError(ErrNotFound, "File does not exist in that commit.")
	}
	data, err := r.ReadBlob(id)
	if err != nil {
		return err
	}
	return r.writeWorkingFile(name, data)
}
