package gitlet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aweris/gitlet/internal/lock"
	"github.com/aweris/gitlet/internal/store"
)

const initialCommitMessage = "initial commit"

// layout holds every path of a repository, derived once from its root.
type layout struct {
	Root     string
	Meta     string
	Head     string
	Index    string
	Lock     string
	Branches string
	Blobs    string
	Commits  string
}

func newLayout(root, metaDir string) layout {
	meta := filepath.Join(root, metaDir)
	objects := filepath.Join(meta, "objects")
	return layout{
		Root:     root,
		Meta:     meta,
		Head:     filepath.Join(meta, "HEAD"),
		Index:    filepath.Join(meta, "INDEX"),
		Lock:     filepath.Join(meta, "lock"),
		Branches: filepath.Join(meta, "branches"),
		Blobs:    filepath.Join(objects, "blobs"),
		Commits:  filepath.Join(objects, "commits"),
	}
}

// Repository is an opened repository: its working directory, object
// stores, references and staging index. It holds the repository lock until
// Close.
type Repository struct {
	paths   layout
	opts    *Options
	log     logrus.FieldLogger
	blobs   *store.ObjectStore
	commits *store.ObjectStore
	refs    *store.RefStore
	lock    *lock.File
}

// Init creates a repository at root with an initial commit on the default
// branch and returns it opened.
func Init(root string, opts ...Option) (*Repository, error) {
	options := applyOptions(opts)
	paths := newLayout(root, options.MetaDir)

	if _, err := os.Stat(paths.Meta); err == nil {
		return nil, newError(ErrAlreadyInitialized,
			"A Gitlet version-control system already exists in the current directory.")
	}
	if err := os.MkdirAll(paths.Meta, 0755); err != nil {
		return nil, fmt.Errorf("create metadata dir: %w", err)
	}

	r, err := open(paths, options)
	if err != nil {
		return nil, err
	}

	root0 := NewCommit(time.Unix(0, 0), initialCommitMessage, nil, nil)
	id, err := r.writeCommit(root0)
	if err == nil {
		err = r.refs.Set(options.DefaultBranch, string(id))
	}
	if err == nil {
		err = r.refs.SetHead(options.DefaultBranch)
	}
	if err == nil {
		err = saveIndex(paths.Index, newIndex())
	}
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("init repository: %w", err)
	}

	r.log.WithFields(logrus.Fields{"op": "init", "branch": options.DefaultBranch, "commit": id}).
		Debug("repository initialized")
	return r, nil
}

// Open opens an existing repository at root.
func Open(root string, opts ...Option) (*Repository, error) {
	options := applyOptions(opts)
	paths := newLayout(root, options.MetaDir)

	info, err := os.Stat(paths.Meta)
	if err != nil || !info.IsDir() {
		return nil, newError(ErrNotInitialized, "Not in an initialized Gitlet directory.")
	}
	return open(paths, options)
}

func applyOptions(opts []Option) *Options {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}

func open(paths layout, options *Options) (*Repository, error) {
	l, err := lock.Acquire(paths.Lock)
	if err != nil {
		if errors.Is(err, lock.ErrLocked) {
			return nil, newError(ErrLocked, "Another gitlet process is using this repository.")
		}
		return nil, err
	}

	blobs, err := store.NewObjectStore(paths.Blobs, options.CacheSize)
	if err != nil {
		l.Release()
		return nil, err
	}
	commits, err := store.NewObjectStore(paths.Commits, options.CacheSize)
	if err != nil {
		l.Release()
		return nil, err
	}
	refs, err := store.NewRefStore(paths.Branches, paths.Head)
	if err != nil {
		l.Release()
		return nil, err
	}

	return &Repository{
		paths:   paths,
		opts:    options,
		log:     options.Logger,
		blobs:   blobs,
		commits: commits,
		refs:    refs,
		lock:    l,
	}, nil
}

// Close releases the repository lock.
func (r *Repository) Close() error {
	return r.lock.Release()
}

// Root returns the working directory path.
func (r *Repository) Root() string { return r.paths.Root }

// MetaDir returns the metadata directory path.
func (r *Repository) MetaDir() string { return r.paths.Meta }

// CurrentBranch returns the branch HEAD points to.
func (r *Repository) CurrentBranch() (string, error) {
	name, err := r.refs.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	return name, nil
}

// Branches returns every branch name, sorted.
func (r *Repository) Branches() ([]string, error) {
	return r.refs.List()
}

// BranchHead returns the commit a branch points to.
func (r *Repository) BranchHead(name string) (Digest, error) {
	h, err := r.refs.Get(name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidName) {
			return "", newError(ErrNotFound, "No such branch exists.")
		}
		return "", err
	}
	return Digest(h), nil
}

// Head returns the digest and commit of the current branch head.
func (r *Repository) Head() (Digest, *Commit, error) {
	branch, err := r.CurrentBranch()
	if err != nil {
		return "", nil, err
	}
	id, err := r.BranchHead(branch)
	if err != nil {
		return "", nil, fmt.Errorf("branch %s: %w", branch, err)
	}
	c, err := r.ReadCommit(id)
	if err != nil {
		return "", nil, err
	}
	return id, c, nil
}

// ReadCommit loads a commit by its full digest.
func (r *Repository) ReadCommit(id Digest) (*Commit, error) {
	data, err := r.commits.Get(string(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, newError(ErrNotFound, msgNoSuchCommit)
		}
		return nil, err
	}
	c, err := DecodeCommit(data)
	if err != nil {
		return nil, fmt.Errorf("commit %s: %w", id, err)
	}
	return c, nil
}

// ResolveCommit expands a full or abbreviated commit id.
func (r *Repository) ResolveCommit(id string) (Digest, error) {
	h, err := r.commits.ResolvePrefix(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", newError(ErrNotFound, msgNoSuchCommit)
		}
		return "", err
	}
	return Digest(h), nil
}

// ReadBlob loads blob content by digest.
func (r *Repository) ReadBlob(id Digest) ([]byte, error) {
	data, err := r.blobs.Get(string(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, newError(ErrNotFound, "Blob %s does not exist.", id)
		}
		return nil, err
	}
	return data, nil
}

// Index loads the staging index.
func (r *Repository) Index() (*Index, error) {
	return loadIndex(r.paths.Index)
}

func (r *Repository) saveIndex(x *Index) error {
	return saveIndex(r.paths.Index, x)
}

func (r *Repository) writeBlob(data []byte) (Digest, error) {
	h, err := r.blobs.Put(data)
	if err != nil {
		return "", fmt.Errorf("store blob: %w", err)
	}
	return Digest(h), nil
}

func (r *Repository) writeCommit(c *Commit) (Digest, error) {
	data, err := c.Encode()
	if err != nil {
		return "", fmt.Errorf("encode commit: %w", err)
	}
	h, err := r.commits.Put(data)
	if err != nil {
		return "", fmt.Errorf("store commit: %w", err)
	}
	return Digest(h), nil
}

// moveCurrentBranch points the current branch at id.
func (r *Repository) moveCurrentBranch(id Digest) (string, error) {
	branch, err := r.CurrentBranch()
	if err != nil {
		return "", err
	}
	if err := r.refs.Set(branch, string(id)); err != nil {
		return "", err
	}
	return branch, nil
}
