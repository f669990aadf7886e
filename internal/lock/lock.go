// Package lock provides an exclusive lock file guarding a repository
// against a second concurrent invocation.
//
// On unix the lock is a kernel flock on the file, so it disappears with
// the owning process; a lock file left behind by a crash does not block
// later invocations. The file itself persists and holds the owner's pid.
package lock

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// ErrLocked is returned when another process holds the lock.
var ErrLocked = errors.New("lock: already held")

// File is a held lock.
type File struct {
	f *os.File
}

// Acquire takes the lock at path without blocking, creating the file if
// needed, and records the owning pid in it.
func Acquire(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	if err := tryLock(f); err != nil {
		f.Close()
		if errors.Is(err, ErrLocked) {
			return nil, fmt.Errorf("%s: %w", path, ErrLocked)
		}
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}

	err = f.Truncate(0)
	if err == nil {
		_, err = f.WriteAt([]byte(strconv.Itoa(os.Getpid())), 0)
	}
	if err != nil {
		unlock(f)
		f.Close()
		return nil, fmt.Errorf("write lock file: %w", err)
	}
	return &File{f: f}, nil
}

// Release drops the lock. Releasing twice is a no-op.
func (l *File) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	f := l.f
	l.f = nil
	uerr := unlock(f)
	if err := f.Close(); err != nil && uerr == nil {
		uerr = err
	}
	if uerr != nil {
		return fmt.Errorf("release lock: %w", uerr)
	}
	return nil
}
