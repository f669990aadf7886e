//go:build !unix

package lock

import (
	"errors"
	"io/fs"
	"os"
)

// Without flock the lock is a marker file created next to path.
// TODO: use LockFileEx on windows so a crashed process releases the lock.

func tryLock(f *os.File) error {
	m, err := os.OpenFile(f.Name()+".held", os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if errors.Is(err, fs.ErrExist) {
		return ErrLocked
	}
	if err != nil {
		return err
	}
	return m.Close()
}

func unlock(f *os.File) error {
	err := os.Remove(f.Name() + ".held")
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
