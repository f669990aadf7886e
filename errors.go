package gitlet

import (
	"errors"
	"fmt"
)

// Error kinds. Every user-facing failure returned by a Repository wraps
// exactly one of these, so callers can branch with errors.Is.
var (
	ErrUsage              = errors.New("gitlet: usage")
	ErrNotInitialized     = errors.New("gitlet: not initialized")
	ErrAlreadyInitialized = errors.New("gitlet: already initialized")
	ErrNotFound           = errors.New("gitlet: not found")
	ErrNothingToDo        = errors.New("gitlet: nothing to do")
	ErrAlreadyExists      = errors.New("gitlet: already exists")
	ErrPrecondition       = errors.New("gitlet: precondition failed")
	ErrOverwriteHazard    = errors.New("gitlet: untracked file would be overwritten")
	ErrLocked             = errors.New("gitlet: repository is locked")
)

// Error is a user-facing failure: a kind plus the single-line message to
// show. No state has been mutated when one is returned.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// User-facing messages shared by several operations.
const (
	msgNoSuchCommit   = "No commit with that id exists."
	msgUntrackedInWay = "There is an untracked file in the way; delete it, or add and commit it first."
)
