// Package store implements the on-disk storage layer of a repository.
//
// ObjectStore keeps immutable, content-addressed objects in a git-style
// sharded layout; RefStore keeps mutable branch pointers and HEAD as plain
// text files:
//
//	objects/blobs/
//	  ab/cd123...   (raw blob bytes)
//	objects/commits/
//	  ab/cd123...   (encoded commit)
//	branches/
//	  master        (plain text: "abcd123...")
//	HEAD            (plain text: "master")
package store

import "errors"

var (
	ErrNotFound    = errors.New("store: not found")
	ErrInvalidName = errors.New("store: invalid ref name")
)
