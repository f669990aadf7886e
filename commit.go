package gitlet

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/aweris/gitlet/internal/digest"
)

const commitFormatVersion = 1

// Commit is an immutable snapshot with a message, a timestamp and zero to
// two parents. The first parent is the mainline parent.
type Commit struct {
	timestamp time.Time
	message   string
	parents   []Digest
	files     Snapshot
}

// NewCommit builds a commit. The snapshot and parents are copied.
func NewCommit(timestamp time.Time, message string, parents []Digest, files Snapshot) *Commit {
	return &Commit{
		timestamp: time.Unix(timestamp.Unix(), 0),
		message:   message,
		parents:   slices.Clone(parents),
		files:     files.Clone(),
	}
}

func (c *Commit) Timestamp() time.Time { return c.timestamp }
func (c *Commit) Message() string      { return c.message }
func (c *Commit) Parents() []Digest    { return slices.Clone(c.parents) }
func (c *Commit) IsMerge() bool        { return len(c.parents) > 1 }
func (c *Commit) IsRoot() bool         { return len(c.parents) == 0 }

// Parent returns the mainline parent, or "" for the root commit.
func (c *Commit) Parent() Digest {
	if len(c.parents) == 0 {
		return ""
	}
	return c.parents[0]
}

// Snapshot returns a copy of the file name -> blob mapping.
func (c *Commit) Snapshot() Snapshot { return c.files.Clone() }

// Tracks reports whether the commit contains name.
func (c *Commit) Tracks(name string) bool { return c.files.Tracks(name) }

// BlobOf returns the blob digest stored for name.
func (c *Commit) BlobOf(name string) (Digest, bool) {
	d, ok := c.files[name]
	return d, ok
}

// commitRecord is the on-disk shape of a commit. Field order is part of the
// format: encoding/json emits struct fields in declaration order and map
// keys sorted, which makes the encoding canonical.
type commitRecord struct {
	V         int               `json:"v"`
	Timestamp int64             `json:"timestamp"`
	Message   string            `json:"message"`
	Parents   []string          `json:"parents"`
	Blobs     map[string]string `json:"blobs"`
}

// Encode returns the canonical encoding whose digest is the commit's identity.
func (c *Commit) Encode() ([]byte, error) {
	rec := commitRecord{
		V:         commitFormatVersion,
		Timestamp: c.timestamp.Unix(),
		Message:   c.message,
		Parents:   make([]string, 0, len(c.parents)),
		Blobs:     make(map[string]string, len(c.files)),
	}
	for _, p := range c.parents {
		rec.Parents = append(rec.Parents, string(p))
	}
	for name, d := range c.files {
		rec.Blobs[name] = string(d)
	}
	return json.Marshal(rec)
}

// Digest returns the commit's identity.
func (c *Commit) Digest() (Digest, error) {
	data, err := c.Encode()
	if err != nil {
		return "", err
	}
	h, err := digest.Sum(data)
	if err != nil {
		return "", err
	}
	return Digest(h), nil
}

// DecodeCommit parses an encoded commit.
func DecodeCommit(data []byte) (*Commit, error) {
	var rec commitRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal commit: %w", err)
	}
	if rec.V != commitFormatVersion {
		return nil, fmt.Errorf("unsupported commit format version %d", rec.V)
	}
	if len(rec.Parents) > 2 {
		return nil, fmt.Errorf("commit has %d parents", len(rec.Parents))
	}

	c := &Commit{
		timestamp: time.Unix(rec.Timestamp, 0),
		message:   rec.Message,
		parents:   make([]Digest, 0, len(rec.Parents)),
		files:     make(Snapshot, len(rec.Blobs)),
	}
	for _, p := range rec.Parents {
		c.parents = append(c.parents, Digest(p))
	}
	for name, d := range rec.Blobs {
		c.files[name] = Digest(d)
	}
	return c, nil
}
