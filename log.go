package gitlet

import (
	"fmt"
	"iter"
	"strings"
	"time"
)

// DateLayout is the timestamp format of log entries.
const DateLayout = "Mon Jan 2 15:04:05 2006 -0700"

// Log returns the first-parent history of the current branch, newest first.
func (r *Repository) Log() ([]LogEntry, error) {
	head, _, err := r.Head()
	if err != nil {
		return nil, err
	}
	var entries []LogEntry
	for e, err := range r.History(head) {
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// AllCommits yields every stored commit in digest order.
func (r *Repository) AllCommits() iter.Seq2[LogEntry, error] {
	return func(yield func(LogEntry, error) bool) {
		ids, err := r.commits.List()
		if err != nil {
			yield(LogEntry{}, fmt.Errorf("list commits: %w", err))
			return
		}
		for _, h := range ids {
			id := Digest(h)
			c, err := r.ReadCommit(id)
			if err != nil {
				yield(LogEntry{}, err)
				return
			}
			if !yield(LogEntry{Digest: id, Commit: c}, nil) {
				return
			}
		}
	}
}

// GlobalLog returns every commit ever made, in digest order.
func (r *Repository) GlobalLog() ([]LogEntry, error) {
	var entries []LogEntry
	for e, err := range r.AllCommits() {
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Format renders the entry in the given location.
func (e LogEntry) Format(loc *time.Location) string {
	var b strings.Builder
	b.WriteString("===\n")
	fmt.Fprintf(&b, "commit %s\n", e.Digest)
	if e.Commit.IsMerge() {
		fmt.Fprintf(&b, "Merge: %s %s\n", e.Commit.parents[0].Short(), e.Commit.parents[1].Short())
	}
	fmt.Fprintf(&b, "Date: %s\n", e.Commit.Timestamp().In(loc).Format(DateLayout))
	b.WriteString(e.Commit.Message())
	b.WriteString("\n\n")
	return b.String()
}

// String renders the entry in local time.
func (e LogEntry) String() string {
	return e.Format(time.Local)
}
