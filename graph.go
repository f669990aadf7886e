package gitlet

import "iter"

// LogEntry pairs a commit with its digest.
type LogEntry struct {
	Digest Digest
	Commit *Commit
}

// Ancestors returns every commit reachable from start through any parent
// edge, start included.
func (r *Repository) Ancestors(start Digest) (map[Digest]struct{}, error) {
	seen := map[Digest]struct{}{start: {}}
	queue := []Digest{start}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		c, err := r.ReadCommit(id)
		if err != nil {
			return nil, err
		}
		for _, p := range c.parents {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			queue = append(queue, p)
		}
	}
	return seen, nil
}

// SplitPoint returns the merge base of a and b: the first ancestor of a
// met by a breadth-first walk from b, parents visited in order. This is a
// common ancestor with the fewest hops from b, not necessarily the best
// common ancestor in criss-cross histories, and SplitPoint(a, b) may differ
// from SplitPoint(b, a).
func (r *Repository) SplitPoint(a, b Digest) (Digest, error) {
	ancestors, err := r.Ancestors(a)
	if err != nil {
		return "", err
	}

	visited := map[Digest]struct{}{b: {}}
	queue := []Digest{b}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if _, ok := ancestors[id]; ok {
			return id, nil
		}
		c, err := r.ReadCommit(id)
		if err != nil {
			return "", err
		}
		for _, p := range c.parents {
			if _, ok := visited[p]; ok {
				continue
			}
			visited[p] = struct{}{}
			queue = append(queue, p)
		}
	}
	// Unreachable in a repository with a single root commit.
	return "", newError(ErrNotFound, "No common ancestor exists.")
}

// History walks the first-parent chain from head down to the root commit.
// A failed read is yielded once and ends the walk.
func (r *Repository) History(head Digest) iter.Seq2[LogEntry, error] {
	return func(yield func(LogEntry, error) bool) {
		id := head
		for id != "" {
			c, err := r.ReadCommit(id)
			if err != nil {
				yield(LogEntry{}, err)
				return
			}
			if !yield(LogEntry{Digest: id, Commit: c}, nil) {
				return
			}
			id = c.Parent()
		}
	}
}
