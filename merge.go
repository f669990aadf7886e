package gitlet

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// MergeOutcome tells how a merge was resolved.
type MergeOutcome int

const (
	// MergeCommitted means a two-parent merge commit was created.
	MergeCommitted MergeOutcome = iota
	// MergeFastForward means the current branch was moved to the given
	// branch's head without a new commit.
	MergeFastForward
)

func (o MergeOutcome) String() string {
	switch o {
	case MergeCommitted:
		return "committed"
	case MergeFastForward:
		return "fast-forward"
	default:
		return "unknown"
	}
}

// MergeResult describes a completed merge.
type MergeResult struct {
	Outcome    MergeOutcome
	Commit     Digest
	SplitPoint Digest
	Taken      []string
	Deleted    []string
	Conflicts  []string
}

// HasConflicts reports whether conflict markers were written.
func (m *MergeResult) HasConflicts() bool { return len(m.Conflicts) > 0 }

// Message returns the line reported to the user, or "" for a clean merge.
func (m *MergeResult) Message() string {
	switch {
	case m.Outcome == MergeFastForward:
		return "Current branch fast-forwarded."
	case m.HasConflicts():
		return "Encountered a merge conflict."
	default:
		return ""
	}
}

// mergePlan is the per-file classification of a three-way merge. Names are
// sorted.
type mergePlan struct {
	take     []string
	remove   []string
	conflict []string
}

// classifyMerge decides what happens to every file named by the split
// point, the current head or the other head.
func classifyMerge(split, cur, other Snapshot) mergePlan {
	names := make(map[string]struct{}, len(split)+len(cur)+len(other))
	for _, s := range []Snapshot{split, cur, other} {
		for name := range s {
			names[name] = struct{}{}
		}
	}

	var plan mergePlan
	for name := range names {
		s, inS := split[name]
		c, inC := cur[name]
		m, inM := other[name]

		curChanged := inS != inC || s != c
		otherChanged := inS != inM || s != m
		sameResult := inC == inM && c == m

		switch {
		case !otherChanged || sameResult:
			// Untouched by the other side, or both sides agree.
		case !curChanged:
			if inM {
				plan.take = append(plan.take, name)
			} else {
				plan.remove = append(plan.remove, name)
			}
		case !inS && inC && inM,
			inS && inC && inM,
			inS && inC && !inM,
			inS && !inC && inM:
			plan.conflict = append(plan.conflict, name)
		}
	}

	sort.Strings(plan.take)
	sort.Strings(plan.remove)
	sort.Strings(plan.conflict)
	return plan
}

// conflictContent renders whole-file conflict markers. A side without a
// version contributes nothing.
func conflictContent(cur, other []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("<<<<<<< HEAD\n")
	buf.Write(cur)
	buf.WriteString("=======\n")
	buf.Write(other)
	buf.WriteString(">>>>>>>\n")
	return buf.Bytes()
}

// Merge merges branch into the current branch.
func (r *Repository) Merge(branch string) (*MergeResult, error) {
	log := r.log.WithFields(logrus.Fields{"op": "merge", "branch": branch})

	if !r.refs.Has(branch) {
		return nil, newError(ErrNotFound, "A branch with that name does not exist.")
	}
	current, err := r.CurrentBranch()
	if err != nil {
		return nil, err
	}
	if current == branch {
		return nil, newError(ErrPrecondition, "Cannot merge a branch with itself.")
	}
	x, err := r.Index()
	if err != nil {
		return nil, err
	}
	if !x.IsEmpty() {
		return nil, newError(ErrPrecondition, "You have uncommitted changes.")
	}

	curID, cur, err := r.Head()
	if err != nil {
		return nil, err
	}
	otherID, err := r.BranchHead(branch)
	if err != nil {
		return nil, err
	}
	splitID, err := r.SplitPoint(curID, otherID)
	if err != nil {
		return nil, err
	}
	log = log.WithField("split", splitID.Short())

	if otherID == splitID {
		return nil, newError(ErrNothingToDo, "Given branch is an ancestor of the current branch.")
	}

	other, err := r.ReadCommit(otherID)
	if err != nil {
		return nil, err
	}

	if curID == splitID {
		if err := r.checkoutCommit(cur, x, other); err != nil {
			return nil, err
		}
		if err := r.refs.Set(current, string(otherID)); err != nil {
			return nil, err
		}
		log.WithField("commit", otherID.Short()).Debug("fast-forwarded")
		return &MergeResult{Outcome: MergeFastForward, Commit: otherID, SplitPoint: splitID}, nil
	}

	split, err := r.ReadCommit(splitID)
	if err != nil {
		return nil, err
	}
	if err := r.checkUntracked(cur.files, other); err != nil {
		return nil, err
	}

	plan := classifyMerge(split.files, cur.files, other.files)

	// Read everything before the first write so a missing object aborts
	// with the working directory untouched.
	taken := make(map[string][]byte, len(plan.take))
	for _, name := range plan.take {
		data, err := r.ReadBlob(other.files[name])
		if err != nil {
			return nil, err
		}
		taken[name] = data
	}
	conflicts := make(map[string][]byte, len(plan.conflict))
	for _, name := range plan.conflict {
		var curData, otherData []byte
		if id, ok := cur.BlobOf(name); ok {
			if curData, err = r.ReadBlob(id); err != nil {
				return nil, err
			}
		}
		if id, ok := other.BlobOf(name); ok {
			if otherData, err = r.ReadBlob(id); err != nil {
				return nil, err
			}
		}
		conflicts[name] = conflictContent(curData, otherData)
	}

	for _, name := range plan.take {
		if err := r.writeWorkingFile(name, taken[name]); err != nil {
			return nil, err
		}
		x.staged[name] = other.files[name]
	}
	for _, name := range plan.remove {
		if err := r.deleteWorkingFile(name); err != nil {
			return nil, err
		}
		x.removed[name] = cur.files[name]
	}
	for _, name := range plan.conflict {
		id, err := r.writeBlob(conflicts[name])
		if err != nil {
			return nil, err
		}
		if err := r.writeWorkingFile(name, conflicts[name]); err != nil {
			return nil, err
		}
		delete(x.removed, name)
		x.staged[name] = id
	}

	merge := NewCommit(
		r.opts.Now(),
		fmt.Sprintf("Merged %s into %s.", branch, current),
		[]Digest{curID, otherID},
		x.Effective(cur),
	)
	mergeID, err := r.writeCommit(merge)
	if err != nil {
		return nil, err
	}
	if err := r.refs.Set(current, string(mergeID)); err != nil {
		return nil, err
	}
	x.Clear()
	if err := r.saveIndex(x); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"commit":    mergeID.Short(),
		"taken":     len(plan.take),
		"deleted":   len(plan.remove),
		"conflicts": len(plan.conflict),
	}).Debug("merge committed")

	return &MergeResult{
		Outcome:    MergeCommitted,
		Commit:     mergeID,
		SplitPoint: splitID,
		Taken:      plan.take,
		Deleted:    plan.remove,
		Conflicts:  plan.conflict,
	}, nil
}
