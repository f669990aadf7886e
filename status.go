package gitlet

import (
	"sort"
	"strings"
)

// FileState describes how a working file differs from what would be
// committed.
type FileState string

const (
	FileModified FileState = "modified"
	FileDeleted  FileState = "deleted"
)

// Modification is a change present in the working directory but not staged.
type Modification struct {
	Name  string
	State FileState
}

// Status is the state of branches, index and working directory.
type Status struct {
	CurrentBranch string
	Branches      []string
	Staged        []string
	Removed       []string
	Modified      []Modification
	Untracked     []string
}

// Status compares the working directory against HEAD plus the index.
func (r *Repository) Status() (*Status, error) {
	current, err := r.CurrentBranch()
	if err != nil {
		return nil, err
	}
	branches, err := r.refs.List()
	if err != nil {
		return nil, err
	}
	_, head, err := r.Head()
	if err != nil {
		return nil, err
	}
	x, err := r.Index()
	if err != nil {
		return nil, err
	}
	working, err := r.WorkingSnapshot()
	if err != nil {
		return nil, err
	}

	st := &Status{
		CurrentBranch: current,
		Staged:        x.staged.Names(),
		Removed:       x.removed.Names(),
	}
	for _, b := range branches {
		if b != current {
			st.Branches = append(st.Branches, b)
		}
	}

	effective := x.Effective(head)
	for _, name := range effective.Names() {
		w, ok := working[name]
		switch {
		case !ok:
			st.Modified = append(st.Modified, Modification{Name: name, State: FileDeleted})
		case w != effective[name]:
			st.Modified = append(st.Modified, Modification{Name: name, State: FileModified})
		}
	}
	for _, name := range working.Names() {
		if !effective.Tracks(name) {
			st.Untracked = append(st.Untracked, name)
		}
	}
	sort.Strings(st.Branches)
	return st, nil
}

// String renders the status report.
func (s *Status) String() string {
	var b strings.Builder
	section := func(title string, lines []string) {
		b.WriteString("=== " + title + " ===\n")
		for _, l := range lines {
			b.WriteString(l)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	section("Branches", append([]string{"*" + s.CurrentBranch}, s.Branches...))
	section("Staged Files", s.Staged)
	section("Removed Files", s.Removed)

	mods := make([]string, 0, len(s.Modified))
	for _, m := range s.Modified {
		mods = append(mods, m.Name+" ("+string(m.State)+")")
	}
	section("Modifications Not Staged For Commit", mods)
	section("Untracked Files", s.Untracked)
	return b.String()
}
