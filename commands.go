package gitlet

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Add stores the working copy of name as a blob and stages it against HEAD.
func (r *Repository) Add(name string) error {
	if !r.validFileName(name) {
		return newError(ErrUsage, "Only files in the repository root can be added.")
	}
	data, err := os.ReadFile(r.workPath(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return newError(ErrNotFound, "File does not exist.")
		}
		return fmt.Errorf("read %s: %w", name, err)
	}

	_, head, err := r.Head()
	if err != nil {
		return err
	}
	x, err := r.Index()
	if err != nil {
		return err
	}

	id, err := r.writeBlob(data)
	if err != nil {
		return err
	}
	if !x.Add(name, id, head) {
		return nil
	}

	r.log.WithFields(logrus.Fields{"op": "add", "file": name, "blob": id.Short()}).Debug("staged")
	return r.saveIndex(x)
}

// Commit records the staged changes as a new commit on the current branch.
func (r *Repository) Commit(message string) (Digest, error) {
	if strings.TrimSpace(message) == "" {
		return "", newError(ErrUsage, "Please enter a commit message.")
	}
	x, err := r.Index()
	if err != nil {
		return "", err
	}
	if x.IsEmpty() {
		return "", newError(ErrNothingToDo, "No changes added to the commit.")
	}

	headID, head, err := r.Head()
	if err != nil {
		return "", err
	}

	c := NewCommit(r.opts.Now(), message, []Digest{headID}, x.Effective(head))
	id, err := r.writeCommit(c)
	if err != nil {
		return "", err
	}
	branch, err := r.moveCurrentBranch(id)
	if err != nil {
		return "", err
	}
	x.Clear()
	if err := r.saveIndex(x); err != nil {
		return "", err
	}

	r.log.WithFields(logrus.Fields{"op": "commit", "branch": branch, "commit": id.Short()}).Debug("committed")
	return id, nil
}

// Remove unstages name and, if HEAD tracks it, stages its removal and
// deletes the working copy.
func (r *Repository) Remove(name string) error {
	if !r.validFileName(name) {
		return newError(ErrNothingToDo, "No reason to remove the file.")
	}
	_, head, err := r.Head()
	if err != nil {
		return err
	}
	x, err := r.Index()
	if err != nil {
		return err
	}

	untrack, err := x.Remove(name, head)
	if err != nil {
		return err
	}
	if untrack {
		if err := r.deleteWorkingFile(name); err != nil {
			return err
		}
	}

	r.log.WithFields(logrus.Fields{"op": "rm", "file": name, "untracked": untrack}).Debug("removed")
	return r.saveIndex(x)
}

// CheckoutBranch switches to branch, synchronizing the working directory
// with its head.
func (r *Repository) CheckoutBranch(branch string) error {
	if !r.refs.Has(branch) {
		return newError(ErrNotFound, "No such branch exists.")
	}
	current, err := r.CurrentBranch()
	if err != nil {
		return err
	}
	if current == branch {
		return newError(ErrNothingToDo, "No need to checkout the current branch.")
	}

	targetID, err := r.BranchHead(branch)
	if err != nil {
		return err
	}
	target, err := r.ReadCommit(targetID)
	if err != nil {
		return err
	}
	_, head, err := r.Head()
	if err != nil {
		return err
	}
	x, err := r.Index()
	if err != nil {
		return err
	}

	if err := r.checkoutCommit(head, x, target); err != nil {
		return err
	}
	if err := r.refs.SetHead(branch); err != nil {
		return err
	}

	r.log.WithFields(logrus.Fields{"op": "checkout", "branch": branch, "commit": targetID.Short()}).Debug("switched branch")
	return nil
}

// CheckoutFile restores name from the HEAD commit.
func (r *Repository) CheckoutFile(name string) error {
	_, head, err := r.Head()
	if err != nil {
		return err
	}
	return r.checkoutFile(head, name)
}

// CheckoutFileAt restores name from the commit identified by a full or
// abbreviated id.
func (r *Repository) CheckoutFileAt(commitID, name string) error {
	id, err := r.ResolveCommit(commitID)
	if err != nil {
		return err
	}
	c, err := r.ReadCommit(id)
	if err != nil {
		return err
	}
	return r.checkoutFile(c, name)
}

// Branch creates a branch pointing at the current head.
func (r *Repository) Branch(name string) error {
	if !validBranchName(name) {
		return newError(ErrUsage, "Invalid branch name.")
	}
	if r.refs.Has(name) {
		return newError(ErrAlreadyExists, "A branch with that name already exists.")
	}
	headID, _, err := r.Head()
	if err != nil {
		return err
	}
	if err := r.refs.Set(name, string(headID)); err != nil {
		return err
	}
	r.log.WithFields(logrus.Fields{"op": "branch", "branch": name, "commit": headID.Short()}).Debug("branch created")
	return nil
}

// RemoveBranch deletes a branch pointer. Its commits stay in the store.
func (r *Repository) RemoveBranch(name string) error {
	if !r.refs.Has(name) {
		return newError(ErrNotFound, "A branch with that name does not exist.")
	}
	current, err := r.CurrentBranch()
	if err != nil {
		return err
	}
	if current == name {
		return newError(ErrPrecondition, "Cannot remove the current branch.")
	}
	return r.refs.Delete(name)
}

// Reset checks out the given commit and moves the current branch to it.
func (r *Repository) Reset(commitID string) error {
	id, err := r.ResolveCommit(commitID)
	if err != nil {
		return err
	}
	target, err := r.ReadCommit(id)
	if err != nil {
		return err
	}
	_, head, err := r.Head()
	if err != nil {
		return err
	}
	x, err := r.Index()
	if err != nil {
		return err
	}

	if err := r.checkoutCommit(head, x, target); err != nil {
		return err
	}
	branch, err := r.moveCurrentBranch(id)
	if err != nil {
		return err
	}

	r.log.WithFields(logrus.Fields{"op": "reset", "branch": branch, "commit": id.Short()}).Debug("reset")
	return nil
}

// Find returns the ids of all commits whose message contains message.
func (r *Repository) Find(message string) ([]Digest, error) {
	var found []Digest
	for e, err := range r.AllCommits() {
		if err != nil {
			return nil, err
		}
		if strings.Contains(e.Commit.Message(), message) {
			found = append(found, e.Digest)
		}
	}
	if len(found) == 0 {
		return nil, newError(ErrNotFound, "Found no commit with that message.")
	}
	return found, nil
}

func validBranchName(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "-") {
		return false
	}
	return !strings.ContainsAny(name, `/\ `+"\x00\t\n")
}
