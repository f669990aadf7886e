// Package gitlet is a local, single-user version-control engine: a
// content-addressed object store, a commit DAG, a staging index, named
// branches and a three-way merge.
//
// Blobs and commits are stored under the metadata directory keyed by the
// SHA-1 of their bytes and sharded by the first two hex characters. Branches
// are plain-text files holding a commit id; HEAD names the current branch.
//
// Basic usage:
//
//	repo, _ := gitlet.Init(dir)
//	defer repo.Close()
//
//	// Stage and commit a file from the working directory
//	repo.Add("a.txt")
//	id, _ := repo.Commit("first")
//
//	// Branch, switch, merge
//	repo.Branch("feat")
//	repo.CheckoutBranch("feat")
//	...
//	repo.CheckoutBranch("master")
//	res, _ := repo.Merge("feat")
//	if res.HasConflicts() {
//	    // conflict markers were written to the working directory
//	}
//
//	// Inspect
//	entries, _ := repo.Log()
//	st, _ := repo.Status()
//	fmt.Print(st)
//
// Every user-facing failure is an *Error wrapping one of the Err* kinds and
// is returned before anything is written. A repository holds a lock file
// while open; Close releases it.
package gitlet
