package gitlet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClock returns a clock that advances one second per call, so every
// commit made in a test gets a distinct timestamp.
func testClock() func() time.Time {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	logger, _ := test.NewNullLogger()
	repo, err := Init(t.TempDir(), WithClock(testClock()), WithLogger(logger), WithConcurrency(2))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func writeFile(t *testing.T, repo *Repository, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(repo.Root(), name), []byte(content), 0644))
}

func readFile(t *testing.T, repo *Repository, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(repo.Root(), name))
	require.NoError(t, err)
	return string(data)
}

func fileExists(repo *Repository, name string) bool {
	_, err := os.Stat(filepath.Join(repo.Root(), name))
	return err == nil
}

// commitFiles writes, adds and commits the given files.
func commitFiles(t *testing.T, repo *Repository, message string, files map[string]string) Digest {
	t.Helper()
	for name, content := range files {
		writeFile(t, repo, name, content)
		require.NoError(t, repo.Add(name))
	}
	id, err := repo.Commit(message)
	require.NoError(t, err)
	return id
}

func assertKind(t *testing.T, err error, kind error, message string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, kind)
	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, message, gerr.Message)
}

func TestInit_Layout(t *testing.T) {
	repo := openTestRepo(t)

	for _, p := range []string{"HEAD", "INDEX", "branches/master", "objects/blobs", "objects/commits"} {
		_, err := os.Stat(filepath.Join(repo.MetaDir(), p))
		assert.NoError(t, err, p)
	}

	branch, err := repo.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "master", branch)

	id, head, err := repo.Head()
	require.NoError(t, err)
	assert.Len(t, string(id), 40)
	assert.True(t, head.IsRoot())
	assert.Equal(t, "initial commit", head.Message())
	assert.Equal(t, int64(0), head.Timestamp().Unix())
	assert.Empty(t, head.Snapshot())
}

func TestInit_InitialCommitIsShared(t *testing.T) {
	a := openTestRepo(t)
	b := openTestRepo(t)

	idA, _, err := a.Head()
	require.NoError(t, err)
	idB, _, err := b.Head()
	require.NoError(t, err)
	assert.Equal(t, idA, idB)
}

func TestInit_AlreadyInitialized(t *testing.T) {
	repo := openTestRepo(t)
	require.NoError(t, repo.Close())

	_, err := Init(repo.Root())
	assertKind(t, err, ErrAlreadyInitialized,
		"A Gitlet version-control system already exists in the current directory.")
}

func TestOpen_NotInitialized(t *testing.T) {
	_, err := Open(t.TempDir())
	assertKind(t, err, ErrNotInitialized, "Not in an initialized Gitlet directory.")
}

func TestOpen_Locked(t *testing.T) {
	repo := openTestRepo(t)

	_, err := Open(repo.Root())
	assert.ErrorIs(t, err, ErrLocked)

	require.NoError(t, repo.Close())
	again, err := Open(repo.Root())
	require.NoError(t, err)
	require.NoError(t, again.Close())
}

func TestOpen_LeftoverLockFile(t *testing.T) {
	repo := openTestRepo(t)
	require.NoError(t, repo.Close())

	lockPath := filepath.Join(repo.MetaDir(), "lock")
	require.NoError(t, os.WriteFile(lockPath, []byte("999999"), 0644))

	again, err := Open(repo.Root())
	require.NoError(t, err)
	require.NoError(t, again.Close())
}

func TestOpen_CustomDefaultBranch(t *testing.T) {
	repo, err := Init(t.TempDir(), WithDefaultBranch("main"), WithMetaDir(".vcs"))
	require.NoError(t, err)
	defer repo.Close()

	branch, err := repo.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
	assert.Equal(t, ".vcs", filepath.Base(repo.MetaDir()))
}
