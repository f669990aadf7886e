package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cli struct {
	t   *testing.T
	dir string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return &cli{t: t, dir: t.TempDir()}
}

func (c *cli) run(args ...string) (string, int) {
	c.t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"--dir", c.dir}, args...), &stdout, &stderr)
	return stdout.String(), code
}

func (c *cli) write(name, content string) {
	c.t.Helper()
	require.NoError(c.t, os.WriteFile(filepath.Join(c.dir, name), []byte(content), 0644))
}

func (c *cli) read(name string) string {
	c.t.Helper()
	data, err := os.ReadFile(filepath.Join(c.dir, name))
	require.NoError(c.t, err)
	return string(data)
}

func TestCLI_NoCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{}, &stdout, &stderr)
	assert.Equal(t, exitUsage, code)
	assert.Equal(t, "Please enter a command.\n", stdout.String())
}

func TestCLI_UnknownCommand(t *testing.T) {
	c := newCLI(t)
	out, code := c.run("frobnicate")
	assert.Equal(t, exitUsage, code)
	assert.Equal(t, "No command with that name exists.\n", out)
}

func TestCLI_NotInitialized(t *testing.T) {
	c := newCLI(t)
	out, code := c.run("status")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "Not in an initialized Gitlet directory.\n", out)
}

func TestCLI_IncorrectOperands(t *testing.T) {
	c := newCLI(t)
	_, code := c.run("init")
	require.Equal(t, exitOK, code)

	out, code := c.run("add")
	assert.Equal(t, exitUsage, code)
	assert.Equal(t, "Incorrect operands.\n", out)

	out, code = c.run("checkout", "a", "b")
	assert.Equal(t, exitUsage, code)
	assert.Equal(t, "Incorrect operands.\n", out)
}

func TestCLI_MergeScenario(t *testing.T) {
	c := newCLI(t)

	steps := [][]string{
		{"init"},
		{"add", "a.txt"},
		{"commit", "first"},
		{"branch", "feat"},
		{"checkout", "feat"},
	}
	c.write("a.txt", "x")
	for _, args := range steps {
		out, code := c.run(args...)
		require.Equal(t, exitOK, code, "%v: %s", args, out)
		require.Empty(t, out, args)
	}

	c.write("a.txt", "y")
	for _, args := range [][]string{{"add", "a.txt"}, {"commit", "second"}, {"checkout", "master"}} {
		out, code := c.run(args...)
		require.Equal(t, exitOK, code, "%v: %s", args, out)
	}
	assert.Equal(t, "x", c.read("a.txt"))

	out, code := c.run("merge", "feat")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "Current branch fast-forwarded.\n", out)
	assert.Equal(t, "y", c.read("a.txt"))

	out, _ = c.run("log")
	assert.Equal(t, 3, strings.Count(out, "===\n"))
	assert.Contains(t, out, "second\n")
	assert.Contains(t, out, "initial commit\n")
}

func TestCLI_CheckoutFileForms(t *testing.T) {
	c := newCLI(t)
	c.run("init")
	c.write("f.txt", "v1")
	c.run("add", "f.txt")
	c.run("commit", "v1")

	c.write("f.txt", "changed")
	out, code := c.run("checkout", "--", "f.txt")
	require.Equal(t, exitOK, code, out)
	assert.Equal(t, "v1", c.read("f.txt"))

	out, _ = c.run("find", "v1")
	id := strings.TrimSpace(out)
	require.Len(t, id, 40)

	c.write("f.txt", "v2")
	c.run("add", "f.txt")
	c.run("commit", "v2")

	out, code = c.run("checkout", id[:8], "--", "f.txt")
	require.Equal(t, exitOK, code, out)
	assert.Equal(t, "v1", c.read("f.txt"))

	out, _ = c.run("checkout", "ffffffff", "--", "f.txt")
	assert.Equal(t, "No commit with that id exists.\n", out)
}

func TestCLI_RmNoReason(t *testing.T) {
	c := newCLI(t)
	c.run("init")
	c.write("loose.txt", "x")

	out, code := c.run("rm", "loose.txt")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "No reason to remove the file.\n", out)
	assert.Equal(t, "x", c.read("loose.txt"))
}

func TestCLI_Status(t *testing.T) {
	c := newCLI(t)
	c.run("init")
	c.write("new.txt", "n")
	c.run("add", "new.txt")
	c.write("other.txt", "o")

	out, code := c.run("status")
	require.Equal(t, exitOK, code)
	assert.Equal(t, strings.Join([]string{
		"=== Branches ===",
		"*master",
		"",
		"=== Staged Files ===",
		"new.txt",
		"",
		"=== Removed Files ===",
		"",
		"=== Modifications Not Staged For Commit ===",
		"",
		"=== Untracked Files ===",
		"other.txt",
		"",
		"",
	}, "\n"), out)
}

func TestCLI_ConfigFromEnvironment(t *testing.T) {
	c := newCLI(t)
	t.Setenv("GITLET_DEFAULT_BRANCH", "main")

	_, code := c.run("init")
	require.Equal(t, exitOK, code)

	out, _ := c.run("status")
	assert.True(t, strings.HasPrefix(out, "=== Branches ===\n*main\n"), out)
}
