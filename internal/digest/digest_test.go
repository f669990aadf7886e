package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum_KnownVector(t *testing.T) {
	got, err := Sum([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", got)
	assert.True(t, IsFull(got))
}

func TestSum_Deterministic(t *testing.T) {
	a, err := Sum([]byte("hello"))
	require.NoError(t, err)
	b, err := Sum([]byte("hello"))
	require.NoError(t, err)
	c, err := Sum([]byte("hello!"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, Size)
}

func TestIsHex(t *testing.T) {
	assert.True(t, IsHex("0af9"))
	assert.False(t, IsHex(""))
	assert.False(t, IsHex("0AF9"))
	assert.False(t, IsHex("../x"))
}

func TestSplit(t *testing.T) {
	shard, rest := Split("a9993e364706816aba3e25717850c26c9cd0d89d")
	assert.Equal(t, "a9", shard)
	assert.Equal(t, "993e364706816aba3e25717850c26c9cd0d89d", rest)

	shard, rest = Split("a")
	assert.Equal(t, "a", shard)
	assert.Empty(t, rest)
}
