package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatherAllMidiPathsSortedAndLimited(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.mid", "a.MIDI", "notes.txt", "sub/c.mid"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0777))
		require.NoError(t, os.WriteFile(path, nil, 0644))
	}

	paths, err := GatherAllMidiPaths(dir, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.MIDI"),
		filepath.Join(dir, "b.mid"),
		filepath.Join(dir, "sub/c.mid"),
	}, paths)

	limited, err := GatherAllMidiPaths(dir, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestGatherAllMidiPathsMissingDir(t *testing.T) {
	_, err := GatherAllMidiPaths(filepath.Join(t.TempDir(), "nope"), 0)
	assert.Error(t, err)
}

func TestSortedKeys(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, SortedKeys(map[int]string{3: "c", 1: "a", 2: "b"}))
}

func TestMinMaxSum(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint32(2), Min(uint32(2), uint32(5)))
	assert.Equal(7, Max(7, -1))
	assert.Equal(uint64(6), Sum([]uint8{1, 2, 3}))
}
