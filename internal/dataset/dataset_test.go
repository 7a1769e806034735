package dataset

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithSolution(t *testing.T) {
	ds, err := LoadNumbered("testdata", 0)
	require.NoError(t, err)

	assert.Equal(t, "dataset_0", ds.Name)
	assert.Equal(t, 165, ds.Capacity)
	assert.Len(t, ds.Profits, 10)
	assert.Len(t, ds.Weights, 10)
	assert.Equal(t, []int{1, 1, 1, 1, 0, 1, 0, 0, 0, 0}, ds.Solution)

	opt, ok := ds.OptimalValue()
	require.True(t, ok)
	assert.Equal(t, 309.0, opt)

	p := ds.Problem()
	require.NoError(t, p.Validate())
	assert.Equal(t, 165.0, p.Capacity)
	assert.Equal(t, 165.0, p.TotalWeight(ds.Solution))
}

func TestLoadCommaSeparatedWithoutSolution(t *testing.T) {
	ds, err := Load(filepath.Join("testdata", "dataset_1"))
	require.NoError(t, err)

	assert.Equal(t, []int{24, 13, 23, 15, 16}, ds.Profits)
	assert.Equal(t, []int{12, 7, 11, 8, 9}, ds.Weights)
	assert.Nil(t, ds.Solution)

	_, ok := ds.OptimalValue()
	assert.False(t, ok)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "broken"))
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = Load(filepath.Join("testdata", "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "capacity.txt"), []byte("ten"), 0644))
	_, err = Load(dir)
	var numErr *strconv.NumError
	assert.ErrorAs(t, err, &numErr)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "capacity.txt"), []byte("\r\n"), 0644))
	_, err = Load(dir)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLoadRejectsShortSolution(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"capacity.txt": "10",
		"profits.txt":  "1 2 3",
		"weights.txt":  "1 2 3",
		"solution.txt": "1 0",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
	}

	_, err := Load(dir)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}
