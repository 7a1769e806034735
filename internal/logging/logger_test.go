package logging

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knapsackga/internal/ga"
	"knapsackga/internal/knapsack"
)

func evolve(t *testing.T, generations int, observe func(ga.Generation)) *ga.Result {
	t.Helper()
	rng := rand.New(rand.NewSource(2))
	problem := &knapsack.Problem{Capacity: 30, Elements: knapsack.RandomElements(20, 10, 10, rng)}
	pop, err := ga.NewPopulation(ga.PopulationSettings{
		Size:           10,
		MutationRate:   0.1,
		CrossoverRate:  0.9,
		InversionRate:  0.1,
		Elitism:        true,
		TournamentSize: 3,
	}, problem, rng)
	require.NoError(t, err)
	pop.OnGeneration = observe

	res, err := pop.Evolve(context.Background(), ga.EvolveSettings{
		Fitness:        ga.BasicFitness{},
		Selection:      ga.RouletteSelection{},
		Crossover:      ga.OnePointCrossover{},
		Mutation:       ga.BitFlipMutation{FlipProbability: 0.05},
		Inversion:      ga.RandomInversion{},
		MaxGenerations: generations,
	})
	require.NoError(t, err)
	return res
}

func TestLogGeneration(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "runs", "run.csv")
	jsonPath := filepath.Join(dir, "runs", "run.jsonl")

	logger, err := NewLogger(csvPath, jsonPath)
	require.NoError(t, err)
	require.NoError(t, logger.Init())

	var console bytes.Buffer
	logger.SetOutput(&console)

	evolve(t, 5, logger.LogGeneration)
	require.NoError(t, logger.Err())
	logger.Close()

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "run_id", rows[0][0])
	assert.Equal(t, logger.RunID(), rows[1][0])
	assert.Equal(t, "4", rows[5][1])

	jf, err := os.Open(jsonPath)
	require.NoError(t, err)
	defer jf.Close()
	var lines int
	scanner := bufio.NewScanner(jf)
	for scanner.Scan() {
		var summary GenerationSummary
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &summary))
		assert.Equal(t, lines, summary.Generation)
		assert.Equal(t, logger.RunID(), summary.RunID)
		lines++
	}
	assert.Equal(t, 5, lines)

	assert.Contains(t, console.String(), "Gen    0")
	assert.Contains(t, console.String(), "Feasible:")
}

func TestLogGenerationBeforeInit(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(filepath.Join(dir, "a.csv"), filepath.Join(dir, "a.jsonl"))
	require.NoError(t, err)

	assert.NotPanics(t, func() { logger.LogGeneration(ga.Generation{}) })
	logger.Close()
}

func TestLogGenerationKeepsWriteError(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(filepath.Join(dir, "b.csv"), filepath.Join(dir, "b.jsonl"))
	require.NoError(t, err)
	require.NoError(t, logger.Init())
	logger.SetOutput(nil)
	logger.Close()

	logger.LogGeneration(ga.Generation{Index: 1})
	assert.Error(t, logger.Err())
}

func TestChampionRoundTrip(t *testing.T) {
	res := evolve(t, 3, nil)
	path := filepath.Join(t.TempDir(), "artifacts", "champion.json")

	require.NoError(t, SaveChampion(path, "run-1", res))

	champion, err := LoadChampion(path)
	require.NoError(t, err)
	assert.Equal(t, "run-1", champion.RunID)
	assert.Equal(t, 3, champion.Generations)
	assert.Equal(t, res.Fittest.Bits(), champion.Genes)
	assert.Equal(t, res.Fittest.Value(), champion.Value)
	assert.Equal(t, res.Score, champion.Fitness)
}

func TestLoadChampionMissing(t *testing.T) {
	_, err := LoadChampion(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
