package research

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knapsackga/internal/ga"
	"knapsackga/internal/knapsack"
)

var problem = &knapsack.Problem{
	Capacity: 26,
	Elements: []knapsack.Element{
		{Value: 24, Weight: 12},
		{Value: 13, Weight: 7},
		{Value: 23, Weight: 11},
		{Value: 15, Weight: 8},
		{Value: 16, Weight: 9},
	},
}

func baseVariant() Variant {
	return Variant{
		Label: "base",
		Population: ga.PopulationSettings{
			Size:           20,
			MutationRate:   0.1,
			CrossoverRate:  0.9,
			InversionRate:  0.05,
			Elitism:        true,
			TournamentSize: 5,
		},
		Evolve: ga.EvolveSettings{
			Fitness:        ga.LeftoverRepairFitness{},
			Selection:      ga.TournamentSelection{},
			Crossover:      ga.OnePointCrossover{},
			Mutation:       ga.BitFlipMutation{FlipProbability: ga.DefaultFlipProbability},
			Inversion:      ga.RandomInversion{},
			MaxGenerations: 20,
			Repair:         true,
		},
	}
}

func TestSweepRun(t *testing.T) {
	variants := Vary(baseVariant(), []int{10, 30}, itoa, func(v *Variant, n int) { v.Population.Size = n })
	sweep := Sweep{Problem: problem, Repeats: 3, Seed: 7, Workers: 4}

	rows, err := sweep.Run(context.Background(), variants)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "10", rows[0].Label)
	assert.Equal(t, "30", rows[1].Label)
	for _, r := range rows {
		assert.Positive(t, r.MeanValue)
		assert.LessOrEqual(t, r.MeanValue, 51.0)
		assert.LessOrEqual(t, r.MeanWeight, problem.Capacity)
		assert.GreaterOrEqual(t, r.StdValue, 0.0)
	}
}

func TestSweepIsReproducible(t *testing.T) {
	variants := Vary(baseVariant(), []float64{0.01, 0.5}, ftoa, func(v *Variant, r float64) { v.Population.MutationRate = r })

	first, err := Sweep{Problem: problem, Repeats: 4, Seed: 11, Workers: 3}.Run(context.Background(), variants)
	require.NoError(t, err)
	second, err := Sweep{Problem: problem, Repeats: 4, Seed: 11, Workers: 1}.Run(context.Background(), variants)
	require.NoError(t, err)

	for i := range first {
		assert.Equal(t, first[i].MeanValue, second[i].MeanValue)
		assert.Equal(t, first[i].MeanWeight, second[i].MeanWeight)
		assert.Equal(t, first[i].StdValue, second[i].StdValue)
	}
}

func TestSweepSingleRepeatHasNoSpread(t *testing.T) {
	rows, err := Sweep{Problem: problem, Repeats: 1, Seed: 1}.Run(context.Background(), []Variant{baseVariant()})
	require.NoError(t, err)
	assert.Equal(t, 0.0, rows[0].StdValue)
}

func TestSweepErrors(t *testing.T) {
	_, err := Sweep{Problem: problem}.Run(context.Background(), []Variant{baseVariant()})
	assert.ErrorIs(t, err, ErrNoRepeats)

	bad := baseVariant()
	bad.Population.Size = 0
	_, err = Sweep{Problem: problem, Repeats: 1}.Run(context.Background(), []Variant{bad})
	assert.ErrorIs(t, err, ga.ErrInvalidPopulation)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Sweep{Problem: problem, Repeats: 2}.Run(ctx, []Variant{baseVariant()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultStudies(t *testing.T) {
	studies, err := DefaultStudies(baseVariant(), 0)
	require.NoError(t, err)
	require.Len(t, studies, 10)

	byAttr := map[string]Study{}
	for _, s := range studies {
		byAttr[s.Attribute] = s
	}

	pop := byAttr["populationSize"]
	require.Len(t, pop.Variants, 5)
	assert.Equal(t, "10", pop.Variants[0].Label)
	assert.Equal(t, 10, pop.Variants[0].Population.Size)
	assert.Equal(t, 5, pop.Variants[0].Population.TournamentSize)

	elitism := byAttr["elitism"]
	require.Len(t, elitism.Variants, 2)
	assert.False(t, elitism.Variants[1].Population.Elitism)

	fitness := byAttr["fitness"]
	require.Len(t, fitness.Variants, 2)
	assert.Equal(t, ga.BasicFitness{}, fitness.Variants[0].Evolve.Fitness)
	assert.False(t, fitness.Variants[0].Evolve.Repair)
	assert.True(t, fitness.Variants[1].Evolve.Repair)

	mutation := byAttr["mutation"]
	assert.Equal(t, ga.BitFlipMutation{FlipProbability: ga.DefaultFlipProbability}, mutation.Variants[0].Evolve.Mutation)
	assert.Equal(t, ga.SwapMutation{}, mutation.Variants[1].Evolve.Mutation)
}

func TestTableRows(t *testing.T) {
	rows := TableRows([]Row{{Label: "x", MeanTimeMS: 1, MeanValue: 2, StdValue: 3, MeanWeight: 4}})
	require.Len(t, rows, 1)
	assert.Equal(t, "x", rows[0].Label)
	assert.Equal(t, []float64{1, 2, 3, 4}, rows[0].Values)
	assert.Len(t, Headers("x"), 5)
}
