package eval

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knapsackga/internal/ga"
	"knapsackga/internal/knapsack"
)

func seeded(t *testing.T, seed int64, fitness ga.Fitness) *ga.Population {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	problem := &knapsack.Problem{Capacity: 40, Elements: knapsack.RandomElements(40, 20, 10, rng)}
	pop, err := ga.NewPopulation(ga.PopulationSettings{
		Size:           64,
		MutationRate:   0.2,
		CrossoverRate:  0.9,
		InversionRate:  0.05,
		Elitism:        true,
		TournamentSize: 4,
	}, problem, rng)
	require.NoError(t, err)
	pop.Seed(fitness)
	return pop
}

func TestEvaluateMatchesSerial(t *testing.T) {
	parallel := seeded(t, 3, ga.BasicFitness{})
	serial := seeded(t, 3, ga.BasicFitness{})

	NewEvaluator(4).Evaluate(parallel.Genotypes, false)
	ga.SerialEvaluator{}.Evaluate(serial.Genotypes, false)

	for i := range parallel.Genotypes {
		assert.Equal(t, serial.Genotypes[i].Score, parallel.Genotypes[i].Score)
		assert.Equal(t, parallel.Genotypes[i].CalculateFitness(), parallel.Genotypes[i].Score)
	}
}

func TestEvaluateRepairs(t *testing.T) {
	pop := seeded(t, 5, ga.LeftoverRepairFitness{})

	NewEvaluator(8).Evaluate(pop.Genotypes, true)

	for _, g := range pop.Genotypes {
		assert.True(t, g.Feasible())
		assert.Equal(t, g.Value(), g.Score)
	}
}

func TestEvaluatorDrivesEvolve(t *testing.T) {
	run := func(e ga.Evaluator) string {
		pop := seeded(t, 9, ga.LeftoverRepairFitness{})
		pop.Evaluator = e
		res, err := pop.Evolve(context.Background(), ga.EvolveSettings{
			Fitness:        ga.LeftoverRepairFitness{},
			Selection:      ga.TournamentSelection{},
			Crossover:      ga.TwoPointCrossover{},
			Mutation:       ga.BitFlipMutation{FlipProbability: 0.05},
			Inversion:      ga.RandomInversion{},
			MaxGenerations: 15,
			Repair:         true,
		})
		require.NoError(t, err)
		return res.Fittest.String()
	}

	assert.Equal(t, run(ga.SerialEvaluator{}), run(NewEvaluator(4)))
}

func TestNewEvaluatorDefaultsWorkers(t *testing.T) {
	assert.Positive(t, NewEvaluator(0).Workers())
	assert.Equal(t, 3, NewEvaluator(3).Workers())
}
