// Package bee implements a bee colony local search over a knapsack problem.
// Unlike the genetic engine it tracks a single best solution and improves it
// by probing one-bit neighbours.
package bee

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"knapsackga/internal/knapsack"
)

// ErrInvalidSettings is returned for unusable colony settings
var ErrInvalidSettings = errors.New("bee: invalid settings")

// Settings sizes the colony
type Settings struct {
	Bees          int
	EliteBees     int
	OnlookerBees  int
	ScoutBees     int
	MaxIterations int
	Elitism       bool
}

// Validate rejects settings the colony cannot run with
func (s Settings) Validate() error {
	if s.Bees <= 0 {
		return fmt.Errorf("%w: bees must be positive, got %d", ErrInvalidSettings, s.Bees)
	}
	if s.EliteBees < 0 || s.OnlookerBees < 0 || s.ScoutBees < 0 {
		return fmt.Errorf("%w: bee counts must not be negative", ErrInvalidSettings)
	}
	if s.MaxIterations < 0 {
		return fmt.Errorf("%w: max iterations must not be negative, got %d", ErrInvalidSettings, s.MaxIterations)
	}
	return nil
}

// Result is the best solution found
type Result struct {
	Solution   []int
	Fitness    float64
	Value      float64
	Weight     float64
	Iterations int
	Elapsed    time.Duration
}

// Colony runs the search for one problem
type Colony struct {
	problem  *knapsack.Problem
	settings Settings
	rng      *rand.Rand

	best        []int
	bestFitness float64
}

// NewColony validates the problem and settings
func NewColony(problem *knapsack.Problem, settings Settings, rng *rand.Rand) (*Colony, error) {
	if err := problem.Validate(); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Colony{
		problem:  problem,
		settings: settings,
		rng:      rng,
		best:     make([]int, problem.Size()),
	}, nil
}

// Fitness is the total value of solution, or -1 once the running weight
// exceeds capacity
func (c *Colony) Fitness(solution []int) float64 {
	var value, weight float64
	for i, bit := range solution {
		e := c.problem.Elements[i]
		value += e.Value * float64(bit)
		weight += e.Weight * float64(bit)
		if weight > c.problem.Capacity {
			return -1
		}
	}
	return value
}

// Optimize runs MaxIterations iterations or until ctx is done, checking ctx
// once per iteration
func (c *Colony) Optimize(ctx context.Context) (*Result, error) {
	start := time.Now()

	var (
		iter int
		err  error
	)
	for iter = 0; iter < c.settings.MaxIterations; iter++ {
		if err = ctx.Err(); err != nil {
			break
		}
		c.runIteration()
	}

	return &Result{
		Solution:   append([]int(nil), c.best...),
		Fitness:    c.bestFitness,
		Value:      c.problem.TotalValue(c.best),
		Weight:     c.problem.TotalWeight(c.best),
		Iterations: iter,
		Elapsed:    time.Since(start),
	}, err
}

func (c *Colony) runIteration() {
	// elite bees search around the best solution
	if c.settings.Elitism {
		for i := 0; i < c.settings.EliteBees; i++ {
			chosen := c.selectNeighbor(c.best, c.neighbor(c.best))
			c.update(chosen, c.Fitness(chosen))
		}
	}

	// onlookers pick a random solution in proportion to fitness and search around it
	for i := 0; i < c.settings.OnlookerBees; i++ {
		solutions := make([][]int, c.settings.Bees)
		fitnesses := make([]float64, c.settings.Bees)
		for j := range solutions {
			solutions[j] = c.randomSolution()
			fitnesses[j] = c.Fitness(solutions[j])
		}
		chosen := solutions[c.roulette(fitnesses)]
		picked := c.selectNeighbor(chosen, c.neighbor(chosen))
		c.update(picked, c.Fitness(picked))
	}

	for i := 0; i < c.settings.ScoutBees; i++ {
		scout := c.randomSolution()
		c.update(scout, c.Fitness(scout))
	}
}

// roulette picks an index in proportion to the non-negative fitnesses.
// Overweight solutions (-1) are never picked unless nothing scores above 0,
// in which case the first index is returned.
func (c *Colony) roulette(fitnesses []float64) int {
	var total float64
	for _, f := range fitnesses {
		if f > 0 {
			total += f
		}
	}
	u := c.rng.Float64() * total
	for i, f := range fitnesses {
		if f <= 0 {
			continue
		}
		u -= f
		if u < 0 {
			return i
		}
	}
	return 0
}

func (c *Colony) randomSolution() []int {
	s := make([]int, c.problem.Size())
	for i := range s {
		s[i] = c.rng.Intn(2)
	}
	return s
}

// neighbor flips one random bit of a copy of solution
func (c *Colony) neighbor(solution []int) []int {
	n := append([]int(nil), solution...)
	i := c.rng.Intn(len(n))
	n[i] = 1 - n[i]
	return n
}

// selectNeighbor keeps the better of the two, taking the neighbour on a tie
// half of the time
func (c *Colony) selectNeighbor(solution, neighbor []int) []int {
	f := c.Fitness(solution)
	nf := c.Fitness(neighbor)
	if nf > f || (nf == f && c.rng.Float64() < 0.5) {
		return neighbor
	}
	return solution
}

func (c *Colony) update(solution []int, fitness float64) {
	if fitness > c.bestFitness {
		c.bestFitness = fitness
		c.best = append(c.best[:0:0], solution...)
	}
}
