package ga

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"knapsackga/internal/knapsack"
)

// DefaultMaxGenerations bounds Evolve when EvolveSettings leaves it at 0
const DefaultMaxGenerations = 1000

var (
	// ErrInvalidPopulation is returned for unusable population settings
	ErrInvalidPopulation = errors.New("ga: invalid population settings")
	// ErrInvalidEvolve is returned for unusable evolve settings
	ErrInvalidEvolve = errors.New("ga: invalid evolve settings")
)

// State is the lifecycle stage of a Population
type State int

const (
	Uninitialized State = iota
	Seeded
	Evolving
	Terminated
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Seeded:
		return "seeded"
	case Evolving:
		return "evolving"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// PopulationSettings are the caller-supplied GA parameters for one run
type PopulationSettings struct {
	Size           int
	MutationRate   float64
	CrossoverRate  float64
	InversionRate  float64
	Elitism        bool
	TournamentSize int
}

// Validate rejects settings the engine cannot run with
func (s PopulationSettings) Validate() error {
	if s.Size <= 0 {
		return fmt.Errorf("%w: population size must be positive, got %d", ErrInvalidPopulation, s.Size)
	}
	if s.TournamentSize <= 0 || s.TournamentSize > s.Size {
		return fmt.Errorf("%w: tournament size must be in (0, %d], got %d", ErrInvalidPopulation, s.Size, s.TournamentSize)
	}
	rates := []struct {
		name string
		v    float64
	}{
		{"mutation", s.MutationRate},
		{"crossover", s.CrossoverRate},
		{"inversion", s.InversionRate},
	}
	for _, r := range rates {
		if r.v < 0 || r.v > 1 {
			return fmt.Errorf("%w: %s rate must be in [0, 1], got %v", ErrInvalidPopulation, r.name, r.v)
		}
	}
	return nil
}

// EvolveSettings chooses one policy per strategy family
type EvolveSettings struct {
	Fitness   Fitness
	Selection Selection
	Crossover Crossover
	Mutation  Mutation
	Inversion Inversion

	// MaxGenerations defaults to DefaultMaxGenerations when 0
	MaxGenerations int
	// Repair lets a Repairer fitness fix genotypes while the population is evaluated
	Repair bool
	// CrossoverGate applies crossover only with probability CrossoverRate;
	// otherwise the children are copies of their parents
	CrossoverGate bool
}

func (s *EvolveSettings) validate() error {
	if s.Fitness == nil || s.Selection == nil || s.Crossover == nil || s.Mutation == nil || s.Inversion == nil {
		return fmt.Errorf("%w: every strategy must be set", ErrInvalidEvolve)
	}
	if s.MaxGenerations < 0 {
		return fmt.Errorf("%w: max generations must not be negative, got %d", ErrInvalidEvolve, s.MaxGenerations)
	}
	if s.MaxGenerations == 0 {
		s.MaxGenerations = DefaultMaxGenerations
	}
	return nil
}

// Evaluator scores every genotype of a population and stores the result in
// Genotype.Score. With repair set, Repairer policies may rewrite genes.
type Evaluator interface {
	Evaluate(genotypes []*Genotype, repair bool)
}

// SerialEvaluator evaluates genotypes one after another
type SerialEvaluator struct{}

func (SerialEvaluator) Evaluate(genotypes []*Genotype, repair bool) {
	for _, g := range genotypes {
		g.Score = Score(g, repair)
	}
}

// Score evaluates one genotype, repairing it when asked and supported
func Score(g *Genotype, repair bool) float64 {
	if repair {
		return g.RepairAndCalculateFitness()
	}
	return g.CalculateFitness()
}

// Generation is the snapshot of one population taken before it is replaced
type Generation struct {
	Index     int
	Genotypes []*Genotype
	Stats     Stats
}

// Result is what Evolve hands back
type Result struct {
	Fittest     *Genotype
	Score       float64
	Elapsed     time.Duration
	Generations int
}

// Population owns the genotypes of one run and the generation loop over them
type Population struct {
	Genotypes []*Genotype
	Settings  PopulationSettings
	Problem   *knapsack.Problem

	// Generation counts completed replacement cycles
	Generation int
	// History holds one snapshot per completed cycle
	History []Generation

	// Evaluator defaults to SerialEvaluator
	Evaluator Evaluator
	// OnGeneration is called with every snapshot as it is recorded
	OnGeneration func(Generation)

	state State
	rng   *rand.Rand
}

// NewPopulation validates the settings and creates an unseeded population
func NewPopulation(settings PopulationSettings, problem *knapsack.Problem, rng *rand.Rand) (*Population, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if problem == nil {
		return nil, fmt.Errorf("%w: nil problem", ErrInvalidPopulation)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil rng", ErrInvalidPopulation)
	}
	if err := problem.Validate(); err != nil {
		return nil, err
	}
	return &Population{
		Settings:  settings,
		Problem:   problem,
		Evaluator: SerialEvaluator{},
		rng:       rng,
	}, nil
}

// Size returns the number of genotypes currently held
func (p *Population) Size() int {
	return len(p.Genotypes)
}

// State returns the lifecycle stage
func (p *Population) State() State {
	return p.state
}

// GetRNG returns the population's random number generator
func (p *Population) GetRNG() *rand.Rand {
	return p.rng
}

// Seed replaces the population with Size fresh random genotypes scored by fitness
func (p *Population) Seed(fitness Fitness) {
	settings := Settings{Capacity: p.Problem.Capacity, Fitness: fitness}
	p.Genotypes = make([]*Genotype, p.Settings.Size)
	for i := range p.Genotypes {
		g := NewGenotype(p.Problem.Elements, settings)
		g.RandomizeGenes(p.rng)
		p.Genotypes[i] = g
	}
	p.Generation = 0
	p.History = nil
	p.state = Seeded
}

// Fittest returns the genotype with the highest fitness, the first one
// winning ties. Fitness is recomputed, not read from Score.
func (p *Population) Fittest() *Genotype {
	if len(p.Genotypes) == 0 {
		return nil
	}
	best := p.Genotypes[0]
	bestFitness := best.CalculateFitness()
	for _, g := range p.Genotypes[1:] {
		if f := g.CalculateFitness(); f > bestFitness {
			best, bestFitness = g, f
		}
	}
	return best
}

// Evolve seeds the population and runs the generation loop until
// MaxGenerations cycles have completed or ctx is done. ctx is checked once
// per generation; on cancellation the result so far is returned with ctx.Err().
func (p *Population) Evolve(ctx context.Context, settings EvolveSettings) (*Result, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}
	if p.Evaluator == nil {
		p.Evaluator = SerialEvaluator{}
	}

	start := time.Now()
	p.Seed(settings.Fitness)
	p.state = Evolving

	var err error
	for p.Generation < settings.MaxGenerations {
		if err = ctx.Err(); err != nil {
			break
		}
		p.Evaluator.Evaluate(p.Genotypes, settings.Repair)
		p.snapshot()
		p.Genotypes = p.breed(settings)
		p.Generation++
	}

	p.Evaluator.Evaluate(p.Genotypes, settings.Repair)
	p.state = Terminated

	// the clone is repaired even when the population was not, so a
	// repairing policy never hands back an overweight solution
	fittest := p.Fittest().Clone()
	return &Result{
		Fittest:     fittest,
		Score:       fittest.RepairAndCalculateFitness(),
		Elapsed:     time.Since(start),
		Generations: p.Generation,
	}, err
}

func (p *Population) snapshot() {
	gen := Generation{
		Index:     p.Generation,
		Genotypes: p.Genotypes,
		Stats:     Summarize(p.Genotypes),
	}
	p.History = append(p.History, gen)
	if p.OnGeneration != nil {
		p.OnGeneration(gen)
	}
}

// breed builds the next generation. Children come in pairs, so when one slot
// is left the second child of the last pair is dropped.
func (p *Population) breed(settings EvolveSettings) []*Genotype {
	size := p.Settings.Size
	next := make([]*Genotype, 0, size+1)

	if p.Settings.Elitism {
		next = append(next, p.Fittest().Clone())
	}

	for len(next) < size {
		p1 := settings.Selection.Select(p, p.rng)
		p2 := settings.Selection.Select(p, p.rng)

		var c1, c2 *Genotype
		if settings.CrossoverGate && p.rng.Float64() >= p.Settings.CrossoverRate {
			c1, c2 = p1.Clone(), p2.Clone()
		} else {
			c1, c2 = settings.Crossover.Crossover(p1, p2, p.rng)
		}

		if p.rng.Float64() < p.Settings.MutationRate {
			settings.Mutation.Mutate(c1, p.rng)
			settings.Mutation.Mutate(c2, p.rng)
		}
		if p.rng.Float64() < p.Settings.InversionRate {
			settings.Inversion.Invert(c1, p.rng)
			settings.Inversion.Invert(c2, p.rng)
		}

		next = append(next, c1, c2)
	}

	return next[:size]
}
