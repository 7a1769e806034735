package ga

import (
	"math/rand"
)

// Selection picks one parent from a population
type Selection interface {
	Select(pop *Population, rng *rand.Rand) *Genotype
}

// RouletteSelection picks a genotype with probability proportional to its fitness
type RouletteSelection struct{}

// Select walks the population subtracting fitness from a uniform draw over
// the total. When the total is 0 the walk never goes negative and the first
// genotype is returned.
func (RouletteSelection) Select(pop *Population, rng *rand.Rand) *Genotype {
	genotypes := pop.Genotypes
	if len(genotypes) == 0 {
		return nil
	}

	var total float64
	for _, g := range genotypes {
		total += g.CalculateFitness()
	}

	u := rng.Float64() * total
	for _, g := range genotypes {
		u -= g.CalculateFitness()
		if u < 0 {
			return g
		}
	}
	return genotypes[0]
}

// TournamentSelection returns the fittest of TournamentSize random draws
type TournamentSelection struct{}

func (TournamentSelection) Select(pop *Population, rng *rand.Rand) *Genotype {
	return TournamentSelect(pop.Genotypes, pop.Settings.TournamentSize, rng)
}

// TournamentSelect draws k genotypes uniformly with replacement and returns
// the one with the highest fitness, the earliest draw winning ties
func TournamentSelect(genotypes []*Genotype, k int, rng *rand.Rand) *Genotype {
	if len(genotypes) == 0 {
		return nil
	}
	if k < 1 {
		k = 1
	}

	best := genotypes[rng.Intn(len(genotypes))]
	bestFitness := best.CalculateFitness()
	for i := 1; i < k; i++ {
		candidate := genotypes[rng.Intn(len(genotypes))]
		if f := candidate.CalculateFitness(); f > bestFitness {
			best, bestFitness = candidate, f
		}
	}
	return best
}
