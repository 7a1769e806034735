package ga

import (
	"math/rand"
)

// DefaultFlipProbability is the per-gene flip chance of BitFlipMutation
// when none is configured
const DefaultFlipProbability = 0.05

// Mutation alters one freshly bred child in place and returns it
type Mutation interface {
	Mutate(g *Genotype, rng *rand.Rand) *Genotype
}

// BitFlipMutation flips every gene independently with FlipProbability.
// It is applied on top of the population-level mutation gate.
type BitFlipMutation struct {
	FlipProbability float64
}

func (m BitFlipMutation) Mutate(g *Genotype, rng *rand.Rand) *Genotype {
	for i := range g.genes {
		if rng.Float64() < m.FlipProbability {
			g.genes[i] ^= 1
		}
	}
	return g
}

// SwapMutation swaps the genes at two uniformly drawn positions.
// Drawing the same position twice is a no-op.
type SwapMutation struct{}

func (SwapMutation) Mutate(g *Genotype, rng *rand.Rand) *Genotype {
	i := rng.Intn(len(g.genes))
	j := rng.Intn(len(g.genes))
	g.genes[i], g.genes[j] = g.genes[j], g.genes[i]
	return g
}
