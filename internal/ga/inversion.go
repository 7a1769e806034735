package ga

import (
	"math/rand"
)

// Inversion reverses part of one freshly bred child in place and returns it
type Inversion interface {
	Invert(g *Genotype, rng *rand.Rand) *Genotype
}

// RandomInversion reverses genes[p:p+l] for a random start p and a random
// length l in [0, len-p]
type RandomInversion struct{}

func (RandomInversion) Invert(g *Genotype, rng *rand.Rand) *Genotype {
	start := rng.Intn(len(g.genes))
	length := rng.Intn(len(g.genes) - start + 1)
	reverse(g.genes[start : start+length])
	return g
}

// NoInversion leaves the child untouched
type NoInversion struct{}

func (NoInversion) Invert(g *Genotype, _ *rand.Rand) *Genotype {
	return g
}

func reverse(genes []Gene) {
	for i, j := 0, len(genes)-1; i < j; i, j = i+1, j-1 {
		genes[i], genes[j] = genes[j], genes[i]
	}
}
