package ga

import (
	"math/rand"
)

// Crossover recombines two parents into two new children
type Crossover interface {
	Crossover(p1, p2 *Genotype, rng *rand.Rand) (*Genotype, *Genotype)
}

// OnePointCrossover swaps the tails of the parents after a random cut point
type OnePointCrossover struct{}

func (OnePointCrossover) Crossover(p1, p2 *Genotype, rng *rand.Rand) (*Genotype, *Genotype) {
	point := rng.Intn(p1.Len())
	return onePoint(p1, p2, point)
}

func onePoint(p1, p2 *Genotype, point int) (*Genotype, *Genotype) {
	size := p1.Len()
	c1 := make([]Gene, size)
	c2 := make([]Gene, size)

	copy(c1[:point], p1.genes[:point])
	copy(c1[point:], p2.genes[point:])
	copy(c2[:point], p2.genes[:point])
	copy(c2[point:], p1.genes[point:])

	return child(p1, c1), child(p2, c2)
}

// TwoPointCrossover swaps the segment between two ordered cut points.
// The segment may be empty.
type TwoPointCrossover struct{}

func (TwoPointCrossover) Crossover(p1, p2 *Genotype, rng *rand.Rand) (*Genotype, *Genotype) {
	size := p1.Len()
	start := rng.Intn(size)
	end := start + rng.Intn(size-start)
	return twoPoint(p1, p2, start, end)
}

func twoPoint(p1, p2 *Genotype, start, end int) (*Genotype, *Genotype) {
	c1 := append(make([]Gene, 0, p1.Len()), p1.genes...)
	c2 := append(make([]Gene, 0, p2.Len()), p2.genes...)

	copy(c1[start:end], p2.genes[start:end])
	copy(c2[start:end], p1.genes[start:end])

	return child(p1, c1), child(p2, c2)
}

// child creates a new genotype bound to parent's elements and settings,
// taking ownership of genes
func child(parent *Genotype, genes []Gene) *Genotype {
	return &Genotype{
		genes:    genes,
		elements: parent.elements,
		settings: parent.settings,
	}
}
