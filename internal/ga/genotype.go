package ga

import (
	"fmt"
	"math/rand"
	"strings"

	"knapsackga/internal/knapsack"
)

// Gene is one bit of a genotype: 1 packs the item at its position
type Gene uint8

// Settings binds a genotype to the capacity and the fitness policy it is scored with
type Settings struct {
	Capacity float64
	Fitness  Fitness
}

// Genotype is a candidate solution: a fixed-length bit vector over the item set.
// len(genes) == len(elements) for the whole life of the value.
type Genotype struct {
	genes    []Gene
	elements []knapsack.Element
	settings Settings

	// Score is the fitness recorded by the last population evaluation
	Score float64
}

// NewGenotype creates an all-zero genotype bound to elements and settings.
// A nil fitness policy falls back to BasicFitness.
func NewGenotype(elements []knapsack.Element, settings Settings) *Genotype {
	if settings.Fitness == nil {
		settings.Fitness = BasicFitness{}
	}
	return &Genotype{
		genes:    make([]Gene, len(elements)),
		elements: elements,
		settings: settings,
	}
}

// RandomizeGenes draws every gene independently and uniformly from {0, 1}
func (g *Genotype) RandomizeGenes(rng *rand.Rand) {
	for i := range g.genes {
		g.genes[i] = Gene(rng.Intn(2))
	}
}

// SetGenes replaces all genes with a copy of genes
func (g *Genotype) SetGenes(genes []Gene) {
	if len(genes) != len(g.elements) {
		panic(fmt.Sprintf("ga: gene length %d does not match %d elements", len(genes), len(g.elements)))
	}
	g.genes = append(make([]Gene, 0, len(genes)), genes...)
}

// Genes returns a copy of the gene vector
func (g *Genotype) Genes() []Gene {
	return append([]Gene(nil), g.genes...)
}

// Bits returns the genes as plain ints, the shape knapsack.Problem works with
func (g *Genotype) Bits() []int {
	bits := make([]int, len(g.genes))
	for i, gene := range g.genes {
		bits[i] = int(gene)
	}
	return bits
}

// Len returns the gene length
func (g *Genotype) Len() int {
	return len(g.genes)
}

// Elements returns the shared item set
func (g *Genotype) Elements() []knapsack.Element {
	return g.elements
}

// Settings returns the capacity/fitness binding
func (g *Genotype) Settings() Settings {
	return g.settings
}

// Weight returns the total weight of the packed items
func (g *Genotype) Weight() float64 {
	var w float64
	for i, e := range g.elements {
		w += e.Weight * float64(g.genes[i])
	}
	return w
}

// Value returns the total value of the packed items
func (g *Genotype) Value() float64 {
	var v float64
	for i, e := range g.elements {
		v += e.Value * float64(g.genes[i])
	}
	return v
}

// Feasible reports whether the packed items fit the capacity
func (g *Genotype) Feasible() bool {
	return g.Weight() <= g.settings.Capacity
}

// CalculateFitness scores the genotype with the bound policy without changing it
func (g *Genotype) CalculateFitness() float64 {
	return g.settings.Fitness.Evaluate(g)
}

// RepairAndCalculateFitness scores the genotype, repairing it first when the
// bound policy knows how to. Other policies behave like CalculateFitness.
func (g *Genotype) RepairAndCalculateFitness() float64 {
	if r, ok := g.settings.Fitness.(Repairer); ok {
		return r.RepairAndEvaluate(g)
	}
	return g.settings.Fitness.Evaluate(g)
}

// Clone creates a deep copy of a genotype sharing only the elements and settings
func (g *Genotype) Clone() *Genotype {
	return &Genotype{
		genes:    append(make([]Gene, 0, len(g.genes)), g.genes...),
		elements: g.elements,
		settings: g.settings,
		Score:    g.Score,
	}
}

// String renders the genes as a bit string, e.g. "01101"
func (g *Genotype) String() string {
	var b strings.Builder
	b.Grow(len(g.genes))
	for _, gene := range g.genes {
		b.WriteByte('0' + byte(gene))
	}
	return b.String()
}
