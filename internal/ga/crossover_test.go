package ga

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knapsackga/internal/knapsack"
)

func parents() (*Genotype, *Genotype) {
	p1 := newGenotype(fiveElements, 10, BasicFitness{}, 1, 1, 0, 1, 0)
	p2 := newGenotype(fiveElements, 12, LeftoverRepairFitness{}, 0, 0, 1, 0, 1)
	return p1, p2
}

func TestOnePointAtTwo(t *testing.T) {
	p1, p2 := parents()

	c1, c2 := onePoint(p1, p2, 2)

	assert.Equal(t, "11101", c1.String())
	assert.Equal(t, "00010", c2.String())
	assert.Equal(t, p1.Settings(), c1.Settings())
	assert.Equal(t, p2.Settings(), c2.Settings())
	assert.Equal(t, "11010", p1.String())
	assert.Equal(t, "00101", p2.String())
}

func TestTwoPointSegment(t *testing.T) {
	p1, p2 := parents()

	c1, c2 := twoPoint(p1, p2, 1, 3)

	assert.Equal(t, "10110", c1.String())
	assert.Equal(t, "01001", c2.String())

	// empty segment copies the parents
	c1, c2 = twoPoint(p1, p2, 2, 2)
	assert.Equal(t, p1.String(), c1.String())
	assert.Equal(t, p2.String(), c2.String())
}

func TestCrossoverChildrenAreComplementary(t *testing.T) {
	strategies := map[string]Crossover{
		"one_point": OnePointCrossover{},
		"two_point": TwoPointCrossover{},
	}
	for name, strategy := range strategies {
		t.Run(name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(17))
			p1, p2 := parents()
			for i := 0; i < 100; i++ {
				c1, c2 := strategy.Crossover(p1, p2, rng)
				require.Equal(t, p1.Len(), c1.Len())
				require.Equal(t, p2.Len(), c2.Len())
				assert.NotSame(t, p1, c1)
				assert.NotSame(t, p2, c2)

				g1, g2 := c1.Genes(), c2.Genes()
				for j := range g1 {
					assert.Equal(t, p1.genes[j]+p2.genes[j], g1[j]+g2[j])
				}
			}
		})
	}
}

func TestSingleGeneCrossover(t *testing.T) {
	elements := []knapsack.Element{{Value: 3, Weight: 1}}
	p1 := newGenotype(elements, 5, nil, 1)
	p2 := newGenotype(elements, 5, nil, 0)
	rng := rand.New(rand.NewSource(1))

	c1, c2 := OnePointCrossover{}.Crossover(p1, p2, rng)
	assert.Equal(t, "0", c1.String())
	assert.Equal(t, "1", c2.String())

	c1, c2 = TwoPointCrossover{}.Crossover(p1, p2, rng)
	assert.Equal(t, "1", c1.String())
	assert.Equal(t, "0", c2.String())
}

func TestCrossoverDoesNotAliasParents(t *testing.T) {
	p1, p2 := parents()
	c1, _ := OnePointCrossover{}.Crossover(p1, p2, rand.New(rand.NewSource(2)))

	c1.genes[0] ^= 1
	c1.genes[4] ^= 1
	assert.Equal(t, "11010", p1.String())
	assert.Equal(t, "00101", p2.String())
}
