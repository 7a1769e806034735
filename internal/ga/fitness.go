package ga

import (
	"errors"

	lru "github.com/hashicorp/golang-lru"
)

// ErrCacheRepairer is returned when a repairing policy is wrapped in a cache
var ErrCacheRepairer = errors.New("ga: repairing fitness cannot be cached")

// Fitness scores a genotype. Evaluate must not modify the genotype.
type Fitness interface {
	Evaluate(g *Genotype) float64
}

// Repairer is a Fitness that can also make a genotype feasible while scoring it
type Repairer interface {
	Fitness
	RepairAndEvaluate(g *Genotype) float64
}

// BasicFitness rejects overweight solutions outright: their fitness is 0
type BasicFitness struct{}

func (BasicFitness) Evaluate(g *Genotype) float64 {
	if g.Weight() > g.settings.Capacity {
		return 0
	}
	return g.Value()
}

// LeftoverRepairFitness walks the genes left to right and drops every item
// that would push the running weight over capacity
type LeftoverRepairFitness struct{}

// Evaluate returns the value the greedy walk would keep
func (LeftoverRepairFitness) Evaluate(g *Genotype) float64 {
	return leftoverWalk(g, false)
}

// RepairAndEvaluate performs the same walk and clears the dropped genes
func (LeftoverRepairFitness) RepairAndEvaluate(g *Genotype) float64 {
	return leftoverWalk(g, true)
}

func leftoverWalk(g *Genotype, repair bool) float64 {
	var weight, value float64
	for i, gene := range g.genes {
		if gene == 0 {
			continue
		}
		e := g.elements[i]
		if weight+e.Weight > g.settings.Capacity {
			if repair {
				g.genes[i] = 0
			}
			continue
		}
		weight += e.Weight
		value += e.Value
	}
	return value
}

// CachedFitness memoizes a pure policy by gene string. A cache is only
// valid for genotypes of a single problem.
type CachedFitness struct {
	inner Fitness
	cache *lru.Cache
}

// NewCachedFitness wraps inner with an LRU of the given size
func NewCachedFitness(inner Fitness, size int) (*CachedFitness, error) {
	if _, ok := inner.(Repairer); ok {
		return nil, ErrCacheRepairer
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &CachedFitness{inner: inner, cache: cache}, nil
}

func (c *CachedFitness) Evaluate(g *Genotype) float64 {
	key := g.String()
	if v, ok := c.cache.Get(key); ok {
		return v.(float64)
	}
	v := c.inner.Evaluate(g)
	c.cache.Add(key, v)
	return v
}

// Len returns the number of cached scores
func (c *CachedFitness) Len() int {
	return c.cache.Len()
}
