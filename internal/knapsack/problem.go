package knapsack

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

var (
	// ErrNoElements is returned for a problem without items
	ErrNoElements = errors.New("knapsack: problem has no elements")
	// ErrInvalidCapacity is returned for a non-positive capacity
	ErrInvalidCapacity = errors.New("knapsack: capacity must be positive")
	// ErrInvalidElement is returned for an item with a negative value or weight
	ErrInvalidElement = errors.New("knapsack: element value and weight must be non-negative")
)

// Element is a single item that can be put in the knapsack
type Element struct {
	Value  float64 `json:"value" yaml:"value"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// Problem is a knapsack instance: a capacity and an ordered item set.
// It is read-only for the duration of a run and shared by reference.
type Problem struct {
	Capacity float64   `json:"capacity" yaml:"capacity"`
	Elements []Element `json:"elements" yaml:"elements"`
}

// Size returns the number of items, which is also the gene length
func (p *Problem) Size() int {
	return len(p.Elements)
}

// Validate checks that the problem can be searched
func (p *Problem) Validate() error {
	if len(p.Elements) == 0 {
		return ErrNoElements
	}
	if p.Capacity <= 0 || math.IsNaN(p.Capacity) {
		return fmt.Errorf("%w: got %v", ErrInvalidCapacity, p.Capacity)
	}
	for i, e := range p.Elements {
		if e.Value < 0 || e.Weight < 0 {
			return fmt.Errorf("%w: element %d is (%v, %v)", ErrInvalidElement, i, e.Value, e.Weight)
		}
	}
	return nil
}

// TotalWeight sums the weights of the selected items
func (p *Problem) TotalWeight(solution []int) float64 {
	var w float64
	for i, bit := range solution {
		w += p.Elements[i].Weight * float64(bit)
	}
	return w
}

// TotalValue sums the values of the selected items
func (p *Problem) TotalValue(solution []int) float64 {
	var v float64
	for i, bit := range solution {
		v += p.Elements[i].Value * float64(bit)
	}
	return v
}

// RandomElements creates n items with integral value in [0, maxValue]
// and weight in [0, maxWeight]
func RandomElements(n int, maxValue, maxWeight float64, rng *rand.Rand) []Element {
	elements := make([]Element, n)
	for i := range elements {
		elements[i] = Element{
			Value:  math.Round(rng.Float64() * maxValue),
			Weight: math.Round(rng.Float64() * maxWeight),
		}
	}
	return elements
}
