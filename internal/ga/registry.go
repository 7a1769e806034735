package ga

import (
	"errors"
	"fmt"
)

// ErrUnknownStrategy is returned for a strategy name that is not registered
var ErrUnknownStrategy = errors.New("ga: unknown strategy")

// FitnessByName resolves "basic" or "leftover"
func FitnessByName(name string) (Fitness, error) {
	switch name {
	case "basic":
		return BasicFitness{}, nil
	case "leftover":
		return LeftoverRepairFitness{}, nil
	default:
		return nil, fmt.Errorf("%w: fitness %q", ErrUnknownStrategy, name)
	}
}

// SelectionByName resolves "roulette" or "tournament"
func SelectionByName(name string) (Selection, error) {
	switch name {
	case "roulette":
		return RouletteSelection{}, nil
	case "tournament":
		return TournamentSelection{}, nil
	default:
		return nil, fmt.Errorf("%w: selection %q", ErrUnknownStrategy, name)
	}
}

// CrossoverByName resolves "one_point" or "two_point"
func CrossoverByName(name string) (Crossover, error) {
	switch name {
	case "one_point":
		return OnePointCrossover{}, nil
	case "two_point":
		return TwoPointCrossover{}, nil
	default:
		return nil, fmt.Errorf("%w: crossover %q", ErrUnknownStrategy, name)
	}
}

// MutationByName resolves "bit_flip" or "swap". flipProbability only
// applies to bit_flip; 0 means DefaultFlipProbability.
func MutationByName(name string, flipProbability float64) (Mutation, error) {
	switch name {
	case "bit_flip":
		if flipProbability == 0 {
			flipProbability = DefaultFlipProbability
		}
		return BitFlipMutation{FlipProbability: flipProbability}, nil
	case "swap":
		return SwapMutation{}, nil
	default:
		return nil, fmt.Errorf("%w: mutation %q", ErrUnknownStrategy, name)
	}
}

// InversionByName resolves "random" or "none"
func InversionByName(name string) (Inversion, error) {
	switch name {
	case "random":
		return RandomInversion{}, nil
	case "none":
		return NoInversion{}, nil
	default:
		return nil, fmt.Errorf("%w: inversion %q", ErrUnknownStrategy, name)
	}
}
