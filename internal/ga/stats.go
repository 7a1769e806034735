package ga

import (
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the scores of one generation
type Stats struct {
	Best       float64 `json:"best_fitness"`
	Mean       float64 `json:"mean_fitness"`
	StdDev     float64 `json:"std_fitness"`
	BestValue  float64 `json:"best_value"`
	BestWeight float64 `json:"best_weight"`
	Feasible   int     `json:"feasible"`
}

// Summarize computes Stats from the recorded Score of every genotype
func Summarize(genotypes []*Genotype) Stats {
	if len(genotypes) == 0 {
		return Stats{}
	}

	scores := make([]float64, len(genotypes))
	best := genotypes[0]
	var feasible int
	for i, g := range genotypes {
		scores[i] = g.Score
		if g.Score > best.Score {
			best = g
		}
		if g.Feasible() {
			feasible++
		}
	}

	mean, std := stat.MeanStdDev(scores, nil)
	if len(scores) == 1 {
		std = 0
	}
	return Stats{
		Best:       best.Score,
		Mean:       mean,
		StdDev:     std,
		BestValue:  best.Value(),
		BestWeight: best.Weight(),
		Feasible:   feasible,
	}
}
