package eval

import (
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"knapsackga/internal/ga"
)

// Evaluator scores a population across a bounded set of workers.
// Genotypes are independent and only read the shared item set, so each one
// can be scored (and repaired) by its own worker.
type Evaluator struct {
	workers int
}

// NewEvaluator creates an evaluator; workers <= 0 means one per CPU
func NewEvaluator(workers int) *Evaluator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Evaluator{workers: workers}
}

// Workers returns the worker bound
func (e *Evaluator) Workers() int {
	return e.workers
}

// Evaluate stores the fitness of every genotype in its Score field
func (e *Evaluator) Evaluate(genotypes []*ga.Genotype, repair bool) {
	if e.workers == 1 || len(genotypes) < 2 {
		ga.SerialEvaluator{}.Evaluate(genotypes, repair)
		return
	}

	p := pool.New().WithMaxGoroutines(e.workers)
	for _, g := range genotypes {
		p.Go(func() {
			g.Score = ga.Score(g, repair)
		})
	}
	p.Wait()
}

var _ ga.Evaluator = (*Evaluator)(nil)
