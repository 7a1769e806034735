// Package research averages repeated GA runs while one parameter or strategy
// is varied at a time.
package research

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"strconv"

	"github.com/sourcegraph/conc/pool"
	"gonum.org/v1/gonum/stat"

	"knapsackga/internal/ga"
	"knapsackga/internal/knapsack"
	"knapsackga/internal/report"
)

// ErrNoRepeats is returned for a sweep that would run nothing
var ErrNoRepeats = errors.New("research: repeats must be positive")

// Variant is one point of a sweep
type Variant struct {
	Label      string
	Population ga.PopulationSettings
	Evolve     ga.EvolveSettings
}

// Study is a named list of variants differing in one attribute
type Study struct {
	Name      string
	Attribute string
	Variants  []Variant
}

// Row is the averaged outcome of one variant
type Row struct {
	Label      string
	MeanTimeMS float64
	MeanValue  float64
	StdValue   float64
	MeanWeight float64
}

// Sweep runs every variant Repeats times. Run i of variant v is seeded with
// Seed + v*Repeats + i, so results do not depend on scheduling.
type Sweep struct {
	Problem *knapsack.Problem
	Repeats int
	Seed    int64
	Workers int
}

type outcome struct {
	ms     float64
	value  float64
	weight float64
}

// Run evaluates the variants of a study in parallel
func (s Sweep) Run(ctx context.Context, variants []Variant) ([]Row, error) {
	if s.Repeats <= 0 {
		return nil, ErrNoRepeats
	}
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	outcomes := make([][]outcome, len(variants))
	p := pool.New().WithContext(ctx).WithCancelOnError().WithMaxGoroutines(workers)
	for v := range variants {
		outcomes[v] = make([]outcome, s.Repeats)
		for i := 0; i < s.Repeats; i++ {
			p.Go(func(ctx context.Context) error {
				seed := s.Seed + int64(v*s.Repeats+i)
				o, err := s.runOnce(ctx, variants[v], seed)
				if err != nil {
					return fmt.Errorf("%s run %d: %w", variants[v].Label, i, err)
				}
				outcomes[v][i] = o
				return nil
			})
		}
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	rows := make([]Row, len(variants))
	for v, runs := range outcomes {
		ms := make([]float64, len(runs))
		values := make([]float64, len(runs))
		weights := make([]float64, len(runs))
		for i, o := range runs {
			ms[i], values[i], weights[i] = o.ms, o.value, o.weight
		}
		mean, std := stat.MeanStdDev(values, nil)
		if len(values) == 1 {
			std = 0
		}
		rows[v] = Row{
			Label:      variants[v].Label,
			MeanTimeMS: stat.Mean(ms, nil),
			MeanValue:  mean,
			StdValue:   std,
			MeanWeight: stat.Mean(weights, nil),
		}
	}
	return rows, nil
}

func (s Sweep) runOnce(ctx context.Context, v Variant, seed int64) (outcome, error) {
	pop, err := ga.NewPopulation(v.Population, s.Problem, rand.New(rand.NewSource(seed)))
	if err != nil {
		return outcome{}, err
	}
	res, err := pop.Evolve(ctx, v.Evolve)
	if err != nil {
		return outcome{}, err
	}
	return outcome{
		ms:     float64(res.Elapsed.Microseconds()) / 1000,
		value:  res.Fittest.Value(),
		weight: res.Fittest.Weight(),
	}, nil
}

// Vary copies base once per value, labelling and modifying each copy
func Vary[T any](base Variant, values []T, label func(T) string, apply func(*Variant, T)) []Variant {
	variants := make([]Variant, len(values))
	for i, value := range values {
		v := base
		v.Label = label(value)
		apply(&v, value)
		variants[i] = v
	}
	return variants
}

// Headers are the table columns for a study, led by the varied attribute
func Headers(attribute string) []string {
	return []string{attribute, "time ms", "value", "value std", "weight"}
}

// TableRows converts sweep rows for report.WriteTable
func TableRows(rows []Row) []report.Row {
	out := make([]report.Row, len(rows))
	for i, r := range rows {
		out[i] = report.Row{
			Label:  r.Label,
			Values: []float64{r.MeanTimeMS, r.MeanValue, r.StdValue, r.MeanWeight},
		}
	}
	return out
}

func itoa(n int) string { return strconv.Itoa(n) }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

func btoa(b bool) string { return strconv.FormatBool(b) }

func identity(s string) string { return s }

// DefaultStudies mirrors the usual parameter study: population size,
// generations, the three rates, elitism and every strategy family
func DefaultStudies(base Variant, flipProbability float64) ([]Study, error) {
	studies := []Study{
		{Name: "population results", Attribute: "populationSize", Variants: Vary(base, []int{10, 50, 100, 200, 500}, itoa,
			func(v *Variant, n int) {
				v.Population.Size = n
				if v.Population.TournamentSize > n {
					v.Population.TournamentSize = n
				}
			})},
		{Name: "generations results", Attribute: "maxGenerations", Variants: Vary(base, []int{10, 50, 100, 200, 500}, itoa,
			func(v *Variant, n int) { v.Evolve.MaxGenerations = n })},
		{Name: "mutations results", Attribute: "mutationRate", Variants: Vary(base, rates, ftoa,
			func(v *Variant, r float64) { v.Population.MutationRate = r })},
		{Name: "crossover results", Attribute: "crossoverRate", Variants: Vary(base, rates, ftoa,
			func(v *Variant, r float64) { v.Population.CrossoverRate = r })},
		{Name: "inversion results", Attribute: "inversionRate", Variants: Vary(base, rates, ftoa,
			func(v *Variant, r float64) { v.Population.InversionRate = r })},
		{Name: "elitism results", Attribute: "elitism", Variants: Vary(base, []bool{true, false}, btoa,
			func(v *Variant, b bool) { v.Population.Elitism = b })},
	}

	fitness, err := strategyVariants(base, []string{"basic", "leftover"}, func(v *Variant, n string) error {
		f, err := ga.FitnessByName(n)
		v.Evolve.Fitness = f
		v.Evolve.Repair = n == "leftover"
		return err
	})
	if err != nil {
		return nil, err
	}
	selection, err := strategyVariants(base, []string{"roulette", "tournament"}, func(v *Variant, n string) (err error) {
		v.Evolve.Selection, err = ga.SelectionByName(n)
		return err
	})
	if err != nil {
		return nil, err
	}
	crossover, err := strategyVariants(base, []string{"one_point", "two_point"}, func(v *Variant, n string) (err error) {
		v.Evolve.Crossover, err = ga.CrossoverByName(n)
		return err
	})
	if err != nil {
		return nil, err
	}
	mutation, err := strategyVariants(base, []string{"bit_flip", "swap"}, func(v *Variant, n string) (err error) {
		v.Evolve.Mutation, err = ga.MutationByName(n, flipProbability)
		return err
	})
	if err != nil {
		return nil, err
	}

	return append(studies,
		Study{Name: "fitness results", Attribute: "fitness", Variants: fitness},
		Study{Name: "selection results", Attribute: "selection", Variants: selection},
		Study{Name: "crossover strategy results", Attribute: "crossover", Variants: crossover},
		Study{Name: "mutation strategy results", Attribute: "mutation", Variants: mutation},
	), nil
}

var rates = []float64{0.01, 0.05, 0.1, 0.2, 0.5}

func strategyVariants(base Variant, names []string, apply func(*Variant, string) error) ([]Variant, error) {
	var err error
	variants := Vary(base, names, identity, func(v *Variant, n string) {
		if e := apply(v, n); e != nil && err == nil {
			err = e
		}
	})
	return variants, err
}
