package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"knapsackga/internal/ga"
)

// Collector exposes the progress of a GA run
type Collector struct {
	registry    *prometheus.Registry
	generation  prometheus.Gauge
	bestFitness prometheus.Gauge
	meanFitness prometheus.Gauge
	feasible    prometheus.Gauge
	generations prometheus.Counter
}

// NewCollector registers the run collectors on a private registry
func NewCollector() *Collector {
	c := &Collector{
		registry:    prometheus.NewRegistry(),
		generation:  prometheus.NewGauge(prometheus.GaugeOpts{Name: "knapsack_ga_generation", Help: "Index of the last recorded generation."}),
		bestFitness: prometheus.NewGauge(prometheus.GaugeOpts{Name: "knapsack_ga_best_fitness", Help: "Best fitness of the last recorded generation."}),
		meanFitness: prometheus.NewGauge(prometheus.GaugeOpts{Name: "knapsack_ga_mean_fitness", Help: "Mean fitness of the last recorded generation."}),
		feasible:    prometheus.NewGauge(prometheus.GaugeOpts{Name: "knapsack_ga_feasible_genotypes", Help: "Genotypes within capacity in the last recorded generation."}),
		generations: prometheus.NewCounter(prometheus.CounterOpts{Name: "knapsack_ga_generations_total", Help: "Generations recorded since start."}),
	}
	c.registry.MustRegister(c.generation, c.bestFitness, c.meanFitness, c.feasible, c.generations)
	return c
}

// Observe records one generation snapshot
func (c *Collector) Observe(gen ga.Generation) {
	c.generation.Set(float64(gen.Index))
	c.bestFitness.Set(gen.Stats.Best)
	c.meanFitness.Set(gen.Stats.Mean)
	c.feasible.Set(float64(gen.Stats.Feasible))
	c.generations.Inc()
}

// Registry returns the registry the collectors live on
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collectors in the prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
