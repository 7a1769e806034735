package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"time"

	"knapsackga/internal/config"
	"knapsackga/internal/eval"
	"knapsackga/internal/ga"
	"knapsackga/internal/logging"
	"knapsackga/internal/metrics"
	"knapsackga/internal/report"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "configs/knapsack.yaml", "path to config file")
	generations := flag.Int("generations", 0, "override max generations")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *generations > 0 {
		cfg.GA.MaxGenerations = *generations
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	problem, ds, err := cfg.LoadProblem(rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading problem: %v\n", err)
		os.Exit(1)
	}

	settings, err := cfg.EvolveSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving strategies: %v\n", err)
		os.Exit(1)
	}

	pop, err := ga.NewPopulation(cfg.PopulationSettings(), problem, rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating population: %v\n", err)
		os.Exit(1)
	}
	evaluator := eval.NewEvaluator(cfg.Eval.Workers)
	pop.Evaluator = evaluator

	fmt.Printf("Knapsack GA - Items: %d, Capacity: %.0f\n", problem.Size(), problem.Capacity)
	fmt.Printf("Config: %s\n", *configPath)
	fmt.Printf("Population: %d, Generations: %d, Workers: %d\n", cfg.GA.Population, cfg.GA.MaxGenerations, evaluator.Workers())
	fmt.Printf("Strategies: %s / %s / %s / %s / %s\n", cfg.Strategies.Fitness, cfg.Strategies.Selection,
		cfg.Strategies.Crossover, cfg.Strategies.Mutation, cfg.Strategies.Inversion)
	fmt.Println("---")

	// Create logger
	logger, err := logging.NewLogger(cfg.Logging.CSVPath, cfg.Logging.JSONPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()
	if !cfg.Logging.EveryGenSummary {
		logger.SetOutput(nil)
	}

	collector := metrics.NewCollector()
	if cfg.Metrics.Addr != "" {
		srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: collector.Handler(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintf(os.Stderr, "Warning: metrics server stopped: %v\n", err)
			}
		}()
		defer srv.Close()
		fmt.Printf("Metrics: http://%s/metrics\n", cfg.Metrics.Addr)
	}

	pop.OnGeneration = func(gen ga.Generation) {
		logger.LogGeneration(gen)
		collector.Observe(gen)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := pop.Evolve(ctx, settings)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error evolving: %v\n", err)
		os.Exit(1)
	}
	if err != nil {
		fmt.Println("Interrupted, keeping the fittest so far")
	}
	if err := logger.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: generation log incomplete: %v\n", err)
	}

	fmt.Println("---")
	fmt.Printf("Evolution complete! %d generations in %v\n", res.Generations, res.Elapsed)
	fmt.Printf("Fittest: %s\n", res.Fittest)
	fmt.Printf("Fitness=%.1f, Value=%.1f, Weight=%.1f/%.0f\n",
		res.Score, res.Fittest.Value(), res.Fittest.Weight(), problem.Capacity)
	if ds != nil {
		if opt, ok := ds.OptimalValue(); ok {
			fmt.Printf("Known optimum for %s: %.1f\n", ds.Name, opt)
		}
	}

	if err := logging.SaveChampion(cfg.Logging.ChampionPath, logger.RunID(), res); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save champion: %v\n", err)
	}

	if cfg.Logging.PlotPath != "" {
		title := fmt.Sprintf("%s / %s", cfg.Strategies.Fitness, cfg.Strategies.Selection)
		if err := report.PlotConvergence(pop.History, title, cfg.Logging.PlotPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to plot convergence: %v\n", err)
		}
	}
}
