package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"

	"knapsackga/internal/bee"
	"knapsackga/internal/config"
)

func main() {
	configPath := flag.String("config", "configs/knapsack.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	problem, ds, err := cfg.LoadProblem(rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading problem: %v\n", err)
		os.Exit(1)
	}

	colony, err := bee.NewColony(problem, bee.Settings{
		Bees:          cfg.Bee.Bees,
		EliteBees:     cfg.Bee.EliteBees,
		OnlookerBees:  cfg.Bee.OnlookerBees,
		ScoutBees:     cfg.Bee.ScoutBees,
		MaxIterations: cfg.Bee.MaxIterations,
		Elitism:       *cfg.Bee.Elitism,
	}, rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating colony: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Bee colony - Items: %d, Capacity: %.0f, Bees: %d, Iterations: %d\n",
		problem.Size(), problem.Capacity, cfg.Bee.Bees, cfg.Bee.MaxIterations)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := colony.Optimize(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error optimizing: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done in %v after %d iterations\n", res.Elapsed, res.Iterations)
	fmt.Printf("Solution: %v\n", res.Solution)
	fmt.Printf("Value=%.1f, Weight=%.1f/%.0f\n", res.Value, res.Weight, problem.Capacity)
	if ds != nil {
		if opt, ok := ds.OptimalValue(); ok {
			fmt.Printf("Known optimum for %s: %.1f\n", ds.Name, opt)
		}
	}
}
