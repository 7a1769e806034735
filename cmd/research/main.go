package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"

	"knapsackga/internal/config"
	"knapsackga/internal/report"
	"knapsackga/internal/research"
)

func main() {
	configPath := flag.String("config", "configs/knapsack.yaml", "path to config file")
	repeats := flag.Int("repeats", 10, "runs averaged per variant")
	only := flag.String("study", "", "run a single study by attribute name (e.g. mutationRate)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	problem, _, err := cfg.LoadProblem(rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading problem: %v\n", err)
		os.Exit(1)
	}

	evolve, err := cfg.EvolveSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving strategies: %v\n", err)
		os.Exit(1)
	}
	base := research.Variant{Label: "base", Population: cfg.PopulationSettings(), Evolve: evolve}

	studies, err := research.DefaultStudies(base, cfg.GA.FlipProbability)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building studies: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sweep := research.Sweep{Problem: problem, Repeats: *repeats, Seed: cfg.Seed, Workers: cfg.Eval.Workers}
	fmt.Printf("Research - Items: %d, Capacity: %.0f, Repeats: %d\n\n", problem.Size(), problem.Capacity, *repeats)

	for _, study := range studies {
		if *only != "" && study.Attribute != *only {
			continue
		}
		rows, err := sweep.Run(ctx, study.Variants)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running %s: %v\n", study.Name, err)
			os.Exit(1)
		}
		if err := report.WriteTable(os.Stdout, study.Name, research.Headers(study.Attribute), research.TableRows(rows)); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing table: %v\n", err)
			os.Exit(1)
		}
		fmt.Println()
	}
}
