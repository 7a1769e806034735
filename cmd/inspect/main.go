package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"knapsackga/internal/config"
	"knapsackga/internal/logging"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "configs/knapsack.yaml", "path to config file")
	championPath := flag.String("champion", "artifacts/champion.json", "path to champion JSON")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Load champion
	champion, err := logging.LoadChampion(*championPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading champion: %v\n", err)
		os.Exit(1)
	}

	// Random problems are rebuilt from the same seed the run used
	problem, ds, err := cfg.LoadProblem(rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading problem: %v\n", err)
		os.Exit(1)
	}
	if len(champion.Genes) != problem.Size() {
		fmt.Fprintf(os.Stderr, "Champion has %d genes but the problem has %d items\n", len(champion.Genes), problem.Size())
		os.Exit(1)
	}

	fmt.Printf("Loaded champion of run %s (%d generations, fitness=%.1f)\n",
		champion.RunID, champion.Generations, champion.Fitness)
	fmt.Println()

	fmt.Printf("  %4s  %8s  %8s\n", "item", "value", "weight")
	for i, bit := range champion.Genes {
		if bit == 0 {
			continue
		}
		e := problem.Elements[i]
		fmt.Printf("  %4d  %8.1f  %8.1f\n", i, e.Value, e.Weight)
	}

	value := problem.TotalValue(champion.Genes)
	weight := problem.TotalWeight(champion.Genes)

	fmt.Println()
	fmt.Println("===================================")
	fmt.Printf("  Value: %.1f\n", value)
	fmt.Printf("  Weight: %.1f / %.0f\n", weight, problem.Capacity)
	if weight > problem.Capacity {
		fmt.Println("  Over capacity!")
	}
	if ds != nil {
		if opt, ok := ds.OptimalValue(); ok {
			fmt.Printf("  Optimum: %.1f, gap: %.1f\n", opt, opt-value)
		}
	}
	fmt.Println("===================================")
}
