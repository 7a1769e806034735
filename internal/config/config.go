package config

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"knapsackga/internal/dataset"
	"knapsackga/internal/ga"
	"knapsackga/internal/knapsack"
)

// Config is the root configuration structure
type Config struct {
	Seed       int64            `yaml:"seed"`
	Problem    ProblemConfig    `yaml:"problem"`
	GA         GAConfig         `yaml:"ga"`
	Strategies StrategiesConfig `yaml:"strategies"`
	Eval       EvalConfig       `yaml:"eval"`
	Logging    LogConfig        `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Bee        BeeConfig        `yaml:"bee"`
}

// ProblemConfig selects the knapsack instance: a dataset directory, or
// random items when Dataset is empty
type ProblemConfig struct {
	Dataset         string  `yaml:"dataset"`
	RandomItems     int     `yaml:"random_items"`
	RandomMaxValue  float64 `yaml:"random_max_value"`
	RandomMaxWeight float64 `yaml:"random_max_weight"`
	Capacity        float64 `yaml:"capacity"`
}

// GAConfig defines genetic algorithm parameters
type GAConfig struct {
	Population      int      `yaml:"population"`
	MutationRate    *float64 `yaml:"mutation_rate"`
	CrossoverRate   *float64 `yaml:"crossover_rate"`
	InversionRate   *float64 `yaml:"inversion_rate"`
	Elitism         *bool    `yaml:"elitism"`
	TournamentSize  int      `yaml:"tournament_size"`
	MaxGenerations  int      `yaml:"max_generations"`
	FlipProbability float64  `yaml:"flip_probability"`
	Repair          bool     `yaml:"repair"`
	CrossoverGate   bool     `yaml:"crossover_gate"`
}

// StrategiesConfig names one policy per strategy family
type StrategiesConfig struct {
	Fitness   string `yaml:"fitness"`   // basic|leftover
	Selection string `yaml:"selection"` // roulette|tournament
	Crossover string `yaml:"crossover"` // one_point|two_point
	Mutation  string `yaml:"mutation"`  // bit_flip|swap
	Inversion string `yaml:"inversion"` // random|none
}

// EvalConfig defines evaluation parameters
type EvalConfig struct {
	Workers          int `yaml:"workers"`
	FitnessCacheSize int `yaml:"fitness_cache_size"`
}

// LogConfig defines logging parameters
type LogConfig struct {
	EveryGenSummary bool   `yaml:"every_gen_summary"`
	CSVPath         string `yaml:"csv_path"`
	JSONPath        string `yaml:"json_path"`
	ChampionPath    string `yaml:"champion_path"`
	PlotPath        string `yaml:"plot_path"`
}

// MetricsConfig defines the prometheus endpoint; empty Addr disables it
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// BeeConfig defines bee colony parameters
type BeeConfig struct {
	Bees          int   `yaml:"bees"`
	EliteBees     int   `yaml:"elite_bees"`
	OnlookerBees  int   `yaml:"onlooker_bees"`
	ScoutBees     int   `yaml:"scout_bees"`
	MaxIterations int   `yaml:"max_iterations"`
	Elitism       *bool `yaml:"elitism"`
}

// Load reads a YAML config file and returns a Config
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML config data and applies defaults
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

// Default returns a config with every default applied
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Seed == 0 {
		cfg.Seed = 1337
	}
	if cfg.Problem.Dataset == "" {
		if cfg.Problem.RandomItems == 0 {
			cfg.Problem.RandomItems = 50
		}
		if cfg.Problem.RandomMaxValue == 0 {
			cfg.Problem.RandomMaxValue = 10
		}
		if cfg.Problem.RandomMaxWeight == 0 {
			cfg.Problem.RandomMaxWeight = 10
		}
		if cfg.Problem.Capacity == 0 {
			cfg.Problem.Capacity = float64(cfg.Problem.RandomItems) * cfg.Problem.RandomMaxWeight / 4
		}
	}
	if cfg.GA.Population == 0 {
		cfg.GA.Population = 200
	}
	// rates are pointers so an explicit 0 turns an operator off
	if cfg.GA.MutationRate == nil {
		cfg.GA.MutationRate = floatPtr(0.01)
	}
	if cfg.GA.CrossoverRate == nil {
		cfg.GA.CrossoverRate = floatPtr(0.9)
	}
	if cfg.GA.InversionRate == nil {
		cfg.GA.InversionRate = floatPtr(0.01)
	}
	if cfg.GA.Elitism == nil {
		cfg.GA.Elitism = boolPtr(true)
	}
	if cfg.GA.TournamentSize == 0 {
		cfg.GA.TournamentSize = 5
	}
	if cfg.GA.MaxGenerations == 0 {
		cfg.GA.MaxGenerations = ga.DefaultMaxGenerations
	}
	if cfg.GA.FlipProbability == 0 {
		cfg.GA.FlipProbability = ga.DefaultFlipProbability
	}
	if cfg.Strategies.Fitness == "" {
		cfg.Strategies.Fitness = "basic"
	}
	if cfg.Strategies.Selection == "" {
		cfg.Strategies.Selection = "roulette"
	}
	if cfg.Strategies.Crossover == "" {
		cfg.Strategies.Crossover = "one_point"
	}
	if cfg.Strategies.Mutation == "" {
		cfg.Strategies.Mutation = "bit_flip"
	}
	if cfg.Strategies.Inversion == "" {
		cfg.Strategies.Inversion = "random"
	}
	if cfg.Logging.CSVPath == "" {
		cfg.Logging.CSVPath = "runs/run.csv"
	}
	if cfg.Logging.JSONPath == "" {
		cfg.Logging.JSONPath = "runs/run.jsonl"
	}
	if cfg.Logging.ChampionPath == "" {
		cfg.Logging.ChampionPath = "artifacts/champion.json"
	}
	if cfg.Bee.Bees == 0 {
		cfg.Bee.Bees = 20
	}
	if cfg.Bee.EliteBees == 0 {
		cfg.Bee.EliteBees = 10
	}
	if cfg.Bee.OnlookerBees == 0 {
		cfg.Bee.OnlookerBees = 5
	}
	if cfg.Bee.ScoutBees == 0 {
		cfg.Bee.ScoutBees = 5
	}
	if cfg.Bee.MaxIterations == 0 {
		cfg.Bee.MaxIterations = 100
	}
	if cfg.Bee.Elitism == nil {
		cfg.Bee.Elitism = boolPtr(true)
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func floatPtr(f float64) *float64 {
	return &f
}

// LoadProblem builds the knapsack instance the config describes. Random
// problems are drawn from rng.
func (c *Config) LoadProblem(rng *rand.Rand) (*knapsack.Problem, *dataset.Dataset, error) {
	if c.Problem.Dataset != "" {
		ds, err := dataset.Load(c.Problem.Dataset)
		if err != nil {
			return nil, nil, err
		}
		problem := ds.Problem()
		return problem, ds, problem.Validate()
	}

	problem := &knapsack.Problem{
		Capacity: c.Problem.Capacity,
		Elements: knapsack.RandomElements(c.Problem.RandomItems, c.Problem.RandomMaxValue, c.Problem.RandomMaxWeight, rng),
	}
	return problem, nil, problem.Validate()
}

// PopulationSettings returns the engine's population parameters
func (c *Config) PopulationSettings() ga.PopulationSettings {
	return ga.PopulationSettings{
		Size:           c.GA.Population,
		MutationRate:   *c.GA.MutationRate,
		CrossoverRate:  *c.GA.CrossoverRate,
		InversionRate:  *c.GA.InversionRate,
		Elitism:        *c.GA.Elitism,
		TournamentSize: c.GA.TournamentSize,
	}
}

// EvolveSettings resolves the configured strategy names
func (c *Config) EvolveSettings() (ga.EvolveSettings, error) {
	var (
		s   ga.EvolveSettings
		err error
	)
	if s.Fitness, err = ga.FitnessByName(c.Strategies.Fitness); err != nil {
		return s, err
	}
	if c.Eval.FitnessCacheSize > 0 {
		if s.Fitness, err = ga.NewCachedFitness(s.Fitness, c.Eval.FitnessCacheSize); err != nil {
			return s, fmt.Errorf("fitness_cache_size with %s fitness: %w", c.Strategies.Fitness, err)
		}
	}
	if s.Selection, err = ga.SelectionByName(c.Strategies.Selection); err != nil {
		return s, err
	}
	if s.Crossover, err = ga.CrossoverByName(c.Strategies.Crossover); err != nil {
		return s, err
	}
	if s.Mutation, err = ga.MutationByName(c.Strategies.Mutation, c.GA.FlipProbability); err != nil {
		return s, err
	}
	if s.Inversion, err = ga.InversionByName(c.Strategies.Inversion); err != nil {
		return s, err
	}
	s.MaxGenerations = c.GA.MaxGenerations
	s.Repair = c.GA.Repair
	s.CrossoverGate = c.GA.CrossoverGate
	return s, nil
}
