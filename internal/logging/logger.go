package logging

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"knapsackga/internal/ga"
)

// Logger handles per-generation output for one run
type Logger struct {
	runID       string
	csvPath     string
	jsonPath    string
	csvFile     *os.File
	csvWriter   *csv.Writer
	jsonFile    *os.File
	out         io.Writer
	initialized bool
	err         error
}

// NewLogger creates a new logger with a fresh run id
func NewLogger(csvPath, jsonPath string) (*Logger, error) {
	l := &Logger{
		runID:    uuid.New().String(),
		csvPath:  csvPath,
		jsonPath: jsonPath,
		out:      os.Stdout,
	}

	// Ensure directories exist
	if err := os.MkdirAll(filepath.Dir(csvPath), 0755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(jsonPath), 0755); err != nil {
		return nil, err
	}

	return l, nil
}

// RunID returns the id every row of this run is tagged with
func (l *Logger) RunID() string {
	return l.runID
}

// SetOutput redirects the console lines; nil silences them
func (l *Logger) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	l.out = w
}

// Init initializes the log files
func (l *Logger) Init() error {
	var err error

	l.csvFile, err = os.Create(l.csvPath)
	if err != nil {
		return err
	}
	l.csvWriter = csv.NewWriter(l.csvFile)

	header := []string{
		"run_id", "generation", "best_fitness", "mean_fitness", "std_fitness",
		"best_value", "best_weight", "feasible",
	}
	if err := l.csvWriter.Write(header); err != nil {
		return err
	}

	l.jsonFile, err = os.OpenFile(l.jsonPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	l.initialized = true
	return nil
}

// Close closes all log files
func (l *Logger) Close() {
	if l.csvWriter != nil {
		l.csvWriter.Flush()
	}
	if l.csvFile != nil {
		l.csvFile.Close()
	}
	if l.jsonFile != nil {
		l.jsonFile.Close()
	}
}

// GenerationSummary holds per-generation statistics
type GenerationSummary struct {
	RunID      string `json:"run_id"`
	Generation int    `json:"generation"`
	ga.Stats
}

// Err returns the first error hit while writing generation rows
func (l *Logger) Err() error {
	return l.err
}

func (l *Logger) fail(err error) {
	if err != nil && l.err == nil {
		l.err = err
	}
}

// LogGeneration writes one CSV row, one JSON line and one console line.
// Write failures are kept for Err.
func (l *Logger) LogGeneration(gen ga.Generation) {
	if !l.initialized {
		return
	}

	summary := GenerationSummary{
		RunID:      l.runID,
		Generation: gen.Index,
		Stats:      gen.Stats,
	}

	row := []string{
		l.runID,
		strconv.Itoa(gen.Index),
		fmt.Sprintf("%.2f", summary.Best),
		fmt.Sprintf("%.2f", summary.Mean),
		fmt.Sprintf("%.2f", summary.StdDev),
		fmt.Sprintf("%.2f", summary.BestValue),
		fmt.Sprintf("%.2f", summary.BestWeight),
		strconv.Itoa(summary.Feasible),
	}
	l.fail(l.csvWriter.Write(row))
	l.csvWriter.Flush()
	l.fail(l.csvWriter.Error())

	jsonLine, err := json.Marshal(summary)
	l.fail(err)
	if err == nil {
		_, err = l.jsonFile.WriteString(string(jsonLine) + "\n")
		l.fail(err)
	}

	fmt.Fprintf(l.out, "Gen %4d | Best: %8.1f | Mean: %8.1f | Std: %6.1f | Value: %6.1f | Weight: %6.1f | Feasible: %d/%d\n",
		gen.Index, summary.Best, summary.Mean, summary.StdDev, summary.BestValue, summary.BestWeight,
		summary.Feasible, len(gen.Genotypes))
}

// Champion is the saved form of the fittest genotype of a run
type Champion struct {
	RunID       string  `json:"run_id"`
	Generations int     `json:"generations"`
	Fitness     float64 `json:"fitness"`
	Value       float64 `json:"value"`
	Weight      float64 `json:"weight"`
	ElapsedMS   float64 `json:"elapsed_ms"`
	Genes       []int   `json:"genes"`
}

// SaveChampion saves the fittest genotype of res to a file
func SaveChampion(path, runID string, res *ga.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data := Champion{
		RunID:       runID,
		Generations: res.Generations,
		Fitness:     res.Score,
		Value:       res.Fittest.Value(),
		Weight:      res.Fittest.Weight(),
		ElapsedMS:   float64(res.Elapsed.Microseconds()) / 1000,
		Genes:       res.Fittest.Bits(),
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, jsonData, 0644)
}

// LoadChampion loads a champion from a file
func LoadChampion(path string) (*Champion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var saved Champion
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, err
	}

	return &saved, nil
}
