// Package dataset reads knapsack benchmark instances laid out as one
// directory per instance:
//
//	dataset_<n>/capacity.txt   one integer
//	dataset_<n>/profits.txt    one integer per item
//	dataset_<n>/weights.txt    one integer per item
//	dataset_<n>/solution.txt   optional known optimal 0/1 vector
//
// Lists may be separated by newlines, carriage returns, blanks or commas.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"knapsackga/internal/knapsack"
)

var (
	// ErrLengthMismatch is returned when profits, weights and solution disagree in length
	ErrLengthMismatch = errors.New("dataset: list lengths differ")
	// ErrEmpty is returned for a file without numbers
	ErrEmpty = errors.New("dataset: no numbers")
)

// Dataset is one benchmark instance as read from disk
type Dataset struct {
	Name     string
	Capacity int
	Profits  []int
	Weights  []int
	// Solution is nil when the instance ships without a known optimum
	Solution []int
}

// Load reads the instance stored in dir
func Load(dir string) (*Dataset, error) {
	capacity, err := readInts(filepath.Join(dir, "capacity.txt"))
	if err != nil {
		return nil, err
	}
	profits, err := readInts(filepath.Join(dir, "profits.txt"))
	if err != nil {
		return nil, err
	}
	weights, err := readInts(filepath.Join(dir, "weights.txt"))
	if err != nil {
		return nil, err
	}
	if len(profits) != len(weights) {
		return nil, fmt.Errorf("%w: %d profits, %d weights", ErrLengthMismatch, len(profits), len(weights))
	}

	ds := &Dataset{
		Name:     filepath.Base(dir),
		Capacity: capacity[0],
		Profits:  profits,
		Weights:  weights,
	}

	solution, err := readInts(filepath.Join(dir, "solution.txt"))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	case len(solution) != len(profits):
		return nil, fmt.Errorf("%w: %d solution bits, %d items", ErrLengthMismatch, len(solution), len(profits))
	default:
		ds.Solution = solution
	}
	return ds, nil
}

// LoadNumbered reads root/dataset_<n>
func LoadNumbered(root string, n int) (*Dataset, error) {
	return Load(filepath.Join(root, fmt.Sprintf("dataset_%d", n)))
}

// Problem converts the instance into the in-memory model
func (d *Dataset) Problem() *knapsack.Problem {
	elements := make([]knapsack.Element, len(d.Profits))
	for i := range d.Profits {
		elements[i] = knapsack.Element{Value: float64(d.Profits[i]), Weight: float64(d.Weights[i])}
	}
	return &knapsack.Problem{Capacity: float64(d.Capacity), Elements: elements}
}

// OptimalValue returns the value of the known solution
func (d *Dataset) OptimalValue() (float64, bool) {
	if d.Solution == nil {
		return 0, false
	}
	return d.Problem().TotalValue(d.Solution), true
}

func readInts(path string) ([]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fields := strings.FieldsFunc(string(data), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrEmpty, path)
	}

	nums := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("dataset: %s: %w", path, err)
		}
		nums[i] = n
	}
	return nums, nil
}
