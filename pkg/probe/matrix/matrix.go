// Package matrix implements the dense matrix multiplication CPU probe.
//
// Two random size×size matrices are generated and multiplied with
// gonum's mat package. Because the numeric workload is optional in the
// suite, a disabled probe returns a skipped result instead of running;
// the runner warns and leaves it out of the results map.
package matrix

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/machmark/machmark/pkg/probe"
)

const (
	// TypeName is the registered name for this probe type.
	TypeName = "cpu_matrix"

	// DefaultSize is the default matrix dimension.
	DefaultSize = 2000
)

// Desc describes the metrics produced by a matrix probe.
var Desc = probe.Descriptor{
	Label: "Matrix multiply",
	Metrics: []probe.MetricDef{
		{ResultKey: "matrix_size", Label: "size", Precision: 0},
		{ResultKey: "time_sec", Label: "elapsed", Unit: "s", Precision: 4},
	},
}

// Matrix implements probe.Probe using dense matrix multiplication.
type Matrix struct {
	size    int
	enabled bool
}

// New creates a matrix probe with the given options.
func New(opts ...Option) (*Matrix, error) {
	m := &Matrix{size: DefaultSize, enabled: true}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("matrix: %w", err)
		}
	}

	return m, nil
}

// Option is a functional option for configuring a Matrix probe.
type Option func(*Matrix) error

// WithSize sets the matrix dimension.
func WithSize(size int) Option {
	return func(m *Matrix) error {
		if size < 1 {
			return fmt.Errorf("size must be at least 1, got %d", size)
		}
		m.size = size
		return nil
	}
}

// WithEnabled controls whether the probe runs. A disabled probe
// reports a skipped result from Run.
func WithEnabled(enabled bool) Option {
	return func(m *Matrix) error {
		m.enabled = enabled
		return nil
	}
}

// Name returns the probe type name.
func (m *Matrix) Name() string {
	return TypeName
}

// Run multiplies two random matrices and returns the timed result.
// Matrix generation is excluded from the timed phase.
func (m *Matrix) Run(ctx context.Context) probe.Result {
	now := time.Now()

	if !m.enabled {
		return probe.Result{
			Timestamp:  now,
			Skipped:    true,
			SkipReason: "matrix probe disabled, multiplication test will be skipped",
		}
	}

	if err := ctx.Err(); err != nil {
		return probe.Result{Timestamp: now, Err: fmt.Errorf("matrix: %w", err)}
	}

	a := mat.NewDense(m.size, m.size, randomData(m.size*m.size))
	b := mat.NewDense(m.size, m.size, randomData(m.size*m.size))
	var c mat.Dense

	start := time.Now()
	c.Mul(a, b)
	elapsed := time.Since(start)

	// Touch one element so the product cannot be elided.
	_ = c.At(0, 0)

	return probe.Result{
		Timestamp: now,
		Success:   true,
		Metrics: map[string]float64{
			"matrix_size": float64(m.size),
			"time_sec":    elapsed.Seconds(),
		},
	}
}

// Factory creates a Matrix probe from a config map.
// Optional keys: "size" (int or float64), "enabled" (bool).
func Factory(config map[string]any) (probe.Probe, error) {
	var opts []Option

	if v, ok := config["size"]; ok {
		switch s := v.(type) {
		case int:
			opts = append(opts, WithSize(s))
		case float64:
			opts = append(opts, WithSize(int(s)))
		default:
			return nil, fmt.Errorf("matrix: 'size' must be a number, got %T", v)
		}
	}

	if v, ok := config["enabled"]; ok {
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("matrix: 'enabled' must be a bool, got %T", v)
		}
		opts = append(opts, WithEnabled(b))
	}

	return New(opts...)
}

func randomData(n int) []float64 {
	data := make([]float64, n)
	for i := range data {
		data[i] = rand.Float64()
	}
	return data
}
