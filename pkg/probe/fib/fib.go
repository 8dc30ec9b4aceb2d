// Package fib implements the recursive Fibonacci CPU probe.
//
// The workload is the naive doubly-recursive Fibonacci computation,
// chosen for its heavy function-call overhead. The result value is
// deterministic; only the elapsed time varies between runs.
package fib

import (
	"context"
	"fmt"
	"time"

	"github.com/machmark/machmark/pkg/probe"
)

const (
	// TypeName is the registered name for this probe type.
	TypeName = "cpu_fibonacci"

	// DefaultN is the default Fibonacci index.
	DefaultN = 35
)

// Desc describes the metrics produced by a Fibonacci probe.
var Desc = probe.Descriptor{
	Label: "Fibonacci",
	Metrics: []probe.MetricDef{
		{ResultKey: "n", Label: "n", Precision: 0},
		{ResultKey: "result", Label: "result", Precision: 0},
		{ResultKey: "time_sec", Label: "elapsed", Unit: "s", Precision: 4},
	},
}

// Fib implements probe.Probe using recursive Fibonacci computation.
type Fib struct {
	n int
}

// New creates a Fibonacci probe with the given options.
func New(opts ...Option) (*Fib, error) {
	f := &Fib{n: DefaultN}

	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, fmt.Errorf("fib: %w", err)
		}
	}

	return f, nil
}

// Option is a functional option for configuring a Fib probe.
type Option func(*Fib) error

// WithN sets the Fibonacci index to compute.
func WithN(n int) Option {
	return func(f *Fib) error {
		if n < 0 {
			return fmt.Errorf("n must be non-negative, got %d", n)
		}
		f.n = n
		return nil
	}
}

// Name returns the probe type name.
func (f *Fib) Name() string {
	return TypeName
}

// Run computes fib(n) and returns the timed result.
func (f *Fib) Run(ctx context.Context) probe.Result {
	now := time.Now()

	if err := ctx.Err(); err != nil {
		return probe.Result{Timestamp: now, Err: fmt.Errorf("fib: %w", err)}
	}

	start := time.Now()
	value := Compute(f.n)
	elapsed := time.Since(start)

	return probe.Result{
		Timestamp: now,
		Success:   true,
		Metrics: map[string]float64{
			"n":        float64(f.n),
			"result":   float64(value),
			"time_sec": elapsed.Seconds(),
		},
	}
}

// Factory creates a Fib probe from a config map.
// Optional key: "n" (int or float64).
func Factory(config map[string]any) (probe.Probe, error) {
	var opts []Option

	if v, ok := config["n"]; ok {
		switch n := v.(type) {
		case int:
			opts = append(opts, WithN(n))
		case float64:
			opts = append(opts, WithN(int(n)))
		default:
			return nil, fmt.Errorf("fib: 'n' must be a number, got %T", v)
		}
	}

	return New(opts...)
}

// Compute returns the nth Fibonacci number by the naive recursive
// definition: fib(0)=0, fib(1)=1, fib(n)=fib(n-1)+fib(n-2).
func Compute(n int) uint64 {
	if n <= 1 {
		return uint64(n)
	}
	return Compute(n-1) + Compute(n-2)
}
