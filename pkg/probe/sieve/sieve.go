// Package sieve implements the prime sieve CPU probe.
//
// The workload counts all primes up to a bound with the Sieve of
// Eratosthenes. It exercises sequential memory access over a large
// boolean slice together with integer arithmetic.
package sieve

import (
	"context"
	"fmt"
	"time"

	"github.com/machmark/machmark/pkg/probe"
)

const (
	// TypeName is the registered name for this probe type.
	TypeName = "cpu_prime"

	// DefaultN is the default upper bound for the sieve.
	DefaultN = 1000000
)

// Desc describes the metrics produced by a sieve probe.
var Desc = probe.Descriptor{
	Label: "Prime sieve",
	Metrics: []probe.MetricDef{
		{ResultKey: "n", Label: "n", Precision: 0},
		{ResultKey: "prime_count", Label: "primes", Precision: 0},
		{ResultKey: "time_sec", Label: "elapsed", Unit: "s", Precision: 4},
	},
}

// Sieve implements probe.Probe using the Sieve of Eratosthenes.
type Sieve struct {
	n int
}

// New creates a sieve probe with the given options.
func New(opts ...Option) (*Sieve, error) {
	s := &Sieve{n: DefaultN}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("sieve: %w", err)
		}
	}

	return s, nil
}

// Option is a functional option for configuring a Sieve probe.
type Option func(*Sieve) error

// WithN sets the upper bound for the sieve.
func WithN(n int) Option {
	return func(s *Sieve) error {
		if n < 2 {
			return fmt.Errorf("n must be at least 2, got %d", n)
		}
		s.n = n
		return nil
	}
}

// Name returns the probe type name.
func (s *Sieve) Name() string {
	return TypeName
}

// Run counts primes up to n and returns the timed result.
func (s *Sieve) Run(ctx context.Context) probe.Result {
	now := time.Now()

	if err := ctx.Err(); err != nil {
		return probe.Result{Timestamp: now, Err: fmt.Errorf("sieve: %w", err)}
	}

	start := time.Now()
	count := Count(s.n)
	elapsed := time.Since(start)

	return probe.Result{
		Timestamp: now,
		Success:   true,
		Metrics: map[string]float64{
			"n":           float64(s.n),
			"prime_count": float64(count),
			"time_sec":    elapsed.Seconds(),
		},
	}
}

// Factory creates a Sieve probe from a config map.
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
			return nil, fmt.Errorf("sieve: 'n' must be a number, got %T", v)
		}
	}

	return New(opts...)
}

// Count returns the number of primes less than or equal to n using the
// Sieve of Eratosthenes. Composite multiples of each discovered prime
// are marked starting at its square.
func Count(n int) int {
	if n < 2 {
		return 0
	}

	composite := make([]bool, n+1)
	for i := 2; i*i <= n; i++ {
		if composite[i] {
			continue
		}
		for j := i * i; j <= n; j += i {
			composite[j] = true
		}
	}

	count := 0
	for i := 2; i <= n; i++ {
		if !composite[i] {
			count++
		}
	}
	return count
}
