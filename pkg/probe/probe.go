// Package probe defines the core interfaces and types for benchmark probes.
//
// A Probe represents a single independent benchmark measurement (recursive
// Fibonacci, prime sieve, memory walk, disk block I/O, and so on). Each
// probe type implements the Probe interface with its own workload and
// configuration.
//
// Results from probe execution are captured in a Result struct, which
// provides a uniform shape regardless of probe type: completion or skip,
// a set of named scalar metrics, and an optional error.
//
// The Registry provides type discovery, allowing probe types to be
// registered by name and instantiated from configuration at runtime.
package probe

import (
	"context"
	"time"
)

// Probe is the interface that all benchmark probe types must implement.
type Probe interface {
	// Name returns the registered name of this probe type (e.g. "cpu_prime").
	Name() string

	// Run executes the workload and returns a Result.
	// The provided context can be used for cancellation between phases;
	// probes do not interrupt a timed phase once it has started.
	Run(ctx context.Context) Result
}

// Result captures the outcome of a single probe execution.
type Result struct {
	// Timestamp is when the probe was started.
	Timestamp time.Time

	// Success indicates whether the probe ran to completion.
	Success bool

	// Skipped indicates the probe declined to run (for example a
	// disabled matrix probe). A skipped result is neither a success
	// nor an error; the runner excludes it from the results map.
	Skipped bool

	// SkipReason holds a human-readable explanation when Skipped is set.
	SkipReason string

	// Metrics holds named scalar measurements from the probe execution.
	// For example, the sieve probe sets {"prime_count": 78498, ...}.
	// Timings are reported in seconds, throughputs in MB/s.
	Metrics map[string]float64

	// Err holds any error encountered during probe execution.
	// A non-nil Err corresponds to Success being false.
	Err error
}
