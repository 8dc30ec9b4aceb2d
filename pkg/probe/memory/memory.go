// Package memory implements the memory throughput probe.
//
// A large byte buffer is written and read one byte at a time: the write
// phase stores a repeating 0-255 pattern, the read phase sums every byte
// into a checksum. Byte-by-byte access intentionally measures
// per-element overhead rather than bulk-copy throughput, so the numbers
// are not comparable to memcpy-style benchmarks.
package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/machmark/machmark/pkg/probe"
)

const (
	// TypeName is the registered name for this probe type.
	TypeName = "memory"

	// DefaultSizeMB is the default buffer size in megabytes.
	DefaultSizeMB = 1024
)

// Desc describes the metrics produced by a memory probe.
var Desc = probe.Descriptor{
	Label: "Memory test",
	Metrics: []probe.MetricDef{
		{ResultKey: "size_mb", Label: "size", Unit: "MB", Precision: 0},
		{ResultKey: "write_speed_mb_per_sec", Label: "write speed", Unit: "MB/s", Precision: 2},
		{ResultKey: "read_speed_mb_per_sec", Label: "read speed", Unit: "MB/s", Precision: 2},
		{ResultKey: "checksum", Label: "checksum", Precision: 0},
	},
}

// Memory implements probe.Probe using a byte-by-byte buffer walk.
type Memory struct {
	sizeMB int
}

// New creates a memory probe with the given options.
func New(opts ...Option) (*Memory, error) {
	m := &Memory{sizeMB: DefaultSizeMB}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("memory: %w", err)
		}
	}

	return m, nil
}

// Option is a functional option for configuring a Memory probe.
type Option func(*Memory) error

// WithSizeMB sets the buffer size in megabytes.
func WithSizeMB(sizeMB int) Option {
	return func(m *Memory) error {
		if sizeMB < 1 {
			return fmt.Errorf("size_mb must be at least 1, got %d", sizeMB)
		}
		m.sizeMB = sizeMB
		return nil
	}
}

// Name returns the probe type name.
func (m *Memory) Name() string {
	return TypeName
}

// Run walks the buffer twice, timing the write and read phases
// separately, and returns both throughputs plus the read checksum.
func (m *Memory) Run(ctx context.Context) probe.Result {
	now := time.Now()

	if err := ctx.Err(); err != nil {
		return probe.Result{Timestamp: now, Err: fmt.Errorf("memory: %w", err)}
	}

	sizeBytes := m.sizeMB * 1024 * 1024
	data := make([]byte, sizeBytes)

	startWrite := time.Now()
	for i := 0; i < sizeBytes; i++ {
		data[i] = byte(i % 256)
	}
	writeElapsed := time.Since(startWrite)

	if err := ctx.Err(); err != nil {
		return probe.Result{Timestamp: now, Err: fmt.Errorf("memory: %w", err)}
	}

	var checksum uint64
	startRead := time.Now()
	for i := 0; i < sizeBytes; i++ {
		checksum += uint64(data[i])
	}
	readElapsed := time.Since(startRead)

	return probe.Result{
		Timestamp: now,
		Success:   true,
		Metrics: map[string]float64{
			"size_mb":                float64(m.sizeMB),
			"write_speed_mb_per_sec": float64(m.sizeMB) / writeElapsed.Seconds(),
			"read_speed_mb_per_sec":  float64(m.sizeMB) / readElapsed.Seconds(),
			"checksum":               float64(checksum),
		},
	}
}

// Factory creates a Memory probe from a config map.
// Optional key: "size_mb" (int or float64).
func Factory(config map[string]any) (probe.Probe, error) {
	var opts []Option

	if v, ok := config["size_mb"]; ok {
		switch s := v.(type) {
		case int:
			opts = append(opts, WithSizeMB(s))
		case float64:
			opts = append(opts, WithSizeMB(int(s)))
		default:
			return nil, fmt.Errorf("memory: 'size_mb' must be a number, got %T", v)
		}
	}

	return New(opts...)
}
