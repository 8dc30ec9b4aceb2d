// Package disk implements the disk throughput probe.
//
// A freshly created temporary file is written in fixed-size blocks of
// random bytes, synced to durable storage before the write timer stops,
// then rewound and read back block by block in a separately timed phase.
// The file is removed when the probe returns, whatever the outcome.
//
// The read phase typically hits the page cache, so the read figure
// reflects cached throughput unless the file exceeds available memory.
package disk

import (
	"context"
	cryptorand "crypto/rand"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/machmark/machmark/pkg/probe"
)

const (
	// TypeName is the registered name for this probe type.
	TypeName = "disk"

	// DefaultSizeMB is the default amount of data written, in megabytes.
	DefaultSizeMB = 1024

	// DefaultBlockKB is the default block size in kilobytes.
	DefaultBlockKB = 4
)

// Desc describes the metrics produced by a disk probe.
var Desc = probe.Descriptor{
	Label: "Disk test",
	Metrics: []probe.MetricDef{
		{ResultKey: "size_mb", Label: "size", Unit: "MB", Precision: 0},
		{ResultKey: "block_size_kb", Label: "block size", Unit: "KB", Precision: 0},
		{ResultKey: "write_speed_mb_per_sec", Label: "write speed", Unit: "MB/s", Precision: 2},
		{ResultKey: "read_speed_mb_per_sec", Label: "read speed", Unit: "MB/s", Precision: 2},
	},
}

// Disk implements probe.Probe using block I/O against a temporary file.
type Disk struct {
	sizeMB  int
	blockKB int
	dir     string
}

// New creates a disk probe with the given options.
func New(opts ...Option) (*Disk, error) {
	d := &Disk{sizeMB: DefaultSizeMB, blockKB: DefaultBlockKB}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, fmt.Errorf("disk: %w", err)
		}
	}

	return d, nil
}

// Option is a functional option for configuring a Disk probe.
type Option func(*Disk) error

// WithSizeMB sets the amount of data written, in megabytes.
func WithSizeMB(sizeMB int) Option {
	return func(d *Disk) error {
		if sizeMB < 1 {
			return fmt.Errorf("size_mb must be at least 1, got %d", sizeMB)
		}
		d.sizeMB = sizeMB
		return nil
	}
}

// WithBlockKB sets the block size in kilobytes.
func WithBlockKB(blockKB int) Option {
	return func(d *Disk) error {
		if blockKB < 1 {
			return fmt.Errorf("block_size_kb must be at least 1, got %d", blockKB)
		}
		d.blockKB = blockKB
		return nil
	}
}

// WithDir sets the directory where the temporary file is created.
// An empty value uses the system default temp directory.
func WithDir(dir string) Option {
	return func(d *Disk) error {
		d.dir = dir
		return nil
	}
}

// Name returns the probe type name.
func (d *Disk) Name() string {
	return TypeName
}

// Run writes and reads back the test file and returns both throughputs.
func (d *Disk) Run(ctx context.Context) probe.Result {
	now := time.Now()

	if err := ctx.Err(); err != nil {
		return probe.Result{Timestamp: now, Err: fmt.Errorf("disk: %w", err)}
	}

	blockSize := d.blockKB * 1024
	blocks := d.sizeMB * 1024 * 1024 / blockSize

	block := make([]byte, blockSize)
	if _, err := cryptorand.Read(block); err != nil {
		return probe.Result{Timestamp: now, Err: fmt.Errorf("disk: generate random block: %w", err)}
	}

	f, err := os.CreateTemp(d.dir, "machmark-disk-*")
	if err != nil {
		return probe.Result{Timestamp: now, Err: fmt.Errorf("disk: create temp file: %w", err)}
	}
	defer func() {
		f.Close()
		os.Remove(f.Name())
	}()

	startWrite := time.Now()
	for i := 0; i < blocks; i++ {
		if _, err := f.Write(block); err != nil {
			return probe.Result{Timestamp: now, Err: fmt.Errorf("disk: write block %d: %w", i, err)}
		}
	}
	if err := f.Sync(); err != nil {
		return probe.Result{Timestamp: now, Err: fmt.Errorf("disk: sync: %w", err)}
	}
	writeElapsed := time.Since(startWrite)

	if err := ctx.Err(); err != nil {
		return probe.Result{Timestamp: now, Err: fmt.Errorf("disk: %w", err)}
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return probe.Result{Timestamp: now, Err: fmt.Errorf("disk: rewind: %w", err)}
	}

	buf := make([]byte, blockSize)
	startRead := time.Now()
	for i := 0; i < blocks; i++ {
		if _, err := io.ReadFull(f, buf); err != nil {
			return probe.Result{Timestamp: now, Err: fmt.Errorf("disk: read block %d: %w", i, err)}
		}
	}
	readElapsed := time.Since(startRead)

	return probe.Result{
		Timestamp: now,
		Success:   true,
		Metrics: map[string]float64{
			"size_mb":                float64(d.sizeMB),
			"block_size_kb":          float64(d.blockKB),
			"write_speed_mb_per_sec": float64(d.sizeMB) / writeElapsed.Seconds(),
			"read_speed_mb_per_sec":  float64(d.sizeMB) / readElapsed.Seconds(),
		},
	}
}

// Factory creates a Disk probe from a config map.
// Optional keys: "size_mb", "block_size_kb" (int or float64).
func Factory(config map[string]any) (probe.Probe, error) {
	var opts []Option

	if v, ok := config["size_mb"]; ok {
		switch s := v.(type) {
		case int:
			opts = append(opts, WithSizeMB(s))
		case float64:
			opts = append(opts, WithSizeMB(int(s)))
		default:
			return nil, fmt.Errorf("disk: 'size_mb' must be a number, got %T", v)
		}
	}

	if v, ok := config["block_size_kb"]; ok {
		switch b := v.(type) {
		case int:
			opts = append(opts, WithBlockKB(b))
		case float64:
			opts = append(opts, WithBlockKB(int(b)))
		default:
			return nil, fmt.Errorf("disk: 'block_size_kb' must be a number, got %T", v)
		}
	}

	return New(opts...)
}
