package runner

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/machmark/machmark/pkg/config"
	"github.com/machmark/machmark/pkg/probe/disk"
	"github.com/machmark/machmark/pkg/probe/fib"
	"github.com/machmark/machmark/pkg/probe/matrix"
	"github.com/machmark/machmark/pkg/probe/memory"
	"github.com/machmark/machmark/pkg/probe/sieve"
)

// tinyConfig returns a configuration small enough to run in tests.
func tinyConfig() config.Config {
	cfg := config.Defaults()
	cfg.FibN = 15
	cfg.PrimeN = 1000
	cfg.MatrixSize = 16
	cfg.MemoryMB = 1
	cfg.DiskMB = 1
	cfg.DiskBlockKB = 4
	return cfg
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestNew_ProbeOrder(t *testing.T) {
	suite, err := New(tinyConfig(), quietLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		fib.TypeName,
		sieve.TypeName,
		matrix.TypeName,
		memory.TypeName,
		disk.TypeName,
	}
	if len(suite.probes) != len(want) {
		t.Fatalf("expected %d probes, got %d", len(want), len(suite.probes))
	}
	for i, name := range want {
		if suite.probes[i].Name() != name {
			t.Errorf("probe %d: expected %s, got %s", i, name, suite.probes[i].Name())
		}
	}
}

func TestNew_DiskTestDisabled(t *testing.T) {
	cfg := tinyConfig()
	cfg.DiskTest = false

	suite, err := New(cfg, quietLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range suite.probes {
		if p.Name() == disk.TypeName {
			t.Error("expected no disk probe when disk test is disabled")
		}
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := tinyConfig()
	cfg.FibN = -1

	if _, err := New(cfg, quietLogger()); err == nil {
		t.Error("expected error for invalid probe parameter")
	}
}

func TestRun_AllProbes(t *testing.T) {
	suite, err := New(tinyConfig(), quietLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	results, err := suite.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, name := range []string{
		fib.TypeName, sieve.TypeName, matrix.TypeName, memory.TypeName, disk.TypeName,
	} {
		r, ok := results[name]
		if !ok {
			t.Errorf("expected result for %s", name)
			continue
		}
		if !r.Success {
			t.Errorf("expected %s to succeed, got error: %v", name, r.Err)
		}
	}

	if got := results[fib.TypeName].Metrics["result"]; got != 610 {
		t.Errorf("expected fib(15)=610, got %v", got)
	}
	if got := results[sieve.TypeName].Metrics["prime_count"]; got != 168 {
		t.Errorf("expected 168 primes below 1000, got %v", got)
	}
}

func TestRun_MatrixDisabledExcludedFromResults(t *testing.T) {
	cfg := tinyConfig()
	cfg.MatrixEnabled = false
	cfg.DiskTest = false

	suite, err := New(cfg, quietLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	results, err := suite.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := results[matrix.TypeName]; ok {
		t.Error("expected skipped matrix probe to be excluded from results")
	}
	if _, ok := results[fib.TypeName]; !ok {
		t.Error("expected the remaining probes to keep running after a skip")
	}
	if _, ok := results[memory.TypeName]; !ok {
		t.Error("expected memory result after matrix skip")
	}
}

func TestRun_CancelledContextAborts(t *testing.T) {
	suite, err := New(tinyConfig(), quietLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := suite.Run(ctx); err == nil {
		t.Error("expected error from cancelled run")
	}
}

func TestRegistry_DescribesAllTypes(t *testing.T) {
	suite, err := New(tinyConfig(), quietLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range suite.Registry().Types() {
		desc, err := suite.Registry().Describe(name)
		if err != nil {
			t.Errorf("Describe(%s) failed: %v", name, err)
			continue
		}
		if len(desc.Metrics) == 0 {
			t.Errorf("expected %s to declare metrics", name)
		}
	}
}
