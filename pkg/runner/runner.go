// Package runner executes the benchmark suite.
//
// Probes run strictly sequentially, in a fixed order, so no probe's
// measurement is disturbed by another. The first probe error aborts the
// run; a skipped probe only produces a warning.
package runner

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/machmark/machmark/pkg/config"
	"github.com/machmark/machmark/pkg/probe"
	"github.com/machmark/machmark/pkg/probe/disk"
	"github.com/machmark/machmark/pkg/probe/fib"
	"github.com/machmark/machmark/pkg/probe/matrix"
	"github.com/machmark/machmark/pkg/probe/memory"
	"github.com/machmark/machmark/pkg/probe/sieve"
)

// Suite holds the ordered probes of one benchmark run. The results map
// is owned exclusively by the suite; keys are added only on successful
// probe completion.
type Suite struct {
	probes   []probe.Probe
	registry *probe.Registry
	results  map[string]probe.Result
	logger   *logrus.Logger
}

// probeSpec names a probe type and the config map its factory receives.
type probeSpec struct {
	name   string
	config map[string]any
}

// New builds the fixed-order suite (Fibonacci, prime sieve, matrix,
// memory, then optionally disk) from the given configuration.
func New(cfg config.Config, logger *logrus.Logger) (*Suite, error) {
	registry, err := newRegistry()
	if err != nil {
		return nil, err
	}

	specs := []probeSpec{
		{fib.TypeName, map[string]any{"n": cfg.FibN}},
		{sieve.TypeName, map[string]any{"n": cfg.PrimeN}},
		{matrix.TypeName, map[string]any{"size": cfg.MatrixSize, "enabled": cfg.MatrixEnabled}},
		{memory.TypeName, map[string]any{"size_mb": cfg.MemoryMB}},
	}
	if cfg.DiskTest {
		specs = append(specs, probeSpec{disk.TypeName, map[string]any{
			"size_mb":       cfg.DiskMB,
			"block_size_kb": cfg.DiskBlockKB,
		}})
	}

	probes := make([]probe.Probe, 0, len(specs))
	for _, spec := range specs {
		p, err := registry.Create(spec.name, spec.config)
		if err != nil {
			return nil, fmt.Errorf("build probe %s: %w", spec.name, err)
		}
		probes = append(probes, p)
	}

	return &Suite{
		probes:   probes,
		registry: registry,
		results:  make(map[string]probe.Result),
		logger:   logger,
	}, nil
}

// newRegistry registers every known probe type.
func newRegistry() (*probe.Registry, error) {
	registry := probe.NewRegistry()

	registrations := []struct {
		name    string
		factory probe.Factory
		desc    probe.Descriptor
	}{
		{fib.TypeName, fib.Factory, fib.Desc},
		{sieve.TypeName, sieve.Factory, sieve.Desc},
		{matrix.TypeName, matrix.Factory, matrix.Desc},
		{memory.TypeName, memory.Factory, memory.Desc},
		{disk.TypeName, disk.Factory, disk.Desc},
	}
	for _, r := range registrations {
		if err := registry.Register(r.name, r.factory, r.desc); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Registry exposes the probe registry, mainly for descriptor lookup.
func (s *Suite) Registry() *probe.Registry {
	return s.registry
}

// Run executes the probes in order and returns the results map. A probe
// error aborts the remaining run with no partial results; a skipped
// probe is warned about and excluded from the map.
func (s *Suite) Run(ctx context.Context) (map[string]probe.Result, error) {
	for _, p := range s.probes {
		s.logger.Infof("running %s probe...", p.Name())

		result := p.Run(ctx)
		if result.Err != nil {
			return nil, fmt.Errorf("probe %s: %w", p.Name(), result.Err)
		}
		if result.Skipped {
			s.logger.Warnf("probe %s skipped: %s", p.Name(), result.SkipReason)
			continue
		}

		s.results[p.Name()] = result
		if elapsed, ok := result.Metrics["time_sec"]; ok {
			s.logger.Infof("%s done in %.4fs", p.Name(), elapsed)
		} else {
			s.logger.Infof("%s done", p.Name())
		}
	}
	return s.results, nil
}
