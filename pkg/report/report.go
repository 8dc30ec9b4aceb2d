// Package report renders the benchmark results as a fixed-format text
// report and persists it to disk.
//
// The report starts with a system-information header and contains one
// section per probe key present in the results map; absent probes are
// simply omitted. Metric precision and units come from each probe's
// Descriptor.
package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/machmark/machmark/pkg/probe"
	"github.com/machmark/machmark/pkg/probe/disk"
	"github.com/machmark/machmark/pkg/probe/fib"
	"github.com/machmark/machmark/pkg/probe/matrix"
	"github.com/machmark/machmark/pkg/probe/memory"
	"github.com/machmark/machmark/pkg/probe/sieve"
	"github.com/machmark/machmark/pkg/sysinfo"
)

// DefaultPath is the report filename used when none is configured.
const DefaultPath = "performance_report.txt"

const dividerWidth = 50

// Generator builds and writes benchmark reports.
type Generator struct {
	path   string
	logger *logrus.Logger
}

// NewGenerator creates a Generator writing to the given path. An empty
// path falls back to DefaultPath.
func NewGenerator(path string, logger *logrus.Logger) *Generator {
	if path == "" {
		path = DefaultPath
	}
	return &Generator{path: path, logger: logger}
}

// Path returns the file the report is written to.
func (g *Generator) Path() string {
	return g.path
}

// Generate renders the full report text for the given system snapshot
// and results map.
func (g *Generator) Generate(info sysinfo.Info, results map[string]probe.Result) string {
	var b strings.Builder

	divider := strings.Repeat("=", dividerWidth)

	b.WriteString("\n" + divider + "\n")
	b.WriteString("System Information\n")
	b.WriteString(strings.Repeat("-", dividerWidth) + "\n")
	fmt.Fprintf(&b, "OS:           %s\n", info.OS)
	fmt.Fprintf(&b, "Hostname:     %s\n", info.Hostname)
	fmt.Fprintf(&b, "Go version:   %s\n", info.GoVersion)
	fmt.Fprintf(&b, "CPU model:    %s\n", info.CPUModel)
	fmt.Fprintf(&b, "CPU cores:    %d\n", info.CPUCount)
	fmt.Fprintf(&b, "Total memory: %.2f GB\n", info.MemoryTotalGB)
	fmt.Fprintf(&b, "Test time:    %s\n", info.Timestamp.Format("2006-01-02 15:04:05"))
	b.WriteString(divider + "\n\n")

	if r, ok := results[fib.TypeName]; ok {
		fmt.Fprintf(&b, "%s (n=%.0f): %s\n",
			fib.Desc.Label, r.Metrics["n"],
			formatMetric(fib.Desc, "time_sec", r.Metrics))
	}

	if r, ok := results[sieve.TypeName]; ok {
		fmt.Fprintf(&b, "%s (n=%.0f): found %.0f primes in %s\n",
			sieve.Desc.Label, r.Metrics["n"], r.Metrics["prime_count"],
			formatMetric(sieve.Desc, "time_sec", r.Metrics))
	}

	if r, ok := results[matrix.TypeName]; ok {
		size := r.Metrics["matrix_size"]
		fmt.Fprintf(&b, "%s (%.0fx%.0f): %s\n",
			matrix.Desc.Label, size, size,
			formatMetric(matrix.Desc, "time_sec", r.Metrics))
	}

	if r, ok := results[memory.TypeName]; ok {
		fmt.Fprintf(&b, "\n%s (%.0f MB):\n", memory.Desc.Label, r.Metrics["size_mb"])
		fmt.Fprintf(&b, "  write speed: %s\n", formatMetric(memory.Desc, "write_speed_mb_per_sec", r.Metrics))
		fmt.Fprintf(&b, "  read speed:  %s\n", formatMetric(memory.Desc, "read_speed_mb_per_sec", r.Metrics))
	}

	if r, ok := results[disk.TypeName]; ok {
		fmt.Fprintf(&b, "\n%s (%.0f MB, %.0f KB blocks):\n",
			disk.Desc.Label, r.Metrics["size_mb"], r.Metrics["block_size_kb"])
		fmt.Fprintf(&b, "  write speed: %s\n", formatMetric(disk.Desc, "write_speed_mb_per_sec", r.Metrics))
		fmt.Fprintf(&b, "  read speed:  %s\n", formatMetric(disk.Desc, "read_speed_mb_per_sec", r.Metrics))
	}

	b.WriteString("\n" + divider + "\n")
	return b.String()
}

// Write persists the report text to the configured path, overwriting
// any previous report.
func (g *Generator) Write(text string) error {
	if err := os.WriteFile(g.path, []byte(text), 0644); err != nil {
		return fmt.Errorf("write report %s: %w", g.path, err)
	}
	g.logger.Debugf("report written to %s (%d bytes)", g.path, len(text))
	return nil
}

// formatMetric renders one metric value with the precision and unit
// declared in the probe's descriptor.
func formatMetric(desc probe.Descriptor, key string, metrics map[string]float64) string {
	value := metrics[key]

	def, ok := desc.Metric(key)
	if !ok {
		return fmt.Sprintf("%v", value)
	}
	if def.Unit == "" {
		return fmt.Sprintf("%.*f", def.Precision, value)
	}
	return fmt.Sprintf("%.*f %s", def.Precision, value, def.Unit)
}
