package probe

// MetricDef describes a single metric produced by a probe type.
type MetricDef struct {
	// ResultKey is the key used in Result.Metrics (e.g. "write_speed_mb_per_sec").
	ResultKey string

	// Label is a human-readable label for report lines (e.g. "write speed").
	Label string

	// Unit is the unit of measurement for display (e.g. "MB/s").
	Unit string

	// Precision is the number of decimal places used when the metric
	// is rendered in the report.
	Precision int
}

// Descriptor declares metadata about a probe type, including what
// metrics it produces. The report generator uses it to render each
// metric with a consistent label, unit, and fixed decimal precision.
type Descriptor struct {
	// Label is a human-readable label for the probe's report section
	// (e.g. "Prime sieve").
	Label string

	// Metrics lists the metrics this probe produces.
	Metrics []MetricDef
}

// Metric returns the definition for the given result key, if declared.
func (d Descriptor) Metric(resultKey string) (MetricDef, bool) {
	for _, m := range d.Metrics {
		if m.ResultKey == resultKey {
			return m, true
		}
	}
	return MetricDef{}, false
}
