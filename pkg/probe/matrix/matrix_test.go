package matrix

import (
	"context"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.size != DefaultSize {
		t.Errorf("expected default size %d, got %d", DefaultSize, m.size)
	}
	if !m.enabled {
		t.Error("expected probe to be enabled by default")
	}
}

func TestWithSize_Invalid(t *testing.T) {
	_, err := New(WithSize(0))
	if err == nil {
		t.Error("expected error for zero size")
	}
}

func TestName(t *testing.T) {
	m, _ := New()
	if m.Name() != "cpu_matrix" {
		t.Errorf("expected name 'cpu_matrix', got %q", m.Name())
	}
}

func TestRun_SmallMatrix(t *testing.T) {
	m, err := New(WithSize(32))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := m.Run(context.Background())
	if !result.Success {
		t.Fatalf("expected success, got error: %v", result.Err)
	}
	if result.Skipped {
		t.Error("enabled probe should not be skipped")
	}
	if got := result.Metrics["matrix_size"]; got != 32 {
		t.Errorf("expected matrix_size=32, got %v", got)
	}
	if got := result.Metrics["time_sec"]; got < 0 {
		t.Errorf("expected non-negative elapsed time, got %v", got)
	}
}

func TestRun_Disabled(t *testing.T) {
	m, err := New(WithEnabled(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := m.Run(context.Background())
	if !result.Skipped {
		t.Fatal("expected disabled probe to report a skipped result")
	}
	if result.Success {
		t.Error("skipped result should not be a success")
	}
	if result.SkipReason == "" {
		t.Error("expected a skip reason")
	}
	if result.Err != nil {
		t.Errorf("skipped result should have nil error, got %v", result.Err)
	}
	if result.Metrics != nil {
		t.Error("skipped result should have no metrics")
	}
}

func TestRun_CancelledContext(t *testing.T) {
	m, _ := New(WithSize(8))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := m.Run(ctx)
	if result.Success {
		t.Error("expected cancelled run to fail")
	}
}

func TestFactory(t *testing.T) {
	p, err := Factory(map[string]any{"size": 64, "enabled": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := p.(*Matrix)
	if m.size != 64 {
		t.Errorf("expected size=64, got %d", m.size)
	}

	if _, err := Factory(map[string]any{"size": "big"}); err == nil {
		t.Error("expected error for non-numeric size")
	}
	if _, err := Factory(map[string]any{"enabled": "yes"}); err == nil {
		t.Error("expected error for non-bool enabled")
	}
}
