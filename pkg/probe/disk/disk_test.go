package disk

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.sizeMB != DefaultSizeMB {
		t.Errorf("expected default size %d MB, got %d", DefaultSizeMB, d.sizeMB)
	}
	if d.blockKB != DefaultBlockKB {
		t.Errorf("expected default block size %d KB, got %d", DefaultBlockKB, d.blockKB)
	}
}

func TestOptions_Invalid(t *testing.T) {
	if _, err := New(WithSizeMB(0)); err == nil {
		t.Error("expected error for zero size")
	}
	if _, err := New(WithBlockKB(0)); err == nil {
		t.Error("expected error for zero block size")
	}
}

func TestName(t *testing.T) {
	d, _ := New()
	if d.Name() != "disk" {
		t.Errorf("expected name 'disk', got %q", d.Name())
	}
}

func TestRun_SmallFile(t *testing.T) {
	dir := t.TempDir()
	d, err := New(WithSizeMB(1), WithBlockKB(4), WithDir(dir))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := d.Run(context.Background())
	if !result.Success {
		t.Fatalf("expected success, got error: %v", result.Err)
	}
	if got := result.Metrics["size_mb"]; got != 1 {
		t.Errorf("expected size_mb=1, got %v", got)
	}
	if got := result.Metrics["block_size_kb"]; got != 4 {
		t.Errorf("expected block_size_kb=4, got %v", got)
	}
	if got := result.Metrics["write_speed_mb_per_sec"]; got <= 0 {
		t.Errorf("expected positive write speed, got %v", got)
	}
	if got := result.Metrics["read_speed_mb_per_sec"]; got <= 0 {
		t.Errorf("expected positive read speed, got %v", got)
	}
}

func TestRun_TempFileRemoved(t *testing.T) {
	dir := t.TempDir()
	d, err := New(WithSizeMB(1), WithDir(dir))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := d.Run(context.Background())
	if !result.Success {
		t.Fatalf("expected success, got error: %v", result.Err)
	}

	leftovers, err := filepath.Glob(filepath.Join(dir, "machmark-disk-*"))
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(leftovers) != 0 {
		t.Errorf("expected temp file to be removed, found %v", leftovers)
	}
}

func TestRun_TempFileRemovedOnError(t *testing.T) {
	// A nonexistent directory makes CreateTemp fail before any file exists.
	d, err := New(WithSizeMB(1), WithDir(filepath.Join(t.TempDir(), "missing")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := d.Run(context.Background())
	if result.Success {
		t.Fatal("expected failure for missing temp directory")
	}
	if result.Err == nil {
		t.Error("expected non-nil error")
	}
}

func TestRun_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	d, _ := New(WithSizeMB(1), WithDir(dir))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := d.Run(ctx)
	if result.Success {
		t.Error("expected cancelled run to fail")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no leftover files after cancel, found %d", len(entries))
	}
}

func TestFactory(t *testing.T) {
	p, err := Factory(map[string]any{"size_mb": 2, "block_size_kb": 64})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d := p.(*Disk)
	if d.sizeMB != 2 {
		t.Errorf("expected size_mb=2, got %d", d.sizeMB)
	}
	if d.blockKB != 64 {
		t.Errorf("expected block_size_kb=64, got %d", d.blockKB)
	}

	if _, err := Factory(map[string]any{"size_mb": "huge"}); err == nil {
		t.Error("expected error for non-numeric size_mb")
	}
	if _, err := Factory(map[string]any{"block_size_kb": true}); err == nil {
		t.Error("expected error for non-numeric block_size_kb")
	}
}
