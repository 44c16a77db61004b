package reporters

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestFileReporterWritesReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	rep := NewFileReporter("local", dir, nil)

	r := sampleReport()
	if err := rep.Publish(context.Background(), r); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "report_run-1.json"))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var back map[string]any
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"app", "environment", "run_id", "results", "passed", "failed", "status"} {
		if _, ok := back[key]; !ok {
			t.Fatalf("report missing %q: %s", key, raw)
		}
	}
}

func TestFileReporterHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewFileReporter("local", t.TempDir(), nil).Publish(ctx, sampleReport()); err == nil {
		t.Fatalf("expected context error")
	}
}
