package reporters

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// fileReporter writes each report as indented JSON named after the run id.
type fileReporter struct {
	id  string
	dir string
	log Logger
}

func newFileReporter(_ context.Context, cfg ReporterConfig, log Logger) (Reporter, error) {
	if cfg.File == nil || cfg.File.Directory == "" {
		return nil, fmt.Errorf("reporter %q missing file directory", cfg.ID)
	}
	return NewFileReporter(cfg.ID, cfg.File.Directory, log), nil
}

// NewFileReporter builds a file reporter outside of a registry.
func NewFileReporter(id, dir string, log Logger) Reporter {
	return &fileReporter{id: id, dir: dir, log: ensureLogger(log)}
}

func (f *fileReporter) ID() string   { return f.id }
func (f *fileReporter) Type() string { return TypeFile }

func (f *fileReporter) Publish(ctx context.Context, r Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	path := filepath.Join(f.dir, ReportFileName(r))
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	f.log.InfoObj("report written", "reporter_file", map[string]any{
		"path":   path,
		"status": r.Status,
	})
	return nil
}

// ReportFileName is the name a file reporter gives r.
func ReportFileName(r Report) string {
	return fmt.Sprintf("report_%s.json", r.RunID)
}
