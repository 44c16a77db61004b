package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/poetrydb-api-tests/internal/apilog"
	"github.com/samvad-hq/poetrydb-api-tests/internal/config"
	"github.com/samvad-hq/poetrydb-api-tests/internal/fixtures"
	"github.com/samvad-hq/poetrydb-api-tests/internal/logger"
	"github.com/samvad-hq/poetrydb-api-tests/internal/runner"
	"github.com/samvad-hq/poetrydb-api-tests/pkg/httpclient"
	"github.com/samvad-hq/poetrydb-api-tests/pkg/poetry"
	"github.com/samvad-hq/poetrydb-api-tests/pkg/reporters"
)

const publishTimeout = 30 * time.Second

// Session is one harness run: it owns the exchange log, the API client and
// the reporters, and runs the smoke checks once.
type Session struct {
	cfg     *config.Config
	log     logger.Logger
	apiLog  *apilog.Logger
	checks  []runner.Check
	runner  *runner.Service
	fanout  *reporters.Fanout
	started bool
}

// NewSession opens the session log and wires client, services and reporters.
func NewSession(ctx context.Context, cfg *config.Config, log logger.Logger) (*Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)
	if ctx == nil {
		ctx = context.Background()
	}

	exp, err := fixtures.LoadOrDefault(cfg.ExpectationsFile)
	if err != nil {
		return nil, fmt.Errorf("load expectations: %w", err)
	}
	log.InfoObj("expectations loaded", "expectations_meta", map[string]any{
		"source":  sourceName(cfg.ExpectationsFile),
		"authors": len(exp.Authors),
		"titles":  len(exp.Titles),
		"poems":   len(exp.Poems),
	})

	reps, err := buildReporters(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	fanout := reporters.NewFanout(reps)

	apiLog, err := apilog.Open(apilog.Options{
		Dir:     cfg.LogDirectory,
		Console: cfg.ConsoleLogs,
	})
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("open session log: %w", err)
	}
	log.InfoObj("session log opened", "session_log", apiLog.Path())

	client := httpclient.New(cfg.APIURL, poetry.DefaultHeaders(),
		httpclient.WithTimeout(cfg.RequestTimeout),
		httpclient.WithExchangeLogger(apiLog),
	)
	services := poetry.NewServices(client)

	return &Session{
		cfg:    cfg,
		log:    log,
		apiLog: apiLog,
		checks: runner.SmokeChecks(services, exp, cfg.MaxLatency),
		runner: runner.NewService(),
		fanout: fanout,
	}, nil
}

func buildReporters(ctx context.Context, cfg *config.Config, log logger.Logger) ([]reporters.Reporter, error) {
	var reps []reporters.Reporter
	if cfg.ReportDirectory != "" {
		reps = append(reps, reporters.NewFileReporter("report-directory", cfg.ReportDirectory, log))
	}
	if cfg.ReportersFile == "" {
		return reps, nil
	}

	reg, err := reporters.LoadRegistry(cfg.ReportersFile)
	if err != nil {
		return nil, fmt.Errorf("load reporters registry: %w", err)
	}
	enabled := reg.Enabled()
	built, err := reporters.BuildAll(ctx, reporters.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build reporters: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, c := range enabled {
		summaries = append(summaries, map[string]string{"id": c.ID, "type": c.Type})
	}
	log.InfoObj("reporters registry loaded", "reporters_meta", map[string]any{
		"count":     len(summaries),
		"reporters": summaries,
	})

	return append(reps, built...), nil
}

// LogPath returns the session log file path.
func (s *Session) LogPath() string {
	if s == nil {
		return ""
	}
	return s.apiLog.Path()
}

// Run executes the smoke checks once and publishes the report. The report is
// published even when ctx was cancelled mid-run.
func (s *Session) Run(ctx context.Context) (runner.Summary, error) {
	if s == nil || s.runner == nil {
		return runner.Summary{}, fmt.Errorf("session is not initialized")
	}
	if s.started {
		return runner.Summary{}, fmt.Errorf("session already ran")
	}
	s.started = true

	s.apiLog.LogInfo("Test session started at " + s.apiLog.Now().Format(time.DateTime))
	s.log.InfoObj("session started", "session_meta", map[string]any{
		"api_url":     s.cfg.APIURL,
		"environment": s.cfg.Environment(),
		"checks":      len(s.checks),
	})

	sum, runErr := s.runner.Run(ctx, s.checks)

	s.apiLog.LogInfo("Test session ended at " + s.apiLog.Now().Format(time.DateTime))
	if runErr != nil {
		s.apiLog.LogError(runErr.Error())
	}

	report := reporters.NewReport(s.cfg.AppName, s.cfg.Environment(), s.cfg.APIURL, sum)
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	delivered, pubErr := s.fanout.Publish(pubCtx, report)

	s.log.InfoObj("session finished", "session_result", map[string]any{
		"run_id":              sum.RunID,
		"status":              report.Status,
		"passed":              sum.Passed,
		"failed":              sum.Failed,
		"reporters_delivered": delivered,
	})

	if pubErr != nil {
		s.log.ErrorObj("report publish failed", "error", pubErr.Error())
		pubErr = fmt.Errorf("publish report: %w", pubErr)
	}
	return sum, errors.Join(runErr, pubErr)
}

// Close releases reporters and closes the session log.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	return errors.Join(s.fanout.Close(), s.apiLog.Close())
}

func sourceName(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
