// Package runner executes acceptance checks against a PoetryDB instance and
// summarises the outcome of a run.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/samvad-hq/poetrydb-api-tests/internal/apilog"
	"github.com/samvad-hq/poetrydb-api-tests/internal/logger"
)

// Check is a single named acceptance case.
type Check interface {
	Name() string
	Run(ctx context.Context) error
}

type funcCheck struct {
	name string
	fn   func(ctx context.Context) error
}

func (c funcCheck) Name() string                  { return c.name }
func (c funcCheck) Run(ctx context.Context) error { return c.fn(ctx) }

// NewCheck adapts fn into a Check.
func NewCheck(name string, fn func(ctx context.Context) error) Check {
	return funcCheck{name: name, fn: fn}
}

// Result is the outcome of one check.
type Result struct {
	Name     string        `json:"name"`
	Passed   bool          `json:"passed"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Summary describes a complete run.
type Summary struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Results    []Result  `json:"results"`
	Passed     int       `json:"passed"`
	Failed     int       `json:"failed"`
}

// OK reports whether every check passed.
func (s Summary) OK() bool { return s.Failed == 0 && len(s.Results) > 0 }

// Service runs checks one after another.
type Service struct {
	now func() time.Time
}

func NewService() *Service {
	return &Service{now: time.Now}
}

// Run executes checks in order. Each check sees its name as the test name
// in ctx. Failures are collected rather than stopping the run; cancellation
// stops it and marks the remaining checks failed.
func (s *Service) Run(ctx context.Context, checks []Check) (Summary, error) {
	if s == nil {
		return Summary{}, fmt.Errorf("runner service is not initialized")
	}
	if len(checks) == 0 {
		return Summary{}, fmt.Errorf("no checks configured")
	}

	sum := Summary{
		RunID:     uuid.NewString(),
		StartedAt: s.now(),
		Results:   make([]Result, 0, len(checks)),
	}

	var errs []error
	for _, c := range checks {
		res := s.runCheck(ctx, c)
		sum.Results = append(sum.Results, res)
		if res.Passed {
			sum.Passed++
			logger.InfoObj("check passed", "check_result", map[string]any{
				"run_id":      sum.RunID,
				"check":       res.Name,
				"duration_ms": res.Duration.Milliseconds(),
			})
			continue
		}
		sum.Failed++
		errs = append(errs, fmt.Errorf("%s: %s", res.Name, res.Error))
		logger.ErrorObj("check failed", "check_error", map[string]any{
			"run_id": sum.RunID,
			"check":  res.Name,
			"error":  res.Error,
		})
	}

	sum.FinishedAt = s.now()
	if len(errs) > 0 {
		return sum, errors.Join(errs...)
	}
	return sum, nil
}

func (s *Service) runCheck(ctx context.Context, c Check) Result {
	res := Result{Name: c.Name()}
	if err := ctx.Err(); err != nil {
		res.Error = fmt.Sprintf("not run: %v", err)
		return res
	}

	started := s.now()
	err := safeRun(apilog.WithTest(ctx, c.Name()), c)
	res.Duration = s.now().Sub(started)

	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Passed = true
	return res
}

func safeRun(ctx context.Context, c Check) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return c.Run(ctx)
}
