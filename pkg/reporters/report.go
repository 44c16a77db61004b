package reporters

import (
	"time"

	"github.com/samvad-hq/poetrydb-api-tests/internal/runner"
)

const (
	StatusPassed = "passed"
	StatusFailed = "failed"
)

// Report is the payload published once per run.
type Report struct {
	App         string `json:"app"`
	Environment string `json:"environment"`
	BaseURL     string `json:"base_url"`
	Status      string `json:"status"`
	runner.Summary
	PublishedAt time.Time `json:"published_at"`
}

// NewReport wraps a run summary with the context it ran in.
func NewReport(app, env, baseURL string, sum runner.Summary) Report {
	status := StatusFailed
	if sum.OK() {
		status = StatusPassed
	}
	return Report{
		App:         app,
		Environment: env,
		BaseURL:     baseURL,
		Status:      status,
		Summary:     sum,
		PublishedAt: time.Now().UTC(),
	}
}

// attributes are attached to queue and topic messages for filtering.
func (r Report) attributes() map[string]string {
	return map[string]string{
		"run_id": r.RunID,
		"status": r.Status,
	}
}
