package reporters

import (
	"time"

	"github.com/samvad-hq/poetrydb-api-tests/internal/runner"
)

func sampleReport() Report {
	started := time.Date(2025, 3, 4, 9, 30, 0, 0, time.UTC)
	return NewReport("poetrydb-api-tests", "CI", "https://poetrydb.org", runner.Summary{
		RunID:      "run-1",
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
		Results: []runner.Result{
			{Name: "authors/list", Passed: true, Duration: 120 * time.Millisecond},
			{Name: "titles/list", Error: "status 500, want 200"},
		},
		Passed: 1,
		Failed: 1,
	})
}
