package runner

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/samvad-hq/poetrydb-api-tests/internal/fixtures"
	"github.com/samvad-hq/poetrydb-api-tests/pkg/httpclient"
	"github.com/samvad-hq/poetrydb-api-tests/pkg/poetry"
)

const (
	smokeAuthor       = "Emily Dickinson"
	smokeTitle        = "The Moon Maiden's Song"
	smokePartialTitle = "The Moon Maid"
	smokeLineText     = "Acre unto me"
)

// SmokeChecks builds the acceptance cases for an instance serving exp.
// Every check also requires a 200 status and a response faster than maxLatency.
func SmokeChecks(svc poetry.Services, exp *fixtures.Expectations, maxLatency time.Duration) []Check {
	v := verifier{maxLatency: maxLatency}

	return []Check{
		NewCheck("authors/list", func(ctx context.Context) error {
			got, resp, err := svc.Authors.GetAllAuthors(ctx)
			if err != nil {
				return err
			}
			return v.verify(resp, diff("authors", exp.Authors, got.Authors))
		}),
		NewCheck("authors/poems-by-author", func(ctx context.Context) error {
			got, resp, err := svc.Authors.GetPoemsByAuthor(ctx, smokeAuthor)
			if err != nil {
				return err
			}
			return v.verify(resp, diff("poems by "+smokeAuthor, exp.PoemsByAuthor(smokeAuthor), got))
		}),
		NewCheck("titles/list", func(ctx context.Context) error {
			got, resp, err := svc.Titles.GetAllTitles(ctx)
			if err != nil {
				return err
			}
			return v.verify(resp, diff("titles", exp.Titles, got.Titles))
		}),
		titleCheck("titles/poem-by-title/full", svc, exp, smokeTitle, v),
		titleCheck("titles/poem-by-title/partial", svc, exp, smokePartialTitle, v),
		NewCheck("random/poem-shape", func(ctx context.Context) error {
			got, resp, err := svc.Random.GetRandomPoem(ctx)
			if err != nil {
				return err
			}
			if len(got) != 1 {
				return v.verify(resp, fmt.Errorf("expected one random poem, got %d", len(got)))
			}
			want, ok := exp.PoemByTitle(got[0].Title)
			if !ok {
				return v.verify(resp, fmt.Errorf("random poem %q is not a known poem", got[0].Title))
			}
			return v.verify(resp, diff("random poem", want, got[0]))
		}),
		NewCheck("lines/search", func(ctx context.Context) error {
			got, resp, err := svc.Lines.GetPoemByTextInLines(ctx, smokeLineText)
			if err != nil {
				return err
			}
			return v.verify(resp, diff("poems containing "+smokeLineText, poemsWithLine(exp, smokeLineText), got))
		}),
	}
}

func titleCheck(name string, svc poetry.Services, exp *fixtures.Expectations, title string, v verifier) Check {
	return NewCheck(name, func(ctx context.Context) error {
		want, ok := exp.PoemByTitle(smokeTitle)
		if !ok {
			return fmt.Errorf("expectations do not contain %q", smokeTitle)
		}
		got, resp, err := svc.Titles.GetPoemByTitle(ctx, title)
		if err != nil {
			return err
		}
		if len(got) != 1 {
			return v.verify(resp, fmt.Errorf("expected one poem for %q, got %d", title, len(got)))
		}
		return v.verify(resp, diff("poem "+title, want, got[0]))
	})
}

type verifier struct {
	maxLatency time.Duration
}

// verify joins the transport expectations with the content error, if any.
func (v verifier) verify(resp *httpclient.Response, content error) error {
	var errs []error
	if resp.StatusCode() != http.StatusOK {
		errs = append(errs, fmt.Errorf("status %d, want %d", resp.StatusCode(), http.StatusOK))
	}
	if content != nil {
		errs = append(errs, content)
	}
	if v.maxLatency > 0 && resp.Elapsed() >= v.maxLatency {
		errs = append(errs, fmt.Errorf("response took %s, limit %s", resp.Elapsed(), v.maxLatency))
	}
	return errors.Join(errs...)
}

func diff(what string, want, got any) error {
	if d := cmp.Diff(want, got, cmpopts.EquateEmpty()); d != "" {
		return fmt.Errorf("%s mismatch (-want +got):\n%s", what, d)
	}
	return nil
}

func poemsWithLine(exp *fixtures.Expectations, text string) []poetry.Poem {
	var out []poetry.Poem
	for _, p := range exp.Poems {
		for _, line := range p.Lines {
			if strings.Contains(line, text) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
