// Package poetry holds the PoetryDB resource services: endpoint builders,
// typed response shapes and one service per resource area. Every service
// call returns the parsed shape together with the raw response so tests can
// assert on both the data and the transport metadata.
package poetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/samvad-hq/poetrydb-api-tests/internal/apilog"
	"github.com/samvad-hq/poetrydb-api-tests/pkg/httpclient"
)

// DefaultBaseURL is the public PoetryDB instance.
const DefaultBaseURL = "https://poetrydb.org"

const defaultTimeout = 30 * time.Second

// DefaultHeaders returns the headers every harness client sends.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
}

var defaultClient = sync.OnceValue(func() *httpclient.Client {
	return httpclient.New(DefaultBaseURL, DefaultHeaders(), httpclient.WithTimeout(defaultTimeout))
})

// DefaultClient returns a shared client for DefaultBaseURL. It does not log
// exchanges; build a client with httpclient.WithExchangeLogger for that.
func DefaultClient() *httpclient.Client { return defaultClient() }

func ensureRequester(client httpclient.Requester) httpclient.Requester {
	if client == nil {
		return DefaultClient()
	}
	return client
}

// Services bundles one instance of each resource service over a shared client.
type Services struct {
	Authors *AuthorService
	Titles  *TitleService
	Random  *RandomService
	Lines   *LinesService
}

// NewServices wires all services to client (DefaultClient when nil).
func NewServices(client httpclient.Requester) Services {
	client = ensureRequester(client)
	return Services{
		Authors: NewAuthorService(client),
		Titles:  NewTitleService(client),
		Random:  NewRandomService(client),
		Lines:   NewLinesService(client),
	}
}

// fetch issues a GET tagged with the calling operation and parses the body.
// Parsing happens regardless of status; a non-2xx body that does not fit
// the shape surfaces as a ValidationError with the response still returned.
func fetch[T any](ctx context.Context, client httpclient.Requester, caller, endpoint string, parse func([]byte) (T, error)) (T, *httpclient.Response, error) {
	var zero T
	ctx = apilog.WithCaller(ctx, caller)

	resp, err := client.Get(ctx, endpoint, nil)
	if err != nil {
		return zero, nil, err
	}

	v, err := parse(resp.Body())
	if err != nil {
		if miss := missError(resp); miss != nil {
			err = fmt.Errorf("%w: %w", err, miss)
		}
		return zero, resp, err
	}
	return v, resp, nil
}

// statusObject is what PoetryDB sends instead of a result on a miss.
type statusObject struct {
	Status *int   `json:"status"`
	Reason string `json:"reason"`
}

// missError turns a status object body into a StatusError, or returns nil
// when the body is something else.
func missError(resp *httpclient.Response) *httpclient.StatusError {
	var obj statusObject
	if err := json.Unmarshal(resp.Body(), &obj); err != nil || obj.Status == nil {
		return nil
	}
	return &httpclient.StatusError{
		Method:     resp.Method(),
		URL:        resp.URL(),
		StatusCode: *obj.Status,
		Snippet:    obj.Reason,
	}
}

// IsNotFound reports whether err came from a PoetryDB miss.
func IsNotFound(err error) bool {
	var se *httpclient.StatusError
	return errors.As(err, &se) && se.IsNotFound()
}
