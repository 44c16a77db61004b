package domain

import (
	"net/http"
	"time"
)

// Exchange is one completed HTTP round trip as seen by the client wrapper.
// It only lives long enough to be formatted into the session log.
type Exchange struct {
	Method          string
	URL             string
	RequestHeaders  http.Header
	RequestBody     []byte
	StatusCode      int
	ResponseHeaders http.Header
	ResponseBody    []byte
	Elapsed         time.Duration
	StartedAt       time.Time
}

// FinishedAt is the wall-clock time the response was fully received.
func (e Exchange) FinishedAt() time.Time {
	return e.StartedAt.Add(e.Elapsed)
}

// Completed reports whether a response was received for the exchange.
func (e Exchange) Completed() bool {
	return e.StatusCode > 0
}
