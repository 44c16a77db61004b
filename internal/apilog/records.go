package apilog

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

const (
	logSeparator = "\n-----\n"
	dateLayout   = "2006-01-02 15:04:05"
	emptyBody    = "<empty>"
)

// RequestRecord is the request half of a logged exchange.
type RequestRecord struct {
	Timestamp    time.Time
	TestName     string
	FunctionName string
	Method       string
	URL          string
	Headers      http.Header
	Payload      []byte
}

// Format renders the record as a session log block.
func (r RequestRecord) Format() string {
	var b strings.Builder
	b.WriteString(logSeparator)
	fmt.Fprintf(&b, "Date: %s\n", r.Timestamp.Format(dateLayout))
	fmt.Fprintf(&b, "Test: %s\n", orNotAvailable(r.TestName))
	fmt.Fprintf(&b, "Function: %s\n", orNotAvailable(r.FunctionName))
	fmt.Fprintf(&b, "Request method: %s\n", r.Method)
	fmt.Fprintf(&b, "Request URL: %s\n", r.URL)
	fmt.Fprintf(&b, "Request headers: %s\n", formatHeaders(r.Headers))
	fmt.Fprintf(&b, "Request data: %s\n", formatBody(r.Payload))
	return b.String()
}

// ResponseRecord is the response half of a logged exchange.
type ResponseRecord struct {
	Timestamp  time.Time
	StatusCode int
	Elapsed    time.Duration
	Body       []byte
	Headers    http.Header
}

// Format renders the record as a session log block.
func (r ResponseRecord) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Date: %s\n", r.Timestamp.Format(dateLayout))
	fmt.Fprintf(&b, "Response code: %d\n", r.StatusCode)
	fmt.Fprintf(&b, "Response time: %.3fs\n", r.Elapsed.Seconds())
	fmt.Fprintf(&b, "Response text: %s\n", formatBody(r.Body))
	fmt.Fprintf(&b, "Response headers: %s\n", formatHeaders(r.Headers))
	b.WriteString(logSeparator)
	return b.String()
}

// ErrorRecord replaces the response half when the transport failed.
type ErrorRecord struct {
	Timestamp time.Time
	Err       error
}

// Format renders the record as a session log block.
func (r ErrorRecord) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Date: %s\n", r.Timestamp.Format(dateLayout))
	msg := "unknown error"
	if r.Err != nil {
		msg = r.Err.Error()
	}
	fmt.Fprintf(&b, "Transport error: %s\n", msg)
	b.WriteString(logSeparator)
	return b.String()
}

// formatHeaders prints headers in key order so identical requests log identically.
func formatHeaders(h http.Header) string {
	if len(h) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(h[k], ", "))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatBody(body []byte) string {
	if len(body) == 0 {
		return emptyBody
	}
	return string(body)
}
