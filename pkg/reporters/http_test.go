package reporters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTTPReporterSuccess(t *testing.T) {
	var got Report
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if h := r.Header.Get("X-Test"); h != "1" {
			t.Errorf("missing header, got %s", h)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	rep, err := newHTTPReporter(context.Background(), ReporterConfig{
		ID:   "hook",
		Type: TypeHTTP,
		HTTP: &HTTPConfig{
			URL:            srv.URL,
			Method:         http.MethodPut,
			Headers:        map[string]string{"X-Test": "1"},
			TimeoutSeconds: 2,
		},
	}, nil)
	if err != nil {
		t.Fatalf("newHTTPReporter: %v", err)
	}

	if err := rep.Publish(context.Background(), sampleReport()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if got.RunID != "run-1" || len(got.Results) != 2 || got.Status != StatusFailed {
		t.Fatalf("server received unexpected report: %+v", got)
	}
}

func TestHTTPReporterErrorOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	rep, err := newHTTPReporter(context.Background(), ReporterConfig{
		ID:   "hook",
		Type: TypeHTTP,
		HTTP: &HTTPConfig{URL: srv.URL, TimeoutSeconds: 1},
	}, nil)
	if err != nil {
		t.Fatalf("newHTTPReporter: %v", err)
	}

	err = rep.Publish(context.Background(), sampleReport())
	if err == nil {
		t.Fatalf("expected error on non-2xx response")
	}
	if !strings.Contains(err.Error(), "status 400") || !strings.Contains(err.Error(), "nope") {
		t.Fatalf("error should carry status and body summary: %v", err)
	}
}
