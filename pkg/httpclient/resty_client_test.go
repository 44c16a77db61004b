package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/samvad-hq/poetrydb-api-tests/internal/domain"
)

// recordingLogger captures every exchange forwarded by the client.
type recordingLogger struct {
	mu       sync.Mutex
	calls    []domain.Exchange
	failures []domain.Exchange
	failErrs []error
}

func (r *recordingLogger) LogAPICall(_ context.Context, ex domain.Exchange) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, ex)
}

func (r *recordingLogger) LogTransportError(_ context.Context, ex domain.Exchange, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, ex)
	r.failErrs = append(r.failErrs, err)
}

func TestDoMergesDefaultAndCallHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "text/plain" {
			t.Errorf("Accept = %q, want per-call override", got)
		}
		if got := r.Header.Get("X-Default"); got != "keep" {
			t.Errorf("X-Default = %q, want default header", got)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(srv.URL, map[string]string{
		"Accept":    "application/json",
		"X-Default": "keep",
	})

	_, err := client.Get(context.Background(), "/author", &Request{
		Headers: map[string]string{"accept": "text/plain"},
	})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got := client.Headers()["Accept"]; got != "application/json" {
		t.Fatalf("default headers mutated: Accept = %q", got)
	}
}

func TestDoConcatenatesBaseURLAndEscapedPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	endpoint := "/title/" + url.PathEscape("The Moon Maiden's Song")
	if _, err := client.Get(context.Background(), endpoint, nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotPath != "/title/The Moon Maiden's Song" {
		t.Fatalf("server saw path %q", gotPath)
	}
}

func TestDoLogsEveryExchangeOnceRegardlessOfStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"status":404,"reason":"Not found"}`)
			return
		}
		_, _ = io.WriteString(w, `{"authors":[]}`)
	}))
	defer srv.Close()

	rec := &recordingLogger{}
	client := New(srv.URL, nil, WithExchangeLogger(rec))

	ok, err := client.Get(context.Background(), "/author", &Request{Query: url.Values{"q": {"a b"}}})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	missing, err := client.Get(context.Background(), "/missing", nil)
	if err != nil {
		t.Fatalf("non-2xx must not be an error from Get: %v", err)
	}

	if ok.StatusCode() != http.StatusOK || missing.StatusCode() != http.StatusNotFound {
		t.Fatalf("unexpected statuses %d, %d", ok.StatusCode(), missing.StatusCode())
	}
	if len(rec.calls) != 2 || len(rec.failures) != 0 {
		t.Fatalf("expected 2 logged exchanges, got calls=%d failures=%d", len(rec.calls), len(rec.failures))
	}
	first := rec.calls[0]
	if first.Method != http.MethodGet || !strings.HasSuffix(first.URL, "/author?q=a+b") {
		t.Fatalf("unexpected logged request %s %s", first.Method, first.URL)
	}
	if string(first.ResponseBody) != `{"authors":[]}` {
		t.Fatalf("logged body = %q", first.ResponseBody)
	}
	if rec.calls[1].StatusCode != http.StatusNotFound {
		t.Fatalf("second exchange status = %d", rec.calls[1].StatusCode)
	}
}

func TestDoTransportErrorPropagatesAndIsLogged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	rec := &recordingLogger{}
	client := New(base, nil, WithExchangeLogger(rec))

	resp, err := client.Get(context.Background(), "/author", nil)
	if err == nil {
		t.Fatalf("expected transport error")
	}
	if resp != nil {
		t.Fatalf("expected nil response on transport error")
	}
	if len(rec.failures) != 1 || len(rec.calls) != 0 {
		t.Fatalf("expected one transport failure logged, got failures=%d calls=%d", len(rec.failures), len(rec.calls))
	}
	if rec.failures[0].Completed() {
		t.Fatalf("failed exchange must not look completed")
	}
}

func TestDoHonoursCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(srv.URL, nil).Get(ctx, "/author", nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPostSendsFormOrJSON(t *testing.T) {
	type seen struct {
		contentType string
		body        string
	}
	var got []seen
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		got = append(got, seen{contentType: r.Header.Get("Content-Type"), body: string(raw)})
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	client := New(srv.URL, map[string]string{"Content-Type": "application/json"})

	if _, err := client.Post(context.Background(), "/form", &Request{Form: url.Values{"a": {"1"}}}); err != nil {
		t.Fatalf("Post form: %v", err)
	}
	if _, err := client.Patch(context.Background(), "/json", &Request{JSON: map[string]int{"a": 1}}); err != nil {
		t.Fatalf("Patch json: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(got))
	}
	if got[0].contentType != contentTypeForm || got[0].body != "a=1" {
		t.Fatalf("form request = %+v", got[0])
	}
	if got[1].contentType != contentTypeJSON || got[1].body != `{"a":1}` {
		t.Fatalf("json request = %+v", got[1])
	}
}

func TestDoRejectsConflictingBodies(t *testing.T) {
	client := New("http://127.0.0.1:0", nil)
	_, err := client.Put(context.Background(), "/x", &Request{
		Form: url.Values{"a": {"1"}},
		JSON: map[string]int{"a": 1},
	})
	if !errors.Is(err, ErrConflictingBody) {
		t.Fatalf("expected ErrConflictingBody, got %v", err)
	}
}

func TestGetJSONRaisesOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, `<html><head><title>502 Bad Gateway</title></head><body>
<h1>Bad Gateway</h1>
<p>upstream unavailable</p>
</body></html>`)
	}))
	defer srv.Close()

	var out map[string]any
	resp, err := New(srv.URL, nil).GetJSON(context.Background(), "/author", nil, &out)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("StatusCode = %d", statusErr.StatusCode)
	}
	if statusErr.Snippet != "502 Bad Gateway: Bad Gateway upstream unavailable" {
		t.Fatalf("Snippet = %q", statusErr.Snippet)
	}
	if resp == nil || resp.StatusCode() != http.StatusBadGateway {
		t.Fatalf("expected response alongside status error")
	}
	if out != nil {
		t.Fatalf("out should stay untouched on error")
	}
}

func TestPostJSONDecodesSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", contentTypeJSON)
		_, _ = w.Write(raw)
	}))
	defer srv.Close()

	var out struct {
		Title string `json:"title"`
	}
	if _, err := New(srv.URL, nil).PostJSON(context.Background(), "/echo", map[string]string{"title": "Ozymandias"}, &out); err != nil {
		t.Fatalf("PostJSON: %v", err)
	}
	if out.Title != "Ozymandias" {
		t.Fatalf("decoded title = %q", out.Title)
	}
}

func TestEmptyBaseURLUsesEndpointVerbatim(t *testing.T) {
	client := New("", nil)
	if got := client.url("https://poetrydb.org/author"); got != "https://poetrydb.org/author" {
		t.Fatalf("url = %q", got)
	}
}

func TestSnippetTruncationKeepsRunesWhole(t *testing.T) {
	body := strings.Repeat("a", maxSnippetLen-1) + "é…"

	got := truncate(body)
	if len(got) > maxSnippetLen || !utf8.ValidString(got) {
		t.Fatalf("truncate returned %d bytes, valid=%v", len(got), utf8.ValidString(got))
	}
	if got != strings.Repeat("a", maxSnippetLen-1) {
		t.Fatalf("truncate should drop the split rune, got suffix %q", got[len(got)-3:])
	}

	snip := readBodySnippet([]byte(body))
	if len(snip) > maxSnippetLen || !utf8.ValidString(snip) {
		t.Fatalf("readBodySnippet returned %d bytes, valid=%v", len(snip), utf8.ValidString(snip))
	}

	if short := truncate("é…"); short != "é…" {
		t.Fatalf("short input should pass through, got %q", short)
	}
}
