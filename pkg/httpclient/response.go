package httpclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Response is a completed exchange as returned to callers. Status codes are
// not interpreted; use IsSuccess or RaiseForStatus when that is wanted.
type Response struct {
	method  string
	url     string
	status  int
	header  http.Header
	body    []byte
	elapsed time.Duration
}

// NewResponse builds a Response, mainly for fakes implementing Requester.
func NewResponse(method, url string, status int, header http.Header, body []byte, elapsed time.Duration) *Response {
	if header == nil {
		header = http.Header{}
	}
	return &Response{
		method:  method,
		url:     url,
		status:  status,
		header:  header,
		body:    body,
		elapsed: elapsed,
	}
}

func (r *Response) Method() string         { return r.method }
func (r *Response) URL() string            { return r.url }
func (r *Response) StatusCode() int        { return r.status }
func (r *Response) Header() http.Header    { return r.header }
func (r *Response) Body() []byte           { return r.body }
func (r *Response) String() string         { return string(r.body) }
func (r *Response) Elapsed() time.Duration { return r.elapsed }

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r.status >= 200 && r.status < 300
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.body, v); err != nil {
		return fmt.Errorf("decode %s %s response: %w", r.method, r.url, err)
	}
	return nil
}

// RaiseForStatus returns a *StatusError for non-2xx responses and nil otherwise.
func (r *Response) RaiseForStatus() error {
	if r.IsSuccess() {
		return nil
	}
	return &StatusError{
		Method:     r.method,
		URL:        r.url,
		StatusCode: r.status,
		Snippet:    SummarizeBody(r.header, r.body),
	}
}
