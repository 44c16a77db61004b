package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/samvad-hq/poetrydb-api-tests/internal/domain"
)

// Client issues requests against a fixed base URL with default headers and
// forwards every exchange to an ExchangeLogger. Configuration is immutable
// after New; a Client may be shared by all services of a run.
type Client struct {
	baseURL string
	headers map[string]string
	client  *resty.Client
	log     ExchangeLogger
	now     func() time.Time
}

// Option customises a Client.
type Option func(*Client)

// WithExchangeLogger routes exchanges to log.
func WithExchangeLogger(log ExchangeLogger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithTimeout sets the transport timeout. Zero keeps the resty default.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.client.SetTimeout(timeout)
		}
	}
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		if rt != nil {
			c.client.SetTransport(rt)
		}
	}
}

// WithRestyClient uses a preconfigured resty client.
func WithRestyClient(rc *resty.Client) Option {
	return func(c *Client) {
		if rc != nil {
			c.client = rc
		}
	}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(timeout time.Duration) *resty.Client {
	return newRestyBaseClient(timeout)
}

// newRestyBaseClient creates a new resty.Client with the specified timeout.
func newRestyBaseClient(timeout time.Duration) *resty.Client {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return c
}

// New builds a Client. headers may be nil; the map is copied.
func New(baseURL string, headers map[string]string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		headers: mergeHeaders(headers),
		client:  newRestyBaseClient(0),
		log:     nopExchangeLogger{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Headers returns a copy of the default headers.
func (c *Client) Headers() map[string]string { return mergeHeaders(c.headers) }

func (c *Client) Get(ctx context.Context, endpoint string, req *Request) (*Response, error) {
	return c.Do(ctx, http.MethodGet, endpoint, req)
}

func (c *Client) Post(ctx context.Context, endpoint string, req *Request) (*Response, error) {
	return c.Do(ctx, http.MethodPost, endpoint, req)
}

func (c *Client) Put(ctx context.Context, endpoint string, req *Request) (*Response, error) {
	return c.Do(ctx, http.MethodPut, endpoint, req)
}

func (c *Client) Patch(ctx context.Context, endpoint string, req *Request) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, endpoint, req)
}

func (c *Client) Delete(ctx context.Context, endpoint string, req *Request) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, endpoint, req)
}

func (c *Client) Head(ctx context.Context, endpoint string, req *Request) (*Response, error) {
	return c.Do(ctx, http.MethodHead, endpoint, req)
}

// Do sends one request to baseURL+endpoint. The status code is not
// inspected: 4xx and 5xx come back as a Response with a nil error. Only
// transport failures (DNS, refused connection, timeout, cancellation) are
// returned as errors. Both outcomes are logged before Do returns.
func (c *Client) Do(ctx context.Context, method, endpoint string, req *Request) (*Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		req = &Request{}
	}

	body, contentType, err := req.encodeBody()
	if err != nil {
		return nil, err
	}

	var implied map[string]string
	if contentType != "" {
		implied = map[string]string{"Content-Type": contentType}
	}
	headers := mergeHeaders(c.headers, implied, req.Headers)
	target := c.url(endpoint)

	r := c.client.R().
		SetContext(ctx).
		SetHeaders(headers)
	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}
	if body != nil {
		r.SetBody(body)
	}

	started := c.now()
	resp, err := r.Execute(method, target)

	ex := domain.Exchange{
		Method:         method,
		URL:            target,
		RequestHeaders: toHTTPHeader(headers),
		RequestBody:    body,
		StartedAt:      started,
	}
	if resp != nil && resp.Request != nil && resp.Request.RawRequest != nil {
		ex.URL = resp.Request.RawRequest.URL.String()
		ex.RequestHeaders = resp.Request.RawRequest.Header.Clone()
	} else if len(req.Query) > 0 {
		ex.URL = target + "?" + req.Query.Encode()
	}

	if err != nil {
		ex.Elapsed = c.now().Sub(started)
		c.log.LogTransportError(ctx, ex, err)
		return nil, fmt.Errorf("%s %s: %w", method, target, err)
	}

	ex.StatusCode = resp.StatusCode()
	ex.ResponseHeaders = resp.Header()
	ex.ResponseBody = resp.Body()
	ex.Elapsed = resp.Time()
	c.log.LogAPICall(ctx, ex)

	return NewResponse(method, ex.URL, ex.StatusCode, ex.ResponseHeaders, ex.ResponseBody, ex.Elapsed), nil
}

// GetJSON sends a GET and decodes the JSON body into out. Unlike Get, a
// non-2xx status is an error (*StatusError) and out is left untouched.
func (c *Client) GetJSON(ctx context.Context, endpoint string, req *Request, out any) (*Response, error) {
	resp, err := c.Get(ctx, endpoint, req)
	if err != nil {
		return nil, err
	}
	return resp, decodeSuccess(resp, out)
}

// PostJSON sends payload as a JSON POST and decodes the JSON body into out.
// A non-2xx status is returned as *StatusError.
func (c *Client) PostJSON(ctx context.Context, endpoint string, payload any, out any) (*Response, error) {
	resp, err := c.Post(ctx, endpoint, &Request{JSON: payload})
	if err != nil {
		return nil, err
	}
	return resp, decodeSuccess(resp, out)
}

func decodeSuccess(resp *Response, out any) error {
	if err := resp.RaiseForStatus(); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.Decode(out)
}

// url concatenates base URL and endpoint without normalisation.
func (c *Client) url(endpoint string) string {
	if c.baseURL == "" {
		return endpoint
	}
	return c.baseURL + endpoint
}
