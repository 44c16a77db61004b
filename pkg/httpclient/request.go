package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// ErrConflictingBody is returned when a Request sets more than one body kind.
var ErrConflictingBody = errors.New("request body must be one of form, json or raw")

// Request carries the per-call parts of an exchange. The zero value is an
// empty request; Form, JSON and Body are mutually exclusive.
type Request struct {
	Query   url.Values
	Headers map[string]string
	Form    url.Values
	JSON    any
	Body    []byte
}

// encodeBody returns the wire body and the content type it implies.
func (r *Request) encodeBody() ([]byte, string, error) {
	if r == nil {
		return nil, "", nil
	}

	kinds := 0
	if r.Form != nil {
		kinds++
	}
	if r.JSON != nil {
		kinds++
	}
	if r.Body != nil {
		kinds++
	}
	if kinds > 1 {
		return nil, "", ErrConflictingBody
	}

	switch {
	case r.Form != nil:
		return []byte(r.Form.Encode()), contentTypeForm, nil
	case r.JSON != nil:
		raw, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, "", fmt.Errorf("marshal json body: %w", err)
		}
		return raw, contentTypeJSON, nil
	case r.Body != nil:
		return r.Body, "", nil
	default:
		return nil, "", nil
	}
}

// mergeHeaders layers each map over the previous one. Keys are canonicalised
// so "accept" overrides "Accept".
func mergeHeaders(layers ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, layer := range layers {
		for k, v := range layer {
			key := http.CanonicalHeaderKey(strings.TrimSpace(k))
			if key == "" {
				continue
			}
			out[key] = v
		}
	}
	return out
}

func toHTTPHeader(m map[string]string) http.Header {
	h := make(http.Header, len(m))
	for k, v := range m {
		h.Set(k, v)
	}
	return h
}
