package httpclient

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const maxSnippetLen = 512

// StatusError reports a non-2xx response from one of the JSON helpers.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Snippet    string
}

func (e *StatusError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, e.Snippet)
}

// IsNotFound reports a 404.
func (e *StatusError) IsNotFound() bool { return e.StatusCode == http.StatusNotFound }

// SummarizeBody produces a short readable excerpt of a response body. HTML
// error pages from proxies and gateways are reduced to their title and
// visible text.
func SummarizeBody(header http.Header, body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if strings.Contains(strings.ToLower(header.Get("Content-Type")), "html") {
		if s := htmlSummary(body); s != "" {
			return truncate(s)
		}
	}
	return readBodySnippet(body)
}

func htmlSummary(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	text := strings.Join(strings.Fields(doc.Find("body").Text()), " ")
	switch {
	case title != "" && text != "" && !strings.HasPrefix(text, title):
		return title + ": " + text
	case text != "":
		return text
	default:
		return title
	}
}

func readBodySnippet(body []byte) string {
	return strings.TrimSpace(truncate(string(body)))
}

// truncate caps s at maxSnippetLen bytes without splitting a rune.
func truncate(s string) string {
	if len(s) <= maxSnippetLen {
		return s
	}
	cut := maxSnippetLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
