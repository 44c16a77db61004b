// Package poetrytest serves a PoetryDB look-alike from fixture data for
// tests that must not reach the public instance.
package poetrytest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/samvad-hq/poetrydb-api-tests/internal/fixtures"
	"github.com/samvad-hq/poetrydb-api-tests/pkg/poetry"
)

const exactSuffix = ":abs"

// Server wraps an httptest.Server and counts the requests it handled.
type Server struct {
	*httptest.Server
	exp  *fixtures.Expectations
	hits atomic.Int64
}

// NewServer starts a fake backed by exp. Callers must Close it.
func NewServer(exp *fixtures.Expectations) *Server {
	s := &Server{exp: exp}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// Hits reports how many requests were served.
func (s *Server) Hits() int64 { return s.hits.Load() }

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.hits.Add(1)
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, notFound{Status: http.StatusMethodNotAllowed, Reason: "Method not allowed"})
		return
	}

	resource, arg, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	switch {
	case resource == "author" && arg == "":
		writeJSON(w, http.StatusOK, map[string][]string{"authors": s.exp.Authors})
	case resource == "author":
		s.writePoems(w, func(p poetry.Poem) bool { return matches(p.Author, arg) })
	case resource == "title" && arg == "":
		writeJSON(w, http.StatusOK, map[string][]string{"titles": s.exp.Titles})
	case resource == "title":
		s.writePoems(w, func(p poetry.Poem) bool { return matches(p.Title, arg) })
	case resource == "random":
		s.writeRandom(w, arg)
	case resource == "lines" && arg != "":
		s.writePoems(w, func(p poetry.Poem) bool {
			for _, line := range p.Lines {
				if strings.Contains(line, arg) {
					return true
				}
			}
			return false
		})
	default:
		writeJSON(w, http.StatusNotFound, notFound{Status: http.StatusNotFound, Reason: "Not found"})
	}
}

// matches applies the substring rule, or equality when arg ends in :abs.
func matches(value, arg string) bool {
	if exact, ok := strings.CutSuffix(arg, exactSuffix); ok {
		return value == exact
	}
	return strings.Contains(value, arg)
}

func (s *Server) writePoems(w http.ResponseWriter, keep func(poetry.Poem) bool) {
	var out []poetry.Poem
	for _, p := range s.exp.Poems {
		if keep(p) {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		writeJSON(w, http.StatusNotFound, notFound{Status: http.StatusNotFound, Reason: "Not found"})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// writeRandom is deterministic: it returns the first n fixture poems.
func (s *Server) writeRandom(w http.ResponseWriter, arg string) {
	n := 1
	if arg != "" {
		v, err := strconv.Atoi(arg)
		if err != nil || v <= 0 {
			writeJSON(w, http.StatusNotFound, notFound{Status: http.StatusNotFound, Reason: "Not found"})
			return
		}
		n = v
	}
	n = min(n, len(s.exp.Poems))
	writeJSON(w, http.StatusOK, s.exp.Poems[:n])
}

type notFound struct {
	Status int    `json:"status"`
	Reason string `json:"reason"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
