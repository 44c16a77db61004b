// Package fixtures loads the expected PoetryDB content the acceptance
// checks compare against. A default document is embedded; a YAML or JSON
// file can replace it.
package fixtures

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/samvad-hq/poetrydb-api-tests/pkg/poetry"
)

//go:embed data/poetrydb.yaml
var defaultDocument []byte

// Expectations is the known content of the instance under test.
type Expectations struct {
	Authors []string      `json:"authors" yaml:"authors"`
	Titles  []string      `json:"titles" yaml:"titles"`
	Poems   []poetry.Poem `json:"poems" yaml:"poems"`
}

// Default returns the embedded expectations.
func Default() (*Expectations, error) {
	return Parse(defaultDocument, ".yaml")
}

// Load reads expectations from path. The extension selects the decoder.
func Load(path string) (*Expectations, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("expectations file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open expectations file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read expectations file: %w", err)
	}

	return Parse(raw, filepath.Ext(path))
}

// LoadOrDefault loads path, or the embedded document when path is blank.
func LoadOrDefault(path string) (*Expectations, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	return Load(path)
}

// Parse decodes data. An empty ext tries YAML then JSON.
func Parse(data []byte, ext string) (*Expectations, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	var errs []error
	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var exp Expectations
		if err := d.fn(data, &exp); err != nil {
			errs = append(errs, fmt.Errorf("decode %s expectations: %w", d.name, err))
			continue
		}
		if err := exp.validate(); err != nil {
			return nil, err
		}
		return &exp, nil
	}

	if len(errs) == 0 {
		return nil, fmt.Errorf("expectations format %q not recognized (expected YAML or JSON)", ext)
	}
	return nil, errors.Join(errs...)
}

func (e *Expectations) validate() error {
	if len(e.Authors) == 0 {
		return errors.New("expectations contain no authors")
	}
	if len(e.Titles) == 0 {
		return errors.New("expectations contain no titles")
	}
	seen := make(map[string]struct{}, len(e.Poems))
	for i, p := range e.Poems {
		if strings.TrimSpace(p.Title) == "" {
			return fmt.Errorf("poem[%d]: title is required", i)
		}
		if strings.TrimSpace(p.Author) == "" {
			return fmt.Errorf("poem[%d]: author is required", i)
		}
		if p.LineCount == "" {
			return fmt.Errorf("poem[%d]: linecount is required", i)
		}
		if _, dup := seen[p.Title]; dup {
			return fmt.Errorf("duplicate poem title %q", p.Title)
		}
		seen[p.Title] = struct{}{}
	}
	return nil
}

// PoemsByAuthor returns the poems by author in document order.
func (e *Expectations) PoemsByAuthor(author string) []poetry.Poem {
	var out []poetry.Poem
	for _, p := range e.Poems {
		if p.Author == author {
			out = append(out, p)
		}
	}
	return out
}

// PoemByTitle finds a poem by its full title.
func (e *Expectations) PoemByTitle(title string) (poetry.Poem, bool) {
	for _, p := range e.Poems {
		if p.Title == title {
			return p, true
		}
	}
	return poetry.Poem{}, false
}
