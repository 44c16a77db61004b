package poetry

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Poem is a single PoetryDB record. LineCount is string-typed on the wire
// and kept that way.
type Poem struct {
	Title     string   `json:"title" yaml:"title"`
	Author    string   `json:"author" yaml:"author"`
	Lines     []string `json:"lines" yaml:"lines"`
	LineCount string   `json:"linecount" yaml:"linecount"`
}

// AuthorsResponse is the payload of the author list endpoint.
type AuthorsResponse struct {
	Authors []string `json:"authors"`
}

// TitlesResponse is the payload of the title list endpoint.
type TitlesResponse struct {
	Titles []string `json:"titles"`
}

// ValidationError reports a payload that does not match the expected shape.
type ValidationError struct {
	Shape string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s payload: %v", e.Shape, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// poemWire uses pointers so absent fields can be told apart from empty ones.
type poemWire struct {
	Title     *string    `json:"title"`
	Author    *string    `json:"author"`
	Lines     *[]*string `json:"lines"`
	LineCount *string    `json:"linecount"`
}

// ParsePoem validates a single poem object.
func ParsePoem(data []byte) (Poem, error) {
	var w poemWire
	if err := json.Unmarshal(data, &w); err != nil {
		return Poem{}, &ValidationError{Shape: "poem", Err: err}
	}

	var missing []error
	if w.Title == nil {
		missing = append(missing, errors.New("title is required"))
	}
	if w.Author == nil {
		missing = append(missing, errors.New("author is required"))
	}
	if w.Lines == nil {
		missing = append(missing, errors.New("lines is required"))
	}
	if w.LineCount == nil {
		missing = append(missing, errors.New("linecount is required"))
	}
	if len(missing) > 0 {
		return Poem{}, &ValidationError{Shape: "poem", Err: errors.Join(missing...)}
	}

	lines, err := stringList("lines", w.Lines)
	if err != nil {
		return Poem{}, &ValidationError{Shape: "poem", Err: err}
	}

	return Poem{
		Title:     *w.Title,
		Author:    *w.Author,
		Lines:     lines,
		LineCount: *w.LineCount,
	}, nil
}

// ParsePoems validates a JSON array of poems. PoetryDB answers misses with
// a status object instead of an array, which fails here.
func ParsePoems(data []byte) ([]Poem, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &ValidationError{Shape: "poem list", Err: err}
	}
	if items == nil {
		return nil, &ValidationError{Shape: "poem list", Err: errors.New("expected array, got null")}
	}

	poems := make([]Poem, 0, len(items))
	for i, item := range items {
		p, err := ParsePoem(item)
		if err != nil {
			return nil, &ValidationError{Shape: "poem list", Err: fmt.Errorf("item %d: %w", i, err)}
		}
		poems = append(poems, p)
	}
	return poems, nil
}

// ParseAuthors validates the author list payload.
func ParseAuthors(data []byte) (AuthorsResponse, error) {
	var w struct {
		Authors *[]*string `json:"authors"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return AuthorsResponse{}, &ValidationError{Shape: "authors", Err: err}
	}
	authors, err := stringList("authors", w.Authors)
	if err != nil {
		return AuthorsResponse{}, &ValidationError{Shape: "authors", Err: err}
	}
	return AuthorsResponse{Authors: authors}, nil
}

// ParseTitles validates the title list payload.
func ParseTitles(data []byte) (TitlesResponse, error) {
	var w struct {
		Titles *[]*string `json:"titles"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return TitlesResponse{}, &ValidationError{Shape: "titles", Err: err}
	}
	titles, err := stringList("titles", w.Titles)
	if err != nil {
		return TitlesResponse{}, &ValidationError{Shape: "titles", Err: err}
	}
	return TitlesResponse{Titles: titles}, nil
}

// stringList dereferences a required list of strings, rejecting null
// elements instead of turning them into empty strings.
func stringList(field string, raw *[]*string) ([]string, error) {
	if raw == nil {
		return nil, fmt.Errorf("%s is required", field)
	}
	out := make([]string, len(*raw))
	for i, v := range *raw {
		if v == nil {
			return nil, fmt.Errorf("%s[%d] is null", field, i)
		}
		out[i] = *v
	}
	return out, nil
}
