package fixtures

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDefaultExpectations(t *testing.T) {
	exp, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	wantAuthors := []string{"Bob Willett", "Emily Dickinson", "Ernest Dowson"}
	if !reflect.DeepEqual(exp.Authors, wantAuthors) {
		t.Fatalf("authors = %v, want %v", exp.Authors, wantAuthors)
	}
	if len(exp.Titles) != 4 {
		t.Fatalf("expected 4 titles, got %d", len(exp.Titles))
	}

	song, ok := exp.PoemByTitle("The Moon Maiden's Song")
	if !ok {
		t.Fatalf("expected Moon Maiden's Song in defaults")
	}
	if song.Author != "Ernest Dowson" || song.LineCount != "16" {
		t.Fatalf("unexpected poem metadata: %+v", song)
	}
	if len(song.Lines) != 19 {
		t.Fatalf("expected 19 line entries, got %d", len(song.Lines))
	}
	if song.Lines[1] != "   Over this sleeper's brain," {
		t.Fatalf("leading whitespace not preserved: %q", song.Lines[1])
	}

	dickinson := exp.PoemsByAuthor("Emily Dickinson")
	if len(dickinson) != 2 {
		t.Fatalf("expected 2 Dickinson poems, got %d", len(dickinson))
	}
	if dickinson[1].Lines[1] != `"Give of thine an Acre unto me."` {
		t.Fatalf("quoted line mangled: %q", dickinson[1].Lines[1])
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exp.json")
	doc := `{"authors":["A"],"titles":["T"],"poems":[{"title":"T","author":"A","lines":["x"],"linecount":"1"}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	exp, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := exp.PoemByTitle("T"); !ok {
		t.Fatalf("expected poem T, got %+v", exp.Poems)
	}
}

func TestLoadRejectsInvalidDocuments(t *testing.T) {
	cases := map[string]string{
		"no-authors.yaml": "titles: [T]\n",
		"no-title.yaml":   "authors: [A]\ntitles: [T]\npoems:\n  - author: A\n    linecount: \"1\"\n",
		"dup.yaml":        "authors: [A]\ntitles: [T]\npoems:\n  - {title: T, author: A, linecount: \"1\"}\n  - {title: T, author: A, linecount: \"1\"}\n",
		"format.toml":     "authors = [\"A\"]\n",
	}
	dir := t.TempDir()
	for name, body := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadOrDefault(t *testing.T) {
	exp, err := LoadOrDefault("  ")
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if len(exp.Poems) != 3 {
		t.Fatalf("expected embedded poems, got %d", len(exp.Poems))
	}

	_, err = LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "open expectations file") {
		t.Fatalf("expected open error, got %v", err)
	}
}
