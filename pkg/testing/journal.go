package testing

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Journal is an ordered record of notifications raised by one collection.
type Journal struct {
	Name    string  `json:"name,omitempty" yaml:"name,omitempty"`
	Source  string  `json:"source,omitempty" yaml:"source,omitempty"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Entry is one delivered notification.
//
// Collection entries carry Action, OldIndex/NewIndex and the affected items.
// Property entries carry Property and Old/New; Item[] entries also carry
// Index.
type Entry struct {
	Seq      int    `json:"seq" yaml:"seq"`
	Channel  string `json:"channel" yaml:"channel"`
	Action   string `json:"action,omitempty" yaml:"action,omitempty"`
	Property string `json:"property,omitempty" yaml:"property,omitempty"`
	OldIndex *int   `json:"oldIndex,omitempty" yaml:"oldIndex,omitempty"`
	NewIndex *int   `json:"newIndex,omitempty" yaml:"newIndex,omitempty"`
	OldItems []any  `json:"oldItems,omitempty" yaml:"oldItems,omitempty"`
	NewItems []any  `json:"newItems,omitempty" yaml:"newItems,omitempty"`
	Index    *int   `json:"index,omitempty" yaml:"index,omitempty"`
	Old      any    `json:"old" yaml:"old"`
	New      any    `json:"new" yaml:"new"`
}

// Encode writes the journal to w as "json" or "yaml".
func (j *Journal) Encode(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "", "json":
		data, err := marshalJournal(j)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(j); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported journal format %q", format)
	}
}

// MatchesFile compares this journal against a golden file. On mismatch it
// reports a diff and instructions for updating. When OBSERVE_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (j *Journal) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("OBSERVE_UPDATE_SNAPSHOTS") == "1" {
		if err := j.UpdateFile(path); err != nil {
			t.Fatalf("failed to update journal: %v", err)
		}
		return
	}

	expected, err := loadJournal(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("journal file missing: %s\n\nTo create: OBSERVE_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load journal: %v", err)
		return
	}

	diff, err := j.Diff(expected)
	if err != nil {
		t.Fatalf("failed to compare journal %s: %v", path, err)
		return
	}
	if diff != "" {
		t.Errorf("journal mismatch: %s\n%s\n\nTo update: OBSERVE_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this journal to the given path as a golden file,
// creating directories as needed. Nothing is written if the entries cannot
// be encoded.
func (j *Journal) UpdateFile(path string) error {
	g, err := j.golden()
	if err != nil {
		return err
	}
	data, err := marshalJournal(g)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this journal and other, ignoring the
// source ID. The diff is empty if the journals are equal. A journal whose
// entries cannot be encoded is never equal to anything; Diff returns the
// encoding error instead.
func (j *Journal) Diff(other *Journal) (string, error) {
	a, err := j.goldenJSON()
	if err != nil {
		return "", err
	}
	b, err := other.goldenJSON()
	if err != nil {
		return "", err
	}
	if bytes.Equal(a, b) {
		return "", nil
	}
	return lineDiff(string(b), string(a)), nil
}

// golden returns a copy without the per-run source ID. Values go through a
// JSON round trip so that freshly recorded items and items loaded from a
// file compare equal.
func (j *Journal) golden() (*Journal, error) {
	g := &Journal{Name: j.Name}
	data, err := json.Marshal(j.Entries)
	if err != nil {
		return nil, fmt.Errorf("encode journal entries: %w", err)
	}
	if err := json.Unmarshal(data, &g.Entries); err != nil {
		return nil, fmt.Errorf("decode journal entries: %w", err)
	}
	return g, nil
}

func (j *Journal) goldenJSON() ([]byte, error) {
	g, err := j.golden()
	if err != nil {
		return nil, err
	}
	return marshalJournal(g)
}

func loadJournal(path string) (*Journal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var j Journal
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("invalid journal JSON: %w", err)
	}
	return &j, nil
}

func marshalJournal(j *Journal) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(j); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// lineDiff produces a simple line-oriented diff.
func lineDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	for i := 0; i < max(len(expectedLines), len(actualLines)); i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e == a {
			continue
		}
		if i < len(expectedLines) {
			fmt.Fprintf(&buf, "-%s\n", e)
		}
		if i < len(actualLines) {
			fmt.Fprintf(&buf, "+%s\n", a)
		}
	}

	return buf.String()
}
