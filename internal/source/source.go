// Package source abstracts where a rule set comes from.
package source

import (
	"fmt"
	"os"

	"wordgen/internal/corpus"
	"wordgen/internal/library"
	"wordgen/internal/rules"
)

// Source produces a raw rule set. Implementations do not verify it.
type Source interface {
	// Name identifies the source in messages and word-list headers.
	Name() string

	// Rules loads or builds the rule set.
	Rules() (rules.Rules, error)
}

// File reads a YAML rule file, resolving bare names through Library when set.
type File struct {
	Ref     string
	Library *library.Library
}

func (f *File) Name() string { return f.Ref }

func (f *File) Rules() (rules.Rules, error) {
	if f.Library != nil {
		return f.Library.Load(f.Ref)
	}
	return rules.Load(f.Ref)
}

// Corpus extracts a rule set from a plain-text file.
type Corpus struct {
	Path  string
	Depth int
}

func (c *Corpus) Name() string { return fmt.Sprintf("corpus:%s", c.Path) }

func (c *Corpus) Rules() (rules.Rules, error) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	r, err := corpus.Extract(string(data), c.Depth)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", c.Path, err)
	}
	return r, nil
}

// Text extracts a rule set from an in-memory string.
type Text struct {
	Label string
	Body  string
	Depth int
}

func (t *Text) Name() string { return t.Label }

func (t *Text) Rules() (rules.Rules, error) {
	return corpus.Extract(t.Body, t.Depth)
}
