// Package local loads hand-written documents from YAML files.
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"docsearch/internal/domain"
)

// Entry is one document as written in a YAML fixture file.
type Entry struct {
	Kind      string   `yaml:"kind"`
	Title     string   `yaml:"title"`
	Creators  []string `yaml:"creators"`
	Timestamp string   `yaml:"timestamp"`
	Comments  int      `yaml:"comments"`
	Content   string   `yaml:"content"`
}

// File is the top-level layout of a fixture file.
type File struct {
	Documents []Entry `yaml:"documents"`
}

// Fetcher implements domain.Fetcher over a list of YAML files or globs.
type Fetcher struct {
	paths []string
}

// NewFetcher reads the given files; each path may be a glob pattern.
func NewFetcher(paths ...string) *Fetcher { return &Fetcher{paths: paths} }

func (f *Fetcher) Name() string { return "local" }

// Fetch reads every file in order. Any invalid entry fails the whole fetch.
func (f *Fetcher) Fetch(ctx context.Context) ([]domain.Document, error) {
	var docs []domain.Document
	for _, p := range f.paths {
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			data, err := os.ReadFile(m)
			if err != nil {
				return nil, err
			}
			var file File
			if err := yaml.Unmarshal(data, &file); err != nil {
				return nil, fmt.Errorf("%s: %w", m, err)
			}
			for i, e := range file.Documents {
				doc, err := e.Document()
				if err != nil {
					return nil, fmt.Errorf("%s: document %d: %w", m, i, err)
				}
				docs = append(docs, doc)
			}
		}
	}
	return docs, nil
}

// Document converts the entry into a domain document.
func (e Entry) Document() (domain.Document, error) {
	first := ""
	if len(e.Creators) > 0 {
		first = e.Creators[0]
	}
	switch e.Kind {
	case "", "generic":
		return domain.NewDocument(e.Title, first, e.Timestamp, e.Content), nil
	case "social":
		return domain.NewSocialPost(e.Title, first, e.Timestamp, e.Comments, e.Content)
	case "paper":
		return domain.NewPaper(e.Title, e.Creators, e.Timestamp, e.Content)
	default:
		return domain.Document{}, fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidDocument, e.Kind)
	}
}
