package domain

import "context"

// SearchResult represents a matching document with a relevance score.
type SearchResult struct {
	Document Document
	Score    float64
}

// Fetcher produces ready-made documents from some source (remote API, file, fixture).
// Transport and parsing failures are the fetcher's own; the corpus only receives
// whatever documents are returned.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) ([]Document, error)
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}
