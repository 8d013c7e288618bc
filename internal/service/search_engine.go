package service

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"docsearch/internal/domain"
	"docsearch/internal/embedding/tfidf"
	"docsearch/internal/ranker"
)

// State describes how the engine's index relates to its corpus.
type State int

const (
	// Unindexed means Index has not succeeded yet.
	Unindexed State = iota
	Indexed
	Stale
)

func (s State) String() string {
	switch s {
	case Indexed:
		return "indexed"
	case Stale:
		return "stale"
	default:
		return "unindexed"
	}
}

// snapshot is one built index. It is never mutated after installation.
type snapshot struct {
	docs     []domain.Document
	model    *tfidf.Model
	matrix   tfidf.Matrix
	revision uint64
}

// SearchEngine indexes a corpus with TF-IDF and answers ranked queries.
// Documents added after Index are not visible to Search until Index runs again.
type SearchEngine struct {
	corpus     *domain.Corpus
	vectorizer *tfidf.Vectorizer
	log        *logrus.Entry
	maxResults int

	mu      sync.RWMutex
	current *snapshot
}

// Option configures a SearchEngine.
type Option func(*SearchEngine)

// WithVectorizer replaces the default vectorizer (no stopwords).
func WithVectorizer(v *tfidf.Vectorizer) Option {
	return func(e *SearchEngine) { e.vectorizer = v }
}

// WithLogger sets the logger entry used for index and search events.
func WithLogger(log *logrus.Entry) Option {
	return func(e *SearchEngine) { e.log = log }
}

// WithMaxResults caps the number of results returned by Search. Zero means no cap.
func WithMaxResults(n int) Option {
	return func(e *SearchEngine) { e.maxResults = n }
}

// NewSearchEngine creates an unindexed engine over corpus.
func NewSearchEngine(corpus *domain.Corpus, opts ...Option) *SearchEngine {
	e := &SearchEngine{
		corpus:     corpus,
		vectorizer: tfidf.NewVectorizer(nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		e.log = logrus.NewEntry(l)
	}
	e.log = e.log.WithField("component", "search-engine")
	return e
}

// Corpus returns the corpus the engine indexes.
func (e *SearchEngine) Corpus() *domain.Corpus { return e.corpus }

// Add appends doc to the corpus. The engine becomes Stale if it was Indexed.
func (e *SearchEngine) Add(doc domain.Document) {
	e.corpus.Add(doc)
}

// State reports whether the index is missing, current or behind the corpus.
func (e *SearchEngine) State() State {
	e.mu.RLock()
	cur := e.current
	e.mu.RUnlock()
	if cur == nil {
		return Unindexed
	}
	if cur.revision != e.corpus.Revision() {
		return Stale
	}
	return Indexed
}

// Index rebuilds the vocabulary and document-term matrix from the current corpus.
// On failure the previous index, if any, stays in place.
func (e *SearchEngine) Index() error {
	_, err := e.build()
	return err
}

func (e *SearchEngine) build() (*snapshot, error) {
	snap, err := e.fit()
	if err != nil {
		return nil, err
	}
	active := e.install(snap)
	e.log.WithFields(logrus.Fields{
		"documents": len(snap.docs),
		"terms":     snap.model.Dimension(),
		"revision":  snap.revision,
		"installed": active == snap,
	}).Debug("index built")
	return active, nil
}

func (e *SearchEngine) fit() (*snapshot, error) {
	docs, rev := e.corpus.Snapshot()
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Content()
	}
	model, matrix, err := e.vectorizer.Fit(texts)
	if err != nil {
		return nil, fmt.Errorf("index corpus: %w", err)
	}
	return &snapshot{docs: docs, model: model, matrix: matrix, revision: rev}, nil
}

// install swaps in snap unless a snapshot of a later corpus revision is
// already installed, and returns the snapshot that is active afterwards.
func (e *SearchEngine) install(snap *snapshot) *snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil || snap.revision >= e.current.revision {
		e.current = snap
	}
	return e.current
}

// Search ranks the indexed documents against query. The first call on an
// unindexed engine builds the index; a stale index is used as is.
func (e *SearchEngine) Search(query string) ([]domain.SearchResult, error) {
	e.mu.RLock()
	snap := e.current
	e.mu.RUnlock()
	if snap == nil {
		var err error
		if snap, err = e.build(); err != nil {
			return nil, err
		}
	}

	vec := snap.model.Transform(query)
	results := ranker.TopK(ranker.Rank(vec, snap.matrix, snap.docs), e.maxResults)
	e.log.WithFields(logrus.Fields{
		"query":   query,
		"results": len(results),
	}).Debug("search")
	return results, nil
}
