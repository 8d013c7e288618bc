package domain

import (
	"fmt"
	"sync"
)

// Corpus is an ordered, append-only collection of documents.
// Insertion order is preserved and duplicates are kept.
type Corpus struct {
	mu       sync.RWMutex
	docs     []Document
	revision uint64
}

// NewCorpus returns an empty corpus at revision zero.
func NewCorpus() *Corpus { return &Corpus{} }

// Add appends a document and bumps the revision.
func (c *Corpus) Add(doc Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs = append(c.docs, doc)
	c.revision++
}

// All returns the documents in insertion order. The slice is a copy.
func (c *Corpus) All() []Document {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Document, len(c.docs))
	copy(out, c.docs)
	return out
}

// Len returns the number of documents.
func (c *Corpus) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs)
}

// Revision counts the Add calls made so far.
func (c *Corpus) Revision() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.revision
}

// Snapshot returns the documents together with the revision they correspond to.
func (c *Corpus) Snapshot() ([]Document, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Document, len(c.docs))
	copy(out, c.docs)
	return out, c.revision
}

// Stats holds per-kind document counts.
type Stats struct {
	Total  int
	ByKind map[Kind]int
}

func (s Stats) String() string {
	return fmt.Sprintf("Total: %d | %s: %d | %s: %d | %s: %d",
		s.Total,
		KindSocialPost, s.ByKind[KindSocialPost],
		KindPaper, s.ByKind[KindPaper],
		KindGeneric, s.ByKind[KindGeneric])
}

// Stats counts the documents by kind.
func (c *Corpus) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	st := Stats{Total: len(c.docs), ByKind: make(map[Kind]int, 3)}
	for _, d := range c.docs {
		st.ByKind[d.Kind()]++
	}
	return st
}
