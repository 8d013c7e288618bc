package tfidf

import (
	"math"
	"sort"

	"docsearch/internal/domain"
)

// Vectorizer builds a TF-IDF model from a corpus.
// Term frequency is the raw count, idf is smoothed and rows are L2-normalized.
type Vectorizer struct {
	tokenizer *Tokenizer
}

// NewVectorizer creates a vectorizer that splits text with tok. A nil tok keeps every token.
func NewVectorizer(tok *Tokenizer) *Vectorizer {
	if tok == nil {
		tok = NewTokenizer(nil)
	}
	return &Vectorizer{tokenizer: tok}
}

// Model is the fitted state: vocabulary and idf weights. It is read-only after Fit.
type Model struct {
	tokenizer  *Tokenizer
	vocabulary map[string]int
	terms      []string
	idf        []float64
}

// Fit builds the vocabulary and IDF values from corpus and returns the document-term matrix.
func (v *Vectorizer) Fit(corpus []string) (*Model, Matrix, error) {
	if len(corpus) == 0 {
		return nil, nil, domain.ErrEmptyCorpus
	}
	counts := make([]map[string]int, len(corpus))
	df := make(map[string]int)
	for i, text := range corpus {
		tf := make(map[string]int)
		for _, tok := range v.tokenizer.Tokenize(text) {
			tf[tok]++
		}
		for tok := range tf {
			df[tok]++
		}
		counts[i] = tf
	}
	// Sorted vocabulary keeps columns stable across fits.
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	m := &Model{
		tokenizer:  v.tokenizer,
		vocabulary: make(map[string]int, len(terms)),
		terms:      terms,
		idf:        make([]float64, len(terms)),
	}
	n := float64(len(corpus))
	for i, term := range terms {
		m.vocabulary[term] = i
		m.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}

	matrix := make(Matrix, len(corpus))
	for i, tf := range counts {
		matrix[i] = m.weigh(tf)
	}
	return m, matrix, nil
}

// Transform projects text through the fitted vocabulary. Unknown terms are dropped.
func (m *Model) Transform(text string) Vector {
	tf := make(map[string]int)
	for _, tok := range m.tokenizer.Tokenize(text) {
		if _, ok := m.vocabulary[tok]; ok {
			tf[tok]++
		}
	}
	return m.weigh(tf)
}

func (m *Model) weigh(tf map[string]int) Vector {
	vec := make(Vector, 0, len(tf))
	for tok, count := range tf {
		idx := m.vocabulary[tok]
		vec = append(vec, Entry{Column: idx, Weight: float64(count) * m.idf[idx]})
	}
	sort.Slice(vec, func(i, j int) bool { return vec[i].Column < vec[j].Column })
	vec.normalize()
	return vec
}

// Dimension returns the vocabulary size.
func (m *Model) Dimension() int { return len(m.terms) }

// Terms returns the vocabulary in column order.
func (m *Model) Terms() []string {
	out := make([]string, len(m.terms))
	copy(out, m.terms)
	return out
}

// Vocabulary returns a copy of the term to column mapping.
func (m *Model) Vocabulary() map[string]int {
	out := make(map[string]int, len(m.vocabulary))
	for k, v := range m.vocabulary {
		out[k] = v
	}
	return out
}

// IDF returns the idf weight of term, or false if the term is not in the vocabulary.
func (m *Model) IDF(term string) (float64, bool) {
	idx, ok := m.vocabulary[term]
	if !ok {
		return 0, false
	}
	return m.idf[idx], true
}
