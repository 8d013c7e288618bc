package tfidf

import (
	"strings"
	"unicode"
)

// Tokenizer lower-cases text and splits it on every rune that is neither a letter nor a number.
// The same Tokenizer must be used for corpus text and query text.
type Tokenizer struct {
	stopwords map[string]struct{}
}

// NewTokenizer returns a tokenizer. A nil stopword set keeps every token.
func NewTokenizer(stopwords map[string]struct{}) *Tokenizer {
	return &Tokenizer{stopwords: stopwords}
}

// Tokenize splits text into normalized tokens.
func (t *Tokenizer) Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	if len(t.stopwords) == 0 {
		return fields
	}
	out := fields[:0]
	for _, f := range fields {
		if _, isStop := t.stopwords[f]; isStop {
			continue
		}
		out = append(out, f)
	}
	return out
}

// DefaultStopwords is a small English stopword list.
func DefaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
