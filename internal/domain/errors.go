package domain

import "errors"

var (
	// ErrEmptyCorpus is returned when an index is requested over a corpus with no documents.
	// Recoverable: add documents and index again.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrInvalidDocument is returned by the document constructors when a variant's
	// required fields are missing.
	ErrInvalidDocument = errors.New("invalid document")
)
