package domain

import (
	"fmt"
	"strings"
)

// Kind tags the variant a Document belongs to.
type Kind int

const (
	KindGeneric Kind = iota
	KindSocialPost
	KindPaper
)

// UnknownCreator stands in for a social post whose author is absent.
const UnknownCreator = "Unknown"

// String returns the human-readable document type label.
func (k Kind) String() string {
	switch k {
	case KindSocialPost:
		return "Reddit Post"
	case KindPaper:
		return "Arxiv Paper"
	default:
		return "Generic Document"
	}
}

// Document is one retrievable item. It is immutable once constructed.
type Document struct {
	title        string
	creators     []string
	timestamp    string
	content      string
	kind         Kind
	commentCount int
}

// NewDocument builds a generic document with a single creator.
func NewDocument(title, creator, timestamp, content string) Document {
	return Document{
		title:     title,
		creators:  []string{creator},
		timestamp: timestamp,
		content:   content,
		kind:      KindGeneric,
	}
}

// NewSocialPost builds a social-platform post. An empty creator is recorded as UnknownCreator.
func NewSocialPost(title, creator, timestamp string, comments int, content string) (Document, error) {
	if comments < 0 {
		return Document{}, fmt.Errorf("%w: negative comment count %d for %q", ErrInvalidDocument, comments, title)
	}
	if strings.TrimSpace(creator) == "" {
		creator = UnknownCreator
	}
	return Document{
		title:        title,
		creators:     []string{creator},
		timestamp:    timestamp,
		content:      content,
		kind:         KindSocialPost,
		commentCount: comments,
	}, nil
}

// NewPaper builds a research paper. At least one non-blank creator is required.
func NewPaper(title string, creators []string, timestamp, content string) (Document, error) {
	names := make([]string, 0, len(creators))
	for _, c := range creators {
		if c = strings.TrimSpace(c); c != "" {
			names = append(names, c)
		}
	}
	if len(names) == 0 {
		return Document{}, fmt.Errorf("%w: paper %q has no creators", ErrInvalidDocument, title)
	}
	return Document{
		title:     title,
		creators:  names,
		timestamp: timestamp,
		content:   content,
		kind:      KindPaper,
	}, nil
}

// Title, Timestamp, Content and Kind expose the fields set at construction.
func (d Document) Title() string     { return d.title }
func (d Document) Timestamp() string { return d.timestamp }
func (d Document) Content() string   { return d.content }
func (d Document) Kind() Kind        { return d.kind }

// Type returns the label derived from the document's kind.
func (d Document) Type() string { return d.kind.String() }

// Creators returns a copy of the creator list.
func (d Document) Creators() []string {
	out := make([]string, len(d.creators))
	copy(out, d.creators)
	return out
}

// CreatorsJoined joins the creators with sep.
func (d Document) CreatorsJoined(sep string) string {
	return strings.Join(d.creators, sep)
}

// CommentCount reports the number of comments of a social post; ok is false for other kinds.
func (d Document) CommentCount() (n int, ok bool) {
	if d.kind != KindSocialPost {
		return 0, false
	}
	return d.commentCount, true
}

// String renders the document on one line, with comment count or author list where applicable.
func (d Document) String() string {
	s := fmt.Sprintf("%s created by %s on %s (%s)", d.title, d.CreatorsJoined(", "), d.timestamp, d.Type())
	switch d.kind {
	case KindSocialPost:
		s += fmt.Sprintf(" | Comments: %d", d.commentCount)
	case KindPaper:
		s += " | Authors: " + d.CreatorsJoined(", ")
	}
	return s
}
