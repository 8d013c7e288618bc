package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsearch/internal/domain"
)

const fixture = `documents:
  - title: Python Tutorial
    creators: [alice]
    timestamp: "2025-01-01"
    content: Learn Python basics
  - kind: social
    title: Show r/Python
    timestamp: "2025-01-02"
    comments: 7
    content: I built a search engine
  - kind: paper
    title: TF-IDF Revisited
    creators: [Ada, Alan]
    timestamp: "2025-01-03"
    content: Term weighting
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestFetcher_Fetch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "docs.yaml", fixture)

	docs, err := NewFetcher(filepath.Join(dir, "*.yaml")).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 3)

	assert.Equal(t, domain.KindGeneric, docs[0].Kind())
	assert.Equal(t, []string{"alice"}, docs[0].Creators())

	assert.Equal(t, domain.KindSocialPost, docs[1].Kind())
	assert.Equal(t, []string{domain.UnknownCreator}, docs[1].Creators())
	n, _ := docs[1].CommentCount()
	assert.Equal(t, 7, n)

	assert.Equal(t, domain.KindPaper, docs[2].Kind())
	assert.Equal(t, []string{"Ada", "Alan"}, docs[2].Creators())
}

func TestFetcher_InvalidEntry(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "bad.yaml", "documents:\n  - kind: paper\n    title: nobody wrote this\n")

	_, err := NewFetcher(p).Fetch(context.Background())
	require.ErrorIs(t, err, domain.ErrInvalidDocument)
	assert.Contains(t, err.Error(), "document 0")
}

func TestFetcher_UnknownKind(t *testing.T) {
	_, err := Entry{Kind: "tweet"}.Document()
	require.ErrorIs(t, err, domain.ErrInvalidDocument)
}

func TestFetcher_MissingFile(t *testing.T) {
	_, err := NewFetcher(filepath.Join(t.TempDir(), "missing.yaml")).Fetch(context.Background())
	require.Error(t, err)
}

func TestFetcher_BadPattern(t *testing.T) {
	_, err := NewFetcher("[docs.yaml").Fetch(context.Background())
	require.ErrorIs(t, err, filepath.ErrBadPattern)
	assert.Contains(t, err.Error(), "[docs.yaml")
}
