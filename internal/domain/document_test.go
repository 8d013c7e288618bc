package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument(t *testing.T) {
	d := NewDocument("Generic title", "Test Author", "2025-01-01", "Generic content")
	assert.Equal(t, "Generic title", d.Title())
	assert.Equal(t, []string{"Test Author"}, d.Creators())
	assert.Equal(t, "2025-01-01", d.Timestamp())
	assert.Equal(t, "Generic content", d.Content())
	assert.Equal(t, KindGeneric, d.Kind())
	assert.Equal(t, "Generic Document", d.Type())
	_, ok := d.CommentCount()
	assert.False(t, ok)
	assert.Equal(t, "Generic title created by Test Author on 2025-01-01 (Generic Document)", d.String())
}

func TestNewSocialPost(t *testing.T) {
	p, err := NewSocialPost("Reddit title", "redditor", "2025-01-01", 100, "Reddit content")
	require.NoError(t, err)
	assert.Equal(t, "Reddit Post", p.Type())
	n, ok := p.CommentCount()
	require.True(t, ok)
	assert.Equal(t, 100, n)
	assert.Equal(t, "Reddit title created by redditor on 2025-01-01 (Reddit Post) | Comments: 100", p.String())

	anon, err := NewSocialPost("t", "  ", "ts", 0, "")
	require.NoError(t, err)
	assert.Equal(t, []string{UnknownCreator}, anon.Creators())

	_, err = NewSocialPost("t", "x", "ts", -1, "")
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestNewPaper(t *testing.T) {
	p, err := NewPaper("Arxiv title", []string{"Author1", " ", "Author2"}, "2025-01-01", "Abstract")
	require.NoError(t, err)
	assert.Equal(t, []string{"Author1", "Author2"}, p.Creators())
	assert.Equal(t, "Arxiv Paper", p.Type())
	assert.Equal(t, "Author1; Author2", p.CreatorsJoined("; "))
	assert.Contains(t, p.String(), "| Authors: Author1, Author2")

	_, err = NewPaper("no authors", nil, "", "")
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestDocument_CreatorsIsACopy(t *testing.T) {
	p, err := NewPaper("t", []string{"a"}, "", "")
	require.NoError(t, err)
	cs := p.Creators()
	cs[0] = "mutated"
	assert.Equal(t, []string{"a"}, p.Creators())
}

func TestCorpus(t *testing.T) {
	c := NewCorpus()
	assert.Zero(t, c.Len())
	assert.Zero(t, c.Revision())

	d := NewDocument("dup", "a", "t", "x")
	c.Add(d)
	c.Add(NewDocument("second", "b", "t", "y"))
	c.Add(d)

	all := c.All()
	require.Len(t, all, 3)
	assert.Equal(t, "dup", all[0].Title())
	assert.Equal(t, "second", all[1].Title())
	assert.Equal(t, "dup", all[2].Title())
	assert.Equal(t, uint64(3), c.Revision())

	all[0] = NewDocument("changed", "", "", "")
	assert.Equal(t, "dup", c.All()[0].Title())

	docs, rev := c.Snapshot()
	assert.Len(t, docs, 3)
	assert.Equal(t, uint64(3), rev)
}

func TestCorpus_Stats(t *testing.T) {
	c := NewCorpus()
	assert.Equal(t, "Total: 0 | Reddit Post: 0 | Arxiv Paper: 0 | Generic Document: 0", c.Stats().String())

	c.Add(NewDocument("a", "x", "t", "c"))
	post, err := NewSocialPost("b", "y", "t", 3, "c")
	require.NoError(t, err)
	c.Add(post)
	c.Add(post)
	paper, err := NewPaper("p", []string{"z"}, "t", "c")
	require.NoError(t, err)
	c.Add(paper)

	st := c.Stats()
	assert.Equal(t, 4, st.Total)
	assert.Equal(t, 2, st.ByKind[KindSocialPost])
	assert.Equal(t, 1, st.ByKind[KindPaper])
	assert.Equal(t, 1, st.ByKind[KindGeneric])
	assert.Equal(t, "Total: 4 | Reddit Post: 2 | Arxiv Paper: 1 | Generic Document: 1", st.String())
}
