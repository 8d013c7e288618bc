package service

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsearch/internal/domain"
	"docsearch/internal/embedding/tfidf"
)

func pythonCorpus() *domain.Corpus {
	c := domain.NewCorpus()
	c.Add(domain.NewDocument("Python Tutorial", "alice", "2025-01-01", "Learn Python basics"))
	c.Add(domain.NewDocument("Advanced Python", "bob", "2025-01-02", "Master advanced Python techniques"))
	c.Add(domain.NewDocument("Data Science", "carol", "2025-01-03", "Learn data science with Python"))
	return c
}

func titles(rs []domain.SearchResult) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Document.Title()
	}
	return out
}

func TestSearchEngine_PythonScenario(t *testing.T) {
	e := NewSearchEngine(pythonCorpus())
	require.NoError(t, e.Index())

	res, err := e.Search("Python")
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, []string{"Python Tutorial", "Advanced Python", "Data Science"}, titles(res))
	assert.GreaterOrEqual(t, res[0].Score, res[2].Score)
	assert.GreaterOrEqual(t, res[1].Score, res[2].Score)

	res, err = e.Search("Java")
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, res)
}

func TestSearchEngine_EmptyCorpus(t *testing.T) {
	e := NewSearchEngine(domain.NewCorpus())
	err := e.Index()
	require.ErrorIs(t, err, domain.ErrEmptyCorpus)
	assert.Equal(t, Unindexed, e.State())

	_, err = e.Search("anything")
	require.ErrorIs(t, err, domain.ErrEmptyCorpus)
}

func TestSearchEngine_LazyIndex(t *testing.T) {
	e := NewSearchEngine(pythonCorpus())
	assert.Equal(t, Unindexed, e.State())

	res, err := e.Search("basics")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Python Tutorial", res[0].Document.Title())
	assert.Equal(t, Indexed, e.State())
}

func TestSearchEngine_Stale(t *testing.T) {
	e := NewSearchEngine(pythonCorpus())
	require.NoError(t, e.Index())

	e.Add(domain.NewDocument("Go Guide", "dave", "2025-02-01", "Python interop from Go"))
	assert.Equal(t, Stale, e.State())

	res, err := e.Search("interop")
	require.NoError(t, err)
	assert.Empty(t, res)

	res, err = e.Search("Python")
	require.NoError(t, err)
	assert.NotContains(t, titles(res), "Go Guide")

	require.NoError(t, e.Index())
	assert.Equal(t, Indexed, e.State())
	res, err = e.Search("interop")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Go Guide", res[0].Document.Title())
}

func TestSearchEngine_StaleFromDirectCorpusAdd(t *testing.T) {
	c := pythonCorpus()
	e := NewSearchEngine(c)
	require.NoError(t, e.Index())
	c.Add(domain.NewDocument("x", "y", "z", "content"))
	assert.Equal(t, Stale, e.State())
}

func TestSearchEngine_ReindexIsDeterministic(t *testing.T) {
	c := pythonCorpus()
	e := NewSearchEngine(c)
	require.NoError(t, e.Index())
	before, err := e.Search("Python")
	require.NoError(t, err)
	require.NoError(t, e.Index())
	after, err := e.Search("Python")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSearchEngine_Properties(t *testing.T) {
	c := pythonCorpus()
	c.Add(domain.NewDocument("Snakes", "erin", "2025-03-01", "Pythons are snakes, not a language"))
	c.Add(domain.NewDocument("Empty", "frank", "2025-03-02", ""))
	e := NewSearchEngine(c)
	require.NoError(t, e.Index())

	for _, q := range []string{"Python", "learn python", "advanced techniques", "data", "snakes language"} {
		first, err := e.Search(q)
		require.NoError(t, err)
		for i := range first {
			assert.Greater(t, first[i].Score, 0.0, q)
			if i+1 < len(first) {
				assert.GreaterOrEqual(t, first[i].Score, first[i+1].Score, q)
			}
		}
		second, err := e.Search(q)
		require.NoError(t, err)
		assert.Equal(t, first, second, q)
	}
}

func TestSearchEngine_FullContentQueryScoresHighest(t *testing.T) {
	c := pythonCorpus()
	e := NewSearchEngine(c)
	for _, d := range c.All() {
		res, err := e.Search(d.Content())
		require.NoError(t, err)
		require.NotEmpty(t, res)
		assert.Equal(t, d.Title(), res[0].Document.Title())
		assert.InDelta(t, 1.0, res[0].Score, 1e-9)
	}
}

func TestSearchEngine_NoTokensQuery(t *testing.T) {
	e := NewSearchEngine(pythonCorpus())
	res, err := e.Search("?!  ...")
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestSearchEngine_MaxResults(t *testing.T) {
	e := NewSearchEngine(pythonCorpus(), WithMaxResults(2))
	res, err := e.Search("python")
	require.NoError(t, err)
	assert.Len(t, res, 2)
}

func TestSearchEngine_Stopwords(t *testing.T) {
	e := NewSearchEngine(pythonCorpus(), WithVectorizer(tfidf.NewVectorizer(tfidf.NewTokenizer(tfidf.DefaultStopwords()))))
	res, err := e.Search("with")
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestSearchEngine_ConcurrentAccess(t *testing.T) {
	e := NewSearchEngine(pythonCorpus())
	require.NoError(t, e.Index())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			e.Add(domain.NewDocument(fmt.Sprintf("doc %d", i), "w", "t", "python worker"))
			assert.NoError(t, e.Index())
		}()
		go func() {
			defer wg.Done()
			res, err := e.Search("python")
			assert.NoError(t, err)
			assert.GreaterOrEqual(t, len(res), 3)
		}()
	}
	wg.Wait()
	assert.Equal(t, Indexed, e.State())
	res, err := e.Search("python")
	require.NoError(t, err)
	assert.Len(t, res, 11)
}

func TestSearchEngine_OlderBuildDoesNotReplaceNewer(t *testing.T) {
	e := NewSearchEngine(pythonCorpus())
	older, err := e.fit()
	require.NoError(t, err)

	e.Add(domain.NewDocument("Go", "dave", "2025-02-01", "golang concurrency"))
	require.NoError(t, e.Index())

	active := e.install(older)
	assert.NotSame(t, older, active)
	assert.Equal(t, Indexed, e.State())
	res, err := e.Search("golang")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, titles(res))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "unindexed", Unindexed.String())
	assert.Equal(t, "indexed", Indexed.String())
	assert.Equal(t, "stale", Stale.String())
}
