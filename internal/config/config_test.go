package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv(UserAgentEnv, "")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv(UserAgentEnv, "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `sources:
  reddit:
    enabled: false
    subreddit: golang
  arxiv:
    query: information retrieval
  local:
    paths: [docs/*.yaml]
index:
  stopwords: true
  max_results: 5
export:
  creator_separator: ""
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Sources.Reddit.Enabled)
	assert.Equal(t, "golang", cfg.Sources.Reddit.Subreddit)
	assert.Equal(t, "top", cfg.Sources.Reddit.Sort)
	assert.True(t, cfg.Sources.Arxiv.Enabled)
	assert.Equal(t, "information retrieval", cfg.Sources.Arxiv.Query)
	assert.Equal(t, 1000, cfg.Sources.Arxiv.MinIntervalMillis)
	assert.Equal(t, []string{"docs/*.yaml"}, cfg.Sources.Local.Paths)
	assert.True(t, cfg.Index.Stopwords)
	assert.Equal(t, 5, cfg.Index.MaxResults)
	assert.Equal(t, ", ", cfg.Export.CreatorSeparator)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sources: [unclosed"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_UserAgentFromEnv(t *testing.T) {
	t.Setenv(UserAgentEnv, "custom-agent/9")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "custom-agent/9", cfg.Sources.UserAgent)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv(UserAgentEnv, "")
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Sources.Reddit.Subreddit = "datascience"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
