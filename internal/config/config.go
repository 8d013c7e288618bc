package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// UserAgentEnv overrides the HTTP User-Agent sent by the remote fetchers.
const UserAgentEnv = "DOCSEARCH_USER_AGENT"

// RedditConfig configures the subreddit listing source.
type RedditConfig struct {
	Enabled     bool   `yaml:"enabled"`
	BaseURL     string `yaml:"base_url"`
	Subreddit   string `yaml:"subreddit"`
	Sort        string `yaml:"sort"`
	Limit       int    `yaml:"limit"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// ArxivConfig configures the arXiv search source.
type ArxivConfig struct {
	Enabled    bool   `yaml:"enabled"`
	BaseURL    string `yaml:"base_url"`
	Query      string `yaml:"query"`
	MaxResults int    `yaml:"max_results"`
	// MinIntervalMillis is the delay between two API calls; arXiv asks for at least a second.
	MinIntervalMillis int `yaml:"min_interval_ms"`
	TimeoutSecs       int `yaml:"timeout_secs"`
}

// LocalConfig lists YAML document files to load.
type LocalConfig struct {
	Paths []string `yaml:"paths,omitempty"`
}

// SourcesConfig groups the document sources.
type SourcesConfig struct {
	UserAgent  string       `yaml:"user_agent"`
	MaxRetries int          `yaml:"max_retries"`
	Reddit     RedditConfig `yaml:"reddit"`
	Arxiv      ArxivConfig  `yaml:"arxiv"`
	Local      LocalConfig  `yaml:"local"`
}

// IndexConfig configures tokenization and result size.
type IndexConfig struct {
	Stopwords  bool `yaml:"stopwords"`
	MaxResults int  `yaml:"max_results"`
}

// ExportConfig configures CSV export.
type ExportConfig struct {
	Path             string `yaml:"path"`
	CreatorSeparator string `yaml:"creator_separator"`
}

// SummarizerConfig configures the corpus digest.
type SummarizerConfig struct {
	MaxSentences int `yaml:"max_sentences"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Sources    SourcesConfig    `yaml:"sources"`
	Index      IndexConfig      `yaml:"index"`
	Export     ExportConfig     `yaml:"export"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Log        LogConfig        `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(cfg)
	applyEnv(cfg)
	return cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/docsearch/config.yaml.
// If neither exists, it writes defaults to ~/.config/docsearch/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	applyEnv(cfg)
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "docsearch", "config.yaml"), nil
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	return &AppConfig{
		Sources: SourcesConfig{
			UserAgent:  "docsearch/1.0",
			MaxRetries: 3,
			Reddit: RedditConfig{
				Enabled:     true,
				BaseURL:     "https://www.reddit.com",
				Subreddit:   "Python",
				Sort:        "top",
				Limit:       10,
				TimeoutSecs: 15,
			},
			Arxiv: ArxivConfig{
				Enabled:           true,
				BaseURL:           "http://export.arxiv.org",
				Query:             "Data Science",
				MaxResults:        10,
				MinIntervalMillis: 1000,
				TimeoutSecs:       30,
			},
		},
		Index:      IndexConfig{MaxResults: 0},
		Export:     ExportConfig{Path: "documents_output.csv", CreatorSeparator: ", "},
		Summarizer: SummarizerConfig{MaxSentences: 3},
		Log:        LogConfig{Level: "info"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Sources.Reddit.Limit <= 0 {
		cfg.Sources.Reddit.Limit = 10
	}
	if cfg.Sources.Arxiv.MaxResults <= 0 {
		cfg.Sources.Arxiv.MaxResults = 10
	}
	if cfg.Sources.Arxiv.MinIntervalMillis < 0 {
		cfg.Sources.Arxiv.MinIntervalMillis = 0
	}
	if cfg.Export.CreatorSeparator == "" {
		cfg.Export.CreatorSeparator = ", "
	}
	if cfg.Summarizer.MaxSentences <= 0 {
		cfg.Summarizer.MaxSentences = 3
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func applyEnv(cfg *AppConfig) {
	if ua := os.Getenv(UserAgentEnv); ua != "" {
		cfg.Sources.UserAgent = ua
	}
}
