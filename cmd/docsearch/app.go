package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"docsearch/internal/config"
	"docsearch/internal/domain"
	"docsearch/internal/embedding/tfidf"
	"docsearch/internal/fetcher"
	"docsearch/internal/fetcher/arxiv"
	"docsearch/internal/fetcher/local"
	"docsearch/internal/fetcher/reddit"
	"docsearch/internal/service"
)

// app holds the components assembled from the configuration.
type app struct {
	cfg    *config.AppConfig
	log    *logrus.Entry
	corpus *domain.Corpus
	engine *service.SearchEngine
}

func loadConfig(path string) (*config.AppConfig, error) {
	if path == "" {
		cfg, _, err := config.LoadDefault()
		return cfg, err
	}
	return config.Load(path)
}

func newLogger(level string, verbose bool) (*logrus.Entry, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if verbose {
		lvl = logrus.DebugLevel
	}
	logger.SetLevel(lvl)
	return logger.WithField("service", "docsearch"), nil
}

func newApp(cfg *config.AppConfig, log *logrus.Entry) *app {
	var stopwords map[string]struct{}
	if cfg.Index.Stopwords {
		stopwords = tfidf.DefaultStopwords()
	}
	corpus := domain.NewCorpus()
	engine := service.NewSearchEngine(corpus,
		service.WithVectorizer(tfidf.NewVectorizer(tfidf.NewTokenizer(stopwords))),
		service.WithLogger(log),
		service.WithMaxResults(cfg.Index.MaxResults),
	)
	return &app{cfg: cfg, log: log, corpus: corpus, engine: engine}
}

// fetchers assembles the enabled sources in a fixed order: reddit, arxiv, local.
func (a *app) fetchers() []domain.Fetcher {
	src := a.cfg.Sources
	var out []domain.Fetcher
	if src.Reddit.Enabled {
		client := fetcher.NewClient(fetcher.ClientConfig{
			Timeout:    time.Duration(src.Reddit.TimeoutSecs) * time.Second,
			UserAgent:  src.UserAgent,
			MaxRetries: src.MaxRetries,
		})
		out = append(out, reddit.NewFetcher(reddit.Config{
			BaseURL:   src.Reddit.BaseURL,
			Subreddit: src.Reddit.Subreddit,
			Sort:      src.Reddit.Sort,
			Limit:     src.Reddit.Limit,
		}, client, a.log))
	}
	if src.Arxiv.Enabled {
		client := fetcher.NewClient(fetcher.ClientConfig{
			Timeout:     time.Duration(src.Arxiv.TimeoutSecs) * time.Second,
			MinInterval: time.Duration(src.Arxiv.MinIntervalMillis) * time.Millisecond,
			UserAgent:   src.UserAgent,
			MaxRetries:  src.MaxRetries,
		})
		out = append(out, arxiv.NewFetcher(arxiv.Config{
			BaseURL:    src.Arxiv.BaseURL,
			Query:      src.Arxiv.Query,
			MaxResults: src.Arxiv.MaxResults,
		}, client, a.log))
	}
	if len(src.Local.Paths) > 0 {
		out = append(out, local.NewFetcher(src.Local.Paths...))
	}
	return out
}

// ingest fills the corpus from every configured source.
func (a *app) ingest(ctx context.Context) error {
	fs := a.fetchers()
	if len(fs) == 0 {
		return fmt.Errorf("no sources enabled")
	}
	report, err := service.Ingest(ctx, a.corpus, a.log, fs...)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	a.log.WithField("documents", report.Added).Info("corpus loaded")
	return nil
}
