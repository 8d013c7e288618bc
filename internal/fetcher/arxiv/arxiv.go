// Package arxiv queries the arXiv export API and turns Atom entries into paper documents.
package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"docsearch/internal/domain"
	"docsearch/internal/fetcher"
)

// Config selects the search to run.
type Config struct {
	BaseURL    string
	Query      string
	MaxResults int
}

// Fetcher implements domain.Fetcher for an arXiv search query.
type Fetcher struct {
	cfg    Config
	client *fetcher.Client
	log    *logrus.Entry
}

// NewFetcher fills unset Config fields with defaults.
func NewFetcher(cfg Config, client *fetcher.Client, log *logrus.Entry) *Fetcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://export.arxiv.org"
	}
	if cfg.Query == "" {
		cfg.Query = "Data Science"
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 10
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Fetcher{cfg: cfg, client: client, log: log.WithField("component", "arxiv")}
}

func (f *Fetcher) Name() string { return "arxiv" }

type feed struct {
	Entries []entry `xml:"entry"`
}

type entry struct {
	Title     string   `xml:"title"`
	Summary   string   `xml:"summary"`
	Published string   `xml:"published"`
	Authors   []author `xml:"author"`
}

type author struct {
	Name string `xml:"name"`
}

// Fetch runs the query and converts every entry that has at least one author.
func (f *Fetcher) Fetch(ctx context.Context) ([]domain.Document, error) {
	q := url.Values{}
	q.Set("search_query", "all:"+f.cfg.Query)
	q.Set("start", "0")
	q.Set("max_results", fmt.Sprint(f.cfg.MaxResults))
	u := strings.TrimRight(f.cfg.BaseURL, "/") + "/api/query?" + q.Encode()

	body, err := f.client.Get(ctx, u)
	if err != nil {
		return nil, err
	}
	var fd feed
	if err := xml.Unmarshal(body, &fd); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	docs := make([]domain.Document, 0, len(fd.Entries))
	for _, e := range fd.Entries {
		names := make([]string, 0, len(e.Authors))
		for _, a := range e.Authors {
			names = append(names, a.Name)
		}
		doc, err := domain.NewPaper(
			collapse(e.Title),
			names,
			strings.TrimSpace(e.Published),
			strings.TrimSpace(strings.ReplaceAll(e.Summary, "\n", " ")),
		)
		if err != nil {
			f.log.WithError(err).Warn("skipping entry")
			continue
		}
		docs = append(docs, doc)
	}
	f.log.WithField("documents", len(docs)).Debug("feed fetched")
	return docs, nil
}

// collapse folds the line-wrapped titles arXiv returns onto one line.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
