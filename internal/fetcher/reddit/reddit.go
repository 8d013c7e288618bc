// Package reddit fetches subreddit listings from Reddit's public JSON API
// and turns each post into a social-post document.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"docsearch/internal/domain"
	"docsearch/internal/fetcher"
)

const timestampLayout = "2006-01-02 15:04:05"

// Config selects the listing to fetch.
type Config struct {
	BaseURL   string
	Subreddit string
	// Sort is the listing name: top, hot, new.
	Sort  string
	Limit int
}

// Fetcher implements domain.Fetcher for a subreddit listing.
type Fetcher struct {
	cfg    Config
	client *fetcher.Client
	log    *logrus.Entry
}

// NewFetcher fills unset Config fields with defaults.
func NewFetcher(cfg Config, client *fetcher.Client, log *logrus.Entry) *Fetcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.reddit.com"
	}
	if cfg.Subreddit == "" {
		cfg.Subreddit = "Python"
	}
	if cfg.Sort == "" {
		cfg.Sort = "top"
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 10
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Fetcher{cfg: cfg, client: client, log: log.WithField("component", "reddit")}
}

func (f *Fetcher) Name() string { return "reddit/r/" + f.cfg.Subreddit }

type listing struct {
	Data struct {
		Children []struct {
			Data post `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type post struct {
	Title        string  `json:"title"`
	Author       string  `json:"author"`
	CreatedUTC   float64 `json:"created_utc"`
	NumComments  int     `json:"num_comments"`
	Selftext     string  `json:"selftext"`
	SelftextHTML string  `json:"selftext_html"`
}

// Fetch downloads the listing and converts each post.
func (f *Fetcher) Fetch(ctx context.Context) ([]domain.Document, error) {
	u := fmt.Sprintf("%s/r/%s/%s.json?limit=%d&raw_json=1",
		strings.TrimRight(f.cfg.BaseURL, "/"), url.PathEscape(f.cfg.Subreddit), url.PathEscape(f.cfg.Sort), f.cfg.Limit)
	body, err := f.client.Get(ctx, u)
	if err != nil {
		return nil, err
	}
	var l listing
	if err := json.Unmarshal(body, &l); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}

	docs := make([]domain.Document, 0, len(l.Data.Children))
	for _, c := range l.Data.Children {
		p := c.Data
		author := p.Author
		if author == "[deleted]" {
			author = ""
		}
		text := p.Selftext
		if p.SelftextHTML != "" {
			if extracted := htmlText(p.SelftextHTML); extracted != "" {
				text = extracted
			}
		}
		doc, err := domain.NewSocialPost(
			p.Title,
			author,
			time.Unix(int64(p.CreatedUTC), 0).UTC().Format(timestampLayout),
			p.NumComments,
			p.Title+" - "+text,
		)
		if err != nil {
			f.log.WithError(err).Warn("skipping post")
			continue
		}
		docs = append(docs, doc)
	}
	f.log.WithField("documents", len(docs)).Debug("listing fetched")
	return docs, nil
}

// htmlText returns the visible text of an HTML fragment, whitespace-collapsed.
func htmlText(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
			b.WriteByte(' ')
		}
	}
}
