package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const defaultUserAgent = "docsearch/1.0"

// Client is a polite HTTP GET client shared by the remote fetchers.
// It throttles requests with a token bucket and retries 429/5xx responses with backoff.
type Client struct {
	http       *http.Client
	limiter    *rate.Limiter
	userAgent  string
	maxRetries int
}

// ClientConfig configures a Client.
type ClientConfig struct {
	Timeout time.Duration
	// MinInterval is the minimum delay between two requests. Zero disables throttling.
	MinInterval time.Duration
	UserAgent   string
	MaxRetries  int
}

// NewClient creates a client using cfg, filling in defaults.
func NewClient(cfg ClientConfig) *Client {
	t := cfg.Timeout
	if t == 0 {
		t = 30 * time.Second
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return &Client{
		http:       &http.Client{Timeout: t},
		limiter:    rate.NewLimiter(limit, 1),
		userAgent:  ua,
		maxRetries: retries,
	}
}

// Get fetches url and returns the response body of a 2xx response.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			if attempt < c.maxRetries && sleep(ctx, retryDelay(attempt)) == nil {
				continue
			}
			return nil, err
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("GET %s: %s", url, resp.Status)
			if attempt == c.maxRetries {
				break
			}
			if err := sleep(ctx, retryAfter(resp.Header.Get("Retry-After"), attempt)); err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode >= 300 {
			_ = resp.Body.Close()
			return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		return body, nil
	}
	return nil, lastErr
}

const maxRetryDelay = 5 * time.Second

func retryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	base := 200 * time.Millisecond
	// exponential backoff capped at maxRetryDelay
	d := base << attempt
	if d > maxRetryDelay || d <= 0 {
		d = maxRetryDelay
	}
	return d
}

// retryAfter honours a Retry-After header in seconds, capped at maxRetryDelay.
func retryAfter(header string, attempt int) time.Duration {
	secs, err := strconv.Atoi(header)
	if err != nil || secs < 0 {
		return retryDelay(attempt)
	}
	if secs >= int(maxRetryDelay/time.Second) {
		return maxRetryDelay
	}
	return time.Duration(secs) * time.Second
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
