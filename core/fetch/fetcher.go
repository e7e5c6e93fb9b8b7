// Package fetch implements the Fetcher interface.
// It performs HTTP GET requests with sensible defaults for web scraping,
// optionally routed through a content-fetching proxy.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gaurav-prasanna/stylepipe/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "StylePipe/1.0 (https://github.com/gaurav-prasanna/stylepipe)"
	maxBodyBytes     = 16 << 20
)

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d (%s) for %s", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// Options configures an HTTPFetcher.
type Options struct {
	// Proxy is a prefix the escaped target URL is appended to,
	// e.g. "https://corsproxy.io/?". Empty means direct requests.
	Proxy     string
	Timeout   time.Duration
	UserAgent string
	Client    *http.Client
}

// HTTPFetcher fetches web pages and stylesheets via HTTP.
type HTTPFetcher struct {
	client    *http.Client
	proxy     string
	userAgent string
}

// New creates an HTTPFetcher with a sensible timeout.
func New(opts ...Options) *HTTPFetcher {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUserAgent
	}
	client := o.Client
	if client == nil {
		client = &http.Client{Timeout: o.Timeout}
	}
	return &HTTPFetcher{
		client:    client,
		proxy:     o.Proxy,
		userAgent: o.UserAgent,
	}
}

// requestURL returns the URL actually requested for target.
func (f *HTTPFetcher) requestURL(target string) string {
	if f.proxy == "" {
		return target
	}
	return f.proxy + url.QueryEscape(target)
}

// Fetch retrieves the content of the given URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, target string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.requestURL(target), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/css;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: target, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &core.FetchResult{
		URL:         target,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        string(body),
	}, nil
}
