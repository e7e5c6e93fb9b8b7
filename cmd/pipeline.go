package cmd

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gaurav-prasanna/stylepipe/core"
	"github.com/gaurav-prasanna/stylepipe/core/config"
	"github.com/gaurav-prasanna/stylepipe/core/fetch"
	"github.com/gaurav-prasanna/stylepipe/core/screenshot"
	"github.com/gaurav-prasanna/stylepipe/crawl"
)

// newFetcher builds the HTTP fetcher with optional rate limiting, wrapped
// in a cache so discovery and analysis share the main page download.
func newFetcher(c *config.Config) core.Fetcher {
	var f core.Fetcher = fetch.New(fetch.Options{
		Proxy:   c.Fetch.ProxyURL,
		Timeout: c.Timeout(),
	})
	if c.Fetch.RateLimit > 0 {
		f = fetch.NewRateLimited(f, c.Fetch.RateLimit, c.Fetch.MaxConcurrent)
	}
	return fetch.NewCaching(f, c.CacheTTL())
}

// newScreenshotter assembles the capture chain for the configured browser
// mode. It returns nil when no strategy is available. The returned func
// releases the browser and is always safe to call.
func newScreenshotter(c *config.Config) (core.Screenshotter, func()) {
	var (
		chain   screenshot.Chain
		browser *screenshot.BrowserCapturer
	)

	var endpoint core.Screenshotter
	if c.Screenshot.API != "" {
		endpoint = screenshot.NewEndpoint(c.Screenshot.API, &http.Client{Timeout: 2 * c.Timeout()})
	}
	if c.Screenshot.Browser != config.BrowserOff {
		browser = screenshot.NewBrowser(c.Timeout())
	}

	switch c.Screenshot.Browser {
	case config.BrowserOn:
		chain = append(chain, browser)
		if endpoint != nil {
			chain = append(chain, endpoint)
		}
	case config.BrowserOff:
		if endpoint != nil {
			chain = append(chain, endpoint)
		}
	default:
		if endpoint != nil {
			chain = append(chain, endpoint)
		}
		chain = append(chain, browser)
	}

	release := func() {
		if browser != nil {
			browser.Close()
		}
	}
	if len(chain) == 0 {
		return nil, release
	}
	return chain, release
}

// parseTarget normalizes user input into an absolute http(s) URL.
func parseTarget(raw string) (string, error) {
	normalized := crawl.NormalizeInput(raw)
	parsed, err := url.Parse(normalized)
	if err != nil || parsed.Host == "" {
		return "", fmt.Errorf("invalid URL: %s (e.g. https://example.com)", raw)
	}
	return normalized, nil
}
