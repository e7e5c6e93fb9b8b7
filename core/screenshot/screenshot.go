// Package screenshot captures full-page images of sampled URLs.
//
// Capture strategies implement core.Screenshotter. A Chain tries them in
// order and stops at the first success; CaptureAll fans a Screenshotter out
// over every sampled page and keeps whatever succeeded.
package screenshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gaurav-prasanna/stylepipe/core"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrNoImage is returned when no strategy produced an image.
var ErrNoImage = errors.New("no screenshot captured")

const maxImageBytes = 32 << 20

// Label returns the display label for a screenshot of rawURL.
func Label(rawURL string) string {
	path := "/"
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		path = u.Path
	}
	return "Full Page: " + path
}

// Chain tries each Screenshotter in order.
type Chain []core.Screenshotter

// Capture returns the first successful capture. When every strategy fails
// the last error is joined with ErrNoImage.
func (c Chain) Capture(ctx context.Context, rawURL string) (*core.Screenshot, error) {
	var errs []error
	for _, s := range c {
		if s == nil {
			continue
		}
		shot, err := s.Capture(ctx, rawURL)
		if err == nil && shot != nil {
			return shot, nil
		}
		if err != nil {
			errs = append(errs, err)
		}
		if ctx.Err() != nil {
			break
		}
	}
	return nil, errors.Join(append([]error{ErrNoImage}, errs...)...)
}

// EndpointCapturer requests images from an HTTP screenshot service that
// answers GET {endpoint}?url=<target> with image bytes.
type EndpointCapturer struct {
	endpoint string
	client   *http.Client
}

// NewEndpoint creates an EndpointCapturer. A nil client gets a 60s timeout.
func NewEndpoint(endpoint string, client *http.Client) *EndpointCapturer {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &EndpointCapturer{endpoint: endpoint, client: client}
}

func (e *EndpointCapturer) requestURL(target string) string {
	sep := "?"
	if strings.Contains(e.endpoint, "?") {
		sep = "&"
	}
	return e.endpoint + sep + "url=" + url.QueryEscape(target)
}

// Capture fetches one screenshot. Non-2xx answers and non-image content
// types are errors; a JSON {"error": ...} body is included in the message.
func (e *EndpointCapturer) Capture(ctx context.Context, target string) (*core.Screenshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.requestURL(target), nil)
	if err != nil {
		return nil, fmt.Errorf("creating screenshot request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting screenshot for %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload struct {
			Error string `json:"error"`
		}
		detail := ""
		if json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&payload) == nil && payload.Error != "" {
			detail = " - " + payload.Error
		}
		return nil, fmt.Errorf("screenshot failed for %s: %d%s", target, resp.StatusCode, detail)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("screenshot service for %s did not return an image (content type %q): %w", target, contentType, ErrNoImage)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("reading screenshot body: %w", err)
	}

	return &core.Screenshot{
		URL:         target,
		Label:       Label(target),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// CaptureAll captures every URL concurrently and returns the successes in
// input order. Failures are logged and dropped; the step itself never fails.
func CaptureAll(ctx context.Context, s core.Screenshotter, urls []string, log logrus.FieldLogger) []core.Screenshot {
	if s == nil || len(urls) == 0 {
		return nil
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	shots := make([]*core.Screenshot, len(urls))
	var g errgroup.Group
	for i, u := range urls {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					log.WithField("url", u).WithField("panic", r).Warn("Screenshot capture panicked")
				}
			}()
			shot, err := s.Capture(ctx, u)
			if err != nil {
				log.WithField("url", u).WithError(err).Warn("Screenshot failed")
				return nil
			}
			shots[i] = shot
			return nil
		})
	}
	_ = g.Wait()

	out := make([]core.Screenshot, 0, len(urls))
	for _, shot := range shots {
		if shot != nil {
			out = append(out, *shot)
		}
	}
	return out
}
