// Package analyze orchestrates one extraction run:
// fetch → collect CSS → extract tokens → clean and dedupe markup → screenshots.
//
// The Analyzer owns no state between runs; every accumulator is created
// inside Analyze.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/stylepipe/core"
	"github.com/gaurav-prasanna/stylepipe/core/cssparse"
	"github.com/gaurav-prasanna/stylepipe/core/dedupe"
	"github.com/gaurav-prasanna/stylepipe/core/extract"
	"github.com/gaurav-prasanna/stylepipe/core/screenshot"
	"github.com/gaurav-prasanna/stylepipe/core/tokens"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxConcurrentFetches bounds parallel stylesheet downloads.
const DefaultMaxConcurrentFetches = 8

// ErrNoURLs is returned when Analyze is called without a URL.
var ErrNoURLs = errors.New("no URL to analyze")

// AnalyzeError reports which stage of a run failed.
type AnalyzeError struct {
	Stage string
	URL   string
	Err   error
}

func (e *AnalyzeError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Stage, e.URL, e.Err)
}

func (e *AnalyzeError) Unwrap() error { return e.Err }

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger used for warnings and progress.
func WithLogger(log logrus.FieldLogger) Option {
	return func(a *Analyzer) {
		if log != nil {
			a.log = log
		}
	}
}

// WithClassPrefix sets the prefix of generated inline-style classes.
func WithClassPrefix(prefix string) Option {
	return func(a *Analyzer) { a.classPrefix = prefix }
}

// WithMaxConcurrentFetches bounds parallel stylesheet downloads.
func WithMaxConcurrentFetches(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxFetches = n
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// Analyzer runs the extraction pipeline.
type Analyzer struct {
	fetcher     core.Fetcher
	shots       core.Screenshotter
	extractor   *extract.HTMLExtractor
	log         logrus.FieldLogger
	classPrefix string
	maxFetches  int
	now         func() time.Time
}

// New creates an Analyzer. shots may be nil to skip screenshots.
func New(fetcher core.Fetcher, shots core.Screenshotter, opts ...Option) *Analyzer {
	a := &Analyzer{
		fetcher:     fetcher,
		shots:       shots,
		extractor:   extract.New(),
		log:         logrus.StandardLogger(),
		classPrefix: dedupe.DefaultPrefix,
		maxFetches:  DefaultMaxConcurrentFetches,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze extracts the design system of urls[0]. Every URL in urls is
// screenshotted. A failed main-page fetch aborts the run with no result.
func (a *Analyzer) Analyze(ctx context.Context, urls []string) (*core.ExtractionResult, error) {
	if len(urls) == 0 || strings.TrimSpace(urls[0]) == "" {
		return nil, &AnalyzeError{Stage: "validate", Err: ErrNoURLs}
	}
	pageURL := urls[0]
	log := a.log.WithField("url", pageURL)

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, &AnalyzeError{Stage: "validate", URL: pageURL, Err: err}
	}

	log.Debug("Fetching page")
	page, err := a.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, &AnalyzeError{Stage: "fetch", URL: pageURL, Err: err}
	}

	doc, err := extract.Parse(page.Body)
	if err != nil {
		return nil, &AnalyzeError{Stage: "parse", URL: pageURL, Err: err}
	}

	// Screenshots run alongside the CSS work.
	var (
		shots   []core.Screenshot
		shotsWG sync.WaitGroup
	)
	if a.shots != nil {
		shotsWG.Add(1)
		go func() {
			defer shotsWG.Done()
			shots = screenshot.CaptureAll(ctx, a.shots, urls, a.log)
		}()
	}

	styles := a.collectStyles(ctx, doc, base)
	inline := inlineStyles(doc)
	log.WithField("count", len(styles.sources)).Debug("Collected stylesheets")

	allCSS := styles.css + strings.Join(inline, ";")
	summary := tokens.Summarize(tokens.Extract(allCSS))
	layout := tokens.DetectLayout(cssparse.ParseRules(styles.css), inline)
	vars := tokens.ResolveVariables(allCSS)

	deduper := dedupe.New(a.classPrefix)
	cleanHTML := a.cleanMarkup(doc, deduper, log)

	shotsWG.Wait()

	return &core.ExtractionResult{
		PageTitle:          extract.Title(doc),
		PageURL:            pageURL,
		StylesheetCount:    len(styles.sources),
		InlineStyleCount:   len(inline),
		InaccessibleSheets: styles.inaccessible,
		ColorPalette:       summary.Colors,
		Typography:         summary.Typography,
		SpacingScale:       summary.Spacing,
		LayoutPatterns:     layout,
		CSSVariables:       vars.Entries(),
		CSSRules:           styles.sources,
		HeadContent:        extract.HeadContent(doc),
		CleanHTML:          cleanHTML,
		GeneratedInlineCSS: deduper.CSS(),
		StyleClasses:       deduper.Classes(),
		Screenshots:        shots,
		ScreenshotPalette:  screenshot.Palette(shots, log),
		SampledPages:       append([]string(nil), urls...),
		AnalyzedAt:         a.now().UTC(),
	}, nil
}

// collected is the fan-in of the stylesheet step.
type collected struct {
	css          string
	sources      []core.StylesheetSource
	inaccessible int
}

// collectStyles concatenates <style> blocks and every fetchable linked
// stylesheet. Sheets are appended in link order regardless of which
// download finishes first.
func (a *Analyzer) collectStyles(ctx context.Context, doc *goquery.Document, base *url.URL) collected {
	var css strings.Builder
	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		css.WriteString(s.Text())
		css.WriteString("\n")
	})

	var hrefs []string
	doc.Find(`link[rel="stylesheet"]`).Each(func(_ int, s *goquery.Selection) {
		if href := strings.TrimSpace(s.AttrOr("href", "")); href != "" {
			hrefs = append(hrefs, href)
		}
	})

	var (
		mu           sync.Mutex
		inaccessible int
		sheets       = make([]*core.StylesheetSource, len(hrefs))
	)
	fail := func(href string, err error) {
		a.log.WithField("url", href).WithError(err).Warn("Stylesheet inaccessible")
		mu.Lock()
		inaccessible++
		mu.Unlock()
	}

	var g errgroup.Group
	g.SetLimit(a.maxFetches)
	for i, href := range hrefs {
		g.Go(func() error {
			ref, err := base.Parse(href)
			if err != nil {
				fail(href, err)
				return nil
			}
			res, err := a.fetcher.Fetch(ctx, ref.String())
			if err != nil {
				fail(ref.String(), err)
				return nil
			}
			sheets[i] = &core.StylesheetSource{URL: ref.String(), Content: res.Body}
			return nil
		})
	}
	_ = g.Wait()

	out := collected{inaccessible: inaccessible}
	for _, sheet := range sheets {
		if sheet == nil {
			continue
		}
		css.WriteString(sheet.Content)
		css.WriteString("\n")
		out.sources = append(out.sources, core.StylesheetSource{
			URL:     sheet.URL,
			Content: core.Truncate(sheet.Content, core.CSSTruncateLength, core.CSSTruncatedMarker),
		})
	}
	out.css = css.String()
	return out
}

// inlineStyles returns every non-empty style attribute in document order.
func inlineStyles(doc *goquery.Document) []string {
	var out []string
	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		if v := s.AttrOr("style", ""); v != "" {
			out = append(out, v)
		}
	})
	return out
}

// cleanMarkup returns the cleaned, deduplicated and truncated body markup.
func (a *Analyzer) cleanMarkup(doc *goquery.Document, d *dedupe.Deduper, log logrus.FieldLogger) string {
	content, err := a.extractor.Extract(doc)
	if err != nil {
		log.WithError(err).Warn("No body element, using placeholder")
		return extract.NoContentPlaceholder
	}

	rewritten := d.Rewrite(content)
	log.WithField("count", rewritten.Processed).Debug("Collapsed inline styles")

	out, err := extract.Serialize(rewritten.Root)
	if err != nil {
		log.WithError(err).Warn("Serializing cleaned markup failed")
		return extract.NoContentPlaceholder
	}
	return out
}
