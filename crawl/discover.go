// Package crawl picks a handful of auxiliary pages worth sampling alongside
// the analyzed page. Links are collected from the page in three tiers
// (navigation, content, everything else), filtered, scored and ranked,
// keeping discovery separate from the extraction pipeline.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/gaurav-prasanna/stylepipe/core"
	"github.com/sirupsen/logrus"
)

const (
	// MaxAuxiliaryPages is how many ranked pages follow the original URL.
	MaxAuxiliaryPages = 3
	// MaxPages bounds the full sampling list.
	MaxPages = MaxAuxiliaryPages + 1
)

type tier struct {
	origin    core.LinkOrigin
	selectors []cascadia.Selector
	score     func(string) int
}

func compileAll(selectors ...string) []cascadia.Selector {
	out := make([]cascadia.Selector, len(selectors))
	for i, s := range selectors {
		out[i] = cascadia.MustCompile(s)
	}
	return out
}

// tiers are visited in order; a URL keeps the tier it was first seen in.
var tiers = []tier{
	{
		origin: core.OriginNavigation,
		selectors: compileAll(
			"nav a[href]", ".navigation a[href]", ".nav a[href]", ".menu a[href]",
			".navbar a[href]", "header a[href]", ".header a[href]",
		),
		score: scoreNavigation,
	},
	{
		origin: core.OriginContent,
		selectors: compileAll(
			"main a[href]", ".main a[href]", ".content a[href]", "article a[href]",
			".hero a[href]", ".featured a[href]", "h1 a[href]", "h2 a[href]", "h3 a[href]",
		),
		score: scoreContent,
	},
	{
		origin:    core.OriginGeneric,
		selectors: compileAll("a[href]"),
		score:     scoreGeneric,
	},
}

// Discover fetches rawURL and returns it followed by up to three ranked
// same-origin pages. It never fails: any error degrades to the original URL.
func Discover(ctx context.Context, fetcher core.Fetcher, rawURL string, log logrus.FieldLogger) (pages []string) {
	normalized := NormalizeInput(rawURL)
	if log == nil {
		log = logrus.StandardLogger()
	}
	entry := log.WithField("url", normalized)

	defer func() {
		if r := recover(); r != nil {
			entry.WithField("panic", r).Warn("Page discovery failed, using main URL only")
			pages = []string{normalized}
		}
	}()

	links, err := discover(ctx, fetcher, normalized)
	if err != nil {
		entry.WithError(err).Warn("Page discovery failed, using main URL only")
		return []string{normalized}
	}

	pages = []string{normalized}
	for _, l := range links {
		pages = append(pages, l.URL)
	}
	entry.WithField("count", len(pages)-1).Debug("Discovered auxiliary pages")
	return pages
}

func discover(ctx context.Context, fetcher core.Fetcher, normalized string) ([]core.DiscoveredLink, error) {
	origin, err := Origin(normalized)
	if err != nil {
		return nil, fmt.Errorf("parsing URL: %w", err)
	}
	if origin.Host == "" {
		return nil, fmt.Errorf("URL has no host: %s", normalized)
	}

	res, err := fetcher.Fetch(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.Body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	return Top(Score(doc, origin, normalized), MaxAuxiliaryPages), nil
}

// Rank returns current followed by up to three ranked auxiliary URLs.
func Rank(doc *goquery.Document, origin *url.URL, current string) []string {
	pages := []string{current}
	for _, l := range Top(Score(doc, origin, current), MaxAuxiliaryPages) {
		pages = append(pages, l.URL)
	}
	return pages
}

// Score collects and scores candidate links in tier order. The result is in
// insertion order and unique by absolute URL.
func Score(doc *goquery.Document, origin *url.URL, current string) []core.DiscoveredLink {
	cands := NewCandidates()
	self := NormalizeURL(current)

	for _, t := range tiers {
		for _, sel := range t.selectors {
			doc.FindMatcher(sel).Each(func(_ int, a *goquery.Selection) {
				text := strings.Join(strings.Fields(a.Text()), " ")
				if text == "" {
					return
				}

				abs := resolveURL(a.AttrOr("href", ""), origin)
				if abs == "" || cands.Seen(abs) {
					return
				}
				cands.Mark(abs)

				if !IsSameOrigin(abs, origin) || NormalizeURL(abs) == self {
					return
				}
				if IsExcludedPath(abs) || IsStaticAsset(abs) {
					return
				}

				cands.Add(core.DiscoveredLink{
					URL:    abs,
					Origin: t.origin,
					Text:   text,
					Score:  t.score(text),
				})
			})
		}
	}
	return cands.All()
}

// Top sorts links by descending score, stable on insertion order, and keeps n.
func Top(links []core.DiscoveredLink, n int) []core.DiscoveredLink {
	sorted := make([]core.DiscoveredLink, len(links))
	copy(sorted, links)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
