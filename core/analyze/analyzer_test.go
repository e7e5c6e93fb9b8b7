package analyze

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gaurav-prasanna/stylepipe/core"
	"github.com/gaurav-prasanna/stylepipe/core/fetch"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// site serves path → body; unknown paths are 404.
func site(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if strings.HasSuffix(r.URL.Path, ".css") {
			w.Header().Set("Content-Type", "text/css")
		} else {
			w.Header().Set("Content-Type", "text/html")
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newAnalyzer(t *testing.T, srv *httptest.Server, shots core.Screenshotter, opts ...Option) *Analyzer {
	t.Helper()
	logger, _ := test.NewNullLogger()
	opts = append([]Option{WithLogger(logger)}, opts...)
	return New(fetch.New(fetch.Options{Client: srv.Client()}), shots, opts...)
}

func TestAnalyzeSampleStylesheet(t *testing.T) {
	srv := site(t, map[string]string{
		"/": `<html><head><title>Sample</title>
<style>.a{color:#fff;margin:10px 0;} .b{display:flex;justify-content:center;}</style>
</head><body><div class="a">x</div></body></html>`,
	})

	res, err := newAnalyzer(t, srv, nil).Analyze(context.Background(), []string{srv.URL + "/"})
	require.NoError(t, err)

	assert.Equal(t, "Sample", res.PageTitle)
	assert.Equal(t, []core.FrequencyEntry{{Value: "#fff", Count: 1}}, res.ColorPalette)
	assert.Contains(t, res.SpacingScale, core.FrequencyEntry{Value: "10px", Count: 1})
	for _, e := range res.SpacingScale {
		assert.NotEqual(t, "0", e.Value)
	}

	require.Len(t, res.LayoutPatterns.Flex, 1)
	assert.Equal(t, ".b", res.LayoutPatterns.Flex[0].Selector)
	assert.Contains(t, res.LayoutPatterns.Flex[0].Properties, "justify-content: center")
	assert.Empty(t, res.LayoutPatterns.Grid)
}

func TestAnalyzeStylesheets(t *testing.T) {
	srv := site(t, map[string]string{
		"/": `<html><head>
<link rel="stylesheet" href="/a.css">
<link rel="stylesheet" href="/missing.css">
<link rel="stylesheet" href="/b.css">
<link rel="icon" href="/favicon.ico">
</head><body></body></html>`,
		"/a.css": `:root { --brand: #112233; } .a { color: var(--brand); }`,
		"/b.css": `:root { --brand: #445566; --gap: 8px; } .grid { display: grid; gap: var(--gap); }`,
	})

	res, err := newAnalyzer(t, srv, nil, WithMaxConcurrentFetches(1)).Analyze(context.Background(), []string{srv.URL + "/"})
	require.NoError(t, err)

	assert.Equal(t, 2, res.StylesheetCount)
	assert.Equal(t, 1, res.InaccessibleSheets)
	require.Len(t, res.CSSRules, 2)
	assert.Equal(t, srv.URL+"/a.css", res.CSSRules[0].URL)
	assert.Equal(t, srv.URL+"/b.css", res.CSSRules[1].URL)

	assert.Equal(t, []core.CSSVariable{
		{Name: "--brand", Value: "#445566"},
		{Name: "--gap", Value: "8px"},
	}, res.CSSVariables)

	require.Len(t, res.LayoutPatterns.Grid, 1)
	assert.Equal(t, ".grid", res.LayoutPatterns.Grid[0].Selector)
}

func TestAnalyzeCollapsesInlineStyles(t *testing.T) {
	srv := site(t, map[string]string{
		"/": `<html><body>
<div style="color: red; margin: 4px"><p style="margin:4px;color:red">a</p></div>
<span class="x" style="display: flex; gap: 2px">b</span>
<em style=" ; ">c</em>
<script>var x = 1;</script>
</body></html>`,
	})

	res, err := newAnalyzer(t, srv, nil, WithClassPrefix("st")).Analyze(context.Background(), []string{srv.URL})
	require.NoError(t, err)

	assert.Equal(t, 4, res.InlineStyleCount)
	assert.NotContains(t, res.CleanHTML, "style=")
	assert.NotContains(t, res.CleanHTML, "<script")
	assert.Contains(t, res.CleanHTML, `<div class="st-1">`)
	assert.Contains(t, res.CleanHTML, `<p class="st-1">`)
	assert.Contains(t, res.CleanHTML, `class="x st-2"`)

	assert.Equal(t, ".st-1 { color: red; margin: 4px; }\n.st-2 { display: flex; gap: 2px; }", res.GeneratedInlineCSS)
	assert.Len(t, res.StyleClasses, 2)

	require.Len(t, res.LayoutPatterns.Flex, 1)
	assert.Equal(t, "Inline Style #3", res.LayoutPatterns.Flex[0].Selector)
	assert.Contains(t, res.SpacingScale, core.FrequencyEntry{Value: "4px", Count: 2})
}

func TestAnalyzeTruncates(t *testing.T) {
	big := strings.Repeat("a", core.HTMLTruncateLength+10)
	srv := site(t, map[string]string{
		"/":        `<html><head><link rel="stylesheet" href="/big.css"></head><body><p>` + big + `</p></body></html>`,
		"/big.css": ".x{color:red}" + strings.Repeat(" ", core.CSSTruncateLength),
	})

	res, err := newAnalyzer(t, srv, nil).Analyze(context.Background(), []string{srv.URL})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(res.CleanHTML, core.HTMLTruncatedMarker))
	require.Len(t, res.CSSRules, 1)
	assert.True(t, strings.HasSuffix(res.CSSRules[0].Content, core.CSSTruncatedMarker))
}

func TestAnalyzeMainFetchFailure(t *testing.T) {
	srv := site(t, map[string]string{})

	res, err := newAnalyzer(t, srv, nil).Analyze(context.Background(), []string{srv.URL + "/gone"})
	require.Error(t, err)
	assert.Nil(t, res)

	var aerr *AnalyzeError
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, "fetch", aerr.Stage)

	var serr *fetch.StatusError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusNotFound, serr.StatusCode)
}

func TestAnalyzeNoURL(t *testing.T) {
	srv := site(t, nil)
	_, err := newAnalyzer(t, srv, nil).Analyze(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoURLs)
}

type fakeShots struct{ fail string }

func (f fakeShots) Capture(_ context.Context, u string) (*core.Screenshot, error) {
	if u == f.fail {
		return nil, errors.New("no image")
	}
	return &core.Screenshot{URL: u, Label: "shot", ContentType: "image/png", Data: []byte{1}}, nil
}

func TestAnalyzeScreenshotsAndClock(t *testing.T) {
	srv := site(t, map[string]string{"/": "<html><body></body></html>"})
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	urls := []string{srv.URL + "/", srv.URL + "/about", srv.URL + "/pricing"}

	res, err := newAnalyzer(t, srv, fakeShots{fail: srv.URL + "/about"}, WithClock(func() time.Time { return fixed })).
		Analyze(context.Background(), urls)
	require.NoError(t, err)

	require.Len(t, res.Screenshots, 2)
	assert.Equal(t, srv.URL+"/", res.Screenshots[0].URL)
	assert.Equal(t, srv.URL+"/pricing", res.Screenshots[1].URL)
	assert.Equal(t, urls, res.SampledPages)
	assert.Equal(t, fixed, res.AnalyzedAt)
}
