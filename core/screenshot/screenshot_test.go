package screenshot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gaurav-prasanna/stylepipe/core"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\nfake")

func screenshotServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("url") {
		case "https://example.com/ok":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(pngBytes)
		case "https://example.com/html":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html></html>"))
		default:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"error":"upstream timed out"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEndpointCapture(t *testing.T) {
	srv := screenshotServer(t)
	c := NewEndpoint(srv.URL+"/api/screenshot", srv.Client())

	shot, err := c.Capture(context.Background(), "https://example.com/ok")
	require.NoError(t, err)
	assert.Equal(t, "image/png", shot.ContentType)
	assert.Equal(t, pngBytes, shot.Data)
	assert.Equal(t, "Full Page: /ok", shot.Label)
}

func TestEndpointCaptureErrors(t *testing.T) {
	srv := screenshotServer(t)
	c := NewEndpoint(srv.URL, srv.Client())

	_, err := c.Capture(context.Background(), "https://example.com/html")
	assert.ErrorIs(t, err, ErrNoImage)

	_, err = c.Capture(context.Background(), "https://example.com/broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "upstream timed out")
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Full Page: /", Label("https://example.com"))
	assert.Equal(t, "Full Page: /pricing", Label("https://example.com/pricing?x=1"))
}

type fakeCapturer struct {
	fail  map[string]bool
	calls atomic.Int32
}

func (f *fakeCapturer) Capture(_ context.Context, u string) (*core.Screenshot, error) {
	f.calls.Add(1)
	if f.fail[u] || f.fail["*"] {
		return nil, errors.New("capture failed")
	}
	return &core.Screenshot{URL: u, Label: Label(u), ContentType: "image/png"}, nil
}

func TestChainFirstSuccessWins(t *testing.T) {
	first := &fakeCapturer{fail: map[string]bool{"*": true}}
	second := &fakeCapturer{}
	third := &fakeCapturer{}

	shot, err := Chain{first, second, third}.Capture(context.Background(), "https://example.com/")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/", shot.URL)
	assert.EqualValues(t, 1, first.calls.Load())
	assert.EqualValues(t, 1, second.calls.Load())
	assert.EqualValues(t, 0, third.calls.Load())
}

func TestChainExhausted(t *testing.T) {
	_, err := Chain{&fakeCapturer{fail: map[string]bool{"*": true}}}.Capture(context.Background(), "https://example.com/")
	assert.ErrorIs(t, err, ErrNoImage)

	_, err = Chain{}.Capture(context.Background(), "https://example.com/")
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestCaptureAllKeepsSuccessesInOrder(t *testing.T) {
	logger, hook := test.NewNullLogger()
	c := &fakeCapturer{fail: map[string]bool{"https://example.com/b": true}}

	shots := CaptureAll(context.Background(), c, []string{
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/c",
	}, logger)

	require.Len(t, shots, 2)
	assert.Equal(t, "https://example.com/a", shots[0].URL)
	assert.Equal(t, "https://example.com/c", shots[1].URL)
	assert.Len(t, hook.AllEntries(), 1)
}

func TestCaptureAllNil(t *testing.T) {
	assert.Empty(t, CaptureAll(context.Background(), nil, []string{"https://example.com"}, nil))
}
