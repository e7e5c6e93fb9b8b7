package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gaurav-prasanna/stylepipe/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcherFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "StylePipe")
		w.Header().Set("Content-Type", "text/css")
		w.Write([]byte(".a{color:red}"))
	}))
	defer srv.Close()

	res, err := New().Fetch(context.Background(), srv.URL+"/site.css")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "text/css", res.ContentType)
	assert.Equal(t, ".a{color:red}", res.Body)
}

func TestHTTPFetcherStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := New().Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
}

func TestHTTPFetcherProxy(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := New(Options{Proxy: srv.URL + "/?"})
	_, err := f.Fetch(context.Background(), "https://example.com/a b")
	require.NoError(t, err)
	assert.Equal(t, "https%3A%2F%2Fexample.com%2Fa+b", gotQuery)
}

type countingFetcher struct {
	calls atomic.Int32
	fail  bool
}

func (c *countingFetcher) Fetch(_ context.Context, url string) (*core.FetchResult, error) {
	c.calls.Add(1)
	if c.fail {
		return nil, errors.New("boom")
	}
	return &core.FetchResult{URL: url, StatusCode: 200, Body: "body"}, nil
}

func TestCachingFetcher(t *testing.T) {
	inner := &countingFetcher{}
	f := NewCaching(inner, time.Minute)

	for i := 0; i < 3; i++ {
		res, err := f.Fetch(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, "body", res.Body)
	}
	assert.Equal(t, int32(1), inner.calls.Load())

	_, err := f.Fetch(context.Background(), "https://example.com/other")
	require.NoError(t, err)
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestCachingFetcherDoesNotCacheErrors(t *testing.T) {
	inner := &countingFetcher{fail: true}
	f := NewCaching(inner, time.Minute)

	_, err := f.Fetch(context.Background(), "https://example.com")
	require.Error(t, err)
	_, err = f.Fetch(context.Background(), "https://example.com")
	require.Error(t, err)
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestRateLimitedFetcherHonorsContext(t *testing.T) {
	inner := &countingFetcher{}
	f := NewRateLimited(inner, 0.001, 1)

	_, err := f.Fetch(context.Background(), "https://example.com")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = f.Fetch(ctx, "https://example.com")
	assert.Error(t, err)
	assert.Equal(t, int32(1), inner.calls.Load())
}
