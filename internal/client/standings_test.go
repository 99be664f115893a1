package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/91.0"

func newTestFetcher(url string, timeout time.Duration) *Fetcher {
	return NewFetcher(FetcherConfig{
		URL:       url,
		UserAgent: testUserAgent,
		Timeout:   timeout,
	})
}

func TestFetch_Success(t *testing.T) {
	var gotUA, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><table></table></body></html>"))
	}))
	defer server.Close()

	f := newTestFetcher(server.URL, 2*time.Second)
	page, err := f.Fetch(context.Background())
	require.NoError(t, err)

	assert.Contains(t, string(page.Body), "<table>")
	assert.Equal(t, "text/html; charset=utf-8", page.ContentType)
	assert.Equal(t, testUserAgent, gotUA)
	assert.Contains(t, gotAccept, "text/html")
}

func TestFetch_KeepsBodyUndecoded(t *testing.T) {
	// "Лига" in windows-1251
	raw := []byte{0xcb, 0xe8, 0xe3, 0xe0}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=windows-1251")
		_, _ = w.Write(raw)
	}))
	defer server.Close()

	page, err := newTestFetcher(server.URL, 2*time.Second).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, raw, page.Body)
	assert.Equal(t, "text/html; charset=windows-1251", page.ContentType)
}

func TestFetch_HTTPStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusServiceUnavailable} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte("nope"))
		}))

		f := newTestFetcher(server.URL, 2*time.Second)
		page, err := f.Fetch(context.Background())
		server.Close()

		require.Error(t, err)
		assert.Nil(t, page)
		assert.True(t, errors.Is(err, ErrHTTPStatus), "status %d", status)
		assert.False(t, errors.Is(err, ErrTimeout))

		var fe *FetchError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, FetchHTTPStatus, fe.Kind)
		assert.Equal(t, status, fe.StatusCode)
		assert.Equal(t, server.URL, fe.URL)
	}
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	f := newTestFetcher(server.URL, 50*time.Millisecond)
	_, err := f.Fetch(context.Background())
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrTimeout), "got %v", err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, FetchTimeout, fe.Kind)
}

func TestFetch_Transport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := server.URL
	server.Close()

	f := newTestFetcher(url, 2*time.Second)
	_, err := f.Fetch(context.Background())
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, FetchTransport, fe.Kind)
	assert.False(t, errors.Is(err, ErrHTTPStatus))
	assert.False(t, errors.Is(err, ErrTimeout))
}

func TestFetch_BodyTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 2048)))
	}))
	defer server.Close()

	f := NewFetcher(FetcherConfig{
		URL:          server.URL,
		UserAgent:    testUserAgent,
		Timeout:      2 * time.Second,
		MaxBodyBytes: 1024,
	})
	_, err := f.Fetch(context.Background())
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, FetchTransport, fe.Kind)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestFetch_NoRetry(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	f := newTestFetcher(server.URL, 2*time.Second)
	_, err := f.Fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestFetchErrorKind_String(t *testing.T) {
	assert.Equal(t, "timeout", FetchTimeout.String())
	assert.Equal(t, "http_status", FetchHTTPStatus.String())
	assert.Equal(t, "transport", FetchTransport.String())
}
