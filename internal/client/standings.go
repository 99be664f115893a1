package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"clubsite/backend/internal/metrics"

	"github.com/rs/zerolog/log"
)

// DefaultMaxBodyBytes caps how much of the standings page is read
const DefaultMaxBodyBytes int64 = 4 << 20

var (
	// ErrTimeout matches any FetchError caused by the deadline expiring
	ErrTimeout = errors.New("standings fetch timed out")

	// ErrHTTPStatus matches any FetchError caused by a 4xx/5xx response
	ErrHTTPStatus = errors.New("standings source returned error status")
)

// FetchErrorKind classifies why a fetch failed
type FetchErrorKind int

const (
	FetchTransport FetchErrorKind = iota
	FetchTimeout
	FetchHTTPStatus
)

func (k FetchErrorKind) String() string {
	switch k {
	case FetchTimeout:
		return "timeout"
	case FetchHTTPStatus:
		return "http_status"
	default:
		return "transport"
	}
}

// FetchError is returned by Fetcher.Fetch for every failure
type FetchError struct {
	Kind       FetchErrorKind
	StatusCode int // set only for FetchHTTPStatus
	URL        string
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchHTTPStatus:
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	case FetchTimeout:
		return fmt.Sprintf("fetch %s: timed out: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is lets callers use errors.Is(err, ErrTimeout) and errors.Is(err, ErrHTTPStatus)
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrTimeout:
		return e.Kind == FetchTimeout
	case ErrHTTPStatus:
		return e.Kind == FetchHTTPStatus
	}
	return false
}

// Page is the raw standings page as served. Body is not decoded;
// ContentType carries any charset the server declared.
type Page struct {
	Body        []byte
	ContentType string
}

// FetcherConfig configures a Fetcher
type FetcherConfig struct {
	URL          string
	UserAgent    string
	Timeout      time.Duration
	MaxBodyBytes int64
}

// Fetcher downloads the raw HTML of the standings page.
// It does not retry; the next scheduled run is the retry.
type Fetcher struct {
	url          string
	userAgent    string
	timeout      time.Duration
	maxBodyBytes int64
	httpClient   *http.Client
}

// NewFetcher creates a Fetcher for a single fixed URL
func NewFetcher(cfg FetcherConfig) *Fetcher {
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	return &Fetcher{
		url:          cfg.URL,
		userAgent:    cfg.UserAgent,
		timeout:      cfg.Timeout,
		maxBodyBytes: maxBody,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// URL returns the page this fetcher downloads
func (f *Fetcher) URL() string {
	return f.url
}

// Fetch performs one GET of the standings page
func (f *Fetcher) Fetch(ctx context.Context) (*Page, error) {
	start := time.Now()

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	page, err := f.do(ctx)
	if err != nil {
		var fe *FetchError
		status := "transport_error"
		if errors.As(err, &fe) {
			status = fe.Kind.String() + "_error"
		}
		metrics.RecordFetch(status, time.Since(start))
		return nil, err
	}

	metrics.RecordFetch("success", time.Since(start))
	log.Debug().
		Str("url", f.url).
		Int("size", len(page.Body)).
		Str("content_type", page.ContentType).
		Dur("duration", time.Since(start)).
		Msg("Standings page fetched")

	return page, nil
}

func (f *Fetcher) do(ctx context.Context) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, f.fail(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	log.Debug().
		Str("url", f.url).
		Str("method", req.Method).
		Msg("Fetching standings page")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, f.fail(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		// drain a little so the connection can be reused
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return nil, &FetchError{
			Kind:       FetchHTTPStatus,
			StatusCode: resp.StatusCode,
			URL:        f.url,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes+1))
	if err != nil {
		return nil, f.fail(fmt.Errorf("failed to read response body: %w", err))
	}
	if int64(len(body)) > f.maxBodyBytes {
		return nil, f.fail(fmt.Errorf("response body exceeds %d bytes", f.maxBodyBytes))
	}

	return &Page{Body: body, ContentType: resp.Header.Get("Content-Type")}, nil
}

// fail classifies err as a timeout or a transport failure
func (f *Fetcher) fail(err error) *FetchError {
	kind := FetchTransport
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		kind = FetchTimeout
	}
	return &FetchError{Kind: kind, URL: f.url, Err: err}
}
