package crawler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"

	"go-seo-analyzer/pkg/models"
)

// ErrBodyTooLarge is returned when a response exceeds the configured body limit.
var ErrBodyTooLarge = errors.New("response body too large")

// ErrDecode is returned when a body cannot be converted to UTF-8.
var ErrDecode = errors.New("cannot decode body")

const defaultMaxBodyBytes = 10 << 20

// Fetcher retrieves one page.
type Fetcher interface {
	Fetch(ctx context.Context, targetURL string) (*models.RawPage, error)
}

// HTTPFetcher issues a single GET per page with net/http.
type HTTPFetcher struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
	robots       *RobotsGate
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithUserAgent sets the User-Agent header. Empty keeps the client default.
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) {
		f.userAgent = ua
	}
}

func WithMaxBodyBytes(n int64) Option {
	return func(f *HTTPFetcher) {
		if n > 0 {
			f.maxBodyBytes = n
		}
	}
}

// WithRobots makes every fetch consult robots.txt first.
func WithRobots(gate *RobotsGate) Option {
	return func(f *HTTPFetcher) {
		f.robots = gate
	}
}

// WithTransport replaces the client transport, keeping the timeout.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *HTTPFetcher) {
		f.client.Transport = rt
	}
}

func NewHTTPFetcher(timeout time.Duration, opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client:       &http.Client{Timeout: timeout},
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Client returns the underlying client so helpers (robots.txt) share its settings.
func (f *HTTPFetcher) Client() *http.Client {
	return f.client
}

func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL string) (*models.RawPage, error) {
	if f.robots != nil {
		if err := f.robots.Check(ctx, targetURL); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, err
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(raw)) > f.maxBodyBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, f.maxBodyBytes)
	}
	loadTime := time.Since(start)

	contentType := resp.Header.Get("Content-Type")
	body, err := toUTF8(raw, contentType)
	if err != nil {
		return nil, err
	}

	return &models.RawPage{
		URL:         targetURL,
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        body,
		LoadTime:    loadTime,
	}, nil
}

// toUTF8 decodes raw using the charset from contentType or, failing that, the
// document's own <meta charset>.
func toUTF8(raw []byte, contentType string) ([]byte, error) {
	r, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return body, nil
}
