// Package transport ships the fetchers and shapers used to load remote entries.
// Every failure they produce is a TransportFailure unless the payload decoded
// but held invalid entries, in which case the validation failure is returned.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/goliatone/go-accordion/internal/logging"
	"github.com/goliatone/go-accordion/internal/validation"
	"github.com/goliatone/go-accordion/pkg/interfaces"
)

const (
	defaultMaxTries        uint = 3
	defaultInitialInterval      = 200 * time.Millisecond
	maxPayloadBytes             = 4 << 20
)

// ErrPayloadTooLarge reports a response body above the fetcher byte limit.
var ErrPayloadTooLarge = errors.New("payload too large")

// FetcherFunc adapts a function into an interfaces.Fetcher.
type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

// HTTPFetcher performs JSON GET requests. Network errors, 429 and 5xx responses
// are retried with exponential backoff; other 4xx responses fail immediately.
type HTTPFetcher struct {
	Client          *http.Client
	Header          http.Header
	MaxTries        uint
	InitialInterval time.Duration
	MaxElapsed      time.Duration
	Timeout         time.Duration
	// MaxBytes caps the response body. Zero means 4 MiB.
	MaxBytes        int64
	Logger          interfaces.Logger
}

var _ interfaces.Fetcher = (*HTTPFetcher)(nil)

type statusError struct {
	code int
	url  string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.url, e.code)
}

func (f *HTTPFetcher) Fetch(ctx context.Context, target string) ([]byte, error) {
	if strings.TrimSpace(target) == "" {
		return nil, validation.MissingArgument("url")
	}
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	logger := f.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = maxPayloadBytes
	}
	operation := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		for key, values := range f.Header {
			for _, value := range values {
				req.Header.Add(key, value)
			}
		}

		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, backoff.Permanent(ctx.Err())
			}
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
		if err != nil {
			return nil, err
		}
		switch {
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return nil, &statusError{code: resp.StatusCode, url: target}
		case resp.StatusCode >= 400:
			return nil, backoff.Permanent(&statusError{code: resp.StatusCode, url: target})
		case int64(len(body)) > limit:
			return nil, backoff.Permanent(fmt.Errorf("%w: %s exceeds %d bytes", ErrPayloadTooLarge, target, limit))
		}
		return body, nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = f.InitialInterval
	if policy.InitialInterval <= 0 {
		policy.InitialInterval = defaultInitialInterval
	}
	maxTries := f.MaxTries
	if maxTries == 0 {
		maxTries = defaultMaxTries
	}
	opts := []backoff.RetryOption{
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(maxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			logger.Warn("transport.fetch.retry", "url", target, "error", err, "next", next)
		}),
	}
	if f.MaxElapsed > 0 {
		opts = append(opts, backoff.WithMaxElapsedTime(f.MaxElapsed))
	}

	body, err := backoff.Retry(ctx, operation, opts...)
	if err != nil {
		logger.Error("transport.fetch.failed", "url", target, "error", err)
		return nil, validation.TransportFailure(err, fmt.Sprintf("fetch %s failed", target))
	}
	logger.Debug("transport.fetch.completed", "url", target, "bytes", len(body))
	return body, nil
}

// FileFetcher reads payloads from disk. URLs may be file:// URLs or plain paths;
// relative paths resolve against Root.
type FileFetcher struct {
	Root string
}

var _ interfaces.Fetcher = FileFetcher{}

func (f FileFetcher) Fetch(ctx context.Context, target string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, validation.TransportFailure(err, fmt.Sprintf("read %s cancelled", target))
	}
	path := strings.TrimPrefix(strings.TrimSpace(target), "file://")
	if path == "" {
		return nil, validation.MissingArgument("url")
	}
	if !filepath.IsAbs(path) && f.Root != "" {
		path = filepath.Join(f.Root, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, validation.TransportFailure(err, fmt.Sprintf("read %s failed", target))
	}
	return data, nil
}

// Mux dispatches on the URL scheme. URLs without a scheme use the "file" entry.
type Mux struct {
	mu       sync.RWMutex
	fetchers map[string]interfaces.Fetcher
}

// NewMux returns a mux serving http, https and file URLs.
func NewMux(httpFetcher interfaces.Fetcher, fileFetcher interfaces.Fetcher) *Mux {
	mux := &Mux{fetchers: make(map[string]interfaces.Fetcher)}
	if httpFetcher != nil {
		mux.Handle("http", httpFetcher)
		mux.Handle("https", httpFetcher)
	}
	if fileFetcher != nil {
		mux.Handle("file", fileFetcher)
	}
	return mux
}

// Handle registers fetcher for scheme, replacing any previous registration.
func (m *Mux) Handle(scheme string, fetcher interfaces.Fetcher) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fetchers == nil {
		m.fetchers = make(map[string]interfaces.Fetcher)
	}
	m.fetchers[strings.ToLower(scheme)] = fetcher
}

func (m *Mux) Fetch(ctx context.Context, target string) ([]byte, error) {
	scheme := "file"
	if parsed, err := url.Parse(target); err == nil && parsed.Scheme != "" {
		scheme = strings.ToLower(parsed.Scheme)
	}
	m.mu.RLock()
	fetcher := m.fetchers[scheme]
	m.mu.RUnlock()
	if fetcher == nil {
		return nil, validation.TransportFailure(nil, fmt.Sprintf("no fetcher registered for scheme %q", scheme))
	}
	return fetcher.Fetch(ctx, target)
}
