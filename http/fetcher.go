package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/profiled"
)

// DefaultFetchTimeout is the default timeout for snapshot requests.
const DefaultFetchTimeout = 10 * time.Second

// Fetcher retrieves saved page snapshots over HTTP so they can be parsed
// without a browser. It does not execute JavaScript.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new snapshot Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch returns the body of the snapshot at url.
// Returns ENOTFOUND for a 404 and EUNAVAILABLE for any other non-200 status.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", profiled.Errorf(profiled.EINVALID, "invalid snapshot URL: %v", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching snapshot: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", profiled.Errorf(profiled.ENOTFOUND, "no snapshot at %s", url)
	case resp.StatusCode != http.StatusOK:
		return "", profiled.Errorf(profiled.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading snapshot: %w", err)
	}

	return string(body), nil
}
