package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	skerrors "github.com/vnykmshr/shellkit/pkg/common/errors"
	"github.com/vnykmshr/shellkit/pkg/common/validation"
)

// DefaultMaxBytes caps the size of a fetched resource.
const DefaultMaxBytes = 8 << 20

// ErrTooLarge is returned when a response body exceeds HTTPConfig.MaxBytes.
var ErrTooLarge = errors.New("resource exceeds size limit")

// Fetcher retrieves the resource at url. Implementations must honor ctx.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Resource, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) (*Resource, error)

// Fetch calls f(ctx, url).
func (f FetcherFunc) Fetch(ctx context.Context, url string) (*Resource, error) {
	return f(ctx, url)
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// HTTPConfig holds configuration for an HTTPFetcher.
type HTTPConfig struct {
	// Client performs requests. If nil, a client without timeout is used; the
	// loader's context bounds each request instead.
	Client *http.Client

	// MaxBytes caps the body size (default: 8 MiB).
	MaxBytes int64

	// UserAgent is sent when non-empty.
	UserAgent string

	// Header is added to every request.
	Header http.Header
}

// HTTPFetcher fetches resources with HTTP GET.
type HTTPFetcher struct {
	client    *http.Client
	maxBytes  int64
	userAgent string
	header    http.Header
}

// NewHTTPFetcher creates an HTTPFetcher from config.
func NewHTTPFetcher(config HTTPConfig) (*HTTPFetcher, error) {
	if config.MaxBytes == 0 {
		config.MaxBytes = DefaultMaxBytes
	}
	if err := validation.ValidatePositive(module, "max_bytes", config.MaxBytes); err != nil {
		return nil, err
	}
	if config.Client == nil {
		config.Client = &http.Client{}
	}

	return &HTTPFetcher{
		client:    config.Client,
		maxBytes:  config.MaxBytes,
		userAgent: config.UserAgent,
		header:    config.Header.Clone(),
	}, nil
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*Resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, skerrors.NewOperationError(module, "Fetch", err)
	}
	for k, vs := range f.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, skerrors.NewOperationError(module, "Fetch", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, skerrors.NewOperationError(module, "Fetch", &StatusError{URL: url, StatusCode: resp.StatusCode})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, skerrors.NewOperationError(module, "Fetch", err).WithContext("reading body")
	}
	if int64(len(body)) > f.maxBytes {
		return nil, skerrors.NewOperationError(module, "Fetch", ErrTooLarge).
			WithContext(fmt.Sprintf("limit %d bytes", f.maxBytes))
	}

	return NewResource(url, body, resp.Header.Get("Content-Type"), SourceFetch, time.Now()), nil
}
