// Package fetch retrieves delimited-text resources from HTTP URLs or the
// local filesystem and loads them into tables.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aohorodnyk/mimeheader"
	"github.com/rs/zerolog"
	"gopkg.in/cenkalti/backoff.v1"

	"github.com/shapestone/shape-table/pkg/table"
)

const (
	defaultTimeout        = 30 * time.Second
	defaultMaxElapsedTime = 30 * time.Second
	defaultUserAgent      = "shape-table/1.0"

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 64 << 20

	acceptHeader = "text/csv, text/tab-separated-values, text/plain;q=0.8, */*;q=0.1"
)

// Options configures a Client.
type Options struct {
	// HTTPClient is the client used for HTTP requests.
	// Defaults to a client with a 30 second timeout.
	HTTPClient *http.Client

	// Logger receives retry and fetch events.
	// The zero value discards all output.
	Logger zerolog.Logger

	// MaxElapsedTime bounds the total time spent retrying one request,
	// including backoff waits. Defaults to 30 seconds.
	MaxElapsedTime time.Duration

	// UserAgent is sent with HTTP requests.
	UserAgent string
}

// Client fetches resources with retry on transient HTTP failures.
type Client struct {
	httpClient     *http.Client
	logger         zerolog.Logger
	maxElapsedTime time.Duration
	userAgent      string
}

// New creates a Client.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	maxElapsed := opts.MaxElapsedTime
	if maxElapsed == 0 {
		maxElapsed = defaultMaxElapsedTime
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		httpClient:     httpClient,
		logger:         opts.Logger,
		maxElapsedTime: maxElapsed,
		userAgent:      userAgent,
	}
}

// Resource is a fetched document.
type Resource struct {
	// Body is the raw document content.
	Body []byte

	// ContentType is the media type reported by the server, or empty for
	// filesystem reads.
	ContentType string

	// Name is the base name of the file or URL path.
	Name string

	// Source is the path or URL the resource was fetched from.
	Source string
}

// Separator returns the field separator implied by the resource's content
// type, falling back to its file extension. Reports false when neither
// gives a hint.
func (r *Resource) Separator() (rune, bool) {
	if r.ContentType != "" {
		if mt, err := mimeheader.ParseMediaType(r.ContentType); err == nil {
			switch {
			case mt.MatchText("text/csv"):
				return ',', true
			case mt.MatchText("text/tab-separated-values"):
				return '\t', true
			}
		}
	}

	switch strings.ToLower(path.Ext(r.Name)) {
	case ".csv":
		return ',', true
	case ".tsv", ".tab":
		return '\t', true
	}
	return 0, false
}

// Fetch retrieves a resource. Sources with an http or https scheme are
// requested over HTTP; sources without a scheme are read from the local
// filesystem. Other schemes are rejected with ErrUnsupportedScheme.
func (c *Client) Fetch(ctx context.Context, source string) (*Resource, error) {
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return c.fetchURL(ctx, source)
	case strings.Contains(source, "://"):
		return nil, fmt.Errorf("fetch %s: %w", source, ErrUnsupportedScheme)
	default:
		return c.fetchFile(source)
	}
}

// fetchFile reads a resource from the local filesystem.
func (c *Client) fetchFile(name string) (*Resource, error) {
	body, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().Str("path", name).Int("bytes", len(body)).Msg("read file")
	return &Resource{
		Body:   body,
		Name:   filepath.Base(name),
		Source: name,
	}, nil
}

// fetchURL requests a resource over HTTP, retrying transient failures
// with exponential backoff.
func (c *Client) fetchURL(ctx context.Context, rawURL string) (*Resource, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	resp, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: failed to read body: %w", rawURL, err)
	}
	if len(body) > maxBodySize {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, ErrBodyTooLarge)
	}

	c.logger.Debug().Str("url", rawURL).Int("bytes", len(body)).Msg("fetched resource")
	return &Resource{
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		Name:        path.Base(u.Path),
		Source:      rawURL,
	}, nil
}

// get performs a GET request, retrying server errors and transport
// failures until they succeed or exceed the retry budget. Client errors
// and context cancellation are not retried.
func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	strategy := backoff.NewExponentialBackOff()
	strategy.MaxElapsedTime = c.maxElapsedTime

	var resp *http.Response
	var permanent error

	operation := func() error {
		if err := ctx.Err(); err != nil {
			permanent = err
			return nil
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			permanent = err
			return nil
		}
		req.Header.Set("Accept", acceptHeader)
		req.Header.Set("User-Agent", c.userAgent)

		res, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				permanent = err
				return nil
			}
			return err
		}

		if retryableStatus(res.StatusCode) {
			res.Body.Close()
			return &StatusError{URL: rawURL, StatusCode: res.StatusCode}
		}
		if res.StatusCode != http.StatusOK {
			res.Body.Close()
			permanent = &StatusError{URL: rawURL, StatusCode: res.StatusCode}
			return nil
		}

		resp = res
		return nil
	}

	notify := func(err error, wait time.Duration) {
		c.logger.Warn().Err(err).Str("url", rawURL).Dur("retry_in", wait).Msg("retrying fetch")
	}

	if err := backoff.RetryNotify(operation, strategy, notify); err != nil {
		return nil, err
	}
	if permanent != nil {
		return nil, permanent
	}
	return resp, nil
}

// retryableStatus reports whether a status code indicates a transient
// condition worth retrying.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	}
	return code >= 500
}

// LoadTable fetches a resource and parses it into a Table. When
// opts.Separator is zero the separator is taken from the resource's
// content type or extension, or sniffed from the content as a last
// resort.
func (c *Client) LoadTable(ctx context.Context, source string, opts table.Options) (*table.Table, error) {
	res, err := c.Fetch(ctx, source)
	if err != nil {
		return nil, err
	}

	if opts.Separator == 0 {
		if sep, ok := res.Separator(); ok {
			opts.Separator = sep
		} else {
			opts.Separator = table.NewSniffer(string(res.Body)).DetectSeparator()
		}
		c.logger.Debug().Str("source", source).Str("separator", string(opts.Separator)).Msg("selected separator")
	}

	return table.ParseBytesWithOptions(res.Body, opts)
}

var defaultClient = New(Options{})

// Fetch retrieves a resource with the default client.
func Fetch(ctx context.Context, source string) (*Resource, error) {
	return defaultClient.Fetch(ctx, source)
}

// LoadTable fetches and parses a table with the default client.
func LoadTable(ctx context.Context, source string, opts table.Options) (*table.Table, error) {
	return defaultClient.LoadTable(ctx, source, opts)
}
