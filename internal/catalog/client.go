// Package catalog is the client of the Dreamster REST API: track metadata,
// stream URL resolution and share events.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 15 * time.Second
	defaultRate    = 5 // requests per second
	userAgent      = "dreamster-cli/0.1"

	// Retry configuration
	defaultRetries = 2
	initialDelay   = 500 * time.Millisecond
	maxDelay       = 10 * time.Second
)

var (
	// ErrTrackUnavailable means the track does not exist or the API could
	// not be reached. It is unrelated to playback failures.
	ErrTrackUnavailable = errors.New("track unavailable")

	// ErrUnauthorized means the API rejected the bearer token.
	ErrUnauthorized = errors.New("unauthorized")
)

// StatusError is returned for unexpected API status codes.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API returned status %d", e.Code)
	}
	return fmt.Sprintf("API returned status %d: %s", e.Code, e.Body)
}

// TokenSource supplies the bearer token for each request.
type TokenSource interface {
	Token() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource authenticates requests with the source's bearer token.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), max(1, int(perSecond)))
	}
}

// WithRetries sets how many times 5xx and network failures are retried,
// starting at delay and doubling.
func WithRetries(n int, delay time.Duration) Option {
	return func(c *Client) {
		c.retries = max(n, 0)
		c.delay = delay
	}
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// Client provides access to the Dreamster API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	limiter    *rate.Limiter
	retries    int
	delay      time.Duration
	logger     *log.Logger
}

// NewClient creates a new API client for baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		limiter:    rate.NewLimiter(defaultRate, defaultRate),
		retries:    defaultRetries,
		delay:      initialDelay,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Track fetches the metadata of track id.
func (c *Client) Track(ctx context.Context, id string) (*Track, error) {
	var raw trackResponse
	if err := c.do(ctx, http.MethodGet, "/tracks/"+url.PathEscape(id), nil, &raw); err != nil {
		return nil, unavailable(id, err)
	}
	if raw.ID == "" {
		raw.ID = id
	}
	return raw.toTrack(), nil
}

// Stream fetches the streaming source of track id.
func (c *Client) Stream(ctx context.Context, id string) (*Stream, error) {
	var raw streamResponse
	if err := c.do(ctx, http.MethodGet, "/tracks/"+url.PathEscape(id)+"/stream", nil, &raw); err != nil {
		return nil, unavailable(id, err)
	}
	return &Stream{URL: raw.URL, Format: raw.Format, Size: raw.Size}, nil
}

// ResolveSource picks the URL the player should load for t: the direct
// audio file when present, the stream URL otherwise. A track with neither
// yields an empty Source and no error.
func (c *Client) ResolveSource(ctx context.Context, t *Track) (Source, error) {
	if t.AudioURL != "" {
		return Source{URL: t.AudioURL, Origin: OriginDirect}, nil
	}

	s, err := c.Stream(ctx, t.ID)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return Source{}, nil
		}
		return Source{}, err
	}
	if s.URL == "" {
		return Source{}, nil
	}
	return Source{URL: s.URL, Origin: OriginStream, Format: s.Format, Size: s.Size}, nil
}

// RecordShare posts a share event.
func (c *Client) RecordShare(ctx context.Context, e ShareEvent) error {
	body := shareRequest{
		EventID:  e.ID,
		TrackID:  e.TrackID,
		Platform: e.Platform,
		At:       e.At.UTC().Format(time.RFC3339),
	}
	if err := c.do(ctx, http.MethodPost, "/shares", body, nil); err != nil {
		return fmt.Errorf("record share: %w", err)
	}
	return nil
}

// unavailable maps not-found and transport failures to ErrTrackUnavailable.
func unavailable(id string, err error) error {
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, context.Canceled) {
		return err
	}
	var se *StatusError
	if errors.As(err, &se) && se.Code != http.StatusNotFound && se.Code < 500 {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrTrackUnavailable, id, err)
}

// do sends one API request and decodes the JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var payload []byte
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		var body io.Reader = http.NoBody
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		c.setHeaders(req, payload != nil)
		return req, nil
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// doWithRetry executes a request with exponential backoff retry.
// Retries on 5xx errors and network errors.
func (c *Client) doWithRetry(ctx context.Context, newReq func() (*http.Request, error)) (*http.Response, error) {
	var lastErr error
	delay := c.delay

	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			c.logger.Debug("retrying request", "attempt", attempt, "delay", delay, "err", lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay = min(delay*2, maxDelay)
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := newReq()
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}

		// Success or client error (4xx) - don't retry
		if resp.StatusCode < 500 {
			return resp, nil
		}

		// Server error (5xx) - retry
		resp.Body.Close()
		lastErr = &StatusError{Code: resp.StatusCode}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", c.retries+1, lastErr)
}

func (c *Client) setHeaders(req *http.Request, hasBody bool) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
}
