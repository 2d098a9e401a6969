package httpjson

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/killallgit/cardsheet-api/internal/metrics"
)

// ErrRateLimited indicates the upstream API answered 429
var ErrRateLimited = errors.New("upstream api rate limit exceeded")

const maxErrorBody = 512

// StatusError is returned for any non-2xx response
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("GET %s: status %d: %s", e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("GET %s: status %d", e.URL, e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrRateLimited && e.StatusCode == http.StatusTooManyRequests
}

// Getter fetches a URL and decodes its JSON body into the value pointed to by into
type Getter interface {
	GetJSON(ctx context.Context, url string, into any) error
}

// Config holds configuration for a Client
type Config struct {
	// Service labels metrics and log lines, e.g. "scryfall"
	Service string

	// Outbound rate limiting. Zero RequestsPerSecond disables the limiter.
	RequestsPerSecond float64
	BurstSize         int

	Timeout   time.Duration // Default: 10s
	UserAgent string        // Default: cardsheet-api/1.0
}

// Client performs rate-limited JSON GETs
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	config      Config
	logger      *zap.Logger
}

var _ Getter = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithLogger sets the logger used for request tracing
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a new JSON client
func NewClient(cfg Config, opts ...Option) *Client {
	if cfg.Service == "" {
		cfg.Service = "upstream"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "cardsheet-api/1.0"
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = 1
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		config:     cfg,
		logger:     zap.NewNop(),
	}
	if cfg.RequestsPerSecond > 0 {
		c.rateLimiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize)
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetJSON performs a single GET. There is no retry: every failure is returned
// to the caller as is.
func (c *Client) GetJSON(ctx context.Context, url string, into any) error {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip, br")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(c.config.Service, "error", time.Since(start))
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	metrics.ObserveUpstream(c.config.Service, strconv.Itoa(resp.StatusCode), time.Since(start))
	c.logger.Debug("upstream request",
		zap.String("service", c.config.Service),
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	reader, err := decodedBody(resp)
	if err != nil {
		return fmt.Errorf("decode content encoding: %w", err)
	}
	defer reader.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(io.LimitReader(reader, maxErrorBody))
		return &StatusError{
			StatusCode: resp.StatusCode,
			URL:        url,
			Body:       strings.TrimSpace(string(b)),
		}
	}

	if err := json.NewDecoder(reader).Decode(into); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodedBody wraps the response body in the decoder for its content
// encoding. Closing the result never closes resp.Body.
func decodedBody(resp *http.Response) (io.ReadCloser, error) {
	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "gzip":
		return gzip.NewReader(resp.Body)
	case "br":
		return io.NopCloser(brotli.NewReader(resp.Body)), nil
	default:
		return io.NopCloser(resp.Body), nil
	}
}
