package rates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/killallgit/cardsheet-api/internal/services/httpjson"
)

const (
	DefaultURL    = "https://api.exchangerate-api.com/v4/latest/USD"
	DefaultTarget = "BRL"
)

// ErrRateFetch matches any RateFetchError
var ErrRateFetch = errors.New("exchange rate fetch failed")

// RateFetchError reports why the conversion factor could not be obtained
type RateFetchError struct {
	Target string
	Err    error
}

func (e *RateFetchError) Error() string {
	return fmt.Sprintf("fetch %s exchange rate: %v", e.Target, e.Err)
}

func (e *RateFetchError) Unwrap() error {
	return e.Err
}

func (e *RateFetchError) Is(target error) bool {
	return target == ErrRateFetch
}

type latestResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Provider returns the USD to target currency factor. Every call hits the
// rate endpoint; nothing is cached.
type Provider struct {
	client httpjson.Getter
	url    string
	target string
	logger *zap.Logger
}

// Option configures a Provider
type Option func(*Provider)

func WithURL(u string) Option {
	return func(p *Provider) {
		if u != "" {
			p.url = u
		}
	}
}

// WithTarget sets the currency code read from the rates table
func WithTarget(code string) Option {
	return func(p *Provider) {
		if code != "" {
			p.target = strings.ToUpper(code)
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProvider creates a rate provider fetching through client
func NewProvider(client httpjson.Getter, opts ...Option) *Provider {
	p := &Provider{
		client: client,
		url:    DefaultURL,
		target: DefaultTarget,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Target returns the currency code this provider converts to
func (p *Provider) Target() string {
	return p.target
}

// Rate fetches the current conversion factor
func (p *Provider) Rate(ctx context.Context) (float64, error) {
	var resp latestResponse
	if err := p.client.GetJSON(ctx, p.url, &resp); err != nil {
		return 0, &RateFetchError{Target: p.target, Err: err}
	}

	rate, ok := resp.Rates[p.target]
	if !ok {
		return 0, &RateFetchError{Target: p.target, Err: fmt.Errorf("currency %s not in rates table", p.target)}
	}

	p.logger.Debug("fetched exchange rate", zap.String("base", resp.Base), zap.String("target", p.target), zap.Float64("rate", rate))
	return rate, nil
}
