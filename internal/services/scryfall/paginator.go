package scryfall

import (
	"context"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/killallgit/cardsheet-api/internal/metrics"
	"github.com/killallgit/cardsheet-api/internal/models"
	"github.com/killallgit/cardsheet-api/internal/services/httpjson"
)

// DefaultSearchURL is the public card search endpoint
const DefaultSearchURL = "https://api.scryfall.com/cards/search"

// Query holds the API-level parameters of one search
type Query struct {
	Q         string
	Count     int
	Order     string
	Direction models.Direction
	Unique    models.UniqueMode
}

// page is the subset of a list response the paginator reads
type page struct {
	Data    []models.Record `json:"data"`
	HasMore bool            `json:"has_more"`
}

type state int

const (
	stateFetching state = iota
	stateDone
	stateFailed
)

// Paginator walks the search endpoint page by page
type Paginator struct {
	client    httpjson.Getter
	searchURL string
	logger    *zap.Logger
}

// Option configures a Paginator
type Option func(*Paginator)

// WithSearchURL overrides the search endpoint
func WithSearchURL(u string) Option {
	return func(p *Paginator) {
		if u != "" {
			p.searchURL = u
		}
	}
}

// WithLogger sets the paginator logger
func WithLogger(logger *zap.Logger) Option {
	return func(p *Paginator) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPaginator creates a paginator that fetches through client
func NewPaginator(client httpjson.Getter, opts ...Option) *Paginator {
	p := &Paginator{
		client:    client,
		searchURL: DefaultSearchURL,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Search fetches pages starting at 1 until the API reports no more results or
// more than q.Count records have accumulated. The result may hold more than
// q.Count records; callers truncate. Any failure discards everything fetched
// so far.
func (p *Paginator) Search(ctx context.Context, q Query) ([]models.Record, error) {
	var (
		acc     []models.Record
		pageNum = 1
		st      = stateFetching
		failure error
	)

	for st == stateFetching {
		var resp page
		if err := p.client.GetJSON(ctx, p.pageURL(q, pageNum), &resp); err != nil {
			failure, st = &SearchError{Page: pageNum, Err: err}, stateFailed
			continue
		}
		if resp.Data == nil {
			failure, st = &SearchError{Page: pageNum, Err: errMissingData}, stateFailed
			continue
		}

		acc = append(acc, resp.Data...)
		p.logger.Debug("fetched search page",
			zap.String("query", q.Q),
			zap.Int("page", pageNum),
			zap.Int("records", len(resp.Data)),
			zap.Int("accumulated", len(acc)),
			zap.Bool("has_more", resp.HasMore),
		)

		if !resp.HasMore || len(acc) > q.Count {
			st = stateDone
			continue
		}
		pageNum++
	}

	metrics.SearchPagesFetched.Observe(float64(pageNum))

	if st == stateFailed {
		p.logger.Warn("card search failed", zap.String("query", q.Q), zap.Error(failure))
		return nil, failure
	}
	return acc, nil
}

func (p *Paginator) pageURL(q Query, n int) string {
	params := url.Values{}
	params.Set("q", q.Q)
	params.Set("order", q.Order)
	params.Set("dir", string(q.Direction))
	params.Set("unique", string(q.Unique))
	params.Set("page", strconv.Itoa(n))
	return p.searchURL + "?" + params.Encode()
}
