package search

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/killallgit/cardsheet-api/internal/metrics"
	"github.com/killallgit/cardsheet-api/internal/models"
	"github.com/killallgit/cardsheet-api/internal/services/fields"
	"github.com/killallgit/cardsheet-api/internal/services/normalizer"
	"github.com/killallgit/cardsheet-api/internal/services/rates"
	"github.com/killallgit/cardsheet-api/internal/services/scryfall"
)

// CardSearcher retrieves raw card records for a query
type CardSearcher interface {
	Search(ctx context.Context, q scryfall.Query) ([]models.Record, error)
}

// RateSource supplies the USD conversion factor for the price column
type RateSource interface {
	Rate(ctx context.Context) (float64, error)
	Target() string
}

// Service builds card tables: it maps field aliases, pages through the search
// API, fetches the exchange rate and normalizes each record into a row.
type Service struct {
	cards      CardSearcher
	rates      RateSource
	mapper     *fields.Mapper
	normalizer *normalizer.Normalizer
	logger     *zap.Logger
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

func WithNormalizer(n *normalizer.Normalizer) ServiceOption {
	return func(s *Service) {
		if n != nil {
			s.normalizer = n
		}
	}
}

func WithMapper(m *fields.Mapper) ServiceOption {
	return func(s *Service) {
		if m != nil {
			s.mapper = m
		}
	}
}

func WithLogger(logger *zap.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a search service
func NewService(cards CardSearcher, rates RateSource, opts ...ServiceOption) *Service {
	s := &Service{
		cards:      cards,
		rates:      rates,
		mapper:     fields.NewMapper(),
		normalizer: normalizer.New(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search runs one invocation end to end. It either returns the full table or
// an error; never a partial table.
func (s *Service) Search(ctx context.Context, req models.SearchRequest) (*models.Table, error) {
	start := time.Now()

	if strings.TrimSpace(req.Query) == "" {
		metrics.SearchesTotal.WithLabelValues("missing_query").Inc()
		return nil, &MissingQueryError{}
	}

	req = req.WithDefaults()
	if err := req.Validate(); err != nil {
		metrics.SearchesTotal.WithLabelValues("invalid").Inc()
		return nil, &InvalidRequestError{Err: err}
	}

	count := models.ClampCount(req.Count)
	if count < 0 {
		count = 0
	}
	columns := s.mapper.Resolve(req.Fields)

	records, err := s.cards.Search(ctx, scryfall.Query{
		Q:         req.Query,
		Count:     count,
		Order:     s.mapper.MapOrder(req.Order),
		Direction: req.Direction,
		Unique:    req.Unique,
	})
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("search_failed").Inc()
		return nil, err
	}

	rate, err := s.rates.Rate(ctx)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("rate_failed").Inc()
		return nil, err
	}

	if len(records) > count {
		records = records[:count]
	}

	rows := make([]models.Row, len(records))
	for i, record := range records {
		rows[i] = s.normalizer.Normalize(record, columns, rate)
	}

	metrics.SearchesTotal.WithLabelValues("ok").Inc()
	s.logger.Info("card search completed",
		zap.String("query", req.Query),
		zap.Strings("fields", columns),
		zap.Int("requested", req.Count),
		zap.Int("rows", len(rows)),
		zap.Float64("rate", rate),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &models.Table{
		Columns: append(columns, PriceColumn(s.rates.Target())),
		Rows:    rows,
		Rate:    rate,
	}, nil
}

// PriceColumn names the trailing converted-price column
func PriceColumn(target string) string {
	return "price_" + strings.ToLower(target)
}

// IsClientError reports whether err was caused by the caller's arguments
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingQuery) || errors.Is(err, ErrInvalidRequest)
}

var (
	_ CardSearcher = (*scryfall.Paginator)(nil)
	_ RateSource   = (*rates.Provider)(nil)
)
