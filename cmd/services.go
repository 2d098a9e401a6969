package cmd

import (
	"go.uber.org/zap"

	"github.com/killallgit/cardsheet-api/internal/services/httpjson"
	"github.com/killallgit/cardsheet-api/internal/services/normalizer"
	"github.com/killallgit/cardsheet-api/internal/services/rates"
	"github.com/killallgit/cardsheet-api/internal/services/scryfall"
	"github.com/killallgit/cardsheet-api/internal/services/search"
	"github.com/killallgit/cardsheet-api/pkg/config"
)

// newSearchService wires the paginator, rate provider and normalizer from
// config. The card and rate APIs get separate clients so the card limiter
// never delays the single rate lookup.
func newSearchService(cfg *config.Config, log *zap.Logger) *search.Service {
	cardClient := httpjson.NewClient(httpjson.Config{
		Service:           "scryfall",
		RequestsPerSecond: cfg.Scryfall.RateLimit,
		BurstSize:         cfg.Scryfall.Burst,
		Timeout:           cfg.Scryfall.Timeout,
		UserAgent:         cfg.Scryfall.UserAgent,
	}, httpjson.WithLogger(log))

	rateClient := httpjson.NewClient(httpjson.Config{
		Service:   "rates",
		Timeout:   cfg.Rates.Timeout,
		UserAgent: cfg.Scryfall.UserAgent,
	}, httpjson.WithLogger(log))

	paginator := scryfall.NewPaginator(cardClient,
		scryfall.WithSearchURL(cfg.Scryfall.SearchURL),
		scryfall.WithLogger(log),
	)
	provider := rates.NewProvider(rateClient,
		rates.WithURL(cfg.Rates.URL),
		rates.WithTarget(cfg.Rates.Target),
		rates.WithLogger(log),
	)

	return search.NewService(paginator, provider,
		search.WithNormalizer(normalizer.New(normalizer.WithLegalityFormats(cfg.Search.LegalityFormats...))),
		search.WithLogger(log),
	)
}
