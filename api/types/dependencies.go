package types

import (
	"context"

	"go.uber.org/zap"

	"github.com/killallgit/cardsheet-api/internal/models"
	"github.com/killallgit/cardsheet-api/pkg/config"
)

// SearchService builds card tables
type SearchService interface {
	Search(ctx context.Context, req models.SearchRequest) (*models.Table, error)
}

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	SearchService SearchService
	Config        *config.Config
	Logger        *zap.Logger
	Version       string
}

// Log returns the configured logger or a no-op logger
func (d *Dependencies) Log() *zap.Logger {
	if d == nil || d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
