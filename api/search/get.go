package search

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/killallgit/cardsheet-api/api/types"
	"github.com/killallgit/cardsheet-api/internal/models"
	"github.com/killallgit/cardsheet-api/internal/services/rates"
	cardsearch "github.com/killallgit/cardsheet-api/internal/services/search"
	apperrors "github.com/killallgit/cardsheet-api/pkg/errors"
)

const defaultRequestTimeout = 60 * time.Second

// Get handles card table search requests
// @Summary      Search cards into a table
// @Description  Runs a card search, follows result pages up to count (max 700) and returns one row per card with the requested fields plus the price converted from USD
// @Tags         search
// @Produce      json
// @Param        q       query string true  "Card search query" example(type:legendary)
// @Param        fields  query string false "Space or comma separated fields" default(name)
// @Param        count   query int    false "Number of rows, clamped to 700" default(150)
// @Param        order   query string false "Sort order" default(name)
// @Param        dir     query string false "Sort direction" Enums(auto, asc, desc)
// @Param        unique  query string false "Deduplication mode" Enums(cards, art, prints)
// @Success      200 {object} types.CardTableResponse "Card table"
// @Failure      400 {object} types.ErrorResponse "Bad request - missing query or invalid parameters"
// @Failure      502 {object} types.ErrorResponse "Card search or exchange rate lookup failed"
// @Failure      504 {object} types.ErrorResponse "Gateway timeout - search request timed out"
// @Router       /api/v1/search [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, table, ok := runSearch(c, deps)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, types.CardTableResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Card table built successfully",
			},
			Query:    req.Query,
			Columns:  table.Columns,
			Rows:     table.Cells(),
			Count:    len(table.Rows),
			Rate:     table.Rate,
			Currency: currency(deps),
		})
	}
}

// runSearch binds the query, runs the search under the request deadline and
// writes the error response itself when anything fails
func runSearch(c *gin.Context, deps *types.Dependencies) (models.SearchRequest, *models.Table, bool) {
	var params types.CardSearchRequest
	if !types.BindQueryOrError(c, &params) {
		return models.SearchRequest{}, nil, false
	}

	if deps == nil || deps.SearchService == nil {
		types.SendAppError(c, apperrors.New(apperrors.ErrCodeInternal, "Search service not available"))
		return models.SearchRequest{}, nil, false
	}

	defaultFields, defaultCount, timeout := models.DefaultFields, models.DefaultCount, defaultRequestTimeout
	if cfg := deps.Config; cfg != nil {
		if cfg.Search.DefaultFields != "" {
			defaultFields = cfg.Search.DefaultFields
		}
		if cfg.Search.DefaultCount > 0 {
			defaultCount = cfg.Search.DefaultCount
		}
		if cfg.Search.RequestTimeout > 0 {
			timeout = cfg.Search.RequestTimeout
		}
	}
	req := params.ToModel(defaultFields, defaultCount)

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	table, err := deps.SearchService.Search(ctx, req)
	if err != nil {
		appErr := toAppError(ctx, err, timeout.String())
		deps.Log().Warn("card search request failed",
			zap.String("query", req.Query),
			zap.String("code", string(appErr.Code)),
			zap.Error(err),
		)
		types.SendAppError(c, appErr)
		return req, nil, false
	}
	return req, table, true
}

func currency(deps *types.Dependencies) string {
	if deps != nil && deps.Config != nil && deps.Config.Rates.Target != "" {
		return deps.Config.Rates.Target
	}
	return rates.DefaultTarget
}

var _ types.SearchService = (*cardsearch.Service)(nil)
