package search

import (
	"context"
	"errors"

	"github.com/killallgit/cardsheet-api/internal/services/httpjson"
	"github.com/killallgit/cardsheet-api/internal/services/rates"
	"github.com/killallgit/cardsheet-api/internal/services/scryfall"
	cardsearch "github.com/killallgit/cardsheet-api/internal/services/search"
	apperrors "github.com/killallgit/cardsheet-api/pkg/errors"
)

// toAppError maps search service failures onto API error codes
func toAppError(ctx context.Context, err error, timeout string) *apperrors.AppError {
	if ctx.Err() == context.DeadlineExceeded {
		return apperrors.TimeoutError("search", timeout)
	}

	var (
		searchErr *scryfall.SearchError
		rateErr   *rates.RateFetchError
		invalid   *cardsearch.InvalidRequestError
	)

	switch {
	case errors.Is(err, cardsearch.ErrMissingQuery):
		return apperrors.MissingQueryError()
	case errors.As(err, &invalid):
		return apperrors.ValidationError("request", invalid.Err.Error())
	case errors.As(err, &searchErr):
		appErr := apperrors.SearchFailedError(searchErr.Page, err)
		var status *httpjson.StatusError
		if errors.As(err, &status) {
			appErr.WithDetail("upstream_status", status.StatusCode)
		}
		return appErr
	case errors.As(err, &rateErr):
		return apperrors.RateFetchError(rateErr.Target, err)
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "card search failed")
	}
}
