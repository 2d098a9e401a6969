package types

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/killallgit/cardsheet-api/pkg/errors"
)

// Handler utility functions shared across handlers

// SendAppError writes err as an ErrorResponse with its mapped status code
func SendAppError(c *gin.Context, err *apperrors.AppError) {
	resp := ErrorResponse{
		Status:  StatusError,
		Message: err.Message,
		Error:   string(err.Code),
	}
	if len(err.Details) > 0 {
		resp.Details = err.Details
	}
	c.JSON(err.GetHTTPCode(), resp)
}

// BindQueryOrError binds query parameters into target, writing a 400
// response on failure
func BindQueryOrError(c *gin.Context, target any) bool {
	if err := c.ShouldBindQuery(target); err != nil {
		SendAppError(c, apperrors.New(apperrors.ErrCodeValidation, "invalid query parameters").
			WithDetail("reason", err.Error()))
		return false
	}
	return true
}
