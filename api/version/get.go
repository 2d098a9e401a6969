package version

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/cardsheet-api/api/types"
)

// Get handles version requests
// @Summary      Service information
// @Tags         health
// @Produce      json
// @Success      200 {object} types.VersionResponse
// @Router       / [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	version := "dev"
	if deps != nil && deps.Version != "" {
		version = deps.Version
	}

	return func(c *gin.Context) {
		c.JSON(http.StatusOK, types.VersionResponse{
			Name:        "Cardsheet API",
			Version:     version,
			Description: "Card search tables with converted prices",
			Status:      "running",
		})
	}
}
