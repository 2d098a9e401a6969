package health

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/cardsheet-api/api/types"
)

// Get handles health check requests
// @Summary      Health check
// @Description  Reports service status and which upstream APIs are configured
// @Tags         health
// @Produce      json
// @Success      200 {object} types.HealthResponse
// @Router       /health [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := types.HealthResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Service is healthy",
			},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Services: map[string]any{
				"search": gin.H{"status": searchStatus(deps)},
			},
		}

		if deps != nil {
			resp.Version = deps.Version
			if deps.Config != nil {
				resp.Services["scryfall"] = upstream(deps.Config.Scryfall.SearchURL)
				resp.Services["rates"] = upstream(deps.Config.Rates.URL)
			}
		}

		c.JSON(http.StatusOK, resp)
	}
}

func searchStatus(deps *types.Dependencies) string {
	if deps == nil || deps.SearchService == nil {
		return "not configured"
	}
	return "ready"
}

// upstream describes a configured endpoint by host only
func upstream(raw string) gin.H {
	u, err := url.Parse(raw)
	if raw == "" || err != nil || u.Host == "" {
		return gin.H{"status": "not configured"}
	}
	return gin.H{"status": "configured", "host": u.Host}
}
