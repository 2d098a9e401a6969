package search

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/cardsheet-api/api/types"
	"github.com/killallgit/cardsheet-api/internal/services/export"
	apperrors "github.com/killallgit/cardsheet-api/pkg/errors"
)

// Export handles card table downloads as xlsx
// @Summary      Export a card table as xlsx
// @Description  Same search as GET /api/v1/search, returned as a workbook with a header row. Image cells are written as IMAGE formulas.
// @Tags         search
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        q       query string true  "Card search query" example(type:legendary)
// @Param        fields  query string false "Space or comma separated fields" default(name)
// @Param        count   query int    false "Number of rows, clamped to 700" default(150)
// @Param        order   query string false "Sort order" default(name)
// @Param        dir     query string false "Sort direction" Enums(auto, asc, desc)
// @Param        unique  query string false "Deduplication mode" Enums(cards, art, prints)
// @Param        sheet   query string false "Worksheet name" default(Cards)
// @Success      200 {file} file "xlsx workbook"
// @Failure      400 {object} types.ErrorResponse "Bad request - missing query or invalid parameters"
// @Failure      502 {object} types.ErrorResponse "Card search or exchange rate lookup failed"
// @Failure      504 {object} types.ErrorResponse "Gateway timeout - search request timed out"
// @Router       /api/v1/search/export [get]
func Export(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, table, ok := runSearch(c, deps)
		if !ok {
			return
		}

		sheet, filename := export.DefaultSheet, "cards.xlsx"
		if deps.Config != nil {
			if deps.Config.Export.SheetName != "" {
				sheet = deps.Config.Export.SheetName
			}
			if deps.Config.Export.Filename != "" {
				filename = deps.Config.Export.Filename
			}
		}
		if s := c.Query("sheet"); s != "" {
			sheet = s
		}

		var buf bytes.Buffer
		if err := export.WriteXLSX(&buf, table, sheet); err != nil {
			types.SendAppError(c, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Failed to build workbook"))
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		c.Data(http.StatusOK, export.ContentType, buf.Bytes())
	}
}
