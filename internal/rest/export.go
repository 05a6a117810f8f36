package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/socialsched/goscheduler/api"
)

// Export serializes the full stored sequence to a spreadsheet or CSV
// file. The format query parameter takes xlsx (default) or csv; the
// response carries the generated filename.
func (h *handlers) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "xlsx")
	if format != "xlsx" && format != "csv" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be xlsx or csv"})
		return
	}

	filename, err := h.service.Export(c.Request.Context(), format)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export posts"})
		return
	}

	c.JSON(http.StatusOK, api.ExportResponse{Filename: filename})
}
