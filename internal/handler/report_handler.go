package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"popularvideogames/backend/internal/report"
)

// ReportCategoryResponse lists the reports of one category.
type ReportCategoryResponse struct {
	Category report.Category     `json:"category" example:"videogames"`
	Reports  []report.Definition `json:"reports"`
}

// ListReports godoc
// @Summary      List the report catalog
// @Description  Returns every report grouped by category, sorted by title.
// @Tags         reports
// @Produce      json
// @Success      200 {array} ReportCategoryResponse
// @Router       /reports [get]
func (h *Handler) ListReports(c *gin.Context) {
	var out []ReportCategoryResponse
	for _, category := range report.Categories() {
		out = append(out, ReportCategoryResponse{Category: category, Reports: report.InCategory(category)})
	}
	c.JSON(http.StatusOK, out)
}

// RunReport godoc
// @Summary      Run a report
// @Description  Executes one read-only report and returns its rows as text cells.
// @Tags         reports
// @Produce      json
// @Param        category path string true "Report category" Enums(database, videogames, developers, genres)
// @Param        report   path string true "Report slug"
// @Success      200 {object} report.Table
// @Failure      404 {object} ErrorResponse "Report not found"
// @Failure      500 {object} ErrorResponse
// @Router       /reports/{category}/{report} [get]
func (h *Handler) RunReport(c *gin.Context) {
	def, err := report.Lookup(c.Param("category"), c.Param("report"))
	if err != nil {
		if errors.Is(err, report.ErrUnknownReport) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	table, err := def.Run(c.Request.Context(), h.db)
	if err != nil {
		h.log.Error("Report failed", "report", def.String(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run report"})
		return
	}
	c.JSON(http.StatusOK, table)
}
