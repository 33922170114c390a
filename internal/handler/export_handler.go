package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/myrroearl/atam-sub002/internal/service"
	appErrors "github.com/myrroearl/atam-sub002/pkg/errors"
	"github.com/myrroearl/atam-sub002/pkg/response"
)

// ExportHandler streams rendered performance exports.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs handler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Export godoc
// @Summary Download a performance summary as CSV or PDF
// @Tags Performance
// @Produce text/csv,application/pdf
// @Param id path int true "Student ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /students/{id}/performance/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid student id"))
		return
	}
	format := c.DefaultQuery("format", service.ExportFormatCSV)

	payload, err := h.exports.ExportPerformance(c.Request.Context(), studentID, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", payload.Filename))
	c.Data(http.StatusOK, payload.ContentType, payload.Data)
}
