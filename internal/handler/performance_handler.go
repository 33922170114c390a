package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/myrroearl/atam-sub002/internal/service"
	appErrors "github.com/myrroearl/atam-sub002/pkg/errors"
	"github.com/myrroearl/atam-sub002/pkg/response"
)

// PerformanceHandler exposes derived performance summaries.
type PerformanceHandler struct {
	performance *service.PerformanceService
}

// NewPerformanceHandler constructs handler.
func NewPerformanceHandler(performance *service.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{performance: performance}
}

// Get godoc
// @Summary Performance summary for a student
// @Tags Performance
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/performance [get]
func (h *PerformanceHandler) Get(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid student id"))
		return
	}

	summary, err := h.performance.GetSummary(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
