package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myrroearl/atam-sub002/internal/service"
	appErrors "github.com/myrroearl/atam-sub002/pkg/errors"
	"github.com/myrroearl/atam-sub002/pkg/response"
)

// ResourceHandler exposes the learning-resource harvest intake.
type ResourceHandler struct {
	resources *service.ResourceService
}

// NewResourceHandler constructs handler.
func NewResourceHandler(resources *service.ResourceService) *ResourceHandler {
	return &ResourceHandler{resources: resources}
}

// HarvestRequest wraps one intake batch.
type HarvestRequest struct {
	Resources []service.ResourceInput `json:"resources"`
}

// Harvest godoc
// @Summary Submit harvested learning resources
// @Tags Resources
// @Accept json
// @Produce json
// @Param payload body HarvestRequest true "Harvest batch"
// @Success 200 {object} response.Envelope
// @Router /resources/harvest [post]
func (h *ResourceHandler) Harvest(c *gin.Context) {
	var req HarvestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	result, err := h.resources.Harvest(c.Request.Context(), req.Resources)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
