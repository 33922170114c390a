package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myrroearl/atam-sub002/internal/service"
	appErrors "github.com/myrroearl/atam-sub002/pkg/errors"
	"github.com/myrroearl/atam-sub002/pkg/response"
)

// ImportHandler exposes classroom reconciliation endpoints.
type ImportHandler struct {
	imports *service.ImportService
}

// NewImportHandler constructs handler.
func NewImportHandler(imports *service.ImportService) *ImportHandler {
	return &ImportHandler{imports: imports}
}

// SyncScores godoc
// @Summary Reconcile classroom scores into the gradebook
// @Tags Classroom
// @Accept json
// @Produce json
// @Param payload body service.SyncScoresInput true "Sync request"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /classroom/sync-scores [post]
func (h *ImportHandler) SyncScores(c *gin.Context) {
	claims := currentClaims(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if claims.AccessToken == "" {
		response.Error(c, appErrors.ErrReauthRequired)
		return
	}

	var req service.SyncScoresInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	result, err := h.imports.SyncScores(c.Request.Context(), claims.AccessToken, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
