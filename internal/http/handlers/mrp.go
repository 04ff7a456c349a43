package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vallepan/recetario-backend/internal/http/response"
	"github.com/vallepan/recetario-backend/internal/platform/logger"
	"github.com/vallepan/recetario-backend/internal/services"
)

type MRPHandler struct {
	log     *logger.Logger
	service services.MRPService
}

func NewMRPHandler(log *logger.Logger, service services.MRPService) *MRPHandler {
	return &MRPHandler{log: log.With("handler", "MRPHandler"), service: service}
}

type explodeRequest struct {
	Items []services.ExplodeItem `json:"items" binding:"required"`
}

func (h *MRPHandler) Explode(c *gin.Context) {
	var req explodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	summary, err := h.service.ExplodeItems(c.Request.Context(), req.Items)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, summary)
}

func (h *MRPHandler) PlanRequirements(c *gin.Context) {
	planID, err := parseUintParam(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	summary, err := h.service.ExplodePlan(c.Request.Context(), planID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, summary)
}
