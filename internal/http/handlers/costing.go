package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/vallepan/recetario-backend/internal/http/response"
	"github.com/vallepan/recetario-backend/internal/platform/logger"
	"github.com/vallepan/recetario-backend/internal/services"
)

type CostingHandler struct {
	log     *logger.Logger
	service services.CostingService
}

func NewCostingHandler(log *logger.Logger, service services.CostingService) *CostingHandler {
	return &CostingHandler{log: log.With("handler", "CostingHandler"), service: service}
}

type ensureVersionRequest struct {
	BatchRef  *decimal.Decimal `json:"batch_ref"`
	SourceTag string           `json:"source_tag"`
}

func (h *CostingHandler) EnsureVersion(c *gin.Context) {
	recipeID, err := parseUintParam(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req ensureVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	batchRef := decimal.NewFromInt(1)
	if req.BatchRef != nil {
		batchRef = *req.BatchRef
	}
	sourceTag := req.SourceTag
	if sourceTag == "" {
		sourceTag = "API"
	}

	version, created, err := h.service.EnsureVersion(c.Request.Context(), recipeID, batchRef, sourceTag)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	payload := gin.H{"version": version, "created": created}
	if created {
		response.RespondCreated(c, payload)
		return
	}
	response.RespondOK(c, payload)
}

func (h *CostingHandler) VersionHistory(c *gin.Context) {
	recipeID, err := parseUintParam(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	versions, delta, err := h.service.VersionHistory(c.Request.Context(), recipeID, limit)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"versions": versions, "delta": delta})
}

func (h *CostingHandler) Breakdown(c *gin.Context) {
	recipeID, err := parseUintParam(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	batchRef := decimal.NewFromInt(1)
	if raw := c.Query("batch_ref"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_batch_ref", err)
			return
		}
		batchRef = parsed
	}
	breakdown, err := h.service.ComputeBreakdown(c.Request.Context(), recipeID, batchRef)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"recipe_id":           recipeID,
		"batch_ref":           breakdown.BatchRef,
		"material_cost":       breakdown.MaterialCost,
		"labor_cost":          breakdown.LaborCost,
		"overhead_cost":       breakdown.OverheadCost,
		"total_cost":          breakdown.TotalCost,
		"cost_per_yield_unit": breakdown.CostPerYieldUnit,
		"uncosted_lines":      breakdown.UncostedLines,
		"snapshot_hash":       breakdown.SnapshotHash,
	})
}
