package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vallepan/recetario-backend/internal/http/response"
	"github.com/vallepan/recetario-backend/internal/platform/logger"
	"github.com/vallepan/recetario-backend/internal/services"
)

type MatchingHandler struct {
	log     *logger.Logger
	service services.MatchingService
}

func NewMatchingHandler(log *logger.Logger, service services.MatchingService) *MatchingHandler {
	return &MatchingHandler{log: log.With("handler", "MatchingHandler"), service: service}
}

type previewRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *MatchingHandler) Preview(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	result, status, err := h.service.Preview(c.Request.Context(), req.Text)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	payload := gin.H{
		"score":  result.Score,
		"method": result.Method,
		"status": status,
	}
	if result.Ingredient != nil {
		payload["ingredient"] = result.Ingredient
	}
	response.RespondOK(c, payload)
}

type rematchRequest struct {
	RecipeID *uint `json:"recipe_id"`
}

func (h *MatchingHandler) Rematch(c *gin.Context) {
	var req rematchRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	result, err := h.service.RematchLines(c.Request.Context(), req.RecipeID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, result)
}

type approveRequest struct {
	IngredientID uint `json:"ingredient_id" binding:"required"`
	CreateAlias  bool `json:"create_alias"`
}

func (h *MatchingHandler) ApproveLine(c *gin.Context) {
	lineID, err := parseUintParam(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req approveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	line, err := h.service.ApproveLine(c.Request.Context(), lineID, req.IngredientID, req.CreateAlias)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, line)
}

func (h *MatchingHandler) PendingReview(c *gin.Context) {
	var recipeID *uint
	if raw := c.Query("recipe_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_recipe_id", fmt.Errorf("bad recipe_id %q", raw))
			return
		}
		id := uint(v)
		recipeID = &id
	}
	lines, err := h.service.PendingReview(c.Request.Context(), recipeID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"lines": lines})
}
