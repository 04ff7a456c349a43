package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vallepan/recetario-backend/internal/http/response"
	"github.com/vallepan/recetario-backend/internal/platform/logger"
	"github.com/vallepan/recetario-backend/internal/services"
)

type RecipeHandler struct {
	log     *logger.Logger
	service services.RecipeService
}

func NewRecipeHandler(log *logger.Logger, service services.RecipeService) *RecipeHandler {
	return &RecipeHandler{log: log.With("handler", "RecipeHandler"), service: service}
}

func (h *RecipeHandler) List(c *gin.Context) {
	summaries, err := h.service.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"recipes": summaries})
}

func (h *RecipeHandler) Detail(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	detail, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, detail)
}

func parseUintParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
