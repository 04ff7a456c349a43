package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/vallepan/recetario-backend/internal/http/handlers"
	httpMW "github.com/vallepan/recetario-backend/internal/http/middleware"
	"github.com/vallepan/recetario-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	RecipeHandler   *httpH.RecipeHandler
	MatchingHandler *httpH.MatchingHandler
	CostingHandler  *httpH.CostingHandler
	MRPHandler      *httpH.MRPHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(otelgin.Middleware("recetario-backend"))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.RecipeHandler != nil {
			api.GET("/recipes", cfg.RecipeHandler.List)
			api.GET("/recipes/:id", cfg.RecipeHandler.Detail)
		}

		if cfg.CostingHandler != nil {
			api.GET("/recipes/:id/cost", cfg.CostingHandler.Breakdown)
			api.POST("/recipes/:id/cost-versions", cfg.CostingHandler.EnsureVersion)
			api.GET("/recipes/:id/cost-versions", cfg.CostingHandler.VersionHistory)
		}

		if cfg.MatchingHandler != nil {
			api.POST("/matching/preview", cfg.MatchingHandler.Preview)
			api.POST("/matching/rematch", cfg.MatchingHandler.Rematch)
			api.GET("/matching/pending", cfg.MatchingHandler.PendingReview)
			api.POST("/recipe-lines/:id/approve", cfg.MatchingHandler.ApproveLine)
		}

		if cfg.MRPHandler != nil {
			api.POST("/mrp/explode", cfg.MRPHandler.Explode)
			api.GET("/plans/:id/requirements", cfg.MRPHandler.PlanRequirements)
		}
	}

	return r
}
