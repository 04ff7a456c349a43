package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/vallepan/recetario-backend/internal/clients/redis"
	"github.com/vallepan/recetario-backend/internal/data/db"
	"github.com/vallepan/recetario-backend/internal/data/repos"
	httpServer "github.com/vallepan/recetario-backend/internal/http"
	httpH "github.com/vallepan/recetario-backend/internal/http/handlers"
	"github.com/vallepan/recetario-backend/internal/matching"
	"github.com/vallepan/recetario-backend/internal/observability"
	"github.com/vallepan/recetario-backend/internal/platform/envutil"
	"github.com/vallepan/recetario-backend/internal/platform/logger"
	"github.com/vallepan/recetario-backend/internal/services"
)

func main() {
	// Logger
	logMode := envutil.String("LOG_MODE", "development")
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing
	ctx := context.Background()
	shutdownOtel := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "recetario-backend",
		Environment: envutil.String("APP_ENV", "development"),
		Version:     envutil.String("APP_VERSION", "dev"),
	})
	if shutdownOtel != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownOtel(shutdownCtx)
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos...")
	unitRepo := repos.NewUnitRepo(thePG, log)
	ingredientRepo := repos.NewIngredientRepo(thePG, log)
	aliasRepo := repos.NewIngredientAliasRepo(thePG, log)
	ingredientCostRepo := repos.NewIngredientCostRepo(thePG, log)
	stockRepo := repos.NewStockRepo(thePG, log)
	recipeRepo := repos.NewRecipeRepo(thePG, log)
	lineRepo := repos.NewRecipeLineRepo(thePG, log)
	driverRepo := repos.NewCostDriverRepo(thePG, log)
	versionRepo := repos.NewCostVersionRepo(thePG, log)
	planRepo := repos.NewProductionPlanRepo(thePG, log)

	if err := unitRepo.SeedBaseUnits(ctx, nil); err != nil {
		log.Warn("unit seed failed", "error", err)
	}

	// Redis candidate cache (optional)
	var candidateCache redis.CandidateCache
	if cache, err := redis.NewCandidateCache(log); err != nil {
		log.Warn("Redis candidate cache unavailable, matching reads Postgres directly", "error", err)
	} else {
		candidateCache = cache
		defer candidateCache.Close()
	}

	// Services
	log.Info("Setting up services...")
	catalogReader := services.NewCatalogReader(thePG, log, ingredientRepo, aliasRepo, candidateCache)
	engine := matching.NewEngine(catalogReader, log)
	costingService := services.NewCostingService(thePG, log, recipeRepo, lineRepo, driverRepo, versionRepo)
	matchingService := services.NewMatchingService(thePG, log, engine, candidateCache, lineRepo, aliasRepo, ingredientCostRepo, ingredientRepo, costingService)
	mrpService := services.NewMRPService(thePG, log, planRepo, lineRepo, stockRepo)
	recipeService := services.NewRecipeService(thePG, log, recipeRepo, lineRepo, versionRepo)

	// HTTP
	server := httpServer.NewServer(httpServer.RouterConfig{
		Log:             log,
		RecipeHandler:   httpH.NewRecipeHandler(log, recipeService),
		MatchingHandler: httpH.NewMatchingHandler(log, matchingService),
		CostingHandler:  httpH.NewCostingHandler(log, costingService),
		MRPHandler:      httpH.NewMRPHandler(log, mrpService),
		HealthHandler:   httpH.NewHealthHandler(),
	})

	address := ":" + envutil.String("PORT", "8080")
	log.Info("Starting HTTP server", "address", address)
	if err := server.Run(address); err != nil {
		log.Fatal("HTTP server exited", "error", err)
	}
}
