package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/vallepan/recetario-backend/internal/costing"
	"github.com/vallepan/recetario-backend/internal/data/repos"
	types "github.com/vallepan/recetario-backend/internal/domain"
	"github.com/vallepan/recetario-backend/internal/normalization"
	pkgerrors "github.com/vallepan/recetario-backend/internal/pkg/errors"
	"github.com/vallepan/recetario-backend/internal/platform/logger"
)

// RecipeSummary is a list row: the recipe plus its latest cost
// version, when one exists.
type RecipeSummary struct {
	Recipe        *types.Recipe      `json:"recipe"`
	LatestVersion *types.CostVersion `json:"latest_version,omitempty"`
}

// RecipeDetail is the full view: lines, version history and the
// delta between the two most recent versions.
type RecipeDetail struct {
	Recipe        *types.Recipe         `json:"recipe"`
	Lines         []*types.RecipeLine   `json:"lines"`
	Versions      []*types.CostVersion  `json:"versions"`
	Delta         *costing.VersionDelta `json:"delta,omitempty"`
	PendingReview int                   `json:"pending_review"`
}

type RecipeService interface {
	List(ctx context.Context, query string) ([]RecipeSummary, error)
	Detail(ctx context.Context, recipeID uint) (*RecipeDetail, error)
}

type recipeService struct {
	db          *gorm.DB
	log         *logger.Logger
	recipeRepo  repos.RecipeRepo
	lineRepo    repos.RecipeLineRepo
	versionRepo repos.CostVersionRepo
}

func NewRecipeService(db *gorm.DB, log *logger.Logger, recipeRepo repos.RecipeRepo, lineRepo repos.RecipeLineRepo, versionRepo repos.CostVersionRepo) RecipeService {
	serviceLog := log.With("service", "RecipeService")
	return &recipeService{
		db:          db,
		log:         serviceLog,
		recipeRepo:  recipeRepo,
		lineRepo:    lineRepo,
		versionRepo: versionRepo,
	}
}

func (rs *recipeService) List(ctx context.Context, query string) ([]RecipeSummary, error) {
	found, err := rs.recipeRepo.List(ctx, nil, normalization.Name(query))
	if err != nil {
		return nil, err
	}
	summaries := make([]RecipeSummary, 0, len(found))
	for _, recipe := range found {
		latest, err := rs.versionRepo.GetLatestByRecipeID(ctx, nil, recipe.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, RecipeSummary{Recipe: recipe, LatestVersion: latest})
	}
	return summaries, nil
}

func (rs *recipeService) Detail(ctx context.Context, recipeID uint) (*RecipeDetail, error) {
	recipe, err := rs.recipeRepo.GetByID(ctx, nil, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, fmt.Errorf("recipe %d: %w", recipeID, pkgerrors.ErrNotFound)
	}

	lines, err := rs.lineRepo.GetByRecipeID(ctx, nil, recipeID)
	if err != nil {
		return nil, err
	}
	versions, err := rs.versionRepo.ListByRecipeID(ctx, nil, recipeID, 0)
	if err != nil {
		return nil, err
	}

	pending := 0
	for _, line := range lines {
		if line.Kind == types.LineKindNormal && line.MatchStatus == types.MatchStatusNeedsReview {
			pending++
		}
	}

	return &RecipeDetail{
		Recipe:        recipe,
		Lines:         lines,
		Versions:      versions,
		Delta:         costing.CompareLatest(versions),
		PendingReview: pending,
	}, nil
}
