package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vallepan/recetario-backend/internal/clients/redis"
	"github.com/vallepan/recetario-backend/internal/data/repos"
	types "github.com/vallepan/recetario-backend/internal/domain"
	"github.com/vallepan/recetario-backend/internal/domain/catalog"
	"github.com/vallepan/recetario-backend/internal/matching"
	pkgerrors "github.com/vallepan/recetario-backend/internal/pkg/errors"
	"github.com/vallepan/recetario-backend/internal/platform/logger"
)

const (
	sourceTagRematch = "REMATCH"
	sourceTagManual  = "MANUAL_APPROVE"
)

// RematchResult summarizes one rematch pass over unresolved lines.
type RematchResult struct {
	Scanned      int `json:"scanned"`
	AutoApproved int `json:"auto_approved"`
	NeedsReview  int `json:"needs_review"`
	StillNoMatch int `json:"still_no_match"`
	Reversioned  int `json:"reversioned_recipes"`
}

type MatchingService interface {
	Preview(ctx context.Context, freeText string) (*matching.Result, string, error)
	RematchLines(ctx context.Context, recipeID *uint) (*RematchResult, error)
	ApproveLine(ctx context.Context, lineID uint, ingredientID uint, createAlias bool) (*types.RecipeLine, error)
	PendingReview(ctx context.Context, recipeID *uint) ([]*types.RecipeLine, error)
}

type matchingService struct {
	db        *gorm.DB
	log       *logger.Logger
	engine    *matching.Engine
	cache     redis.CandidateCache
	lineRepo  repos.RecipeLineRepo
	aliasRepo repos.IngredientAliasRepo
	costRepo  repos.IngredientCostRepo
	ingRepo   repos.IngredientRepo
	costing   CostingService
}

func NewMatchingService(db *gorm.DB, log *logger.Logger, engine *matching.Engine, cache redis.CandidateCache, lineRepo repos.RecipeLineRepo, aliasRepo repos.IngredientAliasRepo, costRepo repos.IngredientCostRepo, ingRepo repos.IngredientRepo, costingService CostingService) MatchingService {
	serviceLog := log.With("service", "MatchingService")
	return &matchingService{
		db:        db,
		log:       serviceLog,
		engine:    engine,
		cache:     cache,
		lineRepo:  lineRepo,
		aliasRepo: aliasRepo,
		costRepo:  costRepo,
		ingRepo:   ingRepo,
		costing:   costingService,
	}
}

// Preview resolves a free-text name without persisting anything.
// Returns the match result and its classification.
func (ms *matchingService) Preview(ctx context.Context, freeText string) (*matching.Result, string, error) {
	result, err := ms.engine.Match(ctx, freeText)
	if err != nil {
		return nil, "", err
	}
	return &result, matching.Classify(result.Score), nil
}

// RematchLines re-runs the match pipeline over rejected and unmatched
// lines, persists improved outcomes and re-versions every recipe a
// line changed on.
func (ms *matchingService) RematchLines(ctx context.Context, recipeID *uint) (*RematchResult, error) {
	// Rematch passes usually follow catalog imports; drop the cached
	// candidate list so the pass sees the current catalog.
	if ms.cache != nil {
		if err := ms.cache.Invalidate(ctx); err != nil {
			ms.log.Warn("candidate cache invalidation failed", "error", err)
		}
	}

	lines, err := ms.lineRepo.GetRematchable(ctx, nil, recipeID)
	if err != nil {
		return nil, fmt.Errorf("load rematchable lines: %w", err)
	}

	result := &RematchResult{}
	touchedRecipes := map[uint]struct{}{}

	for _, line := range lines {
		result.Scanned++

		match, err := ms.engine.Match(ctx, line.IngredientText)
		if err != nil {
			return nil, fmt.Errorf("match line %d: %w", line.ID, err)
		}
		status := matching.Classify(match.Score)

		if match.Ingredient == nil || status == types.MatchStatusRejected {
			result.StillNoMatch++
			continue
		}

		line.IngredientID = &match.Ingredient.ID
		line.MatchScore = match.Score
		line.MatchMethod = match.Method
		line.MatchStatus = status
		if status == types.MatchStatusAutoApproved {
			result.AutoApproved++
		} else {
			result.NeedsReview++
		}

		if line.UnitCostSnapshot == nil {
			if snapshot, err := ms.latestUnitCost(ctx, match.Ingredient.ID); err != nil {
				return nil, err
			} else if snapshot != nil {
				line.UnitCostSnapshot = snapshot
			}
		}

		if err := ms.lineRepo.UpdateMatch(ctx, nil, line); err != nil {
			return nil, fmt.Errorf("persist line %d: %w", line.ID, err)
		}
		touchedRecipes[line.RecipeID] = struct{}{}
	}

	for id := range touchedRecipes {
		if _, _, err := ms.costing.EnsureVersion(ctx, id, decimal.NewFromInt(1), sourceTagRematch); err != nil {
			return nil, fmt.Errorf("reversion recipe %d: %w", id, err)
		}
		result.Reversioned++
	}

	ms.log.Info("rematch pass done",
		"scanned", result.Scanned,
		"auto_approved", result.AutoApproved,
		"needs_review", result.NeedsReview,
		"still_no_match", result.StillNoMatch,
		"reversioned", result.Reversioned)
	return result, nil
}

// ApproveLine pins a line to an ingredient as a manual decision,
// optionally records the line text as an alias for future imports,
// and re-versions the recipe.
func (ms *matchingService) ApproveLine(ctx context.Context, lineID uint, ingredientID uint, createAlias bool) (*types.RecipeLine, error) {
	line, err := ms.lineRepo.GetByID(ctx, nil, lineID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, fmt.Errorf("recipe line %d: %w", lineID, pkgerrors.ErrNotFound)
	}
	if line.Kind != types.LineKindNormal {
		return nil, fmt.Errorf("line %d is not an ingredient line: %w", lineID, pkgerrors.ErrInvalidArgument)
	}

	found, err := ms.ingRepo.GetByIDs(ctx, nil, []uint{ingredientID})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("ingredient %d: %w", ingredientID, pkgerrors.ErrNotFound)
	}
	ingredient := found[0]

	err = ms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		line.IngredientID = &ingredient.ID
		line.MatchScore = 100
		line.MatchMethod = types.MatchMethodManual
		line.MatchStatus = types.MatchStatusAutoApproved
		line.ApprovedAt = &now

		if line.UnitCostSnapshot == nil {
			snapshot, err := ms.latestUnitCost(ctx, ingredient.ID)
			if err != nil {
				return err
			}
			line.UnitCostSnapshot = snapshot
		}

		if err := ms.lineRepo.UpdateMatch(ctx, tx, line); err != nil {
			return fmt.Errorf("persist line: %w", err)
		}

		if createAlias {
			// An existing alias for the same text keeps its mapping;
			// the manual decision on the line stands either way.
			alias := catalog.NewIngredientAlias(line.IngredientText, ingredient.ID)
			if err := ms.aliasRepo.Ensure(ctx, tx, alias); err != nil {
				return fmt.Errorf("create alias: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, _, err := ms.costing.EnsureVersion(ctx, line.RecipeID, decimal.NewFromInt(1), sourceTagManual); err != nil {
		return nil, fmt.Errorf("reversion recipe %d: %w", line.RecipeID, err)
	}

	line.Ingredient = ingredient
	return line, nil
}

func (ms *matchingService) PendingReview(ctx context.Context, recipeID *uint) ([]*types.RecipeLine, error) {
	return ms.lineRepo.GetPendingReview(ctx, nil, recipeID)
}

func (ms *matchingService) latestUnitCost(ctx context.Context, ingredientID uint) (*decimal.Decimal, error) {
	cost, err := ms.costRepo.GetLatestByIngredientID(ctx, nil, ingredientID)
	if err != nil {
		return nil, fmt.Errorf("latest unit cost for ingredient %d: %w", ingredientID, err)
	}
	if cost == nil {
		return nil, nil
	}
	c := cost.UnitCost
	return &c, nil
}
