package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vallepan/recetario-backend/internal/data/repos"
	"github.com/vallepan/recetario-backend/internal/mrp"
	pkgerrors "github.com/vallepan/recetario-backend/internal/pkg/errors"
	"github.com/vallepan/recetario-backend/internal/platform/logger"
)

// ExplodeItem is one ad-hoc recipe/quantity pair for an explosion
// that is not backed by a stored plan.
type ExplodeItem struct {
	RecipeID   uint            `json:"recipe_id"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

type MRPService interface {
	ExplodePlan(ctx context.Context, planID uint) (*mrp.Summary, error)
	ExplodeItems(ctx context.Context, items []ExplodeItem) (*mrp.Summary, error)
}

type mrpService struct {
	db        *gorm.DB
	log       *logger.Logger
	planRepo  repos.ProductionPlanRepo
	lineRepo  repos.RecipeLineRepo
	stockRepo repos.StockRepo
}

func NewMRPService(db *gorm.DB, log *logger.Logger, planRepo repos.ProductionPlanRepo, lineRepo repos.RecipeLineRepo, stockRepo repos.StockRepo) MRPService {
	serviceLog := log.With("service", "MRPService")
	return &mrpService{
		db:        db,
		log:       serviceLog,
		planRepo:  planRepo,
		lineRepo:  lineRepo,
		stockRepo: stockRepo,
	}
}

func (ss *mrpService) ExplodePlan(ctx context.Context, planID uint) (*mrp.Summary, error) {
	plan, err := ss.planRepo.GetByID(ctx, nil, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, fmt.Errorf("production plan %d: %w", planID, pkgerrors.ErrNotFound)
	}
	planItems, err := ss.planRepo.GetItemsByPlanID(ctx, nil, planID)
	if err != nil {
		return nil, err
	}

	items := make([]ExplodeItem, 0, len(planItems))
	for _, item := range planItems {
		items = append(items, ExplodeItem{RecipeID: item.RecipeID, Multiplier: item.Quantity})
	}
	return ss.ExplodeItems(ctx, items)
}

func (ss *mrpService) ExplodeItems(ctx context.Context, items []ExplodeItem) (*mrp.Summary, error) {
	recipeIDs := make([]uint, 0, len(items))
	for _, item := range items {
		recipeIDs = append(recipeIDs, item.RecipeID)
	}
	linesByRecipe, err := ss.lineRepo.GetByRecipeIDs(ctx, nil, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("load recipe lines: %w", err)
	}

	flattened := make([]mrp.ItemLines, 0, len(items))
	for _, item := range items {
		flattened = append(flattened, mrp.ItemLines{
			Multiplier: item.Multiplier,
			Lines:      linesByRecipe[item.RecipeID],
		})
	}

	summary, err := mrp.Explode(ctx, flattened, ss)
	if err != nil {
		return nil, err
	}
	if summary.UnmatchedLines > 0 || summary.MissingQty > 0 || summary.MissingUnitCost > 0 {
		ss.log.Warn("explosion has data-quality gaps",
			"unmatched_lines", summary.UnmatchedLines,
			"missing_qty", summary.MissingQty,
			"missing_unit_cost", summary.MissingUnitCost)
	}
	return summary, nil
}

// OnHand implements mrp.StockReader over the stock repo.
func (ss *mrpService) OnHand(ctx context.Context, ingredientIDs []uint) (map[uint]decimal.Decimal, error) {
	return ss.stockRepo.OnHandByIngredientIDs(ctx, nil, ingredientIDs)
}
