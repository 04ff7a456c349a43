package catalog

import (
	"context"

	"gorm.io/gorm"

	types "github.com/vallepan/recetario-backend/internal/domain"
	"github.com/vallepan/recetario-backend/internal/platform/logger"
)

type IngredientCostRepo interface {
	Create(ctx context.Context, tx *gorm.DB, costs []*types.IngredientCost) ([]*types.IngredientCost, error)
	GetLatestByIngredientID(ctx context.Context, tx *gorm.DB, ingredientID uint) (*types.IngredientCost, error)
	GetLatestByIngredientIDs(ctx context.Context, tx *gorm.DB, ingredientIDs []uint) (map[uint]*types.IngredientCost, error)
}

type ingredientCostRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIngredientCostRepo(db *gorm.DB, baseLog *logger.Logger) IngredientCostRepo {
	return &ingredientCostRepo{db: db, log: baseLog.With("repo", "IngredientCostRepo")}
}

func (r *ingredientCostRepo) Create(ctx context.Context, tx *gorm.DB, costs []*types.IngredientCost) ([]*types.IngredientCost, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(costs) == 0 {
		return []*types.IngredientCost{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&costs).Error; err != nil {
		return nil, err
	}
	return costs, nil
}

// GetLatestByIngredientID returns the most recent cost record for the
// ingredient, newest date first with id as the tiebreaker.
func (r *ingredientCostRepo) GetLatestByIngredientID(ctx context.Context, tx *gorm.DB, ingredientID uint) (*types.IngredientCost, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var cost types.IngredientCost
	err := transaction.WithContext(ctx).
		Where("ingredient_id = ?", ingredientID).
		Order("date DESC, id DESC").
		Limit(1).
		Find(&cost).Error
	if err != nil {
		return nil, err
	}
	if cost.ID == 0 {
		return nil, nil
	}
	return &cost, nil
}

func (r *ingredientCostRepo) GetLatestByIngredientIDs(ctx context.Context, tx *gorm.DB, ingredientIDs []uint) (map[uint]*types.IngredientCost, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	out := make(map[uint]*types.IngredientCost, len(ingredientIDs))
	if len(ingredientIDs) == 0 {
		return out, nil
	}
	var rows []*types.IngredientCost
	if err := transaction.WithContext(ctx).
		Where("ingredient_id IN ?", ingredientIDs).
		Order("date ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	// Rows arrive oldest first so the last write per ingredient wins.
	for _, row := range rows {
		out[row.IngredientID] = row
	}
	return out, nil
}
