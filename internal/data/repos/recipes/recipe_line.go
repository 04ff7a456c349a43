package recipes

import (
	"context"

	"gorm.io/gorm"

	types "github.com/vallepan/recetario-backend/internal/domain"
	"github.com/vallepan/recetario-backend/internal/platform/logger"
)

type RecipeLineRepo interface {
	Create(ctx context.Context, tx *gorm.DB, lines []*types.RecipeLine) ([]*types.RecipeLine, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.RecipeLine, error)
	GetByRecipeID(ctx context.Context, tx *gorm.DB, recipeID uint) ([]*types.RecipeLine, error)
	GetByRecipeIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uint) (map[uint][]*types.RecipeLine, error)
	GetPendingReview(ctx context.Context, tx *gorm.DB, recipeID *uint) ([]*types.RecipeLine, error)
	GetRematchable(ctx context.Context, tx *gorm.DB, recipeID *uint) ([]*types.RecipeLine, error)
	UpdateMatch(ctx context.Context, tx *gorm.DB, line *types.RecipeLine) error
}

type recipeLineRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeLineRepo(db *gorm.DB, baseLog *logger.Logger) RecipeLineRepo {
	return &recipeLineRepo{db: db, log: baseLog.With("repo", "RecipeLineRepo")}
}

func (r *recipeLineRepo) Create(ctx context.Context, tx *gorm.DB, lines []*types.RecipeLine) ([]*types.RecipeLine, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(lines) == 0 {
		return []*types.RecipeLine{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *recipeLineRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.RecipeLine, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var line types.RecipeLine
	err := transaction.WithContext(ctx).
		Preload("Ingredient").
		Where("id = ?", id).
		Limit(1).
		Find(&line).Error
	if err != nil {
		return nil, err
	}
	if line.ID == 0 {
		return nil, nil
	}
	return &line, nil
}

func (r *recipeLineRepo) GetByRecipeID(ctx context.Context, tx *gorm.DB, recipeID uint) ([]*types.RecipeLine, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.RecipeLine
	if err := transaction.WithContext(ctx).
		Preload("Ingredient").
		Where("recipe_id = ?", recipeID).
		Order("position ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *recipeLineRepo) GetByRecipeIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uint) (map[uint][]*types.RecipeLine, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	out := make(map[uint][]*types.RecipeLine, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return out, nil
	}
	var rows []*types.RecipeLine
	if err := transaction.WithContext(ctx).
		Preload("Ingredient").
		Where("recipe_id IN ?", recipeIDs).
		Order("recipe_id ASC, position ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.RecipeID] = append(out[row.RecipeID], row)
	}
	return out, nil
}

func (r *recipeLineRepo) GetPendingReview(ctx context.Context, tx *gorm.DB, recipeID *uint) ([]*types.RecipeLine, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(ctx).
		Preload("Ingredient").
		Where("kind = ? AND match_status = ?", types.LineKindNormal, types.MatchStatusNeedsReview)
	if recipeID != nil {
		q = q.Where("recipe_id = ?", *recipeID)
	}
	var results []*types.RecipeLine
	if err := q.Order("recipe_id ASC, position ASC, id ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetRematchable returns normal lines that either were rejected or
// never matched, the population the rematch pass operates on.
func (r *recipeLineRepo) GetRematchable(ctx context.Context, tx *gorm.DB, recipeID *uint) ([]*types.RecipeLine, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(ctx).
		Where("kind = ?", types.LineKindNormal).
		Where("match_status = ? OR ingredient_id IS NULL", types.MatchStatusRejected)
	if recipeID != nil {
		q = q.Where("recipe_id = ?", *recipeID)
	}
	var results []*types.RecipeLine
	if err := q.Order("recipe_id ASC, position ASC, id ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *recipeLineRepo) UpdateMatch(ctx context.Context, tx *gorm.DB, line *types.RecipeLine) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.RecipeLine{}).
		Where("id = ?", line.ID).
		Select("ingredient_id", "match_score", "match_method", "match_status", "unit_cost_snapshot", "approved_at").
		Updates(map[string]interface{}{
			"ingredient_id":      line.IngredientID,
			"match_score":        line.MatchScore,
			"match_method":       line.MatchMethod,
			"match_status":       line.MatchStatus,
			"unit_cost_snapshot": line.UnitCostSnapshot,
			"approved_at":        line.ApprovedAt,
		}).Error
}
