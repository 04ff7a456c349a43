package recipes

import (
	"context"

	"gorm.io/gorm"

	types "github.com/vallepan/recetario-backend/internal/domain"
	"github.com/vallepan/recetario-backend/internal/platform/logger"
)

type RecipeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, recipes []*types.Recipe) ([]*types.Recipe, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Recipe, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*types.Recipe, error)
	List(ctx context.Context, tx *gorm.DB, query string) ([]*types.Recipe, error)
}

type recipeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRepo {
	return &recipeRepo{db: db, log: baseLog.With("repo", "RecipeRepo")}
}

func (r *recipeRepo) Create(ctx context.Context, tx *gorm.DB, recipes []*types.Recipe) ([]*types.Recipe, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(recipes) == 0 {
		return []*types.Recipe{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Recipe, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var recipe types.Recipe
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&recipe).Error
	if err != nil {
		return nil, err
	}
	if recipe.ID == 0 {
		return nil, nil
	}
	return &recipe, nil
}

func (r *recipeRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*types.Recipe, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Recipe
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *recipeRepo) List(ctx context.Context, tx *gorm.DB, query string) ([]*types.Recipe, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(ctx).Order("name ASC, id ASC")
	if query != "" {
		q = q.Where("normalized_name LIKE ?", "%"+query+"%")
	}
	var results []*types.Recipe
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
