package catalog

import (
	"context"

	"gorm.io/gorm"

	types "github.com/vallepan/recetario-backend/internal/domain"
	"github.com/vallepan/recetario-backend/internal/platform/logger"
)

type IngredientRepo interface {
	Create(ctx context.Context, tx *gorm.DB, ingredients []*types.Ingredient) ([]*types.Ingredient, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*types.Ingredient, error)
	GetByNormalizedName(ctx context.Context, tx *gorm.DB, name string) (*types.Ingredient, error)
	GetContainingNormalizedName(ctx context.Context, tx *gorm.DB, needle string) (*types.Ingredient, error)
	ListActive(ctx context.Context, tx *gorm.DB) ([]*types.Ingredient, error)
}

type ingredientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIngredientRepo(db *gorm.DB, baseLog *logger.Logger) IngredientRepo {
	return &ingredientRepo{db: db, log: baseLog.With("repo", "IngredientRepo")}
}

func (r *ingredientRepo) Create(ctx context.Context, tx *gorm.DB, ingredients []*types.Ingredient) ([]*types.Ingredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(ingredients) == 0 {
		return []*types.Ingredient{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*types.Ingredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Ingredient
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Unit").
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ingredientRepo) GetByNormalizedName(ctx context.Context, tx *gorm.DB, name string) (*types.Ingredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if name == "" {
		return nil, nil
	}
	var ing types.Ingredient
	err := transaction.WithContext(ctx).
		Where("normalized_name = ? AND active = ?", name, true).
		Order("id ASC").
		Limit(1).
		Find(&ing).Error
	if err != nil {
		return nil, err
	}
	if ing.ID == 0 {
		return nil, nil
	}
	return &ing, nil
}

func (r *ingredientRepo) GetContainingNormalizedName(ctx context.Context, tx *gorm.DB, needle string) (*types.Ingredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if needle == "" {
		return nil, nil
	}
	var ing types.Ingredient
	err := transaction.WithContext(ctx).
		Where("normalized_name LIKE ? AND active = ?", "%"+needle+"%", true).
		Order("id ASC").
		Limit(1).
		Find(&ing).Error
	if err != nil {
		return nil, err
	}
	if ing.ID == 0 {
		return nil, nil
	}
	return &ing, nil
}

func (r *ingredientRepo) ListActive(ctx context.Context, tx *gorm.DB) ([]*types.Ingredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Ingredient
	if err := transaction.WithContext(ctx).
		Select("id", "normalized_name").
		Where("active = ?", true).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
