package catalog

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/vallepan/recetario-backend/internal/domain"
	"github.com/vallepan/recetario-backend/internal/platform/logger"
)

type IngredientAliasRepo interface {
	Create(ctx context.Context, tx *gorm.DB, aliases []*types.IngredientAlias) ([]*types.IngredientAlias, error)
	Ensure(ctx context.Context, tx *gorm.DB, alias *types.IngredientAlias) error
	GetByNormalizedName(ctx context.Context, tx *gorm.DB, name string) (*types.IngredientAlias, error)
	GetByIngredientIDs(ctx context.Context, tx *gorm.DB, ingredientIDs []uint) ([]*types.IngredientAlias, error)
}

type ingredientAliasRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIngredientAliasRepo(db *gorm.DB, baseLog *logger.Logger) IngredientAliasRepo {
	return &ingredientAliasRepo{db: db, log: baseLog.With("repo", "IngredientAliasRepo")}
}

func (r *ingredientAliasRepo) Create(ctx context.Context, tx *gorm.DB, aliases []*types.IngredientAlias) ([]*types.IngredientAlias, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(aliases) == 0 {
		return []*types.IngredientAlias{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&aliases).Error; err != nil {
		return nil, err
	}
	return aliases, nil
}

// Ensure inserts the alias unless its normalized name is already taken;
// an existing mapping wins and the insert is a no-op.
func (r *ingredientAliasRepo) Ensure(ctx context.Context, tx *gorm.DB, alias *types.IngredientAlias) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "normalized_name"}},
			DoNothing: true,
		}).
		Create(alias).Error
}

func (r *ingredientAliasRepo) GetByNormalizedName(ctx context.Context, tx *gorm.DB, name string) (*types.IngredientAlias, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if name == "" {
		return nil, nil
	}
	var alias types.IngredientAlias
	err := transaction.WithContext(ctx).
		Preload("Ingredient").
		Where("normalized_name = ?", name).
		Limit(1).
		Find(&alias).Error
	if err != nil {
		return nil, err
	}
	if alias.ID == 0 {
		return nil, nil
	}
	return &alias, nil
}

func (r *ingredientAliasRepo) GetByIngredientIDs(ctx context.Context, tx *gorm.DB, ingredientIDs []uint) ([]*types.IngredientAlias, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.IngredientAlias
	if len(ingredientIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("ingredient_id IN ?", ingredientIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
