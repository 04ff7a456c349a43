package recipes

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/vallepan/recetario-backend/internal/domain"
	"github.com/vallepan/recetario-backend/internal/platform/logger"
)

type CostVersionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, version *types.CostVersion) (*types.CostVersion, error)
	GetLatestByRecipeID(ctx context.Context, tx *gorm.DB, recipeID uint) (*types.CostVersion, error)
	GetLatestByRecipeIDForUpdate(ctx context.Context, tx *gorm.DB, recipeID uint) (*types.CostVersion, error)
	GetByRecipeAndHash(ctx context.Context, tx *gorm.DB, recipeID uint, hash string) (*types.CostVersion, error)
	ListByRecipeID(ctx context.Context, tx *gorm.DB, recipeID uint, limit int) ([]*types.CostVersion, error)
}

type costVersionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCostVersionRepo(db *gorm.DB, baseLog *logger.Logger) CostVersionRepo {
	return &costVersionRepo{db: db, log: baseLog.With("repo", "CostVersionRepo")}
}

func (r *costVersionRepo) Create(ctx context.Context, tx *gorm.DB, version *types.CostVersion) (*types.CostVersion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(version).Error; err != nil {
		return nil, err
	}
	return version, nil
}

func (r *costVersionRepo) GetLatestByRecipeID(ctx context.Context, tx *gorm.DB, recipeID uint) (*types.CostVersion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var version types.CostVersion
	err := transaction.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("version_num DESC").
		Limit(1).
		Find(&version).Error
	if err != nil {
		return nil, err
	}
	if version.ID == 0 {
		return nil, nil
	}
	return &version, nil
}

// GetLatestByRecipeIDForUpdate row-locks the latest version so two
// writers versioning the same recipe serialize. Callers must hold an
// open transaction.
func (r *costVersionRepo) GetLatestByRecipeIDForUpdate(ctx context.Context, tx *gorm.DB, recipeID uint) (*types.CostVersion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var version types.CostVersion
	err := transaction.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("recipe_id = ?", recipeID).
		Order("version_num DESC").
		Limit(1).
		Find(&version).Error
	if err != nil {
		return nil, err
	}
	if version.ID == 0 {
		return nil, nil
	}
	return &version, nil
}

func (r *costVersionRepo) GetByRecipeAndHash(ctx context.Context, tx *gorm.DB, recipeID uint, hash string) (*types.CostVersion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var version types.CostVersion
	err := transaction.WithContext(ctx).
		Where("recipe_id = ? AND snapshot_hash = ?", recipeID, hash).
		Limit(1).
		Find(&version).Error
	if err != nil {
		return nil, err
	}
	if version.ID == 0 {
		return nil, nil
	}
	return &version, nil
}

func (r *costVersionRepo) ListByRecipeID(ctx context.Context, tx *gorm.DB, recipeID uint, limit int) ([]*types.CostVersion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("version_num DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var results []*types.CostVersion
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
