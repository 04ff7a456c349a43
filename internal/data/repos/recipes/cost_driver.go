package recipes

import (
	"context"

	"gorm.io/gorm"

	types "github.com/vallepan/recetario-backend/internal/domain"
	"github.com/vallepan/recetario-backend/internal/platform/logger"
)

type CostDriverRepo interface {
	Create(ctx context.Context, tx *gorm.DB, drivers []*types.CostDriver) ([]*types.CostDriver, error)
	GetActive(ctx context.Context, tx *gorm.DB) ([]*types.CostDriver, error)
}

type costDriverRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCostDriverRepo(db *gorm.DB, baseLog *logger.Logger) CostDriverRepo {
	return &costDriverRepo{db: db, log: baseLog.With("repo", "CostDriverRepo")}
}

func (r *costDriverRepo) Create(ctx context.Context, tx *gorm.DB, drivers []*types.CostDriver) ([]*types.CostDriver, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(drivers) == 0 {
		return []*types.CostDriver{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&drivers).Error; err != nil {
		return nil, err
	}
	return drivers, nil
}

func (r *costDriverRepo) GetActive(ctx context.Context, tx *gorm.DB) ([]*types.CostDriver, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.CostDriver
	if err := transaction.WithContext(ctx).
		Where("active = ?", true).
		Order("priority ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
