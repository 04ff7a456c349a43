package planning

import (
	"context"

	"gorm.io/gorm"

	types "github.com/vallepan/recetario-backend/internal/domain"
	"github.com/vallepan/recetario-backend/internal/platform/logger"
)

type ProductionPlanRepo interface {
	Create(ctx context.Context, tx *gorm.DB, plan *types.ProductionPlan) (*types.ProductionPlan, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.ProductionPlan, error)
	GetItemsByPlanID(ctx context.Context, tx *gorm.DB, planID uint) ([]*types.PlanItem, error)
}

type productionPlanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductionPlanRepo(db *gorm.DB, baseLog *logger.Logger) ProductionPlanRepo {
	return &productionPlanRepo{db: db, log: baseLog.With("repo", "ProductionPlanRepo")}
}

func (r *productionPlanRepo) Create(ctx context.Context, tx *gorm.DB, plan *types.ProductionPlan) (*types.ProductionPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(plan).Error; err != nil {
		return nil, err
	}
	return plan, nil
}

func (r *productionPlanRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.ProductionPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var plan types.ProductionPlan
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&plan).Error
	if err != nil {
		return nil, err
	}
	if plan.ID == 0 {
		return nil, nil
	}
	return &plan, nil
}

func (r *productionPlanRepo) GetItemsByPlanID(ctx context.Context, tx *gorm.DB, planID uint) ([]*types.PlanItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var items []*types.PlanItem
	if err := transaction.WithContext(ctx).
		Preload("Recipe").
		Where("plan_id = ?", planID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
