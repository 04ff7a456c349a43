package catalog

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/vallepan/recetario-backend/internal/domain"
	"github.com/vallepan/recetario-backend/internal/platform/logger"
)

type StockRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, records []*types.IngredientStock) error
	OnHandByIngredientIDs(ctx context.Context, tx *gorm.DB, ingredientIDs []uint) (map[uint]decimal.Decimal, error)
}

type stockRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStockRepo(db *gorm.DB, baseLog *logger.Logger) StockRepo {
	return &stockRepo{db: db, log: baseLog.With("repo", "StockRepo")}
}

func (r *stockRepo) Upsert(ctx context.Context, tx *gorm.DB, records []*types.IngredientStock) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(records) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ingredient_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"on_hand", "updated_at"}),
		}).
		Create(&records).Error
}

func (r *stockRepo) OnHandByIngredientIDs(ctx context.Context, tx *gorm.DB, ingredientIDs []uint) (map[uint]decimal.Decimal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	out := make(map[uint]decimal.Decimal, len(ingredientIDs))
	if len(ingredientIDs) == 0 {
		return out, nil
	}
	var rows []*types.IngredientStock
	if err := transaction.WithContext(ctx).
		Where("ingredient_id IN ?", ingredientIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.IngredientID] = row.OnHand
	}
	return out, nil
}
