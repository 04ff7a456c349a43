package catalog

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/vallepan/recetario-backend/internal/domain"
	"github.com/vallepan/recetario-backend/internal/platform/logger"
)

type UnitRepo interface {
	Create(ctx context.Context, tx *gorm.DB, units []*types.UnitOfMeasure) ([]*types.UnitOfMeasure, error)
	GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.UnitOfMeasure, error)
	SeedBaseUnits(ctx context.Context, tx *gorm.DB) error
}

type unitRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUnitRepo(db *gorm.DB, baseLog *logger.Logger) UnitRepo {
	return &unitRepo{db: db, log: baseLog.With("repo", "UnitRepo")}
}

func (r *unitRepo) Create(ctx context.Context, tx *gorm.DB, units []*types.UnitOfMeasure) ([]*types.UnitOfMeasure, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(units) == 0 {
		return []*types.UnitOfMeasure{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

func (r *unitRepo) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.UnitOfMeasure, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if code == "" {
		return nil, nil
	}
	var unit types.UnitOfMeasure
	err := transaction.WithContext(ctx).
		Where("code = ?", code).
		Limit(1).
		Find(&unit).Error
	if err != nil {
		return nil, err
	}
	if unit.ID == 0 {
		return nil, nil
	}
	return &unit, nil
}

// SeedBaseUnits installs the common bakery units. Safe to call on
// every boot.
func (r *unitRepo) SeedBaseUnits(ctx context.Context, tx *gorm.DB) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	units := []*types.UnitOfMeasure{
		{Code: "g", Name: "Gramo", Kind: types.UnitKindMass, FactorToBase: decimal.NewFromInt(1)},
		{Code: "kg", Name: "Kilogramo", Kind: types.UnitKindMass, FactorToBase: decimal.NewFromInt(1000)},
		{Code: "ml", Name: "Mililitro", Kind: types.UnitKindVolume, FactorToBase: decimal.NewFromInt(1)},
		{Code: "lt", Name: "Litro", Kind: types.UnitKindVolume, FactorToBase: decimal.NewFromInt(1000)},
		{Code: "pza", Name: "Pieza", Kind: types.UnitKindPiece, FactorToBase: decimal.NewFromInt(1)},
		{Code: "pz", Name: "Pieza", Kind: types.UnitKindPiece, FactorToBase: decimal.NewFromInt(1)},
		{Code: "unidad", Name: "Unidad", Kind: types.UnitKindPiece, FactorToBase: decimal.NewFromInt(1)},
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}).
		Create(&units).Error
}
