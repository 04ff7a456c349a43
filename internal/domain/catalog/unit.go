package catalog

import (
	"github.com/shopspring/decimal"
)

const (
	UnitKindMass   = "MASS"
	UnitKindVolume = "VOLUME"
	UnitKindPiece  = "UNIT"
)

// UnitOfMeasure is a purchasing/recipe unit with a factor to the base
// unit of its kind (g for mass, ml for volume, piece for unit counts).
type UnitOfMeasure struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Code         string          `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name         string          `gorm:"size:60;not null" json:"name"`
	Kind         string          `gorm:"size:10;not null;default:UNIT" json:"kind"`
	FactorToBase decimal.Decimal `gorm:"type:decimal(18,6);not null;default:1" json:"factor_to_base"`
}

func (UnitOfMeasure) TableName() string { return "unit_of_measure" }
