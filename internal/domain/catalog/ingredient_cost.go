package catalog

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// IngredientCost is one observed unit cost for an ingredient. Rows
// are append-only; the latest by (date, id) is the current snapshot
// source for recipe lines.
type IngredientCost struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	IngredientID uint            `gorm:"index;not null" json:"ingredient_id"`
	Ingredient   *Ingredient     `gorm:"constraint:OnDelete:CASCADE;foreignKey:IngredientID;references:ID" json:"ingredient,omitempty"`
	Date         time.Time       `gorm:"type:date;not null" json:"date"`
	Currency     string          `gorm:"size:10;not null;default:MXN" json:"currency"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(18,6);not null" json:"unit_cost"`
	SourceHash   string          `gorm:"size:64;uniqueIndex;not null" json:"source_hash"`
	Raw          datatypes.JSON  `gorm:"type:jsonb" json:"raw,omitempty"`
	CreatedAt    time.Time       `gorm:"not null;default:now()" json:"created_at"`
}

func (IngredientCost) TableName() string { return "ingredient_cost" }
