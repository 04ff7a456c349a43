package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// IngredientStock is the current on-hand quantity per ingredient,
// maintained by the inventory collaborator. Absent row means zero.
type IngredientStock struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	IngredientID uint            `gorm:"uniqueIndex;not null" json:"ingredient_id"`
	Ingredient   *Ingredient     `gorm:"constraint:OnDelete:CASCADE;foreignKey:IngredientID;references:ID" json:"ingredient,omitempty"`
	OnHand       decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"on_hand"`
	UpdatedAt    time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (IngredientStock) TableName() string { return "ingredient_stock" }
