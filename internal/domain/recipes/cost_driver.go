package recipes

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DriverScopeProduct = "PRODUCT"
	DriverScopeFamily  = "FAMILY"
	DriverScopeBatch   = "BATCH"
	DriverScopeGlobal  = "GLOBAL"
)

// CostDriver is a configurable labor/overhead rule scoped to one
// recipe, a recipe family, a batch-size range, or globally. Lower
// priority wins among equally scored candidates.
type CostDriver struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Name      string  `gorm:"size:120;not null" json:"name"`
	Scope     string  `gorm:"size:10;not null" json:"scope"`
	RecipeID  *uint   `gorm:"index" json:"recipe_id,omitempty"`
	Recipe    *Recipe `gorm:"constraint:OnDelete:CASCADE;foreignKey:RecipeID;references:ID" json:"recipe,omitempty"`
	FamilyKey string  `gorm:"size:260;index" json:"family_key"`

	BatchFrom *decimal.Decimal `gorm:"type:decimal(18,6)" json:"batch_from,omitempty"`
	BatchTo   *decimal.Decimal `gorm:"type:decimal(18,6)" json:"batch_to,omitempty"`

	LaborPct      decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"labor_pct"`
	OverheadPct   decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"overhead_pct"`
	LaborFixed    decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"labor_fixed"`
	OverheadFixed decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"overhead_fixed"`

	Priority  int       `gorm:"not null;default:100" json:"priority"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (CostDriver) TableName() string { return "cost_driver" }
