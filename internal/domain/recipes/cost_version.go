package recipes

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CostVersion is one immutable computed cost record for a recipe.
// Rows are created by the versioning engine and never updated or
// deleted; (recipe_id, version_num) and (recipe_id, snapshot_hash)
// are both unique so concurrent writers surface as constraint
// violations rather than duplicate versions.
type CostVersion struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	RecipeID     uint   `gorm:"not null;uniqueIndex:idx_cost_version_recipe_num,priority:1;uniqueIndex:idx_cost_version_recipe_hash,priority:1" json:"recipe_id"`
	VersionNum   int    `gorm:"not null;uniqueIndex:idx_cost_version_recipe_num,priority:2" json:"version_num"`
	SnapshotHash string `gorm:"size:64;not null;uniqueIndex:idx_cost_version_recipe_hash,priority:2" json:"snapshot_hash"`

	BatchRef decimal.Decimal `gorm:"type:decimal(18,6);not null;default:1" json:"batch_ref"`

	DriverScope   string          `gorm:"size:10" json:"driver_scope"`
	DriverName    string          `gorm:"size:120" json:"driver_name"`
	LaborPct      decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"labor_pct"`
	OverheadPct   decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"overhead_pct"`
	LaborFixed    decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"labor_fixed"`
	OverheadFixed decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"overhead_fixed"`

	MaterialCost decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"material_cost"`
	LaborCost    decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"labor_cost"`
	OverheadCost decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"overhead_cost"`
	TotalCost    decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"total_cost"`

	YieldQty         *decimal.Decimal `gorm:"type:decimal(18,6)" json:"yield_qty,omitempty"`
	YieldUnit        string           `gorm:"size:20" json:"yield_unit"`
	CostPerYieldUnit *decimal.Decimal `gorm:"type:decimal(18,6)" json:"cost_per_yield_unit,omitempty"`

	UncostedLines int            `gorm:"not null;default:0" json:"uncosted_lines"`
	Payload       datatypes.JSON `gorm:"type:jsonb" json:"payload,omitempty"`
	SourceTag     string         `gorm:"size:40" json:"source_tag"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (CostVersion) TableName() string { return "cost_version" }
