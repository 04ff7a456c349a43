package recipes

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vallepan/recetario-backend/internal/domain/catalog"
)

const (
	LineKindNormal     = "NORMAL"
	LineKindSubsection = "SUBSECTION"

	MatchStatusAutoApproved = "AUTO_APPROVED"
	MatchStatusNeedsReview  = "NEEDS_REVIEW"
	MatchStatusRejected     = "REJECTED"

	MatchMethodAlias    = "ALIAS"
	MatchMethodExact    = "EXACT"
	MatchMethodContains = "CONTAINS"
	MatchMethodFuzzy    = "FUZZY"
	MatchMethodManual   = "MANUAL"
	MatchMethodNone     = "NO_MATCH"
)

// RecipeLine is one ingredient entry (or cost-allocation sub-entry)
// within a recipe. The ingredient reference is weak: rejected lines
// must carry a nil IngredientID.
type RecipeLine struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RecipeID uint   `gorm:"index;not null" json:"recipe_id"`
	Position int    `gorm:"not null;default:0" json:"position"`
	Kind     string `gorm:"size:20;not null;default:NORMAL" json:"kind"`
	Stage    string `gorm:"size:120" json:"stage"`

	IngredientText string              `gorm:"size:250;not null" json:"ingredient_text"`
	IngredientID   *uint               `gorm:"index" json:"ingredient_id,omitempty"`
	Ingredient     *catalog.Ingredient `gorm:"constraint:OnDelete:SET NULL;foreignKey:IngredientID;references:ID" json:"ingredient,omitempty"`

	Quantity *decimal.Decimal `gorm:"type:decimal(18,6)" json:"quantity,omitempty"`
	UnitText string           `gorm:"size:40" json:"unit_text"`

	ImportedCost     *decimal.Decimal `gorm:"type:decimal(18,6)" json:"imported_cost,omitempty"`
	UnitCostSnapshot *decimal.Decimal `gorm:"type:decimal(18,6)" json:"unit_cost_snapshot,omitempty"`

	MatchScore  float64    `gorm:"not null;default:0" json:"match_score"`
	MatchMethod string     `gorm:"size:20;not null;default:NO_MATCH" json:"match_method"`
	MatchStatus string     `gorm:"size:20;not null;default:REJECTED" json:"match_status"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
}

func (RecipeLine) TableName() string { return "recipe_line" }
