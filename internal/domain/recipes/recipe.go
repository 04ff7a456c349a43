package recipes

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vallepan/recetario-backend/internal/normalization"
)

const (
	RecipeTypeIntermediate = "INTERMEDIATE"
	RecipeTypeFinalProduct = "FINAL_PRODUCT"
)

// Recipe is a bill-of-materials record: an internal intermediate
// preparation or a final sellable product. It owns its lines and its
// cost version history.
type Recipe struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	Name           string           `gorm:"size:250;not null" json:"name"`
	NormalizedName string           `gorm:"size:260;index;not null" json:"normalized_name"`
	Type           string           `gorm:"size:20;not null;default:INTERMEDIATE" json:"type"`
	SheetTag       string           `gorm:"size:120" json:"sheet_tag"`
	ContentHash    string           `gorm:"size:64;uniqueIndex;not null" json:"content_hash"`
	YieldQty       *decimal.Decimal `gorm:"type:decimal(18,6)" json:"yield_qty,omitempty"`
	YieldUnit      string           `gorm:"size:20" json:"yield_unit"`
	CreatedAt      time.Time        `gorm:"not null;default:now()" json:"created_at"`

	Lines []*RecipeLine `gorm:"foreignKey:RecipeID;references:ID" json:"lines,omitempty"`
}

func (Recipe) TableName() string { return "recipe" }

// NewRecipe computes normalized fields up front instead of relying on
// persistence hooks.
func NewRecipe(name, recipeType, sheetTag, contentHash string) *Recipe {
	return &Recipe{
		Name:           name,
		NormalizedName: normalization.Name(name),
		Type:           recipeType,
		SheetTag:       sheetTag,
		ContentHash:    contentHash,
	}
}

// FamilyKey derives the recipe's family from its source sheet tag,
// falling back to its own normalized name. The sheet is the most
// stable notion of "family" present in the imported data; revisit if
// a real family attribute ever lands in the catalog.
func (r *Recipe) FamilyKey() string {
	if key := normalization.Name(r.SheetTag); key != "" {
		return key
	}
	return r.NormalizedName
}
