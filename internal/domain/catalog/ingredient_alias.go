package catalog

import (
	"time"

	"github.com/vallepan/recetario-backend/internal/normalization"
)

// IngredientAlias maps an alternate free-text name to an ingredient.
// Aliases are created by matching-approval workflows and consulted
// before any fuzzy step.
type IngredientAlias struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	Name           string      `gorm:"size:250;not null" json:"name"`
	NormalizedName string      `gorm:"size:260;uniqueIndex;not null" json:"normalized_name"`
	IngredientID   uint        `gorm:"index;not null" json:"ingredient_id"`
	Ingredient     *Ingredient `gorm:"constraint:OnDelete:CASCADE;foreignKey:IngredientID;references:ID" json:"ingredient,omitempty"`
	CreatedAt      time.Time   `gorm:"not null;default:now()" json:"created_at"`
}

func (IngredientAlias) TableName() string { return "ingredient_alias" }

func NewIngredientAlias(name string, ingredientID uint) *IngredientAlias {
	return &IngredientAlias{
		Name:           name,
		NormalizedName: normalization.Name(name),
		IngredientID:   ingredientID,
	}
}
