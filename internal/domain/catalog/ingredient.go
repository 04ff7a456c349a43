package catalog

import (
	"time"

	"github.com/vallepan/recetario-backend/internal/normalization"
)

// Ingredient is a purchasable or internally derived material consumed
// by recipe lines. Lines reference it weakly; the catalog owns it.
type Ingredient struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Code           string         `gorm:"size:60;index" json:"code"`
	Name           string         `gorm:"size:250;not null" json:"name"`
	NormalizedName string         `gorm:"size:260;index;not null" json:"normalized_name"`
	UnitID         *uint          `gorm:"index" json:"unit_id,omitempty"`
	Unit           *UnitOfMeasure `gorm:"constraint:OnDelete:SET NULL;foreignKey:UnitID;references:ID" json:"unit,omitempty"`
	Active         bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (Ingredient) TableName() string { return "ingredient" }

// NewIngredient computes derived fields up front; there is no save
// hook that normalizes on the way to the database.
func NewIngredient(name, code string, unitID *uint) *Ingredient {
	return &Ingredient{
		Code:           code,
		Name:           name,
		NormalizedName: normalization.Name(name),
		UnitID:         unitID,
		Active:         true,
	}
}
