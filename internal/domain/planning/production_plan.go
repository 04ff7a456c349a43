package planning

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vallepan/recetario-backend/internal/domain/recipes"
)

// ProductionPlan is a dated list of recipe/quantity pairs. The engine
// reads plans; it never writes them.
type ProductionPlan struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	Name           string      `gorm:"size:200;not null" json:"name"`
	ProductionDate time.Time   `gorm:"type:date;not null" json:"production_date"`
	CreatedAt      time.Time   `gorm:"not null;default:now()" json:"created_at"`
	Items          []*PlanItem `gorm:"foreignKey:PlanID;references:ID" json:"items,omitempty"`
}

func (ProductionPlan) TableName() string { return "production_plan" }

type PlanItem struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	PlanID   uint            `gorm:"index;not null" json:"plan_id"`
	RecipeID uint            `gorm:"index;not null" json:"recipe_id"`
	Recipe   *recipes.Recipe `gorm:"constraint:OnDelete:CASCADE;foreignKey:RecipeID;references:ID" json:"recipe,omitempty"`
	Quantity decimal.Decimal `gorm:"type:decimal(18,6);not null;default:1" json:"quantity"`
	Position int             `gorm:"not null;default:0" json:"position"`
}

func (PlanItem) TableName() string { return "plan_item" }
