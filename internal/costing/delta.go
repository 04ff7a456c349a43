package costing

import (
	"github.com/shopspring/decimal"

	"github.com/vallepan/recetario-backend/internal/domain/recipes"
)

// VersionDelta compares the two most recent cost versions of a recipe.
type VersionDelta struct {
	CurrentVersion  int             `json:"current_version"`
	PreviousVersion int             `json:"previous_version"`
	DeltaTotal      decimal.Decimal `json:"delta_total"`
	DeltaPct        decimal.Decimal `json:"delta_pct"`
}

// CompareLatest expects versions ordered newest first and returns nil
// when there are fewer than two.
func CompareLatest(versions []*recipes.CostVersion) *VersionDelta {
	if len(versions) < 2 {
		return nil
	}
	current, previous := versions[0], versions[1]
	delta := Q6(current.TotalCost.Sub(previous.TotalCost))
	pct := decimal.Zero
	if previous.TotalCost.IsPositive() {
		pct = Q6(delta.Div(previous.TotalCost).Mul(hundred))
	}
	return &VersionDelta{
		CurrentVersion:  current.VersionNum,
		PreviousVersion: previous.VersionNum,
		DeltaTotal:      delta,
		DeltaPct:        pct,
	}
}
