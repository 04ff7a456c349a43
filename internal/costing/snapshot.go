package costing

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/vallepan/recetario-backend/internal/domain/recipes"
	"github.com/vallepan/recetario-backend/internal/normalization"
)

// Breakdown is a recipe's computed cost snapshot: material, labor and
// overhead totals plus the canonical payload and its hash. It is the
// value that EnsureVersion persists.
type Breakdown struct {
	Recipe   *recipes.Recipe
	Driver   *recipes.CostDriver
	BatchRef decimal.Decimal

	MaterialCost     decimal.Decimal
	LaborCost        decimal.Decimal
	OverheadCost     decimal.Decimal
	TotalCost        decimal.Decimal
	CostPerYieldUnit *decimal.Decimal

	// UncostedLines counts lines that contributed nothing because
	// quantity or unit cost was missing. A data-quality signal, not an
	// error.
	UncostedLines int

	SnapshotHash string
	Payload      []byte
}

// LineCost returns the line's cost contribution, or nil when the line
// is uncosted. A missing quantity or snapshot is a data-quality
// signal, never a zero.
func LineCost(line *recipes.RecipeLine) *decimal.Decimal {
	if line.IngredientID != nil {
		if line.Quantity == nil || line.UnitCostSnapshot == nil {
			return nil
		}
		if !line.Quantity.IsPositive() || !line.UnitCostSnapshot.IsPositive() {
			return nil
		}
		return ptr(Q6(line.Quantity.Mul(*line.UnitCostSnapshot)))
	}
	if line.ImportedCost != nil {
		return ptr(Q6(*line.ImportedCost))
	}
	return nil
}

// Field order in the payload types is the canonical serialization
// order; changing it changes every hash.
type payloadDriver struct {
	ID            uint   `json:"id"`
	Scope         string `json:"scope"`
	Name          string `json:"name"`
	LaborPct      string `json:"labor_pct"`
	OverheadPct   string `json:"overhead_pct"`
	LaborFixed    string `json:"labor_fixed"`
	OverheadFixed string `json:"overhead_fixed"`
}

type payloadCosts struct {
	Material     string `json:"material"`
	Labor        string `json:"labor"`
	Overhead     string `json:"overhead"`
	Total        string `json:"total"`
	PerYieldUnit string `json:"per_yield_unit"`
}

type payloadLine struct {
	ID           uint   `json:"id"`
	Position     int    `json:"pos"`
	Kind         string `json:"kind"`
	Stage        string `json:"stage"`
	IngredientID uint   `json:"ingredient_id"`
	Text         string `json:"text"`
	Quantity     string `json:"qty"`
	Unit         string `json:"unit"`
	ImportedCost string `json:"imported_cost"`
	UnitSnapshot string `json:"unit_snapshot"`
	MatchStatus  string `json:"match"`
}

type snapshotPayload struct {
	RecipeID   uint          `json:"recipe_id"`
	RecipeName string        `json:"recipe_name"`
	RecipeType string        `json:"recipe_type"`
	SheetTag   string        `json:"sheet_tag"`
	YieldQty   string        `json:"yield_qty"`
	YieldUnit  string        `json:"yield_unit"`
	BatchRef   string        `json:"batch_ref"`
	Driver     payloadDriver `json:"driver"`
	Costs      payloadCosts  `json:"costs"`
	Lines      []payloadLine `json:"lines"`
}

// Compute calculates the full cost breakdown for a recipe from its
// ordered lines and resolved driver. Pure over its inputs; callers
// load state and persist results.
func Compute(recipe *recipes.Recipe, lines []*recipes.RecipeLine, driver *recipes.CostDriver, batchRef decimal.Decimal) (*Breakdown, error) {
	material := decimal.Zero
	uncosted := 0
	for _, line := range lines {
		if cost := LineCost(line); cost != nil {
			material = material.Add(*cost)
		} else {
			uncosted++
		}
	}
	material = Q6(material)

	laborPct := decimal.Zero
	overheadPct := decimal.Zero
	laborFixed := decimal.Zero
	overheadFixed := decimal.Zero
	if driver != nil {
		laborPct = driver.LaborPct
		overheadPct = driver.OverheadPct
		laborFixed = driver.LaborFixed
		overheadFixed = driver.OverheadFixed
	}

	labor := Q6(material.Mul(laborPct.Div(hundred)).Add(laborFixed))
	overhead := Q6(material.Mul(overheadPct.Div(hundred)).Add(overheadFixed))
	total := Q6(material.Add(labor).Add(overhead))

	var perYield *decimal.Decimal
	if recipe.YieldQty != nil && recipe.YieldQty.IsPositive() {
		perYield = ptr(Q6(total.Div(*recipe.YieldQty)))
	}

	payload := snapshotPayload{
		RecipeID:   recipe.ID,
		RecipeName: recipe.NormalizedName,
		RecipeType: recipe.Type,
		SheetTag:   normalization.Name(recipe.SheetTag),
		YieldQty:   Fixed6(DecOr(recipe.YieldQty, decimal.Zero)),
		YieldUnit:  recipe.YieldUnit,
		BatchRef:   Fixed6(batchRef),
		Costs: payloadCosts{
			Material:     material.StringFixed(6),
			Labor:        labor.StringFixed(6),
			Overhead:     overhead.StringFixed(6),
			Total:        total.StringFixed(6),
			PerYieldUnit: fixedOrEmpty(perYield),
		},
		Lines: make([]payloadLine, 0, len(lines)),
	}
	if driver != nil {
		payload.Driver = payloadDriver{
			ID:            driver.ID,
			Scope:         driver.Scope,
			Name:          driver.Name,
			LaborPct:      Fixed6(laborPct),
			OverheadPct:   Fixed6(overheadPct),
			LaborFixed:    Fixed6(laborFixed),
			OverheadFixed: Fixed6(overheadFixed),
		}
	} else {
		payload.Driver = payloadDriver{
			LaborPct:      Fixed6(decimal.Zero),
			OverheadPct:   Fixed6(decimal.Zero),
			LaborFixed:    Fixed6(decimal.Zero),
			OverheadFixed: Fixed6(decimal.Zero),
		}
	}
	for _, line := range lines {
		pl := payloadLine{
			ID:           line.ID,
			Position:     line.Position,
			Kind:         line.Kind,
			Stage:        normalization.Name(line.Stage),
			Text:         normalization.Name(line.IngredientText),
			Quantity:     Fixed6(DecOr(line.Quantity, decimal.Zero)),
			Unit:         normalization.Name(line.UnitText),
			ImportedCost: Fixed6(DecOr(line.ImportedCost, decimal.Zero)),
			UnitSnapshot: Fixed6(DecOr(line.UnitCostSnapshot, decimal.Zero)),
			MatchStatus:  line.MatchStatus,
		}
		if line.IngredientID != nil {
			pl.IngredientID = *line.IngredientID
		}
		payload.Lines = append(payload.Lines, pl)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(raw)

	return &Breakdown{
		Recipe:           recipe,
		Driver:           driver,
		BatchRef:         Q6(batchRef),
		MaterialCost:     material,
		LaborCost:        labor,
		OverheadCost:     overhead,
		TotalCost:        total,
		CostPerYieldUnit: perYield,
		UncostedLines:    uncosted,
		SnapshotHash:     hex.EncodeToString(sum[:]),
		Payload:          raw,
	}, nil
}

func fixedOrEmpty(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(6)
}
