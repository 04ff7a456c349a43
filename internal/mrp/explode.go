package mrp

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vallepan/recetario-backend/internal/costing"
	"github.com/vallepan/recetario-backend/internal/domain/recipes"
)

// StockReader provides current on-hand stock per ingredient; absent
// ingredients read as zero.
type StockReader interface {
	OnHand(ctx context.Context, ingredientIDs []uint) (map[uint]decimal.Decimal, error)
}

// ItemLines is one plan item flattened to its recipe's lines.
type ItemLines struct {
	Multiplier decimal.Decimal
	Lines      []*recipes.RecipeLine
}

// Requirement is one consolidated ingredient row of an explosion.
type Requirement struct {
	IngredientID uint            `json:"ingredient_id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	RequiredQty  decimal.Decimal `json:"required_qty"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	RequiredCost decimal.Decimal `json:"required_cost"`
	OnHand       decimal.Decimal `json:"on_hand"`
	Shortfall    decimal.Decimal `json:"shortfall"`
	Short        bool            `json:"short"`
}

// Summary is the full explosion result plus data-quality counters.
// Incomplete data never aborts an explosion; it is counted instead.
type Summary struct {
	Requirements []Requirement   `json:"requirements"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Shortages    int             `json:"shortages"`

	UnmatchedLines  int `json:"unmatched_lines"`
	MissingQty      int `json:"missing_qty_lines"`
	MissingUnitCost int `json:"missing_unit_cost_lines"`
}

// Explode multiplies each item's line quantities and costs by its
// multiplier and aggregates per ingredient. Items with a non-positive
// multiplier are skipped.
func Explode(ctx context.Context, items []ItemLines, stock StockReader) (*Summary, error) {
	type row struct {
		ingredientID uint
		name         string
		unit         string
		qty          decimal.Decimal
		unitCost     decimal.Decimal
		cost         decimal.Decimal
	}
	rows := map[uint]*row{}
	summary := &Summary{TotalCost: decimal.Zero}

	for _, item := range items {
		if !item.Multiplier.IsPositive() {
			continue
		}
		for _, line := range item.Lines {
			if line.IngredientID == nil {
				summary.UnmatchedLines++
				continue
			}
			qty := costing.DecOr(line.Quantity, decimal.Zero)
			if !qty.IsPositive() {
				summary.MissingQty++
				continue
			}
			qty = costing.Q6(qty.Mul(item.Multiplier))

			unitCost := costing.DecOr(line.UnitCostSnapshot, decimal.Zero)
			cost := decimal.Zero
			if unitCost.IsPositive() {
				cost = costing.Q6(qty.Mul(unitCost))
			} else {
				summary.MissingUnitCost++
			}

			r, ok := rows[*line.IngredientID]
			if !ok {
				r = &row{
					ingredientID: *line.IngredientID,
					name:         line.IngredientText,
					unit:         line.UnitText,
					qty:          decimal.Zero,
					unitCost:     unitCost,
					cost:         decimal.Zero,
				}
				if line.Ingredient != nil {
					r.name = line.Ingredient.Name
					if r.unit == "" && line.Ingredient.Unit != nil {
						r.unit = line.Ingredient.Unit.Code
					}
				}
				rows[*line.IngredientID] = r
			}
			r.qty = r.qty.Add(qty)
			r.cost = r.cost.Add(cost)
			if !r.unitCost.IsPositive() && unitCost.IsPositive() {
				r.unitCost = unitCost
			}
		}
	}

	ids := make([]uint, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	onHand := map[uint]decimal.Decimal{}
	if stock != nil && len(ids) > 0 {
		var err error
		onHand, err = stock.OnHand(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	for _, r := range rows {
		have := onHand[r.ingredientID]
		short := r.qty.Sub(have)
		if short.IsNegative() {
			short = decimal.Zero
		}
		req := Requirement{
			IngredientID: r.ingredientID,
			Name:         r.name,
			Unit:         r.unit,
			RequiredQty:  r.qty,
			UnitCost:     r.unitCost,
			RequiredCost: costing.Q6(r.cost),
			OnHand:       have,
			Shortfall:    short,
			Short:        short.IsPositive(),
		}
		if req.Short {
			summary.Shortages++
		}
		summary.Requirements = append(summary.Requirements, req)
		summary.TotalCost = summary.TotalCost.Add(req.RequiredCost)
	}
	summary.TotalCost = costing.Q6(summary.TotalCost)

	sort.Slice(summary.Requirements, func(i, j int) bool {
		a := strings.ToLower(summary.Requirements[i].Name)
		b := strings.ToLower(summary.Requirements[j].Name)
		if a != b {
			return a < b
		}
		return summary.Requirements[i].IngredientID < summary.Requirements[j].IngredientID
	})
	return summary, nil
}
