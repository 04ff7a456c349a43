package mrp

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vallepan/recetario-backend/internal/domain/recipes"
)

type fakeStock map[uint]decimal.Decimal

func (f fakeStock) OnHand(_ context.Context, ids []uint) (map[uint]decimal.Decimal, error) {
	out := map[uint]decimal.Decimal{}
	for _, id := range ids {
		if v, ok := f[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

func dec(t *testing.T, v string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(v)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", v, err)
	}
	return d
}

func decPtr(t *testing.T, v string) *decimal.Decimal {
	t.Helper()
	d := dec(t, v)
	return &d
}

func uintPtr(v uint) *uint { return &v }

func line(t *testing.T, ingredientID uint, name, qty, unitCost string) *recipes.RecipeLine {
	t.Helper()
	l := &recipes.RecipeLine{
		Kind:           recipes.LineKindNormal,
		IngredientText: name,
		IngredientID:   &ingredientID,
		Quantity:       decPtr(t, qty),
	}
	if unitCost != "" {
		l.UnitCostSnapshot = decPtr(t, unitCost)
	}
	return l
}

func TestExplodeAggregates(t *testing.T) {
	items := []ItemLines{
		{
			Multiplier: dec(t, "3"),
			Lines:      []*recipes.RecipeLine{line(t, 1, "harina", "2", "3")},
		},
		{
			Multiplier: dec(t, "1"),
			Lines:      []*recipes.RecipeLine{line(t, 1, "harina", "1", "3")},
		},
	}
	stock := fakeStock{1: dec(t, "5")}

	summary, err := Explode(context.Background(), items, stock)
	if err != nil {
		t.Fatalf("Explode: %v", err)
	}
	if len(summary.Requirements) != 1 {
		t.Fatalf("requirements = %d, want 1", len(summary.Requirements))
	}
	req := summary.Requirements[0]
	if got := req.RequiredQty.StringFixed(2); got != "7.00" {
		t.Fatalf("RequiredQty = %s, want 7.00", got)
	}
	if got := req.RequiredCost.StringFixed(2); got != "21.00" {
		t.Fatalf("RequiredCost = %s, want 21.00", got)
	}
	if got := req.Shortfall.StringFixed(2); got != "2.00" {
		t.Fatalf("Shortfall = %s, want 2.00", got)
	}
	if !req.Short || summary.Shortages != 1 {
		t.Fatalf("shortage flags wrong: %+v shortages=%d", req, summary.Shortages)
	}
	if got := summary.TotalCost.StringFixed(2); got != "21.00" {
		t.Fatalf("TotalCost = %s, want 21.00", got)
	}
}

func TestExplodeSkipsNonPositiveMultiplier(t *testing.T) {
	items := []ItemLines{
		{Multiplier: dec(t, "0"), Lines: []*recipes.RecipeLine{line(t, 1, "harina", "2", "3")}},
		{Multiplier: dec(t, "-1"), Lines: []*recipes.RecipeLine{line(t, 1, "harina", "2", "3")}},
	}
	summary, err := Explode(context.Background(), items, fakeStock{})
	if err != nil {
		t.Fatalf("Explode: %v", err)
	}
	if len(summary.Requirements) != 0 {
		t.Fatalf("non-positive multipliers must be skipped, got %d rows", len(summary.Requirements))
	}
}

func TestExplodeCountsDataGaps(t *testing.T) {
	unmatched := &recipes.RecipeLine{Kind: recipes.LineKindNormal, IngredientText: "misterio"}
	noQty := &recipes.RecipeLine{Kind: recipes.LineKindNormal, IngredientText: "harina", IngredientID: uintPtr(1)}
	noCost := line(t, 2, "levadura", "1", "")

	items := []ItemLines{{
		Multiplier: dec(t, "1"),
		Lines:      []*recipes.RecipeLine{unmatched, noQty, noCost},
	}}
	summary, err := Explode(context.Background(), items, fakeStock{})
	if err != nil {
		t.Fatalf("Explode: %v", err)
	}
	if summary.UnmatchedLines != 1 {
		t.Fatalf("UnmatchedLines = %d, want 1", summary.UnmatchedLines)
	}
	if summary.MissingQty != 1 {
		t.Fatalf("MissingQty = %d, want 1", summary.MissingQty)
	}
	if summary.MissingUnitCost != 1 {
		t.Fatalf("MissingUnitCost = %d, want 1", summary.MissingUnitCost)
	}
	// The costless line still lands in the requirements with qty.
	if len(summary.Requirements) != 1 {
		t.Fatalf("requirements = %d, want 1", len(summary.Requirements))
	}
	if !summary.Requirements[0].RequiredCost.IsZero() {
		t.Fatalf("costless line should carry zero cost, got %s", summary.Requirements[0].RequiredCost)
	}
}

func TestExplodeSortsByName(t *testing.T) {
	items := []ItemLines{{
		Multiplier: dec(t, "1"),
		Lines: []*recipes.RecipeLine{
			line(t, 2, "Mantequilla", "1", "4"),
			line(t, 1, "azucar", "1", "2"),
		},
	}}
	summary, err := Explode(context.Background(), items, nil)
	if err != nil {
		t.Fatalf("Explode: %v", err)
	}
	if len(summary.Requirements) != 2 {
		t.Fatalf("requirements = %d, want 2", len(summary.Requirements))
	}
	if summary.Requirements[0].Name != "azucar" {
		t.Fatalf("expected case-insensitive name order, got %q first", summary.Requirements[0].Name)
	}
}
