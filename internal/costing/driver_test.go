package costing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vallepan/recetario-backend/internal/domain/recipes"
)

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

func testRecipe() *recipes.Recipe {
	return &recipes.Recipe{
		ID:             7,
		Name:           "Concha Vainilla",
		NormalizedName: "concha vainilla",
		SheetTag:       "Panes Dulces",
	}
}

func TestResolveDriverPrecedence(t *testing.T) {
	recipe := testRecipe()
	one := decimal.NewFromInt(1)

	global := &recipes.CostDriver{ID: 1, Scope: recipes.DriverScopeGlobal, Priority: 100, Active: true}
	family := &recipes.CostDriver{ID: 2, Scope: recipes.DriverScopeFamily, FamilyKey: "panes dulces", Priority: 100, Active: true}
	batch := &recipes.CostDriver{
		ID: 3, Scope: recipes.DriverScopeBatch, Priority: 100, Active: true,
		BatchFrom: decPtr(t, "0.5"), BatchTo: decPtr(t, "2"),
	}
	product := &recipes.CostDriver{ID: 4, Scope: recipes.DriverScopeProduct, RecipeID: uintPtr(7), Priority: 100, Active: true}

	got := ResolveDriver(recipe, one, []*recipes.CostDriver{global, family, batch, product})
	if got == nil || got.ID != product.ID {
		t.Fatalf("expected product driver, got %+v", got)
	}

	got = ResolveDriver(recipe, one, []*recipes.CostDriver{global, family, batch})
	if got == nil || got.ID != family.ID {
		t.Fatalf("expected family driver, got %+v", got)
	}

	got = ResolveDriver(recipe, one, []*recipes.CostDriver{global, batch})
	if got == nil || got.ID != batch.ID {
		t.Fatalf("expected batch driver, got %+v", got)
	}

	got = ResolveDriver(recipe, one, []*recipes.CostDriver{global})
	if got == nil || got.ID != global.ID {
		t.Fatalf("expected global driver, got %+v", got)
	}
}

func TestResolveDriverBatchRange(t *testing.T) {
	recipe := testRecipe()
	batch := &recipes.CostDriver{
		ID: 1, Scope: recipes.DriverScopeBatch, Priority: 100, Active: true,
		BatchFrom: decPtr(t, "2"), BatchTo: decPtr(t, "5"),
	}

	if got := ResolveDriver(recipe, dec(t, "1"), []*recipes.CostDriver{batch}); got != nil {
		t.Fatalf("batchRef below range should be ineligible, got %+v", got)
	}
	if got := ResolveDriver(recipe, dec(t, "2"), []*recipes.CostDriver{batch}); got == nil {
		t.Fatalf("batchRef at lower bound should be eligible")
	}
	if got := ResolveDriver(recipe, dec(t, "5"), []*recipes.CostDriver{batch}); got == nil {
		t.Fatalf("batchRef at upper bound should be eligible")
	}
	if got := ResolveDriver(recipe, dec(t, "5.000001"), []*recipes.CostDriver{batch}); got != nil {
		t.Fatalf("batchRef above range should be ineligible, got %+v", got)
	}
}

func TestResolveDriverBatchBonuses(t *testing.T) {
	recipe := testRecipe()
	one := decimal.NewFromInt(1)

	plain := &recipes.CostDriver{ID: 1, Scope: recipes.DriverScopeBatch, Priority: 100, Active: true}
	withFamily := &recipes.CostDriver{ID: 2, Scope: recipes.DriverScopeBatch, FamilyKey: "panes dulces", Priority: 100, Active: true}
	withRecipe := &recipes.CostDriver{ID: 3, Scope: recipes.DriverScopeBatch, RecipeID: uintPtr(7), Priority: 100, Active: true}

	got := ResolveDriver(recipe, one, []*recipes.CostDriver{plain, withFamily, withRecipe})
	if got == nil || got.ID != withRecipe.ID {
		t.Fatalf("recipe-pinned batch driver should outrank, got %+v", got)
	}

	got = ResolveDriver(recipe, one, []*recipes.CostDriver{plain, withFamily})
	if got == nil || got.ID != withFamily.ID {
		t.Fatalf("family-pinned batch driver should outrank plain, got %+v", got)
	}
}

func TestResolveDriverTieBreaks(t *testing.T) {
	recipe := testRecipe()
	one := decimal.NewFromInt(1)

	lowPriority := &recipes.CostDriver{ID: 9, Scope: recipes.DriverScopeGlobal, Priority: 10, Active: true}
	highPriority := &recipes.CostDriver{ID: 1, Scope: recipes.DriverScopeGlobal, Priority: 50, Active: true}

	got := ResolveDriver(recipe, one, []*recipes.CostDriver{highPriority, lowPriority})
	if got == nil || got.ID != lowPriority.ID {
		t.Fatalf("lower priority number should win, got %+v", got)
	}

	a := &recipes.CostDriver{ID: 2, Scope: recipes.DriverScopeGlobal, Priority: 10, Active: true}
	b := &recipes.CostDriver{ID: 5, Scope: recipes.DriverScopeGlobal, Priority: 10, Active: true}
	got = ResolveDriver(recipe, one, []*recipes.CostDriver{b, a})
	if got == nil || got.ID != a.ID {
		t.Fatalf("lowest id should win the final tie, got %+v", got)
	}
}

func TestResolveDriverSkipsInactive(t *testing.T) {
	recipe := testRecipe()
	one := decimal.NewFromInt(1)

	inactive := &recipes.CostDriver{ID: 1, Scope: recipes.DriverScopeProduct, RecipeID: uintPtr(7), Priority: 1, Active: false}
	global := &recipes.CostDriver{ID: 2, Scope: recipes.DriverScopeGlobal, Priority: 100, Active: true}

	got := ResolveDriver(recipe, one, []*recipes.CostDriver{inactive, global})
	if got == nil || got.ID != global.ID {
		t.Fatalf("inactive drivers must be skipped, got %+v", got)
	}

	if got := ResolveDriver(recipe, one, nil); got != nil {
		t.Fatalf("no drivers should resolve to nil, got %+v", got)
	}
}

func TestFamilyKeyFallsBackToName(t *testing.T) {
	r := &recipes.Recipe{NormalizedName: "concha vainilla"}
	if got := r.FamilyKey(); got != "concha vainilla" {
		t.Fatalf("FamilyKey() = %q, want normalized name fallback", got)
	}
	r.SheetTag = "Panes Dulces"
	if got := r.FamilyKey(); got != "panes dulces" {
		t.Fatalf("FamilyKey() = %q, want %q", got, "panes dulces")
	}
}
