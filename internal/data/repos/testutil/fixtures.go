package testutil

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	types "github.com/vallepan/recetario-backend/internal/domain"
	"github.com/vallepan/recetario-backend/internal/domain/catalog"
	rtypes "github.com/vallepan/recetario-backend/internal/domain/recipes"
)

func SeedIngredient(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Ingredient {
	tb.Helper()
	ing := catalog.NewIngredient(name, "", nil)
	if err := tx.WithContext(ctx).Create(ing).Error; err != nil {
		tb.Fatalf("seed ingredient: %v", err)
	}
	return ing
}

func SeedAlias(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, ingredientID uint) *types.IngredientAlias {
	tb.Helper()
	alias := catalog.NewIngredientAlias(name, ingredientID)
	if err := tx.WithContext(ctx).Create(alias).Error; err != nil {
		tb.Fatalf("seed alias: %v", err)
	}
	return alias
}

func SeedIngredientCost(tb testing.TB, ctx context.Context, tx *gorm.DB, ingredientID uint, date time.Time, unitCost string) *types.IngredientCost {
	tb.Helper()
	sum := sha256.Sum256([]byte(date.Format("2006-01-02") + unitCost + time.Now().String()))
	cost := &types.IngredientCost{
		IngredientID: ingredientID,
		Date:         date,
		Currency:     "MXN",
		UnitCost:     mustDecimal(tb, unitCost),
		SourceHash:   hex.EncodeToString(sum[:]),
	}
	if err := tx.WithContext(ctx).Create(cost).Error; err != nil {
		tb.Fatalf("seed ingredient cost: %v", err)
	}
	return cost
}

func SeedStock(tb testing.TB, ctx context.Context, tx *gorm.DB, ingredientID uint, onHand string) *types.IngredientStock {
	tb.Helper()
	s := &types.IngredientStock{
		IngredientID: ingredientID,
		OnHand:       mustDecimal(tb, onHand),
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed stock: %v", err)
	}
	return s
}

func SeedRecipe(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Recipe {
	tb.Helper()
	sum := sha256.Sum256([]byte(name))
	r := rtypes.NewRecipe(name, types.RecipeTypeIntermediate, "", hex.EncodeToString(sum[:]))
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed recipe: %v", err)
	}
	return r
}

func SeedLine(tb testing.TB, ctx context.Context, tx *gorm.DB, recipeID uint, text string, ingredientID *uint, qty, snapshot *string) *types.RecipeLine {
	tb.Helper()
	line := &types.RecipeLine{
		RecipeID:       recipeID,
		Kind:           types.LineKindNormal,
		IngredientText: text,
		IngredientID:   ingredientID,
	}
	if qty != nil {
		d := mustDecimal(tb, *qty)
		line.Quantity = &d
	}
	if snapshot != nil {
		d := mustDecimal(tb, *snapshot)
		line.UnitCostSnapshot = &d
	}
	if ingredientID != nil {
		line.MatchStatus = types.MatchStatusAutoApproved
		line.MatchMethod = types.MatchMethodExact
		line.MatchScore = 100
	} else {
		line.MatchStatus = types.MatchStatusRejected
		line.MatchMethod = types.MatchMethodNone
	}
	if err := tx.WithContext(ctx).Create(line).Error; err != nil {
		tb.Fatalf("seed recipe line: %v", err)
	}
	return line
}

func SeedDriver(tb testing.TB, ctx context.Context, tx *gorm.DB, scope string, recipeID *uint, laborPct, overheadPct string) *types.CostDriver {
	tb.Helper()
	d := &types.CostDriver{
		Name:        "driver " + scope,
		Scope:       scope,
		RecipeID:    recipeID,
		LaborPct:    mustDecimal(tb, laborPct),
		OverheadPct: mustDecimal(tb, overheadPct),
		Priority:    100,
		Active:      true,
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed cost driver: %v", err)
	}
	return d
}

func PtrUint(v uint) *uint { return &v }

func PtrString(v string) *string { return &v }

func mustDecimal(tb testing.TB, v string) decimal.Decimal {
	tb.Helper()
	d, err := decimal.NewFromString(v)
	if err != nil {
		tb.Fatalf("bad decimal %q: %v", v, err)
	}
	return d
}
