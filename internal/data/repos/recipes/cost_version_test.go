package recipes

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vallepan/recetario-backend/internal/data/repos/testutil"
	types "github.com/vallepan/recetario-backend/internal/domain"
)

func TestCostVersionRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewCostVersionRepo(db, testutil.Logger(t))

	recipe := testutil.SeedRecipe(t, ctx, tx, "Concha Vainilla")

	latest, err := repo.GetLatestByRecipeID(ctx, tx, recipe.ID)
	if err != nil {
		t.Fatalf("GetLatestByRecipeID: %v", err)
	}
	if latest != nil {
		t.Fatalf("fresh recipe should have no versions, got %+v", latest)
	}

	v1 := &types.CostVersion{
		RecipeID:     recipe.ID,
		VersionNum:   1,
		SnapshotHash: "aaaa000000000000000000000000000000000000000000000000000000000001",
		BatchRef:     decimal.NewFromInt(1),
		TotalCost:    decimal.NewFromInt(10),
	}
	if _, err := repo.Create(ctx, tx, v1); err != nil {
		t.Fatalf("Create v1: %v", err)
	}
	v2 := &types.CostVersion{
		RecipeID:     recipe.ID,
		VersionNum:   2,
		SnapshotHash: "aaaa000000000000000000000000000000000000000000000000000000000002",
		BatchRef:     decimal.NewFromInt(1),
		TotalCost:    decimal.NewFromInt(12),
	}
	if _, err := repo.Create(ctx, tx, v2); err != nil {
		t.Fatalf("Create v2: %v", err)
	}

	latest, err = repo.GetLatestByRecipeID(ctx, tx, recipe.ID)
	if err != nil {
		t.Fatalf("GetLatestByRecipeID: %v", err)
	}
	if latest == nil || latest.VersionNum != 2 {
		t.Fatalf("latest = %+v, want version 2", latest)
	}

	locked, err := repo.GetLatestByRecipeIDForUpdate(ctx, tx, recipe.ID)
	if err != nil {
		t.Fatalf("GetLatestByRecipeIDForUpdate: %v", err)
	}
	if locked == nil || locked.VersionNum != 2 {
		t.Fatalf("locked latest = %+v, want version 2", locked)
	}

	byHash, err := repo.GetByRecipeAndHash(ctx, tx, recipe.ID, v1.SnapshotHash)
	if err != nil {
		t.Fatalf("GetByRecipeAndHash: %v", err)
	}
	if byHash == nil || byHash.VersionNum != 1 {
		t.Fatalf("byHash = %+v, want version 1", byHash)
	}

	history, err := repo.ListByRecipeID(ctx, tx, recipe.ID, 0)
	if err != nil {
		t.Fatalf("ListByRecipeID: %v", err)
	}
	if len(history) != 2 || history[0].VersionNum != 2 {
		t.Fatalf("history should be newest first, got %+v", history)
	}
}

func TestCostVersionRepoUniqueHash(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewCostVersionRepo(db, testutil.Logger(t))

	recipe := testutil.SeedRecipe(t, ctx, tx, "Bolillo")

	hash := "bbbb000000000000000000000000000000000000000000000000000000000001"
	first := &types.CostVersion{RecipeID: recipe.ID, VersionNum: 1, SnapshotHash: hash, BatchRef: decimal.NewFromInt(1)}
	if _, err := repo.Create(ctx, tx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}

	dup := &types.CostVersion{RecipeID: recipe.ID, VersionNum: 2, SnapshotHash: hash, BatchRef: decimal.NewFromInt(1)}
	_, err := repo.Create(ctx, tx, dup)
	if err == nil {
		t.Fatalf("duplicate snapshot hash must be rejected")
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
	}
}
