package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/vallepan/recetario-backend/internal/clients/redis"
	"github.com/vallepan/recetario-backend/internal/data/repos"
	"github.com/vallepan/recetario-backend/internal/data/repos/testutil"
	types "github.com/vallepan/recetario-backend/internal/domain"
	"github.com/vallepan/recetario-backend/internal/matching"
)

type recordingCandidateCache struct {
	invalidations int
}

func (c *recordingCandidateCache) Get(ctx context.Context) ([]matching.Candidate, error) {
	return nil, nil
}

func (c *recordingCandidateCache) Set(ctx context.Context, candidates []matching.Candidate) error {
	return nil
}

func (c *recordingCandidateCache) Invalidate(ctx context.Context) error {
	c.invalidations++
	return nil
}

func (c *recordingCandidateCache) Close() error { return nil }

func newMatchingFixture(t *testing.T, cache redis.CandidateCache) (MatchingService, *gorm.DB, context.Context) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	ingredientRepo := repos.NewIngredientRepo(tx, log)
	aliasRepo := repos.NewIngredientAliasRepo(tx, log)
	costRepo := repos.NewIngredientCostRepo(tx, log)
	lineRepo := repos.NewRecipeLineRepo(tx, log)

	reader := NewCatalogReader(tx, log, ingredientRepo, aliasRepo, nil)
	engine := matching.NewEngine(reader, log)

	costingService := NewCostingService(
		tx,
		log,
		repos.NewRecipeRepo(tx, log),
		lineRepo,
		repos.NewCostDriverRepo(tx, log),
		repos.NewCostVersionRepo(tx, log),
	)
	service := NewMatchingService(tx, log, engine, cache, lineRepo, aliasRepo, costRepo, ingredientRepo, costingService)
	return service, tx, ctx
}

func TestRematchLinesResolvesAndReversions(t *testing.T) {
	service, tx, ctx := newMatchingFixture(t, nil)

	ingredient := testutil.SeedIngredient(t, ctx, tx, "Azucar Glass")
	testutil.SeedIngredientCost(t, ctx, tx, ingredient.ID, time.Now(), "18.50")

	recipe := testutil.SeedRecipe(t, ctx, tx, "Donas Azucaradas")
	line := testutil.SeedLine(t, ctx, tx, recipe.ID, "Azúcar Glass", nil, testutil.PtrString("0.25"), nil)

	result, err := service.RematchLines(ctx, &recipe.ID)
	if err != nil {
		t.Fatalf("RematchLines: %v", err)
	}
	if result.Scanned != 1 || result.AutoApproved != 1 {
		t.Fatalf("result = %+v, want 1 scanned 1 auto-approved", result)
	}
	if result.Reversioned != 1 {
		t.Fatalf("rematch must re-version the touched recipe, got %+v", result)
	}

	var reloaded types.RecipeLine
	if err := tx.WithContext(ctx).Where("id = ?", line.ID).Find(&reloaded).Error; err != nil {
		t.Fatalf("reload line: %v", err)
	}
	if reloaded.IngredientID == nil || *reloaded.IngredientID != ingredient.ID {
		t.Fatalf("line not linked: %+v", reloaded)
	}
	if reloaded.MatchStatus != types.MatchStatusAutoApproved || reloaded.MatchMethod != types.MatchMethodExact {
		t.Fatalf("line status %s/%s, want AUTO_APPROVED/EXACT", reloaded.MatchStatus, reloaded.MatchMethod)
	}
	if reloaded.UnitCostSnapshot == nil || reloaded.UnitCostSnapshot.StringFixed(2) != "18.50" {
		t.Fatalf("snapshot not backfilled from latest cost: %+v", reloaded.UnitCostSnapshot)
	}
}

func TestRematchLeavesHopelessLinesRejected(t *testing.T) {
	service, tx, ctx := newMatchingFixture(t, nil)

	testutil.SeedIngredient(t, ctx, tx, "Harina de Trigo")
	recipe := testutil.SeedRecipe(t, ctx, tx, "Receta Rara")
	line := testutil.SeedLine(t, ctx, tx, recipe.ID, "zzzz qqqq xxxx", nil, nil, nil)

	result, err := service.RematchLines(ctx, &recipe.ID)
	if err != nil {
		t.Fatalf("RematchLines: %v", err)
	}
	if result.StillNoMatch != 1 || result.Reversioned != 0 {
		t.Fatalf("result = %+v, want 1 still-no-match and no reversion", result)
	}

	var reloaded types.RecipeLine
	if err := tx.WithContext(ctx).Where("id = ?", line.ID).Find(&reloaded).Error; err != nil {
		t.Fatalf("reload line: %v", err)
	}
	if reloaded.IngredientID != nil || reloaded.MatchStatus != types.MatchStatusRejected {
		t.Fatalf("rejected line must stay unlinked, got %+v", reloaded)
	}
}

func TestApproveLineCreatesAliasAndVersion(t *testing.T) {
	service, tx, ctx := newMatchingFixture(t, nil)

	ingredient := testutil.SeedIngredient(t, ctx, tx, "Mantequilla sin Sal")
	testutil.SeedIngredientCost(t, ctx, tx, ingredient.ID, time.Now(), "95.00")

	recipe := testutil.SeedRecipe(t, ctx, tx, "Croissant")
	line := testutil.SeedLine(t, ctx, tx, recipe.ID, "mantqlla s/sal", nil, testutil.PtrString("0.4"), nil)

	approved, err := service.ApproveLine(ctx, line.ID, ingredient.ID, true)
	if err != nil {
		t.Fatalf("ApproveLine: %v", err)
	}
	if approved.MatchMethod != types.MatchMethodManual || approved.MatchStatus != types.MatchStatusAutoApproved {
		t.Fatalf("approved line %s/%s, want MANUAL/AUTO_APPROVED", approved.MatchMethod, approved.MatchStatus)
	}
	if approved.ApprovedAt == nil {
		t.Fatalf("ApprovedAt must be stamped")
	}

	var alias types.IngredientAlias
	if err := tx.WithContext(ctx).Where("normalized_name = ?", "mantqlla s/sal").Find(&alias).Error; err != nil {
		t.Fatalf("load alias: %v", err)
	}
	if alias.ID == 0 || alias.IngredientID != ingredient.ID {
		t.Fatalf("alias not recorded: %+v", alias)
	}

	var version types.CostVersion
	if err := tx.WithContext(ctx).Where("recipe_id = ?", recipe.ID).Order("version_num DESC").Limit(1).Find(&version).Error; err != nil {
		t.Fatalf("load version: %v", err)
	}
	if version.ID == 0 {
		t.Fatalf("approval must produce a cost version")
	}
	if version.SourceTag != "MANUAL_APPROVE" {
		t.Fatalf("SourceTag = %q, want MANUAL_APPROVE", version.SourceTag)
	}
}

func TestApproveLineTwiceWithSameTextKeepsBothDecisions(t *testing.T) {
	service, tx, ctx := newMatchingFixture(t, nil)

	butter := testutil.SeedIngredient(t, ctx, tx, "Mantequilla sin Sal")
	margarine := testutil.SeedIngredient(t, ctx, tx, "Margarina")

	recipe := testutil.SeedRecipe(t, ctx, tx, "Pan Dulce")
	first := testutil.SeedLine(t, ctx, tx, recipe.ID, "mantqlla s/sal", nil, testutil.PtrString("0.2"), nil)
	second := testutil.SeedLine(t, ctx, tx, recipe.ID, "mantqlla s/sal", nil, testutil.PtrString("0.3"), nil)

	if _, err := service.ApproveLine(ctx, first.ID, butter.ID, true); err != nil {
		t.Fatalf("first ApproveLine: %v", err)
	}
	if _, err := service.ApproveLine(ctx, second.ID, margarine.ID, true); err != nil {
		t.Fatalf("second ApproveLine with existing alias: %v", err)
	}

	var reloaded types.RecipeLine
	if err := tx.WithContext(ctx).Where("id = ?", second.ID).Find(&reloaded).Error; err != nil {
		t.Fatalf("reload second line: %v", err)
	}
	if reloaded.IngredientID == nil || *reloaded.IngredientID != margarine.ID {
		t.Fatalf("second decision lost: %+v", reloaded)
	}
	if reloaded.MatchStatus != types.MatchStatusAutoApproved || reloaded.ApprovedAt == nil {
		t.Fatalf("second line not approved: %+v", reloaded)
	}

	var aliases []types.IngredientAlias
	if err := tx.WithContext(ctx).Where("normalized_name = ?", "mantqlla s/sal").Find(&aliases).Error; err != nil {
		t.Fatalf("load aliases: %v", err)
	}
	if len(aliases) != 1 {
		t.Fatalf("expected a single alias row, got %d", len(aliases))
	}
	if aliases[0].IngredientID != butter.ID {
		t.Fatalf("existing alias mapping must win, got ingredient %d", aliases[0].IngredientID)
	}
}

func TestRematchLinesInvalidatesCandidateCache(t *testing.T) {
	cache := &recordingCandidateCache{}
	service, tx, ctx := newMatchingFixture(t, cache)

	ingredient := testutil.SeedIngredient(t, ctx, tx, "Levadura Fresca")
	testutil.SeedIngredientCost(t, ctx, tx, ingredient.ID, time.Now(), "4.20")
	recipe := testutil.SeedRecipe(t, ctx, tx, "Bolillo")
	testutil.SeedLine(t, ctx, tx, recipe.ID, "levadura fresca", nil, testutil.PtrString("0.05"), nil)

	if _, err := service.RematchLines(ctx, &recipe.ID); err != nil {
		t.Fatalf("RematchLines: %v", err)
	}
	if cache.invalidations != 1 {
		t.Fatalf("rematch must drop the cached candidate list once, got %d", cache.invalidations)
	}
}
