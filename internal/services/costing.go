package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/vallepan/recetario-backend/internal/costing"
	"github.com/vallepan/recetario-backend/internal/data/repos"
	types "github.com/vallepan/recetario-backend/internal/domain"
	pkgerrors "github.com/vallepan/recetario-backend/internal/pkg/errors"
	"github.com/vallepan/recetario-backend/internal/platform/logger"
)

type CostingService interface {
	ComputeBreakdown(ctx context.Context, recipeID uint, batchRef decimal.Decimal) (*costing.Breakdown, error)
	EnsureVersion(ctx context.Context, recipeID uint, batchRef decimal.Decimal, sourceTag string) (*types.CostVersion, bool, error)
	VersionHistory(ctx context.Context, recipeID uint, limit int) ([]*types.CostVersion, *costing.VersionDelta, error)
}

type costingService struct {
	db          *gorm.DB
	log         *logger.Logger
	recipeRepo  repos.RecipeRepo
	lineRepo    repos.RecipeLineRepo
	driverRepo  repos.CostDriverRepo
	versionRepo repos.CostVersionRepo
}

func NewCostingService(db *gorm.DB, log *logger.Logger, recipeRepo repos.RecipeRepo, lineRepo repos.RecipeLineRepo, driverRepo repos.CostDriverRepo, versionRepo repos.CostVersionRepo) CostingService {
	serviceLog := log.With("service", "CostingService")
	return &costingService{
		db:          db,
		log:         serviceLog,
		recipeRepo:  recipeRepo,
		lineRepo:    lineRepo,
		driverRepo:  driverRepo,
		versionRepo: versionRepo,
	}
}

func (cs *costingService) ComputeBreakdown(ctx context.Context, recipeID uint, batchRef decimal.Decimal) (*costing.Breakdown, error) {
	return cs.compute(ctx, nil, recipeID, batchRef)
}

func (cs *costingService) compute(ctx context.Context, tx *gorm.DB, recipeID uint, batchRef decimal.Decimal) (*costing.Breakdown, error) {
	recipe, err := cs.recipeRepo.GetByID(ctx, tx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("load recipe: %w", err)
	}
	if recipe == nil {
		return nil, fmt.Errorf("recipe %d: %w", recipeID, pkgerrors.ErrNotFound)
	}
	if !batchRef.IsPositive() {
		batchRef = decimal.NewFromInt(1)
	}

	lines, err := cs.lineRepo.GetByRecipeID(ctx, tx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("load recipe lines: %w", err)
	}
	drivers, err := cs.driverRepo.GetActive(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("load cost drivers: %w", err)
	}

	driver := costing.ResolveDriver(recipe, batchRef, drivers)
	breakdown, err := costing.Compute(recipe, lines, driver, batchRef)
	if err != nil {
		return nil, fmt.Errorf("compute breakdown: %w", err)
	}
	if breakdown.UncostedLines > 0 {
		cs.log.Warn("breakdown has uncosted lines",
			"recipe_id", recipeID,
			"uncosted_lines", breakdown.UncostedLines)
	}
	return breakdown, nil
}

// EnsureVersion computes the recipe's current cost and persists a new
// immutable version only when the canonical snapshot hash differs
// from the latest one. Returns the governing version and whether it
// was created by this call.
func (cs *costingService) EnsureVersion(ctx context.Context, recipeID uint, batchRef decimal.Decimal, sourceTag string) (*types.CostVersion, bool, error) {
	var (
		result       *types.CostVersion
		created      bool
		snapshotHash string
	)

	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		breakdown, err := cs.compute(ctx, tx, recipeID, batchRef)
		if err != nil {
			return err
		}
		snapshotHash = breakdown.SnapshotHash

		latest, err := cs.versionRepo.GetLatestByRecipeIDForUpdate(ctx, tx, recipeID)
		if err != nil {
			return fmt.Errorf("lock latest version: %w", err)
		}
		if latest != nil && latest.SnapshotHash == breakdown.SnapshotHash {
			result = latest
			created = false
			return nil
		}

		nextNum := 1
		if latest != nil {
			nextNum = latest.VersionNum + 1
		}

		version := versionFromBreakdown(breakdown, recipeID, nextNum, sourceTag)
		if _, err := cs.versionRepo.Create(ctx, tx, version); err != nil {
			return fmt.Errorf("create version: %w", err)
		}
		result = version
		created = true
		return nil
	})
	if err != nil {
		// A concurrent writer can land the identical snapshot between
		// our compute and insert. The transaction is already rolled
		// back at this point, so the existing row is read fresh.
		if errors.Is(err, gorm.ErrDuplicatedKey) && snapshotHash != "" {
			existing, lookupErr := cs.versionRepo.GetByRecipeAndHash(ctx, nil, recipeID, snapshotHash)
			if lookupErr == nil && existing != nil {
				return existing, false, nil
			}
		}
		cs.log.Warn("EnsureVersion failed", "recipe_id", recipeID, "error", err)
		return nil, false, err
	}
	if created {
		cs.log.Info("new cost version",
			"recipe_id", recipeID,
			"version_num", result.VersionNum,
			"total_cost", result.TotalCost.String(),
			"source", sourceTag)
	}
	return result, created, nil
}

func (cs *costingService) VersionHistory(ctx context.Context, recipeID uint, limit int) ([]*types.CostVersion, *costing.VersionDelta, error) {
	recipe, err := cs.recipeRepo.GetByID(ctx, nil, recipeID)
	if err != nil {
		return nil, nil, err
	}
	if recipe == nil {
		return nil, nil, fmt.Errorf("recipe %d: %w", recipeID, pkgerrors.ErrNotFound)
	}
	versions, err := cs.versionRepo.ListByRecipeID(ctx, nil, recipeID, limit)
	if err != nil {
		return nil, nil, err
	}
	return versions, costing.CompareLatest(versions), nil
}

func versionFromBreakdown(b *costing.Breakdown, recipeID uint, versionNum int, sourceTag string) *types.CostVersion {
	version := &types.CostVersion{
		RecipeID:      recipeID,
		VersionNum:    versionNum,
		SnapshotHash:  b.SnapshotHash,
		BatchRef:      b.BatchRef,
		MaterialCost:  b.MaterialCost,
		LaborCost:     b.LaborCost,
		OverheadCost:  b.OverheadCost,
		TotalCost:     b.TotalCost,
		YieldQty:      b.Recipe.YieldQty,
		YieldUnit:     b.Recipe.YieldUnit,
		UncostedLines: b.UncostedLines,
		Payload:       datatypes.JSON(b.Payload),
		SourceTag:     sourceTag,
	}
	if b.CostPerYieldUnit != nil {
		version.CostPerYieldUnit = b.CostPerYieldUnit
	}
	if b.Driver != nil {
		version.DriverScope = b.Driver.Scope
		version.DriverName = b.Driver.Name
		version.LaborPct = b.Driver.LaborPct
		version.OverheadPct = b.Driver.OverheadPct
		version.LaborFixed = b.Driver.LaborFixed
		version.OverheadFixed = b.Driver.OverheadFixed
	}
	return version
}
