package domain

import (
	"github.com/vallepan/recetario-backend/internal/domain/catalog"
	"github.com/vallepan/recetario-backend/internal/domain/planning"
	"github.com/vallepan/recetario-backend/internal/domain/recipes"
)

type UnitOfMeasure = catalog.UnitOfMeasure
type Ingredient = catalog.Ingredient
type IngredientAlias = catalog.IngredientAlias
type IngredientCost = catalog.IngredientCost
type IngredientStock = catalog.IngredientStock

type Recipe = recipes.Recipe
type RecipeLine = recipes.RecipeLine
type CostDriver = recipes.CostDriver
type CostVersion = recipes.CostVersion

type ProductionPlan = planning.ProductionPlan
type PlanItem = planning.PlanItem

const (
	MatchStatusAutoApproved = recipes.MatchStatusAutoApproved
	MatchStatusNeedsReview  = recipes.MatchStatusNeedsReview
	MatchStatusRejected     = recipes.MatchStatusRejected

	MatchMethodAlias    = recipes.MatchMethodAlias
	MatchMethodExact    = recipes.MatchMethodExact
	MatchMethodContains = recipes.MatchMethodContains
	MatchMethodFuzzy    = recipes.MatchMethodFuzzy
	MatchMethodManual   = recipes.MatchMethodManual
	MatchMethodNone     = recipes.MatchMethodNone

	LineKindNormal     = recipes.LineKindNormal
	LineKindSubsection = recipes.LineKindSubsection

	DriverScopeProduct = recipes.DriverScopeProduct
	DriverScopeFamily  = recipes.DriverScopeFamily
	DriverScopeBatch   = recipes.DriverScopeBatch
	DriverScopeGlobal  = recipes.DriverScopeGlobal

	RecipeTypeIntermediate = recipes.RecipeTypeIntermediate
	RecipeTypeFinalProduct = recipes.RecipeTypeFinalProduct

	UnitKindMass   = catalog.UnitKindMass
	UnitKindVolume = catalog.UnitKindVolume
	UnitKindPiece  = catalog.UnitKindPiece
)
