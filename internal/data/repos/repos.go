package repos

import (
	"gorm.io/gorm"

	"github.com/vallepan/recetario-backend/internal/data/repos/catalog"
	"github.com/vallepan/recetario-backend/internal/data/repos/planning"
	"github.com/vallepan/recetario-backend/internal/data/repos/recipes"
	"github.com/vallepan/recetario-backend/internal/platform/logger"
)

type UnitRepo = catalog.UnitRepo
type IngredientRepo = catalog.IngredientRepo
type IngredientAliasRepo = catalog.IngredientAliasRepo
type IngredientCostRepo = catalog.IngredientCostRepo
type StockRepo = catalog.StockRepo

type RecipeRepo = recipes.RecipeRepo
type RecipeLineRepo = recipes.RecipeLineRepo
type CostDriverRepo = recipes.CostDriverRepo
type CostVersionRepo = recipes.CostVersionRepo

type ProductionPlanRepo = planning.ProductionPlanRepo

func NewUnitRepo(db *gorm.DB, baseLog *logger.Logger) UnitRepo {
	return catalog.NewUnitRepo(db, baseLog)
}
func NewIngredientRepo(db *gorm.DB, baseLog *logger.Logger) IngredientRepo {
	return catalog.NewIngredientRepo(db, baseLog)
}
func NewIngredientAliasRepo(db *gorm.DB, baseLog *logger.Logger) IngredientAliasRepo {
	return catalog.NewIngredientAliasRepo(db, baseLog)
}
func NewIngredientCostRepo(db *gorm.DB, baseLog *logger.Logger) IngredientCostRepo {
	return catalog.NewIngredientCostRepo(db, baseLog)
}
func NewStockRepo(db *gorm.DB, baseLog *logger.Logger) StockRepo {
	return catalog.NewStockRepo(db, baseLog)
}

func NewRecipeRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRepo {
	return recipes.NewRecipeRepo(db, baseLog)
}
func NewRecipeLineRepo(db *gorm.DB, baseLog *logger.Logger) RecipeLineRepo {
	return recipes.NewRecipeLineRepo(db, baseLog)
}
func NewCostDriverRepo(db *gorm.DB, baseLog *logger.Logger) CostDriverRepo {
	return recipes.NewCostDriverRepo(db, baseLog)
}
func NewCostVersionRepo(db *gorm.DB, baseLog *logger.Logger) CostVersionRepo {
	return recipes.NewCostVersionRepo(db, baseLog)
}

func NewProductionPlanRepo(db *gorm.DB, baseLog *logger.Logger) ProductionPlanRepo {
	return planning.NewProductionPlanRepo(db, baseLog)
}
