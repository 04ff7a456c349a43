package db

import (
	types "github.com/vallepan/recetario-backend/internal/domain"
)

func (s *PostgresService) AutoMigrateAll() error {
	return s.db.AutoMigrate(
		&types.UnitOfMeasure{},
		&types.Ingredient{},
		&types.IngredientAlias{},
		&types.IngredientCost{},
		&types.IngredientStock{},

		&types.Recipe{},
		&types.RecipeLine{},
		&types.CostDriver{},
		&types.CostVersion{},

		&types.ProductionPlan{},
		&types.PlanItem{},
	)
}
