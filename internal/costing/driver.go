package costing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vallepan/recetario-backend/internal/domain/recipes"
)

const (
	scoreProduct = 400
	scoreFamily  = 300
	scoreBatch   = 200
	scoreGlobal  = 100

	batchRecipeBonus = 40
	batchFamilyBonus = 20
)

// ResolveDriver selects the single applicable cost driver for a
// recipe at a batch-size reference, or nil when none is eligible.
// Callers treat nil as zero percentages and zero fixed amounts.
// Precedence: highest score, then lowest priority, then lowest id.
func ResolveDriver(recipe *recipes.Recipe, batchRef decimal.Decimal, drivers []*recipes.CostDriver) *recipes.CostDriver {
	familyKey := recipe.FamilyKey()

	type candidate struct {
		score  int
		driver *recipes.CostDriver
	}
	var candidates []candidate

	for _, d := range drivers {
		if d == nil || !d.Active {
			continue
		}
		score := 0
		eligible := false

		switch d.Scope {
		case recipes.DriverScopeProduct:
			eligible = d.RecipeID != nil && *d.RecipeID == recipe.ID
			score = scoreProduct
		case recipes.DriverScopeFamily:
			eligible = d.FamilyKey != "" && d.FamilyKey == familyKey
			score = scoreFamily
		case recipes.DriverScopeBatch:
			inRange := true
			if d.BatchFrom != nil && batchRef.LessThan(*d.BatchFrom) {
				inRange = false
			}
			if d.BatchTo != nil && batchRef.GreaterThan(*d.BatchTo) {
				inRange = false
			}
			recipeOK := d.RecipeID == nil || *d.RecipeID == recipe.ID
			familyOK := d.FamilyKey == "" || d.FamilyKey == familyKey
			eligible = inRange && recipeOK && familyOK
			score = scoreBatch
			if d.RecipeID != nil && *d.RecipeID == recipe.ID {
				score += batchRecipeBonus
			}
			if d.FamilyKey != "" && d.FamilyKey == familyKey {
				score += batchFamilyBonus
			}
		case recipes.DriverScopeGlobal:
			eligible = true
			score = scoreGlobal
		}

		if eligible {
			candidates = append(candidates, candidate{score: score, driver: d})
		}
	}

	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.driver.Priority != b.driver.Priority {
			return a.driver.Priority < b.driver.Priority
		}
		return a.driver.ID < b.driver.ID
	})
	return candidates[0].driver
}
