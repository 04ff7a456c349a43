package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/vallepan/recetario-backend/internal/clients/redis"
	"github.com/vallepan/recetario-backend/internal/data/repos"
	"github.com/vallepan/recetario-backend/internal/domain/catalog"
	"github.com/vallepan/recetario-backend/internal/matching"
	"github.com/vallepan/recetario-backend/internal/platform/logger"
)

// catalogReader adapts the ingredient repos (plus an optional Redis
// candidate cache) to the matching engine's read surface. A nil cache
// means every candidate scan hits Postgres.
type catalogReader struct {
	db             *gorm.DB
	log            *logger.Logger
	ingredientRepo repos.IngredientRepo
	aliasRepo      repos.IngredientAliasRepo
	cache          redis.CandidateCache
}

func NewCatalogReader(db *gorm.DB, log *logger.Logger, ingredientRepo repos.IngredientRepo, aliasRepo repos.IngredientAliasRepo, cache redis.CandidateCache) matching.Catalog {
	return &catalogReader{
		db:             db,
		log:            log.With("service", "CatalogReader"),
		ingredientRepo: ingredientRepo,
		aliasRepo:      aliasRepo,
		cache:          cache,
	}
}

func (c *catalogReader) AliasByNormalizedName(ctx context.Context, name string) (*catalog.Ingredient, error) {
	alias, err := c.aliasRepo.GetByNormalizedName(ctx, nil, name)
	if err != nil {
		return nil, err
	}
	if alias == nil || alias.Ingredient == nil || !alias.Ingredient.Active {
		return nil, nil
	}
	return alias.Ingredient, nil
}

func (c *catalogReader) ByNormalizedName(ctx context.Context, name string) (*catalog.Ingredient, error) {
	return c.ingredientRepo.GetByNormalizedName(ctx, nil, name)
}

func (c *catalogReader) ContainingNormalizedName(ctx context.Context, needle string) (*catalog.Ingredient, error) {
	return c.ingredientRepo.GetContainingNormalizedName(ctx, nil, needle)
}

func (c *catalogReader) ActiveCandidates(ctx context.Context) ([]matching.Candidate, error) {
	if c.cache != nil {
		cached, err := c.cache.Get(ctx)
		if err != nil {
			c.log.Warn("candidate cache read failed", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	ingredients, err := c.ingredientRepo.ListActive(ctx, nil)
	if err != nil {
		return nil, err
	}
	candidates := make([]matching.Candidate, 0, len(ingredients))
	for _, ing := range ingredients {
		candidates = append(candidates, matching.Candidate{ID: ing.ID, NormalizedName: ing.NormalizedName})
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, candidates); err != nil {
			c.log.Warn("candidate cache write failed", "error", err)
		}
	}
	return candidates, nil
}

func (c *catalogReader) ByID(ctx context.Context, id uint) (*catalog.Ingredient, error) {
	found, err := c.ingredientRepo.GetByIDs(ctx, nil, []uint{id})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}
