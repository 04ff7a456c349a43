package matching

import (
	"context"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/vallepan/recetario-backend/internal/domain/catalog"
	"github.com/vallepan/recetario-backend/internal/domain/recipes"
	"github.com/vallepan/recetario-backend/internal/normalization"
	"github.com/vallepan/recetario-backend/internal/platform/logger"
)

const (
	scoreAlias    = 100.0
	scoreExact    = 100.0
	scoreContains = 95.0

	// FuzzyThreshold is the minimum similarity for a fuzzy hit.
	FuzzyThreshold = 75.0
	// AutoApproveThreshold promotes a match without human review.
	AutoApproveThreshold = 90.0

	// The contains step only fires for reasonably specific inputs so
	// short generic tokens ("pan") don't land on unrelated entries
	// ("pan de muerto").
	containsMinTokens = 2
	containsMinLength = 8
)

// Candidate is one fuzzy-matchable catalog entry.
type Candidate struct {
	ID             uint
	NormalizedName string
}

// Catalog is the read surface the engine needs. Lookups return
// (nil, nil) on no hit.
type Catalog interface {
	AliasByNormalizedName(ctx context.Context, name string) (*catalog.Ingredient, error)
	ByNormalizedName(ctx context.Context, name string) (*catalog.Ingredient, error)
	ContainingNormalizedName(ctx context.Context, needle string) (*catalog.Ingredient, error)
	ActiveCandidates(ctx context.Context) ([]Candidate, error)
	ByID(ctx context.Context, id uint) (*catalog.Ingredient, error)
}

// Result is the outcome of resolving one free-text ingredient name.
type Result struct {
	Ingredient *catalog.Ingredient
	Score      float64
	Method     string
}

// Engine resolves noisy free-text ingredient names against the
// catalog. Pure reads; callers persist outcomes.
type Engine struct {
	catalog Catalog
	log     *logger.Logger
}

func NewEngine(cat Catalog, baseLog *logger.Logger) *Engine {
	return &Engine{catalog: cat, log: baseLog.With("service", "MatchingEngine")}
}

// Match runs the ordered resolution pipeline: alias, exact, contains,
// fuzzy. First hit wins.
func (e *Engine) Match(ctx context.Context, freeText string) (Result, error) {
	name := normalization.Name(freeText)
	if name == "" {
		return Result{Method: recipes.MatchMethodNone}, nil
	}

	if ing, err := e.catalog.AliasByNormalizedName(ctx, name); err != nil {
		return Result{}, err
	} else if ing != nil {
		return Result{Ingredient: ing, Score: scoreAlias, Method: recipes.MatchMethodAlias}, nil
	}

	if ing, err := e.catalog.ByNormalizedName(ctx, name); err != nil {
		return Result{}, err
	} else if ing != nil {
		return Result{Ingredient: ing, Score: scoreExact, Method: recipes.MatchMethodExact}, nil
	}

	if len(strings.Fields(name)) >= containsMinTokens && len([]rune(name)) >= containsMinLength {
		if ing, err := e.catalog.ContainingNormalizedName(ctx, name); err != nil {
			return Result{}, err
		} else if ing != nil {
			return Result{Ingredient: ing, Score: scoreContains, Method: recipes.MatchMethodContains}, nil
		}
	}

	return e.fuzzy(ctx, name)
}

func (e *Engine) fuzzy(ctx context.Context, name string) (Result, error) {
	candidates, err := e.catalog.ActiveCandidates(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(candidates) == 0 {
		return Result{Method: recipes.MatchMethodNone}, nil
	}

	qualifiers := qualifierSet(name)
	bestScore := 0.0
	var bestID uint
	for _, cand := range candidates {
		if cand.NormalizedName == "" {
			continue
		}
		if qualifiers != "" && qualifierSet(cand.NormalizedName) != qualifiers {
			continue
		}
		score := similarity(name, cand.NormalizedName)
		if score > bestScore {
			bestScore = score
			bestID = cand.ID
		}
	}

	if bestScore < FuzzyThreshold {
		return Result{Score: bestScore, Method: recipes.MatchMethodNone}, nil
	}
	ing, err := e.catalog.ByID(ctx, bestID)
	if err != nil {
		return Result{}, err
	}
	if ing == nil {
		return Result{Score: bestScore, Method: recipes.MatchMethodNone}, nil
	}
	return Result{Ingredient: ing, Score: bestScore, Method: recipes.MatchMethodFuzzy}, nil
}

// similarity is a normalized Levenshtein ratio in [0, 100].
func similarity(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return (1 - float64(dist)/float64(longest)) * 100
}

// Classify buckets a match score into an approval status. Lines that
// classify as REJECTED must be persisted without an ingredient
// reference, even when the matcher found one.
func Classify(score float64) string {
	switch {
	case score >= AutoApproveThreshold:
		return recipes.MatchStatusAutoApproved
	case score >= FuzzyThreshold:
		return recipes.MatchStatusNeedsReview
	default:
		return recipes.MatchStatusRejected
	}
}
