package matching

import (
	"context"
	"strings"
	"testing"

	"github.com/vallepan/recetario-backend/internal/domain/catalog"
	"github.com/vallepan/recetario-backend/internal/domain/recipes"
	"github.com/vallepan/recetario-backend/internal/platform/logger"
)

type fakeCatalog struct {
	aliases     map[string]*catalog.Ingredient
	ingredients []*catalog.Ingredient
}

func (f *fakeCatalog) AliasByNormalizedName(_ context.Context, name string) (*catalog.Ingredient, error) {
	return f.aliases[name], nil
}

func (f *fakeCatalog) ByNormalizedName(_ context.Context, name string) (*catalog.Ingredient, error) {
	for _, ing := range f.ingredients {
		if ing.Active && ing.NormalizedName == name {
			return ing, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalog) ContainingNormalizedName(_ context.Context, needle string) (*catalog.Ingredient, error) {
	var best *catalog.Ingredient
	for _, ing := range f.ingredients {
		if !ing.Active {
			continue
		}
		if strings.Contains(ing.NormalizedName, needle) {
			if best == nil || ing.ID < best.ID {
				best = ing
			}
		}
	}
	return best, nil
}

func (f *fakeCatalog) ActiveCandidates(_ context.Context) ([]Candidate, error) {
	out := make([]Candidate, 0, len(f.ingredients))
	for _, ing := range f.ingredients {
		if ing.Active {
			out = append(out, Candidate{ID: ing.ID, NormalizedName: ing.NormalizedName})
		}
	}
	return out, nil
}

func (f *fakeCatalog) ByID(_ context.Context, id uint) (*catalog.Ingredient, error) {
	for _, ing := range f.ingredients {
		if ing.ID == id {
			return ing, nil
		}
	}
	return nil, nil
}

func newTestEngine(t *testing.T, cat *fakeCatalog) *Engine {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewEngine(cat, log)
}

func ing(id uint, name string) *catalog.Ingredient {
	return &catalog.Ingredient{ID: id, Name: name, NormalizedName: name, Active: true}
}

func TestMatchAliasFirst(t *testing.T) {
	harina := ing(1, "harina de trigo")
	cat := &fakeCatalog{
		aliases:     map[string]*catalog.Ingredient{"harina tpo": harina},
		ingredients: []*catalog.Ingredient{harina, ing(2, "harina tpo especial")},
	}
	engine := newTestEngine(t, cat)

	got, err := engine.Match(context.Background(), "Harina TPO")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if got.Method != recipes.MatchMethodAlias || got.Ingredient == nil || got.Ingredient.ID != 1 {
		t.Fatalf("alias should win before exact, got %+v", got)
	}
	if got.Score != 100 {
		t.Fatalf("alias score = %v, want 100", got.Score)
	}
}

func TestMatchExact(t *testing.T) {
	cat := &fakeCatalog{ingredients: []*catalog.Ingredient{ing(1, "azucar glass")}}
	engine := newTestEngine(t, cat)

	got, err := engine.Match(context.Background(), "  Azúcar   GLASS ")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if got.Method != recipes.MatchMethodExact || got.Ingredient == nil || got.Ingredient.ID != 1 {
		t.Fatalf("expected exact match, got %+v", got)
	}
}

func TestMatchContainsGuard(t *testing.T) {
	cat := &fakeCatalog{ingredients: []*catalog.Ingredient{ing(1, "pan de muerto grande")}}
	engine := newTestEngine(t, cat)

	// A single short token must not fall into a longer entry.
	got, err := engine.Match(context.Background(), "pan")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if got.Method == recipes.MatchMethodContains {
		t.Fatalf("short input must not use contains, got %+v", got)
	}

	got, err = engine.Match(context.Background(), "pan de muerto")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if got.Method != recipes.MatchMethodContains || got.Ingredient == nil || got.Ingredient.ID != 1 {
		t.Fatalf("expected contains match, got %+v", got)
	}
	if got.Score != 95 {
		t.Fatalf("contains score = %v, want 95", got.Score)
	}
}

func TestMatchFuzzy(t *testing.T) {
	cat := &fakeCatalog{ingredients: []*catalog.Ingredient{
		ing(1, "mantequilla sin sal"),
		ing(2, "levadura seca"),
	}}
	engine := newTestEngine(t, cat)

	got, err := engine.Match(context.Background(), "mantequila sin sal")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if got.Method != recipes.MatchMethodFuzzy || got.Ingredient == nil || got.Ingredient.ID != 1 {
		t.Fatalf("expected fuzzy match on ingredient 1, got %+v", got)
	}
	if got.Score < FuzzyThreshold {
		t.Fatalf("fuzzy score %v below threshold", got.Score)
	}

	// Nothing remotely close stays unmatched.
	got, err = engine.Match(context.Background(), "xxxxxxxxxxxx")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if got.Ingredient != nil || got.Method != recipes.MatchMethodNone {
		t.Fatalf("expected no match, got %+v", got)
	}
}

func TestMatchFuzzyQualifierRestriction(t *testing.T) {
	cat := &fakeCatalog{ingredients: []*catalog.Ingredient{
		ing(1, "pastel chocolate grande"),
		ing(2, "pastel chocolate mini"),
	}}
	engine := newTestEngine(t, cat)

	// "mini" in the input must never land on the "grande" variant,
	// even though the grande string is closer by edit distance.
	got, err := engine.Match(context.Background(), "pastl chocolate mini")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if got.Ingredient == nil || got.Ingredient.ID != 2 {
		t.Fatalf("qualifier set must restrict candidates, got %+v", got)
	}
}

func TestMatchEmptyInput(t *testing.T) {
	engine := newTestEngine(t, &fakeCatalog{})
	got, err := engine.Match(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if got.Ingredient != nil || got.Method != recipes.MatchMethodNone {
		t.Fatalf("blank input should not match, got %+v", got)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{100, recipes.MatchStatusAutoApproved},
		{90, recipes.MatchStatusAutoApproved},
		{89.999, recipes.MatchStatusNeedsReview},
		{75, recipes.MatchStatusNeedsReview},
		{74.999, recipes.MatchStatusRejected},
		{0, recipes.MatchStatusRejected},
	}
	for _, tc := range cases {
		if got := Classify(tc.score); got != tc.want {
			t.Fatalf("Classify(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestQualifierSet(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"pastel chocolate", ""},
		{"pastel chocolate mini", "mini"},
		{"pastel ch", "chico"},
		{"torta 1/2 plancha", "media plancha"},
		{"vainilla grande ind", "grande|individual"},
		{"bollos de nata", "bollo"},
	}
	for _, tc := range cases {
		if got := qualifierSet(tc.in); got != tc.want {
			t.Fatalf("qualifierSet(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
