package costing

import (
	"testing"

	"github.com/vallepan/recetario-backend/internal/domain/recipes"
)

func TestCompareLatest(t *testing.T) {
	if got := CompareLatest(nil); got != nil {
		t.Fatalf("no versions should compare to nil, got %+v", got)
	}
	one := []*recipes.CostVersion{{VersionNum: 1, TotalCost: dec(t, "10")}}
	if got := CompareLatest(one); got != nil {
		t.Fatalf("single version should compare to nil, got %+v", got)
	}

	versions := []*recipes.CostVersion{
		{VersionNum: 3, TotalCost: dec(t, "12")},
		{VersionNum: 2, TotalCost: dec(t, "10")},
		{VersionNum: 1, TotalCost: dec(t, "8")},
	}
	delta := CompareLatest(versions)
	if delta == nil {
		t.Fatalf("expected a delta")
	}
	if delta.CurrentVersion != 3 || delta.PreviousVersion != 2 {
		t.Fatalf("compared versions %d/%d, want 3/2", delta.CurrentVersion, delta.PreviousVersion)
	}
	if got := delta.DeltaTotal.StringFixed(2); got != "2.00" {
		t.Fatalf("DeltaTotal = %s, want 2.00", got)
	}
	if got := delta.DeltaPct.StringFixed(2); got != "20.00" {
		t.Fatalf("DeltaPct = %s, want 20.00", got)
	}
}

func TestCompareLatestZeroPrevious(t *testing.T) {
	versions := []*recipes.CostVersion{
		{VersionNum: 2, TotalCost: dec(t, "5")},
		{VersionNum: 1, TotalCost: dec(t, "0")},
	}
	delta := CompareLatest(versions)
	if delta == nil {
		t.Fatalf("expected a delta")
	}
	if !delta.DeltaPct.IsZero() {
		t.Fatalf("zero previous total should give zero pct, got %s", delta.DeltaPct)
	}
	if got := delta.DeltaTotal.StringFixed(2); got != "5.00" {
		t.Fatalf("DeltaTotal = %s, want 5.00", got)
	}
}
