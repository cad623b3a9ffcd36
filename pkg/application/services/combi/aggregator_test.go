package combi

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testhelpers "github.com/vsinha/liftplan/pkg/application/services/testing"
	"github.com/vsinha/liftplan/pkg/domain/entities"
)

func records(plans ...*entities.MonthlyPlan) []Record {
	out := make([]Record, 0, len(plans))
	for _, p := range plans {
		out = append(out, Record{Plan: p, ProductName: p.ProductName})
	}
	return out
}

func TestAggregate_ConsolidatesGroup(t *testing.T) {
	a := testhelpers.MustCreateCombiPlan("MP3", "C2", "A", "G1", 1, 2024, 5, 1)
	b := testhelpers.MustCreateCombiPlan("MP4", "C2", "B", "G1", 1, 2024, 7, 0)

	result := NewAggregator(nil).Aggregate(records(a, b), "")

	require.Len(t, result.CombiGroups, 1)
	assert.Empty(t, result.Standalone)

	group := result.CombiGroups["G1"]
	assert.True(t, group.TotalQuantity.Equal(decimal.NewFromInt(12)))
	assert.True(t, group.TotalTopup.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, "A + B", group.Entry.ProductName)
	assert.Equal(t, []string{"MP3", "MP4"}, group.Entry.MonthlyPlanIDs)
	assert.True(t, result.Total().Equal(decimal.NewFromInt(12)))
}

func TestAggregate_RepresentativeIsLowestID(t *testing.T) {
	low := testhelpers.MustCreateCombiPlan("MP2", "C1", "A", "G1", 1, 2024, 5, 0)
	low.Laycan5Days = "1-5"
	high := testhelpers.MustCreateCombiPlan("MP10", "C1", "B", "G1", 1, 2024, 5, 0)
	high.Laycan5Days = "20-25"

	for _, order := range [][]*entities.MonthlyPlan{{low, high}, {high, low}} {
		result := NewAggregator(nil).Aggregate(records(order...), "")
		entry := result.CombiGroups["G1"].Entry
		assert.Equal(t, "1-5", entry.Laycan5Days)
		assert.Equal(t, "MP2", entry.CombiProducts[0].MonthlyPlanID)
	}
}

func TestAggregate_StandaloneAndGroupsMixed(t *testing.T) {
	solo := testhelpers.MustCreateMonthlyPlan("MP1", "", "C1", 1, 2024, 10)
	solo.ProductName = "Gasoil"
	a := testhelpers.MustCreateCombiPlan("MP3", "C1", "A", "G1", 1, 2024, 5, 1)
	b := testhelpers.MustCreateCombiPlan("MP4", "C1", "B", "G1", 1, 2024, 7, 0)

	result := NewAggregator(nil).Aggregate(records(b, solo, a), "")

	assert.Equal(t, []string{"G1"}, result.GroupIDs())
	require.Len(t, result.Standalone, 1)

	entries := result.Entries()
	require.Len(t, entries, 2)
	assert.True(t, entries[0].IsCombi)
	assert.False(t, entries[1].IsCombi)
	assert.Equal(t, []string{"MP1"}, entries[1].MonthlyPlanIDs)
	assert.True(t, result.Total().Equal(decimal.NewFromInt(22)))
}

func TestAggregate_ProductFilter(t *testing.T) {
	solo := testhelpers.MustCreateMonthlyPlan("MP1", "", "C1", 1, 2024, 10)
	solo.ProductName = "Jet A-1"
	a := testhelpers.MustCreateCombiPlan("MP3", "C1", "A", "G1", 1, 2024, 5, 1)
	b := testhelpers.MustCreateCombiPlan("MP4", "C1", "B", "G1", 1, 2024, 7, 0)

	tests := []struct {
		name           string
		filter         string
		wantGroups     int
		wantStandalone int
		wantTotal      int64
	}{
		{name: "empty", filter: "", wantGroups: 1, wantStandalone: 1, wantTotal: 22},
		{name: "jet", filter: "jet", wantGroups: 0, wantStandalone: 1, wantTotal: 10},
		{name: "member_b", filter: "b", wantGroups: 1, wantStandalone: 0, wantTotal: 7},
		{name: "nothing", filter: "HFO", wantGroups: 0, wantStandalone: 0, wantTotal: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewAggregator(nil).Aggregate(records(solo, a, b), tt.filter)
			assert.Len(t, result.CombiGroups, tt.wantGroups)
			assert.Len(t, result.Standalone, tt.wantStandalone)
			assert.Truef(t, result.Total().Equal(decimal.NewFromInt(tt.wantTotal)),
				"expected total %d, got %s", tt.wantTotal, result.Total())
		})
	}
}

func TestAggregate_IgnoresNilPlans(t *testing.T) {
	result := NewAggregator(nil).Aggregate([]Record{{Plan: nil, ProductName: "A"}}, "")

	assert.Empty(t, result.CombiGroups)
	assert.Empty(t, result.Standalone)
	assert.True(t, result.Total().IsZero())
}

func TestAggregate_Deterministic(t *testing.T) {
	a := testhelpers.MustCreateCombiPlan("MP3", "C2", "A", "G1", 1, 2024, 5, 1)
	b := testhelpers.MustCreateCombiPlan("MP4", "C2", "B", "G1", 1, 2024, 7, 0)
	agg := NewAggregator(nil)

	first := agg.Aggregate(records(a, b), "")
	second := agg.Aggregate(records(a, b), "")

	assert.Equal(t, first.GroupIDs(), second.GroupIDs())
	assert.True(t, first.Total().Equal(second.Total()))
	assert.Equal(t, first.CombiGroups["G1"].Entry.MonthlyPlanIDs, second.CombiGroups["G1"].Entry.MonthlyPlanIDs)
}

// reaggregate feeds every entry back as a standalone record
func reaggregate(t *testing.T, result *Result) *Result {
	t.Helper()
	var recs []Record
	for i, e := range result.Entries() {
		plan := testhelpers.MustCreateMonthlyPlan(fmt.Sprintf("E%d", i+1), "", "C1", e.Month, e.Year, 0)
		plan.Quantity = e.Quantity
		plan.ProductName = e.ProductName
		recs = append(recs, Record{Plan: plan, ProductName: e.ProductName})
	}
	return NewAggregator(nil).Aggregate(recs, "")
}

func TestAggregate_TotalPreservedForEveryGrouping(t *testing.T) {
	quantities := []int64{10, 5, 7, 3, 12}
	labels := []string{"", "G1", "G2", "G3"}
	rawTotal := decimal.NewFromInt(37)

	assignments := 1
	for range quantities {
		assignments *= len(labels)
	}

	for n := 0; n < assignments; n++ {
		var plans []*entities.MonthlyPlan
		code := n
		for i, qty := range quantities {
			group := labels[code%len(labels)]
			code /= len(labels)
			plans = append(plans, testhelpers.MustCreateCombiPlan(
				fmt.Sprintf("MP%d", i+1), "C1", fmt.Sprintf("P%d", i+1), group, 1, 2024, qty, 0))
		}

		result := NewAggregator(nil).Aggregate(records(plans...), "")
		if !assert.Truef(t, result.Total().Equal(rawTotal),
			"grouping %d: total %s, want %s", n, result.Total(), rawTotal) {
			continue
		}

		again := reaggregate(t, result)
		assert.Truef(t, again.Total().Equal(result.Total()),
			"grouping %d: re-aggregated total %s, want %s", n, again.Total(), result.Total())
		assert.Lenf(t, again.Entries(), len(result.Entries()), "grouping %d", n)
	}
}

func TestAggregate_ReaggregatingEntriesKeepsTotal(t *testing.T) {
	solo := testhelpers.MustCreateMonthlyPlan("MP1", "", "C1", 1, 2024, 10)
	solo.ProductName = "Gasoil"

	tests := []struct {
		name   string
		filter string
		plans  []*entities.MonthlyPlan
	}{
		{
			name:  "standalone_only",
			plans: []*entities.MonthlyPlan{solo},
		},
		{
			name: "group_and_standalone",
			plans: []*entities.MonthlyPlan{
				solo,
				testhelpers.MustCreateCombiPlan("MP3", "C1", "A", "G1", 1, 2024, 5, 1),
				testhelpers.MustCreateCombiPlan("MP4", "C1", "B", "G1", 1, 2024, 7, 0),
			},
		},
		{
			name:   "filtered_group",
			filter: "b",
			plans: []*entities.MonthlyPlan{
				testhelpers.MustCreateCombiPlan("MP3", "C1", "A", "G1", 1, 2024, 5, 1),
				testhelpers.MustCreateCombiPlan("MP4", "C1", "B", "G1", 1, 2024, 7, 0),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewAggregator(nil).Aggregate(records(tt.plans...), tt.filter)
			again := reaggregate(t, result)

			assert.True(t, again.Total().Equal(result.Total()),
				"re-aggregated total %s, want %s", again.Total(), result.Total())
			assert.Empty(t, again.CombiGroups)
		})
	}
}
