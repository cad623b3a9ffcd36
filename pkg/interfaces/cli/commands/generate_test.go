package commands

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/liftplan/pkg/domain/entities"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool {
	return a.Equal(b)
})

func TestScenarioGenerator_Deterministic(t *testing.T) {
	config := GenerateConfig{Contracts: 5, Year: 2025, CombiRate: 0.5, CargoRate: 0.5, Seed: 42}

	first, err := NewScenarioGenerator(config).Generate()
	require.NoError(t, err)
	second, err := NewScenarioGenerator(config).Generate()
	require.NoError(t, err)

	if diff := cmp.Diff(first, second, decimalComparer); diff != "" {
		t.Errorf("same seed produced different snapshots (-first +second):\n%s", diff)
	}
}

func TestScenarioGenerator_Consistency(t *testing.T) {
	snapshot, err := NewScenarioGenerator(GenerateConfig{
		Contracts: 8, Year: 2025, CombiRate: 0.6, CargoRate: 0.8, Seed: 3,
	}).Generate()
	require.NoError(t, err)

	require.Len(t, snapshot.Contracts, 8)
	require.Len(t, snapshot.Customers, 4)

	customers := make(map[string]bool)
	for _, c := range snapshot.Customers {
		customers[c.ID] = true
	}
	contracts := make(map[string]*entities.Contract)
	for _, c := range snapshot.Contracts {
		assert.True(t, customers[c.CustomerID], "contract %s customer", c.ID)
		assert.NotEmpty(t, c.Products)
		if c.TNGLeadDays != nil {
			assert.Equal(t, entities.CIF, c.Type, "TNG lead days only on CIF contracts")
		}
		contracts[c.ID] = c
	}

	quarterly := make(map[string]*entities.QuarterlyPlan)
	quarterSums := make(map[string]decimal.Decimal)
	for _, qp := range snapshot.QuarterlyPlans {
		require.Contains(t, contracts, qp.ContractID)
		quarterly[qp.ID] = qp
	}

	type groupKey struct {
		contractID string
		month      int
	}
	groups := make(map[string][]groupKey)
	plans := make(map[string]*entities.MonthlyPlan)
	for _, mp := range snapshot.MonthlyPlans {
		plans[mp.ID] = mp
		assert.Equal(t, 2025, mp.Year)

		contractID := mp.ContractID
		if mp.QuarterlyPlanID != "" {
			qp, ok := quarterly[mp.QuarterlyPlanID]
			require.True(t, ok, "plan %s quarterly plan", mp.ID)
			contractID = qp.ContractID
			quarterSums[qp.ID] = quarterSums[qp.ID].Add(mp.Quantity)
		} else {
			assert.NotEmpty(t, mp.ProductName)
		}
		require.Contains(t, contracts, contractID)

		if mp.HasCombiGroup() {
			groups[mp.CombiGroupID] = append(groups[mp.CombiGroupID], groupKey{contractID, mp.Month})
		}
	}

	for id, qp := range quarterly {
		assert.True(t, qp.Total().Equal(quarterSums[id]), "quarterly plan %s totals its monthly plans", id)
	}

	for id, members := range groups {
		assert.GreaterOrEqual(t, len(members), 2, "combi group %s", id)
		for _, m := range members {
			assert.Equal(t, members[0], m, "combi group %s shares contract and month", id)
		}
	}

	for _, cargo := range snapshot.Cargos {
		mp, ok := plans[cargo.MonthlyPlanID]
		require.True(t, ok, "cargo %s monthly plan", cargo.ID)
		assert.Equal(t, mp.LaycanText(contracts[cargo.ContractID].Type), cargo.LaycanWindow)
		assert.True(t, cargo.Status.IsKnown())
	}
}

func TestScenarioGenerator_InvalidConfig(t *testing.T) {
	_, err := NewScenarioGenerator(GenerateConfig{Contracts: 0, Year: 2025}).Generate()
	assert.Error(t, err)

	_, err = NewScenarioGenerator(GenerateConfig{Contracts: 2}).Generate()
	assert.Error(t, err)
}
