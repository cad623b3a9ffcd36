package memory

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vsinha/liftplan/pkg/domain/entities"
	"github.com/vsinha/liftplan/pkg/domain/repositories"
)

func TestContractRepository_SaveAndGet(t *testing.T) {
	repo := NewContractRepository(4)

	contract := &entities.Contract{ID: "C1", ContractNumber: "TC-001", CustomerID: "CU1", Type: entities.CIF}
	if err := repo.SaveContract(contract); err != nil {
		t.Fatalf("Failed to save contract: %v", err)
	}

	retrieved, err := repo.GetContract("C1")
	if err != nil {
		t.Fatalf("Failed to get contract: %v", err)
	}
	if retrieved.ContractNumber != "TC-001" {
		t.Errorf("Expected contract number TC-001, got %s", retrieved.ContractNumber)
	}
	if retrieved.Type != entities.CIF {
		t.Errorf("Expected type CIF, got %v", retrieved.Type)
	}

	// Mutating the returned copy must not change the stored contract
	retrieved.ContractNumber = "changed"
	again, _ := repo.GetContract("C1")
	if again.ContractNumber != "TC-001" {
		t.Errorf("Stored contract was mutated through a returned pointer")
	}
}

func TestContractRepository_SaveReplaces(t *testing.T) {
	repo := NewContractRepository(4)

	_ = repo.SaveContract(&entities.Contract{ID: "C1", ContractNumber: "first", CustomerID: "CU1"})
	_ = repo.SaveContract(&entities.Contract{ID: "C1", ContractNumber: "second", CustomerID: "CU1"})

	all, err := repo.GetAllContracts()
	if err != nil {
		t.Fatalf("Failed to list contracts: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("Expected 1 contract, got %d", len(all))
	}
	if all[0].ContractNumber != "second" {
		t.Errorf("Expected replaced contract number 'second', got %s", all[0].ContractNumber)
	}
}

func TestRepositories_NotFound(t *testing.T) {
	tests := []struct {
		name string
		get  func() error
	}{
		{
			name: "contract",
			get: func() error {
				_, err := NewContractRepository(0).GetContract("missing")
				return err
			},
		},
		{
			name: "customer",
			get: func() error {
				_, err := NewCustomerRepository().GetCustomer("missing")
				return err
			},
		},
		{
			name: "quarterly_plan",
			get: func() error {
				_, err := NewPlanRepository(0).GetQuarterlyPlan("missing")
				return err
			},
		},
		{
			name: "monthly_plan",
			get: func() error {
				_, err := NewPlanRepository(0).GetMonthlyPlan("missing")
				return err
			},
		},
		{
			name: "cargo",
			get: func() error {
				_, err := NewCargoRepository().GetCargo("missing")
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.get()
			if !errors.Is(err, repositories.ErrNotFound) {
				t.Errorf("Expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestCustomerRepository_InsertionOrder(t *testing.T) {
	repo := NewCustomerRepository()
	err := repo.LoadCustomers([]*entities.Customer{
		{ID: "B", Name: "Beta"},
		{ID: "A", Name: "Alpha"},
		{ID: "B", Name: "Beta Renamed"},
	})
	if err != nil {
		t.Fatalf("Failed to load customers: %v", err)
	}

	all, _ := repo.GetAllCustomers()
	if len(all) != 2 {
		t.Fatalf("Expected 2 customers, got %d", len(all))
	}
	if all[0].ID != "B" || all[1].ID != "A" {
		t.Errorf("Expected insertion order [B A], got [%s %s]", all[0].ID, all[1].ID)
	}
	if all[0].Name != "Beta Renamed" {
		t.Errorf("Expected replaced name, got %s", all[0].Name)
	}
}

func TestPlanRepository_QuarterlyPlansByContract(t *testing.T) {
	repo := NewPlanRepository(4)
	err := repo.LoadQuarterlyPlans([]*entities.QuarterlyPlan{
		{ID: "QP1", ContractID: "C1", Q1: decimal.NewFromInt(10)},
		{ID: "QP2", ContractID: "C2", Q1: decimal.NewFromInt(20)},
		{ID: "QP3", ContractID: "C1", Q2: decimal.NewFromInt(30)},
	})
	if err != nil {
		t.Fatalf("Failed to load quarterly plans: %v", err)
	}

	plans, err := repo.GetQuarterlyPlansByContract("C1")
	if err != nil {
		t.Fatalf("Failed to get plans: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("Expected 2 plans for C1, got %d", len(plans))
	}
	if plans[0].ID != "QP1" || plans[1].ID != "QP3" {
		t.Errorf("Expected [QP1 QP3], got [%s %s]", plans[0].ID, plans[1].ID)
	}
}

func TestPlanRepository_QuarterlyPlanCannotChangeContract(t *testing.T) {
	repo := NewPlanRepository(2)
	_ = repo.LoadQuarterlyPlans([]*entities.QuarterlyPlan{{ID: "QP1", ContractID: "C1"}})

	err := repo.LoadQuarterlyPlans([]*entities.QuarterlyPlan{{ID: "QP1", ContractID: "C2"}})
	if err == nil {
		t.Fatal("Expected error when moving a quarterly plan to another contract")
	}
}

func TestPlanRepository_MonthlyPlans(t *testing.T) {
	repo := NewPlanRepository(4)
	err := repo.LoadMonthlyPlans([]*entities.MonthlyPlan{
		{ID: "MP1", QuarterlyPlanID: "QP1", Month: 1, Year: 2024, Quantity: decimal.NewFromInt(10)},
		{ID: "MP2", ContractID: "C1", Month: 2, Year: 2024, Quantity: decimal.NewFromInt(15)},
	})
	if err != nil {
		t.Fatalf("Failed to load monthly plans: %v", err)
	}

	mp, err := repo.GetMonthlyPlan("MP2")
	if err != nil {
		t.Fatalf("Failed to get monthly plan: %v", err)
	}
	if !mp.Quantity.Equal(decimal.NewFromInt(15)) {
		t.Errorf("Expected quantity 15, got %s", mp.Quantity)
	}

	all, _ := repo.GetAllMonthlyPlans()
	if len(all) != 2 {
		t.Errorf("Expected 2 monthly plans, got %d", len(all))
	}
}

func TestCargoRepository_ByContract(t *testing.T) {
	repo := NewCargoRepository()
	err := repo.LoadCargos([]*entities.Cargo{
		{ID: "CG1", ContractID: "C1"},
		{ID: "CG2", ContractID: "C2"},
		{ID: "CG3", ContractID: "C1"},
	})
	if err != nil {
		t.Fatalf("Failed to load cargos: %v", err)
	}

	cargos, _ := repo.GetCargosByContract("C1")
	if len(cargos) != 2 {
		t.Fatalf("Expected 2 cargos for C1, got %d", len(cargos))
	}

	if err := repo.LoadCargos([]*entities.Cargo{nil}); err == nil {
		t.Error("Expected error for nil cargo")
	}
}
