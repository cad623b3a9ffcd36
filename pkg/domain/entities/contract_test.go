package entities

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestContract_Validation(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	products := []Product{{Name: "Gasoil 10ppm", FirmQuantity: decimal.NewFromInt(100)}}

	contract, err := NewContract("C1", "TC-2024-001", "CU1", FOB, products, start, end)
	if err != nil {
		t.Fatalf("Expected valid contract creation to succeed: %v", err)
	}
	if contract.Label() != "TC-2024-001" {
		t.Errorf("Expected label TC-2024-001, got %s", contract.Label())
	}

	testCases := []struct {
		name        string
		id          string
		customerID  string
		products    []Product
		start, end  time.Time
		expectError string
	}{
		{"empty id", "", "CU1", products, start, end, "contract id cannot be empty"},
		{"empty customer", "C1", "", products, start, end, "customer id cannot be empty"},
		{"end before start", "C1", "CU1", products, end, start, "cannot be before start"},
		{"unnamed product", "C1", "CU1", []Product{{FirmQuantity: decimal.NewFromInt(1)}}, start, end, "product name cannot be empty"},
		{
			"negative product quantity",
			"C1",
			"CU1",
			[]Product{{Name: "Jet", FirmQuantity: decimal.NewFromInt(-1)}},
			start,
			end,
			"quantities cannot be negative",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewContract(tc.id, "N", tc.customerID, CIF, tc.products, tc.start, tc.end)
			if err == nil {
				t.Fatalf("Expected error containing %q", tc.expectError)
			}
			if !strings.Contains(err.Error(), tc.expectError) {
				t.Errorf("Expected error containing %q, got %q", tc.expectError, err.Error())
			}
		})
	}
}

func TestContract_LabelAndYears(t *testing.T) {
	contract := &Contract{ID: "C9", StartPeriod: time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)}

	if contract.Label() != "C9" {
		t.Errorf("Expected id fallback label C9, got %s", contract.Label())
	}
	if got := contract.ContractYear(1); got != 2023 {
		t.Errorf("Expected contract year 1 to be 2023, got %d", got)
	}
	if got := contract.ContractYear(2); got != 2024 {
		t.Errorf("Expected contract year 2 to be 2024, got %d", got)
	}
	if got := contract.ContractYear(0); got != 0 {
		t.Errorf("Expected ordinal 0 to resolve to 0, got %d", got)
	}
	if got := (&Contract{}).ContractYear(1); got != 0 {
		t.Errorf("Expected contract without start to resolve to 0, got %d", got)
	}
}

func TestCustomer_Validation(t *testing.T) {
	if _, err := NewCustomer("CU1", "Acme Energy"); err != nil {
		t.Fatalf("Expected valid customer: %v", err)
	}
	if _, err := NewCustomer("", "Acme Energy"); err == nil {
		t.Error("Expected error for empty customer id")
	}
	if _, err := NewCustomer("CU1", ""); err == nil {
		t.Error("Expected error for empty customer name")
	}
}

func TestProduct_TotalQuantity(t *testing.T) {
	p := Product{FirmQuantity: decimal.NewFromInt(100), OptionalQuantity: decimal.NewFromInt(20)}
	if !p.TotalQuantity().Equal(decimal.NewFromInt(120)) {
		t.Errorf("Expected total 120, got %s", p.TotalQuantity())
	}
}
