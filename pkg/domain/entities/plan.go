package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// QuarterlyPlan breaks a contract year down into per-quarter quantities for one product
type QuarterlyPlan struct {
	ID           string
	ContractID   string
	ProductName  string
	Q1           Quantity
	Q2           Quantity
	Q3           Quantity
	Q4           Quantity
	ContractYear int // contract-relative year ordinal, 1-based
}

// NewQuarterlyPlan creates a validated QuarterlyPlan
func NewQuarterlyPlan(id, contractID, productName string, quarters [4]Quantity, contractYear int) (*QuarterlyPlan, error) {
	if id == "" {
		return nil, fmt.Errorf("quarterly plan id cannot be empty")
	}
	if contractID == "" {
		return nil, fmt.Errorf("contract id cannot be empty")
	}
	for i, q := range quarters {
		if q.IsNegative() {
			return nil, fmt.Errorf("q%d quantity cannot be negative, got %s", i+1, q)
		}
	}
	if contractYear < 0 {
		return nil, fmt.Errorf("contract year cannot be negative, got %d", contractYear)
	}

	return &QuarterlyPlan{
		ID:           id,
		ContractID:   contractID,
		ProductName:  productName,
		Q1:           quarters[0],
		Q2:           quarters[1],
		Q3:           quarters[2],
		Q4:           quarters[3],
		ContractYear: contractYear,
	}, nil
}

// QuarterQuantity returns the planned quantity for a quarter
func (qp *QuarterlyPlan) QuarterQuantity(q Quarter) Quantity {
	switch q {
	case Q1:
		return qp.Q1
	case Q2:
		return qp.Q2
	case Q3:
		return qp.Q3
	case Q4:
		return qp.Q4
	default:
		return qp.Total()
	}
}

// Total returns the sum of all four quarters
func (qp *QuarterlyPlan) Total() Quantity {
	return qp.Q1.Add(qp.Q2).Add(qp.Q3).Add(qp.Q4)
}

// MonthlyPlan is a planned lifting for one month, optionally part of a combi group
type MonthlyPlan struct {
	ID              string
	QuarterlyPlanID string // empty when linked directly to a contract
	ContractID      string // direct link, set for range contracts without quarterly plans
	ProductName     string // direct product, used when there is no quarterly plan
	Month           int
	Year            int
	Quantity        Quantity
	CombiGroupID    string
	TopupQuantity   Quantity

	// FOB date windows
	Laycan5Days string
	Laycan2Days string

	// CIF date windows
	LoadingWindow  string
	LoadingMonth   string
	DeliveryWindow string
	DeliveryMonth  string
}

// NewMonthlyPlan creates a validated MonthlyPlan
func NewMonthlyPlan(id, quarterlyPlanID, contractID string, month, year int, quantity Quantity) (*MonthlyPlan, error) {
	if id == "" {
		return nil, fmt.Errorf("monthly plan id cannot be empty")
	}
	if quarterlyPlanID == "" && contractID == "" {
		return nil, fmt.Errorf("monthly plan %s must reference a quarterly plan or a contract", id)
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	if year <= 0 {
		return nil, fmt.Errorf("year must be positive, got %d", year)
	}
	if quantity.IsNegative() {
		return nil, fmt.Errorf("quantity cannot be negative, got %s", quantity)
	}

	return &MonthlyPlan{
		ID:              id,
		QuarterlyPlanID: quarterlyPlanID,
		ContractID:      contractID,
		Month:           month,
		Year:            year,
		Quantity:        quantity,
		TopupQuantity:   decimal.Zero,
	}, nil
}

// HasCombiGroup reports whether the plan belongs to a combi group
func (mp *MonthlyPlan) HasCombiGroup() bool {
	return mp.CombiGroupID != ""
}

// Period returns the plan's calendar month
func (mp *MonthlyPlan) Period() Period {
	return Period{Month: mp.Month, Year: mp.Year}
}

// LaycanText returns the date-window text relevant for the contract type.
// FOB prefers the narrowed 2-day laycan over the 5-day one; CIF uses the loading window.
func (mp *MonthlyPlan) LaycanText(t ContractType) string {
	if t == CIF {
		return mp.LoadingWindow
	}
	if mp.Laycan2Days != "" {
		return mp.Laycan2Days
	}
	return mp.Laycan5Days
}
