package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Quantity is a bulk cargo quantity (metric tons or kbbl depending on product)
type Quantity = decimal.Decimal

// ContractType represents the delivery terms of a contract
type ContractType int

const (
	FOB ContractType = iota
	CIF
)

// String method for ContractType enum
func (t ContractType) String() string {
	switch t {
	case FOB:
		return "FOB"
	case CIF:
		return "CIF"
	default:
		return "Unknown"
	}
}

// ParseContractType parses a contract type label, case-insensitively
func ParseContractType(s string) (ContractType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FOB":
		return FOB, nil
	case "CIF":
		return CIF, nil
	default:
		return FOB, fmt.Errorf("invalid contract type: %s (expected FOB or CIF)", s)
	}
}

// Quarter identifies a calendar quarter, or the whole year
type Quarter string

const (
	Q1         Quarter = "Q1"
	Q2         Quarter = "Q2"
	Q3         Quarter = "Q3"
	Q4         Quarter = "Q4"
	AllQuarter Quarter = "ALL"
)

// Quarters lists the four calendar quarters in order
var Quarters = []Quarter{Q1, Q2, Q3, Q4}

// ParseQuarter parses a quarter label such as "Q2" or "all"
func ParseQuarter(s string) (Quarter, error) {
	q := Quarter(strings.ToUpper(strings.TrimSpace(s)))
	switch q {
	case Q1, Q2, Q3, Q4, AllQuarter:
		return q, nil
	case "":
		return AllQuarter, nil
	default:
		return AllQuarter, fmt.Errorf("invalid quarter: %s (expected Q1, Q2, Q3, Q4 or ALL)", s)
	}
}

// Months returns the calendar months covered by the quarter
func (q Quarter) Months() []int {
	switch q {
	case Q1:
		return []int{1, 2, 3}
	case Q2:
		return []int{4, 5, 6}
	case Q3:
		return []int{7, 8, 9}
	case Q4:
		return []int{10, 11, 12}
	default:
		return []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	}
}

// QuarterOfMonth returns the quarter a calendar month falls in
func QuarterOfMonth(month int) Quarter {
	if month < 1 || month > 12 {
		return AllQuarter
	}
	return Quarters[(month-1)/3]
}

// Window is the time window a schedule is requested for
type Window struct {
	Year    int
	Quarter Quarter
}

// Months resolves the window to its concrete list of calendar months
func (w Window) Months() []int {
	return w.Quarter.Months()
}

// String renders the window as "2024 Q1" or "2024 ALL"
func (w Window) String() string {
	return fmt.Sprintf("%d %s", w.Year, w.Quarter)
}

// PeriodSource records where a calendar period came from
type PeriodSource int

const (
	// PeriodFromPlan means the period was read from a monthly plan
	PeriodFromPlan PeriodSource = iota
	// PeriodFallback means the monthly plan link was missing and the caller's default was used
	PeriodFallback
)

// String method for PeriodSource enum
func (p PeriodSource) String() string {
	switch p {
	case PeriodFromPlan:
		return "plan"
	case PeriodFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Period is a calendar month in a given year
type Period struct {
	Month int
	Year  int
}

// IsZero reports whether the period is unset
func (p Period) IsZero() bool {
	return p.Month == 0 && p.Year == 0
}
