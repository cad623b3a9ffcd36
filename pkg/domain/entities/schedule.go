package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// LaycanRange is a parsed date window; Start and End are inclusive, at UTC midnight
type LaycanRange struct {
	Valid bool
	Start time.Time
	End   time.Time
}

// Days returns the number of calendar days covered by the range
func (r LaycanRange) Days() int {
	if !r.Valid {
		return 0
	}
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Contains reports whether a day falls inside the range
func (r LaycanRange) Contains(day time.Time) bool {
	if !r.Valid {
		return false
	}
	return !day.Before(r.Start) && !day.After(r.End)
}

// CombiProduct is one member line of a consolidated combi entry
type CombiProduct struct {
	MonthlyPlanID string
	ProductName   string
	Quantity      Quantity
	TopupQuantity Quantity
}

// ScheduleEntry is one logical schedule line: a standalone monthly plan or a consolidated combi group
type ScheduleEntry struct {
	MonthIndex     int // position of the month within the requested window
	Month          int
	Year           int
	ProductName    string
	Quantity       Quantity
	TopupQuantity  Quantity
	IsCombi        bool
	CombiGroupID   string
	CombiProducts  []CombiProduct
	MonthlyPlanIDs []string

	Laycan5Days    string
	Laycan2Days    string
	LoadingWindow  string
	LoadingMonth   string
	DeliveryWindow string
	DeliveryMonth  string

	Laycan LaycanRange
}

// LaycanText returns the date-window text relevant for the contract type
func (e ScheduleEntry) LaycanText(t ContractType) string {
	if t == CIF {
		return e.LoadingWindow
	}
	if e.Laycan2Days != "" {
		return e.Laycan2Days
	}
	return e.Laycan5Days
}

// ScheduleRow is the per-contract schedule over a window
type ScheduleRow struct {
	ContractID     string
	ContractNumber string
	CustomerID     string
	CustomerName   string
	ContractType   ContractType
	Window         Window
	Months         []int
	Buckets        [][]ScheduleEntry // one bucket per month in Months
	Total          Quantity
	TopupTotal     Quantity
	QuarterTotals  map[Quarter]Quantity
}

// EntryCount returns the number of entries across all buckets
func (r *ScheduleRow) EntryCount() int {
	n := 0
	for _, b := range r.Buckets {
		n += len(b)
	}
	return n
}

// BucketTotal returns the summed quantity of one month bucket
func (r *ScheduleRow) BucketTotal(index int) Quantity {
	total := decimal.Zero
	if index < 0 || index >= len(r.Buckets) {
		return total
	}
	for _, e := range r.Buckets[index] {
		total = total.Add(e.Quantity)
	}
	return total
}
