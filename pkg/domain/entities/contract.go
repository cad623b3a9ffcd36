package entities

import (
	"fmt"
	"time"
)

// Customer is the counterparty of one or more contracts
type Customer struct {
	ID   string
	Name string
}

// NewCustomer creates a validated Customer
func NewCustomer(id, name string) (*Customer, error) {
	if id == "" {
		return nil, fmt.Errorf("customer id cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("customer name cannot be empty")
	}
	return &Customer{ID: id, Name: name}, nil
}

// Product is a contracted product line with its firm/optional and min/max tolerances
type Product struct {
	Name             string
	FirmQuantity     Quantity
	OptionalQuantity Quantity
	MinQuantity      Quantity
	MaxQuantity      Quantity
}

// TotalQuantity returns firm plus optional quantity
func (p Product) TotalQuantity() Quantity {
	return p.FirmQuantity.Add(p.OptionalQuantity)
}

// Contract is a term supply contract with a customer
type Contract struct {
	ID             string
	ContractNumber string
	CustomerID     string
	Type           ContractType
	Products       []Product
	StartPeriod    time.Time
	EndPeriod      time.Time

	// TNGLeadDays is the nomination lead time before the loading window (CIF only, nil = not tracked)
	TNGLeadDays *int
	Remark      string
}

// NewContract creates a validated Contract
func NewContract(
	id, contractNumber, customerID string,
	contractType ContractType,
	products []Product,
	start, end time.Time,
) (*Contract, error) {
	if id == "" {
		return nil, fmt.Errorf("contract id cannot be empty")
	}
	if customerID == "" {
		return nil, fmt.Errorf("customer id cannot be empty")
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return nil, fmt.Errorf("contract end %s cannot be before start %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	for _, p := range products {
		if p.Name == "" {
			return nil, fmt.Errorf("product name cannot be empty")
		}
		if p.FirmQuantity.IsNegative() || p.OptionalQuantity.IsNegative() {
			return nil, fmt.Errorf("product %s quantities cannot be negative", p.Name)
		}
	}

	return &Contract{
		ID:             id,
		ContractNumber: contractNumber,
		CustomerID:     customerID,
		Type:           contractType,
		Products:       products,
		StartPeriod:    start,
		EndPeriod:      end,
	}, nil
}

// Label returns the contract number, or the id when no number is set
func (c *Contract) Label() string {
	if c.ContractNumber != "" {
		return c.ContractNumber
	}
	return c.ID
}

// ContractYear returns the calendar year of a contract-relative year ordinal (1-based)
func (c *Contract) ContractYear(ordinal int) int {
	if c.StartPeriod.IsZero() || ordinal < 1 {
		return 0
	}
	return c.StartPeriod.Year() + ordinal - 1
}
