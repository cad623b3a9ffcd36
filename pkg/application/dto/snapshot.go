package dto

import (
	"github.com/vsinha/liftplan/pkg/domain/entities"
)

// Snapshot is a consistent read of the four upstream collections plus customers
type Snapshot struct {
	Contracts      []*entities.Contract
	Customers      []*entities.Customer
	QuarterlyPlans []*entities.QuarterlyPlan
	MonthlyPlans   []*entities.MonthlyPlan
	Cargos         []*entities.Cargo
}

// Index holds id lookups over a snapshot, built once per call
type Index struct {
	Contracts          map[string]*entities.Contract
	Customers          map[string]*entities.Customer
	QuarterlyPlans     map[string]*entities.QuarterlyPlan
	MonthlyPlans       map[string]*entities.MonthlyPlan
	CargoByMonthlyPlan map[string]*entities.Cargo
}

// NewIndex builds id lookups for a snapshot. On duplicate ids the first record wins.
func NewIndex(s *Snapshot) *Index {
	idx := &Index{
		Contracts:          make(map[string]*entities.Contract, len(s.Contracts)),
		Customers:          make(map[string]*entities.Customer, len(s.Customers)),
		QuarterlyPlans:     make(map[string]*entities.QuarterlyPlan, len(s.QuarterlyPlans)),
		MonthlyPlans:       make(map[string]*entities.MonthlyPlan, len(s.MonthlyPlans)),
		CargoByMonthlyPlan: make(map[string]*entities.Cargo),
	}
	for _, c := range s.Contracts {
		if _, exists := idx.Contracts[c.ID]; !exists {
			idx.Contracts[c.ID] = c
		}
	}
	for _, c := range s.Customers {
		if _, exists := idx.Customers[c.ID]; !exists {
			idx.Customers[c.ID] = c
		}
	}
	for _, qp := range s.QuarterlyPlans {
		if _, exists := idx.QuarterlyPlans[qp.ID]; !exists {
			idx.QuarterlyPlans[qp.ID] = qp
		}
	}
	for _, mp := range s.MonthlyPlans {
		if _, exists := idx.MonthlyPlans[mp.ID]; !exists {
			idx.MonthlyPlans[mp.ID] = mp
		}
	}
	for _, cargo := range s.Cargos {
		if cargo.MonthlyPlanID == "" {
			continue
		}
		if _, exists := idx.CargoByMonthlyPlan[cargo.MonthlyPlanID]; !exists {
			idx.CargoByMonthlyPlan[cargo.MonthlyPlanID] = cargo
		}
	}
	return idx
}

// ContractOfPlan resolves the owning contract of a monthly plan, through its quarterly
// plan first and the direct link second
func (idx *Index) ContractOfPlan(mp *entities.MonthlyPlan) (*entities.Contract, bool) {
	if mp.QuarterlyPlanID != "" {
		if qp, ok := idx.QuarterlyPlans[mp.QuarterlyPlanID]; ok {
			c, ok := idx.Contracts[qp.ContractID]
			return c, ok
		}
	}
	if mp.ContractID != "" {
		c, ok := idx.Contracts[mp.ContractID]
		return c, ok
	}
	return nil, false
}

// ProductOfPlan resolves the product name of a monthly plan: its own product when set,
// else its quarterly plan's, else the contract's only product
func (idx *Index) ProductOfPlan(mp *entities.MonthlyPlan) string {
	if mp.ProductName != "" {
		return mp.ProductName
	}
	if qp, ok := idx.QuarterlyPlans[mp.QuarterlyPlanID]; ok && qp.ProductName != "" {
		return qp.ProductName
	}
	if c, ok := idx.ContractOfPlan(mp); ok && len(c.Products) == 1 {
		return c.Products[0].Name
	}
	return ""
}
