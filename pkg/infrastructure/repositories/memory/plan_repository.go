package memory

import (
	"fmt"
	"sync"

	"github.com/vsinha/liftplan/pkg/domain/entities"
	"github.com/vsinha/liftplan/pkg/domain/repositories"
)

// PlanRepository provides in-memory storage for quarterly and monthly plans
type PlanRepository struct {
	mu sync.RWMutex

	quarterly    []entities.QuarterlyPlan
	quarterlyMap map[string]int
	byContract   map[string][]int

	monthly    []entities.MonthlyPlan
	monthlyMap map[string]int
}

// NewPlanRepository creates a new in-memory plan repository
func NewPlanRepository(expectedPlans int) *PlanRepository {
	return &PlanRepository{
		quarterly:    make([]entities.QuarterlyPlan, 0, expectedPlans),
		quarterlyMap: make(map[string]int, expectedPlans),
		byContract:   make(map[string][]int),
		monthly:      make([]entities.MonthlyPlan, 0, expectedPlans),
		monthlyMap:   make(map[string]int, expectedPlans),
	}
}

// Verify interface compliance
var _ repositories.PlanRepository = (*PlanRepository)(nil)

// LoadQuarterlyPlans loads quarterly plans into the repository
func (r *PlanRepository) LoadQuarterlyPlans(plans []*entities.QuarterlyPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, qp := range plans {
		if qp == nil {
			return fmt.Errorf("quarterly plan cannot be nil")
		}
		if index, exists := r.quarterlyMap[qp.ID]; exists {
			if r.quarterly[index].ContractID != qp.ContractID {
				return fmt.Errorf("quarterly plan %s cannot move from contract %s to %s",
					qp.ID, r.quarterly[index].ContractID, qp.ContractID)
			}
			r.quarterly[index] = *qp
			continue
		}
		index := len(r.quarterly)
		r.quarterlyMap[qp.ID] = index
		r.byContract[qp.ContractID] = append(r.byContract[qp.ContractID], index)
		r.quarterly = append(r.quarterly, *qp)
	}
	return nil
}

// LoadMonthlyPlans loads monthly plans into the repository
func (r *PlanRepository) LoadMonthlyPlans(plans []*entities.MonthlyPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, mp := range plans {
		if mp == nil {
			return fmt.Errorf("monthly plan cannot be nil")
		}
		if index, exists := r.monthlyMap[mp.ID]; exists {
			r.monthly[index] = *mp
			continue
		}
		r.monthlyMap[mp.ID] = len(r.monthly)
		r.monthly = append(r.monthly, *mp)
	}
	return nil
}

// GetQuarterlyPlan returns a quarterly plan by id
func (r *PlanRepository) GetQuarterlyPlan(id string) (*entities.QuarterlyPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.quarterlyMap[id]
	if !exists {
		return nil, fmt.Errorf("quarterly plan %s: %w", id, repositories.ErrNotFound)
	}
	qp := r.quarterly[index]
	return &qp, nil
}

// GetAllQuarterlyPlans returns all quarterly plans in insertion order
func (r *PlanRepository) GetAllQuarterlyPlans() ([]*entities.QuarterlyPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plans := make([]*entities.QuarterlyPlan, 0, len(r.quarterly))
	for i := range r.quarterly {
		qp := r.quarterly[i]
		plans = append(plans, &qp)
	}
	return plans, nil
}

// GetQuarterlyPlansByContract returns the quarterly plans of one contract
func (r *PlanRepository) GetQuarterlyPlansByContract(contractID string) ([]*entities.QuarterlyPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var plans []*entities.QuarterlyPlan
	for _, index := range r.byContract[contractID] {
		qp := r.quarterly[index]
		plans = append(plans, &qp)
	}
	return plans, nil
}

// GetMonthlyPlan returns a monthly plan by id
func (r *PlanRepository) GetMonthlyPlan(id string) (*entities.MonthlyPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.monthlyMap[id]
	if !exists {
		return nil, fmt.Errorf("monthly plan %s: %w", id, repositories.ErrNotFound)
	}
	mp := r.monthly[index]
	return &mp, nil
}

// GetAllMonthlyPlans returns all monthly plans in insertion order
func (r *PlanRepository) GetAllMonthlyPlans() ([]*entities.MonthlyPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plans := make([]*entities.MonthlyPlan, 0, len(r.monthly))
	for i := range r.monthly {
		mp := r.monthly[i]
		plans = append(plans, &mp)
	}
	return plans, nil
}
