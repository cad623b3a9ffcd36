package repositories

import "github.com/vsinha/liftplan/pkg/domain/entities"

// PlanRepository provides access to quarterly and monthly plans
type PlanRepository interface {
	GetQuarterlyPlan(id string) (*entities.QuarterlyPlan, error)
	GetAllQuarterlyPlans() ([]*entities.QuarterlyPlan, error)
	GetQuarterlyPlansByContract(contractID string) ([]*entities.QuarterlyPlan, error)
	LoadQuarterlyPlans(plans []*entities.QuarterlyPlan) error

	GetMonthlyPlan(id string) (*entities.MonthlyPlan, error)
	GetAllMonthlyPlans() ([]*entities.MonthlyPlan, error)
	LoadMonthlyPlans(plans []*entities.MonthlyPlan) error
}
