package testing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/liftplan/pkg/application/dto"
	"github.com/vsinha/liftplan/pkg/domain/entities"
	"github.com/vsinha/liftplan/pkg/infrastructure/repositories/memory"
)

// Qty is shorthand for a whole-number quantity
func Qty(n int64) entities.Quantity {
	return decimal.NewFromInt(n)
}

// MustCreateCustomer is a helper for tests - panics on validation error
func MustCreateCustomer(id, name string) *entities.Customer {
	customer, err := entities.NewCustomer(id, name)
	if err != nil {
		panic(err)
	}
	return customer
}

// MustCreateContract is a helper for tests - panics on validation error
func MustCreateContract(
	id, number, customerID string,
	contractType entities.ContractType,
	products ...string,
) *entities.Contract {
	lines := make([]entities.Product, 0, len(products))
	for _, name := range products {
		lines = append(lines, entities.Product{
			Name:             name,
			FirmQuantity:     Qty(100),
			OptionalQuantity: decimal.Zero,
			MinQuantity:      decimal.Zero,
			MaxQuantity:      Qty(100),
		})
	}
	contract, err := entities.NewContract(
		id,
		number,
		customerID,
		contractType,
		lines,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		panic(err)
	}
	return contract
}

// MustCreateQuarterlyPlan is a helper for tests - panics on validation error
func MustCreateQuarterlyPlan(id, contractID, product string, q1, q2, q3, q4 int64) *entities.QuarterlyPlan {
	qp, err := entities.NewQuarterlyPlan(
		id,
		contractID,
		product,
		[4]entities.Quantity{Qty(q1), Qty(q2), Qty(q3), Qty(q4)},
		1,
	)
	if err != nil {
		panic(err)
	}
	return qp
}

// MustCreateMonthlyPlan is a helper for tests - panics on validation error
func MustCreateMonthlyPlan(id, quarterlyPlanID, contractID string, month, year int, quantity int64) *entities.MonthlyPlan {
	mp, err := entities.NewMonthlyPlan(id, quarterlyPlanID, contractID, month, year, Qty(quantity))
	if err != nil {
		panic(err)
	}
	return mp
}

// MustCreateCombiPlan is a helper for a monthly plan that belongs to a combi group
func MustCreateCombiPlan(id, contractID, product, groupID string, month, year int, quantity, topup int64) *entities.MonthlyPlan {
	mp := MustCreateMonthlyPlan(id, "", contractID, month, year, quantity)
	mp.ProductName = product
	mp.CombiGroupID = groupID
	mp.TopupQuantity = Qty(topup)
	return mp
}

// MustCreateCargo is a helper for tests - panics on validation error.
// An empty vessel leaves the cargo unassigned.
func MustCreateCargo(id, contractID, monthlyPlanID, vessel string, status entities.CargoStatus) *entities.Cargo {
	cargo, err := entities.NewCargo(id, contractID, "", Qty(0), status)
	if err != nil {
		panic(err)
	}
	cargo.MonthlyPlanID = monthlyPlanID
	if vessel != "" {
		cargo.VesselName = &vessel
	}
	return cargo
}

// BuildQuarterScenario builds one FOB contract with January and February liftings in 2024
// under a single quarterly plan: 10 in January and 15 in February.
func BuildQuarterScenario() *dto.Snapshot {
	mp1 := MustCreateMonthlyPlan("MP1", "QP1", "", 1, 2024, 10)
	mp1.Laycan5Days = "10-14"
	mp2 := MustCreateMonthlyPlan("MP2", "QP1", "", 2, 2024, 15)
	mp2.Laycan2Days = "3-4"

	return &dto.Snapshot{
		Customers: []*entities.Customer{MustCreateCustomer("CU1", "Acme Energy")},
		Contracts: []*entities.Contract{
			MustCreateContract("C1", "TC-2024-001", "CU1", entities.FOB, "Gasoil 10ppm"),
		},
		QuarterlyPlans: []*entities.QuarterlyPlan{
			MustCreateQuarterlyPlan("QP1", "C1", "Gasoil 10ppm", 25, 0, 0, 0),
		},
		MonthlyPlans: []*entities.MonthlyPlan{mp1, mp2},
	}
}

// BuildCombiScenario builds one CIF range contract whose January lifting is a combi group
// of two products: A with 5 plus 1 top-up and B with 7.
func BuildCombiScenario() *dto.Snapshot {
	a := MustCreateCombiPlan("MP3", "C2", "A", "G1", 1, 2024, 5, 1)
	a.LoadingWindow = "28-3"
	b := MustCreateCombiPlan("MP4", "C2", "B", "G1", 1, 2024, 7, 0)
	b.LoadingWindow = "28-3"

	return &dto.Snapshot{
		Customers: []*entities.Customer{MustCreateCustomer("CU2", "Harbor Trading")},
		Contracts: []*entities.Contract{
			MustCreateContract("C2", "TC-2024-002", "CU2", entities.CIF, "A", "B"),
		},
		MonthlyPlans: []*entities.MonthlyPlan{a, b},
	}
}

// MergeSnapshots concatenates several snapshots into one
func MergeSnapshots(snapshots ...*dto.Snapshot) *dto.Snapshot {
	merged := &dto.Snapshot{}
	for _, s := range snapshots {
		merged.Contracts = append(merged.Contracts, s.Contracts...)
		merged.Customers = append(merged.Customers, s.Customers...)
		merged.QuarterlyPlans = append(merged.QuarterlyPlans, s.QuarterlyPlans...)
		merged.MonthlyPlans = append(merged.MonthlyPlans, s.MonthlyPlans...)
		merged.Cargos = append(merged.Cargos, s.Cargos...)
	}
	return merged
}

// Repositories bundles the in-memory repositories of a scenario
type Repositories struct {
	Contracts *memory.ContractRepository
	Customers *memory.CustomerRepository
	Plans     *memory.PlanRepository
	Cargos    *memory.CargoRepository
}

// LoadRepositories loads a snapshot into fresh in-memory repositories
func LoadRepositories(s *dto.Snapshot) *Repositories {
	repos := &Repositories{
		Contracts: memory.NewContractRepository(len(s.Contracts)),
		Customers: memory.NewCustomerRepository(),
		Plans:     memory.NewPlanRepository(len(s.MonthlyPlans)),
		Cargos:    memory.NewCargoRepository(),
	}
	if err := repos.Contracts.LoadContracts(s.Contracts); err != nil {
		panic(err)
	}
	if err := repos.Customers.LoadCustomers(s.Customers); err != nil {
		panic(err)
	}
	if err := repos.Plans.LoadQuarterlyPlans(s.QuarterlyPlans); err != nil {
		panic(err)
	}
	if err := repos.Plans.LoadMonthlyPlans(s.MonthlyPlans); err != nil {
		panic(err)
	}
	if err := repos.Cargos.LoadCargos(s.Cargos); err != nil {
		panic(err)
	}
	return repos
}
