package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vsinha/liftplan/pkg/application/dto"
	"github.com/vsinha/liftplan/pkg/domain/entities"
)

// File names inside a snapshot directory
const (
	CustomersFile        = "customers.csv"
	ContractsFile        = "contracts.csv"
	ContractProductsFile = "contract_products.csv"
	QuarterlyPlansFile   = "quarterly_plans.csv"
	MonthlyPlansFile     = "monthly_plans.csv"
	CargosFile           = "cargos.csv"
)

const dateLayout = "2006-01-02"

var (
	customersHeader        = []string{"id", "name"}
	contractsHeader        = []string{"id", "contract_number", "customer_id", "contract_type", "start_date", "end_date", "tng_lead_days", "remark"}
	contractProductsHeader = []string{"contract_id", "product_name", "firm_quantity", "optional_quantity", "min_quantity", "max_quantity"}
	quarterlyPlansHeader   = []string{"id", "contract_id", "product_name", "q1", "q2", "q3", "q4", "contract_year"}
	monthlyPlansHeader     = []string{
		"id", "quarterly_plan_id", "contract_id", "product_name", "month", "year", "quantity",
		"combi_group_id", "topup_quantity", "laycan_5_days", "laycan_2_days",
		"loading_window", "loading_month", "delivery_window", "delivery_month",
	}
	cargosHeader = []string{
		"id", "contract_id", "monthly_plan_id", "vessel_name", "product_name", "quantity", "status",
		"laycan_window", "five_nd_date", "five_nd_completed", "tng_issued",
	}
)

// Loader handles loading snapshot data from CSV files
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new CSV loader
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// LoadSnapshot reads every snapshot file in dir concurrently. contract_products.csv and
// cargos.csv are optional; the other files must exist.
func (l *Loader) LoadSnapshot(ctx context.Context, dir string) (*dto.Snapshot, error) {
	snapshot := &dto.Snapshot{}
	var products map[string][]entities.Product

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		customers, err := l.LoadCustomers(filepath.Join(dir, CustomersFile))
		snapshot.Customers = customers
		return firstErr(err, ctx.Err())
	})
	g.Go(func() error {
		contracts, err := l.LoadContracts(filepath.Join(dir, ContractsFile))
		snapshot.Contracts = contracts
		return firstErr(err, ctx.Err())
	})
	g.Go(func() error {
		loaded, err := l.LoadContractProducts(filepath.Join(dir, ContractProductsFile))
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		products = loaded
		return firstErr(err, ctx.Err())
	})
	g.Go(func() error {
		plans, err := l.LoadQuarterlyPlans(filepath.Join(dir, QuarterlyPlansFile))
		snapshot.QuarterlyPlans = plans
		return firstErr(err, ctx.Err())
	})
	g.Go(func() error {
		plans, err := l.LoadMonthlyPlans(filepath.Join(dir, MonthlyPlansFile))
		snapshot.MonthlyPlans = plans
		return firstErr(err, ctx.Err())
	})
	g.Go(func() error {
		cargos, err := l.LoadCargos(filepath.Join(dir, CargosFile))
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		snapshot.Cargos = cargos
		return firstErr(err, ctx.Err())
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, c := range snapshot.Contracts {
		if lines, ok := products[c.ID]; ok {
			c.Products = append(c.Products, lines...)
		}
	}

	l.logger.Info("snapshot loaded",
		zap.String("dir", dir),
		zap.Int("contracts", len(snapshot.Contracts)),
		zap.Int("customers", len(snapshot.Customers)),
		zap.Int("quarterly_plans", len(snapshot.QuarterlyPlans)),
		zap.Int("monthly_plans", len(snapshot.MonthlyPlans)),
		zap.Int("cargos", len(snapshot.Cargos)))

	return snapshot, nil
}

// LoadCustomers loads customers from a CSV file
func (l *Loader) LoadCustomers(filename string) ([]*entities.Customer, error) {
	records, err := readRecords(filename, "customers", customersHeader)
	if err != nil {
		return nil, err
	}

	var customers []*entities.Customer
	for i, record := range records {
		customer, err := entities.NewCustomer(strings.TrimSpace(record[0]), strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("customers CSV row %d: %w", i+2, err)
		}
		customers = append(customers, customer)
	}
	return customers, nil
}

// LoadContracts loads contracts from a CSV file. Products are attached from
// contract_products.csv by LoadSnapshot.
func (l *Loader) LoadContracts(filename string) ([]*entities.Contract, error) {
	records, err := readRecords(filename, "contracts", contractsHeader)
	if err != nil {
		return nil, err
	}

	var contracts []*entities.Contract
	for i, record := range records {
		contract, err := parseContract(record)
		if err != nil {
			return nil, fmt.Errorf("contracts CSV row %d: %w", i+2, err)
		}
		contracts = append(contracts, contract)
	}
	return contracts, nil
}

// LoadContractProducts loads product lines grouped by contract id
func (l *Loader) LoadContractProducts(filename string) (map[string][]entities.Product, error) {
	records, err := readRecords(filename, "contract products", contractProductsHeader)
	if err != nil {
		return nil, err
	}

	products := make(map[string][]entities.Product)
	for i, record := range records {
		contractID := strings.TrimSpace(record[0])
		product, err := parseProduct(record)
		if err != nil {
			return nil, fmt.Errorf("contract products CSV row %d: %w", i+2, err)
		}
		products[contractID] = append(products[contractID], product)
	}
	return products, nil
}

// LoadQuarterlyPlans loads quarterly plans from a CSV file
func (l *Loader) LoadQuarterlyPlans(filename string) ([]*entities.QuarterlyPlan, error) {
	records, err := readRecords(filename, "quarterly plans", quarterlyPlansHeader)
	if err != nil {
		return nil, err
	}

	var plans []*entities.QuarterlyPlan
	for i, record := range records {
		plan, err := parseQuarterlyPlan(record)
		if err != nil {
			return nil, fmt.Errorf("quarterly plans CSV row %d: %w", i+2, err)
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// LoadMonthlyPlans loads monthly plans from a CSV file
func (l *Loader) LoadMonthlyPlans(filename string) ([]*entities.MonthlyPlan, error) {
	records, err := readRecords(filename, "monthly plans", monthlyPlansHeader)
	if err != nil {
		return nil, err
	}

	var plans []*entities.MonthlyPlan
	for i, record := range records {
		plan, err := parseMonthlyPlan(record)
		if err != nil {
			return nil, fmt.Errorf("monthly plans CSV row %d: %w", i+2, err)
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// LoadCargos loads cargos from a CSV file
func (l *Loader) LoadCargos(filename string) ([]*entities.Cargo, error) {
	records, err := readRecords(filename, "cargos", cargosHeader)
	if err != nil {
		return nil, err
	}

	var cargos []*entities.Cargo
	for i, record := range records {
		cargo, err := parseCargo(record)
		if err != nil {
			return nil, fmt.Errorf("cargos CSV row %d: %w", i+2, err)
		}
		if !cargo.Status.IsKnown() {
			l.logger.Debug("unknown cargo status kept as label",
				zap.String("cargo_id", cargo.ID),
				zap.String("status", cargo.Status.String()))
		}
		cargos = append(cargos, cargo)
	}
	return cargos, nil
}

// Helper functions for parsing CSV records

// readRecords opens a CSV file, validates its header and returns the data rows. A file with
// only a header yields no rows.
func readRecords(filename, kind string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("%s CSV must have a header row", kind)
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", kind, expectedHeader, header)
	}

	rows := records[1:]
	for i, record := range rows {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", kind, i+2, len(expectedHeader), len(record))
		}
	}
	return rows, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		name := strings.ToLower(strings.TrimSpace(actual[i]))
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if name != col {
			return false
		}
	}

	return true
}

func parseContract(record []string) (*entities.Contract, error) {
	contractType, err := entities.ParseContractType(record[3])
	if err != nil {
		return nil, err
	}

	start, err := parseOptionalDate("start_date", record[4])
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate("end_date", record[5])
	if err != nil {
		return nil, err
	}

	contract, err := entities.NewContract(
		strings.TrimSpace(record[0]),
		strings.TrimSpace(record[1]),
		strings.TrimSpace(record[2]),
		contractType,
		nil,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	leadDays, err := parseOptionalInt("tng_lead_days", record[6])
	if err != nil {
		return nil, err
	}
	if leadDays != nil && *leadDays < 0 {
		return nil, fmt.Errorf("tng_lead_days cannot be negative, got %d", *leadDays)
	}
	contract.TNGLeadDays = leadDays
	contract.Remark = strings.TrimSpace(record[7])

	return contract, nil
}

func parseProduct(record []string) (entities.Product, error) {
	name := strings.TrimSpace(record[1])
	if name == "" {
		return entities.Product{}, fmt.Errorf("product name cannot be empty")
	}

	fields := []string{"firm_quantity", "optional_quantity", "min_quantity", "max_quantity"}
	values := make([]entities.Quantity, len(fields))
	for i, field := range fields {
		q, err := parseQuantity(field, record[i+2])
		if err != nil {
			return entities.Product{}, err
		}
		values[i] = q
	}

	return entities.Product{
		Name:             name,
		FirmQuantity:     values[0],
		OptionalQuantity: values[1],
		MinQuantity:      values[2],
		MaxQuantity:      values[3],
	}, nil
}

func parseQuarterlyPlan(record []string) (*entities.QuarterlyPlan, error) {
	var quarters [4]entities.Quantity
	for i := range quarters {
		q, err := parseQuantity(fmt.Sprintf("q%d", i+1), record[i+3])
		if err != nil {
			return nil, err
		}
		quarters[i] = q
	}

	contractYear := 1
	if s := strings.TrimSpace(record[7]); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid contract_year: %s", record[7])
		}
		contractYear = n
	}

	return entities.NewQuarterlyPlan(
		strings.TrimSpace(record[0]),
		strings.TrimSpace(record[1]),
		strings.TrimSpace(record[2]),
		quarters,
		contractYear,
	)
}

func parseMonthlyPlan(record []string) (*entities.MonthlyPlan, error) {
	month, err := strconv.Atoi(strings.TrimSpace(record[4]))
	if err != nil {
		return nil, fmt.Errorf("invalid month: %s", record[4])
	}
	year, err := strconv.Atoi(strings.TrimSpace(record[5]))
	if err != nil {
		return nil, fmt.Errorf("invalid year: %s", record[5])
	}
	quantity, err := parseQuantity("quantity", record[6])
	if err != nil {
		return nil, err
	}
	topup, err := parseQuantity("topup_quantity", record[8])
	if err != nil {
		return nil, err
	}

	plan, err := entities.NewMonthlyPlan(
		strings.TrimSpace(record[0]),
		strings.TrimSpace(record[1]),
		strings.TrimSpace(record[2]),
		month,
		year,
		quantity,
	)
	if err != nil {
		return nil, err
	}

	plan.ProductName = strings.TrimSpace(record[3])
	plan.CombiGroupID = strings.TrimSpace(record[7])
	plan.TopupQuantity = topup
	plan.Laycan5Days = strings.TrimSpace(record[9])
	plan.Laycan2Days = strings.TrimSpace(record[10])
	plan.LoadingWindow = strings.TrimSpace(record[11])
	plan.LoadingMonth = strings.TrimSpace(record[12])
	plan.DeliveryWindow = strings.TrimSpace(record[13])
	plan.DeliveryMonth = strings.TrimSpace(record[14])

	return plan, nil
}

func parseCargo(record []string) (*entities.Cargo, error) {
	quantity, err := parseQuantity("quantity", record[5])
	if err != nil {
		return nil, err
	}

	cargo, err := entities.NewCargo(
		strings.TrimSpace(record[0]),
		strings.TrimSpace(record[1]),
		strings.TrimSpace(record[4]),
		quantity,
		entities.ParseCargoStatus(record[6]),
	)
	if err != nil {
		return nil, err
	}

	cargo.MonthlyPlanID = strings.TrimSpace(record[2])
	if vessel := strings.TrimSpace(record[3]); vessel != "" && !strings.EqualFold(vessel, "TBA") {
		cargo.VesselName = &vessel
	}
	cargo.LaycanWindow = strings.TrimSpace(record[7])

	ndDate, err := parseOptionalDate("five_nd_date", record[8])
	if err != nil {
		return nil, err
	}
	if !ndDate.IsZero() {
		cargo.FiveNDDate = &ndDate
	}

	completed, err := parseOptionalBool("five_nd_completed", record[9])
	if err != nil {
		return nil, err
	}
	cargo.FiveNDCompleted = completed != nil && *completed

	issued, err := parseOptionalBool("tng_issued", record[10])
	if err != nil {
		return nil, err
	}
	cargo.TNGIssued = issued

	return cargo, nil
}

// parseQuantity parses a decimal quantity; blank means zero
func parseQuantity(field, s string) (entities.Quantity, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	q, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %s", field, s)
	}
	if q.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s cannot be negative, got %s", field, s)
	}
	return q, nil
}

func parseOptionalDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s format: %s (expected YYYY-MM-DD)", field, s)
	}
	return t, nil
}

func parseOptionalInt(field, s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %s", field, s)
	}
	return &n, nil
}

func parseOptionalBool(field, s string) (*bool, error) {
	var v bool
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return nil, nil
	case "true", "yes", "y", "1":
		v = true
	case "false", "no", "n", "0":
		v = false
	default:
		return nil, fmt.Errorf("invalid %s: %s (expected true or false)", field, s)
	}
	return &v, nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
