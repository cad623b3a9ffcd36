package commands

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/vsinha/liftplan/pkg/application/dto"
	"github.com/vsinha/liftplan/pkg/domain/entities"
	"github.com/vsinha/liftplan/pkg/infrastructure/logging"
	"github.com/vsinha/liftplan/pkg/infrastructure/repositories/csv"
)

// GenerateConfig holds configuration for sample data generation
type GenerateConfig struct {
	Contracts int     // Number of contracts to generate
	Year      int     // Calendar year of the generated plans
	CombiRate float64 // Share of multi-product months lifted as one combi cargo
	CargoRate float64 // Share of monthly liftings that already have a cargo
	Seed      int64   // Random seed for reproducible generation
}

// ScenarioGenerator builds a random but internally consistent snapshot
type ScenarioGenerator struct {
	config GenerateConfig
	rand   *rand.Rand
}

var (
	customerNames = []string{
		"Acme Energy", "Harbor Trading", "Pacific Fuels", "Meridian Oil", "Straits Petroleum", "Coastal Marine Supply",
	}
	productNames = []string{
		"Gasoil 10ppm", "Gasoil 500ppm", "Jet A-1", "Mogas 92", "Mogas 95", "Fuel Oil 380cst",
	}
	vesselNames = []string{
		"MV Star", "MT Harbor", "MT Orion", "MV Coral Sea", "MT Eastern Pride", "MT Lumen",
	}
	cargoStatuses = []entities.CargoStatus{
		entities.StatusPlanned,
		entities.StatusPendingNomination,
		entities.StatusNominationReleased,
		entities.StatusLoading,
		entities.StatusCompletedLoading,
		entities.StatusDischargeComplete,
	}
)

// NewScenarioGenerator creates a generator; a zero seed is replaced by the current time
func NewScenarioGenerator(config GenerateConfig) *ScenarioGenerator {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &ScenarioGenerator{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
	}
}

// dateWindows holds the generated laycan and loading window texts of one lifting
type dateWindows struct {
	laycan5Days    string
	laycan2Days    string
	loadingWindow  string
	loadingMonth   string
	deliveryWindow string
	deliveryMonth  string
}

// Generate builds the snapshot. Even-numbered FOB contracts are term contracts planned
// through quarterly plans; the rest link their monthly plans directly.
func (g *ScenarioGenerator) Generate() (*dto.Snapshot, error) {
	if g.config.Contracts <= 0 {
		return nil, fmt.Errorf("contracts must be positive, got %d", g.config.Contracts)
	}
	if g.config.Year <= 0 {
		return nil, fmt.Errorf("year must be positive, got %d", g.config.Year)
	}

	snapshot := &dto.Snapshot{}

	customerCount := (g.config.Contracts + 1) / 2
	for i := 0; i < customerCount; i++ {
		name := customerNames[i%len(customerNames)]
		if i >= len(customerNames) {
			name = fmt.Sprintf("%s %d", name, i/len(customerNames)+1)
		}
		customer, err := entities.NewCustomer(fmt.Sprintf("CU%d", i+1), name)
		if err != nil {
			return nil, err
		}
		snapshot.Customers = append(snapshot.Customers, customer)
	}

	var planSeq, groupSeq, cargoSeq int
	for i := 0; i < g.config.Contracts; i++ {
		contract, err := g.generateContract(i, snapshot.Customers[i%customerCount].ID)
		if err != nil {
			return nil, err
		}
		snapshot.Contracts = append(snapshot.Contracts, contract)

		term := contract.Type == entities.FOB && i%2 == 0
		quarterly := make(map[string]*entities.QuarterlyPlan)
		if term {
			contract.Remark = "term"
			for j, p := range contract.Products {
				qp, err := entities.NewQuarterlyPlan(
					fmt.Sprintf("QP%d-%d", i+1, j+1), contract.ID, p.Name,
					[4]entities.Quantity{decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero}, 1)
				if err != nil {
					return nil, err
				}
				quarterly[p.Name] = qp
				snapshot.QuarterlyPlans = append(snapshot.QuarterlyPlans, qp)
			}
		} else {
			contract.Remark = "range"
		}

		for month := 1; month <= 12; month++ {
			if g.rand.Float64() > 0.75 {
				continue
			}

			windows := g.generateWindows(contract.Type, month)
			lines := []entities.Product{contract.Products[g.rand.Intn(len(contract.Products))]}
			groupID := ""
			if len(contract.Products) > 1 && g.rand.Float64() < g.config.CombiRate {
				groupSeq++
				groupID = fmt.Sprintf("G%d", groupSeq)
				lines = contract.Products
			}

			var lifted []*entities.MonthlyPlan
			liftedQty := decimal.Zero
			for _, p := range lines {
				planSeq++
				qty := decimal.NewFromInt(int64(10 + g.rand.Intn(41)))

				var mp *entities.MonthlyPlan
				if term {
					qp := quarterly[p.Name]
					mp, err = entities.NewMonthlyPlan(fmt.Sprintf("MP%d", planSeq), qp.ID, "", month, g.config.Year, qty)
					if err != nil {
						return nil, err
					}
					addToQuarter(qp, month, qty)
				} else {
					mp, err = entities.NewMonthlyPlan(fmt.Sprintf("MP%d", planSeq), "", contract.ID, month, g.config.Year, qty)
					if err != nil {
						return nil, err
					}
					mp.ProductName = p.Name
				}

				mp.CombiGroupID = groupID
				if g.rand.Float64() < 0.2 {
					mp.TopupQuantity = decimal.NewFromInt(int64(1 + g.rand.Intn(3)))
				}
				mp.Laycan5Days = windows.laycan5Days
				mp.Laycan2Days = windows.laycan2Days
				mp.LoadingWindow = windows.loadingWindow
				mp.LoadingMonth = windows.loadingMonth
				mp.DeliveryWindow = windows.deliveryWindow
				mp.DeliveryMonth = windows.deliveryMonth

				snapshot.MonthlyPlans = append(snapshot.MonthlyPlans, mp)
				lifted = append(lifted, mp)
				liftedQty = liftedQty.Add(qty)
			}

			if g.rand.Float64() < g.config.CargoRate {
				cargoSeq++
				cargo, err := g.generateCargo(fmt.Sprintf("CG%d", cargoSeq), contract, lifted[0], lines[0].Name, liftedQty)
				if err != nil {
					return nil, err
				}
				snapshot.Cargos = append(snapshot.Cargos, cargo)
			}
		}
	}

	return snapshot, nil
}

func (g *ScenarioGenerator) generateContract(index int, customerID string) (*entities.Contract, error) {
	contractType := entities.FOB
	if g.rand.Float64() < 0.5 {
		contractType = entities.CIF
	}

	productCount := 1 + g.rand.Intn(2)
	offset := g.rand.Intn(len(productNames))
	products := make([]entities.Product, 0, productCount)
	for j := 0; j < productCount; j++ {
		firm := decimal.NewFromInt(int64(200 + g.rand.Intn(301)))
		optional := decimal.NewFromInt(int64(g.rand.Intn(51)))
		products = append(products, entities.Product{
			Name:             productNames[(offset+j)%len(productNames)],
			FirmQuantity:     firm,
			OptionalQuantity: optional,
			MinQuantity:      firm.Mul(decimal.NewFromFloat(0.9)).Round(0),
			MaxQuantity:      firm.Add(optional),
		})
	}

	start := time.Date(g.config.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(g.config.Year, time.December, 31, 0, 0, 0, 0, time.UTC)
	contract, err := entities.NewContract(
		fmt.Sprintf("C%d", index+1),
		fmt.Sprintf("TC-%d-%03d", g.config.Year, index+1),
		customerID,
		contractType,
		products,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	if contractType == entities.CIF && g.rand.Float64() < 0.7 {
		lead := 5 + g.rand.Intn(6)
		contract.TNGLeadDays = &lead
	}
	return contract, nil
}

// generateWindows draws the date windows of one lifting. CIF loading windows may run into
// the following month, written as a day range such as "27-4".
func (g *ScenarioGenerator) generateWindows(contractType entities.ContractType, month int) dateWindows {
	var w dateWindows

	if contractType == entities.FOB {
		start := 1 + g.rand.Intn(24)
		w.laycan5Days = fmt.Sprintf("%d-%d", start, start+4)
		if g.rand.Float64() < 0.4 {
			w.laycan2Days = fmt.Sprintf("%d-%d", start+1, start+2)
		}
		return w
	}

	start := 1 + g.rand.Intn(28)
	end := start + 6
	if end > 28 {
		end -= 28
	}
	w.loadingWindow = fmt.Sprintf("%d-%d", start, end)
	w.loadingMonth = time.Month(month).String()

	next := time.Month(month%12 + 1)
	deliveryStart := 1 + g.rand.Intn(20)
	w.deliveryWindow = fmt.Sprintf("%d-%d %s", deliveryStart, deliveryStart+5, next.String()[:3])
	w.deliveryMonth = next.String()
	return w
}

func (g *ScenarioGenerator) generateCargo(
	id string,
	contract *entities.Contract,
	mp *entities.MonthlyPlan,
	productName string,
	quantity entities.Quantity,
) (*entities.Cargo, error) {
	status := cargoStatuses[g.rand.Intn(len(cargoStatuses))]
	cargo, err := entities.NewCargo(id, contract.ID, productName, quantity, status)
	if err != nil {
		return nil, err
	}

	cargo.MonthlyPlanID = mp.ID
	cargo.LaycanWindow = mp.LaycanText(contract.Type)
	if g.rand.Float64() < 0.75 {
		vessel := vesselNames[g.rand.Intn(len(vesselNames))]
		cargo.VesselName = &vessel
	}

	if contract.Type == entities.CIF {
		issued := status != entities.StatusPlanned && g.rand.Float64() < 0.5
		cargo.TNGIssued = &issued

		notice := time.Date(mp.Year, time.Month(mp.Month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, g.rand.Intn(20))
		cargo.FiveNDDate = &notice
		cargo.FiveNDCompleted = status.IsCompleted()
	}

	return cargo, nil
}

func addToQuarter(qp *entities.QuarterlyPlan, month int, qty entities.Quantity) {
	switch entities.QuarterOfMonth(month) {
	case entities.Q1:
		qp.Q1 = qp.Q1.Add(qty)
	case entities.Q2:
		qp.Q2 = qp.Q2.Add(qty)
	case entities.Q3:
		qp.Q3 = qp.Q3.Add(qty)
	case entities.Q4:
		qp.Q4 = qp.Q4.Add(qty)
	}
}

func newGenerateCommand(opts *rootOptions) *cobra.Command {
	config := GenerateConfig{}
	var dir string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a random sample data directory",
		Long: `Generates customers, FOB and CIF contracts, quarterly and monthly plans (including
combi liftings) and cargos, and writes them as CSV files that the other commands read.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			if dir == "" {
				dir = a.cfg.DataDir
			}

			snapshot, err := NewScenarioGenerator(config).Generate()
			if err != nil {
				return fmt.Errorf("failed to generate scenario: %w", err)
			}

			if err := csv.NewWriter(logging.Named(a.logger, "csv")).WriteSnapshot(dir, snapshot); err != nil {
				return err
			}

			if opts.verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "✅ Generated %d contracts, %d monthly plans and %d cargos in %s\n",
					len(snapshot.Contracts), len(snapshot.MonthlyPlans), len(snapshot.Cargos), dir)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory to write the CSV files to (default: the data directory)")
	cmd.Flags().IntVar(&config.Contracts, "contracts", 6, "Number of contracts")
	cmd.Flags().IntVar(&config.Year, "year", time.Now().Year(), "Calendar year of the plans")
	cmd.Flags().Float64Var(&config.CombiRate, "combi-rate", 0.3, "Share of multi-product months lifted as combi cargos")
	cmd.Flags().Float64Var(&config.CargoRate, "cargo-rate", 0.5, "Share of liftings that already have a cargo")
	cmd.Flags().Int64Var(&config.Seed, "seed", 0, "Random seed (0 = time based)")

	return cmd
}
