package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/liftplan/pkg/domain/entities"
	"github.com/vsinha/liftplan/pkg/liftplan"
)

func main() {
	snapshot := buildSnapshot()

	engine := liftplan.NewEngine()

	// Schedule for the first quarter
	result := engine.Schedule(snapshot, 2025, liftplan.Q1, "")
	fmt.Printf("Lifting schedule %s: %s total\n", result.Window, result.GrandTotal)
	for _, row := range result.Rows {
		fmt.Printf("  %s (%s) %s\n", row.ContractNumber, row.ContractType, row.Total)
		for i, month := range row.Months {
			for _, entry := range row.Buckets[i] {
				fmt.Printf("    %s %-22s %6s  %s\n",
					time.Month(month).String()[:3], entry.ProductName, entry.Quantity, entry.LaycanText(row.ContractType))
			}
		}
	}

	// Alerts as seen on 20 January
	today := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	digest := engine.Digest(snapshot, today)
	fmt.Printf("\nAlerts on %s:\n", today.Format("2006-01-02"))
	for _, alert := range digest.Alerts {
		fmt.Printf("  [%s] %s (%s)\n", alert.Severity, alert.Message, alert.Event.VesselName)
	}
}

// buildSnapshot sets up one FOB term contract and one CIF range contract with a combi cargo
func buildSnapshot() *liftplan.Snapshot {
	qty := decimal.NewFromInt
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	acme, _ := entities.NewCustomer("CU1", "Acme Energy")
	harbor, _ := entities.NewCustomer("CU2", "Harbor Trading")

	term, _ := entities.NewContract("C1", "TC-2025-001", "CU1", entities.FOB,
		[]entities.Product{{Name: "Gasoil 10ppm", FirmQuantity: qty(120)}}, start, end)
	rangeContract, _ := entities.NewContract("C2", "TC-2025-002", "CU2", entities.CIF,
		[]entities.Product{{Name: "Jet A-1", FirmQuantity: qty(60)}, {Name: "Mogas 95", FirmQuantity: qty(80)}}, start, end)
	lead := 7
	rangeContract.TNGLeadDays = &lead

	qp, _ := entities.NewQuarterlyPlan("QP1", "C1", "Gasoil 10ppm",
		[4]entities.Quantity{qty(30), qty(30), qty(30), qty(30)}, 1)

	jan, _ := entities.NewMonthlyPlan("MP1", "QP1", "", 1, 2025, qty(15))
	jan.Laycan5Days = "10-14"
	feb, _ := entities.NewMonthlyPlan("MP2", "QP1", "", 2, 2025, qty(15))
	feb.Laycan5Days = "5-9"
	feb.Laycan2Days = "6-7"

	jet, _ := entities.NewMonthlyPlan("MP3", "", "C2", 1, 2025, qty(20))
	jet.ProductName = "Jet A-1"
	jet.CombiGroupID = "G1"
	jet.LoadingWindow = "28-3"
	mogas, _ := entities.NewMonthlyPlan("MP4", "", "C2", 1, 2025, qty(25))
	mogas.ProductName = "Mogas 95"
	mogas.CombiGroupID = "G1"
	mogas.LoadingWindow = "28-3"

	cargo, _ := entities.NewCargo("CG1", "C2", "Jet A-1", qty(45), entities.StatusNominationReleased)
	cargo.MonthlyPlanID = "MP3"
	cargo.LaycanWindow = "28-3"
	vessel := "MT Harbor"
	cargo.VesselName = &vessel
	issued := false
	cargo.TNGIssued = &issued

	return &liftplan.Snapshot{
		Customers:      []*entities.Customer{acme, harbor},
		Contracts:      []*entities.Contract{term, rangeContract},
		QuarterlyPlans: []*entities.QuarterlyPlan{qp},
		MonthlyPlans:   []*entities.MonthlyPlan{jan, feb, jet, mogas},
		Cargos:         []*entities.Cargo{cargo},
	}
}
