package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/liftplan/pkg/application/dto"
)

// Writer saves snapshots in the layout Loader reads
type Writer struct {
	logger *zap.Logger
}

// NewWriter creates a new CSV writer
func NewWriter(logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{logger: logger}
}

// WriteSnapshot writes every snapshot file into dir, creating it when needed
func (w *Writer) WriteSnapshot(dir string, snapshot *dto.Snapshot) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	customers := make([][]string, 0, len(snapshot.Customers))
	for _, c := range snapshot.Customers {
		customers = append(customers, []string{c.ID, c.Name})
	}

	contracts := make([][]string, 0, len(snapshot.Contracts))
	var products [][]string
	for _, c := range snapshot.Contracts {
		contracts = append(contracts, []string{
			c.ID,
			c.ContractNumber,
			c.CustomerID,
			c.Type.String(),
			formatDate(c.StartPeriod),
			formatDate(c.EndPeriod),
			formatOptionalInt(c.TNGLeadDays),
			c.Remark,
		})
		for _, p := range c.Products {
			products = append(products, []string{
				c.ID,
				p.Name,
				p.FirmQuantity.String(),
				p.OptionalQuantity.String(),
				p.MinQuantity.String(),
				p.MaxQuantity.String(),
			})
		}
	}

	quarterly := make([][]string, 0, len(snapshot.QuarterlyPlans))
	for _, qp := range snapshot.QuarterlyPlans {
		quarterly = append(quarterly, []string{
			qp.ID,
			qp.ContractID,
			qp.ProductName,
			qp.Q1.String(),
			qp.Q2.String(),
			qp.Q3.String(),
			qp.Q4.String(),
			strconv.Itoa(qp.ContractYear),
		})
	}

	monthly := make([][]string, 0, len(snapshot.MonthlyPlans))
	for _, mp := range snapshot.MonthlyPlans {
		monthly = append(monthly, []string{
			mp.ID,
			mp.QuarterlyPlanID,
			mp.ContractID,
			mp.ProductName,
			strconv.Itoa(mp.Month),
			strconv.Itoa(mp.Year),
			mp.Quantity.String(),
			mp.CombiGroupID,
			mp.TopupQuantity.String(),
			mp.Laycan5Days,
			mp.Laycan2Days,
			mp.LoadingWindow,
			mp.LoadingMonth,
			mp.DeliveryWindow,
			mp.DeliveryMonth,
		})
	}

	cargos := make([][]string, 0, len(snapshot.Cargos))
	for _, cg := range snapshot.Cargos {
		vessel := ""
		if !cg.IsTBA() {
			vessel = *cg.VesselName
		}
		fiveND := ""
		if cg.FiveNDDate != nil {
			fiveND = formatDate(*cg.FiveNDDate)
		}
		cargos = append(cargos, []string{
			cg.ID,
			cg.ContractID,
			cg.MonthlyPlanID,
			vessel,
			cg.ProductName,
			cg.Quantity.String(),
			cg.Status.String(),
			cg.LaycanWindow,
			fiveND,
			strconv.FormatBool(cg.FiveNDCompleted),
			formatOptionalBool(cg.TNGIssued),
		})
	}

	files := []struct {
		name    string
		header  []string
		records [][]string
	}{
		{CustomersFile, customersHeader, customers},
		{ContractsFile, contractsHeader, contracts},
		{ContractProductsFile, contractProductsHeader, products},
		{QuarterlyPlansFile, quarterlyPlansHeader, quarterly},
		{MonthlyPlansFile, monthlyPlansHeader, monthly},
		{CargosFile, cargosHeader, cargos},
	}
	for _, f := range files {
		if err := writeRecords(filepath.Join(dir, f.name), f.header, f.records); err != nil {
			return err
		}
	}

	w.logger.Info("snapshot written",
		zap.String("dir", dir),
		zap.Int("contracts", len(contracts)),
		zap.Int("monthly_plans", len(monthly)),
		zap.Int("cargos", len(cargos)))
	return nil
}

func writeRecords(filename string, header []string, records [][]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatOptionalBool(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}
