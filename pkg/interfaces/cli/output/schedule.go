package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/vsinha/liftplan/pkg/application/dto"
	"github.com/vsinha/liftplan/pkg/domain/entities"
)

type scheduleView struct {
	Window        string            `json:"window"`
	ProductFilter string            `json:"product_filter,omitempty"`
	GrandTotal    string            `json:"grand_total"`
	Rows          []scheduleRowView `json:"rows"`
}

type scheduleRowView struct {
	ContractID     string              `json:"contract_id"`
	ContractNumber string              `json:"contract_number"`
	CustomerID     string              `json:"customer_id"`
	CustomerName   string              `json:"customer_name"`
	ContractType   string              `json:"contract_type"`
	Total          string              `json:"total"`
	TopupTotal     string              `json:"topup_total"`
	QuarterTotals  map[string]string   `json:"quarter_totals"`
	Months         []scheduleMonthView `json:"months"`
}

type scheduleMonthView struct {
	Month   int                 `json:"month"`
	Entries []scheduleEntryView `json:"entries"`
}

type scheduleEntryView struct {
	MonthlyPlanIDs []string           `json:"monthly_plan_ids"`
	ProductName    string             `json:"product_name"`
	Quantity       string             `json:"quantity"`
	TopupQuantity  string             `json:"topup_quantity"`
	IsCombi        bool               `json:"is_combi"`
	CombiGroupID   string             `json:"combi_group_id,omitempty"`
	CombiProducts  []combiProductView `json:"combi_products,omitempty"`
	LaycanText     string             `json:"laycan_text,omitempty"`
	LaycanStart    string             `json:"laycan_start,omitempty"`
	LaycanEnd      string             `json:"laycan_end,omitempty"`
}

type combiProductView struct {
	MonthlyPlanID string `json:"monthly_plan_id"`
	ProductName   string `json:"product_name"`
	Quantity      string `json:"quantity"`
	TopupQuantity string `json:"topup_quantity"`
}

// WriteSchedule renders a schedule result in the configured format
func WriteSchedule(result *dto.ScheduleResult, config Config) error {
	rows := sortedRows(result.Rows)
	switch config.Format {
	case FormatText:
		return emit(config, "schedule.txt", func(w io.Writer) error {
			return writeScheduleText(w, result, rows)
		})
	case FormatJSON:
		return emit(config, "schedule.json", func(w io.Writer) error {
			return writeJSON(w, newScheduleView(result, rows))
		})
	case FormatCSV:
		return emit(config, "schedule.csv", func(w io.Writer) error {
			return writeScheduleCSV(w, rows)
		})
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// sortedRows orders rows by customer name, then contract number
func sortedRows(rows map[string]entities.ScheduleRow) []entities.ScheduleRow {
	sorted := make([]entities.ScheduleRow, 0, len(rows))
	for _, row := range rows {
		sorted = append(sorted, row)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].CustomerName != sorted[j].CustomerName {
			return sorted[i].CustomerName < sorted[j].CustomerName
		}
		if sorted[i].ContractNumber != sorted[j].ContractNumber {
			return sorted[i].ContractNumber < sorted[j].ContractNumber
		}
		return sorted[i].ContractID < sorted[j].ContractID
	})
	return sorted
}

func writeScheduleText(w io.Writer, result *dto.ScheduleResult, rows []entities.ScheduleRow) error {
	fmt.Fprintf(w, "📅 Lifting Schedule %s\n", result.Window)
	fmt.Fprintf(w, "==========================\n")
	if result.ProductFilter != "" {
		fmt.Fprintf(w, "Product: %s\n", result.ProductFilter)
	}
	fmt.Fprintf(w, "Contracts: %d\n", len(rows))
	fmt.Fprintf(w, "Grand Total: %s\n\n", result.GrandTotal.String())

	for _, row := range rows {
		fmt.Fprintf(w, "%s | %s (%s) | total %s", row.CustomerName, row.ContractNumber, row.ContractType, row.Total.String())
		if !row.TopupTotal.IsZero() {
			fmt.Fprintf(w, " + top-up %s", row.TopupTotal.String())
		}
		fmt.Fprintln(w)

		fmt.Fprintf(w, "  %-5s %-24s %-10s %-8s %-12s %-12s\n", "Month", "Product", "Qty", "Top-up", "Window", "Dates")
		fmt.Fprintf(w, "  %-5s %-24s %-10s %-8s %-12s %-12s\n", "-----", "------------------------", "----------", "--------", "------------", "------------")
		for i, month := range row.Months {
			if len(row.Buckets[i]) == 0 {
				fmt.Fprintf(w, "  %-5s %-24s\n", monthAbbrev(month), "-")
				continue
			}
			for _, entry := range row.Buckets[i] {
				product := entry.ProductName
				if entry.IsCombi {
					product = "[combi] " + product
				}
				fmt.Fprintf(w, "  %-5s %-24s %-10s %-8s %-12s %-12s\n",
					monthAbbrev(month),
					product,
					entry.Quantity.String(),
					entry.TopupQuantity.String(),
					entry.LaycanText(row.ContractType),
					laycanDates(entry.Laycan))
			}
		}
		fmt.Fprintln(w)
	}
	return nil
}

func newScheduleView(result *dto.ScheduleResult, rows []entities.ScheduleRow) scheduleView {
	view := scheduleView{
		Window:        result.Window.String(),
		ProductFilter: result.ProductFilter,
		GrandTotal:    result.GrandTotal.String(),
		Rows:          make([]scheduleRowView, 0, len(rows)),
	}
	for _, row := range rows {
		rv := scheduleRowView{
			ContractID:     row.ContractID,
			ContractNumber: row.ContractNumber,
			CustomerID:     row.CustomerID,
			CustomerName:   row.CustomerName,
			ContractType:   row.ContractType.String(),
			Total:          row.Total.String(),
			TopupTotal:     row.TopupTotal.String(),
			QuarterTotals:  make(map[string]string, len(row.QuarterTotals)),
		}
		for q, total := range row.QuarterTotals {
			rv.QuarterTotals[string(q)] = total.String()
		}
		for i, month := range row.Months {
			mv := scheduleMonthView{Month: month, Entries: []scheduleEntryView{}}
			for _, entry := range row.Buckets[i] {
				mv.Entries = append(mv.Entries, newEntryView(entry, row.ContractType))
			}
			rv.Months = append(rv.Months, mv)
		}
		view.Rows = append(view.Rows, rv)
	}
	return view
}

func newEntryView(entry entities.ScheduleEntry, contractType entities.ContractType) scheduleEntryView {
	ev := scheduleEntryView{
		MonthlyPlanIDs: entry.MonthlyPlanIDs,
		ProductName:    entry.ProductName,
		Quantity:       entry.Quantity.String(),
		TopupQuantity:  entry.TopupQuantity.String(),
		IsCombi:        entry.IsCombi,
		CombiGroupID:   entry.CombiGroupID,
		LaycanText:     entry.LaycanText(contractType),
		LaycanStart:    dateOrEmpty(entry.Laycan.Valid, entry.Laycan.Start),
		LaycanEnd:      dateOrEmpty(entry.Laycan.Valid, entry.Laycan.End),
	}
	for _, p := range entry.CombiProducts {
		ev.CombiProducts = append(ev.CombiProducts, combiProductView{
			MonthlyPlanID: p.MonthlyPlanID,
			ProductName:   p.ProductName,
			Quantity:      p.Quantity.String(),
			TopupQuantity: p.TopupQuantity.String(),
		})
	}
	return ev
}

func writeScheduleCSV(w io.Writer, rows []entities.ScheduleRow) error {
	cw := csv.NewWriter(w)
	header := []string{
		"contract_id", "contract_number", "customer_name", "contract_type", "year", "month",
		"product_name", "quantity", "topup_quantity", "is_combi", "combi_group_id",
		"monthly_plan_ids", "laycan_text", "laycan_start", "laycan_end",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write schedule CSV: %w", err)
	}

	for _, row := range rows {
		for i := range row.Months {
			for _, entry := range row.Buckets[i] {
				record := []string{
					row.ContractID,
					row.ContractNumber,
					row.CustomerName,
					row.ContractType.String(),
					strconv.Itoa(entry.Year),
					strconv.Itoa(entry.Month),
					entry.ProductName,
					entry.Quantity.String(),
					entry.TopupQuantity.String(),
					strconv.FormatBool(entry.IsCombi),
					entry.CombiGroupID,
					strings.Join(entry.MonthlyPlanIDs, ";"),
					entry.LaycanText(row.ContractType),
					dateOrEmpty(entry.Laycan.Valid, entry.Laycan.Start),
					dateOrEmpty(entry.Laycan.Valid, entry.Laycan.End),
				}
				if err := cw.Write(record); err != nil {
					return fmt.Errorf("failed to write schedule CSV: %w", err)
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func monthAbbrev(month int) string {
	if month < 1 || month > 12 {
		return "?"
	}
	return time.Month(month).String()[:3]
}

func laycanDates(r entities.LaycanRange) string {
	if !r.Valid {
		return ""
	}
	return r.Start.Format("02 Jan") + "-" + r.End.Format("02 Jan")
}
