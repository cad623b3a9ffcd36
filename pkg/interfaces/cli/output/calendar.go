package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/vsinha/liftplan/pkg/application/dto"
	"github.com/vsinha/liftplan/pkg/domain/entities"
)

type eventView struct {
	ID             string `json:"id"`
	Kind           string `json:"kind"`
	Title          string `json:"title"`
	Start          string `json:"start"`
	End            string `json:"end"`
	IsOverdue      bool   `json:"is_overdue"`
	IsTBA          bool   `json:"is_tba"`
	ContractID     string `json:"contract_id"`
	ContractNumber string `json:"contract_number"`
	ContractType   string `json:"contract_type"`
	CustomerID     string `json:"customer_id"`
	CustomerName   string `json:"customer_name"`
	CargoID        string `json:"cargo_id,omitempty"`
	MonthlyPlanID  string `json:"monthly_plan_id,omitempty"`
	VesselName     string `json:"vessel_name"`
	ProductName    string `json:"product_name"`
	Quantity       string `json:"quantity"`
	Status         string `json:"status,omitempty"`
	DaysUntil      int    `json:"days_until"`
	Severity       string `json:"severity"`
	PeriodSource   string `json:"period_source"`
}

type alertView struct {
	Severity string    `json:"severity"`
	Message  string    `json:"message"`
	Event    eventView `json:"event"`
}

type digestView struct {
	GeneratedAt string         `json:"generated_at"`
	Counts      map[string]int `json:"counts"`
	Alerts      []alertView    `json:"alerts"`
}

var eventCSVHeader = []string{
	"id", "kind", "start", "end", "is_overdue", "is_tba", "contract_number", "contract_type",
	"customer_name", "cargo_id", "monthly_plan_id", "vessel_name", "product_name", "quantity",
	"status", "days_until", "severity",
}

// WriteCalendar renders calendar events in the configured format
func WriteCalendar(events []entities.CalendarEvent, config Config) error {
	switch config.Format {
	case FormatText:
		return emit(config, "calendar.txt", func(w io.Writer) error {
			return writeCalendarText(w, events)
		})
	case FormatJSON:
		return emit(config, "calendar.json", func(w io.Writer) error {
			views := make([]eventView, 0, len(events))
			for _, e := range events {
				views = append(views, newEventView(e))
			}
			return writeJSON(w, views)
		})
	case FormatCSV:
		return emit(config, "calendar.csv", func(w io.Writer) error {
			return writeEventsCSV(w, events, nil)
		})
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// WriteDigest renders an alert digest in the configured format
func WriteDigest(digest *dto.AlertDigest, config Config) error {
	switch config.Format {
	case FormatText:
		return emit(config, "alerts.txt", func(w io.Writer) error {
			return writeDigestText(w, digest)
		})
	case FormatJSON:
		return emit(config, "alerts.json", func(w io.Writer) error {
			view := digestView{
				GeneratedAt: digest.GeneratedAt.Format(time.RFC3339),
				Counts:      make(map[string]int, len(digest.Counts)),
				Alerts:      make([]alertView, 0, len(digest.Alerts)),
			}
			for severity, n := range digest.Counts {
				view.Counts[severity.String()] = n
			}
			for _, a := range digest.Alerts {
				view.Alerts = append(view.Alerts, alertView{
					Severity: a.Severity.String(),
					Message:  a.Message,
					Event:    newEventView(a.Event),
				})
			}
			return writeJSON(w, view)
		})
	case FormatCSV:
		return emit(config, "alerts.csv", func(w io.Writer) error {
			events := make([]entities.CalendarEvent, 0, len(digest.Alerts))
			messages := make([]string, 0, len(digest.Alerts))
			for _, a := range digest.Alerts {
				events = append(events, a.Event)
				messages = append(messages, a.Message)
			}
			return writeEventsCSV(w, events, messages)
		})
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func writeCalendarText(w io.Writer, events []entities.CalendarEvent) error {
	fmt.Fprintf(w, "🗓  Calendar Events: %d\n", len(events))
	fmt.Fprintf(w, "====================\n\n")
	if len(events) == 0 {
		return nil
	}

	fmt.Fprintf(w, "%-11s %-11s %-15s %-16s %-20s %-16s %-6s %-8s\n",
		"Start", "End", "Kind", "Contract", "Customer", "Vessel", "Days", "Flags")
	fmt.Fprintf(w, "%-11s %-11s %-15s %-16s %-20s %-16s %-6s %-8s\n",
		"-----------", "-----------", "---------------", "----------------", "--------------------", "----------------", "------", "--------")
	for _, e := range events {
		flags := ""
		if e.IsOverdue {
			flags += "OVERDUE "
		}
		if e.IsTBA {
			flags += "TBA"
		}
		fmt.Fprintf(w, "%-11s %-11s %-15s %-16s %-20s %-16s %-6d %-8s\n",
			e.Start.Format(time.DateOnly),
			e.End.Format(time.DateOnly),
			e.Kind.Label(),
			e.ContractNumber,
			e.CustomerName,
			e.VesselName,
			e.DaysUntil,
			flags)
	}
	return nil
}

func writeDigestText(w io.Writer, digest *dto.AlertDigest) error {
	fmt.Fprintf(w, "🚨 Alert Digest (%s)\n", digest.GeneratedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "===================\n\n")
	fmt.Fprintf(w, "Critical: %d  Warning: %d  Info: %d\n\n",
		digest.Counts[entities.SeverityCritical],
		digest.Counts[entities.SeverityWarning],
		digest.Counts[entities.SeverityInfo])

	for _, a := range digest.Alerts {
		fmt.Fprintf(w, "[%-8s] %s - %s, %s (%s)\n",
			a.Severity,
			a.Message,
			a.Event.CustomerName,
			a.Event.ContractNumber,
			a.Event.VesselName)
	}
	return nil
}

func writeEventsCSV(w io.Writer, events []entities.CalendarEvent, messages []string) error {
	cw := csv.NewWriter(w)
	header := eventCSVHeader
	if messages != nil {
		header = append(append([]string(nil), eventCSVHeader...), "message")
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write events CSV: %w", err)
	}

	for i, e := range events {
		record := []string{
			e.ID,
			string(e.Kind),
			e.Start.Format(time.DateOnly),
			e.End.Format(time.DateOnly),
			strconv.FormatBool(e.IsOverdue),
			strconv.FormatBool(e.IsTBA),
			e.ContractNumber,
			e.ContractType.String(),
			e.CustomerName,
			e.CargoID,
			e.MonthlyPlanID,
			e.VesselName,
			e.ProductName,
			e.Quantity.String(),
			e.Status,
			strconv.Itoa(e.DaysUntil),
			e.Severity.String(),
		}
		if messages != nil {
			record = append(record, messages[i])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write events CSV: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func newEventView(e entities.CalendarEvent) eventView {
	return eventView{
		ID:             e.ID,
		Kind:           string(e.Kind),
		Title:          e.Title,
		Start:          e.Start.Format(time.DateOnly),
		End:            e.End.Format(time.DateOnly),
		IsOverdue:      e.IsOverdue,
		IsTBA:          e.IsTBA,
		ContractID:     e.ContractID,
		ContractNumber: e.ContractNumber,
		ContractType:   e.ContractType.String(),
		CustomerID:     e.CustomerID,
		CustomerName:   e.CustomerName,
		CargoID:        e.CargoID,
		MonthlyPlanID:  e.MonthlyPlanID,
		VesselName:     e.VesselName,
		ProductName:    e.ProductName,
		Quantity:       e.Quantity.String(),
		Status:         e.Status,
		DaysUntil:      e.DaysUntil,
		Severity:       e.Severity.String(),
		PeriodSource:   e.PeriodSource.String(),
	}
}

// Alert changes reported by the watch command
const (
	ChangeRaised  = "raised"
	ChangeCleared = "cleared"
)

// WriteAlertChange renders one raised or cleared alert as a single line
func WriteAlertChange(change string, alert dto.Alert, config Config) error {
	w := config.writer()
	switch config.Format {
	case FormatText:
		marker := "+"
		if change == ChangeCleared {
			marker = "-"
		}
		_, err := fmt.Fprintf(w, "%s [%-8s] %s - %s, %s (%s)\n",
			marker,
			alert.Severity,
			alert.Message,
			alert.Event.CustomerName,
			alert.Event.ContractNumber,
			alert.Event.VesselName)
		return err
	case FormatJSON:
		line, err := json.Marshal(struct {
			Change string    `json:"change"`
			Alert  alertView `json:"alert"`
		}{
			Change: change,
			Alert: alertView{
				Severity: alert.Severity.String(),
				Message:  alert.Message,
				Event:    newEventView(alert.Event),
			},
		})
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(line))
		return err
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{change, alert.Severity.String(), alert.Event.ID, alert.Message}); err != nil {
			return fmt.Errorf("failed to write alert CSV: %w", err)
		}
		cw.Flush()
		return cw.Error()
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}
