package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vsinha/liftplan/pkg/application/dto"
	"github.com/vsinha/liftplan/pkg/domain/entities"
)

// calendarFlags are the derivation and filter flags shared by calendar, alerts and watch
type calendarFlags struct {
	customers     []string
	types         []string
	kinds         []string
	overdueOnly   bool
	hideTBA       bool
	today         string
	fallbackMonth string
}

func (f *calendarFlags) register(cmd *cobra.Command, withToday bool) {
	flags := cmd.Flags()
	flags.StringSliceVar(&f.customers, "customer", nil, "Only events for these customer ids")
	flags.StringSliceVar(&f.types, "type", nil, "Only events for these contract types (FOB, CIF)")
	flags.StringSliceVar(&f.kinds, "kind", nil, "Only these event kinds (fob_laycan, cif_loading, tng_due, nd_due)")
	flags.BoolVar(&f.overdueOnly, "overdue-only", false, "Only overdue events")
	flags.BoolVar(&f.hideTBA, "hide-tba", false, "Hide events without an assigned vessel")
	flags.StringVar(&f.fallbackMonth, "fallback-month", "", "Period (YYYY-MM) for cargos without a monthly plan (default: current month)")
	if withToday {
		flags.StringVar(&f.today, "today", "", "Reference date (YYYY-MM-DD) for overdue and days-until (default: today)")
	}
}

// options resolves the flags into calendar options evaluated in loc
func (f *calendarFlags) options(loc *time.Location, now time.Time) (dto.CalendarOptions, error) {
	opts := dto.CalendarOptions{
		Today:    now,
		Location: loc,
		Filters: dto.CalendarFilters{
			OverdueOnly: f.overdueOnly,
			HideTBA:     f.hideTBA,
		},
	}

	if f.today != "" {
		today, err := time.ParseInLocation("2006-01-02", f.today, loc)
		if err != nil {
			return opts, fmt.Errorf("invalid --today %q (expected YYYY-MM-DD)", f.today)
		}
		opts.Today = today
	}

	if f.fallbackMonth != "" {
		month, err := time.Parse("2006-01", f.fallbackMonth)
		if err != nil {
			return opts, fmt.Errorf("invalid --fallback-month %q (expected YYYY-MM)", f.fallbackMonth)
		}
		opts.FallbackPeriod = entities.Period{Month: int(month.Month()), Year: month.Year()}
	}

	if len(f.customers) > 0 {
		opts.Filters.CustomerIDs = make(map[string]bool, len(f.customers))
		for _, id := range f.customers {
			opts.Filters.CustomerIDs[strings.TrimSpace(id)] = true
		}
	}

	if len(f.types) > 0 {
		opts.Filters.ContractTypes = make(map[entities.ContractType]bool, len(f.types))
		for _, s := range f.types {
			t, err := entities.ParseContractType(s)
			if err != nil {
				return opts, err
			}
			opts.Filters.ContractTypes[t] = true
		}
	}

	if len(f.kinds) > 0 {
		opts.Filters.Kinds = make(map[entities.EventKind]bool, len(f.kinds))
		for _, s := range f.kinds {
			k, err := entities.ParseEventKind(s)
			if err != nil {
				return opts, err
			}
			opts.Filters.Kinds[k] = true
		}
	}

	return opts, nil
}
