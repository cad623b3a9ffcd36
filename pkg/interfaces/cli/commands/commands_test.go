package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	fixtures "github.com/vsinha/liftplan/pkg/infrastructure/testing"
)

func runCommand(ctx context.Context, args ...string) (string, error) {
	rootCmd := NewRootCommand()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	err := rootCmd.ExecuteContext(ctx)
	return out.String(), err
}

type scheduleJSON struct {
	Window     string `json:"window"`
	GrandTotal string `json:"grand_total"`
	Rows       []struct {
		ContractNumber string `json:"contract_number"`
		Total          string `json:"total"`
	} `json:"rows"`
}

type eventJSON struct {
	Kind      string `json:"kind"`
	Start     string `json:"start"`
	IsOverdue bool   `json:"is_overdue"`
	IsTBA     bool   `json:"is_tba"`
	Severity  string `json:"severity"`
	CargoID   string `json:"cargo_id"`
}

func TestScheduleCommand(t *testing.T) {
	dir := fixtures.WriteSnapshotDir(t.TempDir())

	tests := []struct {
		name      string
		args      []string
		wantTotal string
		wantRows  int
	}{
		{name: "quarter", args: []string{"--quarter", "Q1"}, wantTotal: "37", wantRows: 2},
		{name: "whole_year", args: []string{}, wantTotal: "37", wantRows: 2},
		{name: "second_quarter", args: []string{"--quarter", "q2"}, wantTotal: "0", wantRows: 0},
		{name: "product_filter", args: []string{"--quarter", "Q1", "--product", "A"}, wantTotal: "5", wantRows: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"schedule", "--data-dir", dir, "--year", "2024", "--format", "json"}, tt.args...)
			out, err := runCommand(context.Background(), args...)
			require.NoError(t, err)

			var got scheduleJSON
			require.NoError(t, json.Unmarshal([]byte(out), &got))
			assert.Equal(t, tt.wantTotal, got.GrandTotal)
			assert.Len(t, got.Rows, tt.wantRows)
		})
	}
}

func TestScheduleCommand_Text(t *testing.T) {
	dir := fixtures.WriteSnapshotDir(t.TempDir())

	out, err := runCommand(context.Background(), "schedule", "-d", dir, "--year", "2024", "-q", "Q1")
	require.NoError(t, err)
	assert.Contains(t, out, "Lifting Schedule 2024 Q1")
	assert.Contains(t, out, "TC-2024-002 (CIF)")
}

func TestCalendarCommand(t *testing.T) {
	dir := fixtures.WriteSnapshotDir(t.TempDir())

	tests := []struct {
		name  string
		args  []string
		count int
	}{
		{name: "all", args: nil, count: 6},
		{name: "tng_only", args: []string{"--kind", "tng_due"}, count: 1},
		{name: "cif_only", args: []string{"--type", "cif"}, count: 4},
		{name: "customer", args: []string{"--customer", "CU1"}, count: 2},
		{name: "hide_tba", args: []string{"--hide-tba"}, count: 1},
		{name: "overdue_only", args: []string{"--overdue-only"}, count: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"calendar", "--data-dir", dir, "--today", "2024-01-20", "--format", "json"}, tt.args...)
			out, err := runCommand(context.Background(), args...)
			require.NoError(t, err)

			var events []eventJSON
			require.NoError(t, json.Unmarshal([]byte(out), &events))
			assert.Len(t, events, tt.count)
		})
	}
}

func TestCalendarCommand_TNGDeadline(t *testing.T) {
	dir := fixtures.WriteSnapshotDir(t.TempDir())

	out, err := runCommand(context.Background(),
		"calendar", "--data-dir", dir, "--today", "2024-01-20", "--kind", "tng_due", "--format", "json")
	require.NoError(t, err)

	var events []eventJSON
	require.NoError(t, json.Unmarshal([]byte(out), &events))
	require.Len(t, events, 1)
	assert.Equal(t, "2024-01-21", events[0].Start)
	assert.Equal(t, "CG2", events[0].CargoID)
	assert.False(t, events[0].IsOverdue)
	assert.True(t, events[0].IsTBA)
}

func TestAlertsCommand(t *testing.T) {
	dir := fixtures.WriteSnapshotDir(t.TempDir())

	out, err := runCommand(context.Background(), "alerts", "--data-dir", dir, "--today", "2024-01-20")
	require.NoError(t, err)
	assert.Contains(t, out, "Alert Digest")
	assert.Contains(t, out, "Overdue by 6 days")
}

func TestAlertsCommand_OutputDir(t *testing.T) {
	dir := fixtures.WriteSnapshotDir(t.TempDir())
	outDir := filepath.Join(t.TempDir(), "reports")

	out, err := runCommand(context.Background(),
		"alerts", "--data-dir", dir, "--today", "2024-01-20", "--format", "csv", "--output", outDir, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(outDir, "alerts.csv"))
	assert.FileExists(t, filepath.Join(outDir, "alerts.csv"))
}

func TestCommandErrors(t *testing.T) {
	dir := fixtures.WriteSnapshotDir(t.TempDir())

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "bad_format", args: []string{"schedule", "--data-dir", dir, "--format", "xml"}, wantErr: "unsupported output format"},
		{name: "bad_quarter", args: []string{"schedule", "--data-dir", dir, "--quarter", "Q5"}, wantErr: "invalid quarter"},
		{name: "missing_data", args: []string{"schedule", "--data-dir", filepath.Join(dir, "missing")}, wantErr: "error loading data"},
		{name: "bad_today", args: []string{"calendar", "--data-dir", dir, "--today", "20/01/2024"}, wantErr: "invalid --today"},
		{name: "bad_kind", args: []string{"calendar", "--data-dir", dir, "--kind", "eta"}, wantErr: "invalid event kind"},
		{name: "bad_log_level", args: []string{"alerts", "--data-dir", dir, "--log-level", "loud"}, wantErr: "logging.level"},
		{name: "bad_cron", args: []string{"watch", "--data-dir", dir, "--cron", "sometimes"}, wantErr: "invalid digest schedule"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootCmd := NewRootCommand()
			rootCmd.SetOut(&bytes.Buffer{})
			rootCmd.SetErr(&bytes.Buffer{})
			rootCmd.SetArgs(tt.args)

			err := rootCmd.ExecuteContext(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWatchCommand(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := fixtures.WriteSnapshotDir(t.TempDir())
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	out, err := runCommand(ctx, "watch", "--data-dir", dir, "--cron", "0 7 * * *", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Digest at")
	assert.Contains(t, out, "+ [")
	assert.Contains(t, out, "TC-2024-001")
}

func TestGenerateCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sample")

	out, err := runCommand(context.Background(),
		"generate", "--dir", dir, "--seed", "7", "--contracts", "4", "--year", "2025", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 4 contracts")

	out, err = runCommand(context.Background(), "schedule", "--data-dir", dir, "--year", "2025", "--format", "json")
	require.NoError(t, err)

	var got scheduleJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.NotEmpty(t, got.Rows)
	assert.NotEqual(t, "0", got.GrandTotal)
}
