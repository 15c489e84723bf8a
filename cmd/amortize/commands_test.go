package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/amortization-engine/amortization"
	"github.com/warp/amortization-engine/store/sqlite"
)

func parse(t *testing.T, setFlags func(*flag.FlagSet), args ...string) {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	setFlags(fs)
	require.NoError(t, fs.Parse(args))
}

func TestPaymentCmd(t *testing.T) {
	c := &paymentCmd{}
	parse(t, c.SetFlags, "-principal", "100000", "-rate", "6", "-years", "30")

	var out strings.Builder
	require.NoError(t, c.run(context.Background(), &out))
	assert.Equal(t, "Payment: 599.55 (360 periods at 0.005 per period)\n", out.String())
}

func TestPaymentCmd_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		field string
	}{
		{"missing principal", []string{"-rate", "6"}, "principal"},
		{"not a number", []string{"-principal", "lots", "-rate", "6"}, "principal"},
		{"missing rate", []string{"-principal", "1000"}, "annual_rate"},
		{"bad frequency", []string{"-principal", "1000", "-rate", "6", "-ppy", "5"}, "payments_per_year"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &paymentCmd{}
			parse(t, c.SetFlags, tt.args...)

			err := c.run(context.Background(), &strings.Builder{})
			require.Error(t, err)
			assert.True(t, amortization.IsClientError(err))

			var inputErr *amortization.InvalidInputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, tt.field, inputErr.Field)
		})
	}
}

func TestScheduleCmd_Plain(t *testing.T) {
	c := &scheduleCmd{}
	parse(t, c.SetFlags, "-principal", "1000", "-rate", "12", "-years", "1",
		"-start", "01/31/2025", "-extra", "300", "-plain")

	var out strings.Builder
	require.NoError(t, c.run(context.Background(), &out))

	md := out.String()
	assert.Contains(t, md, "## Amortization Schedule")
	assert.Contains(t, md, "## Extra Payment Schedule")
	assert.Contains(t, md, "| 2 | 02/28/2025 |")
	assert.Contains(t, md, "| 4 | 04/30/2025 | 100.00 |")
}

func TestScheduleCmd_ConfigAndDatabase(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "loan.json")
	db := filepath.Join(dir, "report.db")
	require.NoError(t, os.WriteFile(config,
		[]byte(`{"principal": 20000, "annual_rate": 3.9, "term_years": 5, "start_date": "09/01/2025", "extra_payment": 100}`), 0o644))

	c := &scheduleCmd{}
	parse(t, c.SetFlags, "-config", config, "-db", db, "-plain")
	require.NoError(t, c.run(context.Background(), &strings.Builder{}))

	store, err := sqlite.New(db)
	require.NoError(t, err)
	defer store.Close()

	infos, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, 60, infos[0].Params.PeriodCount())

	rep, err := store.Get(context.Background(), infos[0].ID)
	require.NoError(t, err)
	assert.True(t, rep.Baseline.PaidOff())
	// 100 a month for 60 months only covers 6000 of the 20000 borrowed
	assert.Len(t, rep.Accelerated.Rows, 60)
	assert.False(t, rep.Accelerated.PaidOff())
}

func TestScheduleCmd_Preset(t *testing.T) {
	c := &scheduleCmd{}
	parse(t, c.SetFlags, "-preset", "car-zero-rate", "-plain")

	var out strings.Builder
	require.NoError(t, c.run(context.Background(), &out))
	assert.Contains(t, out.String(), "| Payment | 1000.00 |")

	unknown := &scheduleCmd{}
	parse(t, unknown.SetFlags, "-preset", "nope")
	err := unknown.run(context.Background(), &strings.Builder{})
	assert.ErrorIs(t, err, amortization.ErrInvalidInput)
}

func TestScheduleCmd_Rendered(t *testing.T) {
	c := &scheduleCmd{}
	parse(t, c.SetFlags, "-preset", "car-zero-rate")

	var out strings.Builder
	require.NoError(t, c.run(context.Background(), &out))
	assert.NotEmpty(t, strings.TrimSpace(out.String()))
}

func TestScenariosCmd(t *testing.T) {
	c := &scenariosCmd{}
	parse(t, c.SetFlags, "-plain")

	var out strings.Builder
	require.NoError(t, c.run(context.Background(), &out))
	assert.Contains(t, out.String(), "| mortgage-30y-extra | 30-Year Mortgage + 200/month | 100000.00 | 6% | 30 | 12 | 01/01/2025 | 200.00 |")
}
