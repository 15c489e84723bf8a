package report_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/amortization-engine/amortization"
	"github.com/warp/amortization-engine/report"
)

func buildReport(t *testing.T, extra int64) amortization.Report {
	t.Helper()
	params, err := amortization.NewLoanParameters(decimal.NewFromInt(100000), decimal.NewFromInt(6), 30, 12,
		amortization.NewDate(2025, time.January, 1), decimal.NewFromInt(extra))
	require.NoError(t, err)
	res, err := amortization.NewGenerator(params).Generate()
	require.NoError(t, err)
	rep, err := amortization.NewReport(res)
	require.NoError(t, err)
	return rep
}

func TestMarkdown_BaselineTable(t *testing.T) {
	rep := buildReport(t, 0)

	var b strings.Builder
	require.NoError(t, report.Markdown(&b, rep))
	_, section, found := strings.Cut(b.String(), "## Amortization Schedule")
	require.True(t, found)
	section, _, found = strings.Cut(section, "## Extra Payment Schedule")
	require.True(t, found)

	var table []string
	for _, line := range strings.Split(section, "\n") {
		if strings.HasPrefix(line, "| ") {
			table = append(table, line)
		}
	}

	require.Len(t, table, 1+360)
	assert.Equal(t, "| Payment | Payment Date | Payment Amount | Interest Paid | Principal Paid | Extra Payment | Balance |", table[0])
	assert.Equal(t, "| 1 | 01/01/2025 | 599.55 | 500.00 | 99.55 | 0.00 | 99900.45 |", table[1])
	assert.True(t, strings.HasSuffix(table[len(table)-1], "| 0.00 |"), "terminal row shows a zero balance: %s", table[len(table)-1])
}

func TestMarkdown_IncludesBothSchedulesAndSavings(t *testing.T) {
	rep := buildReport(t, 200)

	var b strings.Builder
	require.NoError(t, report.Markdown(&b, rep))
	out := b.String()

	assert.Contains(t, out, "## Amortization Schedule")
	assert.Contains(t, out, "## Extra Payment Schedule")
	assert.Contains(t, out, "| Payment | 599.55 |")
	assert.Contains(t, out, "months early")
	assert.NotContains(t, out, "$")
}

func TestMarkdown_NoSavingsSentenceWithoutExtra(t *testing.T) {
	rep := buildReport(t, 0)

	var b strings.Builder
	require.NoError(t, report.Markdown(&b, rep))
	assert.NotContains(t, b.String(), "months early")
	assert.Contains(t, b.String(), "not paid off within the term")
}

func TestAmount(t *testing.T) {
	assert.Equal(t, "599.55", report.Amount(decimal.RequireFromString("599.550525")))
	assert.Equal(t, "0.00", report.Amount(decimal.Zero))
	assert.Equal(t, "-1.50", report.Amount(decimal.RequireFromString("-1.499")))
}
