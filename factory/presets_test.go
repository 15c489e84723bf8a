package factory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/amortization-engine/factory"
)

func TestPresets_AllValid(t *testing.T) {
	f := factory.NewLoanFactory()
	seen := map[string]bool{}
	for _, p := range factory.Presets() {
		assert.False(t, seen[p.ID], "duplicate preset %s", p.ID)
		seen[p.ID] = true

		_, err := f.FromJSON(p.Loan)
		assert.NoError(t, err, "preset %s", p.ID)
		assert.NotEmpty(t, p.Loan.Name)
	}
}

func TestFindPreset(t *testing.T) {
	p, ok := factory.FindPreset("quarterly-15y")
	require.True(t, ok)
	assert.Equal(t, 4, *p.Loan.PaymentsPerYear)

	_, ok = factory.FindPreset("nope")
	assert.False(t, ok)
}

func TestPresets_ReturnsFreshCopies(t *testing.T) {
	a := factory.Presets()
	*a[0].Loan.Principal = a[0].Loan.Principal.Add(*a[0].Loan.Principal)

	b := factory.Presets()
	assert.Equal(t, "100000", b[0].Loan.Principal.String())
}
