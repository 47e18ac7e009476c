package settlement

import (
	"testing"
	"time"

	"github.com/farxc/dfc_dashboard/internal/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := calendar.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestApplies(t *testing.T) {
	r := NewRule(calendar.New(), DefaultTypes, 1)

	assert.True(t, r.Applies("BOLETOS"))
	assert.True(t, r.Applies("Cartoes (Debito e Credito)"))
	assert.True(t, r.Applies("CARTÕES (DÉBITO E CRÉDITO)"))
	assert.False(t, r.Applies("PIX"))
	assert.False(t, r.Applies(""))

	boletoOnly := NewRule(calendar.New(), []string{"boleto", " "}, 1)
	assert.False(t, boletoOnly.Applies("CARTÕES (DÉBITO E CRÉDITO)"))
}

func TestDecemberBoletoMovesIntoNextYear(t *testing.T) {
	r := NewRule(calendar.New(), DefaultTypes, 1)

	// Wednesday Dec 31 2025 clears on the next business day; Jan 1 is a holiday.
	assert.Equal(t, day(t, "2026-01-02"), r.EffectiveDate(day(t, "2025-12-31")))

	month, year := r.Period("1.001.006 - BOLETOS", 12, 2025, day(t, "2025-12-31"), true)
	assert.Equal(t, 1, month)
	assert.Equal(t, 2026, year)
}

func TestZeroLagOnlyShiftsNonBusinessDays(t *testing.T) {
	r := NewRule(calendar.New(), DefaultTypes, 0)

	assert.Equal(t, day(t, "2025-12-31"), r.EffectiveDate(day(t, "2025-12-31")))
	// Saturday May 31 2025 rolls to Monday June 2.
	month, year := r.Period("BOLETO", 5, 2025, day(t, "2025-05-31"), true)
	assert.Equal(t, 6, month)
	assert.Equal(t, 2025, year)
}

func TestPeriodKeepsRawValuesWhenRuleDoesNotApply(t *testing.T) {
	r := NewRule(calendar.New(), DefaultTypes, 1)

	month, year := r.Period("DINHEIRO", 12, 2025, day(t, "2025-12-31"), true)
	assert.Equal(t, 12, month)
	assert.Equal(t, 2025, year)

	month, year = r.Period("BOLETO", 12, 2025, time.Time{}, false)
	assert.Equal(t, 12, month)
	assert.Equal(t, 2025, year)
}
