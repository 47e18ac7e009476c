// Package settlement moves boleto and card settlements into the accounting
// period of the business day on which they actually clear.
package settlement

import (
	"strings"
	"time"

	"github.com/farxc/dfc_dashboard/internal/calendar"
	"github.com/farxc/dfc_dashboard/internal/category"
)

// DefaultTypes are matched against the normalised plan name of a row.
var DefaultTypes = []string{"boleto", "cartões (débito e crédito)"}

type Rule struct {
	calendar *calendar.Calendar
	types    []string
	lagDays  int
}

// NewRule builds a shift rule. lagDays is added to the recorded date before
// resolving the next business day; 0 only moves dates that fall on a
// weekend or holiday.
func NewRule(cal *calendar.Calendar, types []string, lagDays int) *Rule {
	norm := make([]string, 0, len(types))
	for _, t := range types {
		if n := category.Normalize(t); n != "" {
			norm = append(norm, n)
		}
	}
	if lagDays < 0 {
		lagDays = 0
	}
	return &Rule{calendar: cal, types: norm, lagDays: lagDays}
}

// Applies reports whether a row with this plan name is subject to the shift.
func (r *Rule) Applies(name string) bool {
	n := category.Normalize(name)
	if n == "" {
		return false
	}
	for _, t := range r.types {
		if strings.Contains(n, t) {
			return true
		}
	}
	return false
}

// EffectiveDate resolves the clearing date of a settlement recorded on d.
func (r *Rule) EffectiveDate(d time.Time) time.Time {
	d = calendar.DateOf(d)
	if r.lagDays > 0 {
		d = d.AddDate(0, 0, r.lagDays)
	}
	return r.calendar.NextBusinessDay(d)
}

// Period returns the month and year a row is accounted in. The shift starts
// from the movement date (dt_mov), not from the write-off date. Rows outside
// the configured settlement types, or without a movement date, keep their
// recorded month and year.
func (r *Rule) Period(name string, month, year int, movedOn time.Time, hasDate bool) (int, int) {
	if !hasDate || !r.Applies(name) {
		return month, year
	}
	eff := r.EffectiveDate(movedOn)
	return int(eff.Month()), eff.Year()
}
