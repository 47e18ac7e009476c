// Package calendar classifies business days against the Brazilian national
// holiday table used for settlement accounting.
package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	fixedLayout   = "01-02"
	datedLayout   = "2006-01-02"
	maxSkipPeriod = 31
)

// National holidays that fall on the same day every year.
var fixedHolidays = []string{"01-01", "04-21", "05-01", "09-07", "10-12", "11-02", "11-15", "12-25"}

// Carnival, Good Friday and Corpus Christi for the years the dashboard covers.
var movableHolidays = map[int][]string{
	2024: {"02-13", "03-29", "05-30"},
	2025: {"03-04", "04-18", "06-19"},
	2026: {"02-17", "04-03", "06-04"},
	2027: {"02-09", "03-26", "05-27"},
	2028: {"02-29", "04-14", "06-15"},
}

// Calendar is read-only once built and safe for concurrent use.
type Calendar struct {
	fixed map[string]struct{}
	dated map[string]struct{}
}

// New returns the default holiday table plus any extra dated holidays.
func New(extra ...time.Time) *Calendar {
	c := &Calendar{
		fixed: make(map[string]struct{}, len(fixedHolidays)),
		dated: make(map[string]struct{}),
	}
	for _, f := range fixedHolidays {
		c.fixed[f] = struct{}{}
	}
	for year, days := range movableHolidays {
		for _, d := range days {
			c.dated[fmt.Sprintf("%d-%s", year, d)] = struct{}{}
		}
	}
	for _, d := range extra {
		c.dated[d.Format(datedLayout)] = struct{}{}
	}
	return c
}

// ParseHolidays parses a list of YYYY-MM-DD (or DD/MM/YYYY) dates.
func ParseHolidays(values []string) ([]time.Time, error) {
	out := make([]time.Time, 0, len(values))
	for _, v := range values {
		d, err := ParseDate(v)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday %q: %w", v, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// IsHolidayKey reports whether key, given as MM-DD, MM/DD or YYYY-MM-DD,
// is a holiday. MM-DD keys only match the fixed table.
func (c *Calendar) IsHolidayKey(key string) bool {
	key = strings.ReplaceAll(strings.TrimSpace(key), "/", "-")
	if _, ok := c.fixed[key]; ok {
		return true
	}
	if len(key) == len(datedLayout) {
		if _, ok := c.fixed[key[5:]]; ok {
			return true
		}
	}
	_, ok := c.dated[key]
	return ok
}

func (c *Calendar) IsHoliday(d time.Time) bool {
	return c.IsHolidayKey(d.Format(datedLayout))
}

// IsBusinessDay is false on weekends and holidays.
func (c *Calendar) IsBusinessDay(d time.Time) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !c.IsHoliday(d)
}

// NextBusinessDay returns d itself when it is a business day, otherwise the
// first business day after it.
func (c *Calendar) NextBusinessDay(d time.Time) time.Time {
	d = DateOf(d)
	for i := 0; i < maxSkipPeriod && !c.IsBusinessDay(d); i++ {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// Holidays lists every holiday of the given year in date order.
func (c *Calendar) Holidays(year int) []time.Time {
	var out []time.Time
	for f := range c.fixed {
		d, err := time.Parse(datedLayout, fmt.Sprintf("%d-%s", year, f))
		if err == nil {
			out = append(out, DateOf(d))
		}
	}
	prefix := fmt.Sprintf("%d-", year)
	for k := range c.dated {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		if _, fixed := c.fixed[k[5:]]; fixed {
			continue
		}
		if d, err := time.Parse(datedLayout, k); err == nil {
			out = append(out, DateOf(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// DateOf truncates t to its calendar day at noon UTC so that day arithmetic
// never drifts across a time zone boundary.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
}

// ParseDate accepts YYYY-MM-DD, RFC3339 timestamps and DD/MM/YYYY.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{datedLayout, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date format: %q", s)
}
