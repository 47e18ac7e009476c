// Package budget merges planned budget lines with the realized ledger amounts.
package budget

import (
	"encoding/json"
	"sort"

	"github.com/farxc/dfc_dashboard/internal/category"
	"github.com/farxc/dfc_dashboard/internal/period"
	"github.com/farxc/dfc_dashboard/internal/settlement"
	"github.com/farxc/dfc_dashboard/internal/store"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const DefaultDepartment = "Sem Departamento"

// Cell is one month of a budget line.
type Cell struct {
	Planned  float64 `json:"orcado"`
	Realized float64 `json:"realizado"`
	Variance float64 `json:"diferenca"`
	Percent  float64 `json:"percentual"`
}

// Months is keyed by the monthly column keys (jan..dez).
type Months map[string]Cell

type Item struct {
	Label  string `json:"conta"`
	Months Months `json:"dados"`
}

func (i Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Label  string `json:"conta"`
		Kind   string `json:"tipo"`
		Months Months `json:"dados"`
	}{i.Label, "item", i.Months})
}

type Group struct {
	Department string `json:"conta"`
	Months     Months `json:"dados"`
	Items      []Item `json:"detalhes"`
}

func (g Group) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Department string `json:"conta"`
		Kind       string `json:"tipo"`
		Months     Months `json:"dados"`
		Items      []Item `json:"detalhes"`
	}{g.Department, "grupo", g.Months, g.Items})
}

// Key identifies a realized amount by plan code and effective month.
type Key struct {
	PlanCode string
	Month    int
}

type Options struct {
	Year int
	// HiddenYears have their planned values forced to zero.
	HiddenYears []int
	// CashPlanCodes count as realized without a settlement date.
	CashPlanCodes []string
}

func (o Options) hidesPlanned() bool {
	for _, y := range o.HiddenYears {
		if y == o.Year {
			return true
		}
	}
	return false
}

// Realized sums the net ledger amount of year per plan code and effective
// month. Only settled rows and cash plan codes count; boleto and card rows
// are moved by rule before the year check, so entries of year-1 must be
// included in the input.
func Realized(entries []store.Entry, rule *settlement.Rule, opts Options) map[Key]float64 {
	cash := make(map[string]struct{}, len(opts.CashPlanCodes))
	for _, c := range opts.CashPlanCodes {
		cash[c] = struct{}{}
	}

	out := map[Key]float64{}
	for _, e := range entries {
		if _, ok := cash[e.PlanCode]; !ok && !e.SettledOn.Valid {
			continue
		}
		month, year := rule.Period(e.PlanName, e.Month, e.Year, e.MovedOn.Time, e.MovedOn.Valid)
		if year != opts.Year || month < 1 || month > 12 {
			continue
		}
		out[Key{PlanCode: e.PlanCode, Month: month}] += category.Signed(e.Amount, e.Nature)
	}
	return out
}

// NewCell computes the variance of a planned/realized pair. The percentage is
// relative to the planned value; with nothing planned any realized amount is
// a -100% deviation.
func NewCell(planned, realized float64) Cell {
	c := Cell{Planned: planned, Realized: realized, Variance: planned - realized}
	switch {
	case planned != 0:
		c.Percent = c.Variance / planned * 100
	case realized > 0:
		c.Percent = -100
	}
	return c
}

func zeroMonths() Months {
	m := make(Months, 12)
	for _, k := range period.MonthKeys() {
		m[k] = Cell{}
	}
	return m
}

// Merge builds one group per department, in the order departments first
// appear in planned. Realized values are the absolute net of each month.
func Merge(planned []store.PlannedRow, realized map[Key]float64, opts Options) []Group {
	hide := opts.hidesPlanned()
	keys := period.MonthKeys()

	var groups []*Group
	byDept := map[string]*Group{}

	for _, row := range planned {
		dept := row.Department
		if dept == "" {
			dept = DefaultDepartment
		}
		g, ok := byDept[dept]
		if !ok {
			g = &Group{Department: dept, Months: zeroMonths(), Items: []Item{}}
			byDept[dept] = g
			groups = append(groups, g)
		}

		plannedMonths := row.Months()
		item := Item{Label: row.PlanCode + " - " + row.Name, Months: make(Months, 12)}
		for i, key := range keys {
			p := plannedMonths[i]
			if hide {
				p = 0
			}
			r := realized[Key{PlanCode: row.PlanCode, Month: i + 1}]
			if r < 0 {
				r = -r
			}
			item.Months[key] = NewCell(p, r)
		}
		g.Items = append(g.Items, item)
	}

	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		for _, key := range keys {
			var p, r float64
			for _, it := range g.Items {
				p += it.Months[key].Planned
				r += it.Months[key].Realized
			}
			g.Months[key] = NewCell(p, r)
		}
		sortItems(g.Items)
		out = append(out, *g)
	}
	return out
}

func sortItems(items []Item) {
	c := collate.New(language.BrazilianPortuguese, collate.Numeric, collate.IgnoreCase)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(items[i].Label, items[j].Label) < 0
	})
}

// Line is one item month of a flattened budget, as exported to CSV.
type Line struct {
	Department string  `csv:"departamento"`
	Account    string  `csv:"conta"`
	Month      string  `csv:"mes"`
	Planned    float64 `csv:"orcado"`
	Realized   float64 `csv:"realizado"`
	Variance   float64 `csv:"diferenca"`
	Percent    float64 `csv:"percentual"`
}

// Lines flattens groups into one line per item and month, in group and item
// order.
func Lines(groups []Group) []Line {
	var out []Line
	for _, g := range groups {
		for _, it := range g.Items {
			for _, key := range period.MonthKeys() {
				c := it.Months[key]
				out = append(out, Line{
					Department: g.Department,
					Account:    it.Label,
					Month:      key,
					Planned:    c.Planned,
					Realized:   c.Realized,
					Variance:   c.Variance,
					Percent:    c.Percent,
				})
			}
		}
	}
	return out
}
