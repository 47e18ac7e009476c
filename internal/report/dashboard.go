package report

import (
	"context"
	"math"

	"github.com/farxc/dfc_dashboard/internal/category"
	"github.com/farxc/dfc_dashboard/internal/dfc"
	"github.com/farxc/dfc_dashboard/internal/period"
	"github.com/farxc/dfc_dashboard/internal/store"
)

const (
	LabelOpeningBalance = "Saldo Inicial"
	LabelCashFlow       = "Representatividade de Caixa"
	LabelClosingBalance = "Saldo Final"
)

type Cards struct {
	OpeningBalance float64 `json:"saldoInicial"`
	Inflow         float64 `json:"entrada"`
	Outflow        float64 `json:"saida"`
	Result         float64 `json:"deficitSuperavit"`
	ClosingBalance float64 `json:"saldoFinal"`
}

type Chart struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

type Dashboard struct {
	Cards Cards `json:"cards"`
	Chart Chart `json:"grafico"`
	Table Table `json:"tabela"`
}

// placed is a ledger row resolved to its effective accounting period.
type placed struct {
	entry store.Entry
	month int
	year  int
}

func (s *Service) place(entries []store.Entry, q Query) []placed {
	out := make([]placed, 0, len(entries))
	for _, e := range entries {
		m, y := s.rule.Period(e.PlanName, e.Month, e.Year, e.MovedOn.Time, e.MovedOn.Valid)
		// the year filter runs after the shift, never before
		if q.View != period.Annual && y != q.Year {
			continue
		}
		out = append(out, placed{entry: e, month: m, year: y})
	}
	return out
}

func placedYears(rows []placed) []int {
	years := make([]int, 0, len(rows))
	for _, r := range rows {
		years = append(years, r.year)
	}
	return years
}

// Dashboard builds the DFC table, chart and cards of one report. A ledger
// failure fails the whole report; a balance failure only zeroes the balance
// lines.
func (s *Service) Dashboard(ctx context.Context, q Query) (*Dashboard, error) {
	entries, err := s.store.Ledger.ListEntries(ctx, store.EntryFilter{
		Years:          fetchYears(q),
		Settlement:     q.Status,
		AlwaysRealized: s.settings.RealizedPlanCodes,
	})
	if err != nil {
		return nil, err
	}

	rows := s.place(entries, q)
	cols := period.ColumnsFor(q.View, placedYears(rows))

	tree := dfc.NewTree(cols)
	global := cols.Zero()
	unclassified := 0
	for _, r := range rows {
		key, ok := cols.Bucket(r.month, r.year)
		if !ok {
			continue
		}
		amount := category.Signed(r.entry.Amount, r.entry.Nature)
		global.Add(key, amount)

		cat, ok := category.Classify(r.entry.Origin)
		if !ok {
			unclassified++
			continue
		}
		tree.Accumulate(cat, dfc.SubgroupLabel(r.entry.SecondaryName), dfc.ItemKey(r.entry.PlanCode, r.entry.PlanName), key, amount)
	}
	if unclassified > 0 {
		s.logger.Debug("Dashboard", "%d rows without a known category counted only in the global flow", unclassified)
	}

	inflow := tree.Total(category.EntradasOperacionais)
	outflow := tree.Total(category.SaidasOperacionais)
	operational := cols.Zero()
	for _, k := range cols.Keys {
		operational[k] = inflow[k] + outflow[k]
	}

	bal := s.balance.Compute(ctx, cols, q.Year, global)

	table := make([]dfc.Node, 0, len(category.All())+3)
	table = append(table, dfc.InfoRow(LabelOpeningBalance, dfc.KindInfo, bal.Opening))
	table = append(table, tree.Rows(true)...)
	table = append(table, dfc.InfoRow(LabelCashFlow, dfc.KindInfo, global))
	table = append(table, dfc.InfoRow(LabelClosingBalance, dfc.KindBalance, bal.Closing))

	s.logger.Debug("Dashboard", "year=%d view=%s status=%s rows=%d columns=%d", q.Year, q.View, q.Status, len(rows), cols.Len())

	return &Dashboard{
		Cards: Cards{
			OpeningBalance: cols.First(bal.Opening),
			Inflow:         inflow.Total(),
			Outflow:        math.Abs(outflow.Total()),
			Result:         operational.Total(),
			ClosingBalance: cols.Last(bal.Closing),
		},
		Chart: Chart{
			Labels: cols.Headers,
			Data:   cols.Slice(operational),
		},
		Table: Table{
			Rows:    table,
			Columns: cols.Keys,
			Headers: cols.Headers,
		},
	}, nil
}
