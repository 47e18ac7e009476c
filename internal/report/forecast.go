package report

import (
	"context"

	"github.com/farxc/dfc_dashboard/internal/category"
	"github.com/farxc/dfc_dashboard/internal/dfc"
	"github.com/farxc/dfc_dashboard/internal/period"
	"github.com/farxc/dfc_dashboard/internal/store"
)

const (
	LabelReceivables = "1- Previsões a Receber"
	LabelPayables    = "2- Previsões a Pagar"
)

type Forecast struct {
	Table Table `json:"tabela"`
}

// Forecast tabulates open items backed by a financial document: receivable
// boletos and operational outflows still to be paid. Amounts are summed as
// recorded, by their recorded month.
func (s *Service) Forecast(ctx context.Context, q Query) (*Forecast, error) {
	f := store.EntryFilter{Settlement: store.SettlementOpen, RequireFinancial: true}
	if q.View != period.Annual {
		f.Years = []int{q.Year}
	}
	entries, err := s.store.Ledger.ListEntries(ctx, f)
	if err != nil {
		return nil, err
	}

	receivablePlan := s.settings.ForecastReceivablePlan
	receivableLabel := receivablePlan

	var receivables, payables []store.Entry
	for _, e := range entries {
		switch {
		case e.PlanCode == receivablePlan:
			if receivableLabel == receivablePlan && e.PlanName != "" {
				receivableLabel = dfc.ItemKey(e.PlanCode, e.PlanName)
			}
			receivables = append(receivables, e)
		default:
			if cat, ok := category.Classify(e.Origin); ok && cat == category.SaidasOperacionais {
				payables = append(payables, e)
			}
		}
	}

	years := make([]int, 0, len(receivables)+len(payables))
	for _, e := range receivables {
		years = append(years, e.Year)
	}
	for _, e := range payables {
		years = append(years, e.Year)
	}
	cols := period.ColumnsFor(q.View, years)

	return &Forecast{
		Table: Table{
			Rows: []dfc.Node{
				forecastGroup(LabelReceivables, receivableLabel, cols, receivables),
				forecastGroup(LabelPayables, category.SaidasOperacionais.Label(), cols, payables),
			},
			Columns: cols.Keys,
			Headers: cols.Headers,
		},
	}, nil
}

func forecastGroup(label, childLabel string, cols period.Columns, entries []store.Entry) dfc.Node {
	values := cols.Zero()
	for _, e := range entries {
		if key, ok := cols.Bucket(e.Month, e.Year); ok {
			values.Add(key, e.Amount)
		}
	}
	child := dfc.Node{Conta: childLabel, Tipo: dfc.KindItem, Values: values, Detalhes: []dfc.Node{}}
	return dfc.Node{Conta: label, Tipo: dfc.KindGroup, Values: values.Clone(), Detalhes: []dfc.Node{child}}
}
