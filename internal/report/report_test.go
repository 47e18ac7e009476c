package report

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/farxc/dfc_dashboard/internal/balance"
	"github.com/farxc/dfc_dashboard/internal/calendar"
	"github.com/farxc/dfc_dashboard/internal/category"
	"github.com/farxc/dfc_dashboard/internal/dfc"
	"github.com/farxc/dfc_dashboard/internal/logger"
	"github.com/farxc/dfc_dashboard/internal/period"
	"github.com/farxc/dfc_dashboard/internal/settlement"
	"github.com/farxc/dfc_dashboard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLedger struct {
	entries []store.Entry
	err     error
	filters []store.EntryFilter
}

func (f *fakeLedger) ListEntries(_ context.Context, filter store.EntryFilter) ([]store.Entry, error) {
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, f.err
	}
	always := map[string]bool{}
	for _, c := range filter.AlwaysRealized {
		always[c] = true
	}
	var out []store.Entry
	for _, e := range f.entries {
		if len(filter.Years) > 0 && !containsInt(filter.Years, e.Year) {
			continue
		}
		switch filter.Settlement {
		case store.SettlementRealized:
			if !e.SettledOn.Valid && !always[e.PlanCode] {
				continue
			}
		case store.SettlementOpen:
			if e.SettledOn.Valid {
				continue
			}
		}
		if filter.RequireFinancial && e.Financial == "" {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeLedger) ListYears(context.Context) ([]int, error) {
	return []int{2026, 2025}, f.err
}

func (f *fakeLedger) InsertEntries(context.Context, []store.Entry) (int64, error) {
	return 0, nil
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

type fakeMovements struct {
	rows []store.MonthlyNet
	err  error
}

func (f *fakeMovements) NetByMonth(_ context.Context, filter store.MovementFilter) ([]store.MonthlyNet, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []store.MonthlyNet
	for _, r := range f.rows {
		if r.Year <= filter.MaxYear {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeMovements) InsertMovements(context.Context, []store.Movement) (int64, error) {
	return 0, nil
}

type fakeBudget struct {
	rows []store.PlannedRow
	err  error
}

func (f *fakeBudget) ListPlanned(_ context.Context, filter store.BudgetFilter) ([]store.PlannedRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []store.PlannedRow
	for _, r := range f.rows {
		if filter.Department == "" || r.Department == filter.Department {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeBudget) InsertPlanned(context.Context, []store.PlannedRow) (int64, error) {
	return 0, nil
}

type fakeDepartments struct{}

func (fakeDepartments) List(context.Context) ([]store.Department, error) {
	return []store.Department{{ID: 1, Name: "Compras"}}, nil
}

func date(y int, m time.Month, d int) store.NullTime {
	return store.NewNullTime(time.Date(y, m, d, 12, 0, 0, 0, time.UTC))
}

var ledgerFixture = []store.Entry{
	// Dec 31 2025 boleto clears on Jan 2 2026
	{Origin: "01- Entradas Operacionais", SecondaryName: "Vendas", PlanCode: "1.001.006", PlanName: "BOLETO", Month: 12, Year: 2025, Amount: 300, Nature: "Entrada", MovedOn: date(2025, 12, 31), SettledOn: date(2026, 1, 5)},
	{Origin: "02- Saídas Operacionais", SecondaryName: "Fornecedores", PlanCode: "2.001.001", PlanName: "MERCADORIAS", Month: 1, Year: 2026, Amount: 100, Nature: "Saída", SettledOn: date(2026, 1, 15)},
	{Origin: "03- Operações Financeiras", SecondaryName: "", PlanCode: "3.001.001", PlanName: "TARIFAS", Month: 2, Year: 2026, Amount: 20, Nature: "saida"},
	{Origin: "99- Outras Origens", SecondaryName: "x", PlanCode: "9.000.000", PlanName: "AJUSTE", Month: 3, Year: 2026, Amount: 50, Nature: "Entrada", SettledOn: date(2026, 3, 5)},
	{Origin: "01- Entradas Operacionais", SecondaryName: "Vendas", PlanCode: "1.001.002", PlanName: "PIX", Month: 12, Year: 2025, Amount: 1000, Nature: "Entrada", SettledOn: date(2025, 12, 20)},
}

func newService(ledger *fakeLedger, moves *fakeMovements) *Service {
	rule := settlement.NewRule(calendar.New(), settlement.DefaultTypes, 1)
	engine := balance.NewEngine(&balance.LedgerPolicy{Movements: moves}, nil)
	s := store.Storage{
		Ledger:      ledger,
		Movements:   moves,
		Budget:      &fakeBudget{},
		Departments: fakeDepartments{},
	}
	return NewService(s, rule, engine, DefaultSettings(), nil)
}

func findRow(rows []dfc.Node, label string) (dfc.Node, bool) {
	for _, r := range rows {
		if r.Conta == label {
			return r, true
		}
	}
	return dfc.Node{}, false
}

func TestDashboardMonthly(t *testing.T) {
	ledger := &fakeLedger{entries: ledgerFixture}
	moves := &fakeMovements{rows: []store.MonthlyNet{{Year: 2025, Month: 6, Net: 1000}}}
	svc := newService(ledger, moves)

	d, err := svc.Dashboard(context.Background(), Query{Year: 2026, View: period.Monthly, Status: store.SettlementAll})
	require.NoError(t, err)

	assert.Equal(t, []int{2025, 2026}, ledger.filters[0].Years)

	rows := d.Table.Rows
	require.Len(t, rows, len(category.All())+3)
	assert.Equal(t, LabelOpeningBalance, rows[0].Conta)
	assert.Equal(t, category.EntradasOperacionais.Label(), rows[1].Conta)
	assert.Equal(t, LabelCashFlow, rows[len(rows)-2].Conta)
	assert.Equal(t, LabelClosingBalance, rows[len(rows)-1].Conta)
	assert.Equal(t, dfc.KindBalance, rows[len(rows)-1].Tipo)

	entradas := rows[1]
	assert.Equal(t, 300.0, entradas.Values["jan"])
	assert.Zero(t, entradas.Values["dez"])

	flow, _ := findRow(rows, LabelCashFlow)
	assert.Equal(t, 200.0, flow.Values["jan"])
	assert.Equal(t, -20.0, flow.Values["fev"])
	assert.Equal(t, 50.0, flow.Values["mar"])

	// the ledger policy walks the movement ledger, which has nothing in 2026
	assert.Equal(t, 1000.0, rows[0].Values["jan"])
	closing := rows[len(rows)-1]
	assert.Equal(t, 1000.0, closing.Values["dez"])

	assert.Equal(t, Cards{OpeningBalance: 1000, Inflow: 300, Outflow: 100, Result: 200, ClosingBalance: 1000}, d.Cards)
	assert.Equal(t, period.MonthlyColumns().Headers, d.Chart.Labels)
	assert.Equal(t, 200.0, d.Chart.Data[0])
	assert.Equal(t, period.MonthlyColumns().Keys, d.Table.Columns)
}

func TestDashboardShiftsOpenBoletoFromMovementDate(t *testing.T) {
	// Saturday Jan 31 2026, not yet written off
	ledger := &fakeLedger{entries: []store.Entry{
		{Origin: "01- Entradas Operacionais", SecondaryName: "Vendas", PlanCode: "1.001.006", PlanName: "BOLETO", Month: 1, Year: 2026, Amount: 100, Nature: "Entrada", MovedOn: date(2026, 1, 31)},
		// written off in March, still bucketed by its movement date
		{Origin: "01- Entradas Operacionais", SecondaryName: "Vendas", PlanCode: "1.001.006", PlanName: "BOLETO", Month: 4, Year: 2026, Amount: 40, Nature: "Entrada", MovedOn: date(2026, 4, 10), SettledOn: date(2026, 3, 2)},
	}}
	svc := newService(ledger, &fakeMovements{})

	for _, status := range []store.Settlement{store.SettlementAll, store.SettlementOpen} {
		d, err := svc.Dashboard(context.Background(), Query{Year: 2026, View: period.Monthly, Status: status})
		require.NoError(t, err)

		entradas := d.Table.Rows[1]
		assert.Zero(t, entradas.Values["jan"], status)
		assert.Equal(t, 100.0, entradas.Values["fev"], status)
	}

	d, err := svc.Dashboard(context.Background(), Query{Year: 2026, View: period.Monthly, Status: store.SettlementAll})
	require.NoError(t, err)
	assert.Zero(t, d.Table.Rows[1].Values["mar"])
	assert.Equal(t, 40.0, d.Table.Rows[1].Values["abr"])
}

func TestDashboardFlowPolicyClosesOnGlobalFlow(t *testing.T) {
	svc := newService(&fakeLedger{entries: ledgerFixture}, &fakeMovements{})
	svc.balance = balance.NewEngine(balance.FlowPolicy{}, nil)

	d, err := svc.Dashboard(context.Background(), Query{Year: 2026, View: period.Monthly})
	require.NoError(t, err)

	assert.Zero(t, d.Cards.OpeningBalance)
	assert.Equal(t, 230.0, d.Cards.ClosingBalance)
}

func TestDashboardTreeTotalsMatchChildren(t *testing.T) {
	svc := newService(&fakeLedger{entries: ledgerFixture}, &fakeMovements{})
	d, err := svc.Dashboard(context.Background(), Query{Year: 2026, View: period.Quarterly})
	require.NoError(t, err)

	var check func(n dfc.Node)
	check = func(n dfc.Node) {
		if len(n.Detalhes) == 0 {
			return
		}
		for _, k := range d.Table.Columns {
			var sum float64
			for _, c := range n.Detalhes {
				sum += c.Values[k]
			}
			assert.InDelta(t, n.Values[k], sum, 1e-9, "%s/%s", n.Conta, k)
		}
		for _, c := range n.Detalhes {
			check(c)
		}
	}
	for _, r := range d.Table.Rows {
		check(r)
	}
}

func TestDashboardAnnualUsesEffectiveYears(t *testing.T) {
	ledger := &fakeLedger{entries: ledgerFixture}
	svc := newService(ledger, &fakeMovements{})

	d, err := svc.Dashboard(context.Background(), Query{Year: 2026, View: period.Annual})
	require.NoError(t, err)

	assert.Nil(t, ledger.filters[0].Years)
	assert.Equal(t, []string{"2025", "2026"}, d.Table.Columns)
	assert.Equal(t, 1000.0, d.Table.Rows[1].Values["2025"])
	assert.Equal(t, 300.0, d.Table.Rows[1].Values["2026"])
}

func TestDashboardRealizedStatus(t *testing.T) {
	ledger := &fakeLedger{entries: ledgerFixture}
	svc := newService(ledger, &fakeMovements{})

	d, err := svc.Dashboard(context.Background(), Query{Year: 2026, View: period.Monthly, Status: store.SettlementRealized})
	require.NoError(t, err)

	assert.Equal(t, DefaultRealizedPlanCodes, ledger.filters[0].AlwaysRealized)
	flow, _ := findRow(d.Table.Rows, LabelCashFlow)
	// the unsettled fee row is gone
	assert.Zero(t, flow.Values["fev"])
}

func TestDashboardBalanceFailureDegrades(t *testing.T) {
	svc := newService(&fakeLedger{entries: ledgerFixture}, &fakeMovements{err: errors.New("timeout")})

	d, err := svc.Dashboard(context.Background(), Query{Year: 2026, View: period.Monthly})
	require.NoError(t, err)

	assert.Zero(t, d.Cards.OpeningBalance)
	assert.Zero(t, d.Cards.ClosingBalance)
	assert.Equal(t, 300.0, d.Cards.Inflow)
}

func TestDashboardLedgerFailure(t *testing.T) {
	svc := newService(&fakeLedger{err: errors.New("db down")}, &fakeMovements{})

	d, err := svc.Dashboard(context.Background(), Query{Year: 2026, View: period.Monthly})
	assert.Error(t, err)
	assert.Nil(t, d)
}

func TestDashboardJSONShape(t *testing.T) {
	svc := newService(&fakeLedger{entries: ledgerFixture}, &fakeMovements{})
	d, err := svc.Dashboard(context.Background(), Query{Year: 2026, View: period.Quarterly})
	require.NoError(t, err)

	b, err := json.Marshal(d)
	require.NoError(t, err)

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Contains(t, decoded["cards"], "deficitSuperavit")
	assert.Contains(t, decoded["grafico"], "labels")
	assert.Contains(t, decoded["tabela"], "headers")
}

func TestBudget(t *testing.T) {
	ledger := &fakeLedger{entries: ledgerFixture}
	svc := newService(ledger, &fakeMovements{})
	svc.store.Budget = &fakeBudget{rows: []store.PlannedRow{
		{PlanCode: "1.001.006", Name: "BOLETOS", Department: "Financeiro", January: 250},
		{PlanCode: "2.001.001", Name: "MERCADORIAS", Department: "Compras", January: 100},
	}}

	groups, err := svc.Budget(context.Background(), BudgetQuery{Year: 2026})
	require.NoError(t, err)
	require.Len(t, groups, 2)

	boleto := groups[0].Items[0].Months["jan"]
	assert.Equal(t, 250.0, boleto.Planned)
	assert.Equal(t, 300.0, boleto.Realized)
	assert.InDelta(t, -20.0, boleto.Percent, 1e-9)

	goods := groups[1].Items[0].Months["jan"]
	assert.Equal(t, 100.0, goods.Realized)
	assert.Zero(t, goods.Variance)

	for _, f := range ledger.filters {
		assert.Equal(t, store.SettlementRealized, f.Settlement)
		assert.Equal(t, []int{2025, 2026}, f.Years)
	}
}

func TestBudgetHiddenYear(t *testing.T) {
	svc := newService(&fakeLedger{}, &fakeMovements{})
	svc.store.Budget = &fakeBudget{rows: []store.PlannedRow{{PlanCode: "1", Name: "X", Department: "D", January: 10}}}

	groups, err := svc.Budget(context.Background(), BudgetQuery{Year: 2025})
	require.NoError(t, err)
	assert.Zero(t, groups[0].Months["jan"].Planned)
}

func TestBudgetFailsWhenEitherQueryFails(t *testing.T) {
	svc := newService(&fakeLedger{}, &fakeMovements{})
	svc.store.Budget = &fakeBudget{err: errors.New("boom")}
	_, err := svc.Budget(context.Background(), BudgetQuery{Year: 2026})
	assert.ErrorContains(t, err, "planned budget")

	svc = newService(&fakeLedger{err: errors.New("boom")}, &fakeMovements{})
	_, err = svc.Budget(context.Background(), BudgetQuery{Year: 2026})
	assert.ErrorContains(t, err, "realized budget")
}

func TestForecast(t *testing.T) {
	entries := []store.Entry{
		{Origin: "01- Entradas Operacionais", PlanCode: "1.001.006", PlanName: "BOLETOS", Month: 3, Year: 2026, Amount: 500, Financial: "DOC-1"},
		{Origin: "01- Entradas Operacionais", PlanCode: "1.001.006", PlanName: "BOLETOS", Month: 3, Year: 2026, Amount: 100, Financial: "DOC-2", SettledOn: date(2026, 3, 3)},
		{Origin: "02- Saidas Operacionais", PlanCode: "2.001.001", PlanName: "MERCADORIAS", Month: 4, Year: 2026, Amount: 200, Financial: "DOC-3"},
		{Origin: "02- Saídas Operacionais", PlanCode: "2.001.001", PlanName: "MERCADORIAS", Month: 4, Year: 2026, Amount: 70},
		{Origin: "03- Operações Financeiras", PlanCode: "3.001.001", PlanName: "TARIFAS", Month: 4, Year: 2026, Amount: 9, Financial: "DOC-4"},
	}
	ledger := &fakeLedger{entries: entries}
	svc := newService(ledger, &fakeMovements{})

	f, err := svc.Forecast(context.Background(), Query{Year: 2026, View: period.Quarterly})
	require.NoError(t, err)

	assert.Equal(t, store.SettlementOpen, ledger.filters[0].Settlement)
	assert.True(t, ledger.filters[0].RequireFinancial)

	rows := f.Table.Rows
	require.Len(t, rows, 2)
	assert.Equal(t, LabelReceivables, rows[0].Conta)
	assert.Equal(t, 500.0, rows[0].Values["Q1"])
	require.Len(t, rows[0].Detalhes, 1)
	assert.Equal(t, "1.001.006 - BOLETOS", rows[0].Detalhes[0].Conta)

	assert.Equal(t, LabelPayables, rows[1].Conta)
	assert.Equal(t, 200.0, rows[1].Values["Q2"])
	assert.Equal(t, category.SaidasOperacionais.Label(), rows[1].Detalhes[0].Conta)
}

func TestNewServiceDefaultsToInfoLogging(t *testing.T) {
	svc := newService(&fakeLedger{}, &fakeMovements{})
	require.NotNil(t, svc.logger)
	assert.Equal(t, logger.LevelInfo, svc.logger.MinLevel)
}

func TestParseQuery(t *testing.T) {
	now := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	q := ParseQuery("", "", "", now)
	assert.Equal(t, Query{Year: 2026, View: period.Monthly, Status: store.SettlementAll}, q)

	q = ParseQuery("2024", "anual", "aberto", now)
	assert.Equal(t, Query{Year: 2024, View: period.Annual, Status: store.SettlementOpen}, q)

	q = ParseQuery("abc", "semanal", "x", now)
	assert.Equal(t, 2026, q.Year)
	assert.Equal(t, period.Monthly, q.View)
}

func TestYearsAndDepartments(t *testing.T) {
	svc := newService(&fakeLedger{}, &fakeMovements{})

	years, err := svc.Years(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2026, 2025}, years)

	deps, err := svc.Departments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Compras", deps[0].Name)
	assert.Equal(t, balance.PolicyLedger, svc.BalancePolicy())
}
