// Package balance derives opening and closing account balances for each
// column of a report.
package balance

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/farxc/dfc_dashboard/internal/logger"
	"github.com/farxc/dfc_dashboard/internal/period"
	"github.com/farxc/dfc_dashboard/internal/store"
)

const (
	PolicyLedger = "ledger"
	PolicyFlow   = "flow"
)

// Row holds the balance lines of a report. For every column c,
// Closing[c] == Opening[c] + NetFlow[c].
type Row struct {
	Opening period.Values
	NetFlow period.Values
	Closing period.Values
}

// ZeroRow is the degraded balance returned when the policy fails.
func ZeroRow(cols period.Columns) Row {
	return Row{Opening: cols.Zero(), NetFlow: cols.Zero(), Closing: cols.Zero()}
}

// Walk chains the columns: the first column opens at baseline and every
// following column opens at the previous closing.
func Walk(cols period.Columns, baseline float64, net period.Values) Row {
	row := ZeroRow(cols)
	running := baseline
	for _, k := range cols.Keys {
		row.Opening[k] = running
		row.NetFlow[k] = net[k]
		running += net[k]
		row.Closing[k] = running
	}
	return row
}

// Policy computes the balance row of a report. flow is the global DFC flow
// per column, which policies may ignore.
type Policy interface {
	Name() string
	Compute(ctx context.Context, cols period.Columns, year int, flow period.Values) (Row, error)
}

type MovementSource interface {
	NetByMonth(ctx context.Context, f store.MovementFilter) ([]store.MonthlyNet, error)
}

// LedgerPolicy reads balances from the account movement ledger, which is
// independent of the DFC rows. Movements before CutoverYear are ignored.
type LedgerPolicy struct {
	Movements   MovementSource
	CutoverYear int
}

func (p *LedgerPolicy) Name() string { return PolicyLedger }

func (p *LedgerPolicy) Compute(ctx context.Context, cols period.Columns, year int, _ period.Values) (Row, error) {
	if cols.View == period.Annual {
		return p.annual(ctx, cols)
	}

	rows, err := p.Movements.NetByMonth(ctx, store.MovementFilter{MaxYear: year, MinYear: p.CutoverYear})
	if err != nil {
		return Row{}, err
	}

	var baseline float64
	net := cols.Zero()
	for _, r := range rows {
		switch {
		case r.Year < year:
			baseline += r.Net
		case r.Year == year:
			if key, ok := cols.Bucket(r.Month, r.Year); ok {
				net.Add(key, r.Net)
			}
		}
	}
	return Walk(cols, baseline, net), nil
}

// annual opens every year at the cumulative net of all earlier years, so
// gaps in the year columns do not drop movements.
func (p *LedgerPolicy) annual(ctx context.Context, cols period.Columns) (Row, error) {
	years := cols.Years()
	if len(years) == 0 {
		return ZeroRow(cols), nil
	}

	rows, err := p.Movements.NetByMonth(ctx, store.MovementFilter{MaxYear: years[len(years)-1], MinYear: p.CutoverYear})
	if err != nil {
		return Row{}, err
	}

	row := ZeroRow(cols)
	for _, y := range years {
		key := strconv.Itoa(y)
		for _, r := range rows {
			switch {
			case r.Year < y:
				row.Opening[key] += r.Net
			case r.Year == y:
				row.NetFlow[key] += r.Net
			}
		}
		row.Closing[key] = row.Opening[key] + row.NetFlow[key]
	}
	return row, nil
}

// FlowPolicy starts from zero and uses the report's own global flow.
type FlowPolicy struct{}

func (FlowPolicy) Name() string { return PolicyFlow }

func (FlowPolicy) Compute(_ context.Context, cols period.Columns, _ int, flow period.Values) (Row, error) {
	return Walk(cols, 0, flow), nil
}

// ParsePolicy maps a configuration value to a policy, defaulting to ledger.
func ParsePolicy(name string, movements MovementSource, cutoverYear int) Policy {
	if strings.EqualFold(strings.TrimSpace(name), PolicyFlow) {
		return FlowPolicy{}
	}
	return &LedgerPolicy{Movements: movements, CutoverYear: cutoverYear}
}

type Engine struct {
	policy Policy
	logger *logger.Logger
}

func NewEngine(policy Policy, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.New(logger.LevelInfo)
	}
	return &Engine{policy: policy, logger: log}
}

func (e *Engine) PolicyName() string { return e.policy.Name() }

// Compute never fails: a policy error is logged and the balances degrade to
// zero so the rest of the report can still be served.
func (e *Engine) Compute(ctx context.Context, cols period.Columns, year int, flow period.Values) Row {
	row, err := e.policy.Compute(ctx, cols, year, flow)
	if err != nil {
		e.logger.Warn("balance", "%s policy failed for %d/%s, using zero balances: %v", e.policy.Name(), year, cols.View, err)
		return ZeroRow(cols)
	}
	if err := row.check(cols); err != nil {
		e.logger.Warn("balance", "%s policy returned an inconsistent row: %v", e.policy.Name(), err)
		return ZeroRow(cols)
	}
	return row
}

func (r Row) check(cols period.Columns) error {
	for _, k := range cols.Keys {
		if _, ok := r.Opening[k]; !ok {
			return fmt.Errorf("missing opening for column %s", k)
		}
		if _, ok := r.Closing[k]; !ok {
			return fmt.Errorf("missing closing for column %s", k)
		}
	}
	return nil
}
