package report

import (
	"context"
	"fmt"

	"github.com/farxc/dfc_dashboard/internal/budget"
	"github.com/farxc/dfc_dashboard/internal/store"
	"golang.org/x/sync/errgroup"
)

type BudgetQuery struct {
	Year       int
	Department string
}

// Budget merges the planned budget of a year with its realized amounts. The
// planned and realized queries run concurrently and both must succeed.
func (s *Service) Budget(ctx context.Context, q BudgetQuery) ([]budget.Group, error) {
	var (
		planned []store.PlannedRow
		entries []store.Entry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.store.Budget.ListPlanned(gctx, store.BudgetFilter{Department: q.Department})
		if err != nil {
			return fmt.Errorf("planned budget: %w", err)
		}
		planned = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.store.Ledger.ListEntries(gctx, store.EntryFilter{
			Years:          []int{q.Year - 1, q.Year},
			Settlement:     store.SettlementRealized,
			AlwaysRealized: s.settings.CashPlanCodes,
		})
		if err != nil {
			return fmt.Errorf("realized budget: %w", err)
		}
		entries = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	opts := budget.Options{
		Year:          q.Year,
		HiddenYears:   s.settings.HiddenBudgetYears,
		CashPlanCodes: s.settings.CashPlanCodes,
	}
	realized := budget.Realized(entries, s.rule, opts)
	groups := budget.Merge(planned, realized, opts)

	s.logger.Debug("Budget", "year=%d department=%q planned=%d realized=%d groups=%d", q.Year, q.Department, len(planned), len(entries), len(groups))
	return groups, nil
}
