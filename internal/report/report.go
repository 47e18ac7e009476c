// Package report runs the dashboard, budget and forecast pipelines on top of
// the store.
package report

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/farxc/dfc_dashboard/internal/balance"
	"github.com/farxc/dfc_dashboard/internal/dfc"
	"github.com/farxc/dfc_dashboard/internal/logger"
	"github.com/farxc/dfc_dashboard/internal/period"
	"github.com/farxc/dfc_dashboard/internal/settlement"
	"github.com/farxc/dfc_dashboard/internal/store"
)

var (
	// Cash and PIX codes that count as realized without a settlement date.
	DefaultRealizedPlanCodes = []string{"1.001.001", "1.001.008", "7.001.001", "3.002.001"}
	DefaultCashPlanCodes     = []string{"1.001.001", "1.001.008"}
	DefaultHiddenBudgetYears = []int{2025}
)

const DefaultForecastReceivablePlan = "1.001.006"

type Settings struct {
	RealizedPlanCodes      []string
	CashPlanCodes          []string
	HiddenBudgetYears      []int
	ForecastReceivablePlan string
}

func DefaultSettings() Settings {
	return Settings{
		RealizedPlanCodes:      DefaultRealizedPlanCodes,
		CashPlanCodes:          DefaultCashPlanCodes,
		HiddenBudgetYears:      DefaultHiddenBudgetYears,
		ForecastReceivablePlan: DefaultForecastReceivablePlan,
	}
}

type Service struct {
	store    store.Storage
	rule     *settlement.Rule
	balance  *balance.Engine
	settings Settings
	logger   *logger.Logger
}

func NewService(s store.Storage, rule *settlement.Rule, engine *balance.Engine, settings Settings, log *logger.Logger) *Service {
	if log == nil {
		log = logger.New(logger.LevelInfo)
	}
	return &Service{store: s, rule: rule, balance: engine, settings: settings, logger: log}
}

type Query struct {
	Year   int
	View   period.View
	Status store.Settlement
}

// ParseQuery never fails: a missing or malformed year falls back to the year
// of now, the view to monthly and the status to every row.
func ParseQuery(year, view, status string, now time.Time) Query {
	return Query{
		Year:   ParseYear(year, now),
		View:   period.ParseView(view),
		Status: store.ParseSettlement(status),
	}
}

func ParseYear(s string, now time.Time) int {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || y <= 0 {
		return now.Year()
	}
	return y
}

// fetchYears lists the raw years to load for a single-year report. The
// previous year is included so settlements recorded on Dec 31 can move in.
func fetchYears(q Query) []int {
	if q.View == period.Annual {
		return nil
	}
	return []int{q.Year - 1, q.Year}
}

type Table struct {
	Rows    []dfc.Node `json:"rows"`
	Columns []string   `json:"columns"`
	Headers []string   `json:"headers"`
}

func (s *Service) Years(ctx context.Context) ([]int, error) {
	return s.store.Ledger.ListYears(ctx)
}

func (s *Service) Departments(ctx context.Context) ([]store.Department, error) {
	return s.store.Departments.List(ctx)
}

func (s *Service) BalancePolicy() string {
	return s.balance.PolicyName()
}
