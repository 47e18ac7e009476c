package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Storage struct {
	Ledger interface {
		ListEntries(ctx context.Context, f EntryFilter) ([]Entry, error)
		ListYears(ctx context.Context) ([]int, error)
		InsertEntries(ctx context.Context, entries []Entry) (int64, error)
	}

	Movements interface {
		NetByMonth(ctx context.Context, f MovementFilter) ([]MonthlyNet, error)
		InsertMovements(ctx context.Context, movements []Movement) (int64, error)
	}

	Budget interface {
		ListPlanned(ctx context.Context, f BudgetFilter) ([]PlannedRow, error)
		InsertPlanned(ctx context.Context, rows []PlannedRow) (int64, error)
	}

	Departments interface {
		List(ctx context.Context) ([]Department, error)
	}

	IngestionHistory interface {
		InsertIngestionHistory(ctx context.Context, history *IngestionHistory) error
		GetLatest(ctx context.Context, limit int) ([]IngestionHistory, error)
		UpdateIngestionStatus(ctx context.Context, id int64, status string, rowsLoaded int64) error
	}
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{
		Ledger:           &LedgerStore{db: db},
		Movements:        &MovementStore{db: db},
		Budget:           &BudgetStore{db: db},
		Departments:      &DepartmentStore{db: db},
		IngestionHistory: &IngestionHistoryStore{db: db},
	}
}

// insertAll runs query once per element of rows inside a single transaction.
func insertAll[T any](ctx context.Context, db *sqlx.DB, query string, rows []T) (int64, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var total int64
	for i := range rows {
		result, err := tx.NamedExecContext(ctx, query, rows[i])
		if err != nil {
			return 0, err
		}
		n, _ := result.RowsAffected()
		total += n
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return total, nil
}
