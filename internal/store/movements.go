package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type MovementStore struct {
	db *sqlx.DB
}

type MovementFilter struct {
	// MaxYear is inclusive and required.
	MaxYear int
	// MinYear is inclusive; zero disables the lower bound.
	MinYear int
}

// NetByMonth returns entrada minus saída per month for every year up to
// MaxYear. Amount signs stored in the table are ignored.
func (ms *MovementStore) NetByMonth(ctx context.Context, f MovementFilter) ([]MonthlyNet, error) {
	query := `
	SELECT
		ano,
		mes,
		SUM(CASE
			WHEN LOWER(natureza) LIKE 'sa%' THEN -ABS(COALESCE(valor, 0))
			ELSE ABS(COALESCE(valor, 0))
		END) AS liquido
	FROM
		movimentos_contas
	WHERE
		ano <= ?`
	args := []any{f.MaxYear}

	if f.MinYear > 0 {
		query += ` AND ano >= ?`
		args = append(args, f.MinYear)
	}
	query += `
	GROUP BY
		ano, mes
	ORDER BY
		ano, mes`

	var rows []MonthlyNet
	if err := ms.db.SelectContext(ctx, &rows, ms.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query account movements: %w", err)
	}
	return rows, nil
}

func (ms *MovementStore) InsertMovements(ctx context.Context, movements []Movement) (int64, error) {
	query := `INSERT INTO movimentos_contas (
		conta,
		ano,
		mes,
		natureza,
		valor
	) VALUES (
		:conta,
		:ano,
		:mes,
		:natureza,
		:valor
	)`

	n, err := insertAll(ctx, ms.db, query, movements)
	if err != nil {
		return 0, fmt.Errorf("failed to insert account movements: %w", err)
	}
	return n, nil
}
