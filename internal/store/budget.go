package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type BudgetStore struct {
	db *sqlx.DB
}

type BudgetFilter struct {
	// Department restricts the planned rows; empty means every department.
	Department string
}

func (bs *BudgetStore) ListPlanned(ctx context.Context, f BudgetFilter) ([]PlannedRow, error) {
	query := `
	SELECT
		id,
		plano,
		COALESCE(nome, '') AS nome,
		COALESCE(departamento1, '') AS departamento1,
		COALESCE(janeiro, 0) AS janeiro,
		COALESCE(fevereiro, 0) AS fevereiro,
		COALESCE(marco, 0) AS marco,
		COALESCE(abril, 0) AS abril,
		COALESCE(maio, 0) AS maio,
		COALESCE(junho, 0) AS junho,
		COALESCE(julho, 0) AS julho,
		COALESCE(agosto, 0) AS agosto,
		COALESCE(setembro, 0) AS setembro,
		COALESCE(outubro, 0) AS outubro,
		COALESCE(novembro, 0) AS novembro,
		COALESCE(dezembro, 0) AS dezembro
	FROM
		orcamento
	WHERE 1=1`
	args := []any{}

	if f.Department != "" {
		query += ` AND departamento1 = ?`
		args = append(args, f.Department)
	}
	query += `
	ORDER BY
		departamento1, plano, id`

	var rows []PlannedRow
	if err := bs.db.SelectContext(ctx, &rows, bs.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query planned budget: %w", err)
	}
	return rows, nil
}

func (bs *BudgetStore) InsertPlanned(ctx context.Context, rows []PlannedRow) (int64, error) {
	query := `INSERT INTO orcamento (
		plano,
		nome,
		departamento1,
		janeiro,
		fevereiro,
		marco,
		abril,
		maio,
		junho,
		julho,
		agosto,
		setembro,
		outubro,
		novembro,
		dezembro
	) VALUES (
		:plano,
		:nome,
		:departamento1,
		:janeiro,
		:fevereiro,
		:marco,
		:abril,
		:maio,
		:junho,
		:julho,
		:agosto,
		:setembro,
		:outubro,
		:novembro,
		:dezembro
	)`

	n, err := insertAll(ctx, bs.db, query, rows)
	if err != nil {
		return 0, fmt.Errorf("failed to insert planned budget: %w", err)
	}
	return n, nil
}
