package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type DepartmentStore struct {
	db *sqlx.DB
}

func (ds *DepartmentStore) List(ctx context.Context) ([]Department, error) {
	var rows []Department
	err := ds.db.SelectContext(ctx, &rows, `SELECT id_dep, nome_dep FROM departamentos ORDER BY nome_dep`)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	return rows, nil
}
