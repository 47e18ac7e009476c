package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("record not found")

type IngestionHistoryStore struct {
	db *sqlx.DB
}

var (
	DatasetLedger    = "ledger"
	DatasetMovements = "movements"
	DatasetBudget    = "budget"
)

var (
	TriggerTypeManual    = "manual"
	TriggerTypeScheduled = "scheduled"
)

var (
	StatusInProgress = "in_progress"
	StatusSuccess    = "success"
	StatusFailure    = "failure"
)

func (ih *IngestionHistoryStore) InsertIngestionHistory(ctx context.Context, history *IngestionHistory) error {
	query := `INSERT INTO ingestion_history (
		batch_id,
		dataset,
		source_file,
		trigger_type,
		status,
		rows_loaded
	) VALUES (
		:batch_id,
		:dataset,
		:source_file,
		:trigger_type,
		:status,
		:rows_loaded
	) RETURNING id, processed_at`

	// NamedQuery instead of NamedExec so the generated id and timestamp come back.
	rows, err := sqlx.NamedQueryContext(ctx, ih.db, query, history)
	if err != nil {
		return fmt.Errorf("failed to insert ingestion history: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&history.ID, &history.ProcessedAt); err != nil {
			return fmt.Errorf("failed to scan ingestion history: %w", err)
		}
	}
	return rows.Err()
}

func (ih *IngestionHistoryStore) GetLatest(ctx context.Context, limit int) ([]IngestionHistory, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
	SELECT
		id,
		batch_id,
		dataset,
		COALESCE(source_file, '') AS source_file,
		trigger_type,
		status,
		rows_loaded,
		processed_at
	FROM
		ingestion_history
	ORDER BY
		processed_at DESC, id DESC
	LIMIT ?`

	var rows []IngestionHistory
	if err := ih.db.SelectContext(ctx, &rows, ih.db.Rebind(query), limit); err != nil {
		return nil, fmt.Errorf("failed to query ingestion history: %w", err)
	}
	return rows, nil
}

func (ih *IngestionHistoryStore) UpdateIngestionStatus(ctx context.Context, id int64, status string, rowsLoaded int64) error {
	query := `UPDATE ingestion_history SET status = ?, rows_loaded = ? WHERE id = ?`

	result, err := ih.db.ExecContext(ctx, ih.db.Rebind(query), status, rowsLoaded, id)
	if err != nil {
		return fmt.Errorf("failed to update ingestion status: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("ingestion history %d: %w", id, ErrNotFound)
	}
	return nil
}
