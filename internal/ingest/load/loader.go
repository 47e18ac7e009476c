package load

import (
	"context"
	"fmt"

	"github.com/farxc/dfc_dashboard/internal/ingest/converter"
	"github.com/farxc/dfc_dashboard/internal/logger"
	"github.com/farxc/dfc_dashboard/internal/store"
	"github.com/go-gota/gota/dataframe"
)

// LoadDataFrame converts df according to dataset and inserts every row in a
// single transaction. It returns the number of rows written.
func LoadDataFrame(ctx context.Context, dataset string, df dataframe.DataFrame, storage *store.Storage, appLogger *logger.Logger) (int64, error) {
	const component = "Loader"
	appLogger.Info(component, "Starting data load: dataset=%s rows=%d", dataset, df.Nrow())

	var (
		n       int64
		skipped int
		err     error
	)

	switch dataset {
	case store.DatasetLedger:
		var entries []store.Entry
		entries, skipped, err = converter.Entries(df)
		if err == nil {
			n, err = storage.Ledger.InsertEntries(ctx, entries)
		}
	case store.DatasetMovements:
		var movements []store.Movement
		movements, skipped, err = converter.Movements(df)
		if err == nil {
			n, err = storage.Movements.InsertMovements(ctx, movements)
		}
	case store.DatasetBudget:
		var rows []store.PlannedRow
		rows, skipped, err = converter.PlannedRows(df)
		if err == nil {
			n, err = storage.Budget.InsertPlanned(ctx, rows)
		}
	default:
		return 0, fmt.Errorf("unknown dataset %q", dataset)
	}
	if err != nil {
		return 0, err
	}

	if skipped > 0 {
		appLogger.Warn(component, "Skipped incomplete rows: dataset=%s skipped=%d", dataset, skipped)
	}
	appLogger.Info(component, "Data load completed: dataset=%s inserted=%d", dataset, n)
	return n, nil
}
