package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/farxc/dfc_dashboard/internal/ingest/files"
	"github.com/farxc/dfc_dashboard/internal/ingest/load"
	"github.com/farxc/dfc_dashboard/internal/logger"
	"github.com/farxc/dfc_dashboard/internal/store"
	"github.com/google/uuid"
)

type ingestOptions struct {
	dataset  string
	file     string
	encoding string
	trigger  string
	tmpDir   string
}

// sourceFiles expands a .zip export into its CSV members.
func sourceFiles(opts ingestOptions, batchID string, appLogger *logger.Logger) ([]string, func(), error) {
	if !strings.EqualFold(filepath.Ext(opts.file), ".zip") {
		return []string{opts.file}, func() {}, nil
	}

	dest := filepath.Join(opts.tmpDir, batchID)
	paths, err := files.UnzipCSV(opts.file, dest, appLogger)
	cleanup := func() {
		if err := os.RemoveAll(dest); err != nil {
			appLogger.Warn("TempCleaner", "Failed to clear temp dir: dir=%s error=%v", dest, err)
		}
	}
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	if len(paths) == 0 {
		cleanup()
		return nil, func() {}, fmt.Errorf("no csv file inside %s", opts.file)
	}
	return paths, cleanup, nil
}

// ingest loads one export and records the run in ingestion_history. The
// history row is written first as in_progress and always finalised.
func ingest(ctx context.Context, storage *store.Storage, opts ingestOptions, appLogger *logger.Logger) (*store.IngestionHistory, error) {
	const component = "Ingest"

	history := &store.IngestionHistory{
		BatchID:     uuid.NewString(),
		Dataset:     opts.dataset,
		SourceFile:  filepath.Base(opts.file),
		TriggerType: opts.trigger,
		Status:      store.StatusInProgress,
	}
	if err := storage.IngestionHistory.InsertIngestionHistory(ctx, history); err != nil {
		return nil, err
	}
	appLogger.Info(component, "Ingestion started: batch=%s dataset=%s file=%s", history.BatchID, opts.dataset, opts.file)

	total, err := loadFiles(ctx, storage, opts, history.BatchID, appLogger)

	history.RowsLoaded = total
	history.Status = store.StatusSuccess
	if err != nil {
		history.Status = store.StatusFailure
	}
	if uerr := storage.IngestionHistory.UpdateIngestionStatus(ctx, history.ID, history.Status, total); uerr != nil {
		appLogger.Error(component, "Failed to update ingestion history: batch=%s error=%v", history.BatchID, uerr)
	}
	return history, err
}

func loadFiles(ctx context.Context, storage *store.Storage, opts ingestOptions, batchID string, appLogger *logger.Logger) (int64, error) {
	paths, cleanup, err := sourceFiles(opts, batchID, appLogger)
	if err != nil {
		return 0, err
	}
	defer cleanup()

	var total int64
	for _, path := range paths {
		df, err := files.OpenFileAndDecode(path, opts.encoding)
		if err != nil {
			return total, err
		}
		n, err := load.LoadDataFrame(ctx, opts.dataset, df, storage, appLogger)
		if err != nil {
			return total, fmt.Errorf("failed to load %s: %w", filepath.Base(path), err)
		}
		total += n
	}
	return total, nil
}
