package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dfc.db")

	require.NoError(t, Migrate(DriverSQLite, path))
	// second run is a no-op
	require.NoError(t, Migrate(DriverSQLite, path))

	conn, err := New(DriverSQLite, path, 10, 10, "1m")
	require.NoError(t, err)
	defer conn.Close()

	var tables []string
	err = conn.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND name <> 'schema_migrations' ORDER BY name`)
	require.NoError(t, err)
	assert.Equal(t, []string{"departamentos", "dfc_analitica", "ingestion_history", "movimentos_contas", "orcamento"}, tables)
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New("mysql", "whatever", 1, 1, "1m")
	assert.Error(t, err)
}

func TestNewRejectsBadIdleTime(t *testing.T) {
	_, err := New(DriverSQLite, filepath.Join(t.TempDir(), "x.db"), 1, 1, "soon")
	assert.Error(t, err)
}
