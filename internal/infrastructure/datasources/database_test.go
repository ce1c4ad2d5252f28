package datasources

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"ahorros.backend/internal/config"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func withHooks(t *testing.T) {
	t.Helper()
	origStd := getStdDB
	origPing := dbPing
	t.Cleanup(func() {
		getStdDB = origStd
		dbPing = origPing
	})
}

func sqliteConfig(t *testing.T) config.DatabaseConfig {
	return config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "ahorros.db"),
	}
}

func TestNewConnection_SQLiteMigrates(t *testing.T) {
	db, err := NewConnection(sqliteConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})

	for _, table := range []string{"users", "user_badges", "events", "user_event_registrations", "deposits"} {
		require.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
	require.NoError(t, Ping(db)(context.Background()))
}

func TestNewConnection_UnsupportedDriver(t *testing.T) {
	db, err := NewConnection(config.DatabaseConfig{Driver: "mysql"})
	require.Error(t, err)
	require.Nil(t, db)
	require.Contains(t, err.Error(), "unsupported database driver")
}

func TestNewConnection_PostgresPingFailure(t *testing.T) {
	withHooks(t)
	dbPing = func(context.Context, *sql.DB) error { return errors.New("connection refused") }

	cfg := config.DatabaseConfig{
		Driver:   config.DriverPostgres,
		Host:     "127.0.0.1",
		Port:     1,
		User:     "x",
		Password: "x",
		DBName:   "x",
		SSLMode:  "disable",
	}
	db, err := NewConnection(cfg)
	require.Error(t, err)
	require.Nil(t, db)
	require.Contains(t, err.Error(), "failed to ping database")
}

func TestNewConnection_StdDBFailure(t *testing.T) {
	withHooks(t)
	getStdDB = func(*gorm.DB) (*sql.DB, error) { return nil, fmt.Errorf("no pool") }

	db, err := NewConnection(sqliteConfig(t))
	require.Error(t, err)
	require.Nil(t, db)
	require.Contains(t, err.Error(), "failed to get generic database object")
}
