package datasources

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ahorros.backend/internal/config"
	"ahorros.backend/internal/infrastructure/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	openPostgres = func(dsn string) gorm.Dialector {
		return postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		})
	}
	openSQLite = sqlite.Open
	getStdDB   = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
	dbPing     = func(ctx context.Context, db *sql.DB) error { return db.PingContext(ctx) }
)

// NewConnection opens the configured database, checks it answers and migrates the schema
func NewConnection(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = openPostgres(cfg.URL())
	case config.DriverSQLite:
		dialector = openSQLite(cfg.URL())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError:       true,
		PrepareStmt:          false,
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to get generic database object: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPing(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := Migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Ping reports whether the database answers
func Ping(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := getStdDB(db)
		if err != nil {
			return err
		}
		return dbPing(ctx, sqlDB)
	}
}
