package database

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/junaidrashid-git/sunrise-cafe/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to postgres when url is a postgres DSN, otherwise to a sqlite file at url,
// and migrates the schema.
func Open(url string) (*gorm.DB, error) {
	postgresDSN := strings.HasPrefix(url, "postgres://") ||
		strings.HasPrefix(url, "postgresql://") ||
		strings.HasPrefix(url, "host=")

	var dialector gorm.Dialector
	if postgresDSN {
		dialector = postgres.Open(url)
	} else {
		dialector = sqlite.Open(sqliteDSN(url))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if !postgresDSN {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		// sqlite has a single writer; one connection serializes transactions.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	}

	if err := Migrate(db); err != nil {
		Close(db)
		return nil, err
	}

	slog.Info("Database connected and migrated", "driver", db.Dialector.Name())
	return db, nil
}

// Migrate creates or updates all tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		slog.Error("Failed to close database", "err", err)
	}
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"
}
