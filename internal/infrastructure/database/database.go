package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"saraban-stamp/internal/config"
)

var Module = fx.Module("database",
	fx.Provide(NewDatabase),
	fx.Invoke(registerHooks),
)

const connectTimeout = 10 * time.Second

type Database struct {
	DB     *sql.DB
	logger *zap.Logger
}

// NewDatabase connects to the audit database. It returns a nil Database when
// the database is disabled; the render log is then skipped.
func NewDatabase(cfg *config.Config, logger *zap.Logger) (*Database, error) {
	if !cfg.Database.Enabled {
		logger.Info("Database disabled, render audit log is off")
		return nil, nil
	}

	// Build PostgreSQL connection string
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.DBName,
		cfg.Database.SSLMode,
	)

	db, err := sql.Open(cfg.Database.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Audit writes are small and asynchronous; a few connections suffice.
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connected successfully",
		zap.String("driver", cfg.Database.Driver),
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("dbname", cfg.Database.DBName),
	)

	database := &Database{
		DB:     db,
		logger: logger,
	}

	if err := database.migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return database, nil
}

func registerHooks(lc fx.Lifecycle, db *Database) {
	if db == nil {
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return db.Close()
		},
	})
}

// migrations are idempotent and run in order on every start.
var migrations = []struct {
	name string
	sql  string
}{
	{"create render_logs table", `
	CREATE TABLE IF NOT EXISTS render_logs (
		id BIGSERIAL PRIMARY KEY,
		render_id VARCHAR(36) NOT NULL,
		operation VARCHAR(32) NOT NULL,
		status VARCHAR(16) NOT NULL,
		error_code VARCHAR(32) DEFAULT '',
		page_count INTEGER DEFAULT 0,
		size_bytes INTEGER DEFAULT 0,
		duration_ms BIGINT DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`},
	{"create render_logs created_at index", `
	CREATE INDEX IF NOT EXISTS idx_render_logs_created_at ON render_logs(created_at DESC)`},
	{"create render_logs operation index", `
	CREATE INDEX IF NOT EXISTS idx_render_logs_operation ON render_logs(operation, status)`},
}

func (d *Database) migrate(ctx context.Context) error {
	for _, m := range migrations {
		if _, err := d.DB.ExecContext(ctx, m.sql); err != nil {
			return fmt.Errorf("failed to %s: %w", m.name, err)
		}
	}
	d.logger.Info("Database migrations completed successfully", zap.Int("migrations", len(migrations)))
	return nil
}

func (d *Database) Close() error {
	return d.DB.Close()
}
