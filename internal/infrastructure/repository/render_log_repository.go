package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"saraban-stamp/internal/domain/entity"
	domainrepo "saraban-stamp/internal/domain/repository"
	"saraban-stamp/internal/infrastructure/database"
)

type renderLogRepository struct {
	db     *database.Database
	logger *zap.Logger
}

// NewRenderLogRepository creates the render audit log repository. With a nil
// database, Save discards entries and FindRecent returns nothing.
func NewRenderLogRepository(db *database.Database, logger *zap.Logger) domainrepo.RenderLogRepository {
	return &renderLogRepository{
		db:     db,
		logger: logger,
	}
}

// Save saves a render log entry to the database
func (r *renderLogRepository) Save(ctx context.Context, log *entity.RenderLog) error {
	if r.db == nil {
		return nil
	}

	query := `
		INSERT INTO render_logs (render_id, operation, status, error_code, page_count, size_bytes, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.DB.QueryRowContext(ctx, query,
		log.RenderID,
		log.Operation,
		log.Status,
		log.ErrorCode,
		log.PageCount,
		log.SizeBytes,
		log.Duration,
		log.CreatedAt,
	).Scan(&log.ID)

	if err != nil {
		r.logger.Error("Failed to save render log",
			zap.String("render_id", log.RenderID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to save render log: %w", err)
	}

	return nil
}

// FindRecent returns the newest render log entries first
func (r *renderLogRepository) FindRecent(ctx context.Context, limit int) ([]entity.RenderLog, error) {
	if r.db == nil {
		return []entity.RenderLog{}, nil
	}

	query := `
		SELECT id, render_id, operation, status, error_code, page_count, size_bytes, duration_ms, created_at
		FROM render_logs
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	rows, err := r.db.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query render logs: %w", err)
	}
	defer rows.Close()

	logs := []entity.RenderLog{}
	for rows.Next() {
		var log entity.RenderLog
		if err := rows.Scan(
			&log.ID,
			&log.RenderID,
			&log.Operation,
			&log.Status,
			&log.ErrorCode,
			&log.PageCount,
			&log.SizeBytes,
			&log.Duration,
			&log.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan render log: %w", err)
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read render logs: %w", err)
	}

	return logs, nil
}
