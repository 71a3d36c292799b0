package repository

import (
	"context"

	"saraban-stamp/internal/domain/entity"
)

type RenderLogRepository interface {
	// Save stores one audit entry
	Save(ctx context.Context, log *entity.RenderLog) error

	// FindRecent returns the newest entries first
	FindRecent(ctx context.Context, limit int) ([]entity.RenderLog, error)
}
