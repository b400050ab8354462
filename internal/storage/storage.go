package storage

import (
	"context"

	"adfilter/internal/domain"
)

type SuppressionRepository interface {
	Save(ctx context.Context, s domain.Suppression) error
	FindRecent(ctx context.Context, limit int) ([]domain.Suppression, error)
	Stats(ctx context.Context) (Stats, error)
}

// Stats summarizes the audit log for the dashboard.
type Stats struct {
	Total     int
	Chats     int
	Recent24h int
}
