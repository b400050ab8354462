package notifier

import (
	"context"

	"adfilter/internal/domain"
)

type Notifier interface {
	Notify(ctx context.Context, s domain.Suppression) error
}
