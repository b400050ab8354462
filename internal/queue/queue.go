package queue

import (
	"context"

	"adfilter/internal/domain"
)

// Consumer delivers host message events; the handler runs inline, one event
// at a time, which is the host event loop the filter evaluates in.
type Consumer interface {
	Consume(ctx context.Context, handler func(ev domain.MessageEvent) error) error
	Close() error
}

// Publisher emits suppression events for downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, s domain.Suppression) error
	Close() error
}
