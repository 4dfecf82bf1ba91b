package ports

import (
	"context"

	"github.com/rbroggi/randomusersvc/internal/core/model"
)

// Archiver is the port for the durable user-event history.
type Archiver interface {
	// Archive appends the event to the history.
	Archive(ctx context.Context, event model.UserEvent) error

	// RecentEvents returns up to limit archived events, most recent first.
	RecentEvents(ctx context.Context, limit int) ([]model.UserEvent, error)
}
