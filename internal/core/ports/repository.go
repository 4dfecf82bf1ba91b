package ports

import (
	"context"

	"github.com/rbroggi/randomusersvc/internal/core/model"
)

// Store is the interface for the persistence layer. It keeps exactly one
// row per user id; writes replace the row wholesale.
type Store interface {
	// SaveUser durably saves the user, replacing any existing row with the
	// same id. The row becomes the most recent one in list order.
	SaveUser(ctx context.Context, user *model.User) error

	// DeleteUser removes the user with the given id. Deleting a missing id
	// is a no-op, not a failure.
	DeleteUser(ctx context.Context, id string) error

	// ListUsers returns all users, most recently written first.
	ListUsers(ctx context.Context) ([]model.User, error)

	// GetUser returns the user with the given id, or model.ErrNotFound.
	GetUser(ctx context.Context, id string) (*model.User, error)

	// WatchUsers returns a channel that replays the current list immediately
	// and re-emits the full list after every write or delete. The channel is
	// closed when ctx is cancelled.
	WatchUsers(ctx context.Context) (<-chan []model.User, error)

	// WatchUser behaves like WatchUsers for a single id. A nil element
	// means the id is absent from the store.
	WatchUser(ctx context.Context, id string) (<-chan *model.User, error)
}
