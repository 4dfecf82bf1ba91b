package usecase

import (
	"context"
	"fmt"

	"github.com/rbroggi/randomusersvc/internal/core/model"
	"github.com/rbroggi/randomusersvc/internal/core/ports"
)

// NewInformer builds a new informer.
func NewInformer(archiver ports.Archiver) *Informer {
	return &Informer{archiver: archiver}
}

// Informer consumes user change events and appends them to the durable
// history. Events that carry no effective change are dropped.
type Informer struct {
	archiver ports.Archiver
}

func (i *Informer) Handle(ctx context.Context, userEvent model.UserEvent) error {

	// a replacement that changed nothing is not worth keeping in the history.
	// This happens when the source returns the same uuid twice in a row.
	if eventsAreEqual(userEvent.Before, userEvent.After) {
		return nil
	}

	if err := i.archiver.Archive(ctx, userEvent); err != nil {
		return fmt.Errorf("error archiving user event ID [%s]: %w", userEvent.ID, err)
	}

	return nil
}

func eventsAreEqual(before *model.User, after *model.User) bool {
	if before == nil && after == nil {
		return true
	}
	if before == nil && after != nil {
		return false
	}
	if before != nil && after == nil {
		return false
	}
	return *before == *after
}
