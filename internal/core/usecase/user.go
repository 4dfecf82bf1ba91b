package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/rbroggi/randomusersvc/internal/core/model"
	"github.com/rbroggi/randomusersvc/internal/core/ports"
)

// UserServiceArgs contains the mandatory arguments for the UserService.
type UserServiceArgs struct {
	// Source is the remote random-user endpoint.
	Source ports.UserSource

	// Store is the local store for persistence operations.
	Store ports.Store
}

// UserServiceOptArgs are the optional arguments for building a UserService.
type UserServiceOptArgs = func(*UserService)

// WithSender makes the service publish a UserEvent after every effective
// write or delete. Publishing is best-effort: a failure is logged, never
// surfaced to the caller, since the store write already happened.
func WithSender(sender ports.Sender) UserServiceOptArgs {
	return func(s *UserService) {
		s.sender = sender
	}
}

// NewUserService creates a new UserService.
func NewUserService(args UserServiceArgs, optArgs ...UserServiceOptArgs) *UserService {
	s := &UserService{source: args.Source, store: args.Store}
	for _, opt := range optArgs {
		opt(s)
	}
	return s
}

// UserService orchestrates the random-user source and the local store. It
// holds no state of its own; all state lives in the store, and concurrent
// calls are independent.
type UserService struct {
	source ports.UserSource
	store  ports.Store
	sender ports.Sender
}

// FetchAndSave draws one random profile matching the optional filters,
// upserts it into the store and returns it. Exactly one user is persisted
// per call: only the first result of the source response is consumed.
// Every failure is translated into a *model.FetchError of one of the
// closed kinds; no other error type escapes.
//
// On success the returned user is the very record that was written - there
// is no re-read, hence no race with concurrent writes.
func (s *UserService) FetchAndSave(ctx context.Context, args model.FetchAndSaveArgs) (model.User, error) {
	res, err := s.source.Random(ctx, ports.RandomQuery{Gender: args.Gender, Nationality: args.Nationality})
	if err != nil {
		return model.User{}, translateSourceError(err)
	}

	if len(res.Users) == 0 {
		return model.User{}, model.NewFetchError(model.FetchErrNoData, nil)
	}

	user, ok := res.Users[0].User()
	if !ok {
		return model.User{}, model.NewFetchError(model.FetchErrInvalidData, nil)
	}

	before, err := s.store.GetUser(ctx, user.ID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.NewFetchError(model.FetchErrUnexpected, fmt.Errorf("reading previous state: %w", err))
	}

	if err := s.store.SaveUser(ctx, &user); err != nil {
		return model.User{}, model.NewFetchError(model.FetchErrUnexpected, fmt.Errorf("saving user in store: %w", err))
	}

	after := user
	s.publish(ctx, model.UserEvent{ID: uuid.NewString(), Before: before, After: &after})

	return user, nil
}

// Users returns a snapshot of all cached users, most recently written first.
func (s *UserService) Users(ctx context.Context) ([]model.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users on the store: %w", err)
	}
	return users, nil
}

// User returns the cached user with the given id, or model.ErrNotFound.
func (s *UserService) User(ctx context.Context, id string) (*model.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error reading user from store: %w", err)
	}
	return user, nil
}

// WatchUsers subscribes to the full list. The channel replays the current
// list immediately, re-emits after every write or delete, and only closes
// when ctx is cancelled.
func (s *UserService) WatchUsers(ctx context.Context) (<-chan []model.User, error) {
	ch, err := s.store.WatchUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error watching users on the store: %w", err)
	}
	return ch, nil
}

// WatchUser subscribes to a single id. A nil element means the id is
// absent. Same liveness contract as WatchUsers.
func (s *UserService) WatchUser(ctx context.Context, id string) (<-chan *model.User, error) {
	ch, err := s.store.WatchUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error watching user on the store: %w", err)
	}
	return ch, nil
}

// DeleteUser removes the user with the given id. Deleting a missing id is
// a no-op and publishes no event.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	before, err := s.store.GetUser(ctx, id)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("error reading user from store: %w", err)
	}

	if err := s.store.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("error deleting user from store: %w", err)
	}

	if before != nil {
		s.publish(ctx, model.UserEvent{ID: uuid.NewString(), Before: before})
	}
	return nil
}

func (s *UserService) publish(ctx context.Context, event model.UserEvent) {
	if s.sender == nil {
		return
	}
	if err := s.sender.Send(ctx, event); err != nil {
		log.WithError(err).WithField("event-id", event.ID).Error("error publishing user event")
	}
}

// translateSourceError maps source failures onto the closed taxonomy:
// transport failures become NETWORK, error statuses become SERVER with the
// status embedded, everything else becomes UNEXPECTED.
func translateSourceError(err error) *model.FetchError {
	var statusErr *model.StatusError
	if errors.As(err, &statusErr) {
		return model.NewServerFetchError(statusErr.Status, err)
	}
	if errors.Is(err, model.ErrUnreachable) {
		return model.NewFetchError(model.FetchErrNetwork, err)
	}
	return model.NewFetchError(model.FetchErrUnexpected, err)
}
