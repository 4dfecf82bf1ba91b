package ports

import (
	"context"

	"github.com/rbroggi/randomusersvc/internal/core/model"
)

// UserSource is the port towards the remote random-user endpoint.
type UserSource interface {
	// Random draws one random profile. Failure modes are distinguishable
	// through the returned error: transport failures wrap
	// model.ErrUnreachable, error statuses are *model.StatusError, decode
	// failures are plain errors.
	Random(ctx context.Context, query RandomQuery) (*RandomResult, error)
}

// RandomQuery gathers the optional filters for drawing a profile.
type RandomQuery struct {
	// Gender filter. Zero-value omits the parameter.
	Gender string

	// Nationality filter (two-letter lowercase code). Zero-value omits the parameter.
	Nationality string
}

// RandomResult is the decoded source response.
type RandomResult struct {
	// Users is the list of drawn profiles. May be empty.
	Users []model.RemoteUser

	// Info is the optional response metadata. Unused beyond debugging.
	Info *model.SourceInfo
}
