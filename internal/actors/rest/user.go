package rest

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/rbroggi/randomusersvc/internal/core/model"
)

// userUsecase is the slice of the user service consumed by the handlers.
type userUsecase interface {
	FetchAndSave(ctx context.Context, args model.FetchAndSaveArgs) (model.User, error)
	Users(ctx context.Context) ([]model.User, error)
	User(ctx context.Context, id string) (*model.User, error)
	WatchUsers(ctx context.Context) (<-chan []model.User, error)
	WatchUser(ctx context.Context, id string) (<-chan *model.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// UserHandlerArgs are the mandatory args to instantiate the UserHandler.
type UserHandlerArgs struct {
	// Usecase is the user service.
	Usecase userUsecase
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(args UserHandlerArgs) *UserHandler {
	return &UserHandler{usecase: args.Usecase}
}

// UserHandler implements the HTTP endpoints of the user API.
type UserHandler struct {
	usecase userUsecase
}

// CreateRandomUser handles POST /v1/users/random. One call persists and
// returns exactly one user.
func (h *UserHandler) CreateRandomUser(c *gin.Context) {
	gender := c.Query("gender")
	nat := c.Query("nat")
	if !model.ValidGender(gender) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "unknown gender value"})
		return
	}
	if !model.ValidNationality(nat) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "unknown nationality code"})
		return
	}

	user, err := h.usecase.FetchAndSave(c.Request.Context(), model.FetchAndSaveArgs{Gender: gender, Nationality: nat})
	if err != nil {
		log.WithError(err).Error("error invoking usecase FetchAndSave")
		status, kind := fetchErrorStatus(err)
		c.JSON(status, gin.H{"kind": kind, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ListUsers handles GET /v1/users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.usecase.Users(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("error invoking usecase Users")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetUser handles GET /v1/users/:id.
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.usecase.User(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
			return
		}
		log.WithError(err).Error("error invoking usecase User")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeleteUser handles DELETE /v1/users/:id. Deleting a missing id succeeds.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.usecase.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		log.WithError(err).Error("error invoking usecase DeleteUser")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	c.Status(http.StatusNoContent)
}

// WatchUsers handles GET /v1/users/watch: an SSE stream of UI states. The
// current list is replayed on connect and a fresh state is pushed after
// every write or delete, until the client disconnects.
func (h *UserHandler) WatchUsers(c *gin.Context) {
	ctx := c.Request.Context()
	ch, err := h.usecase.WatchUsers(ctx)
	if err != nil {
		log.WithError(err).Error("error invoking usecase WatchUsers")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	sseHeaders(c)
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case users, ok := <-ch:
			if !ok {
				// the subscription ended while the client is still here:
				// surface an explicit error state instead of going silent.
				if ctx.Err() == nil {
					c.SSEvent("state", model.Errored("Error loading users"))
				}
				return false
			}
			c.SSEvent("state", listState(users))
			return true
		}
	})
}

// WatchUser handles GET /v1/users/:id/watch, the per-user SSE stream.
func (h *UserHandler) WatchUser(c *gin.Context) {
	ctx := c.Request.Context()
	ch, err := h.usecase.WatchUser(ctx, c.Param("id"))
	if err != nil {
		log.WithError(err).Error("error invoking usecase WatchUser")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	sseHeaders(c)
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case user, ok := <-ch:
			if !ok {
				if ctx.Err() == nil {
					c.SSEvent("state", model.Errored("Error loading user"))
				}
				return false
			}
			c.SSEvent("state", userState(user))
			return true
		}
	})
}

// listState maps a list emission onto the closed UI-state set.
func listState(users []model.User) model.UiState {
	if len(users) == 0 {
		return model.Empty("No users yet")
	}
	return model.Success(users)
}

// userState maps a per-user emission onto the closed UI-state set.
func userState(user *model.User) model.UiState {
	if user == nil {
		return model.Empty("User not found")
	}
	return model.Success(user)
}

func sseHeaders(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
}

// fetchErrorStatus maps the closed fetch-error taxonomy onto HTTP statuses.
func fetchErrorStatus(err error) (int, model.FetchErrorKind) {
	var fetchErr *model.FetchError
	if !errors.As(err, &fetchErr) {
		return http.StatusInternalServerError, model.FetchErrUnexpected
	}
	switch fetchErr.Kind {
	case model.FetchErrNetwork, model.FetchErrServer:
		return http.StatusBadGateway, fetchErr.Kind
	case model.FetchErrNoData:
		return http.StatusNotFound, fetchErr.Kind
	case model.FetchErrInvalidData:
		return http.StatusUnprocessableEntity, fetchErr.Kind
	default:
		return http.StatusInternalServerError, fetchErr.Kind
	}
}
