package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/rbroggi/randomusersvc/internal/core/ports"
)

const defaultEventsLimit = 50

// EventsHandlerArgs are the mandatory args to instantiate the EventsHandler.
type EventsHandlerArgs struct {
	// Archiver is the user-event history.
	Archiver ports.Archiver
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(args EventsHandlerArgs) *EventsHandler {
	return &EventsHandler{archiver: args.Archiver}
}

// EventsHandler serves the archived user-event history on the worker.
type EventsHandler struct {
	archiver ports.Archiver
}

// ListEvents handles GET /v1/events, most recent events first.
func (h *EventsHandler) ListEvents(c *gin.Context) {
	limit := defaultEventsLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	events, err := h.archiver.RecentEvents(c.Request.Context(), limit)
	if err != nil {
		log.WithError(err).Error("error listing archived events")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}
