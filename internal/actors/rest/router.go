package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// NewRouter wires the server API routes.
func NewRouter(userHandler *UserHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())

	v1 := r.Group("/v1")
	{
		v1.POST("/users/random", userHandler.CreateRandomUser)
		v1.GET("/users", userHandler.ListUsers)
		v1.GET("/users/watch", userHandler.WatchUsers)
		v1.GET("/users/:id", userHandler.GetUser)
		v1.GET("/users/:id/watch", userHandler.WatchUser)
		v1.DELETE("/users/:id", userHandler.DeleteUser)
	}

	r.GET("/healthz", Healthz)
	return r
}

// NewWorkerRouter wires the worker routes: health plus the event history.
func NewWorkerRouter(eventsHandler *EventsHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())

	r.GET("/v1/events", eventsHandler.ListEvents)
	r.GET("/healthz", Healthz)
	return r
}

// Healthz is the health endpoint.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "Ok"})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithField("method", c.Request.Method).
			WithField("path", c.Request.URL.Path).
			WithField("status", c.Writer.Status()).
			WithField("duration", time.Since(start).String()).
			Debug("http request")
	}
}
