package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"nagoyameshi/billing"
	"nagoyameshi/cache"
	"nagoyameshi/config"
	"nagoyameshi/events"
	"nagoyameshi/storage"
)

const servicesKey = "services"

// Services are the collaborators handlers need besides the database.
type Services struct {
	Config  config.Configuration
	Log     *logrus.Logger
	Billing *billing.Service
	Events  events.Publisher
	Home    *cache.HomeCache
	Images  *storage.ImageStore
}

func SetServicesToContext(s *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(servicesKey, s)
		c.Next()
	}
}

// ServicesInstance never returns nil; a bare Services is used when none was set.
func ServicesInstance(c *gin.Context) *Services {
	if v, ok := c.Get(servicesKey); ok {
		if s, ok := v.(*Services); ok && s != nil {
			return s
		}
	}
	return &Services{Log: logrus.StandardLogger(), Events: events.Noop{}}
}

func (s *Services) logger() *logrus.Logger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}

func (s *Services) emit(c *gin.Context, e events.Event) {
	events.Emit(c.Request.Context(), s.Events, s.logger(), e)
}

// invalidateHome drops the cached landing page after a catalogue change.
func (s *Services) invalidateHome(c *gin.Context) {
	if err := s.Home.Invalidate(c.Request.Context()); err != nil {
		s.logger().WithError(err).Warn("home cache invalidate failed")
	}
}
