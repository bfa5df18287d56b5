package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Guard composes endpoint metrics with the auth level a route needs
type Guard struct {
	Authn   *Authenticator
	Metrics *HTTPMetrics
}

func (g Guard) Public(endpoint string, h http.HandlerFunc) http.HandlerFunc {
	return g.Metrics.Wrap(endpoint, h)
}

func (g Guard) User(endpoint string, h http.HandlerFunc) http.HandlerFunc {
	return g.Metrics.Wrap(endpoint, g.Authn.Auth(h))
}

func (g Guard) Admin(endpoint string, h http.HandlerFunc) http.HandlerFunc {
	return g.Metrics.Wrap(endpoint, g.Authn.Admin(h))
}

func (g Guard) Optional(endpoint string, h http.HandlerFunc) http.HandlerFunc {
	return g.Metrics.Wrap(endpoint, g.Authn.Optional(h))
}

// Config toggles router wide middleware
type Config struct {
	EnableLogging bool
	EnableTracing bool
}

// RegisterMiddlewares installs router wide middleware; Recovery runs outermost
func RegisterMiddlewares(router *mux.Router, cfg Config) {
	router.Use(Recovery)
	router.Use(RequestID)
	if cfg.EnableTracing {
		router.Use(Tracing("http-request"))
	}
	if cfg.EnableLogging {
		router.Use(Logging)
	}
	router.Use(SecurityHeaders)
}
