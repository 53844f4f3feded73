package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "bahay/internal/auth/handler"
	househandler "bahay/internal/house/handler"
	notifhandler "bahay/internal/notification/handler"
	roomhandler "bahay/internal/room/handler"
	"bahay/internal/platform/middleware"
	platformmetrics "bahay/internal/platform/metrics"
)

const requestTimeout = 60 * time.Second

type routerDeps struct {
	logger        *slog.Logger
	metrics       *platformmetrics.Metrics
	authenticator middleware.Authenticator
	auth          *authhandler.Handler
	houses        *househandler.Handler
	rooms         *roomhandler.Handler
	notifications *notifhandler.Handler
	health        http.HandlerFunc
}

// newRouter assembles the middleware chain and mounts every module's routes.
func newRouter(deps routerDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Device)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Latency(deps.metrics))
	r.Use(chimw.Timeout(requestTimeout))

	r.Get("/healthz", deps.health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	deps.auth.Register(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.authenticator, deps.logger))
		deps.houses.Register(r)
		deps.rooms.Register(r)
		deps.notifications.Register(r)
	})

	return r
}
