// Command server runs the boarding-house registration and compliance portal.
// main wires dependencies and owns the process lifecycle; business logic lives
// in the internal services.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"bahay/internal/audit"
	auditkafka "bahay/internal/audit/kafka"
	auditstore "bahay/internal/audit/store"
	auditworker "bahay/internal/audit/worker"
	"bahay/internal/auth"
	authhandler "bahay/internal/auth/handler"
	authstore "bahay/internal/auth/store"
	househandler "bahay/internal/house/handler"
	housemetrics "bahay/internal/house/metrics"
	houseservice "bahay/internal/house/service"
	housestore "bahay/internal/house/store"
	"bahay/internal/notification"
	notifhandler "bahay/internal/notification/handler"
	notifmetrics "bahay/internal/notification/metrics"
	notifstore "bahay/internal/notification/store"
	"bahay/internal/platform/config"
	"bahay/internal/platform/httpserver"
	"bahay/internal/platform/logger"
	platformmetrics "bahay/internal/platform/metrics"
	"bahay/internal/platform/postgres"
	platformredis "bahay/internal/platform/redis"
	"bahay/internal/room"
	roomhandler "bahay/internal/room/handler"
	roomstore "bahay/internal/room/store"
)

const (
	auditBuffer     = 256
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage. Without a database URL the portal runs entirely in memory,
	// which is only useful for local development.
	var (
		userStore  auth.UserStore
		houseStore interface {
			houseservice.HouseStore
			room.HouseReader
		}
		roomStore  room.Store
		notifStore notification.Store
		auditSink  audit.Sink
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			log.Error("database migration failed", "error", err)
			os.Exit(1)
		}
		userStore = authstore.NewPostgres(db)
		houseStore = housestore.NewPostgres(db)
		roomStore = roomstore.NewPostgres(db)
		notifStore = notifstore.NewPostgres(db)
		auditSink = auditstore.NewPostgres(db)
	} else {
		log.Warn("BAHAY_DATABASE_URL not set, using in-memory storage")
		userStore = authstore.NewInMemory()
		houseStore = housestore.NewInMemory()
		roomStore = roomstore.NewInMemory()
		notifStore = notifstore.NewInMemory()
		auditSink = auditstore.NewInMemory()
	}

	// Optional Redis cache for unread counters.
	var notifOpts []notification.Option
	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		cache := notifstore.NewRedisUnreadCache(redisClient.Client, cfg.UnreadCacheTTL, log)
		notifOpts = append(notifOpts, notification.WithUnreadCache(cache))
	}

	// Audit pipeline: channel publisher, fan-out worker, optional Kafka
	// mirror.
	auditPub, inbox := audit.NewPublisher(auditBuffer, log)
	sinks := []audit.Sink{auditSink}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := auditkafka.New(ctx, cfg.KafkaBrokers, cfg.KafkaTopic, log)
		if err != nil {
			log.Error("kafka connection failed", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()
		sinks = append(sinks, kafkaSink)
	}
	worker := auditworker.New(inbox, log, sinks...)

	// Services.
	tokens := auth.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.TokenTTL)
	authSvc := auth.New(userStore, tokens, log, auth.WithAuditPublisher(auditPub))
	notifOpts = append(notifOpts, notification.WithMetrics(notifmetrics.New()))
	notifSvc := notification.New(notifStore, log, notifOpts...)
	houseSvc := houseservice.New(houseStore, log,
		houseservice.WithNotifier(notifSvc),
		houseservice.WithAuditPublisher(auditPub),
		houseservice.WithMetrics(housemetrics.New()),
	)
	roomSvc := room.New(roomStore, houseStore, log)

	router := newRouter(routerDeps{
		logger:        log,
		metrics:       platformmetrics.New(),
		authenticator: authSvc,
		auth:          authhandler.New(authSvc, log),
		houses:        househandler.New(houseSvc, log),
		rooms:         roomhandler.New(roomSvc, log),
		notifications: notifhandler.New(notifSvc, log),
		health: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		},
	})
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := worker.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
