package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"rental_admin/internal/apiclient"
	"rental_admin/internal/config"
	"rental_admin/internal/controllers"
	"rental_admin/internal/events"
	"rental_admin/internal/export"
	"rental_admin/internal/listing"
	"rental_admin/internal/logger"
	"rental_admin/internal/metrics"
	"rental_admin/internal/middleware"
	"rental_admin/internal/routes"
	"rental_admin/internal/session"
)

const purgeInterval = 5 * time.Minute

func main() {
	cfg := config.Load()

	// Initialize structured logging to file
	logger.Setup(cfg.LogFile, cfg.LogLevel)

	if loc, err := time.LoadLocation(cfg.DisplayTimezone); err != nil {
		logrus.WithError(err).WithField("timezone", cfg.DisplayTimezone).Warn("Unknown DISPLAY_TIMEZONE, showing dates in IST")
	} else {
		export.SetLocation(loc)
	}

	store, closeStore, err := openSessionStore(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to open session store")
	}
	defer closeStore()

	m := metrics.New()
	api := apiclient.New(cfg.APIBaseURL, cfg.UpstreamTimeout,
		apiclient.WithRateLimit(cfg.UpstreamRPS),
		apiclient.WithMetrics(m),
	)

	views := listing.NewRegistry()
	sessions := session.NewManager(store, cfg.SessionTTL)
	sessions.OnDestroy(views.DropSession)

	hub := events.NewHub(100, func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return len(cfg.CORSOrigins) == 0 || origin == "" || slices.Contains(cfg.CORSOrigins, origin)
	})

	tokens := middleware.NewTokenIssuer(cfg.JWTSecret)
	h := controllers.NewHandler(controllers.Deps{
		API:         api,
		Sessions:    sessions,
		Tokens:      tokens,
		Views:       views,
		Hub:         hub,
		Metrics:     m,
		ExportLimit: cfg.ExportConcurrency,
	})

	r := routes.SetupRouter(h, middleware.RequireSession(tokens, sessions), m.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           middleware.EnableCORS(cfg.CORSOrigins, r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go purgeSessions(ctx, sessions, views)

	go func() {
		logrus.WithFields(logrus.Fields{
			"addr":     srv.Addr,
			"upstream": cfg.APIBaseURL,
			"sessions": cfg.SessionStore,
		}).Info("🚀 Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Server failed")
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Graceful shutdown failed")
	}
	hub.Close()
}

// openSessionStore picks the session backend named by SESSION_STORE.
func openSessionStore(cfg config.Config) (session.Store, func(), error) {
	switch cfg.SessionStore {
	case "", "memory":
		return session.NewMemoryStore(), func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("connecting to redis at %s: %w", cfg.RedisAddr, err)
		}
		return session.NewRedisStore(client), func() { client.Close() }, nil
	case "postgres":
		db, err := config.InitDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return session.NewGormStore(db), closeDB, nil
	default:
		return nil, nil, fmt.Errorf("unknown SESSION_STORE %q", cfg.SessionStore)
	}
}

// purgeSessions periodically sweeps expired sessions and releases list
// views whose session is gone, e.g. expired by a redis TTL.
func purgeSessions(ctx context.Context, sessions *session.Manager, views *listing.Registry) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sessions.Purge(ctx)
			if err != nil {
				logrus.WithError(err).Warn("Session purge failed")
				continue
			}
			if n > 0 {
				logrus.WithField("count", n).Info("Purged expired sessions")
			}
			for _, id := range views.SessionIDs() {
				if _, err := sessions.Get(ctx, id); errors.Is(err, session.ErrNotFound) {
					views.DropSession(id)
				}
			}
		}
	}
}
