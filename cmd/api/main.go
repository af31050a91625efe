package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	v1 "github.com/1mmey/SecurityChat/cmd/api/router/v1"
	"github.com/1mmey/SecurityChat/internal/infrastructure/auth"
	cacheAdapter "github.com/1mmey/SecurityChat/internal/infrastructure/cache/adapter"
	"github.com/1mmey/SecurityChat/internal/infrastructure/database"
	queueAdapter "github.com/1mmey/SecurityChat/internal/infrastructure/queue/adapter"
	"github.com/1mmey/SecurityChat/internal/infrastructure/realtime"
	contactAdapter "github.com/1mmey/SecurityChat/internal/pkg/contacts/persistence/repository/adapter"
	msgtask "github.com/1mmey/SecurityChat/internal/pkg/messaging/application/task"
	msgusecase "github.com/1mmey/SecurityChat/internal/pkg/messaging/application/usecase"
	messagingHTTP "github.com/1mmey/SecurityChat/internal/pkg/messaging/presentation/http"
	"github.com/1mmey/SecurityChat/internal/pkg/presence"
	presenceAdapter "github.com/1mmey/SecurityChat/internal/pkg/presence/persistence/adapter"
	presencetask "github.com/1mmey/SecurityChat/internal/pkg/presence/task"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Warn(".env file not found or could not be loaded")
	}
	configureLogging()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to the database on startup
	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := database.NewPoolFromEnv(connectCtx)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	defer pool.Close()

	if err := database.Bootstrap(connectCtx, pool); err != nil {
		logrus.WithError(err).Fatal("failed to bootstrap schema")
	}

	cache, err := cacheAdapter.NewRedisAdapter()
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to redis")
	}
	defer cache.Close()

	queueClient, err := queueAdapter.NewAsynqClientFromEnv()
	if err != nil {
		logrus.WithError(err).Fatal("failed to create queue client")
	}
	defer queueClient.Close()

	queueServer, err := queueAdapter.NewAsynqServer()
	if err != nil {
		logrus.WithError(err).Fatal("failed to create queue server")
	}
	scheduler, err := queueAdapter.NewAsynqScheduler()
	if err != nil {
		logrus.WithError(err).Fatal("failed to create scheduler")
	}

	issuer, err := auth.NewTokenIssuerFromEnv()
	if err != nil {
		logrus.WithError(err).Fatal("failed to configure token issuer")
	}

	// Presence: in-memory session registry, durable flags, periodic sweep.
	registry := realtime.NewRegistry()
	defer registry.Close()
	store := presenceAdapter.NewPgPresenceStore(pool)
	tracker := presence.NewTracker(registry, store)
	reconciler := presence.NewReconciler(store, sweepInterval(), heartbeatTimeout())

	policy := messagingPolicy(pool)

	// Background workers share the live delivery path with the HTTP layer.
	msgtask.RegisterSendMessageTask(queueServer, messagingHTTP.NewSendMessageUseCase(pool, tracker, policy))
	if err := presencetask.RegisterSweepTask(queueServer, scheduler, reconciler, sweepInterval()); err != nil {
		logrus.WithError(err).Fatal("failed to schedule presence sweep")
	}

	go func() {
		if err := queueServer.Run(ctx); err != nil {
			logrus.WithError(err).Error("queue server stopped")
			stop()
		}
	}()
	go func() {
		if err := scheduler.Run(ctx); err != nil {
			logrus.WithError(err).Error("scheduler stopped")
			stop()
		}
	}()

	r := gin.Default()
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	v1.RegisterRoutes(r, pool, cache, queueClient, issuer, tracker, policy)

	srv := &http.Server{
		Addr:    listenAddr(),
		Handler: r,
	}
	go func() {
		logrus.WithField("addr", srv.Addr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("http shutdown failed")
	}
}

func configureLogging() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logrus.SetLevel(lvl)
	}
}

func listenAddr() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}

// messagingPolicy picks the authorization rule for sends. The default lets
// any two users message; MESSAGING_POLICY=contacts restricts sends to
// accepted contacts.
func messagingPolicy(pool *pgxpool.Pool) msgusecase.Policy {
	if strings.EqualFold(os.Getenv("MESSAGING_POLICY"), "contacts") {
		return msgusecase.ContactsPolicy{Contacts: contactAdapter.NewPgContactRepository(pool)}
	}
	return msgusecase.AllowAllPolicy{}
}

func sweepInterval() time.Duration {
	return envSeconds("PRESENCE_SWEEP_SECONDS", presence.DefaultSweepInterval)
}

func heartbeatTimeout() time.Duration {
	return envSeconds("PRESENCE_TIMEOUT_SECONDS", presence.DefaultHeartbeatTimeout)
}

func envSeconds(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return fallback
}
