package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wedding-gateway/config"
	"wedding-gateway/internal/auth"
	"wedding-gateway/internal/database"
	"wedding-gateway/internal/gateway"
	"wedding-gateway/internal/handler"
	"wedding-gateway/internal/metrics"
	"wedding-gateway/internal/notify"
	"wedding-gateway/internal/queue"
	"wedding-gateway/internal/repository"
	"wedding-gateway/internal/storage"
	"wedding-gateway/internal/worker"
	"wedding-gateway/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	shutdownTimeout   = 10 * time.Second
	memoryQueueBuffer = 100
)

func main() {
	defer logger.Sync()
	log := logger.WithComponent("main")

	cfg := config.LoadConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	deps := gateway.Deps{Metrics: metrics.NewPrometheusRecorder(reg)}

	if cfg.Backend.Configured() {
		deps.Auth = auth.NewGoTrueClient(cfg.Backend.URL, cfg.Backend.AnonKey, nil)
	} else {
		log.Error("backend not configured, auth operations will be refused",
			zap.Bool("url_set", cfg.Backend.URL != ""),
			zap.Bool("anon_key_set", cfg.Backend.AnonKey != ""),
		)
	}

	if cfg.Storage.Configured() && cfg.Backend.URL != "" {
		store, err := storage.NewS3ObjectStore(ctx, cfg.Storage, cfg.Backend.URL)
		if err != nil {
			log.Error("object storage unavailable", zap.Error(err))
		} else {
			deps.Store = store
		}
	} else {
		log.Error("object storage not configured, photo uploads will be refused")
	}

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Error("database unavailable, record operations will be refused", zap.Error(err))
	} else {
		defer pool.Close()
		wireRepositories(&deps, pool)
	}

	var notifyWorker worker.NotificationWorker
	if cfg.Relay.Configured() {
		deps.Notifier = notify.NewRelayNotifier(cfg.Relay, nil)

		q, rdb := newNotificationQueue(cfg)
		if rdb != nil {
			defer rdb.Close()
		}
		deps.Queue = q

		notifyWorker = worker.NewNotificationWorker(deps.Notifier, q)
		if err := notifyWorker.Start(ctx); err != nil {
			log.Error("notification worker not started", zap.Error(err))
			deps.Queue = nil
			notifyWorker = nil
		}
	} else {
		log.Error("mail relay not configured, upload notifications will be refused",
			zap.Bool("url_set", cfg.Relay.URL != ""),
			zap.Bool("access_key_set", cfg.Relay.AccessKey != ""),
			zap.Bool("to_email_set", cfg.Relay.ToEmail != ""),
		)
	}

	gw := gateway.New(deps, gateway.Options{
		StoragePrefix:          cfg.Storage.Prefix,
		SiteOrigin:             cfg.Backend.SiteOrigin,
		RedirectAnchor:         cfg.Backend.RedirectAnchor,
		PhotoOrderAscending:    cfg.Gateway.PhotoOrderAscending,
		CleanupOrphanedUploads: cfg.Gateway.CleanupOrphanedUploads,
	})

	router := gin.Default()
	router.ContextWithFallback = true
	router.MaxMultipartMemory = 32 << 20
	handler.RegisterHealthRoutes(router, reg)
	handler.NewGatewayHandler(gw).RegisterRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverError := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
		close(serverError)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	select {
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverError:
		if err != nil {
			log.Error("server failed", zap.Error(err))
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	}

	cancel()
	if notifyWorker != nil {
		notifyWorker.Wait()
	}
	log.Info("server stopped")
}

func wireRepositories(deps *gateway.Deps, pool *pgxpool.Pool) {
	deps.Photos = repository.NewPhotoRepository(pool)
	deps.Trivia = repository.NewTriviaRepository(pool)
	deps.Rsvps = repository.NewRsvpRepository(pool)
	deps.Songs = repository.NewSongRepository(pool)
}

// newNotificationQueue prefers the configured backend and falls back to memory when Redis is unreachable.
func newNotificationQueue(cfg *config.Config) (queue.NotificationQueue, *redis.Client) {
	log := logger.WithComponent("main")
	if cfg.Gateway.NotifyQueue != "redis" {
		return queue.NewNotificationQueue(memoryQueueBuffer), nil
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, using in-memory notification queue", zap.Error(err))
		return queue.NewNotificationQueue(memoryQueueBuffer), nil
	}
	q, err := queue.NewRedisStreamNotificationQueue(rdb, "", nil)
	if err != nil {
		log.Warn("redis stream setup failed, using in-memory notification queue", zap.Error(err))
		_ = rdb.Close()
		return queue.NewNotificationQueue(memoryQueueBuffer), nil
	}
	return q, rdb
}
