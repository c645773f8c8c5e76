package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	docs "github.com/tazhibayda/thoughts-service/docs"
	"github.com/tazhibayda/thoughts-service/internal/config"
	httpapi "github.com/tazhibayda/thoughts-service/internal/http"
	applog "github.com/tazhibayda/thoughts-service/internal/log"
	"github.com/tazhibayda/thoughts-service/internal/metrics"
	"github.com/tazhibayda/thoughts-service/internal/queue"
	"github.com/tazhibayda/thoughts-service/internal/repo"
	"go.uber.org/zap"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// @title Happy Thoughts API
// @version 0.1.0
// @description Post short thoughts, list the latest ones and send hearts.
// @schemes http https
// @BasePath /
func main() {
	_ = config.LoadDotEnv()
	cfg := config.Load()

	logger, err := applog.Init(cfg.LogProd)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.TraceEnabled {
		tracer.Start(tracer.WithService("thoughts-service"))
		defer tracer.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbName := cfg.MongoDB
	if dbName == "" {
		dbName = repo.DatabaseFromURI(cfg.MongoURL, config.DefaultMongoDB())
	}
	store, err := repo.NewStore(ctx, cfg.MongoURL, dbName, cfg.StoreTimeout)
	if err != nil {
		logger.Fatal("mongo connect", zap.Error(err))
	}
	defer store.Close(context.Background())

	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Fatal("mongo indexes", zap.Error(err))
	}

	var pub queue.Publisher = queue.NewNoop()
	if cfg.RabbitURL != "" {
		if pub, err = queue.NewRabbit(cfg.RabbitURL, cfg.RabbitExchange); err != nil {
			logger.Fatal("rabbit connect", zap.Error(err))
		}
	}
	defer pub.Close()

	appCtx, stop := context.WithCancel(context.Background())
	defer stop()

	var limiter httpapi.Limiter
	switch {
	case cfg.RateLimitPerMin <= 0:
	case cfg.RedisAddr != "":
		rds := repo.NewRedis(cfg.RedisAddr)
		defer rds.Close()
		if err := rds.Ping(ctx); err != nil {
			logger.Fatal("redis connect", zap.Error(err))
		}
		limiter = httpapi.NewRedisLimiter(rds.C, cfg.RateLimitPerMin)
	default:
		ml := httpapi.NewMemoryLimiter(cfg.RateLimitPerMin)
		ml.StartSweeper(appCtx, 5*time.Minute)
		limiter = ml
	}

	metrics.MustRegister()
	docs.SwaggerInfo.BasePath = "/"

	h := httpapi.NewHandler(store, pub, cfg.LegacyErrorStatus)
	r := httpapi.NewRouter(h, limiter, cfg.TrustedProxies...)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpapi.WithCORS(r, cfg.CORSOrigins),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.StoreTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() { srvErr <- srv.ListenAndServe() }()

	logger.Info("thoughts-service listening", zap.String("addr", "http://localhost:"+cfg.Port))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info("shutting down", zap.String("signal", s.String()))
	case err := <-srvErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", zap.Error(err))
	}
}
