package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tazhibayda/thoughts-service/internal/config"
	applog "github.com/tazhibayda/thoughts-service/internal/log"
	"github.com/tazhibayda/thoughts-service/internal/notify"
	"github.com/tazhibayda/thoughts-service/internal/queue"
	"go.uber.org/zap"
)

func main() {
	_ = config.LoadDotEnv()
	cfg := config.LoadNotifier()

	logger, err := applog.Init(cfg.LogProd)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cons, err := queue.NewConsumer(cfg.RabbitURL, cfg.Exchange, cfg.Queue, cfg.BindKey)
	if err != nil {
		logger.Fatal("rabbit consumer init failed", zap.Error(err))
	}
	defer cons.Close()

	sender := notify.NewSender(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("thought-notifier up",
		zap.String("exchange", cfg.Exchange),
		zap.String("queue", cfg.Queue),
		zap.String("key", cfg.BindKey),
		zap.Int("workers", cfg.Concurrency),
	)

	if err := cons.Consume(ctx, cfg.Concurrency, sender.Handle); err != nil {
		logger.Fatal("consumer stopped", zap.Error(err))
	}
}
