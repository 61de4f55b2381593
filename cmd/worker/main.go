package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"wbsplanner/config"
	"wbsplanner/internal/cache"
	internalmq "wbsplanner/internal/mq"
	"wbsplanner/internal/mqhandler"
	"wbsplanner/pkg/logger"
	"wbsplanner/pkg/mq"
	"wbsplanner/pkg/redis"
	"wbsplanner/pkg/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.NewLogger(logger.Options{Development: cfg.Log.Development, File: cfg.Log.File})
	defer log.Sync()

	log.Info("Starting wbs worker...",
		zap.String("queue", cfg.Worker.Queue),
		zap.Int64("max_retries", cfg.Worker.MaxRetries),
	)

	// Redis
	rdb, err := redis.NewRedisClient(cfg.Redis, log)
	if err != nil {
		log.Fatal("Redis connection failed", zap.Error(err))
	}
	defer rdb.Close()

	deduper := util.NewDeduper(rdb, cfg.Worker.DedupTTL, log)
	retryCounter := util.NewRetryCounter(rdb, cfg.Worker.DedupTTL)
	reportCache := cache.NewReportCache(rdb, cfg.Redis.TTL, log)

	dlq, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatal("DLQ publisher init failed", zap.Error(err))
	}
	defer dlq.Close()

	changed := mqhandler.NewProjectChangedHandler(reportCache, deduper, retryCounter, dlq, cfg.Worker.MaxRetries, log)
	router := internalmq.NewRouter(log)
	router.Register(internalmq.EventProjectChanged, changed.Handle)

	log.Info("Init consumer",
		zap.String("queue", cfg.Worker.Queue),
		zap.String("routing_key", mq.RoutingKeyProjectChanged),
	)
	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.Worker.Queue, mq.RoutingKeyProjectChanged, log)
	if err != nil {
		log.Fatal("Consumer init failed", zap.Error(err))
	}
	defer consumer.Close()
	consumer.SetHandler(router.HandleRaw)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := consumer.StartConsuming(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Consumer stopped", zap.Error(err))
	}
	log.Info("wbs worker shutdown complete")
}
