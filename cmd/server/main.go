package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"wbsplanner/config"
	"wbsplanner/internal/cache"
	"wbsplanner/internal/handler"
	"wbsplanner/internal/httpserver"
	"wbsplanner/internal/repository"
	"wbsplanner/internal/service"
	"wbsplanner/pkg/db"
	"wbsplanner/pkg/logger"
	"wbsplanner/pkg/mq"
	"wbsplanner/pkg/otel"
	"wbsplanner/pkg/outbox"
	"wbsplanner/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.NewLogger(logger.Options{Development: cfg.Log.Development, File: cfg.Log.File})
	defer log.Sync()

	log.Info("Starting wbs server...",
		zap.String("db_host", cfg.DB.Host),
		zap.Int("db_port", cfg.DB.Port),
		zap.String("port", cfg.Server.Port),
	)

	shutdownTracing, err := otel.Init(otel.Config{
		ServiceName:    "wbs-server",
		ServiceVersion: "1.0.0",
		Endpoint:       cfg.Otel.Endpoint,
		Enabled:        cfg.Otel.Enabled,
	}, log)
	if err != nil {
		log.Warn("OpenTelemetry init failed, tracing disabled", zap.Error(err))
		shutdownTracing = func() {}
	}
	defer shutdownTracing()

	// DB
	log.Info("Initializing database connection...")
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to init DB", zap.Error(err))
	}
	defer dbConn.Close()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := repository.Migrate(migrateCtx, dbConn, log); err != nil {
		cancelMigrate()
		log.Fatal("Schema migration failed", zap.Error(err))
	}
	cancelMigrate()

	// Redis 不可用时不缓存
	var rdb goredis.Cmdable
	if client, err := redis.NewRedisClient(cfg.Redis, log); err != nil {
		log.Warn("Redis unavailable, report cache disabled", zap.Error(err))
	} else {
		defer client.Close()
		rdb = client
	}
	reportCache := cache.NewReportCache(rdb, cfg.Redis.TTL, log)

	// MQ is optional as well. Writes go to the outbox table and the
	// dispatcher relays them, so a broker hiccup never loses a change event.
	var (
		publisher   service.EventPublisher
		mqReadiness httpserver.ConnChecker
	)
	dispatchCtx, stopDispatch := context.WithCancel(context.Background())
	defer stopDispatch()
	if cfg.MQ.URL != "" {
		p, err := mq.NewPublisher(cfg.MQ.URL)
		if err != nil {
			log.Warn("RabbitMQ unavailable, change events disabled", zap.Error(err))
		} else {
			defer p.Close()
			store := outbox.NewRepository(dbConn)
			publisher = outbox.NewPublisher(store, "project")
			mqReadiness = p
			go outbox.NewDispatcher(store, p, log).Start(dispatchCtx)
		}
	}

	projectRepo := repository.NewProjectRepository(dbConn, log)
	taskRepo := repository.NewTaskRepository(dbConn, log)
	depRepo := repository.NewDependencyRepository(dbConn, log)
	statsRepo := repository.NewStatisticsRepository(dbConn, log)
	userRepo := repository.NewUserRepository(dbConn, log)

	planner := service.NewPlannerService(projectRepo, taskRepo, depRepo, statsRepo, reportCache, publisher, log)
	auth := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.TTL, log)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := auth.SeedAdmin(seedCtx, cfg.Seed.AdminUsername, cfg.Seed.AdminPassword, cfg.Seed.AdminEmail); err != nil {
		log.Error("Failed to seed admin user", zap.Error(err))
	}
	cancelSeed()

	router := httpserver.NewRouter(httpserver.Deps{
		Auth:         handler.NewAuthHandler(auth, log),
		Projects:     handler.NewProjectHandler(planner, log),
		Tasks:        handler.NewTaskHandler(planner, log),
		Dependencies: handler.NewDependencyHandler(planner, log),
		JWTSecret:    cfg.JWT.Secret,
		DB:           dbConn,
		MQ:           mqReadiness,
		Logger:       log,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 优雅退出处理
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down wbs server gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}
	stopDispatch()
	log.Info("wbs server shutdown complete")
}
