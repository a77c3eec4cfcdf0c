package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/HarisNvr/test-case-shop/internal/config"
	"github.com/HarisNvr/test-case-shop/internal/db"
	"github.com/HarisNvr/test-case-shop/internal/httpserver"
	"github.com/HarisNvr/test-case-shop/internal/logging"
	loggingmw "github.com/HarisNvr/test-case-shop/internal/middleware/logging"
	"github.com/HarisNvr/test-case-shop/internal/middleware/ratelimit"
	"github.com/HarisNvr/test-case-shop/internal/mykafka"
	"github.com/HarisNvr/test-case-shop/internal/repo"
	"github.com/HarisNvr/test-case-shop/internal/service"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_error", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		logger.Error("db_init_error", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gdb); err != nil {
		logger.Error("db_migrate_error", "error", err)
		os.Exit(1)
	}

	store := &repo.GormRepo{DB: gdb}
	cartService := &service.CartService{
		Store:   store,
		Catalog: store,
		Max:     cfg.CartMax,
	}

	var producer *mykafka.Producer
	if cfg.EventsEnabled() {
		producer = mykafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaCartTopic)
		cartService.Events = producer
		logger.Info("cart_events_enabled", "topic", cfg.KafkaCartTopic, "brokers", cfg.KafkaBrokers)
	}

	var (
		limiter ratelimit.Limiter
		rdb     *redis.Client
	)
	if cfg.RateLimitEnabled() {
		rdb = redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		})
		limiter = ratelimit.NewRedisLimiter(rdb, cfg.RateLimitPerMinute, time.Minute)
		logger.Info("rate_limit_enabled", "per_minute", cfg.RateLimitPerMinute)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowCredentials: true,
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, "X-CSRF-Token"},
		ExposeHeaders:    []string{"X-CSRF-Token", echo.HeaderRetryAfter},
	}))

	httpserver.Register(e, &httpserver.Deps{
		CartHandler: &httpserver.CartHTTP{Svc: cartService},
		JWTSecret:   cfg.JWTAccessSecret,
		Limiter:     limiter,
		Ready: func(ctx context.Context) error {
			return db.Ping(ctx, gdb)
		},
	})

	addr := ":" + strconv.Itoa(cfg.ServerPort)
	go func() {
		logger.Info("server_starting", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server_error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("server_stopping")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}
	closeAll(logger, gdb, producer, rdb)
	logger.Info("server_stopped")
}

func closeAll(logger *slog.Logger, gdb *gorm.DB, producer *mykafka.Producer, rdb *redis.Client) {
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Warn("kafka_close_error", "error", err)
		}
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Warn("redis_close_error", "error", err)
		}
	}
	if err := db.Close(gdb); err != nil {
		logger.Warn("db_close_error", "error", err)
	}
}
