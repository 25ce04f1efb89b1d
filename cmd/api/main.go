package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"loan-management-system/internal/adapter/repository/mysql"
	"loan-management-system/internal/app"
	"loan-management-system/internal/config"
	"loan-management-system/internal/infrastructure/cache"
	"loan-management-system/internal/infrastructure/db"
	"loan-management-system/internal/infrastructure/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, "loan-api")
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	gdb, err := db.Open(cfg.DBDriver, cfg.DSN(), log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := mysql.AutoMigrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	rdb, err := cache.OpenRedis(context.Background(), cfg.RedisAddr, cfg.RedisDB, 5, log)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer func() { _ = rdb.Close() }()

	a := app.New(app.Deps{
		DB:         gdb,
		Redis:      rdb,
		Log:        log,
		Registerer: prometheus.DefaultRegisterer,
		Gatherer:   prometheus.DefaultGatherer,
		JWTSecret:  cfg.JWTSecret,
		JWTTTL:     cfg.JWTTTL(),
		IdempTTL:   cfg.IdempotencyTTL(),
	})

	if cfg.BootstrapAdmin() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		created, err := a.Auth.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail)
		cancel()
		if err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
		if !created {
			log.Info("default admin already present", zap.String("username", cfg.AdminUsername))
		}
	}

	addr := ":" + cfg.AppPort
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr))
		if err := a.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return a.Echo.Shutdown(ctx)
}
