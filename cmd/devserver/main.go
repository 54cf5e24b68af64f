package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"stockpool/internal/app/config"
	"stockpool/internal/app/router"
	"stockpool/internal/feature/devserver/adapters"
	devhandler "stockpool/internal/feature/devserver/transport/handler"
	devusecase "stockpool/internal/feature/devserver/usecase"
	"stockpool/internal/platform/db"
	"stockpool/internal/platform/http/handler"
	jwtmw "stockpool/internal/platform/jwt"
	"stockpool/internal/platform/metrics"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config.LoadDotEnv()
	cfg := config.LoadDevServer()
	slog.SetDefault(config.NewLogger(cfg.Log, os.Stderr))

	// db
	gdb, err := db.Open(ctx, db.Config{
		Driver:       cfg.DBDriver,
		DSN:          cfg.DBDSN,
		RetryTimeout: 60 * time.Second,
	}, adapters.Models()...)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		slog.Error("failed to get sql.DB", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if cfg.Seed {
		if err := adapters.Seed(ctx, gdb, time.Now()); err != nil {
			slog.Error("failed to seed demo data", "error", err)
			os.Exit(1)
		}
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	serverMetrics, err := metrics.NewServerMetrics(reg)
	if err != nil {
		slog.Error("failed to register metrics", "error", err)
		os.Exit(1)
	}

	// Repository → Usecase → Handler
	repo := adapters.NewStockPoolRepository(gdb)
	uc := devusecase.NewStockPoolUsecase(repo)
	h := devhandler.NewStockPoolHandler(uc)

	r := router.NewRouter(h, router.Options{
		APIPrefix: cfg.APIPrefix,
		JWTSecret: cfg.JWTSecret,
		Metrics:   serverMetrics,
		Gatherer:  reg,
		Health:    map[string]handler.Pinger{"database": sqlDB},
	})

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set; API requests are not authenticated")
	} else {
		token, err := jwtmw.NewGenerator(cfg.JWTSecret, cfg.TokenTTL).GenerateToken("dev")
		if err != nil {
			slog.Error("failed to issue dev token", "error", err)
			os.Exit(1)
		}
		slog.Info("dev token issued; store it with `stockpool token set`", "token", token, "ttl", cfg.TokenTTL)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("dev server listening", "addr", cfg.Addr, "prefix", cfg.APIPrefix, "driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
}
