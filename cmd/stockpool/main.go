package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"stockpool/internal/app/config"
	"stockpool/internal/app/di"
	"stockpool/internal/feature/stockpool/transport/cli"
	"stockpool/internal/feature/stockpool/usecase"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	config.LoadDotEnv()
	cfg := config.Load()

	// 診断ログは標準エラーへ
	logger := config.NewLogger(cfg.Log, os.Stderr)
	slog.SetDefault(logger)

	// Storage
	store, closeStore, err := di.NewStore(ctx, cfg.Storage, cfg.Redis)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	defer func() {
		if err := closeStore(); err != nil {
			slog.Error("failed to close storage", "error", err)
		}
	}()

	// API client（メトリクスはCLIでは収集しない）
	api, err := di.NewStockAPI(cfg.API, store, logger, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	root := cli.NewRootCommand(usecase.NewStockPoolUsecase(api), store)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
