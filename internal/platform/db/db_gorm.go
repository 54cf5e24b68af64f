// Package db はgormによるデータベース接続を提供します。
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config はデータベース接続設定です。
type Config struct {
	Driver       string        // sqlite or postgres
	DSN          string        // file path / ":memory:" for sqlite, key=value or URL for postgres
	RetryTimeout time.Duration // how long to keep retrying the first connection; 0 means no retry
	RetryEvery   time.Duration
}

// Dialector はドライバー名に対応するgormのDialectorを返します。
func Dialector(cfg Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverSQLite, "":
		return sqlite.Open(cfg.DSN), nil
	case DriverPostgres:
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Open はデータベースに接続し、modelsのテーブルをマイグレーションします。
// 接続に失敗した場合はRetryTimeoutの間、RetryEvery間隔で再試行します。
func Open(ctx context.Context, cfg Config, models ...any) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	retryEvery := cfg.RetryEvery
	if retryEvery <= 0 {
		retryEvery = 3 * time.Second
	}
	deadline := time.Now().Add(cfg.RetryTimeout)

	var db *gorm.DB
	for {
		db, err = gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
		if err == nil {
			break
		}
		if !time.Now().Before(deadline) {
			return nil, fmt.Errorf("failed to connect database: %w", err)
		}
		slog.Warn("DB connect failed, retrying", "driver", cfg.Driver, "error", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryEvery):
		}
	}

	if cfg.Driver == DriverSQLite || cfg.Driver == "" {
		// sqliteは単一コネクションで使う（:memory: を全クエリで共有するため）
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if len(models) > 0 {
		if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return db, nil
}
