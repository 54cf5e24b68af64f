// Package config はバイナリ共通の設定読み込みとロガー生成を提供します。
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"stockpool/internal/platform/externalapi/stockapi"
	infraredis "stockpool/internal/platform/redis"
	"stockpool/internal/platform/storage"
)

// Config はCLIクライアントの設定です。
type Config struct {
	API     stockapi.Config
	Storage storage.Config
	Redis   infraredis.Config
	Log     LogConfig
}

// DevServerConfig は開発サーバーの設定です。
type DevServerConfig struct {
	Addr      string
	APIPrefix string
	DBDriver  string
	DBDSN     string
	JWTSecret string
	TokenTTL  time.Duration
	Seed      bool
	Log       LogConfig
}

// LoadDotEnv は.envファイルを読み込みます。ファイルが存在しない場合は何もしません。
// 既に設定されている環境変数は上書きされません。
func LoadDotEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug(".env not found; using system environment variables")
			return
		}
		slog.Warn("failed to load .env", "error", err)
	}
}

// Load はCLIクライアントの設定を環境変数から読み込みます。
func Load() Config {
	return Config{
		API:     stockapi.LoadConfig(),
		Storage: storage.LoadConfig(),
		Redis:   infraredis.LoadConfig(),
		Log:     loadLogConfig(),
	}
}

// LoadDevServer は開発サーバーの設定を環境変数から読み込みます。
func LoadDevServer() DevServerConfig {
	prefix, ok := os.LookupEnv("STOCKPOOL_API_PREFIX")
	if !ok {
		prefix = "/api"
	}
	return DevServerConfig{
		Addr:      getEnv("DEVSERVER_ADDR", ":8080"),
		APIPrefix: prefix,
		DBDriver:  getEnv("DEVSERVER_DB_DRIVER", "sqlite"),
		DBDSN:     getEnv("DEVSERVER_DB_DSN", "stockpool.db"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  getEnvAsDuration("DEVSERVER_TOKEN_TTL", 24*time.Hour),
		Seed:      getEnvAsBool("DEVSERVER_SEED", true),
		Log:       loadLogConfig(),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
