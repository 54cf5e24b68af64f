// Package stockapi はstock-pool REST APIのクライアントを提供します。
package stockapi

import (
	"os"
	"strings"
	"time"

	infrahttp "stockpool/internal/platform/http"
)

// Config はstock-pool APIクライアントの設定です。
type Config struct {
	BaseURL   string        // サーバーのベースURL（例: "https://stocks.example.com"）
	APIPrefix string        // 全エンドポイント共通のパスプレフィックス（例: "/api"）
	Timeout   time.Duration // クライアント全体のタイムアウト
}

// LoadConfig は環境変数からAPI設定を読み込みます。
func LoadConfig() Config {
	cfg := Config{
		BaseURL:   os.Getenv("STOCKPOOL_BASE_URL"),
		APIPrefix: os.Getenv("STOCKPOOL_API_PREFIX"),
		Timeout:   infrahttp.DefaultTimeout,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if _, ok := os.LookupEnv("STOCKPOOL_API_PREFIX"); !ok {
		cfg.APIPrefix = "/api"
	}
	if d, err := time.ParseDuration(os.Getenv("STOCKPOOL_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	return cfg
}

// Endpoint はベースURLとAPIプレフィックスを連結して返します。
func (c Config) Endpoint() string {
	base := strings.TrimRight(c.BaseURL, "/")
	prefix := strings.TrimRight(c.APIPrefix, "/")
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return base + prefix
}
