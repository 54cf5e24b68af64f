package config

import (
	"io"
	"log/slog"
	"strings"
)

// LogConfig はロガーの出力レベルと形式です。
type LogConfig struct {
	Level  slog.Level
	Format string // "text" or "json"
}

func loadLogConfig() LogConfig {
	return LogConfig{
		Level:  parseLevel(getEnv("STOCKPOOL_LOG_LEVEL", "info")),
		Format: strings.ToLower(getEnv("STOCKPOOL_LOG_FORMAT", "text")),
	}
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewLogger はcfgに従ってwへ出力するロガーを生成します。
func NewLogger(cfg LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
