package di

import (
	"context"
	"fmt"
	"log/slog"

	infraredis "stockpool/internal/platform/redis"
	"stockpool/internal/platform/storage"
)

// NewStore creates the client-side Store selected by cfg.Backend.
// If the redis backend is selected but Redis is unreachable, it falls back to
// file storage. The returned close function releases the backend's resources.
func NewStore(ctx context.Context, cfg storage.Config, redisCfg infraredis.Config) (storage.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case storage.BackendMemory:
		return storage.NewMemory(), noop, nil
	case storage.BackendFile, "":
		return storage.NewFile(cfg.FilePath), noop, nil
	case storage.BackendRedis:
		rdb, err := infraredis.NewRedisClient(ctx, redisCfg)
		if err != nil {
			slog.Warn("Redis unavailable; falling back to file storage", "path", cfg.FilePath, "error", err)
			return storage.NewFile(cfg.FilePath), noop, nil
		}
		return storage.NewRedis(rdb, cfg.RedisPrefix), rdb.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
