package storage

import "os"

// STOCKPOOL_STORAGE で指定できるバックエンド名です。
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config はクライアント側Storeの選択と設定です。
type Config struct {
	Backend     string // file / redis / memory
	FilePath    string // fileバックエンドの保存先
	RedisPrefix string // redisバックエンドのキープレフィックス
}

// LoadConfig は環境変数からストレージ設定を読み込みます。
func LoadConfig() Config {
	cfg := Config{
		Backend:     os.Getenv("STOCKPOOL_STORAGE"),
		FilePath:    os.Getenv("STOCKPOOL_STORAGE_FILE"),
		RedisPrefix: os.Getenv("STOCKPOOL_STORAGE_REDIS_PREFIX"),
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendFile
	}
	if cfg.FilePath == "" {
		cfg.FilePath = DefaultFilePath()
	}
	return cfg
}
