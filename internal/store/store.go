package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"
)

// ErrNotFound はキーがストアに存在しないことを表す。
var ErrNotFound = errors.New("store: key not found")

// Store はキーバリューストアへの接続ハンドル。
// プロセス起動時に一度だけ生成し、終了時にCloseする。
type Store interface {
	// Get はキーに対応する値を返す。キーが無い場合は ErrNotFound を返す。
	Get(ctx context.Context, key string) (string, error)
	// Set はキーに値を無条件に書き込む。有効期限は設定しない。
	Set(ctx context.Context, key, value string) error
	// Ping はストアへの疎通を確認する。
	Ping(ctx context.Context) error
	// Close は接続ハンドルを解放する。
	Close() error
}

// ドライバ名。
const (
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

// Config はストア接続の設定。
type Config struct {
	// Driver は使用するドライバ名。
	Driver string
	// Redis はredisドライバ用の設定。
	Redis RedisConfig
	// Path はsqlite/boltドライバが使用するファイルパス。
	Path string
}

// RedisConfig はredisドライバの接続設定。
// タイムアウトはGateway側では持たず、ここでの設定に委ねる。
type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Open は設定に従ってストアの接続ハンドルを生成する。
func Open(ctx context.Context, logger logr.Logger, cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverRedis, "":
		s := NewRedis(cfg.Redis)
		logger.Info("opened store", "driver", DriverRedis, "addr", s.Addr())
		return s, nil
	case DriverSQLite:
		s, err := OpenSQLite(ctx, logger, cfg.Path)
		if err != nil {
			return nil, err
		}
		logger.Info("opened store", "driver", DriverSQLite, "path", cfg.Path)
		return s, nil
	case DriverBolt:
		s, err := OpenBolt(cfg.Path)
		if err != nil {
			return nil, err
		}
		logger.Info("opened store", "driver", DriverBolt, "path", cfg.Path)
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver: %q", cfg.Driver)
	}
}
