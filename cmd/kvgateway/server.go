package main

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/nao1215/kvgateway/internal/gateway"
	logging "github.com/nao1215/kvgateway/internal/logr"
	"github.com/nao1215/kvgateway/internal/store"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultListenHost       = "0.0.0.0"
	DefaultListenPort       = 4000
	DefaultRedisHost        = "redis"
	DefaultRedisPort        = 6379
	DefaultStorePath        = "kvgateway.db"
	DefaultStorePingTimeout = 2 * time.Second
)

// serverConfig はゲートウェイ起動時の設定。
type serverConfig struct {
	ListenHost   string
	ListenPort   int
	DebugMode    bool
	JWTSecret    string
	CORSOrigins  []string
	PingInterval time.Duration

	Store  store.Config
	Logger logging.Config
}

// addFlags はサーバー設定のフラグを登録する。
func (cfg *serverConfig) addFlags(flags *pflag.FlagSet) {
	flags.StringVar(&cfg.ListenHost, "listen-host", DefaultListenHost, "Listening host")
	flags.IntVar(&cfg.ListenPort, "listen-port", DefaultListenPort, "Listening port")
	flags.BoolVar(&cfg.DebugMode, "debug-mode", false, "Run gin in debug mode")
	flags.StringVar(&cfg.JWTSecret, "jwt-secret", "", "Require a Bearer token signed with this secret on POST /set")
	flags.StringSliceVar(&cfg.CORSOrigins, "cors-origins", nil, "Origins allowed to make cross-origin requests. '*' allows any origin.")
	flags.DurationVar(&cfg.PingInterval, "store-ping-interval", 30*time.Second, "Interval between store health checks. 0 disables them.")

	flags.StringVar(&cfg.Store.Driver, "store-driver", store.DriverRedis, "Store driver: redis, sqlite or bolt")
	flags.StringVar(&cfg.Store.Redis.Host, "redis-host", DefaultRedisHost, "Redis host")
	flags.IntVar(&cfg.Store.Redis.Port, "redis-port", DefaultRedisPort, "Redis port")
	flags.StringVar(&cfg.Store.Redis.Password, "redis-password", "", "Redis password")
	flags.IntVar(&cfg.Store.Redis.DB, "redis-db", 0, "Redis database number")
	flags.DurationVar(&cfg.Store.Redis.DialTimeout, "redis-dial-timeout", 5*time.Second, "Redis dial timeout")
	flags.DurationVar(&cfg.Store.Redis.ReadTimeout, "redis-read-timeout", 3*time.Second, "Redis read timeout")
	flags.DurationVar(&cfg.Store.Redis.WriteTimeout, "redis-write-timeout", 3*time.Second, "Redis write timeout")
	flags.StringVar(&cfg.Store.Path, "store-path", DefaultStorePath, "Database file used by the sqlite and bolt drivers")

	logging.AddFlags(flags, &cfg.Logger)
}

// addr はリッスンアドレスを返す。
func (cfg *serverConfig) addr() string {
	return net.JoinHostPort(cfg.ListenHost, strconv.Itoa(cfg.ListenPort))
}

// runServer はストアを開き、ctxがキャンセルされるまでゲートウェイを動かす。
// ストアはサーバーが停止してから閉じる。
func runServer(ctx context.Context, cfg *serverConfig) error {
	if cfg.DebugMode {
		gin.SetMode(gin.DebugMode)
		cfg.Logger.Verbosity = max(cfg.Logger.Verbosity, 1)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	logger, err := logging.New(cfg.Logger)
	if err != nil {
		return err
	}

	kv, err := store.Open(ctx, logger, cfg.Store)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logger.Error(err, "closing store")
		}
	}()

	// 起動時にストアへ到達できなくても起動は続け、リクエストごとに失敗させる
	if err := pingStore(ctx, kv); err != nil {
		logger.Error(err, "store is unreachable; continuing", "driver", cfg.Store.Driver)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		server := gateway.NewServer(logger, gateway.Config{
			Addr:        cfg.addr(),
			JWTSecret:   cfg.JWTSecret,
			CORSOrigins: cfg.CORSOrigins,
		}, kv)
		if err := server.Run(ctx); err != nil {
			return fmt.Errorf("web server terminated: %w", err)
		}
		return nil
	})

	if cfg.PingInterval > 0 {
		g.Go(func() error {
			watchStore(ctx, logger, kv, cfg.PingInterval)
			return nil
		})
	}

	// エラーか^Cまでブロックする
	return g.Wait()
}

func pingStore(ctx context.Context, kv store.Store) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultStorePingTimeout)
	defer cancel()
	return kv.Ping(ctx)
}

// watchStore はinterval毎にストアへの疎通を確認し、状態が変わった時にログを出す。
func watchStore(ctx context.Context, logger logr.Logger, kv store.Store, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	healthy := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := pingStore(ctx, kv)
			switch {
			case err != nil && healthy:
				logger.Error(err, "store became unreachable")
			case err == nil && !healthy:
				logger.Info("store is reachable again")
			}
			healthy = err == nil
		}
	}
}
