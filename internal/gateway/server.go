package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/nao1215/kvgateway/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// shutdownTimeout は停止時に処理中のリクエストを待つ時間。
	shutdownTimeout = 5 * time.Second
	// readHeaderTimeout はリクエストヘッダーの読み取り期限。
	readHeaderTimeout = 5 * time.Second
)

// Store はゲートウェイが利用するストアの操作。
// 実装は複数のリクエストから同時に呼ばれる。
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
}

// Config はゲートウェイの設定。
type Config struct {
	// Addr はリッスンアドレス（host:port）。
	Addr string
	// JWTSecret が空でなければ POST /set にBearerトークンを要求する。
	JWTSecret string
	// CORSOrigins はクロスオリジンを許可するオリジン。空ならCORSを無効にする。
	CORSOrigins []string
}

// Server はゲートウェイのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// store は起動時に生成されたストアの接続ハンドル。
	store Store
	// logger はアプリケーションログの出力先。
	logger logr.Logger
	// cfg はサーバー設定。
	cfg Config
}

// NewServer は新しいゲートウェイサーバーを生成する。
// kvはプロセス全体で共有され、Closeは呼び出し側の責任とする。
func NewServer(logger logr.Logger, cfg Config, kv Store) *Server {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.RedirectTrailingSlash = false
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics())
	if len(cfg.CORSOrigins) > 0 {
		router.Use(middleware.CORS(cfg.CORSOrigins))
	}

	s := &Server{
		router: router,
		store:  kv,
		logger: logger,
		cfg:    cfg,
	}
	s.setupRoutes()

	return s
}

// Handler はルーターをhttp.Handlerとして返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run はcfg.AddrでHTTPサーバーを起動し、ctxがキャンセルされるまで待つ。
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve はlnでHTTPリクエストを処理する。サーバーがエラーで停止するか、
// ctxがキャンセルされて処理中のリクエストが完了するまでブロックする。
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errch := make(chan error, 1)
	go func() {
		errch <- srv.Serve(ln)
	}()

	s.logger.Info("started server", "address", ln.Addr().String())

	select {
	case err := <-errch:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("gracefully shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return srv.Close()
		}
		return nil
	}
}

// setupRoutes はルーティングを設定する。
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex())
	s.router.HEAD("/", s.handleIndex())

	setHandlers := []gin.HandlerFunc{s.handleSet()}
	if s.cfg.JWTSecret != "" {
		setHandlers = append([]gin.HandlerFunc{middleware.JWTAuth(s.cfg.JWTSecret)}, setHandlers...)
	}
	s.router.POST("/set", setHandlers...)

	s.router.GET("/get/:key", s.handleGet())
	s.router.HEAD("/get/:key", s.handleGet())

	// ヘルスチェック
	s.router.GET("/health", s.handleHealth())

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": msgRouteNotFound})
	})
	s.router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": msgMethodNotAllowed})
	})
}

// internalError はストアのエラーを記録し、汎用の500エラーを返す。
func (s *Server) internalError(c *gin.Context, err error, msg string, keysAndValues ...any) {
	_ = c.Error(err)
	kvs := append([]any{"request_id", middleware.GetRequestID(c)}, keysAndValues...)
	s.logger.Error(err, msg, kvs...)
	c.JSON(http.StatusInternalServerError, gin.H{"error": middleware.InternalErrorMessage})
}
