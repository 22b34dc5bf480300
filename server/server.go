// Package server 是 HTTP 薄壳：请求校验、引擎调用、错误码映射。
// 所有非平凡逻辑都在 engine/index 中，这里只做编解码与状态码转换。
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rushteam/postrec/engine"
)

// Config 是 HTTP 服务配置。
type Config struct {
	ListenAddr   string
	DefaultTopN  int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server 包装 chi 路由与推荐引擎。
type Server struct {
	router chi.Router
	engine *engine.Engine
	cfg    Config
	logger *slog.Logger
}

// New 创建 HTTP 服务并注册路由。
func New(cfg Config, eng *engine.Engine, logger *slog.Logger) *Server {
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8000"
	}
	if cfg.DefaultTopN <= 0 {
		cfg.DefaultTopN = engine.DefaultTopN
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		engine: eng,
		cfg:    cfg,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Get("/healthz", s.handleHealth)
	r.Post("/update_model", s.handleUpdateModel)
	r.Post("/recommend_posts", s.handleRecommendPosts)
	r.Delete("/delete_post/{post_id}", s.handleDeletePost)

	s.router = r
	return s
}

// Handler 返回底层 http.Handler（测试用）。
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start 启动 HTTP 服务并阻塞，context 取消后优雅退出。
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
