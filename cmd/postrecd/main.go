// postrecd 是帖子推荐服务的入口：装配存储、相似度索引、推荐引擎与 HTTP 层。
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rushteam/postrec/config"
	"github.com/rushteam/postrec/core"
	"github.com/rushteam/postrec/engine"
	"github.com/rushteam/postrec/index"
	"github.com/rushteam/postrec/server"
	"github.com/rushteam/postrec/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	kv, err := newStore(cfg)
	if err != nil {
		return err
	}
	defer kv.Close()

	posts := store.NewPostAdapter(kv, "")
	users := store.NewUserAdapter(kv, "")

	idx := index.New(kv, posts,
		index.WithModelKey(cfg.ModelKey),
		index.WithExtraStopWords(cfg.ExtraStopWords),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 启动时加载持久化模型；没有快照且已有语料时做一次全量拟合。
	// 两者都没有时服务照常启动，第一次 /update_model 会完成首次拟合。
	if err := idx.Load(ctx); err != nil {
		if !core.IsModelNotLoaded(err) {
			return err
		}
		all, err := posts.GetAll(ctx)
		if err != nil {
			return err
		}
		if len(all) > 0 {
			corpus := make([]string, len(all))
			for i, p := range all {
				corpus[i] = p.Text
			}
			if err := idx.Fit(ctx, corpus); err != nil {
				return err
			}
			logger.Info("model fitted from corpus", "docs", len(all))
		} else {
			logger.Warn("no persisted model and empty corpus; transform unavailable until first update")
		}
	} else {
		logger.Info("model snapshot loaded", "dimension", idx.Dimension())
	}

	eng := engine.New(posts, users, idx, engine.WithFilterExpr(cfg.FilterExpr))

	srv := server.New(server.Config{
		ListenAddr:  cfg.ListenAddr,
		DefaultTopN: cfg.DefaultTopN,
	}, eng, logger)

	return srv.Start(ctx)
}

func newStore(cfg *config.Config) (core.Store, error) {
	switch cfg.Store.Backend {
	case "redis":
		return store.NewRedisStore(cfg.Store.RedisAddr, cfg.Store.RedisDB)
	case "memory", "":
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}
