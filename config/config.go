// Package config 提供服务配置的加载与默认值（YAML）。
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 是服务配置结构。
type Config struct {
	// ListenAddr 是 HTTP 监听地址，默认 ":8000"
	ListenAddr string `yaml:"listen_addr"`

	Store StoreConfig `yaml:"store"`

	// ModelKey 是模型快照在 Store 中的 key，默认 "model:tfidf"
	ModelKey string `yaml:"model_key"`

	// DefaultTopN 是未指定 top_n 时的默认截断数量，默认 5
	DefaultTopN int `yaml:"default_top_n"`

	// ExtraStopWords 是默认英文停用词表之外的附加停用词
	ExtraStopWords []string `yaml:"extra_stop_words"`

	// FilterExpr 是可选的候选过滤 CEL 表达式，
	// 例如 `size(item.text) < 5`
	FilterExpr string `yaml:"filter_expr"`
}

// StoreConfig 选择存储后端。
type StoreConfig struct {
	// Backend 是 "memory" 或 "redis"，默认 "memory"
	Backend string `yaml:"backend"`

	RedisAddr string `yaml:"redis_addr"` // 默认 "127.0.0.1:6379"
	RedisDB   int    `yaml:"redis_db"`
}

// Default 返回全默认值的配置。
func Default() *Config {
	return &Config{
		ListenAddr:  ":8000",
		ModelKey:    "model:tfidf",
		DefaultTopN: 5,
		Store: StoreConfig{
			Backend:   "memory",
			RedisAddr: "127.0.0.1:6379",
		},
	}
}

// Load 从 YAML 文件加载配置；path 为空时直接返回默认配置。
// 文件中省略的字段取默认值。
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8000"
	}
	if cfg.ModelKey == "" {
		cfg.ModelKey = "model:tfidf"
	}
	if cfg.DefaultTopN <= 0 {
		cfg.DefaultTopN = 5
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = "memory"
	}
	if cfg.Store.RedisAddr == "" {
		cfg.Store.RedisAddr = "127.0.0.1:6379"
	}
	return cfg, nil
}
