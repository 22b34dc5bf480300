package pipeline

import (
	"context"

	"github.com/rushteam/postrec/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindRecall Kind = "recall" // 召回阶段：生成候选集（社交信号 + 相似度）
	KindFilter Kind = "filter" // 过滤阶段：剔除不符合约束的候选（作者复验等）
	KindReRank Kind = "rerank" // 重排阶段：去重 / Top-N 截断
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 items -> 输出 items”的形态，方便 Recall 生成、Filter 剔除、ReRank 截断等操作。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}
