package recall

import (
	"context"

	"github.com/rushteam/postrec/core"
)

// Source 表示一个可复用的召回源（社交信号/相似度/...）。
// 你可以把它理解为“可 fan-out 的策略单元”：各源独立产出候选，
// 由 Fanout 按声明顺序合并。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}

// Vectorizer 是召回源所需的向量化能力（由 index.SimilarityIndex 提供）。
type Vectorizer interface {
	Transform(ctx context.Context, texts []string) ([][]float64, error)
}
