package rerank

import (
	"context"

	"github.com/rushteam/postrec/core"
	"github.com/rushteam/postrec/pipeline"
)

// TopN 是截断 Node：在合并、过滤、去重全部完成之后截取前 N 个候选。
// 截断永远发生在去重之后；先截断再去重会少给结果。
// 可用候选不足 N 时返回全部，不补位，也不算错误。
type TopN struct {
	// N 要保留的候选数量；N <= 0 表示不截断
	N int
}

func (n *TopN) Name() string        { return "rerank.topn" }
func (n *TopN) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopN) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 || len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
