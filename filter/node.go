package filter

import (
	"context"

	"github.com/rushteam/postrec/core"
	"github.com/rushteam/postrec/pipeline"
	"github.com/rushteam/postrec/pkg/utils"
)

// Node 是过滤 Node，可以组合多个过滤器进行过滤。
// 如果任何一个过滤器返回 true，该候选就会被剔除。
// 过滤器出错即整体失败：作者复验是正确性机制而非观测点，错了不能跳过。
type Node struct {
	Filters []Filter
}

func (n *Node) Name() string        { return "filter.node" }
func (n *Node) Kind() pipeline.Kind { return pipeline.KindFilter }

func (n *Node) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))

	for _, item := range items {
		if item == nil {
			continue
		}

		shouldFilter := false
		filterReason := ""

		// 依次检查每个过滤器
		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				return nil, err
			}
			if ok {
				shouldFilter = true
				filterReason = f.Name()
				break
			}
		}

		if shouldFilter {
			// 记录过滤原因（用于调试/观测）
			item.PutLabel("filtered", utils.Label{
				Value:  "true",
				Source: filterReason,
			})
			continue
		}

		out = append(out, item)
	}

	return out, nil
}
