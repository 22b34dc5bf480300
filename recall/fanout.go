package recall

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/postrec/core"
	"github.com/rushteam/postrec/pipeline"
	"github.com/rushteam/postrec/pkg/utils"
)

// Fanout 是一个 Recall Node：并发执行多个召回源，按声明顺序合并结果。
//
// 与一般 fan-out 不同的两个硬约束：
//   - 合并顺序确定：每个源的结果写入自己的槽位，最终按 Sources 的
//     声明顺序拼接（声明在前的源整体排在前面，源内保持各自顺序）。
//     同样的输入永远得到同样的输出。
//   - 错误即失败：任何一个源出错，整个请求失败，不返回部分结果。
type Fanout struct {
	Sources []Source

	// Dedup 按帖子 ID 去重，保留第一个出现的（声明在前的源赢）
	Dedup bool
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	// 每个源一个槽位，并发执行但合并顺序与 Sources 声明一致
	slots := make([][]*core.Item, len(n.Sources))
	eg, egCtx := errgroup.WithContext(ctx)

	for i, src := range n.Sources {
		i, s := i, src
		eg.Go(func() error {
			items, err := s.Recall(egCtx, rctx)
			if err != nil {
				return err
			}
			for _, it := range items {
				it.PutLabel("recall_order", utils.Label{Value: strconv.Itoa(i), Source: "recall"})
			}
			slots[i] = items
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	all := make([]*core.Item, 0)
	for _, items := range slots {
		all = append(all, items...)
	}

	if !n.Dedup {
		return all, nil
	}
	return mergeFirst(all), nil
}

// mergeFirst 按帖子 ID 去重，保留第一个出现的；
// 后出现的同 ID 项只把 labels 并入赢家，方便 explain。
func mergeFirst(all []*core.Item) []*core.Item {
	seen := make(map[string]*core.Item, len(all))
	out := make([]*core.Item, 0, len(all))
	for _, it := range all {
		if it == nil {
			continue
		}
		if old, ok := seen[it.ID]; ok {
			for k, v := range it.Labels {
				old.PutLabel(k, v)
			}
			continue
		}
		seen[it.ID] = it
		out = append(out, it)
	}
	return out
}
