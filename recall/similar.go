package recall

import (
	"context"
	"fmt"
	"sort"

	"github.com/rushteam/postrec/core"
	"github.com/rushteam/postrec/model"
	"github.com/rushteam/postrec/pkg/utils"
)

// Similar 是基于内容相似度的召回源。
//
// 核心思想："用户写过什么样的内容，就推荐词法上相似的其他内容"
//
// 候选池策略（一次定死，不允许两条排序路径表示同一条帖子）：
//   - 排除用户自己的帖子
//   - 排除已关注作者的帖子：它们已经由社交信号召回，走相似度
//     再打一次分只会造成重复表示
//
// 打分：候选文本批量向量化后，对用户每篇帖子的向量求余弦相似度，
// 按用户帖子维度取算术平均，得到每个候选一个 [0,1] 分数。
// 按分数降序稳定排序，并列项保持获取顺序，这是显式的决胜规则。
type Similar struct {
	Posts      core.PostStore
	Vectorizer Vectorizer
}

func (r *Similar) Name() string { return "recall.similar" }

func (r *Similar) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if rctx == nil || rctx.User == nil {
		return nil, nil
	}

	// 排除自己 + 已关注作者
	excluded := append([]string{rctx.UserID}, rctx.User.Following...)
	posts, err := r.Posts.GetExcludingAuthors(ctx, excluded)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		// "查无内容"和"结果为空列表"是两个不同的结论，必须区分上抛
		return nil, core.ErrNoContentAvailable
	}

	texts := make([]string, len(posts))
	for i, p := range posts {
		texts[i] = p.Text
	}
	candVecs, err := r.Vectorizer.Transform(ctx, texts)
	if err != nil {
		return nil, err
	}

	out := make([]*core.Item, 0, len(posts))
	for i, post := range posts {
		it := core.NewItem(post)
		it.Score = meanSimilarity(rctx.UserVectors, candVecs[i])
		it.PutLabel("recall_source", utils.Label{Value: "similar", Source: "recall"})
		it.PutLabel("similarity", utils.Label{Value: fmt.Sprintf("%.4f", it.Score), Source: "recall"})
		out = append(out, it)
	}

	// 稳定排序：分数相同保持获取顺序
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out, nil
}

// meanSimilarity 对用户全部帖子向量求余弦相似度后取算术平均。
func meanSimilarity(userVecs [][]float64, candidate []float64) float64 {
	if len(userVecs) == 0 {
		return 0
	}
	var sum float64
	for _, uv := range userVecs {
		sum += model.Cosine(uv, candidate)
	}
	return sum / float64(len(userVecs))
}
