package recall

import (
	"context"

	"github.com/rushteam/postrec/core"
	"github.com/rushteam/postrec/pkg/utils"
)

// Following 是社交信号召回源：用户关注的作者发布的帖子。
//
// 语义要点：
//   - 结果保持帖子的获取顺序，不参与相似度排序
//   - 在合并时隐式拥有最高优先级（排在纯相似度候选之前）
//   - 每条帖子都要确认作者仍然存在于社交图谱中：两份存储之间
//     没有事务保证，删除留下的悬挂引用在这里被剔除
type Following struct {
	Posts core.PostStore
	Users core.UserStore
}

func (r *Following) Name() string { return "recall.following" }

func (r *Following) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if rctx == nil || rctx.User == nil || len(rctx.User.Following) == 0 {
		return nil, nil
	}

	posts, err := r.Posts.GetByAuthors(ctx, rctx.User.Following)
	if err != nil {
		return nil, err
	}

	out := make([]*core.Item, 0, len(posts))
	for _, post := range posts {
		ok, err := r.Users.Exists(ctx, post.AuthorID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue // 作者已被删除，丢弃
		}

		it := core.NewItem(post)
		it.PutLabel("recall_source", utils.Label{Value: "following", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
