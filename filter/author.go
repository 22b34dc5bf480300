package filter

import (
	"context"

	"github.com/rushteam/postrec/core"
)

// AuthorExists 是作者复验过滤器：剔除作者已不在社交图谱中的候选。
//
// 候选获取与本步检查之间没有跨存储的事务保证，作者可能在两次读之间
// 被删除。这次重复查询是对抗过期引用的唯一防线，不能省。
type AuthorExists struct {
	Users core.UserStore
}

func (f *AuthorExists) Name() string { return "filter.author_exists" }

func (f *AuthorExists) ShouldFilter(
	ctx context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	ok, err := f.Users.Exists(ctx, item.AuthorID)
	if err != nil {
		return false, err
	}
	return !ok, nil
}
