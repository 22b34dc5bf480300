// Package engine 实现推荐引擎：为给定用户产出一个有序、去重、截断到
// Top-N 的推荐帖子列表。
//
// 单次 Recommend 的链路（全部同步，单请求内无后台并发写）：
//
//	解析用户 → 取用户自己的帖子（相似度锚点）→ 向量化
//	→ Pipeline: 召回(社交信号 + 相似度) → 过滤(作者复验) → 去重/截断
//
// 任何一步的存储失败都中止整个请求，不返回部分推荐列表，内部不重试。
package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rushteam/postrec/core"
	"github.com/rushteam/postrec/filter"
	"github.com/rushteam/postrec/index"
	"github.com/rushteam/postrec/pipeline"
	"github.com/rushteam/postrec/recall"
	"github.com/rushteam/postrec/rerank"
)

// DefaultTopN 是未指定 top_n 时的默认截断数量。
const DefaultTopN = 5

// Recommendation 是对外返回的单条推荐。
type Recommendation struct {
	PostID string `json:"postId"`
	UserID string `json:"userId"` // 帖子作者
	Text   string `json:"text"`
}

// Engine 组合帖子存储、社交图谱与相似度索引，对外提供推荐与模型更新。
type Engine struct {
	posts core.PostStore
	users core.UserStore
	index *index.SimilarityIndex

	// filterExpr 是可选的 CEL 候选过滤表达式（配置下发）
	filterExpr string
}

// Option 配置 Engine。
type Option func(*Engine)

// WithFilterExpr 设置候选过滤的 CEL 表达式。
func WithFilterExpr(expr string) Option {
	return func(e *Engine) { e.filterExpr = expr }
}

// New 创建推荐引擎。
func New(posts core.PostStore, users core.UserStore, idx *index.SimilarityIndex, opts ...Option) *Engine {
	e := &Engine{
		posts: posts,
		users: users,
		index: idx,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recommend 为 userID 产出至多 topN 条推荐，按 postId 唯一。
//
// 排序结构：社交信号（关注作者的帖子，获取顺序）整体排在相似度候选
// （分数降序，并列按获取顺序）之前；同一条帖子两条路径都命中时，
// 社交信号赢。去重之后才截断。
func (e *Engine) Recommend(ctx context.Context, userID string, topN int) ([]Recommendation, error) {
	if topN <= 0 {
		topN = DefaultTopN
	}

	// 1. 解析用户
	user, err := e.users.GetByID(ctx, userID)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, core.ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	// 2. 用户自己的帖子是相似度锚点：没发过帖就没有词法指纹，
	//    这是真实约束而不是缺陷
	own, err := e.posts.GetByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user posts: %w", err)
	}
	if len(own) == 0 {
		return nil, core.ErrNoUserContent
	}

	// 3. 向量化用户全部帖子（整个请求用同一个已加载模型）
	texts := make([]string, len(own))
	for i, p := range own {
		texts[i] = p.Text
	}
	userVecs, err := e.index.Transform(ctx, texts)
	if err != nil {
		return nil, err
	}

	rctx := &core.RecommendContext{
		UserID:      userID,
		User:        user,
		UserVectors: userVecs,
		TopN:        topN,
	}

	// 4. 召回 → 过滤 → 截断
	items, err := e.buildPipeline(topN).Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}

	out := make([]Recommendation, 0, len(items))
	for _, it := range items {
		out = append(out, Recommendation{
			PostID: it.ID,
			UserID: it.AuthorID,
			Text:   it.Text,
		})
	}
	return out, nil
}

// buildPipeline 按请求参数组装固定形态的推荐 Pipeline。
// Node 都是无状态小对象，逐请求构造的成本可以忽略。
func (e *Engine) buildPipeline(topN int) *pipeline.Pipeline {
	filters := []filter.Filter{
		// 候选获取与此处之间可能发生作者删除，复验是唯一防线
		&filter.AuthorExists{Users: e.users},
	}
	if e.filterExpr != "" {
		filters = append(filters, filter.NewExpr(e.filterExpr))
	}

	return &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&recall.Fanout{
				// 声明顺序即合并优先级：社交信号在前
				Sources: []recall.Source{
					&recall.Following{Posts: e.posts, Users: e.users},
					&recall.Similar{Posts: e.posts, Vectorizer: e.index},
				},
				Dedup: true,
			},
			&filter.Node{Filters: filters},
			&rerank.TopN{N: topN},
		},
	}
}

// Ingest 接收一篇新帖子：先在"全量语料 + 新文档"上重新拟合并持久化
// 模型，再落库帖子。扩展失败时帖子不落库。
func (e *Engine) Ingest(ctx context.Context, text string, authorID string) (core.Post, error) {
	post := core.Post{
		ID:       uuid.NewString(),
		AuthorID: authorID,
		Text:     text,
	}

	if err := e.index.Extend(ctx, text, authorID); err != nil {
		return core.Post{}, err
	}
	if err := e.posts.Insert(ctx, post); err != nil {
		return core.Post{}, fmt.Errorf("insert post: %w", err)
	}
	return post, nil
}

// DeletePost 删除一条帖子（透传到 PostStore）；不存在时返回 NOT_FOUND。
// 模型不随删除重新拟合：过期词表是允许的，下一次 Extend 会覆盖。
func (e *Engine) DeletePost(ctx context.Context, postID string) error {
	return e.posts.DeleteByID(ctx, postID)
}
