package core

import "context"

// PostStore 是帖子存储的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 返回顺序即"获取顺序"：GetAll / GetByAuthor / GetByAuthors /
//     GetExcludingAuthors 都按写入顺序返回，相似度打分的并列项
//     以此顺序稳定决胜
//
// 实现：
//   - store.PostAdapter 实现此接口（基于 core.Store）
type PostStore interface {
	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// Insert 写入一条新帖子
	Insert(ctx context.Context, post Post) error

	// GetAll 获取全部帖子（按写入顺序）
	GetAll(ctx context.Context) ([]Post, error)

	// GetByAuthor 获取指定作者的全部帖子
	GetByAuthor(ctx context.Context, authorID string) ([]Post, error)

	// GetByAuthors 获取一组作者的全部帖子（按写入顺序）
	GetByAuthors(ctx context.Context, authorIDs []string) ([]Post, error)

	// GetExcludingAuthors 获取排除指定作者集合之外的全部帖子
	GetExcludingAuthors(ctx context.Context, authorIDs []string) ([]Post, error)

	// DeleteByID 删除一条帖子；帖子不存在时返回 NOT_FOUND
	DeleteByID(ctx context.Context, postID string) error
}

// UserStore 是社交图谱存储的领域接口（对推荐链路只读）。
//
// 实现：
//   - store.UserAdapter 实现此接口（基于 core.Store）
type UserStore interface {
	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// GetByID 按 ID 获取账号；不存在时返回 NOT_FOUND
	GetByID(ctx context.Context, userID string) (*User, error)

	// ListIDs 列出全部账号 ID
	ListIDs(ctx context.Context) ([]string, error)

	// Exists 检查账号是否存在（候选作者复验用，语义上等价于
	// GetByID == nil 判断，但允许后端用更省的探测实现）
	Exists(ctx context.Context, userID string) (bool, error)
}
