package core

import "context"

// Store 是底层 KV 存储的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 遵循依赖倒置原则：领域层定义接口，基础设施层实现接口
//   - 避免循环依赖：领域层不依赖基础设施层
//
// 使用场景：
//   - 帖子/用户文档存储（JSON 文档 + ID 索引列表）
//   - 相似度模型快照（单个不透明 blob，整体读写）
//
// 实现：
//   - store.MemoryStore 实现此接口（测试/开发）
//   - store.RedisStore 实现此接口（生产）
type Store interface {
	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// Get 读取单个 key 的值
	Get(ctx context.Context, key string) ([]byte, error)

	// Set 写入单个 key-value
	Set(ctx context.Context, key string, value []byte) error

	// Delete 删除单个 key
	Delete(ctx context.Context, key string) error

	// BatchGet 批量读取（减少网络往返）
	BatchGet(ctx context.Context, keys []string) (map[string][]byte, error)

	// Close 关闭连接/释放资源
	Close() error
}

// Store 错误定义（使用统一的 DomainError）
var (
	// ErrStoreNotFound 表示 key 不存在
	ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: key not found")

	// ErrStoreUnavailable 表示底层存储不可用（包装后端失败）
	ErrStoreUnavailable = NewDomainError(ModuleStore, ErrorCodeUnavailable, "store: backend unavailable")
)

// IsStoreNotFound 检查错误是否为 key 不存在
func IsStoreNotFound(err error) bool {
	return hasCode(err, ModuleStore, ErrorCodeNotFound)
}

// IsStoreUnavailable 检查错误是否为存储不可用
func IsStoreUnavailable(err error) bool {
	return hasCode(err, ModuleStore, ErrorCodeUnavailable)
}
