package store

import (
	"context"
	"sync"

	"github.com/rushteam/postrec/core"
)

// MemoryStore 是内存实现的 Store，用于测试/开发/原型。
// 进程重启后数据丢失；生产环境使用 RedisStore。
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]byte),
	}
}

func (m *MemoryStore) Name() string { return "memory" }

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, core.ErrStoreNotFound
	}
	// 返回副本，避免调用方修改内部状态
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

func (m *MemoryStore) BatchGet(ctx context.Context, keys []string) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string][]byte, len(keys))
	for _, k := range keys {
		if v, ok := m.data[k]; ok {
			out := make([]byte, len(v))
			copy(out, v)
			result[k] = out
		}
	}
	return result, nil
}

func (m *MemoryStore) Close() error { return nil }

// 确保 MemoryStore 实现了 core.Store 接口
var _ core.Store = (*MemoryStore)(nil)
