// Package index 维护帖子文本的向量空间表示：拟合、增量扩展、向量化、持久化。
//
// 设计要点：
//   - 读多写少：Transform 只读，任意并发；Fit/Extend 独占写锁
//   - 原子换入：fit 新模型 → 持久化 → 换入内存引用，整段在写锁内完成，
//     并发的 Transform 只会看到旧模型或完整的新模型
//   - Extend 没有真正的增量更新：每次都在全量语料 + 新文档上重新拟合，
//     O(语料规模) 的写入成本是本层设计的已知上限，不做静默优化
package index

import (
	"context"
	"fmt"
	"sync"

	"github.com/rushteam/postrec/core"
	"github.com/rushteam/postrec/model"
)

// DefaultModelKey 是模型快照在 Store 中的默认 key。
const DefaultModelKey = "model:tfidf"

// SimilarityIndex 持有当前已拟合的向量化模型，并负责其持久化生命周期。
type SimilarityIndex struct {
	mu  sync.RWMutex
	vec *model.TFIDFVectorizer // 当前加载的模型；nil 表示从未 fit/load

	store core.Store     // 模型快照的持久化后端
	posts core.PostStore // Extend 重新拟合时的语料来源
	key   string

	extraStopWords []string
}

// Option 配置 SimilarityIndex。
type Option func(*SimilarityIndex)

// WithModelKey 覆盖模型快照的存储 key。
func WithModelKey(key string) Option {
	return func(idx *SimilarityIndex) { idx.key = key }
}

// WithExtraStopWords 设置拟合时的附加停用词。
func WithExtraStopWords(words []string) Option {
	return func(idx *SimilarityIndex) { idx.extraStopWords = words }
}

// New 创建一个相似度索引。store 用于模型快照持久化，posts 是全量语料来源。
func New(store core.Store, posts core.PostStore, opts ...Option) *SimilarityIndex {
	idx := &SimilarityIndex{
		store: store,
		posts: posts,
		key:   DefaultModelKey,
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

func (idx *SimilarityIndex) newVectorizer() *model.TFIDFVectorizer {
	return model.NewTFIDFVectorizer().WithExtraStopWords(idx.extraStopWords)
}

// Fit 在给定语料上拟合模型、持久化快照并换入内存。
// 语料为空时返回 EMPTY_CORPUS，旧模型保持不变。
func (idx *SimilarityIndex) Fit(ctx context.Context, corpus []string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.fitLocked(ctx, corpus)
}

// fitLocked 是"拟合 → 持久化 → 换入"的独占临界区；调用方必须持有写锁。
func (idx *SimilarityIndex) fitLocked(ctx context.Context, corpus []string) error {
	vec := idx.newVectorizer()
	if err := vec.Fit(corpus); err != nil {
		return err
	}

	blob, err := vec.Snapshot()
	if err != nil {
		return err
	}
	if err := idx.store.Set(ctx, idx.key, blob); err != nil {
		return fmt.Errorf("persist model snapshot: %w", err)
	}

	idx.vec = vec
	return nil
}

// Extend 读取全量现存语料，追加一篇新文档，在组合语料上整体重新拟合，
// 然后持久化并替换当前模型。authorID 仅用于观测，不参与权重计算。
//
// 写入成本是 O(语料规模)：没有增量 IDF 簿记，也没有词表漂移处理，
// 换来的是实现上的简单与新鲜度。插入量远低于读取量时可以接受。
func (idx *SimilarityIndex) Extend(ctx context.Context, text string, authorID string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	posts, err := idx.posts.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	corpus := make([]string, 0, len(posts)+1)
	for _, p := range posts {
		corpus = append(corpus, p.Text)
	}
	corpus = append(corpus, text)

	return idx.fitLocked(ctx, corpus)
}

// Transform 用当前加载的模型把文本批量转为向量。
// 允许用"过期"的模型服务转换请求：语料变更后、重新拟合前产出的向量
// 只保证与同一次拟合的其他向量可比。
func (idx *SimilarityIndex) Transform(ctx context.Context, texts []string) ([][]float64, error) {
	idx.mu.RLock()
	vec := idx.vec
	idx.mu.RUnlock()

	if vec == nil {
		return nil, core.ErrModelNotLoaded
	}
	return vec.Transform(texts)
}

// Load 从持久化存储读取模型快照并换入内存。
// 从未持久化过任何模型时返回 MODEL_NOT_LOADED；
// 快照版本不兼容时返回错误且不替换现有模型。
func (idx *SimilarityIndex) Load(ctx context.Context) error {
	blob, err := idx.store.Get(ctx, idx.key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return core.ErrModelNotLoaded
		}
		return fmt.Errorf("read model snapshot: %w", err)
	}

	// 快照自带拟合时生效的附加停用词，原样恢复即可；
	// 不在词表中的词在 Transform 阶段本来就会被忽略
	vec, err := model.RestoreTFIDF(blob)
	if err != nil {
		return err
	}

	idx.mu.Lock()
	idx.vec = vec
	idx.mu.Unlock()
	return nil
}

// Loaded 判断当前是否有可用模型。
func (idx *SimilarityIndex) Loaded() bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.vec != nil
}

// Dimension 返回当前模型的向量空间维度；无模型时为 0。
func (idx *SimilarityIndex) Dimension() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	if idx.vec == nil {
		return 0
	}
	return idx.vec.Dimension()
}
