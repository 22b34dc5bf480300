package model

// Vectorizer 是文本向量化的最小抽象：在语料上拟合词表，把文本转为可比较的数值向量。
// 具体实现可以是本地 TF-IDF（默认实现），未来也可以是显式命名的增量 IDF 变体；
// 两者是不同的策略，不允许静默互换。
type Vectorizer interface {
	Name() string

	// Fit 在整个语料上重建词表与权重；语料为空时显式拒绝
	Fit(corpus []string) error

	// Transform 用当前已拟合的模型把文本批量转为向量；
	// 拟合之间向量空间维度固定，不同拟合产出的向量不可比较
	Transform(texts []string) ([][]float64, error)

	// Dimension 返回当前向量空间维度（未拟合时为 0）
	Dimension() int
}
