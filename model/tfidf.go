package model

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/rushteam/postrec/core"
)

// SnapshotVersion 是模型快照的当前格式版本。
// 词表结构或权重公式变更时必须递增，Load 端据此拒绝不兼容的旧快照。
const SnapshotVersion = 1

// TFIDFVectorizer 是 TF-IDF 文本向量化模型。
//
// 核心思想：
//   - 词表把每个词映射到一个固定维度
//   - 词频（TF）乘以逆文档频率（IDF）作为该维度的权重
//   - 向量做 L2 归一化，余弦相似度退化为点积，相同文本相似度恒为 1.0
//
// 工程特征：
//   - 拟合：O(语料规模)，每次都在全量语料上重建（无增量 IDF 簿记）
//   - 转换：O(文本长度)，只读，可被任意多个请求并发调用
//   - 可解释性：好（每个维度对应一个具体的词）
type TFIDFVectorizer struct {
	// Vocabulary 词表：term -> 维度下标
	Vocabulary map[string]int `json:"vocabulary"`

	// IDF 每个维度的逆文档频率权重，长度等于词表大小
	IDF []float64 `json:"idf"`

	// DocCount 拟合时的文档数（用于观测/调试）
	DocCount int `json:"doc_count"`

	// ExtraStopWords 附加停用词（在默认英文停用词表之外）
	ExtraStopWords []string `json:"extra_stop_words,omitempty"`
}

// NewTFIDFVectorizer 创建一个未拟合的 TF-IDF 模型。
func NewTFIDFVectorizer() *TFIDFVectorizer {
	return &TFIDFVectorizer{}
}

// WithExtraStopWords 设置附加停用词。
func (m *TFIDFVectorizer) WithExtraStopWords(words []string) *TFIDFVectorizer {
	m.ExtraStopWords = words
	return m
}

func (m *TFIDFVectorizer) Name() string { return "tfidf" }

// Dimension 返回向量空间维度；未拟合时为 0。
func (m *TFIDFVectorizer) Dimension() int { return len(m.Vocabulary) }

// Fitted 判断模型是否已经拟合过。
func (m *TFIDFVectorizer) Fitted() bool { return len(m.Vocabulary) > 0 }

// Tokenize 把文本切分为词：小写化、按非字母数字切分、剔除停用词与单字符词。
func (m *TFIDFVectorizer) Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if IsStopWord(f) {
			continue
		}
		if m.isExtraStopWord(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func (m *TFIDFVectorizer) isExtraStopWord(word string) bool {
	for _, w := range m.ExtraStopWords {
		if w == word {
			return true
		}
	}
	return false
}

// Fit 在语料上重建词表与 IDF 权重。
// 语料为空、或切词后没有任何有效词时，显式返回 EMPTY_CORPUS。
//
// IDF 采用平滑公式 ln((1+n)/(1+df)) + 1，保证权重恒为正，
// 出现在所有文档中的词权重最低但不为零。
func (m *TFIDFVectorizer) Fit(corpus []string) error {
	if len(corpus) == 0 {
		return core.ErrEmptyCorpus
	}

	// 统计文档频率
	df := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]bool)
		for _, tok := range m.Tokenize(doc) {
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}
	if len(df) == 0 {
		return core.ErrEmptyCorpus
	}

	// 词表按字典序编号，保证同一语料两次拟合产出完全相同的模型
	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(corpus))
	for i, t := range terms {
		vocab[t] = i
		idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	m.Vocabulary = vocab
	m.IDF = idf
	m.DocCount = len(corpus)
	return nil
}

// Transform 用当前拟合的模型把文本批量转为 L2 归一化的 TF-IDF 向量。
// 未拟合时返回 MODEL_NOT_LOADED。不在词表中的词直接忽略（OOV 维度为零）。
func (m *TFIDFVectorizer) Transform(texts []string) ([][]float64, error) {
	if !m.Fitted() {
		return nil, core.ErrModelNotLoaded
	}

	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vectors[i] = m.transformOne(text)
	}
	return vectors, nil
}

func (m *TFIDFVectorizer) transformOne(text string) []float64 {
	vec := make([]float64, len(m.Vocabulary))
	for _, tok := range m.Tokenize(text) {
		if dim, ok := m.Vocabulary[tok]; ok {
			vec[dim] += m.IDF[dim]
		}
	}

	// L2 归一化
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// Cosine 计算两个向量的余弦相似度，分量非负时结果落在 [0,1]。
// 维度不一致（来自不同拟合）或任一向量为零向量时返回 0。
func Cosine(vec1, vec2 []float64) float64 {
	if len(vec1) != len(vec2) {
		return 0.0
	}

	var dot, norm1, norm2 float64
	equal := true
	for i := 0; i < len(vec1); i++ {
		dot += vec1[i] * vec2[i]
		norm1 += vec1[i] * vec1[i]
		norm2 += vec2[i] * vec2[i]
		if vec1[i] != vec2[i] {
			equal = false
		}
	}

	if norm1 == 0 || norm2 == 0 {
		return 0.0
	}
	// 逐分量相等的向量直接判 1.0：开方的浮点误差不应破坏
	// "相同文本相似度恰为 1" 这一约定
	if equal {
		return 1.0
	}

	sim := dot / (math.Sqrt(norm1) * math.Sqrt(norm2))
	// 浮点误差可能让相同向量略超 1.0
	if sim > 1.0 {
		sim = 1.0
	}
	return sim
}

// snapshot 是持久化的模型格式，带显式版本号。
type snapshot struct {
	Version    int             `json:"version"`
	Vectorizer TFIDFVectorizer `json:"vectorizer"`
}

// Snapshot 把已拟合的模型序列化为单个不透明 blob。
func (m *TFIDFVectorizer) Snapshot() ([]byte, error) {
	if !m.Fitted() {
		return nil, core.ErrModelNotLoaded
	}
	return json.Marshal(snapshot{
		Version:    SnapshotVersion,
		Vectorizer: *m,
	})
}

// RestoreTFIDF 从快照 blob 恢复模型；版本不匹配时拒绝加载。
func RestoreTFIDF(data []byte) (*TFIDFVectorizer, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse model snapshot: %w", err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported model snapshot version %d (want %d)", snap.Version, SnapshotVersion)
	}
	restored := snap.Vectorizer
	return &restored, nil
}
