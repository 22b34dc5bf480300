package model

import (
	"math"
	"testing"

	"github.com/rushteam/postrec/core"
)

func TestTFIDFVectorizer_Fit(t *testing.T) {
	tests := []struct {
		name    string
		corpus  []string
		wantErr bool
		wantDim int
	}{
		{
			name:    "empty corpus rejected",
			corpus:  []string{},
			wantErr: true,
		},
		{
			name:    "corpus of stop words only rejected",
			corpus:  []string{"the and of", "is are was"},
			wantErr: true,
		},
		{
			name:    "two documents",
			corpus:  []string{"cats are great pets", "stock market fell today"},
			wantErr: false,
			// cats great pets + stock market fell today（"are" 是停用词）
			wantDim: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewTFIDFVectorizer()
			err := m.Fit(tt.corpus)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Fit() expected error, got nil")
				}
				if !core.IsEmptyCorpus(err) {
					t.Errorf("Fit() error = %v, want EMPTY_CORPUS", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Fit() error = %v", err)
			}
			if m.Dimension() != tt.wantDim {
				t.Errorf("Dimension() = %d, want %d", m.Dimension(), tt.wantDim)
			}
		})
	}
}

func TestTFIDFVectorizer_FitDeterministic(t *testing.T) {
	corpus := []string{"cats are great pets", "dogs love walks", "stock market fell"}

	m1 := NewTFIDFVectorizer()
	m2 := NewTFIDFVectorizer()
	if err := m1.Fit(corpus); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if err := m2.Fit(corpus); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	// 同一语料两次拟合产出完全相同的词表编号与权重
	for term, dim := range m1.Vocabulary {
		if m2.Vocabulary[term] != dim {
			t.Errorf("vocabulary mismatch for %q: %d vs %d", term, dim, m2.Vocabulary[term])
		}
	}
	for i := range m1.IDF {
		if m1.IDF[i] != m2.IDF[i] {
			t.Errorf("idf mismatch at dim %d", i)
		}
	}
}

func TestTFIDFVectorizer_Transform(t *testing.T) {
	m := NewTFIDFVectorizer()

	if _, err := m.Transform([]string{"anything"}); !core.IsModelNotLoaded(err) {
		t.Fatalf("Transform() before fit error = %v, want MODEL_NOT_LOADED", err)
	}

	corpus := []string{"cats are great pets", "stock market fell today", "dogs love the park"}
	if err := m.Fit(corpus); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	vecs, err := m.Transform([]string{"cats are great pets", "stock market fell today", "nothing in vocabulary xyzzy"})
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if len(vecs) != 3 {
		t.Fatalf("Transform() returned %d vectors, want 3", len(vecs))
	}
	for i, v := range vecs {
		if len(v) != m.Dimension() {
			t.Errorf("vector %d has dim %d, want %d", i, len(v), m.Dimension())
		}
	}

	// 相同文本 → 余弦相似度恰为 1.0
	if sim := Cosine(vecs[0], vecs[0]); sim != 1.0 {
		t.Errorf("Cosine(identical) = %v, want 1.0", sim)
	}

	// 无共享词 → 0
	if sim := Cosine(vecs[0], vecs[1]); sim != 0.0 {
		t.Errorf("Cosine(disjoint) = %v, want 0.0", sim)
	}

	// 全 OOV → 零向量，与任何向量相似度为 0
	if sim := Cosine(vecs[0], vecs[2]); sim != 0.0 {
		t.Errorf("Cosine(vs zero vector) = %v, want 0.0", sim)
	}

	// L2 归一化：非零向量模长为 1
	var norm float64
	for _, x := range vecs[0] {
		norm += x * x
	}
	if math.Abs(math.Sqrt(norm)-1.0) > 1e-9 {
		t.Errorf("vector norm = %v, want 1.0", math.Sqrt(norm))
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1.0},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0.0},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0.0},
		{"dimension mismatch", []float64{1}, []float64{1, 1}, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cosine() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTFIDFVectorizer_Snapshot(t *testing.T) {
	m := NewTFIDFVectorizer().WithExtraStopWords([]string{"banana"})
	if _, err := m.Snapshot(); !core.IsModelNotLoaded(err) {
		t.Fatalf("Snapshot() before fit error = %v, want MODEL_NOT_LOADED", err)
	}

	corpus := []string{"cats are great pets banana", "stock market fell"}
	if err := m.Fit(corpus); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if _, ok := m.Vocabulary["banana"]; ok {
		t.Error("extra stop word leaked into vocabulary")
	}

	blob, err := m.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	restored, err := RestoreTFIDF(blob)
	if err != nil {
		t.Fatalf("RestoreTFIDF() error = %v", err)
	}
	if restored.Dimension() != m.Dimension() {
		t.Errorf("restored dimension = %d, want %d", restored.Dimension(), m.Dimension())
	}

	// 恢复后的模型产出与原模型一致的向量
	orig, _ := m.Transform([]string{"cats are great pets"})
	back, _ := restored.Transform([]string{"cats are great pets"})
	if sim := Cosine(orig[0], back[0]); sim != 1.0 {
		t.Errorf("restored model transform differs, cosine = %v", sim)
	}
}

func TestRestoreTFIDF_VersionMismatch(t *testing.T) {
	blob := []byte(`{"version": 99, "vectorizer": {"vocabulary": {"a": 0}, "idf": [1.0]}}`)
	if _, err := RestoreTFIDF(blob); err == nil {
		t.Fatal("RestoreTFIDF() expected error for unsupported version")
	}
}
