// Package postrec 是一个帖子推荐服务（Post Recommender）。
//
// 设计要点：
// - 双信号召回：社交信号（关注作者的帖子）+ 内容相似度（TF-IDF 余弦），按声明顺序合并
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → ReRank）
// - 模型即资源：相似度模型是读多写少的可换入资源，写入端全量重拟合并原子替换
package postrec

import "github.com/rushteam/postrec/pipeline"

// 轻量 facade：便于用户直接 import "postrec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall = pipeline.KindRecall
	KindFilter = pipeline.KindFilter
	KindReRank = pipeline.KindReRank
)
