package core

// RecommendContext 承载单次推荐请求的用户信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID string

	// User 是已解析的社交图谱账号（含 Following 集合）
	User *User

	// UserVectors 是用户自己全部帖子的向量表示，
	// 由引擎在进入 Pipeline 之前通过相似度索引一次性计算好。
	// 候选打分对每个用户向量求余弦相似度后取算术平均。
	UserVectors [][]float64

	// TopN 是本次请求的截断数量
	TopN int
}
