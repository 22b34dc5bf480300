package core

// Post 是内容条目。创建后不可变，只能通过 PostStore 删除。
// 推荐链路只读取 Post：ID/AuthorID 是不透明标识，Text 是相似度计算的唯一依据。
type Post struct {
	ID       string `json:"id"`
	AuthorID string `json:"author_id"`
	Text     string `json:"text"`
}

// User 是社交图谱中的账号：ID + 关注的作者集合。
// 推荐链路对 User 只读；Following 驱动社交信号召回。
type User struct {
	ID        string   `json:"id"`
	Following []string `json:"following"`
}
