package core

import "github.com/rushteam/postrec/pkg/utils"

// Item 是推荐链路中的统一承载结构：帖子内容、分数、标签。
// Labels 用于解释与策略驱动；Score 用于排序决策（余弦相似度，[0,1]）。
// Item 是单次请求内的临时打分单元，不落盘。
type Item struct {
	ID       string
	AuthorID string
	Text     string
	Score    float64
	Labels   map[string]utils.Label
}

func NewItem(post Post) *Item {
	return &Item{
		ID:       post.ID,
		AuthorID: post.AuthorID,
		Text:     post.Text,
		Labels:   make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// GetLabel 获取 Label。
func (it *Item) GetLabel(key string) (utils.Label, bool) {
	if it.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := it.Labels[key]
	return lbl, ok
}
