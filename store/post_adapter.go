package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/postrec/core"
)

// PostAdapter 是基于 core.Store 的帖子存储适配器，实现 core.PostStore。
//
// key 布局（JSON 文档 + ID 索引列表）：
//
//	帖子文档：{KeyPrefix}:doc:{postID}
//	全量 ID 列表（写入顺序）：{KeyPrefix}:ids
//	作者 ID 列表（写入顺序）：{KeyPrefix}:author:{authorID}
//
// 索引列表的读-改-写没有跨 key 事务保证；两份存储之间的一致性
// 由推荐链路的作者复验步骤兜底，这里不重复建设。
type PostAdapter struct {
	store core.Store

	// KeyPrefix 是存储 key 的前缀，默认 "posts"
	KeyPrefix string
}

// NewPostAdapter 创建一个基于 core.Store 的帖子适配器。
func NewPostAdapter(s core.Store, keyPrefix string) *PostAdapter {
	if keyPrefix == "" {
		keyPrefix = "posts"
	}
	return &PostAdapter{
		store:     s,
		KeyPrefix: keyPrefix,
	}
}

func (a *PostAdapter) Name() string { return "post_adapter(" + a.store.Name() + ")" }

func (a *PostAdapter) docKey(postID string) string      { return a.KeyPrefix + ":doc:" + postID }
func (a *PostAdapter) idsKey() string                   { return a.KeyPrefix + ":ids" }
func (a *PostAdapter) authorKey(authorID string) string { return a.KeyPrefix + ":author:" + authorID }

func (a *PostAdapter) readIDs(ctx context.Context, key string) ([]string, error) {
	data, err := a.store.Get(ctx, key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("parse id list %s: %w", key, err)
	}
	return ids, nil
}

func (a *PostAdapter) writeIDs(ctx context.Context, key string, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, key, data)
}

// Insert 写入一条新帖子并维护两个 ID 索引。
func (a *PostAdapter) Insert(ctx context.Context, post core.Post) error {
	doc, err := json.Marshal(post)
	if err != nil {
		return err
	}
	if err := a.store.Set(ctx, a.docKey(post.ID), doc); err != nil {
		return err
	}

	ids, err := a.readIDs(ctx, a.idsKey())
	if err != nil {
		return err
	}
	if err := a.writeIDs(ctx, a.idsKey(), append(ids, post.ID)); err != nil {
		return err
	}

	authorIDs, err := a.readIDs(ctx, a.authorKey(post.AuthorID))
	if err != nil {
		return err
	}
	return a.writeIDs(ctx, a.authorKey(post.AuthorID), append(authorIDs, post.ID))
}

// getByIDs 按给定顺序批量读取帖子文档；已被删除的 ID 直接跳过。
func (a *PostAdapter) getByIDs(ctx context.Context, ids []string) ([]core.Post, error) {
	if len(ids) == 0 {
		return []core.Post{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = a.docKey(id)
	}
	docs, err := a.store.BatchGet(ctx, keys)
	if err != nil {
		return nil, err
	}

	posts := make([]core.Post, 0, len(ids))
	for i, id := range ids {
		data, ok := docs[keys[i]]
		if !ok {
			continue // 索引里残留的已删除 ID
		}
		var post core.Post
		if err := json.Unmarshal(data, &post); err != nil {
			return nil, fmt.Errorf("parse post %s: %w", id, err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// GetAll 获取全部帖子（写入顺序）。
func (a *PostAdapter) GetAll(ctx context.Context) ([]core.Post, error) {
	ids, err := a.readIDs(ctx, a.idsKey())
	if err != nil {
		return nil, err
	}
	return a.getByIDs(ctx, ids)
}

// GetByAuthor 获取指定作者的全部帖子（写入顺序）。
func (a *PostAdapter) GetByAuthor(ctx context.Context, authorID string) ([]core.Post, error) {
	ids, err := a.readIDs(ctx, a.authorKey(authorID))
	if err != nil {
		return nil, err
	}
	return a.getByIDs(ctx, ids)
}

// GetByAuthors 获取一组作者的全部帖子，按全局写入顺序返回。
func (a *PostAdapter) GetByAuthors(ctx context.Context, authorIDs []string) ([]core.Post, error) {
	want := make(map[string]bool, len(authorIDs))
	for _, id := range authorIDs {
		want[id] = true
	}

	all, err := a.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	posts := make([]core.Post, 0, len(all))
	for _, p := range all {
		if want[p.AuthorID] {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

// GetExcludingAuthors 获取排除指定作者集合之外的全部帖子，按全局写入顺序返回。
func (a *PostAdapter) GetExcludingAuthors(ctx context.Context, authorIDs []string) ([]core.Post, error) {
	skip := make(map[string]bool, len(authorIDs))
	for _, id := range authorIDs {
		skip[id] = true
	}

	all, err := a.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	posts := make([]core.Post, 0, len(all))
	for _, p := range all {
		if !skip[p.AuthorID] {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

// DeleteByID 删除一条帖子；不存在时返回 NOT_FOUND。
func (a *PostAdapter) DeleteByID(ctx context.Context, postID string) error {
	data, err := a.store.Get(ctx, a.docKey(postID))
	if err != nil {
		return err // NOT_FOUND 原样上抛
	}
	var post core.Post
	if err := json.Unmarshal(data, &post); err != nil {
		return fmt.Errorf("parse post %s: %w", postID, err)
	}

	if err := a.store.Delete(ctx, a.docKey(postID)); err != nil {
		return err
	}

	if ids, err := a.readIDs(ctx, a.idsKey()); err == nil {
		if err := a.writeIDs(ctx, a.idsKey(), removeID(ids, postID)); err != nil {
			return err
		}
	}
	if ids, err := a.readIDs(ctx, a.authorKey(post.AuthorID)); err == nil {
		if err := a.writeIDs(ctx, a.authorKey(post.AuthorID), removeID(ids, postID)); err != nil {
			return err
		}
	}
	return nil
}

func removeID(ids []string, target string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

// 确保 PostAdapter 实现了 core.PostStore 接口
var _ core.PostStore = (*PostAdapter)(nil)
