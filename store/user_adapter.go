package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/postrec/core"
)

// UserAdapter 是基于 core.Store 的社交图谱适配器，实现 core.UserStore。
//
// key 布局：
//
//	账号文档：{KeyPrefix}:doc:{userID}
//	全量 ID 列表：{KeyPrefix}:ids
//
// 推荐链路对账号只读；Upsert/Remove 是运维/灌数据入口。
type UserAdapter struct {
	store core.Store

	// KeyPrefix 是存储 key 的前缀，默认 "users"
	KeyPrefix string
}

// NewUserAdapter 创建一个基于 core.Store 的社交图谱适配器。
func NewUserAdapter(s core.Store, keyPrefix string) *UserAdapter {
	if keyPrefix == "" {
		keyPrefix = "users"
	}
	return &UserAdapter{
		store:     s,
		KeyPrefix: keyPrefix,
	}
}

func (a *UserAdapter) Name() string { return "user_adapter(" + a.store.Name() + ")" }

func (a *UserAdapter) docKey(userID string) string { return a.KeyPrefix + ":doc:" + userID }
func (a *UserAdapter) idsKey() string              { return a.KeyPrefix + ":ids" }

// GetByID 按 ID 获取账号；不存在时返回 NOT_FOUND。
func (a *UserAdapter) GetByID(ctx context.Context, userID string) (*core.User, error) {
	data, err := a.store.Get(ctx, a.docKey(userID))
	if err != nil {
		return nil, err
	}

	var user core.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("parse user %s: %w", userID, err)
	}
	return &user, nil
}

// ListIDs 列出全部账号 ID。
func (a *UserAdapter) ListIDs(ctx context.Context) ([]string, error) {
	data, err := a.store.Get(ctx, a.idsKey())
	if err != nil {
		if core.IsStoreNotFound(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("parse user id list: %w", err)
	}
	return ids, nil
}

// Exists 检查账号是否存在。
func (a *UserAdapter) Exists(ctx context.Context, userID string) (bool, error) {
	_, err := a.store.Get(ctx, a.docKey(userID))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Upsert 写入或覆盖一个账号（运维/灌数据入口，不属于推荐链路）。
func (a *UserAdapter) Upsert(ctx context.Context, user core.User) error {
	doc, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := a.store.Set(ctx, a.docKey(user.ID), doc); err != nil {
		return err
	}

	ids, err := a.ListIDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == user.ID {
			return nil // 已在列表中
		}
	}
	data, err := json.Marshal(append(ids, user.ID))
	if err != nil {
		return err
	}
	return a.store.Set(ctx, a.idsKey(), data)
}

// Remove 删除一个账号（测试悬挂引用场景用）。
func (a *UserAdapter) Remove(ctx context.Context, userID string) error {
	if err := a.store.Delete(ctx, a.docKey(userID)); err != nil {
		return err
	}

	ids, err := a.ListIDs(ctx)
	if err != nil {
		return err
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != userID {
			out = append(out, id)
		}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, a.idsKey(), data)
}

// 确保 UserAdapter 实现了 core.UserStore 接口
var _ core.UserStore = (*UserAdapter)(nil)
