// Package store 包含存储实现与领域适配器。
//
// 注意：接口定义在 core 包（core.Store / core.PostStore / core.UserStore），
// 本包只提供实现：
//
//	var kv core.Store = store.NewMemoryStore()
//	posts := store.NewPostAdapter(kv, "")
//	users := store.NewUserAdapter(kv, "")
package store
