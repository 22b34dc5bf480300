package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rushteam/postrec/core"
	"github.com/rushteam/postrec/engine"
	"github.com/rushteam/postrec/index"
	"github.com/rushteam/postrec/store"
)

func newTestServer(t *testing.T) (*Server, *store.UserAdapter) {
	t.Helper()
	kv := store.NewMemoryStore()
	posts := store.NewPostAdapter(kv, "")
	users := store.NewUserAdapter(kv, "")
	idx := index.New(kv, posts)
	eng := engine.New(posts, users, idx)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(Config{}, eng, logger), users
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s.Handler(), http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestUpdateModel(t *testing.T) {
	s, users := newTestServer(t)
	if err := users.Upsert(context.Background(), core.User{ID: "alice"}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	tests := []struct {
		name       string
		body       any
		wantStatus int
	}{
		{"ok", updateModelRequest{Text: "cats are great pets", PostedBy: "alice"}, http.StatusOK},
		{"missing text", updateModelRequest{PostedBy: "alice"}, http.StatusBadRequest},
		{"missing posted_by", updateModelRequest{Text: "hello world"}, http.StatusBadRequest},
		{"malformed json", "{oops", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec *httptest.ResponseRecorder
			if raw, ok := tt.body.(string); ok {
				req := httptest.NewRequest(http.MethodPost, "/update_model", bytes.NewBufferString(raw))
				rec = httptest.NewRecorder()
				s.Handler().ServeHTTP(rec, req)
			} else {
				rec = doJSON(t, s.Handler(), http.MethodPost, "/update_model", tt.body)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %q)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}

	t.Run("success message", func(t *testing.T) {
		rec := doJSON(t, s.Handler(), http.MethodPost, "/update_model",
			updateModelRequest{Text: "dogs love walks", PostedBy: "alice"})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		resp := decodeJSON[messageResponse](t, rec)
		if resp.Message != "Model updated successfully." {
			t.Errorf("message = %q", resp.Message)
		}
	})
}

func TestRecommendPosts(t *testing.T) {
	s, users := newTestServer(t)
	ctx := context.Background()
	for _, u := range []core.User{
		{ID: "alice"},
		{ID: "bob"},
		{ID: "noposts"},
	} {
		if err := users.Upsert(ctx, u); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	for _, seed := range []updateModelRequest{
		{Text: "cats are great pets", PostedBy: "alice"},
		{Text: "cats make wonderful companions", PostedBy: "bob"},
		{Text: "stock market fell today", PostedBy: "bob"},
	} {
		if rec := doJSON(t, s.Handler(), http.MethodPost, "/update_model", seed); rec.Code != http.StatusOK {
			t.Fatalf("seed failed: %d %s", rec.Code, rec.Body.String())
		}
	}

	t.Run("ok", func(t *testing.T) {
		rec := doJSON(t, s.Handler(), http.MethodPost, "/recommend_posts",
			recommendRequest{UserID: "alice", TopN: 5})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d (body %q)", rec.Code, rec.Body.String())
		}
		resp := decodeJSON[recommendResponse](t, rec)
		if len(resp.Recommendations) != 2 {
			t.Fatalf("got %d recommendations, want 2", len(resp.Recommendations))
		}
		for _, r := range resp.Recommendations {
			if r.UserID != "bob" {
				t.Errorf("unexpected author %q in recommendations", r.UserID)
			}
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := doJSON(t, s.Handler(), http.MethodPost, "/recommend_posts",
			recommendRequest{UserID: "nobody"})
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		resp := decodeJSON[errorResponse](t, rec)
		if resp.Code != core.ErrorCodeUserNotFound {
			t.Errorf("code = %q, want %q", resp.Code, core.ErrorCodeUserNotFound)
		}
	})

	t.Run("user without posts", func(t *testing.T) {
		rec := doJSON(t, s.Handler(), http.MethodPost, "/recommend_posts",
			recommendRequest{UserID: "noposts"})
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		resp := decodeJSON[errorResponse](t, rec)
		if resp.Code != core.ErrorCodeNoUserContent {
			t.Errorf("code = %q, want %q", resp.Code, core.ErrorCodeNoUserContent)
		}
	})

	t.Run("missing user_id", func(t *testing.T) {
		rec := doJSON(t, s.Handler(), http.MethodPost, "/recommend_posts", recommendRequest{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("top_n caps result", func(t *testing.T) {
		rec := doJSON(t, s.Handler(), http.MethodPost, "/recommend_posts",
			recommendRequest{UserID: "alice", TopN: 1})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		resp := decodeJSON[recommendResponse](t, rec)
		if len(resp.Recommendations) != 1 {
			t.Errorf("got %d recommendations, want 1", len(resp.Recommendations))
		}
	})
}

func TestDeletePost(t *testing.T) {
	s, users := newTestServer(t)
	ctx := context.Background()
	for _, id := range []string{"alice", "bob"} {
		if err := users.Upsert(ctx, core.User{ID: id}); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}
	for _, seed := range []updateModelRequest{
		{Text: "cats are great pets", PostedBy: "alice"},
		{Text: "cats make wonderful companions", PostedBy: "bob"},
	} {
		if rec := doJSON(t, s.Handler(), http.MethodPost, "/update_model", seed); rec.Code != http.StatusOK {
			t.Fatalf("seed failed: %d", rec.Code)
		}
	}

	rec := doJSON(t, s.Handler(), http.MethodPost, "/recommend_posts",
		recommendRequest{UserID: "alice"})
	resp := decodeJSON[recommendResponse](t, rec)
	if len(resp.Recommendations) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(resp.Recommendations))
	}
	target := resp.Recommendations[0].PostID

	t.Run("ok", func(t *testing.T) {
		rec := doJSON(t, s.Handler(), http.MethodDelete, fmt.Sprintf("/delete_post/%s", target), nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d (body %q)", rec.Code, rec.Body.String())
		}
		resp := decodeJSON[messageResponse](t, rec)
		if resp.Message != "Post deleted successfully." {
			t.Errorf("message = %q", resp.Message)
		}
	})

	t.Run("missing post", func(t *testing.T) {
		rec := doJSON(t, s.Handler(), http.MethodDelete, "/delete_post/no-such-id", nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("gone from recommendations", func(t *testing.T) {
		rec := doJSON(t, s.Handler(), http.MethodPost, "/recommend_posts",
			recommendRequest{UserID: "alice"})
		// 唯一候选被删除后，候选池为空，按失败策略返回 404
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404 (body %q)", rec.Code, rec.Body.String())
		}
		resp := decodeJSON[errorResponse](t, rec)
		if resp.Code != core.ErrorCodeNoContentAvailable {
			t.Errorf("code = %q, want %q", resp.Code, core.ErrorCodeNoContentAvailable)
		}
	})
}
