package filter

import (
	"context"
	"testing"

	"github.com/rushteam/postrec/core"
	"github.com/rushteam/postrec/store"
)

func TestAuthorExists(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	users := store.NewUserAdapter(kv, "")
	if err := users.Upsert(ctx, core.User{ID: "alive"}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	f := &AuthorExists{Users: users}

	tests := []struct {
		name     string
		authorID string
		want     bool
	}{
		{"existing author kept", "alive", false},
		{"deleted author filtered", "gone", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := core.NewItem(core.Post{ID: "p", AuthorID: tt.authorID, Text: "x"})
			got, err := f.ShouldFilter(ctx, nil, it)
			if err != nil {
				t.Fatalf("ShouldFilter() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpr(t *testing.T) {
	rctx := &core.RecommendContext{UserID: "u", TopN: 5}

	tests := []struct {
		name    string
		expr    string
		item    core.Post
		score   float64
		want    bool
		wantErr bool
	}{
		{
			name: "short text filtered",
			expr: `size(item.text) < 5`,
			item: core.Post{ID: "p1", AuthorID: "a", Text: "hi"},
			want: true,
		},
		{
			name: "long text kept",
			expr: `size(item.text) < 5`,
			item: core.Post{ID: "p2", AuthorID: "a", Text: "a longer post body"},
			want: false,
		},
		{
			name:  "zero score filtered",
			expr:  `item.score == 0.0`,
			item:  core.Post{ID: "p3", AuthorID: "a", Text: "whatever"},
			score: 0,
			want:  true,
		},
		{
			name: "empty expression keeps everything",
			expr: "",
			item: core.Post{ID: "p4", AuthorID: "a", Text: "x"},
			want: false,
		},
		{
			name:    "non-boolean expression is an error",
			expr:    `item.text`,
			item:    core.Post{ID: "p5", AuthorID: "a", Text: "x"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := core.NewItem(tt.item)
			it.Score = tt.score
			got, err := NewExpr(tt.expr).ShouldFilter(context.Background(), rctx, it)
			if tt.wantErr {
				if err == nil {
					t.Fatal("ShouldFilter() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ShouldFilter() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNode_Process(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	users := store.NewUserAdapter(kv, "")
	if err := users.Upsert(ctx, core.User{ID: "alive"}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	n := &Node{Filters: []Filter{&AuthorExists{Users: users}}}
	items := []*core.Item{
		core.NewItem(core.Post{ID: "keep", AuthorID: "alive", Text: "x"}),
		core.NewItem(core.Post{ID: "drop", AuthorID: "gone", Text: "y"}),
		nil,
	}

	out, err := n.Process(ctx, &core.RecommendContext{UserID: "u"}, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 1 || out[0].ID != "keep" {
		t.Errorf("Process() kept wrong items")
	}
}
