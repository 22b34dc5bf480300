package filter

import (
	"context"

	"github.com/rushteam/postrec/core"
	"github.com/rushteam/postrec/pkg/dsl"
)

// Expr 是表达式过滤器：用 CEL 表达式描述"什么样的候选应该被剔除"。
// 表达式通过配置下发，无需改代码即可调整过滤策略。
//
// 示例：
//   - `size(item.text) < 5` → 剔除过短的帖子
//   - `label.recall_source.value == "similar" && item.score == 0.0` → 剔除零分候选
type Expr struct {
	// Expression 为空时不过滤任何候选
	Expression string
}

// NewExpr 创建一个表达式过滤器。
func NewExpr(expression string) *Expr {
	return &Expr{Expression: expression}
}

func (f *Expr) Name() string { return "filter.expr" }

func (f *Expr) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.Expression == "" || item == nil {
		return false, nil
	}

	matched, err := dsl.NewEval(item, rctx).Evaluate(f.Expression)
	if err != nil {
		return false, err
	}
	return matched, nil
}
