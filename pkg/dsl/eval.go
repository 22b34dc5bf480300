package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/postrec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量和函数
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		// 定义变量类型
		cel.Variable("item", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("rctx", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 是候选项规则的解释器，使用 CEL (Common Expression Language) 实现。
//
// 表达式语法（CEL 标准语法）：
//   - 基础：label.recall_source.value == "similar"
//   - 数值：item.score > 0.7 / item.score >= 0.5
//   - 文本：item.text.contains("spam") / size(item.text) < 10
//   - 逻辑：item.author_id != rctx.user_id && item.score > 0.2
//
// 示例：
//   - `size(item.text) < 5` → 过滤掉过短的帖子
//   - `label.recall_source.value == "similar" && item.score == 0.0` → 过滤零分候选
type Eval struct {
	item *core.Item
	rctx *core.RecommendContext
	env  *cel.Env
}

// NewEval 创建一个新的规则解释器。
func NewEval(item *core.Item, rctx *core.RecommendContext) *Eval {
	env, _ := getCELEnv()
	return &Eval{
		item: item,
		rctx: rctx,
		env:  env,
	}
}

// Evaluate 解析并执行表达式，返回布尔结果。
// 空表达式视为 true。
//
// 注意：has(label.key) 可以用 label.key != null 替代
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}

	// 编译表达式
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	// 创建程序
	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	// 执行表达式
	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		// 对于不存在的 key，CEL 会返回错误
		// 应该使用 label.key != null 来检查存在性，而不是直接访问
		return false, fmt.Errorf("eval error: %v", err)
	}

	// 转换为布尔值
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}

	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func (e *Eval) buildInput() map[string]interface{} {
	// 构建 label map
	labels := make(map[string]interface{})
	if e.item != nil {
		for k, v := range e.item.Labels {
			labels[k] = map[string]interface{}{
				"value":  v.Value,
				"source": v.Source,
			}
		}
	}

	// 构建 item map
	item := map[string]interface{}{}
	if e.item != nil {
		item["id"] = e.item.ID
		item["author_id"] = e.item.AuthorID
		item["text"] = e.item.Text
		item["score"] = e.item.Score
	}

	// 构建 rctx map
	rctx := map[string]interface{}{}
	if e.rctx != nil {
		rctx["user_id"] = e.rctx.UserID
		rctx["top_n"] = e.rctx.TopN
	}

	return map[string]interface{}{
		"item":  item,
		"label": labels,
		"rctx":  rctx,
	}
}
