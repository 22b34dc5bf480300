package core

import "errors"

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - Store 错误：NOT_FOUND, UNAVAILABLE
//   - Engine 错误：USER_NOT_FOUND, NO_USER_CONTENT, NO_CONTENT_AVAILABLE
//   - Index 错误：MODEL_NOT_LOADED, EMPTY_CORPUS
type DomainError struct {
	Code    string // 错误代码（如 "USER_NOT_FOUND", "EMPTY_CORPUS"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "index", "engine"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// GetDomainError 获取 DomainError（支持 %w 包装链），如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	// 通用错误代码
	ErrorCodeNotFound     = "NOT_FOUND"     // 资源不存在
	ErrorCodeUnavailable  = "UNAVAILABLE"   // 存储不可用
	ErrorCodeInvalidInput = "INVALID_INPUT" // 输入无效

	// 推荐引擎错误代码
	ErrorCodeUserNotFound       = "USER_NOT_FOUND"       // 用户不存在
	ErrorCodeNoUserContent      = "NO_USER_CONTENT"      // 用户没有发布过内容，缺少相似度锚点
	ErrorCodeNoContentAvailable = "NO_CONTENT_AVAILABLE" // 候选池为空

	// 相似度索引错误代码
	ErrorCodeModelNotLoaded = "MODEL_NOT_LOADED" // 模型从未 fit/load
	ErrorCodeEmptyCorpus    = "EMPTY_CORPUS"     // 语料为空，拒绝 fit
)

// 模块名称常量
const (
	ModuleStore  = "store"  // 存储模块
	ModuleIndex  = "index"  // 相似度索引模块
	ModuleEngine = "engine" // 推荐引擎模块
)

// 预定义错误实例

var (
	// ErrUserNotFound 表示请求的用户在社交图谱中不存在
	ErrUserNotFound = NewDomainError(ModuleEngine, ErrorCodeUserNotFound, "engine: user not found")

	// ErrNoUserContent 表示用户从未发帖，无法计算词法相似度
	ErrNoUserContent = NewDomainError(ModuleEngine, ErrorCodeNoUserContent, "engine: no posts found for the user")

	// ErrNoContentAvailable 表示候选池中没有任何可推荐内容。
	// 注意：这与"推荐结果为空列表"是两个不同的结论，调用方必须区分。
	ErrNoContentAvailable = NewDomainError(ModuleEngine, ErrorCodeNoContentAvailable, "engine: no content available for recommendation")

	// ErrModelNotLoaded 表示相似度模型尚未 fit 或 load
	ErrModelNotLoaded = NewDomainError(ModuleIndex, ErrorCodeModelNotLoaded, "index: model not loaded")

	// ErrEmptyCorpus 表示语料为空，fit 被显式拒绝
	ErrEmptyCorpus = NewDomainError(ModuleIndex, ErrorCodeEmptyCorpus, "index: empty corpus")
)

// 通用错误检查函数

// IsUserNotFound 检查错误是否为用户不存在
func IsUserNotFound(err error) bool {
	return hasCode(err, ModuleEngine, ErrorCodeUserNotFound)
}

// IsNoUserContent 检查错误是否为用户无内容
func IsNoUserContent(err error) bool {
	return hasCode(err, ModuleEngine, ErrorCodeNoUserContent)
}

// IsNoContentAvailable 检查错误是否为候选池为空
func IsNoContentAvailable(err error) bool {
	return hasCode(err, ModuleEngine, ErrorCodeNoContentAvailable)
}

// IsModelNotLoaded 检查错误是否为模型未加载
func IsModelNotLoaded(err error) bool {
	return hasCode(err, ModuleIndex, ErrorCodeModelNotLoaded)
}

// IsEmptyCorpus 检查错误是否为语料为空
func IsEmptyCorpus(err error) bool {
	return hasCode(err, ModuleIndex, ErrorCodeEmptyCorpus)
}

func hasCode(err error, module, code string) bool {
	domainErr := GetDomainError(err)
	if domainErr == nil {
		return false
	}
	return domainErr.Module == module && domainErr.Code == code
}
