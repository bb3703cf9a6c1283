package backend

import (
	"errors"
	"net/http"
)

// 错误类型分类
const (
	ErrorTypeValidation       = "validation"         // 缺少或非法参数
	ErrorTypeMethodNotAllowed = "method_not_allowed" // 不支持的请求方法
	ErrorTypeUpstream         = "upstream"           // 上游错误码、网络或解析失败
	ErrorTypeNotFoundInInput  = "not_found_in_input" // 输入中没有链接或不是抖音链接
	ErrorTypeStorage          = "storage"            // 客户端状态读写失败
	ErrorTypeLocked           = "locked"             // 未通过密码验证
)

// 界面提示文案
const (
	MsgWrongPassword   = "密码错误，请重新输入"
	MsgLocked          = "请先输入访问密码"
	MsgEmptyInput      = "请输入分享链接"
	MsgNoURL           = "未找到有效的链接，请检查输入内容"
	MsgNotDouyin       = "请确保链接是抖音分享链接"
	MsgNetwork         = "网络请求失败，请检查网络连接"
	MsgNoAwemeID       = "获取视频ID失败"
	MsgVideoInfoFailed = "获取视频信息失败"
	MsgParseFailed     = "解析失败："
	MsgNoTitle         = "无标题"
	MsgNoVideo         = "没有可下载的视频"
	MsgNoCover         = "没有可下载的封面"
	MsgDownloadFailed  = "下载失败，请重试"
	MsgDownloadStarted = "开始下载："
)

// AppError 带分类的错误，Message 直接展示给用户
type AppError struct {
	Type    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError 创建新的分类错误
func NewAppError(errorType, message string, cause error) *AppError {
	return &AppError{Type: errorType, Message: message, Err: cause}
}

// ErrorType 返回错误分类，非 AppError 视为上游错误
func ErrorType(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUpstream
}

// HTTPStatus 错误分类对应的 HTTP 状态码
func HTTPStatus(errorType string) int {
	switch errorType {
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}
