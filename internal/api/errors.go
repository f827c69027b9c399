package api

import (
	"errors"
	"net/http"
	"strings"

	"hospital/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// 错误码定义
const (
	// 通用错误码
	ErrCodeInvalidRequest     = "ERR_INVALID_REQUEST"
	ErrCodeMissingField       = "ERR_MISSING_FIELD"
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeNotFound           = "ERR_NOT_FOUND"
	ErrCodePayloadTooLarge    = "ERR_PAYLOAD_TOO_LARGE"
	ErrCodeInternalError      = "ERR_INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"

	// 认证错误码
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeSessionExpired     = "ERR_SESSION_EXPIRED"
	ErrCodeUsernameExists     = "ERR_USERNAME_EXISTS"

	// 资源错误码
	ErrCodeUserNotFound        = "ERR_USER_NOT_FOUND"
	ErrCodeAppointmentNotFound = "ERR_APPOINTMENT_NOT_FOUND"
	ErrCodePostNotFound        = "ERR_POST_NOT_FOUND"

	// 业务逻辑错误码
	ErrCodeInvalidStatus = "ERR_INVALID_STATUS"
	ErrCodeSlotTaken     = "ERR_SLOT_TAKEN"
	ErrCodeUserInUse     = "ERR_USER_IN_USE"
)

// APIError 统一的 API 错误响应结构
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse 返回统一格式的错误响应
func ErrorResponse(c *gin.Context, status int, code string, message string) {
	c.JSON(status, APIError{
		Code:    code,
		Message: message,
	})
}

// ErrorResponseWithDetails 返回带详情的错误响应
func ErrorResponseWithDetails(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, APIError{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// 常用错误响应快捷函数

// BadRequest 400 错误请求
func BadRequest(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401 未授权
func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// Forbidden 403 禁止访问
func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, ErrCodeForbidden, message)
}

// NotFound 404 资源不存在
func NotFound(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusNotFound, code, message)
}

// Conflict 409 状态冲突
func Conflict(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusConflict, code, message)
}

// PayloadTooLarge 413 请求体过大
func PayloadTooLarge(c *gin.Context) {
	ErrorResponse(c, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, "request body too large")
}

// InternalError 500 服务器内部错误
func InternalError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, ErrCodeInternalError, message)
}

// ServiceUnavailable 503 服务不可用
func ServiceUnavailable(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, message)
}

// MissingField 缺少必填字段
func MissingField(c *gin.Context, field string) {
	ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeMissingField, field+" is required", gin.H{"field": field})
}

// InvalidPayload 无效的请求体
func InvalidPayload(c *gin.Context) {
	ErrorResponse(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request payload")
}

// BindingError 把 gin 绑定错误转换为响应：超出大小限制返回 413，
// 缺少必填字段返回 ERR_MISSING_FIELD，其余校验失败附带字段详情。
func BindingError(c *gin.Context, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		PayloadTooLarge(c)
		return
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		field := strings.ToLower(first.Field())
		if first.Tag() == "required" {
			MissingField(c, field)
			return
		}
		ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid field "+field,
			gin.H{"field": field, "rule": first.Tag()})
		return
	}
	InvalidPayload(c)
}

// ServiceError 把服务层错误映射为状态码和错误码。未识别的错误只记录日志，不回显给客户端。
func ServiceError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		BadRequest(c, ErrCodeInvalidRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		ErrorResponse(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "Login Failed")
	case errors.Is(err, service.ErrForbidden):
		Forbidden(c, "permission denied")
	case errors.Is(err, service.ErrUserNotFound):
		NotFound(c, ErrCodeUserNotFound, "user not found")
	case errors.Is(err, service.ErrAppointmentNotFound):
		NotFound(c, ErrCodeAppointmentNotFound, "appointment not found")
	case errors.Is(err, service.ErrPostNotFound):
		NotFound(c, ErrCodePostNotFound, "post not found")
	case errors.Is(err, service.ErrNotFound):
		NotFound(c, ErrCodeNotFound, "resource not found")
	case errors.Is(err, service.ErrUsernameTaken):
		Conflict(c, ErrCodeUsernameExists, "username already exists")
	case errors.Is(err, service.ErrInvalidTransition):
		Conflict(c, ErrCodeInvalidStatus, "appointment status does not allow this change")
	case errors.Is(err, service.ErrSlotTaken):
		Conflict(c, ErrCodeSlotTaken, "time slot already booked")
	case errors.Is(err, service.ErrUserInUse):
		Conflict(c, ErrCodeUserInUse, "user is referenced by appointments")
	case errors.Is(err, service.ErrPayloadTooLarge):
		PayloadTooLarge(c)
	case errors.Is(err, service.ErrUnavailable):
		ServiceUnavailable(c, "service unavailable")
	default:
		logrus.WithError(err).Error("failed to " + action)
		InternalError(c, "failed to "+action)
	}
}
