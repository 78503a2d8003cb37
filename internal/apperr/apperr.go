// Package apperr 定义业务错误类型，处理器据此选择HTTP状态码。
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 错误类别
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindNotFound
	KindInsufficientStock
	KindInsufficientBalance
	KindConflict
	KindUnauthorized
	KindTooManyRequests
)

// String 返回类别名称
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindInsufficientStock:
		return "insufficient_stock"
	case KindInsufficientBalance:
		return "insufficient_balance"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindTooManyRequests:
		return "too_many_requests"
	default:
		return "unexpected"
	}
}

// HTTPStatus 类别对应的HTTP状态码
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindInsufficientStock, KindInsufficientBalance:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error 业务错误，Message 直接返回给前端
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is 同类别的错误视为相等，便于 errors.Is(err, apperr.ErrNotFound)
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// 用于 errors.Is 的类别哨兵
var (
	ErrValidation          = &Error{Kind: KindValidation}
	ErrNotFound            = &Error{Kind: KindNotFound}
	ErrInsufficientStock   = &Error{Kind: KindInsufficientStock}
	ErrInsufficientBalance = &Error{Kind: KindInsufficientBalance}
	ErrConflict            = &Error{Kind: KindConflict}
	ErrUnauthorized        = &Error{Kind: KindUnauthorized}
)

// Validation 参数错误
func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

// NotFound 资源不存在
func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

// InsufficientStock 库存不足
func InsufficientStock(msg string) *Error { return &Error{Kind: KindInsufficientStock, Message: msg} }

// InsufficientBalance 余额不足
func InsufficientBalance(msg string) *Error {
	return &Error{Kind: KindInsufficientBalance, Message: msg}
}

// Conflict 唯一性冲突或状态冲突
func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

// Unauthorized 认证失败
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }

// Wrap 包装未预期的错误
func Wrap(err error, msg string) *Error {
	return &Error{Kind: KindUnexpected, Message: msg, Err: err}
}

// KindOf 返回错误链中第一个业务错误的类别，没有则为 KindUnexpected
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// MessageOf 返回可展示的消息，没有业务错误时返回fallback
func MessageOf(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}
