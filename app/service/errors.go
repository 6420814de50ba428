package service

import (
	"errors"
	"fmt"
)

// ErrorKind 工作流校验错误类别
type ErrorKind string

const (
	ErrKindNotFound     ErrorKind = "not_found"     // 父实体不存在
	ErrKindInvalidState ErrorKind = "invalid_state" // 父实体状态不允许此操作
	ErrKindConflict     ErrorKind = "conflict"      // 唯一性冲突
)

// WorkflowError 工作流校验错误，携带类别和包含实体ID、状态的可读信息
type WorkflowError struct {
	Kind    ErrorKind
	Message string
}

func (e *WorkflowError) Error() string {
	return e.Message
}

func notFoundf(format string, args ...interface{}) *WorkflowError {
	return &WorkflowError{Kind: ErrKindNotFound, Message: fmt.Sprintf(format, args...)}
}

func invalidStatef(format string, args ...interface{}) *WorkflowError {
	return &WorkflowError{Kind: ErrKindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func conflictf(format string, args ...interface{}) *WorkflowError {
	return &WorkflowError{Kind: ErrKindConflict, Message: fmt.Sprintf(format, args...)}
}

// KindOf 返回错误的工作流类别，非工作流错误返回空串
func KindOf(err error) ErrorKind {
	var we *WorkflowError
	if errors.As(err, &we) {
		return we.Kind
	}
	return ""
}

// IsNotFound 判断是否为父实体不存在错误
func IsNotFound(err error) bool {
	return KindOf(err) == ErrKindNotFound
}

// IsInvalidState 判断是否为状态不允许错误
func IsInvalidState(err error) bool {
	return KindOf(err) == ErrKindInvalidState
}

// IsConflict 判断是否为唯一性冲突错误
func IsConflict(err error) bool {
	return KindOf(err) == ErrKindConflict
}
