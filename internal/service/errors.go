package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgconn"
	"gorm.io/gorm"
)

// postgres unique_violation
const pgUniqueViolation = "23505"

// ValidationError 请求参数不合法，写库前拒绝；消息原样返回给调用方
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// NotFoundError 目标 id 不存在
type NotFoundError struct {
	Entity string
	ID     interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

// ConflictError 与现有数据冲突（严格状态机、仍被引用的国家等）
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...interface{}) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// notFoundOr 把 gorm.ErrRecordNotFound 转成 NotFoundError，其余错误原样返回
func notFoundOr(err error, entity string, id interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return err
}

// isDuplicateKey 唯一约束冲突：gorm 翻译出的 ErrDuplicatedKey、pgx 原始的 23505，
// 或未翻译的 SQLite 报错
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsValidation / IsNotFound / IsConflict 供传输层映射状态码
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}
