package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись не найдена. Это штатный исход, а не сбой.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidParams используется для некорректных query-параметров (limit, offset).
	ErrInvalidParams = errors.New("invalid parameters")

	// ErrStorage используется, когда хранилище не смогло прочитать или зафиксировать данные.
	ErrStorage = errors.New("storage failure")
)

// FieldError описывает одно нарушенное правило валидации
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError содержит список полей, не прошедших валидацию
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError создает ошибку валидации для одного поля
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Reason: reason}}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Reason))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is позволяет сравнивать через errors.Is(err, ErrValidation)
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ParamError описывает некорректный query-параметр
type ParamError struct {
	Param  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Reason)
}

// Is позволяет сравнивать через errors.Is(err, ErrInvalidParams)
func (e *ParamError) Is(target error) bool {
	return target == ErrInvalidParams
}

// StorageError оборачивает ошибку драйвера БД. Op - имя операции хранилища.
type StorageError struct {
	Op  string
	Err error
}

// NewStorageError оборачивает err, если он не nil
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is позволяет сравнивать через errors.Is(err, ErrStorage)
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
