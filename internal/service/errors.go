package service

import (
	"errors"
	"strings"

	"github.com/Skotchmaster/sweet_shop/internal/transport"
)

var (
	ErrValidation         = errors.New("validation")         // 400
	ErrConflict           = errors.New("conflict")           // 400
	ErrInvalidCredentials = errors.New("invalid credentials") // 401
	ErrNotFound           = errors.New("not found")          // 404
	ErrInsufficientStock  = errors.New("insufficient stock") // 400
)

// ValidationError lists every rejected field. It matches ErrValidation.
type ValidationError struct {
	Fields []transport.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) add(field, msg string) {
	e.Fields = append(e.Fields, transport.FieldError{Field: field, Message: msg})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func invalid(field, msg string) error {
	return &ValidationError{Fields: []transport.FieldError{{Field: field, Message: msg}}}
}
