package types

import (
	"errors"
	"fmt"
	"net/http"
)

// Error categories carried in CustomError.Type
const (
	TypeInvalidArgument = "invalid_argument"
	TypeNotFound        = "not_found"
	TypeConflict        = "conflict"
)

type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

func InvalidArgument(message string) *CustomError {
	return &CustomError{Code: http.StatusBadRequest, Message: message, Type: TypeInvalidArgument}
}

func NotFound(message string) *CustomError {
	return &CustomError{Code: http.StatusNotFound, Message: message, Type: TypeNotFound}
}

// Conflict takes the status explicitly: some call sites answer duplicates with 400, others with 409.
func Conflict(message string, code int) *CustomError {
	return &CustomError{Code: code, Message: message, Type: TypeConflict}
}

// IsType reports whether err is a CustomError of the given category.
func IsType(err error, errType string) bool {
	var ce *CustomError
	return errors.As(err, &ce) && ce.Type == errType
}
