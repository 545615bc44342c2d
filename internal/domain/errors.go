package domain

import "fmt"

// ErrorCode is a callable error status
type ErrorCode string

const (
	CodeUnauthenticated    ErrorCode = "unauthenticated"
	CodeFailedPrecondition ErrorCode = "failed-precondition"
	CodeInvalidArgument    ErrorCode = "invalid-argument"
	CodeInternal           ErrorCode = "internal"
)

// CallError is a structured error returned by the worry service
type CallError struct {
	Code    ErrorCode `json:"status"`
	Message string    `json:"message"`
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewCallError creates a call error
func NewCallError(code ErrorCode, message string) *CallError {
	return &CallError{Code: code, Message: message}
}
