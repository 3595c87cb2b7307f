// Package apperrors provides structured error codes for the engine and its
// CLI, following the same Code/Message/Details shape the teacher codebase
// uses for MCP-facing errors, generalized to every boundary in this repo.
package apperrors

import "fmt"

// Code is a stable, machine-readable error identifier.
type Code string

const (
	CatalogInvalid            Code = "CatalogInvalid"
	CatalogVersionUnsupported Code = "CatalogVersionUnsupported"
	CatalogDuplicateID        Code = "CatalogDuplicateId"
	ContextInvalid            Code = "ContextInvalid"
	AnswerInvalid             Code = "AnswerInvalid"
)

// Error is a structured, wrapped error carrying a stable code plus
// optional machine-readable details for callers that need to branch on
// failure kind (e.g. the CLI's exit-code mapping).
type Error struct {
	ErrCode Code
	Message string
	Details map[string]any
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.ErrCode, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.ErrCode, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds a structured error with the given code and message.
func New(code Code, message string, details map[string]any) *Error {
	return &Error{ErrCode: code, Message: message, Details: details}
}

// Wrap builds a structured error around a cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{ErrCode: code, Message: message, Cause: cause}
}

// Is reports whether err (or any error it wraps) carries the given code.
func Is(err error, code Code) bool {
	var e *Error
	for err != nil {
		if ae, ok := err.(*Error); ok {
			e = ae
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return e != nil && e.ErrCode == code
}
