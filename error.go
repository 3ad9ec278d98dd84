package storeinsight

import (
	"errors"
	"fmt"
)

// Error codes. These map to the outcomes visible to callers; no other error
// kind crosses the orchestrator boundary.
const (
	EBLOCKED     = "blocked"     // target refuses automated access (403/429 after retries)
	EINTERNAL    = "internal"    // unexpected internal fault
	EINVALID     = "invalid"     // malformed or rejected input
	ENOTFOUND    = "not_found"   // resource does not exist
	EUNREACHABLE = "unreachable" // store root unreachable or not a recognized storefront
)

// Error represents an application error with a machine-readable code and a
// human-readable message.
type Error struct {
	// Code is one of the E* constants above.
	Code string

	// Message is a human-readable description of the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Errorf returns an Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode returns the code of the error, if available.
// Returns EINTERNAL for non-application errors and "" for nil.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of the error, if available.
// Returns a generic message for non-application errors and "" for nil.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
