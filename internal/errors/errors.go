// Package errors defines the stable error code system for rolesmanifest.
package errors

import (
	"errors"
	"fmt"
)

// Code is a stable error code string.
type Code string

// Error codes. Stable public contract; scripts match on them.
const (
	EUsage    Code = "E_USAGE"
	EInternal Code = "E_INTERNAL"

	// Configuration errors
	EInputDirNotFound Code = "E_INPUT_DIR_NOT_FOUND" // input directory missing or not a directory
	EInvalidConfig    Code = "E_INVALID_CONFIG"      // config file, env or flag value rejected

	// Per-card errors; reported as diagnostics, never returned from a run
	ECardParse   Code = "E_CARD_PARSE"   // unreadable, non-UTF-8 or malformed JSON
	ECardInvalid Code = "E_CARD_INVALID" // parsed but missing a non-empty key/title

	// Manifest errors
	EWriteFailed   Code = "E_WRITE_FAILED"   // manifest could not be written
	EManifestStale Code = "E_MANIFEST_STALE" // check found the manifest out of date
)

// Exit codes returned by the process.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitNoInputDir = 2
	ExitStale      = 3
	ExitUsage      = 64
)

// Error is the standard error type for rolesmanifest errors.
type Error struct {
	Code    Code
	Msg     string
	Cause   error
	Details map[string]string // optional structured context
}

// Error returns the stable error format: "CODE: message".
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Msg: msg}
}

// NewWithDetails creates a new Error with code, message, and details.
// Details map is copied (nil if empty).
func NewWithDetails(code Code, msg string, details map[string]string) error {
	return &Error{Code: code, Msg: msg, Details: copyDetails(details)}
}

// Wrap creates a new Error wrapping an underlying error.
func Wrap(code Code, msg string, err error) error {
	return &Error{Code: code, Msg: msg, Cause: err}
}

// WrapWithDetails creates a new Error wrapping an underlying error with details.
func WrapWithDetails(code Code, msg string, err error, details map[string]string) error {
	return &Error{Code: code, Msg: msg, Cause: err, Details: copyDetails(details)}
}

// GetCode extracts the error code from an error, or empty string if not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// As returns (*Error, true) if err is or wraps an *Error.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func copyDetails(details map[string]string) map[string]string {
	if len(details) == 0 {
		return nil
	}
	cp := make(map[string]string, len(details))
	for k, v := range details {
		cp[k] = v
	}
	return cp
}

// ExitCode returns the process exit code for an error.
//
//	nil                    -> 0
//	E_INPUT_DIR_NOT_FOUND  -> 2
//	E_MANIFEST_STALE       -> 3
//	E_USAGE, E_INVALID_CONFIG -> 64
//	anything else          -> 1
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch GetCode(err) {
	case EInputDirNotFound:
		return ExitNoInputDir
	case EManifestStale:
		return ExitStale
	case EUsage, EInvalidConfig:
		return ExitUsage
	}
	return ExitFailure
}
