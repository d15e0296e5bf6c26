// Package errors provides structured error types for nftdesk.
// These errors carry the operation that failed and a category, so callers
// can distinguish transport failures from application failures.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindIO
	KindNetwork
	KindAPI
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindIO:
		return "I/O error"
	case KindNetwork:
		return "network error"
	case KindAPI:
		return "api error"
	case KindConfig:
		return "configuration error"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for nftdesk.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...any) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// API errors

// RequestFailed reports a transport failure talking to endpoint.
func RequestFailed(op Op, endpoint string, err error) error {
	return E(op, KindNetwork, fmt.Sprintf("request to %s failed", endpoint), err)
}

// UnexpectedStatus reports a non-2xx response that carried no usable body.
func UnexpectedStatus(op Op, endpoint string, status int) error {
	return E(op, KindAPI, fmt.Sprintf("%s returned HTTP %d", endpoint, status))
}

// DecodeFailed reports a response body that could not be parsed.
func DecodeFailed(op Op, endpoint string, err error) error {
	return E(op, KindInvalid, fmt.Sprintf("failed to decode response from %s", endpoint), err)
}

// Application reports an application-level failure returned by the server.
func Application(op Op, message string) error {
	return E(op, KindAPI, message)
}

// Config errors

func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

// CatalogNotFound reports a missing catalog file for the demo backend.
func CatalogNotFound(path string) error {
	return E(Op("server.LoadCatalog"), KindNotFound, fmt.Sprintf("catalog %s not found", path))
}
