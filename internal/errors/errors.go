package errors

import (
	"errors"
	"fmt"
	"maps"
)

// Error is the error type every layer of the service returns. Meta carries
// the machine-readable part of a failure (the field that conflicted, the
// budget that ran short) and is forwarded to clients as status details.
type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code, so errors.Is(err, NotFound(""))
// works regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithMeta sets a metadata entry and returns e for chaining.
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap adds context to err. The code and metadata of an inner *Error are
// kept; anything else becomes CodeInternal (or Canceled/DeadlineExceeded for
// context errors).
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    GetCode(err),
		Message: message,
		Cause:   err,
		Meta:    cloneMeta(err),
	}
}

func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode is Wrap with the code replaced.
func WrapWithCode(err error, code Code, message string) *Error {
	wrapped := Wrap(err, message)
	if wrapped != nil {
		wrapped.Code = code
	}
	return wrapped
}

func WrapWithCodef(err error, code Code, format string, args ...any) *Error {
	return WrapWithCode(err, code, fmt.Sprintf(format, args...))
}

// cloneMeta copies the metadata of the outermost *Error in err so the wrapper
// can add entries without touching the original.
func cloneMeta(err error) map[string]any {
	var inner *Error
	if !errors.As(err, &inner) || len(inner.Meta) == 0 {
		return nil
	}
	return maps.Clone(inner.Meta)
}

func NotFound(message string) *Error { return New(CodeNotFound, message) }

func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

func InvalidArgument(message string) *Error { return New(CodeInvalidArgument, message) }

func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

func AlreadyExists(message string) *Error { return New(CodeAlreadyExists, message) }

func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

func Internal(message string) *Error { return New(CodeInternal, message) }

func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

func Unauthenticated(message string) *Error { return New(CodeUnauthenticated, message) }

func Unauthenticatedf(format string, args ...any) *Error {
	return Newf(CodeUnauthenticated, format, args...)
}

func Unavailable(message string) *Error { return New(CodeUnavailable, message) }

func Aborted(message string) *Error { return New(CodeAborted, message) }

// DataLoss reports a stored document that can no longer be decoded.
func DataLoss(message string) *Error { return New(CodeDataLoss, message) }
