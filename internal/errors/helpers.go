package errors

import (
	"context"
	"errors"
)

// Is forwards to the standard library so callers need a single errors import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode returns the code of the outermost *Error in err's chain. Context
// cancellation is recognized even when it was never wrapped.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	switch {
	case errors.Is(err, context.Canceled):
		return CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return CodeDeadlineExceeded
	}
	return CodeInternal
}

func GetMeta(err error) map[string]any {
	var e *Error
	if errors.As(err, &e) {
		return e.Meta
	}
	return nil
}

// GetMessage returns the message without the code prefix or cause chain.
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func IsNotFound(err error) bool { return GetCode(err) == CodeNotFound }

func IsInvalidArgument(err error) bool { return GetCode(err) == CodeInvalidArgument }

func IsAlreadyExists(err error) bool { return GetCode(err) == CodeAlreadyExists }

func IsInternal(err error) bool { return GetCode(err) == CodeInternal }

func IsUnavailable(err error) bool { return GetCode(err) == CodeUnavailable }

func IsUnauthenticated(err error) bool { return GetCode(err) == CodeUnauthenticated }

func IsAborted(err error) bool { return GetCode(err) == CodeAborted }

func IsFailedPrecondition(err error) bool { return GetCode(err) == CodeFailedPrecondition }
