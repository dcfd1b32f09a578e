package errors

// Rules-engine failures. A conflict is retryable after a refetch; a budget
// shortfall is not until points are granted.

// Conflict creates an error for a stale compare-and-swap input.
// expected is what the caller sent, target what it asked for, actual what is
// stored.
func Conflict(field string, expected, target, actual any) *Error {
	return Newf(CodeAborted, "%s has changed: expected %v or %v, found %v", field, expected, target, actual).
		WithMeta("field", field).
		WithMeta("expected", expected).
		WithMeta("target", target).
		WithMeta("actual", actual)
}

// Conflictf creates a conflict error with a formatted message
func Conflictf(format string, args ...any) *Error {
	return Newf(CodeAborted, format, args...)
}

// IsConflict checks if an error is a conflict error
func IsConflict(err error) bool {
	return IsAborted(err)
}

// InsufficientBudget creates an error for a price above the available points
func InsufficientBudget(budget string, price, available float64) *Error {
	return Newf(CodeFailedPrecondition, "not enough %s: need %g, have %g", budget, price, available).
		WithMeta("budget", budget).
		WithMeta("price", price).
		WithMeta("available", available)
}

// IsInsufficientBudget checks if an error is a budget shortfall
func IsInsufficientBudget(err error) bool {
	return IsFailedPrecondition(err)
}
