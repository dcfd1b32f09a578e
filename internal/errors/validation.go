package errors

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationMetaKey is the metadata key holding per-field messages on the
// error returned by ValidationBuilder.Build.
const ValidationMetaKey = "validation_errors"

type fieldProblem struct {
	field    string
	messages []string
}

// ValidationBuilder collects field problems for one request. Build returns
// nil when nothing was recorded, otherwise an InvalidArgument error whose
// message lists fields in the order they were first reported.
type ValidationBuilder struct {
	problems []fieldProblem
}

func NewValidationBuilder() *ValidationBuilder {
	return &ValidationBuilder{}
}

// Field records message against field.
func (vb *ValidationBuilder) Field(field, message string) *ValidationBuilder {
	for i := range vb.problems {
		if vb.problems[i].field == field {
			vb.problems[i].messages = append(vb.problems[i].messages, message)
			return vb
		}
	}
	vb.problems = append(vb.problems, fieldProblem{field: field, messages: []string{message}})
	return vb
}

func (vb *ValidationBuilder) Fieldf(field, format string, args ...any) *ValidationBuilder {
	return vb.Field(field, fmt.Sprintf(format, args...))
}

func (vb *ValidationBuilder) RequiredField(field string) *ValidationBuilder {
	return vb.Field(field, "is required")
}

func (vb *ValidationBuilder) InvalidField(field, reason string) *ValidationBuilder {
	return vb.Fieldf(field, "is invalid: %s", reason)
}

func (vb *ValidationBuilder) Build() error {
	if len(vb.problems) == 0 {
		return nil
	}

	parts := make([]string, len(vb.problems))
	byField := make(map[string][]string, len(vb.problems))
	for i, p := range vb.problems {
		parts[i] = p.field + ": " + strings.Join(p.messages, ", ")
		byField[p.field] = slices.Clone(p.messages)
	}
	return InvalidArgument("validation failed: "+strings.Join(parts, "; ")).
		WithMeta(ValidationMetaKey, byField)
}

// ValidateRequired flags a blank or whitespace-only value.
func ValidateRequired(field, value string, vb *ValidationBuilder) {
	if strings.TrimSpace(value) == "" {
		vb.RequiredField(field)
	}
}

// ValidateRange checks minValue <= value <= maxValue.
func ValidateRange(field string, value, minValue, maxValue int, vb *ValidationBuilder) {
	if value < minValue || value > maxValue {
		vb.Fieldf(field, "must be between %d and %d", minValue, maxValue)
	}
}

// ValidateEnum accepts any string-backed type for value and allowed.
func ValidateEnum[T ~string](field string, value T, allowed []T, vb *ValidationBuilder) {
	if slices.Contains(allowed, value) {
		return
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	vb.Fieldf(field, "must be one of: %s", strings.Join(names, ", "))
}
