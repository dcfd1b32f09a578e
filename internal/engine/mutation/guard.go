// Package mutation implements the compare-and-swap protocol shared by every
// operation that changes one field group of a character sheet.
//
// A request carries, per field group, the value the caller last saw and the
// value it wants. Comparing both against storage tells a fresh request apart
// from a retry of one that already succeeded, and both apart from a lost race.
package mutation

import (
	"github.com/KirkDiggler/charsheet-api/internal/errors"
)

// Reasons attached to validation failures as "reason" metadata
const (
	ReasonInvalidPoints = "InvalidPoints"
)

// Guard records the outcome of comparing each field group of one request
type Guard struct {
	pending   []string
	satisfied []string
}

// Compare checks a stored value against the caller's initial and target
// values. It reports true when the field group still needs to be applied,
// false when a previous identical request already applied it, and a
// conflict when storage holds neither value.
func Compare[T comparable](g *Guard, field string, stored, initial, target T) (bool, error) {
	switch stored {
	case target:
		g.satisfied = append(g.satisfied, field)
		return false, nil
	case initial:
		g.pending = append(g.pending, field)
		return true, nil
	}
	return false, errors.Conflict(field, initial, target, stored)
}

// Schedule marks a field group as pending without a comparison. Used by
// transitions that guard themselves, such as level-up.
func (g *Guard) Schedule(field string) {
	g.pending = append(g.pending, field)
}

// Idempotent reports whether every compared field group was already applied
func (g *Guard) Idempotent() bool {
	return len(g.pending) == 0
}

// Pending returns the field groups scheduled for application
func (g *Guard) Pending() []string {
	return g.pending
}

// Satisfied returns the field groups that already hold their target
func (g *Guard) Satisfied() []string {
	return g.satisfied
}

// Set replaces a value outright
type Set[T comparable] struct {
	InitialValue T `json:"initialValue"`
	NewValue     T `json:"newValue"`
}

// Check compares the stored value against the set
func (s Set[T]) Check(g *Guard, field string, stored T) (bool, error) {
	return Compare(g, field, stored, s.InitialValue, s.NewValue)
}

// Increase raises a value by a number of points
type Increase struct {
	InitialValue    int `json:"initialValue"`
	IncreasedPoints int `json:"increasedPoints"`
}

// Target is the value after the increase
func (i Increase) Target() int {
	return i.InitialValue + i.IncreasedPoints
}

// Validate rejects zero and negative increases
func (i Increase) Validate(field string) error {
	if i.IncreasedPoints <= 0 {
		return errors.InvalidArgumentf("%s: increased points must be positive, got %d", field, i.IncreasedPoints).
			WithMeta("reason", ReasonInvalidPoints).
			WithMeta("field", field)
	}
	return nil
}

// Check validates the increase and compares the stored value against it
func (i Increase) Check(g *Guard, field string, stored int) (bool, error) {
	if err := i.Validate(field); err != nil {
		return false, err
	}
	return Compare(g, field, stored, i.InitialValue, i.Target())
}

// FloatIncrease raises a point budget by an amount
type FloatIncrease struct {
	InitialValue    float64 `json:"initialValue"`
	IncreasedPoints float64 `json:"increasedPoints"`
}

// Target is the value after the increase
func (i FloatIncrease) Target() float64 {
	return i.InitialValue + i.IncreasedPoints
}

// Check validates the increase and compares the stored value against it
func (i FloatIncrease) Check(g *Guard, field string, stored float64) (bool, error) {
	if i.IncreasedPoints <= 0 {
		return false, errors.InvalidArgumentf("%s: increased points must be positive, got %g", field, i.IncreasedPoints).
			WithMeta("reason", ReasonInvalidPoints).
			WithMeta("field", field)
	}
	return Compare(g, field, stored, i.InitialValue, i.Target())
}
