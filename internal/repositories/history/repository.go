// Package history provides the interface for the per-character audit log
package history

//go:generate mockgen -destination=mock/mock_repository.go -package=historymock github.com/KirkDiggler/charsheet-api/internal/repositories/history Repository

import (
	"context"

	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
)

// DefaultListLimit caps List when no limit is given
const DefaultListLimit = 100

// Repository defines the interface for history record persistence.
// Records are append-only and numbered from 1 per character.
type Repository interface {
	// Append assigns the next number to the record and stores it
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Append(ctx context.Context, input AppendInput) (*AppendOutput, error)

	// List returns records with a number greater than AfterNumber, oldest first
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.Internal for storage failures
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// DeleteAll removes the log of a character
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.Internal for storage failures
	DeleteAll(ctx context.Context, input DeleteAllInput) (*DeleteAllOutput, error)
}

// AppendInput defines the input for appending a record
type AppendInput struct {
	UserID      string
	CharacterID string
	Record      *sheet.HistoryRecord
}

// AppendOutput defines the output for appending a record
type AppendOutput struct {
	Record *sheet.HistoryRecord
}

// ListInput defines the input for listing records
type ListInput struct {
	UserID      string
	CharacterID string
	AfterNumber int64
	Limit       int
}

// ListOutput defines the output for listing records
type ListOutput struct {
	Records []*sheet.HistoryRecord

	// HasMore is set when records after the last returned one exist.
	HasMore bool
}

// DeleteAllInput defines the input for deleting a log
type DeleteAllInput struct {
	UserID      string
	CharacterID string
}

// DeleteAllOutput defines the output for deleting a log
type DeleteAllOutput struct {
	Deleted int64
}
