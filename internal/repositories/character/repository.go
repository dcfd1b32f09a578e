// Package character provides the interface for character sheet persistence
package character

//go:generate mockgen -destination=mock/mock_repository.go -package=charactermock github.com/KirkDiggler/charsheet-api/internal/repositories/character Repository

import (
	"context"

	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
)

// Repository defines the interface for character sheet persistence.
//
// A sheet is stored as one document per (user, character) with one field per
// field group, so field groups can be written independently.
type Repository interface {
	// Create stores a new character sheet
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if a character with the same ID exists
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a character sheet
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the character doesn't exist for the user
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// UpdateFields writes field groups of an existing sheet. When Expected is
	// set the write only happens if every expected field still holds its
	// expected encoding.
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.NotFound if the character doesn't exist for the user
	// Returns errors.Aborted if Expected no longer matches
	// Returns errors.Internal for storage failures
	UpdateFields(ctx context.Context, input UpdateFieldsInput) (*UpdateFieldsOutput, error)

	// Delete deletes a character sheet
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the character doesn't exist for the user
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByUserID retrieves all character sheets of a user
	// Returns errors.InvalidArgument for an empty user ID
	// Returns errors.Internal for storage failures
	ListByUserID(ctx context.Context, input ListByUserIDInput) (*ListByUserIDOutput, error)
}

// Field is one encoded field group
type Field struct {
	Name  string
	Value string
}

// CreateInput defines the input for creating a character
type CreateInput struct {
	Character *sheet.Character
}

// CreateOutput defines the output for creating a character
type CreateOutput struct {
	Character *sheet.Character
}

// GetInput defines the input for getting a character
type GetInput struct {
	UserID      string
	CharacterID string
}

// GetOutput defines the output for getting a character
type GetOutput struct {
	Character *sheet.Character
}

// UpdateFieldsInput defines the input for writing field groups
type UpdateFieldsInput struct {
	UserID      string
	CharacterID string
	Fields      []Field

	// Expected, when set, guards the write with a compare-and-set on these fields.
	Expected []Field
}

// UpdateFieldsOutput defines the output for writing field groups
type UpdateFieldsOutput struct {
	Written int
}

// DeleteInput defines the input for deleting a character
type DeleteInput struct {
	UserID      string
	CharacterID string
}

// DeleteOutput defines the output for deleting a character
type DeleteOutput struct{}

// ListByUserIDInput defines the input for listing characters by user
type ListByUserIDInput struct {
	UserID string
}

// ListByUserIDOutput defines the output for listing characters by user
type ListByUserIDOutput struct {
	Characters []*sheet.Character
}
