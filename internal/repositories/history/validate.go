package history

import (
	"github.com/KirkDiggler/charsheet-api/internal/errors"
)

func validateIDs(userID, characterID string) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("user_id", userID, vb)
	errors.ValidateRequired("character_id", characterID, vb)
	return vb.Build()
}

func (in AppendInput) validate() error {
	if err := validateIDs(in.UserID, in.CharacterID); err != nil {
		return err
	}
	if in.Record == nil {
		return errors.InvalidArgument("record cannot be nil")
	}
	if in.Record.Type == "" {
		return errors.InvalidArgument("record type is required")
	}
	return nil
}

func limitOrDefault(limit int) int {
	if limit <= 0 || limit > DefaultListLimit {
		return DefaultListLimit
	}
	return limit
}
