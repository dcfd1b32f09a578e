// Package character implements the character sheet orchestrator
package character

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/charsheet-api/internal/engine"
	"github.com/KirkDiggler/charsheet-api/internal/engine/assembly"
	"github.com/KirkDiggler/charsheet-api/internal/engine/mutation"
	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
	"github.com/KirkDiggler/charsheet-api/internal/errors"
	"github.com/KirkDiggler/charsheet-api/internal/pkg/clock"
	"github.com/KirkDiggler/charsheet-api/internal/pkg/idgen"
	characterrepo "github.com/KirkDiggler/charsheet-api/internal/repositories/character"
	historyrepo "github.com/KirkDiggler/charsheet-api/internal/repositories/history"
	"github.com/KirkDiggler/charsheet-api/internal/services/character"
)

// Config holds the dependencies for the character orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	HistoryRepo   historyrepo.Repository
	Engine        engine.Engine
	Clock         clock.Clock

	// CharacterIDGenerator names new characters, RecordIDGenerator history
	// records.
	CharacterIDGenerator idgen.Generator
	RecordIDGenerator    idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.HistoryRepo == nil {
		vb.RequiredField("HistoryRepo")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.CharacterIDGenerator == nil {
		vb.RequiredField("CharacterIDGenerator")
	}
	if c.RecordIDGenerator == nil {
		vb.RequiredField("RecordIDGenerator")
	}

	return vb.Build()
}

// Orchestrator implements the character.Service interface
type Orchestrator struct {
	characterRepo characterrepo.Repository
	historyRepo   historyrepo.Repository
	engine        engine.Engine
	clock         clock.Clock
	characterIDs  idgen.Generator
	recordIDs     idgen.Generator
	executor      *mutation.Executor
}

// New creates a new character orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	executor, err := mutation.NewExecutor(&mutation.ExecutorConfig{
		CharacterRepo: cfg.CharacterRepo,
		HistoryRepo:   cfg.HistoryRepo,
		Clock:         cfg.Clock,
		IDGenerator:   cfg.RecordIDGenerator,
		Deriver:       cfg.Engine,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create mutation executor")
	}

	return &Orchestrator{
		characterRepo: cfg.CharacterRepo,
		historyRepo:   cfg.HistoryRepo,
		engine:        cfg.Engine,
		clock:         cfg.Clock,
		characterIDs:  cfg.CharacterIDGenerator,
		recordIDs:     cfg.RecordIDGenerator,
		executor:      executor,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ character.Service = (*Orchestrator)(nil)

func validateRef(ref character.CharacterRef) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("userID", ref.UserID, vb)
	errors.ValidateRequired("characterID", ref.CharacterID, vb)
	return vb.Build()
}

// publish notifies subscribers; the change is already stored, so failures
// are only logged
func (o *Orchestrator) publish(ctx context.Context, eventType string, c *sheet.Character) {
	if err := o.engine.PublishCharacterEvent(ctx, eventType, c); err != nil {
		slog.WarnContext(ctx, "failed to publish character event",
			"event", eventType,
			"character_id", c.CharacterID,
			"error", err)
	}
}

// Character lifecycle methods

// CreateCharacter assembles a new character, stores it and writes history
// record number 1
func (o *Orchestrator) CreateCharacter(
	ctx context.Context,
	input *character.CreateCharacterInput,
) (*character.CreateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.engine.AssembleCharacter(&assembly.Request{
		UserID:        input.UserID,
		Name:          input.Name,
		Attributes:    input.Attributes,
		Profession:    input.Profession,
		Hobby:         input.Hobby,
		Advantages:    input.Advantages,
		Disadvantages: input.Disadvantages,
		BonusSkills:   input.BonusSkills,
		FreeSkills:    input.FreeSkills,
	})
	if err != nil {
		return nil, err
	}

	now := o.clock.Now()
	c.CharacterID = o.characterIDs.Generate()
	c.CreatedAt = now.Unix()

	if _, err := o.characterRepo.Create(ctx, characterrepo.CreateInput{Character: c}); err != nil {
		return nil, errors.Wrapf(err, "failed to store character")
	}

	record, err := creationRecord(c, o.recordIDs.Generate(), now.UnixMilli())
	if err != nil {
		return nil, err
	}
	appended, err := o.historyRepo.Append(ctx, historyrepo.AppendInput{
		UserID:      c.UserID,
		CharacterID: c.CharacterID,
		Record:      record,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to record character creation")
	}

	slog.InfoContext(ctx, "character created",
		"user_id", c.UserID,
		"character_id", c.CharacterID,
		"name", c.Name)
	o.publish(ctx, engine.EventCharacterCreated, c)

	return &character.CreateCharacterOutput{
		Character:     c,
		HistoryRecord: appended.Record,
	}, nil
}

// GetCharacter retrieves a character
func (o *Orchestrator) GetCharacter(
	ctx context.Context,
	input *character.GetCharacterInput,
) (*character.GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateRef(input.CharacterRef); err != nil {
		return nil, err
	}

	out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{
		UserID:      input.UserID,
		CharacterID: input.CharacterID,
	})
	if err != nil {
		return nil, err
	}
	return &character.GetCharacterOutput{Character: out.Character}, nil
}

// ListCharacters lists the characters of a user
func (o *Orchestrator) ListCharacters(
	ctx context.Context,
	input *character.ListCharactersInput,
) (*character.ListCharactersOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("userID", input.UserID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, err := o.characterRepo.ListByUserID(ctx, characterrepo.ListByUserIDInput{UserID: input.UserID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list characters")
	}
	return &character.ListCharactersOutput{Characters: out.Characters}, nil
}

// DeleteCharacter deletes a character together with its history
func (o *Orchestrator) DeleteCharacter(
	ctx context.Context,
	input *character.DeleteCharacterInput,
) (*character.DeleteCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateRef(input.CharacterRef); err != nil {
		return nil, err
	}

	got, err := o.characterRepo.Get(ctx, characterrepo.GetInput{
		UserID:      input.UserID,
		CharacterID: input.CharacterID,
	})
	if err != nil {
		return nil, err
	}

	if _, err := o.characterRepo.Delete(ctx, characterrepo.DeleteInput{
		UserID:      input.UserID,
		CharacterID: input.CharacterID,
	}); err != nil {
		return nil, err
	}

	deleted, err := o.historyRepo.DeleteAll(ctx, historyrepo.DeleteAllInput{
		UserID:      input.UserID,
		CharacterID: input.CharacterID,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete history")
	}

	slog.InfoContext(ctx, "character deleted",
		"user_id", input.UserID,
		"character_id", input.CharacterID,
		"history_records", deleted.Deleted)
	o.publish(ctx, engine.EventCharacterDeleted, got.Character)

	return &character.DeleteCharacterOutput{DeletedHistoryRecords: deleted.Deleted}, nil
}

// ListHistory pages through a character's audit log, oldest first
func (o *Orchestrator) ListHistory(
	ctx context.Context,
	input *character.ListHistoryInput,
) (*character.ListHistoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateRef(input.CharacterRef); err != nil {
		return nil, err
	}
	if input.AfterNumber < 0 || input.PageSize < 0 {
		return nil, errors.InvalidArgument("afterNumber and pageSize cannot be negative")
	}

	// a log only exists for a character the user owns
	if _, err := o.characterRepo.Get(ctx, characterrepo.GetInput{
		UserID:      input.UserID,
		CharacterID: input.CharacterID,
	}); err != nil {
		return nil, err
	}

	out, err := o.historyRepo.List(ctx, historyrepo.ListInput{
		UserID:      input.UserID,
		CharacterID: input.CharacterID,
		AfterNumber: input.AfterNumber,
		Limit:       input.PageSize,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list history")
	}
	return &character.ListHistoryOutput{Records: out.Records, HasMore: out.HasMore}, nil
}
