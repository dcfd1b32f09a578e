// Package character defines the interface for character sheet operations
package character

//go:generate mockgen -destination=mock/mock_service.go -package=charactermock github.com/KirkDiggler/charsheet-api/internal/services/character Service

import (
	"context"

	"github.com/KirkDiggler/charsheet-api/internal/engine/mutation"
	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
)

// Service defines the interface for character sheet operations.
//
// Every update takes, per field group, the value the caller last saw and the
// value it wants. Repeating a successful update is a no-op that returns
// old == new and a nil HistoryRecord; an update whose initial value no longer
// matches storage fails with errors.Aborted.
type Service interface {
	// Character lifecycle
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error)

	// Field group updates
	UpdateAttribute(ctx context.Context, input *UpdateAttributeInput) (*UpdateAttributeOutput, error)
	UpdateSkill(ctx context.Context, input *UpdateSkillInput) (*UpdateSkillOutput, error)
	UpdateBaseValue(ctx context.Context, input *UpdateBaseValueInput) (*UpdateBaseValueOutput, error)
	UpdateCombatStats(ctx context.Context, input *UpdateCombatStatsInput) (*UpdateCombatStatsOutput, error)
	UpdateCalculationPoints(
		ctx context.Context,
		input *UpdateCalculationPointsInput,
	) (*UpdateCalculationPointsOutput, error)

	// Level-up
	GetLevelUpOptions(ctx context.Context, input *GetLevelUpOptionsInput) (*GetLevelUpOptionsOutput, error)
	ApplyLevelUp(ctx context.Context, input *ApplyLevelUpInput) (*ApplyLevelUpOutput, error)

	// Audit log
	ListHistory(ctx context.Context, input *ListHistoryInput) (*ListHistoryOutput, error)
}

// Change is the before and after of one structure
type Change[T any] struct {
	Old T `json:"old"`
	New T `json:"new"`
}

// Derived lists the derived structures an update recomputed
type Derived struct {
	BaseValues  map[sheet.BaseValueName]Change[sheet.BaseValue] `json:"baseValues,omitempty"`
	CombatStats map[string]Change[sheet.CombatValues]          `json:"combatStats,omitempty"`
}

// CharacterRef identifies one character of one user
type CharacterRef struct {
	UserID      string
	CharacterID string
}

// Character lifecycle types

// CreateCharacterInput defines the request for creating a character
type CreateCharacterInput struct {
	UserID        string
	Name          string
	Attributes    map[sheet.AttributeName]int
	Profession    sheet.Occupation
	Hobby         sheet.Occupation
	Advantages    []sheet.Trait
	Disadvantages []sheet.Trait

	// BonusSkills maps an advantage kind to its chosen bonus skill
	BonusSkills map[string]string
	FreeSkills  []string
}

// CreateCharacterOutput defines the response for creating a character
type CreateCharacterOutput struct {
	Character     *sheet.Character
	HistoryRecord *sheet.HistoryRecord
}

// GetCharacterInput defines the request for getting a character
type GetCharacterInput struct {
	CharacterRef
}

// GetCharacterOutput defines the response for getting a character
type GetCharacterOutput struct {
	Character *sheet.Character
}

// ListCharactersInput defines the request for listing a user's characters
type ListCharactersInput struct {
	UserID string
}

// ListCharactersOutput defines the response for listing a user's characters
type ListCharactersOutput struct {
	Characters []*sheet.Character
}

// DeleteCharacterInput defines the request for deleting a character
type DeleteCharacterInput struct {
	CharacterRef
}

// DeleteCharacterOutput defines the response for deleting a character
type DeleteCharacterOutput struct {
	DeletedHistoryRecords int64
}

// Field group update types

// UpdateAttributeInput defines the request for updating an attribute.
// At least one of Start, Current and Mod is required.
type UpdateAttributeInput struct {
	CharacterRef
	Attribute sheet.AttributeName

	Start   *mutation.Set[int]
	Current *mutation.Increase
	Mod     *mutation.Set[int]
	Comment string
}

// UpdateAttributeOutput defines the response for updating an attribute
type UpdateAttributeOutput struct {
	Attribute       Change[sheet.Attribute]
	Derived         Derived
	AttributePoints *sheet.PointsChange
	HistoryRecord   *sheet.HistoryRecord
}

// UpdateSkillInput defines the request for updating a skill.
// LearningMethod is required when the skill is activated or increased.
type UpdateSkillInput struct {
	CharacterRef
	SkillID string

	Activated      *mutation.Set[bool]
	Start          *mutation.Set[int]
	Current        *mutation.Increase
	Mod            *mutation.Set[int]
	LearningMethod sheet.LearningMethod
	Comment        string
}

// UpdateSkillOutput defines the response for updating a skill
type UpdateSkillOutput struct {
	Skill           Change[sheet.Skill]
	Derived         Derived
	AdventurePoints *sheet.PointsChange
	HistoryRecord   *sheet.HistoryRecord
}

// UpdateBaseValueInput defines the request for updating a base value
type UpdateBaseValueInput struct {
	CharacterRef
	BaseValue sheet.BaseValueName

	Start   *mutation.Set[int]
	Mod     *mutation.Set[int]
	Comment string
}

// UpdateBaseValueOutput defines the response for updating a base value
type UpdateBaseValueOutput struct {
	BaseValue     Change[sheet.BaseValue]
	Derived       Derived
	HistoryRecord *sheet.HistoryRecord
}

// UpdateCombatStatsInput defines the request for distributing a combat
// skill's points between attack and parade
type UpdateCombatStatsInput struct {
	CharacterRef
	SkillID string

	SkilledAttackValue *mutation.Set[int]
	SkilledParadeValue *mutation.Set[int]
	Comment            string
}

// UpdateCombatStatsOutput defines the response for updating combat stats
type UpdateCombatStatsOutput struct {
	CombatStats   Change[sheet.CombatValues]
	HistoryRecord *sheet.HistoryRecord
}

// PointsUpdate changes one calculation-point budget. Raising Total raises
// Available by the same amount.
type PointsUpdate struct {
	Start *mutation.Set[float64]
	Total *mutation.FloatIncrease
}

// UpdateCalculationPointsInput defines the request for updating the
// calculation-point budgets
type UpdateCalculationPointsInput struct {
	CharacterRef

	AdventurePoints *PointsUpdate
	AttributePoints *PointsUpdate
	Comment         string
}

// UpdateCalculationPointsOutput defines the response for updating the
// calculation-point budgets
type UpdateCalculationPointsOutput struct {
	CalculationPoints Change[sheet.CalculationPoints]
	HistoryRecord     *sheet.HistoryRecord
}

// Level-up types

// GetLevelUpOptionsInput defines the request for listing level-up options
type GetLevelUpOptionsInput struct {
	CharacterRef
}

// GetLevelUpOptionsOutput defines the response for listing level-up options
type GetLevelUpOptionsOutput struct {
	Level       int
	NextLevel   int
	Options     []sheet.LevelUpOption
	OptionsHash string
}

// ApplyLevelUpInput defines the request for applying a level-up
type ApplyLevelUpInput struct {
	CharacterRef

	InitialLevel int
	OptionsHash  string
	Effect       sheet.LevelUpEffectKind

	// Roll is the caller's dice result for dice effects; the server rolls
	// when it is nil.
	Roll    *int
	Comment string
}

// ApplyLevelUpOutput defines the response for applying a level-up
type ApplyLevelUpOutput struct {
	Level            Change[int]
	Effect           sheet.LevelUpEffectKind
	Roll             int
	BaseValue        *Change[sheet.BaseValue]
	Derived          Derived
	SpecialAbilities []string
	HistoryRecord    *sheet.HistoryRecord
}

// Audit log types

// ListHistoryInput defines the request for listing a character's history
type ListHistoryInput struct {
	CharacterRef
	AfterNumber int64
	PageSize    int
}

// ListHistoryOutput defines the response for listing a character's history
type ListHistoryOutput struct {
	Records []*sheet.HistoryRecord
	HasMore bool
}
