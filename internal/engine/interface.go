// Package engine puts the rules engine components behind one interface
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/charsheet-api/internal/engine Engine

import (
	"context"

	"github.com/KirkDiggler/charsheet-api/internal/engine/assembly"
	"github.com/KirkDiggler/charsheet-api/internal/engine/derive"
	"github.com/KirkDiggler/charsheet-api/internal/engine/levelup"
	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
	"github.com/KirkDiggler/charsheet-api/internal/rules"
)

// Engine provides the character progression rules
type Engine interface {
	// Derived values. Each recomputes in place and reports what changed.
	PropagateAttribute(c *sheet.Character, attr sheet.AttributeName) derive.Changes
	PropagateBaseValue(c *sheet.Character, name sheet.BaseValueName) derive.Changes
	PropagateSkill(c *sheet.Character, skillID string) derive.Changes
	PropagateAll(c *sheet.Character) derive.Changes

	// Costs
	PriceActivation(method sheet.LearningMethod) (float64, error)
	PriceIncrease(input *PriceIncreaseInput) (float64, error)
	PriceAttributeIncrease(points int) (float64, error)

	// Level-up
	GetLevelUpOptions(c *sheet.Character) (*GetLevelUpOptionsOutput, error)
	ApplyLevelUp(c *sheet.Character, input *levelup.ApplyInput) (*levelup.Result, error)

	// Character creation
	AssembleCharacter(input *assembly.Request) (*sheet.Character, error)

	// Rule lookups
	Skill(id string) (rules.SkillDef, bool)

	// PublishCharacterEvent notifies subscribers of a stored change
	PublishCharacterEvent(ctx context.Context, eventType string, c *sheet.Character) error
}
