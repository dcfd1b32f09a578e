package engine

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/charsheet-api/internal/engine/assembly"
	"github.com/KirkDiggler/charsheet-api/internal/engine/cost"
	"github.com/KirkDiggler/charsheet-api/internal/engine/derive"
	"github.com/KirkDiggler/charsheet-api/internal/engine/levelup"
	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
	"github.com/KirkDiggler/charsheet-api/internal/errors"
	"github.com/KirkDiggler/charsheet-api/internal/rules"
)

type engine struct {
	rules      *rules.Rules
	propagator *derive.Propagator
	costs      *cost.Calculator
	levels     *levelup.Machine
	assembler  *assembly.Assembler
	eventBus   events.EventBus
}

// Config contains the dependencies of the engine
type Config struct {
	Rules      *rules.Rules
	EventBus   events.EventBus
	DiceRoller dice.Roller
}

// Validate checks that all required dependencies are provided
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config is required")
	}
	vb := errors.NewValidationBuilder()
	if cfg.Rules == nil {
		vb.RequiredField("Rules")
	}
	if cfg.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	return vb.Build()
}

// New creates an engine. A nil DiceRoller rolls with dice.DefaultRoller.
func New(cfg *Config) (Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &engine{
		rules:      cfg.Rules,
		propagator: derive.New(cfg.Rules),
		costs:      cost.New(cfg.Rules),
		levels:     levelup.New(cfg.Rules, cfg.DiceRoller),
		assembler:  assembly.New(cfg.Rules),
		eventBus:   cfg.EventBus,
	}, nil
}

func (e *engine) PropagateAttribute(c *sheet.Character, attr sheet.AttributeName) derive.Changes {
	return e.propagator.AttributeChanged(c, attr)
}

func (e *engine) PropagateBaseValue(c *sheet.Character, name sheet.BaseValueName) derive.Changes {
	return e.propagator.BaseValueChanged(c, name)
}

func (e *engine) PropagateAll(c *sheet.Character) derive.Changes {
	return e.propagator.All(c)
}

func (e *engine) PropagateSkill(c *sheet.Character, skillID string) derive.Changes {
	return e.propagator.SkillChanged(c, skillID)
}

func (e *engine) PriceActivation(method sheet.LearningMethod) (float64, error) {
	return e.costs.ActivationCost(method)
}

func (e *engine) PriceIncrease(input *PriceIncreaseInput) (float64, error) {
	if input == nil {
		return 0, errors.InvalidArgument("input is required")
	}
	return e.costs.IncreaseCost(input.CurrentValue, input.Points, input.Category, input.LearningMethod)
}

func (e *engine) PriceAttributeIncrease(points int) (float64, error) {
	return e.costs.AttributeCost(points)
}

func (e *engine) GetLevelUpOptions(c *sheet.Character) (*GetLevelUpOptionsOutput, error) {
	if c == nil {
		return nil, errors.InvalidArgument("character is required")
	}
	next := c.Level + 1
	options := e.levels.Options(next, c.LevelUpProgress)
	hash, err := levelup.OptionsHash(options)
	if err != nil {
		return nil, err
	}
	return &GetLevelUpOptionsOutput{
		NextLevel:   next,
		Options:     options,
		OptionsHash: hash,
	}, nil
}

func (e *engine) ApplyLevelUp(c *sheet.Character, input *levelup.ApplyInput) (*levelup.Result, error) {
	if c == nil || input == nil {
		return nil, errors.InvalidArgument("character and input are required")
	}
	return e.levels.Apply(c, *input)
}

func (e *engine) AssembleCharacter(input *assembly.Request) (*sheet.Character, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return e.assembler.Assemble(*input)
}

func (e *engine) Skill(id string) (rules.SkillDef, bool) {
	return e.rules.Skill(id)
}

func (e *engine) PublishCharacterEvent(ctx context.Context, eventType string, c *sheet.Character) error {
	if c == nil {
		return errors.InvalidArgument("character is required")
	}
	if err := e.eventBus.Publish(ctx, events.NewGameEvent(eventType, c, nil)); err != nil {
		return errors.Wrapf(err, "failed to publish %s", eventType)
	}
	return nil
}
