package character

import (
	"context"
	"slices"

	"github.com/KirkDiggler/charsheet-api/internal/engine"
	"github.com/KirkDiggler/charsheet-api/internal/engine/derive"
	"github.com/KirkDiggler/charsheet-api/internal/engine/levelup"
	"github.com/KirkDiggler/charsheet-api/internal/engine/mutation"
	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
	"github.com/KirkDiggler/charsheet-api/internal/errors"
	characterrepo "github.com/KirkDiggler/charsheet-api/internal/repositories/character"
	"github.com/KirkDiggler/charsheet-api/internal/services/character"
)

// Level-up methods

// GetLevelUpOptions lists the effects selectable for the next level together
// with the digest ApplyLevelUp expects back
func (o *Orchestrator) GetLevelUpOptions(
	ctx context.Context,
	input *character.GetLevelUpOptionsInput,
) (*character.GetLevelUpOptionsOutput, error) {
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

	options, err := o.engine.GetLevelUpOptions(got.Character)
	if err != nil {
		return nil, err
	}
	return &character.GetLevelUpOptionsOutput{
		Level:       got.Character.Level,
		NextLevel:   options.NextLevel,
		Options:     options.Options,
		OptionsHash: options.OptionsHash,
	}, nil
}

// ApplyLevelUp advances a character by one level with the chosen effect.
//
// The level itself is the guard: a request naming a level the character has
// already left is a conflict, so repeating a level-up never applies twice.
func (o *Orchestrator) ApplyLevelUp(
	ctx context.Context,
	input *character.ApplyLevelUpInput,
) (*character.ApplyLevelUpOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateRef(input.CharacterRef); err != nil {
		return nil, err
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("optionsHash", input.OptionsHash, vb)
	errors.ValidateRequired("effect", string(input.Effect), vb)
	if input.InitialLevel < 1 {
		vb.InvalidField("initialLevel", "must be at least 1")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var (
		levelUp   *levelup.Result
		st        staged
		oldBV     *sheet.BaseValue
		newBV     *sheet.BaseValue
		oldLevel  int
		newLevel  int
		abilities []string
	)

	result, err := o.executor.Execute(ctx, mutation.Request{
		UserID:       input.UserID,
		CharacterID:  input.CharacterID,
		Type:         sheet.HistoryLevelUpApplied,
		Name:         string(input.Effect),
		PrimaryField: characterrepo.FieldLevel,
		Apply: func(c *sheet.Character, g *mutation.Guard) (*mutation.Outcome, error) {
			before := c.Clone()
			res, err := o.engine.ApplyLevelUp(c, &levelup.ApplyInput{
				InitialLevel: input.InitialLevel,
				OptionsHash:  input.OptionsHash,
				Effect:       input.Effect,
				Roll:         input.Roll,
			})
			if err != nil {
				return nil, err
			}
			g.Schedule(characterrepo.FieldLevel)
			levelUp = res

			var changes derive.Changes
			if res.Target != "" {
				changes = o.engine.PropagateBaseValue(c, res.Target)
				changes.BaseValues = slices.DeleteFunc(changes.BaseValues, func(n sheet.BaseValueName) bool {
					return n == res.Target
				})
				prev, next := before.BaseValues[res.Target], c.BaseValues[res.Target]
				oldBV, newBV = &prev, &next
			}
			st = staged{before: before, after: c, changes: changes}
			oldLevel, newLevel = before.Level, c.Level
			abilities = c.SpecialAbilities

			return &mutation.Outcome{
				Old: snapshot{
					Level:            &oldLevel,
					BaseValue:        oldBV,
					SpecialAbilities: before.SpecialAbilities,
				}.withDerived(before, changes),
				New: snapshot{
					Level:            &newLevel,
					BaseValue:        newBV,
					SpecialAbilities: c.SpecialAbilities,
				}.withDerived(c, changes),
				Comment: input.Comment,
			}, nil
		},
	})
	if err != nil {
		return nil, err
	}

	out := &character.ApplyLevelUpOutput{
		Level:            character.Change[int]{Old: oldLevel, New: newLevel},
		Effect:           levelUp.Effect,
		Roll:             levelUp.Roll,
		Derived:          st.derived(),
		SpecialAbilities: abilities,
		HistoryRecord:    result.Record,
	}
	if oldBV != nil {
		out.BaseValue = &character.Change[sheet.BaseValue]{Old: *oldBV, New: *newBV}
	}
	o.publish(ctx, engine.EventCharacterLevelUp, result.Character)
	return out, nil
}
