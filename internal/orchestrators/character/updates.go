package character

import (
	"context"
	"slices"

	"github.com/KirkDiggler/charsheet-api/internal/engine"
	"github.com/KirkDiggler/charsheet-api/internal/engine/cost"
	"github.com/KirkDiggler/charsheet-api/internal/engine/derive"
	"github.com/KirkDiggler/charsheet-api/internal/engine/mutation"
	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
	"github.com/KirkDiggler/charsheet-api/internal/errors"
	characterrepo "github.com/KirkDiggler/charsheet-api/internal/repositories/character"
	"github.com/KirkDiggler/charsheet-api/internal/services/character"
)

// Field group update methods

func validateFloor(vb *errors.ValidationBuilder, field string, set *mutation.Set[int]) {
	if set != nil && set.NewValue < 0 {
		vb.InvalidField(field, "cannot be negative")
	}
}

// UpdateAttribute changes an attribute's start, current or mod. Raising
// current spends attribute points; current and mod changes propagate to the
// base values and combat stats reading the attribute.
func (o *Orchestrator) UpdateAttribute(
	ctx context.Context,
	input *character.UpdateAttributeInput,
) (*character.UpdateAttributeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateRef(input.CharacterRef); err != nil {
		return nil, err
	}

	name := input.Attribute
	field := string(name)
	vb := errors.NewValidationBuilder()
	if !slices.Contains(sheet.AttributeNames(), name) {
		vb.InvalidField("attribute", "unknown attribute "+field)
	}
	if input.Start == nil && input.Current == nil && input.Mod == nil {
		vb.Field("attribute", "at least one of start, current or mod is required")
	}
	validateFloor(vb, field+".start", input.Start)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var (
		oldAttr, newAttr sheet.Attribute
		st               staged
		spent            *sheet.PointsChange
	)

	result, err := o.executor.Execute(ctx, mutation.Request{
		UserID:       input.UserID,
		CharacterID:  input.CharacterID,
		Type:         sheet.HistoryAttributeChanged,
		Name:         field,
		PrimaryField: characterrepo.AttributeField(name),
		Apply: func(c *sheet.Character, g *mutation.Guard) (*mutation.Outcome, error) {
			attr := c.Attributes[name]
			oldAttr, newAttr = attr, attr

			var setStart, raise, setMod bool
			var err error
			if input.Start != nil {
				if setStart, err = input.Start.Check(g, field+".start", attr.Start); err != nil {
					return nil, err
				}
			}
			if input.Current != nil {
				if raise, err = input.Current.Check(g, field+".current", attr.Current); err != nil {
					return nil, err
				}
			}
			if input.Mod != nil {
				if setMod, err = input.Mod.Check(g, field+".mod", attr.Mod); err != nil {
					return nil, err
				}
			}
			if g.Idempotent() {
				return &mutation.Outcome{}, nil
			}

			before := c.Clone()
			if raise {
				price, err := o.engine.PriceAttributeIncrease(input.Current.IncreasedPoints)
				if err != nil {
					return nil, err
				}
				if err := cost.Spend(&c.CalculationPoints.AttributePoints, cost.BudgetAttributePoints, price); err != nil {
					return nil, err
				}
				attr.Current = input.Current.Target()
				attr.TotalCost += price
			}
			if setStart {
				attr.Start = input.Start.NewValue
			}
			if setMod {
				attr.Mod = input.Mod.NewValue
			}
			c.Attributes[name] = attr
			newAttr = attr

			var changes derive.Changes
			if raise || setMod {
				changes = o.engine.PropagateAttribute(c, name)
			}
			st = staged{before: before, after: c, changes: changes}

			budgets := budgetChanges(before.CalculationPoints, c.CalculationPoints)
			spent = budgets.AttributePoints
			return &mutation.Outcome{
				Old:               snapshot{Attribute: &oldAttr}.withDerived(before, changes),
				New:               snapshot{Attribute: &newAttr}.withDerived(c, changes),
				CalculationPoints: budgets,
				Comment:           input.Comment,
			}, nil
		},
	})
	if err != nil {
		return nil, err
	}

	out := &character.UpdateAttributeOutput{
		Attribute:     character.Change[sheet.Attribute]{Old: oldAttr, New: newAttr},
		HistoryRecord: result.Record,
	}
	if applied(result) {
		out.Derived = st.derived()
		out.AttributePoints = spent
		o.publish(ctx, engine.EventCharacterChanged, result.Character)
	}
	return out, nil
}

// UpdateSkill activates a skill or changes its start, current or mod.
// Activation and increases are paid from adventure points in one debit;
// activation is one-way.
func (o *Orchestrator) UpdateSkill(
	ctx context.Context,
	input *character.UpdateSkillInput,
) (*character.UpdateSkillOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateRef(input.CharacterRef); err != nil {
		return nil, err
	}

	id := input.SkillID
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("skillID", id, vb)
	if _, ok := o.engine.Skill(id); id != "" && !ok {
		vb.InvalidField("skillID", "unknown skill "+id)
	}
	if input.Activated == nil && input.Start == nil && input.Current == nil && input.Mod == nil {
		vb.Field("skill", "at least one of activated, start, current or mod is required")
	}
	validateFloor(vb, id+".start", input.Start)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var (
		oldSkill, newSkill sheet.Skill
		st                 staged
		spent              *sheet.PointsChange
		method             sheet.LearningMethod
	)

	result, err := o.executor.Execute(ctx, mutation.Request{
		UserID:       input.UserID,
		CharacterID:  input.CharacterID,
		Type:         sheet.HistorySkillChanged,
		Name:         id,
		PrimaryField: characterrepo.SkillField(id),
		Apply: func(c *sheet.Character, g *mutation.Guard) (*mutation.Outcome, error) {
			skill := c.Skills[id]
			oldSkill, newSkill = skill, skill

			var activate, setStart, raise, setMod bool
			var err error
			if input.Activated != nil {
				if !input.Activated.NewValue {
					return nil, errors.Conflict(id+".activated", input.Activated.InitialValue, false, skill.Activated).
						WithMeta("reason", "skills cannot be deactivated")
				}
				if activate, err = input.Activated.Check(g, id+".activated", skill.Activated); err != nil {
					return nil, err
				}
			}
			if input.Start != nil {
				if setStart, err = input.Start.Check(g, id+".start", skill.Start); err != nil {
					return nil, err
				}
			}
			if input.Current != nil {
				if raise, err = input.Current.Check(g, id+".current", skill.Current); err != nil {
					return nil, err
				}
			}
			if input.Mod != nil {
				if setMod, err = input.Mod.Check(g, id+".mod", skill.Mod); err != nil {
					return nil, err
				}
			}
			if g.Idempotent() {
				return &mutation.Outcome{}, nil
			}

			var price float64
			if activate {
				fee, err := o.engine.PriceActivation(input.LearningMethod)
				if err != nil {
					return nil, err
				}
				price += fee
			}
			if raise {
				if !skill.Activated && !activate {
					return nil, errors.InvalidArgumentf("skill %s must be activated before it can be increased", id).
						WithMeta("field", id+".current")
				}
				increase, err := o.engine.PriceIncrease(&engine.PriceIncreaseInput{
					CurrentValue:   skill.Current,
					Points:         input.Current.IncreasedPoints,
					Category:       skill.DefaultCostCategory,
					LearningMethod: input.LearningMethod,
				})
				if err != nil {
					return nil, err
				}
				price += increase
			}

			before := c.Clone()
			if activate || raise {
				if err := cost.Spend(&c.CalculationPoints.AdventurePoints, cost.BudgetAdventurePoints, price); err != nil {
					return nil, err
				}
				skill.TotalCost += price
				method = input.LearningMethod
			}
			if activate {
				skill.Activated = true
			}
			if raise {
				skill.Current = input.Current.Target()
			}
			if setStart {
				skill.Start = input.Start.NewValue
			}
			if setMod {
				skill.Mod = input.Mod.NewValue
			}
			c.Skills[id] = skill
			newSkill = skill

			var changes derive.Changes
			if raise || setMod {
				changes = o.engine.PropagateSkill(c, id)
			}
			st = staged{before: before, after: c, changes: changes}

			budgets := budgetChanges(before.CalculationPoints, c.CalculationPoints)
			spent = budgets.AdventurePoints
			return &mutation.Outcome{
				Old:               snapshot{Skill: &oldSkill}.withDerived(before, changes),
				New:               snapshot{Skill: &newSkill}.withDerived(c, changes),
				CalculationPoints: budgets,
				LearningMethod:    method,
				Comment:           input.Comment,
			}, nil
		},
	})
	if err != nil {
		return nil, err
	}

	out := &character.UpdateSkillOutput{
		Skill:         character.Change[sheet.Skill]{Old: oldSkill, New: newSkill},
		HistoryRecord: result.Record,
	}
	if applied(result) {
		out.Derived = st.derived()
		out.AdventurePoints = spent
		o.publish(ctx, engine.EventCharacterChanged, result.Character)
	}
	return out, nil
}

// UpdateBaseValue changes a base value's start or mod and recomputes its
// current value and the combat stats reading it
func (o *Orchestrator) UpdateBaseValue(
	ctx context.Context,
	input *character.UpdateBaseValueInput,
) (*character.UpdateBaseValueOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateRef(input.CharacterRef); err != nil {
		return nil, err
	}

	name := input.BaseValue
	field := string(name)
	vb := errors.NewValidationBuilder()
	if !slices.Contains(sheet.BaseValueNames(), name) {
		vb.InvalidField("baseValue", "unknown base value "+field)
	}
	if input.Start == nil && input.Mod == nil {
		vb.Field("baseValue", "at least one of start or mod is required")
	}
	validateFloor(vb, field+".start", input.Start)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var (
		oldValue, newValue sheet.BaseValue
		st                 staged
	)

	result, err := o.executor.Execute(ctx, mutation.Request{
		UserID:       input.UserID,
		CharacterID:  input.CharacterID,
		Type:         sheet.HistoryBaseValueChanged,
		Name:         field,
		PrimaryField: characterrepo.BaseValueField(name),
		Apply: func(c *sheet.Character, g *mutation.Guard) (*mutation.Outcome, error) {
			bv := c.BaseValues[name]
			oldValue, newValue = bv, bv

			var setStart, setMod bool
			var err error
			if input.Start != nil {
				if setStart, err = input.Start.Check(g, field+".start", bv.Start); err != nil {
					return nil, err
				}
			}
			if input.Mod != nil {
				if setMod, err = input.Mod.Check(g, field+".mod", bv.Mod); err != nil {
					return nil, err
				}
			}
			if g.Idempotent() {
				return &mutation.Outcome{}, nil
			}

			before := c.Clone()
			if setStart {
				bv.Start = input.Start.NewValue
			}
			if setMod {
				bv.Mod = input.Mod.NewValue
			}
			c.BaseValues[name] = bv

			changes := o.engine.PropagateBaseValue(c, name)
			newValue = c.BaseValues[name]

			// the value itself is reported as the primary change
			changes.BaseValues = slices.DeleteFunc(changes.BaseValues, func(n sheet.BaseValueName) bool {
				return n == name
			})
			st = staged{before: before, after: c, changes: changes}

			return &mutation.Outcome{
				Old:     snapshot{BaseValue: &oldValue}.withDerived(before, changes),
				New:     snapshot{BaseValue: &newValue}.withDerived(c, changes),
				Comment: input.Comment,
			}, nil
		},
	})
	if err != nil {
		return nil, err
	}

	out := &character.UpdateBaseValueOutput{
		BaseValue:     character.Change[sheet.BaseValue]{Old: oldValue, New: newValue},
		HistoryRecord: result.Record,
	}
	if applied(result) {
		out.Derived = st.derived()
		o.publish(ctx, engine.EventCharacterChanged, result.Character)
	}
	return out, nil
}

// UpdateCombatStats distributes a combat skill's points between skilled
// attack and skilled parade. Ranged skills have no parade.
func (o *Orchestrator) UpdateCombatStats(
	ctx context.Context,
	input *character.UpdateCombatStatsInput,
) (*character.UpdateCombatStatsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateRef(input.CharacterRef); err != nil {
		return nil, err
	}

	id := input.SkillID
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("skillID", id, vb)
	def, ok := o.engine.Skill(id)
	if id != "" && (!ok || def.Combat == nil) {
		vb.InvalidField("skillID", id+" is not a combat skill")
	}
	if input.SkilledAttackValue == nil && input.SkilledParadeValue == nil {
		vb.Field("combatStats", "at least one of skilledAttackValue or skilledParadeValue is required")
	}
	validateFloor(vb, id+".skilledAttackValue", input.SkilledAttackValue)
	validateFloor(vb, id+".skilledParadeValue", input.SkilledParadeValue)
	if ok && def.Combat != nil && def.Combat.Category == sheet.CombatCategoryRanged &&
		input.SkilledParadeValue != nil && input.SkilledParadeValue.NewValue != 0 {
		vb.InvalidField(id+".skilledParadeValue", "ranged skills cannot parade")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var oldStats, newStats sheet.CombatValues

	result, err := o.executor.Execute(ctx, mutation.Request{
		UserID:       input.UserID,
		CharacterID:  input.CharacterID,
		Type:         sheet.HistoryCombatValuesChanged,
		Name:         id,
		PrimaryField: characterrepo.CombatStatsField(id),
		Apply: func(c *sheet.Character, g *mutation.Guard) (*mutation.Outcome, error) {
			stats := c.CombatStats[id]
			oldStats, newStats = stats, stats

			var setAttack, setParade bool
			var err error
			if input.SkilledAttackValue != nil {
				setAttack, err = input.SkilledAttackValue.Check(g, id+".skilledAttackValue", stats.SkilledAttackValue)
				if err != nil {
					return nil, err
				}
			}
			if input.SkilledParadeValue != nil {
				setParade, err = input.SkilledParadeValue.Check(g, id+".skilledParadeValue", stats.SkilledParadeValue)
				if err != nil {
					return nil, err
				}
			}
			if g.Idempotent() {
				return &mutation.Outcome{}, nil
			}

			if setAttack {
				stats.SkilledAttackValue = input.SkilledAttackValue.NewValue
			}
			if setParade {
				stats.SkilledParadeValue = input.SkilledParadeValue.NewValue
			}

			skill := c.Skills[id]
			distributable := skill.Current + skill.Mod
			distributed := stats.SkilledAttackValue + stats.SkilledParadeValue
			if distributed > distributable {
				return nil, errors.InsufficientBudget("availablePoints", float64(distributed), float64(distributable))
			}

			c.CombatStats[id] = stats
			o.engine.PropagateSkill(c, id)
			newStats = c.CombatStats[id]

			return &mutation.Outcome{
				Old:     snapshot{CombatValues: &oldStats},
				New:     snapshot{CombatValues: &newStats},
				Comment: input.Comment,
			}, nil
		},
	})
	if err != nil {
		return nil, err
	}

	if applied(result) {
		o.publish(ctx, engine.EventCharacterChanged, result.Character)
	}
	return &character.UpdateCombatStatsOutput{
		CombatStats:   character.Change[sheet.CombatValues]{Old: oldStats, New: newStats},
		HistoryRecord: result.Record,
	}, nil
}

// checkPoints compares one budget update against the stored budget and
// reports whether start and total need to change
func checkPoints(g *mutation.Guard, budget string, update *character.PointsUpdate, stored sheet.Points) (bool, bool, error) {
	if update == nil {
		return false, false, nil
	}
	var setStart, raise bool
	var err error
	if update.Start != nil {
		if setStart, err = update.Start.Check(g, budget+".start", stored.Start); err != nil {
			return false, false, err
		}
	}
	if update.Total != nil {
		if raise, err = update.Total.Check(g, budget+".total", stored.Total); err != nil {
			return false, false, err
		}
	}
	return setStart, raise, nil
}

func applyPoints(points *sheet.Points, update *character.PointsUpdate, setStart, raise bool) {
	if setStart {
		points.Start = update.Start.NewValue
	}
	if raise {
		points.Total = update.Total.Target()
		points.Available += update.Total.IncreasedPoints
	}
}

func validatePointsUpdate(vb *errors.ValidationBuilder, budget string, update *character.PointsUpdate) {
	if update == nil {
		return
	}
	if update.Start == nil && update.Total == nil {
		vb.Field(budget, "at least one of start or total is required")
	}
	if update.Start != nil && update.Start.NewValue < 0 {
		vb.InvalidField(budget+".start", "cannot be negative")
	}
}

// UpdateCalculationPoints grants calculation points. Raising a budget's
// total raises its available points by the same amount.
func (o *Orchestrator) UpdateCalculationPoints(
	ctx context.Context,
	input *character.UpdateCalculationPointsInput,
) (*character.UpdateCalculationPointsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateRef(input.CharacterRef); err != nil {
		return nil, err
	}

	vb := errors.NewValidationBuilder()
	if input.AdventurePoints == nil && input.AttributePoints == nil {
		vb.Field("calculationPoints", "at least one of adventurePoints or attributePoints is required")
	}
	validatePointsUpdate(vb, cost.BudgetAdventurePoints, input.AdventurePoints)
	validatePointsUpdate(vb, cost.BudgetAttributePoints, input.AttributePoints)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var oldPoints, newPoints sheet.CalculationPoints

	result, err := o.executor.Execute(ctx, mutation.Request{
		UserID:       input.UserID,
		CharacterID:  input.CharacterID,
		Type:         sheet.HistoryCalculationPointsChanged,
		Name:         characterrepo.FieldCalculationPoints,
		PrimaryField: characterrepo.FieldCalculationPoints,
		Apply: func(c *sheet.Character, g *mutation.Guard) (*mutation.Outcome, error) {
			points := c.CalculationPoints
			oldPoints, newPoints = points, points

			adventureStart, adventureRaise, err := checkPoints(g, cost.BudgetAdventurePoints, input.AdventurePoints, points.AdventurePoints)
			if err != nil {
				return nil, err
			}
			attributeStart, attributeRaise, err := checkPoints(g, cost.BudgetAttributePoints, input.AttributePoints, points.AttributePoints)
			if err != nil {
				return nil, err
			}
			if g.Idempotent() {
				return &mutation.Outcome{}, nil
			}

			applyPoints(&points.AdventurePoints, input.AdventurePoints, adventureStart, adventureRaise)
			applyPoints(&points.AttributePoints, input.AttributePoints, attributeStart, attributeRaise)
			c.CalculationPoints = points
			newPoints = points

			return &mutation.Outcome{
				Old:               snapshot{CalculationPoints: &oldPoints},
				New:               snapshot{CalculationPoints: &newPoints},
				CalculationPoints: budgetChanges(oldPoints, newPoints),
				Comment:           input.Comment,
			}, nil
		},
	})
	if err != nil {
		return nil, err
	}

	if applied(result) {
		o.publish(ctx, engine.EventCharacterChanged, result.Character)
	}
	return &character.UpdateCalculationPointsOutput{
		CalculationPoints: character.Change[sheet.CalculationPoints]{Old: oldPoints, New: newPoints},
		HistoryRecord:     result.Record,
	}, nil
}
