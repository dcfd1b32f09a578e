// Package rules holds the compiled rule tables of the character system.
//
// A *Rules value is built once at process start and shared read-only by every
// engine component. Nothing in this package keeps mutable package state.
package rules

import (
	"slices"

	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
	"github.com/KirkDiggler/charsheet-api/internal/errors"
)

// Rules is the immutable set of rule tables
type Rules struct {
	baseValues    map[sheet.BaseValueName]BaseValueDef
	skills        map[string]SkillDef
	skillOrder    []string
	costs         *CostTable
	effects       []LevelUpEffect
	advantages    map[string]TraitDef
	disadvantages map[string]TraitDef
	creation      Creation
}

// Option customizes rule construction
type Option func(*Rules)

// WithCostTable replaces the default cost table
func WithCostTable(table *CostTable) Option {
	return func(r *Rules) {
		if table != nil {
			r.costs = table
		}
	}
}

// WithCreation replaces the default creation constants
func WithCreation(c Creation) Option {
	return func(r *Rules) {
		r.creation = c
	}
}

// WithDisadvantage adds or replaces a disadvantage definition
func WithDisadvantage(def TraitDef) Option {
	return func(r *Rules) {
		r.disadvantages[def.Kind] = def
	}
}

// New builds the rule tables, applying opts over the defaults
func New(opts ...Option) (*Rules, error) {
	r := &Rules{
		baseValues:    defaultBaseValues(),
		costs:         DefaultCostTable(),
		effects:       defaultLevelUpEffects(),
		advantages:    defaultAdvantages(),
		disadvantages: defaultDisadvantages(),
		creation:      DefaultCreation(),
	}
	r.skills, r.skillOrder = defaultSkills()

	for _, opt := range opts {
		opt(r)
	}

	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Default returns the compiled default rules. The compiled tables are static,
// so failing to build them is a programming error.
func Default() *Rules {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Rules) validate() error {
	if err := r.costs.Validate(); err != nil {
		return errors.Wrap(err, "invalid cost table")
	}
	for _, id := range r.creation.StarterSkills {
		if _, ok := r.skills[id]; !ok {
			return errors.Internalf("starter skill %s is not in the skill catalog", id)
		}
	}
	for _, defs := range []map[string]TraitDef{r.advantages, r.disadvantages} {
		for kind, def := range defs {
			for skillID := range def.SkillMods {
				if _, ok := r.skills[skillID]; !ok {
					return errors.Internalf("trait %s modifies unknown skill %s", kind, skillID)
				}
			}
			if def.BonusTarget != nil {
				for _, skillID := range def.BonusTarget.AllowedSkills {
					if _, ok := r.skills[skillID]; !ok {
						return errors.Internalf("trait %s allows unknown bonus skill %s", kind, skillID)
					}
				}
			}
		}
	}
	for _, effect := range r.effects {
		if effect.Target != "" {
			def, ok := r.baseValues[effect.Target]
			if !ok || !def.LevelUpEligible {
				return errors.Internalf("level-up effect %s targets ineligible base value %s", effect.Kind, effect.Target)
			}
		}
	}
	return nil
}

// Costs returns the cost table
func (r *Rules) Costs() *CostTable {
	return r.costs
}

// Creation returns the character creation constants
func (r *Rules) Creation() Creation {
	return r.creation
}

// Skill looks up a skill definition by id
func (r *Rules) Skill(id string) (SkillDef, bool) {
	def, ok := r.skills[id]
	return def, ok
}

// Skills returns all skill definitions in catalog order
func (r *Rules) Skills() []SkillDef {
	out := make([]SkillDef, 0, len(r.skillOrder))
	for _, id := range r.skillOrder {
		out = append(out, r.skills[id])
	}
	return out
}

// CombatSkills returns the combat skills of one combat category
func (r *Rules) CombatSkills(category sheet.CombatCategory) []SkillDef {
	var out []SkillDef
	for _, def := range r.Skills() {
		if def.Combat != nil && def.Combat.Category == category {
			out = append(out, def)
		}
	}
	return out
}

// BaseValue looks up a base value definition
func (r *Rules) BaseValue(name sheet.BaseValueName) (BaseValueDef, bool) {
	def, ok := r.baseValues[name]
	return def, ok
}

// BaseValuesReading returns the base values whose formula reads attr
func (r *Rules) BaseValuesReading(attr sheet.AttributeName) []sheet.BaseValueName {
	var out []sheet.BaseValueName
	for _, name := range sheet.BaseValueNames() {
		def := r.baseValues[name]
		if def.Formula != nil && def.Formula.Reads(attr) {
			out = append(out, name)
		}
	}
	return out
}

// CombatCategoriesUsing returns the combat categories that consume name
func (r *Rules) CombatCategoriesUsing(name sheet.BaseValueName) []sheet.CombatCategory {
	var out []sheet.CombatCategory
	for _, category := range []sheet.CombatCategory{sheet.CombatCategoryMelee, sheet.CombatCategoryRanged} {
		attack, parade := CombatBaseValues(category)
		if attack == name || parade == name {
			out = append(out, category)
		}
	}
	return out
}

// CombatBaseValues returns the base values feeding attack and parade values of
// a combat category. Ranged skills have no parade base value.
func CombatBaseValues(category sheet.CombatCategory) (attack, parade sheet.BaseValueName) {
	if category == sheet.CombatCategoryRanged {
		return sheet.BaseValueRangedAttack, ""
	}
	return sheet.BaseValueAttack, sheet.BaseValueParade
}

// LevelUpEffects returns all level-up effects in a fixed order
func (r *Rules) LevelUpEffects() []LevelUpEffect {
	return slices.Clone(r.effects)
}

// LevelUpEffect looks up one level-up effect
func (r *Rules) LevelUpEffect(kind sheet.LevelUpEffectKind) (LevelUpEffect, bool) {
	for _, effect := range r.effects {
		if effect.Kind == kind {
			return effect, true
		}
	}
	return LevelUpEffect{}, false
}

// Advantage looks up an advantage definition
func (r *Rules) Advantage(kind string) (TraitDef, bool) {
	def, ok := r.advantages[kind]
	return def, ok
}

// Disadvantage looks up a disadvantage definition
func (r *Rules) Disadvantage(kind string) (TraitDef, bool) {
	def, ok := r.disadvantages[kind]
	return def, ok
}
