// Package derive computes derived values of a character sheet.
//
// Propagation is selective: an attribute change only recomputes the base
// values whose formula reads that attribute, a base-value change only
// recomputes the combat category consuming it, and a combat skill change only
// recomputes that skill's combat stats. All functions are pure apart from
// writing into the character passed in.
package derive

import (
	"slices"

	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
	"github.com/KirkDiggler/charsheet-api/internal/rules"
)

// Changes lists the derived structures whose content changed
type Changes struct {
	BaseValues  []sheet.BaseValueName
	CombatStats []string
}

// Empty reports whether nothing changed
func (c Changes) Empty() bool {
	return len(c.BaseValues) == 0 && len(c.CombatStats) == 0
}

func (c *Changes) merge(other Changes) {
	for _, name := range other.BaseValues {
		if !slices.Contains(c.BaseValues, name) {
			c.BaseValues = append(c.BaseValues, name)
		}
	}
	for _, id := range other.CombatStats {
		if !slices.Contains(c.CombatStats, id) {
			c.CombatStats = append(c.CombatStats, id)
		}
	}
}

// Propagator applies the dependency graph
// attributes -> base values -> combat stats, and skills -> combat stats.
type Propagator struct {
	rules *rules.Rules
}

// New creates a propagator over the given rules
func New(r *rules.Rules) *Propagator {
	return &Propagator{rules: r}
}

// DeriveBaseValues returns byFormula for every base value that has a formula.
// Base values without a formula are absent from the result.
func (p *Propagator) DeriveBaseValues(attrs map[sheet.AttributeName]sheet.Attribute) map[sheet.BaseValueName]int {
	out := make(map[sheet.BaseValueName]int)
	for _, name := range sheet.BaseValueNames() {
		def, ok := p.rules.BaseValue(name)
		if !ok || def.Formula == nil {
			continue
		}
		out[name] = def.Formula.Evaluate(attrs)
	}
	return out
}

// DeriveCombatStats recomputes attack and parade values of one combat skill.
// Ranged skills always carry zero parade values.
func DeriveCombatStats(
	skill sheet.Skill,
	stats sheet.CombatValues,
	category sheet.CombatCategory,
	attack sheet.BaseValue,
	parade sheet.BaseValue,
) sheet.CombatValues {
	if category == sheet.CombatCategoryRanged {
		stats.SkilledParadeValue = 0
		stats.ParadeValue = 0
	} else {
		stats.ParadeValue = stats.SkilledParadeValue + parade.Current + parade.Mod
	}
	stats.AttackValue = stats.SkilledAttackValue + attack.Current + attack.Mod
	stats.AvailablePoints = skill.Current + skill.Mod - stats.SkilledAttackValue - stats.SkilledParadeValue
	return stats
}

// AttributeChanged recomputes the base values reading attr and everything
// downstream of them
func (p *Propagator) AttributeChanged(c *sheet.Character, attr sheet.AttributeName) Changes {
	var changes Changes
	derived := p.DeriveBaseValues(c.Attributes)
	for _, name := range p.rules.BaseValuesReading(attr) {
		value := derived[name]
		if p.setByFormula(c, name, value) {
			changes.BaseValues = append(changes.BaseValues, name)
		}
	}

	for _, name := range slices.Clone(changes.BaseValues) {
		changes.merge(Changes{CombatStats: p.recomputeCategories(c, name)})
	}
	return changes
}

// BaseValueChanged recomputes the base value's current and the combat
// categories consuming it
func (p *Propagator) BaseValueChanged(c *sheet.Character, name sheet.BaseValueName) Changes {
	var changes Changes
	bv, ok := c.BaseValues[name]
	if ok {
		before := bv
		bv.Recompute()
		c.BaseValues[name] = bv
		if !before.Equal(bv) {
			changes.BaseValues = append(changes.BaseValues, name)
		}
	}
	changes.CombatStats = p.recomputeCategories(c, name)
	return changes
}

// SkillChanged recomputes the combat stats of one combat skill. Non-combat
// skills have no derived values.
func (p *Propagator) SkillChanged(c *sheet.Character, skillID string) Changes {
	def, ok := p.rules.Skill(skillID)
	if !ok || def.Combat == nil {
		return Changes{}
	}
	if p.recomputeSkill(c, def) {
		return Changes{CombatStats: []string{skillID}}
	}
	return Changes{}
}

// All recomputes every derived value. Used when a sheet is assembled and when
// a lost derived write is repaired.
func (p *Propagator) All(c *sheet.Character) Changes {
	var changes Changes
	for name, value := range p.DeriveBaseValues(c.Attributes) {
		if p.setByFormula(c, name, value) {
			changes.BaseValues = append(changes.BaseValues, name)
		}
	}
	for _, name := range sheet.BaseValueNames() {
		changes.merge(p.BaseValueChanged(c, name))
	}
	for _, def := range p.rules.Skills() {
		if def.Combat != nil && p.recomputeSkill(c, def) {
			changes.merge(Changes{CombatStats: []string{def.ID}})
		}
	}
	return changes
}

func (p *Propagator) setByFormula(c *sheet.Character, name sheet.BaseValueName, value int) bool {
	bv := c.BaseValues[name]
	before := bv
	bv.ByFormula = sheet.IntPtr(value)
	bv.Recompute()
	c.BaseValues[name] = bv
	return !before.Equal(bv)
}

func (p *Propagator) recomputeCategories(c *sheet.Character, name sheet.BaseValueName) []string {
	var changed []string
	for _, category := range p.rules.CombatCategoriesUsing(name) {
		for _, def := range p.rules.CombatSkills(category) {
			if p.recomputeSkill(c, def) {
				changed = append(changed, def.ID)
			}
		}
	}
	return changed
}

func (p *Propagator) recomputeSkill(c *sheet.Character, def rules.SkillDef) bool {
	if c.CombatStats == nil {
		c.CombatStats = make(map[string]sheet.CombatValues)
	}
	attackName, paradeName := rules.CombatBaseValues(def.Combat.Category)

	before, existed := c.CombatStats[def.ID]
	stats := before
	stats.Handling = def.Combat.Handling
	stats = DeriveCombatStats(
		c.Skills[def.ID],
		stats,
		def.Combat.Category,
		c.BaseValues[attackName],
		c.BaseValues[paradeName],
	)
	c.CombatStats[def.ID] = stats
	return !existed || before != stats
}
