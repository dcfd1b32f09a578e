// Package sheet contains the character sheet data model shared by the rules
// engine, the orchestrators and the repositories.
package sheet

import (
	"maps"
	"slices"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Attribute is one of the eight primary attributes
type Attribute struct {
	Start     int     `json:"start"`
	Current   int     `json:"current"`
	Mod       int     `json:"mod"`
	TotalCost float64 `json:"totalCost"`
}

// Value returns the effective attribute value read by base-value formulas
func (a Attribute) Value() int {
	return a.Current + a.Mod
}

// BaseValue is a secondary statistic derived from attributes and level-ups.
// Mod is not folded into Current; it only applies when deriving combat stats.
type BaseValue struct {
	Start     int  `json:"start"`
	Current   int  `json:"current"`
	ByFormula *int `json:"byFormula,omitempty"`
	ByLvlUp   *int `json:"byLvlUp,omitempty"`
	Mod       int  `json:"mod"`
}

// Recompute sets Current from ByFormula (or Start when there is no formula)
// plus ByLvlUp
func (b *BaseValue) Recompute() {
	base := b.Start
	if b.ByFormula != nil {
		base = *b.ByFormula
	}
	b.Current = base + IntValue(b.ByLvlUp)
}

// Equal compares two base values by content
func (b BaseValue) Equal(other BaseValue) bool {
	return b.Start == other.Start &&
		b.Current == other.Current &&
		b.Mod == other.Mod &&
		intPtrEqual(b.ByFormula, other.ByFormula) &&
		intPtrEqual(b.ByLvlUp, other.ByLvlUp)
}

// Skill is a learnable skill. Activated never reverts to false.
type Skill struct {
	Activated           bool         `json:"activated"`
	Start               int          `json:"start"`
	Current             int          `json:"current"`
	Mod                 int          `json:"mod"`
	TotalCost           float64      `json:"totalCost"`
	DefaultCostCategory CostCategory `json:"defaultCostCategory"`
}

// CombatValues holds the derived combat statistics of one combat skill
type CombatValues struct {
	AvailablePoints    int `json:"availablePoints"`
	Handling           int `json:"handling"`
	AttackValue        int `json:"attackValue"`
	SkilledAttackValue int `json:"skilledAttackValue"`
	ParadeValue        int `json:"paradeValue"`
	SkilledParadeValue int `json:"skilledParadeValue"`
}

// Points tracks one calculation-point budget.
// Available is maintained incrementally as Total minus everything spent so far.
type Points struct {
	Start     float64 `json:"start"`
	Available float64 `json:"available"`
	Total     float64 `json:"total"`
}

// CalculationPoints groups the character's point budgets
type CalculationPoints struct {
	AdventurePoints Points `json:"adventurePoints"`
	AttributePoints Points `json:"attributePoints"`
}

// Trait is an advantage or disadvantage
type Trait struct {
	Kind  string `json:"kind"`
	Info  string `json:"info,omitempty"`
	Value int    `json:"value"`
}

// Occupation is a profession or hobby with its associated skill
type Occupation struct {
	Name    string `json:"name"`
	SkillID string `json:"skill"`
}

// GenerationPoints records the creation-time trait budget
type GenerationPoints struct {
	Total int `json:"total"`
	Spent int `json:"spent"`
}

// EffectProgress aggregates the selections of one level-up effect kind
type EffectProgress struct {
	SelectionCount   int `json:"selectionCount"`
	FirstChosenLevel int `json:"firstChosenLevel"`
	LastChosenLevel  int `json:"lastChosenLevel"`
}

// LevelUpProgress records every level-up taken
type LevelUpProgress struct {
	EffectsByLevel map[int]LevelUpEffectKind            `json:"effectsByLevel"`
	Effects        map[LevelUpEffectKind]EffectProgress `json:"effects"`
}

// LevelUpOption is a computed, non-persisted level-up choice
type LevelUpOption struct {
	Kind              LevelUpEffectKind `json:"kind"`
	Allowed           bool              `json:"allowed"`
	FirstLevel        int               `json:"firstLevel"`
	SelectionCount    int               `json:"selectionCount"`
	MaxSelectionCount int               `json:"maxSelectionCount"`
	CooldownLevels    int               `json:"cooldownLevels"`
	ReasonIfDenied    string            `json:"reasonIfDenied,omitempty"`
	DiceExpression    string            `json:"diceExpression,omitempty"`
	FirstChosenLevel  *int              `json:"firstChosenLevel,omitempty"`
	LastChosenLevel   *int              `json:"lastChosenLevel,omitempty"`
}

// Character is a complete character sheet
type Character struct {
	UserID            string                      `json:"userId"`
	CharacterID       string                      `json:"characterId"`
	Name              string                      `json:"name"`
	Level             int                         `json:"level"`
	Profession        Occupation                  `json:"profession"`
	Hobby             Occupation                  `json:"hobby"`
	Advantages        []Trait                     `json:"advantages"`
	Disadvantages     []Trait                     `json:"disadvantages"`
	GenerationPoints  GenerationPoints            `json:"generationPoints"`
	CalculationPoints CalculationPoints           `json:"calculationPoints"`
	Attributes        map[AttributeName]Attribute `json:"attributes"`
	BaseValues        map[BaseValueName]BaseValue `json:"baseValues"`
	Skills            map[string]Skill            `json:"skills"`
	CombatStats       map[string]CombatValues     `json:"combatStats"`
	LevelUpProgress   LevelUpProgress             `json:"levelUpProgress"`
	SpecialAbilities  []string                    `json:"specialAbilities"`
	CreatedAt         int64                       `json:"createdAt"`
}

var _ core.Entity = (*Character)(nil)

// GetID implements core.Entity
func (c *Character) GetID() string {
	return c.CharacterID
}

// GetType implements core.Entity
func (c *Character) GetType() string {
	return EntityTypeCharacter
}

// Clone returns a deep copy so mutations can be staged without touching the
// loaded record
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	out := *c
	out.Advantages = slices.Clone(c.Advantages)
	out.Disadvantages = slices.Clone(c.Disadvantages)
	out.SpecialAbilities = slices.Clone(c.SpecialAbilities)
	out.Attributes = maps.Clone(c.Attributes)
	out.Skills = maps.Clone(c.Skills)
	out.CombatStats = maps.Clone(c.CombatStats)

	// BaseValue pointer fields are replaced, never written through, so a
	// shallow map copy is enough as long as that holds.
	out.BaseValues = maps.Clone(c.BaseValues)

	out.LevelUpProgress = LevelUpProgress{
		EffectsByLevel: maps.Clone(c.LevelUpProgress.EffectsByLevel),
		Effects:        maps.Clone(c.LevelUpProgress.Effects),
	}
	if out.LevelUpProgress.EffectsByLevel == nil {
		out.LevelUpProgress.EffectsByLevel = map[int]LevelUpEffectKind{}
	}
	if out.LevelUpProgress.Effects == nil {
		out.LevelUpProgress.Effects = map[LevelUpEffectKind]EffectProgress{}
	}
	return &out
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}

// IntValue dereferences p, treating nil as zero
func IntValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
