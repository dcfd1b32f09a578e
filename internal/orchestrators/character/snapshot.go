package character

import (
	"encoding/json"

	"github.com/KirkDiggler/charsheet-api/internal/engine/derive"
	"github.com/KirkDiggler/charsheet-api/internal/engine/mutation"
	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
	"github.com/KirkDiggler/charsheet-api/internal/errors"
	"github.com/KirkDiggler/charsheet-api/internal/services/character"
)

// snapshot is the history encoding of the structures one mutation touched
type snapshot struct {
	Attribute         *sheet.Attribute                        `json:"attribute,omitempty"`
	Skill             *sheet.Skill                            `json:"skill,omitempty"`
	BaseValue         *sheet.BaseValue                        `json:"baseValue,omitempty"`
	CombatValues      *sheet.CombatValues                     `json:"combatValues,omitempty"`
	CalculationPoints *sheet.CalculationPoints                `json:"calculationPoints,omitempty"`
	Level             *int                                    `json:"level,omitempty"`
	SpecialAbilities  []string                                `json:"specialAbilities,omitempty"`
	BaseValues        map[sheet.BaseValueName]sheet.BaseValue `json:"baseValues,omitempty"`
	CombatStats       map[string]sheet.CombatValues           `json:"combatStats,omitempty"`
}

// withDerived adds the derived structures named in changes, read from c
func (s snapshot) withDerived(c *sheet.Character, changes derive.Changes) snapshot {
	for _, name := range changes.BaseValues {
		if s.BaseValues == nil {
			s.BaseValues = make(map[sheet.BaseValueName]sheet.BaseValue)
		}
		s.BaseValues[name] = c.BaseValues[name]
	}
	for _, id := range changes.CombatStats {
		if s.CombatStats == nil {
			s.CombatStats = make(map[string]sheet.CombatValues)
		}
		s.CombatStats[id] = c.CombatStats[id]
	}
	return s
}

// derivedChanges pairs the derived structures named in changes
func derivedChanges(before, after *sheet.Character, changes derive.Changes) character.Derived {
	var d character.Derived
	for _, name := range changes.BaseValues {
		if d.BaseValues == nil {
			d.BaseValues = make(map[sheet.BaseValueName]character.Change[sheet.BaseValue])
		}
		d.BaseValues[name] = character.Change[sheet.BaseValue]{
			Old: before.BaseValues[name],
			New: after.BaseValues[name],
		}
	}
	for _, id := range changes.CombatStats {
		if d.CombatStats == nil {
			d.CombatStats = make(map[string]character.Change[sheet.CombatValues])
		}
		d.CombatStats[id] = character.Change[sheet.CombatValues]{
			Old: before.CombatStats[id],
			New: after.CombatStats[id],
		}
	}
	return d
}

// pointsChange returns nil when the budget did not move
func pointsChange(before, after sheet.Points) *sheet.PointsChange {
	if before == after {
		return nil
	}
	return &sheet.PointsChange{Old: before, New: after}
}

// budgetChanges compares both calculation-point budgets
func budgetChanges(before, after sheet.CalculationPoints) sheet.PointsChanges {
	return sheet.PointsChanges{
		AdventurePoints: pointsChange(before.AdventurePoints, after.AdventurePoints),
		AttributePoints: pointsChange(before.AttributePoints, after.AttributePoints),
	}
}

// staged keeps the outcome of a mutation closure for building the response
type staged struct {
	before  *sheet.Character
	after   *sheet.Character
	changes derive.Changes
}

func (s *staged) derived() character.Derived {
	if s.before == nil || s.after == nil {
		return character.Derived{}
	}
	return derivedChanges(s.before, s.after, s.changes)
}

// applied reports whether the executor stored the staged state
func applied(result *mutation.Result) bool {
	return result != nil && !result.Idempotent()
}

func creationRecord(c *sheet.Character, id string, timestamp int64) (*sheet.HistoryRecord, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode character")
	}
	return &sheet.HistoryRecord{
		Type:      sheet.HistoryCharacterCreated,
		Name:      c.Name,
		ID:        id,
		Timestamp: timestamp,
		Data: sheet.Change{
			Old: json.RawMessage("null"),
			New: data,
		},
		CalculationPoints: sheet.PointsChanges{
			AdventurePoints: &sheet.PointsChange{New: c.CalculationPoints.AdventurePoints},
			AttributePoints: &sheet.PointsChange{New: c.CalculationPoints.AttributePoints},
		},
	}, nil
}
