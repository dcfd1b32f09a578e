package character

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
	"github.com/KirkDiggler/charsheet-api/internal/errors"
)

// Field name prefixes and singleton field names of the sheet document
const (
	FieldAttributePrefix   = "attribute:"
	FieldSkillPrefix       = "skill:"
	FieldBaseValuePrefix   = "baseValue:"
	FieldCombatStatsPrefix = "combatStats:"

	FieldCalculationPoints = "calculationPoints"
	FieldLevel             = "level"
	FieldLevelUpProgress   = "levelUpProgress"
	FieldSpecialAbilities  = "specialAbilities"
	FieldProfile           = "profile"
)

// profile carries the rarely changing parts of a sheet in one field
type profile struct {
	UserID           string                 `json:"userId"`
	CharacterID      string                 `json:"characterId"`
	Name             string                 `json:"name"`
	Profession       sheet.Occupation       `json:"profession"`
	Hobby            sheet.Occupation       `json:"hobby"`
	Advantages       []sheet.Trait          `json:"advantages"`
	Disadvantages    []sheet.Trait          `json:"disadvantages"`
	GenerationPoints sheet.GenerationPoints `json:"generationPoints"`
	CreatedAt        int64                  `json:"createdAt"`
}

// AttributeField returns the field name of an attribute
func AttributeField(name sheet.AttributeName) string {
	return FieldAttributePrefix + string(name)
}

// SkillField returns the field name of a skill
func SkillField(id string) string {
	return FieldSkillPrefix + id
}

// BaseValueField returns the field name of a base value
func BaseValueField(name sheet.BaseValueName) string {
	return FieldBaseValuePrefix + string(name)
}

// CombatStatsField returns the field name of a combat skill's stats
func CombatStatsField(skillID string) string {
	return FieldCombatStatsPrefix + skillID
}

// EncodeFields splits a sheet into its field groups
func EncodeFields(c *sheet.Character) (map[string]string, error) {
	if c == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	out := make(map[string]string)
	put := func(field string, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal %s", field)
		}
		out[field] = string(data)
		return nil
	}

	for name, attr := range c.Attributes {
		if err := put(AttributeField(name), attr); err != nil {
			return nil, err
		}
	}
	for id, skill := range c.Skills {
		if err := put(SkillField(id), skill); err != nil {
			return nil, err
		}
	}
	for name, bv := range c.BaseValues {
		if err := put(BaseValueField(name), bv); err != nil {
			return nil, err
		}
	}
	for id, stats := range c.CombatStats {
		if err := put(CombatStatsField(id), stats); err != nil {
			return nil, err
		}
	}

	singles := map[string]any{
		FieldCalculationPoints: c.CalculationPoints,
		FieldLevelUpProgress:   c.LevelUpProgress,
		FieldSpecialAbilities:  c.SpecialAbilities,
		FieldProfile: profile{
			UserID:           c.UserID,
			CharacterID:      c.CharacterID,
			Name:             c.Name,
			Profession:       c.Profession,
			Hobby:            c.Hobby,
			Advantages:       c.Advantages,
			Disadvantages:    c.Disadvantages,
			GenerationPoints: c.GenerationPoints,
			CreatedAt:        c.CreatedAt,
		},
	}
	for field, v := range singles {
		if err := put(field, v); err != nil {
			return nil, err
		}
	}
	out[FieldLevel] = strconv.Itoa(c.Level)
	return out, nil
}

// DecodeFields rebuilds a sheet from its field groups
func DecodeFields(fields map[string]string) (*sheet.Character, error) {
	raw, ok := fields[FieldProfile]
	if !ok {
		return nil, errors.DataLoss("character document has no profile")
	}
	var p profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal %s", FieldProfile)
	}

	c := &sheet.Character{
		UserID:           p.UserID,
		CharacterID:      p.CharacterID,
		Name:             p.Name,
		Profession:       p.Profession,
		Hobby:            p.Hobby,
		Advantages:       p.Advantages,
		Disadvantages:    p.Disadvantages,
		GenerationPoints: p.GenerationPoints,
		CreatedAt:        p.CreatedAt,
		Attributes:       make(map[sheet.AttributeName]sheet.Attribute),
		BaseValues:       make(map[sheet.BaseValueName]sheet.BaseValue),
		Skills:           make(map[string]sheet.Skill),
		CombatStats:      make(map[string]sheet.CombatValues),
	}

	for field, value := range fields {
		var err error
		switch {
		case field == FieldProfile:
		case field == FieldLevel:
			c.Level, err = strconv.Atoi(value)
		case field == FieldCalculationPoints:
			err = json.Unmarshal([]byte(value), &c.CalculationPoints)
		case field == FieldLevelUpProgress:
			err = json.Unmarshal([]byte(value), &c.LevelUpProgress)
		case field == FieldSpecialAbilities:
			err = json.Unmarshal([]byte(value), &c.SpecialAbilities)
		case strings.HasPrefix(field, FieldAttributePrefix):
			var attr sheet.Attribute
			err = json.Unmarshal([]byte(value), &attr)
			c.Attributes[sheet.AttributeName(strings.TrimPrefix(field, FieldAttributePrefix))] = attr
		case strings.HasPrefix(field, FieldSkillPrefix):
			var skill sheet.Skill
			err = json.Unmarshal([]byte(value), &skill)
			c.Skills[strings.TrimPrefix(field, FieldSkillPrefix)] = skill
		case strings.HasPrefix(field, FieldBaseValuePrefix):
			var bv sheet.BaseValue
			err = json.Unmarshal([]byte(value), &bv)
			c.BaseValues[sheet.BaseValueName(strings.TrimPrefix(field, FieldBaseValuePrefix))] = bv
		case strings.HasPrefix(field, FieldCombatStatsPrefix):
			var stats sheet.CombatValues
			err = json.Unmarshal([]byte(value), &stats)
			c.CombatStats[strings.TrimPrefix(field, FieldCombatStatsPrefix)] = stats
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decode field %s", field)
		}
	}

	if c.LevelUpProgress.EffectsByLevel == nil {
		c.LevelUpProgress.EffectsByLevel = map[int]sheet.LevelUpEffectKind{}
	}
	if c.LevelUpProgress.Effects == nil {
		c.LevelUpProgress.Effects = map[sheet.LevelUpEffectKind]sheet.EffectProgress{}
	}
	if c.SpecialAbilities == nil {
		c.SpecialAbilities = []string{}
	}
	return c, nil
}

// ChangedFields compares two encodings and returns the fields of after that
// differ from before, in write order: primary first, then calculation points,
// base values, combat stats and the remaining fields.
func ChangedFields(before, after map[string]string, primary string) []Field {
	var changed []Field
	for name, value := range after {
		if prev, ok := before[name]; !ok || prev != value {
			changed = append(changed, Field{Name: name, Value: value})
		}
	}
	sort.SliceStable(changed, func(i, j int) bool {
		ri, rj := writeRank(changed[i].Name, primary), writeRank(changed[j].Name, primary)
		if ri != rj {
			return ri < rj
		}
		return changed[i].Name < changed[j].Name
	})
	return changed
}

// writeRank orders field groups for writing. Ranks 0 and 1 form the primary
// state and are written together.
func writeRank(field, primary string) int {
	switch {
	case field == primary:
		return 0
	case field == FieldCalculationPoints:
		return 1
	case primary == FieldLevel:
		// a level-up lands in one write; a level without its progress entry
		// or its granted value cannot be completed or retried
		return 1
	case strings.HasPrefix(field, FieldBaseValuePrefix):
		return 2
	case strings.HasPrefix(field, FieldCombatStatsPrefix):
		return 3
	default:
		return 4
	}
}

// Write is one step of a sequential persistence plan
type Write struct {
	Fields   []Field
	Expected []Field
}

// PlanWrites turns the difference between two encodings into sequential
// conditional writes. The first write carries the primary state and is
// conditional on every changed field still holding its old encoding,
// including the derived groups written after it, so a stale read is rejected
// before anything is stored. Each derived group then follows in its own write,
// conditional on its own old encoding.
func PlanWrites(before, after map[string]string, primary string) []Write {
	changed := ChangedFields(before, after, primary)
	if len(changed) == 0 {
		return nil
	}

	expect := func(fields []Field) []Field {
		var out []Field
		for _, f := range fields {
			if prev, ok := before[f.Name]; ok {
				out = append(out, Field{Name: f.Name, Value: prev})
			}
		}
		return out
	}

	var groups [][]Field
	for len(changed) > 0 {
		rank := writeRank(changed[0].Name, primary)
		if rank < 1 {
			rank = 1
		}
		n := 0
		for n < len(changed) && max(writeRank(changed[n].Name, primary), 1) == rank {
			n++
		}
		groups = append(groups, changed[:n])
		changed = changed[n:]
	}

	writes := make([]Write, 0, len(groups))
	for i, g := range groups {
		w := Write{Fields: g, Expected: expect(g)}
		if i == 0 {
			for _, later := range groups[1:] {
				w.Expected = append(w.Expected, expect(later)...)
			}
		}
		writes = append(writes, w)
	}
	return writes
}
