package rules

import (
	"math"

	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
)

// BaseValueDef describes how a base value is derived
type BaseValueDef struct {
	Name            sheet.BaseValueName
	Formula         *Formula
	LevelUpEligible bool
	Start           int
}

// Formula is a weighted sum of effective attribute values divided by Divisor
// and rounded half away from zero
type Formula struct {
	Weights map[sheet.AttributeName]int
	Divisor int
}

// Reads reports whether the formula depends on attr
func (f *Formula) Reads(attr sheet.AttributeName) bool {
	_, ok := f.Weights[attr]
	return ok
}

// Evaluate computes the formula over attrs
func (f *Formula) Evaluate(attrs map[sheet.AttributeName]sheet.Attribute) int {
	sum := 0
	for name, weight := range f.Weights {
		sum += weight * attrs[name].Value()
	}
	divisor := f.Divisor
	if divisor <= 0 {
		divisor = 1
	}
	return int(math.Round(float64(sum) / float64(divisor)))
}

func defaultBaseValues() map[sheet.BaseValueName]BaseValueDef {
	defs := []BaseValueDef{
		{
			Name: sheet.BaseValueHealthPoints,
			Formula: &Formula{
				Weights: map[sheet.AttributeName]int{sheet.AttributeEndurance: 2, sheet.AttributeStrength: 1},
				Divisor: 1,
			},
			LevelUpEligible: true,
		},
		{
			Name: sheet.BaseValueMentalHealth,
			Formula: &Formula{
				Weights: map[sheet.AttributeName]int{sheet.AttributeConcentration: 2, sheet.AttributeIntelligence: 1},
				Divisor: 1,
			},
		},
		{Name: sheet.BaseValueArmorLevel},
		{Name: sheet.BaseValueNaturalArmor, LevelUpEligible: true},
		{
			Name: sheet.BaseValueInitiative,
			Formula: &Formula{
				Weights: map[sheet.AttributeName]int{
					sheet.AttributeCourage:      1,
					sheet.AttributeDexterity:    2,
					sheet.AttributeIntelligence: 1,
				},
				Divisor: 4,
			},
			LevelUpEligible: true,
		},
		{
			Name: sheet.BaseValueAttack,
			Formula: &Formula{
				Weights: map[sheet.AttributeName]int{
					sheet.AttributeCourage:   1,
					sheet.AttributeStrength:  1,
					sheet.AttributeDexterity: 1,
				},
				Divisor: 5,
			},
		},
		{
			Name: sheet.BaseValueParade,
			Formula: &Formula{
				Weights: map[sheet.AttributeName]int{
					sheet.AttributeEndurance: 1,
					sheet.AttributeStrength:  1,
					sheet.AttributeDexterity: 1,
				},
				Divisor: 5,
			},
		},
		{
			Name: sheet.BaseValueRangedAttack,
			Formula: &Formula{
				Weights: map[sheet.AttributeName]int{
					sheet.AttributeConcentration: 1,
					sheet.AttributeDexterity:     1,
					sheet.AttributeStrength:      1,
				},
				Divisor: 5,
			},
		},
		{Name: sheet.BaseValueLuckPoints, LevelUpEligible: true},
		{Name: sheet.BaseValueBonusActions, LevelUpEligible: true, Start: 3},
		{Name: sheet.BaseValueLegendaryActions, LevelUpEligible: true},
	}

	out := make(map[sheet.BaseValueName]BaseValueDef, len(defs))
	for _, def := range defs {
		out[def.Name] = def
	}
	return out
}
