package rules

import (
	"slices"

	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
)

// TraitDef is the compiled definition of an advantage or disadvantage
type TraitDef struct {
	Kind string

	// Values lists the point values the trait may be taken at.
	Values []int

	SkillMods     map[string]int
	AttributeMods map[sheet.AttributeName]int

	// CostShifts raises the default cost category of every skill in the
	// listed categories by one tier.
	CostShifts []sheet.SkillCategory

	BonusTarget *BonusTarget
}

// BonusTarget lets the caller pick one skill from an allow-list to receive Mod
type BonusTarget struct {
	AllowedSkills []string
	Mod           int
}

// AllowsValue reports whether value is a valid point value for the trait
func (d TraitDef) AllowsValue(value int) bool {
	return slices.Contains(d.Values, value)
}

// Advantage kinds
const (
	AdvantageBrave              = "brave"
	AdvantageMathematicalGenius = "mathematicalGenius"
	AdvantageGoodLooking        = "goodLooking"
	AdvantageAnimalFriend       = "animalFriend"
	AdvantageNightVision        = "nightVision"
	AdvantageWeaponMaster       = "weaponMaster"
)

// Disadvantage kinds
const (
	DisadvantageAllergy             = "allergy"
	DisadvantageFearOfHeights       = "fearOfHeights"
	DisadvantageBadEyesight         = "badEyesight"
	DisadvantageCowardice           = "cowardice"
	DisadvantagePhysicalWeakness    = "physicalWeakness"
	DisadvantageSociallyAwkward     = "sociallyAwkward"
	DisadvantageTechnicalIneptitude = "technicalIneptitude"
)

func defaultAdvantages() map[string]TraitDef {
	defs := []TraitDef{
		{
			Kind:          AdvantageBrave,
			Values:        []int{2, 4},
			AttributeMods: map[sheet.AttributeName]int{sheet.AttributeCourage: 1},
		},
		{
			Kind:   AdvantageMathematicalGenius,
			Values: []int{4},
			SkillMods: map[string]int{
				"knowledge/mathematics": 10,
				"knowledge/estimating":  5,
			},
		},
		{
			Kind:   AdvantageGoodLooking,
			Values: []int{3},
			SkillMods: map[string]int{
				"social/seduction":  10,
				"social/persuading": 5,
			},
		},
		{
			Kind:   AdvantageAnimalFriend,
			Values: []int{2},
			SkillMods: map[string]int{
				"knowledge/zoology":  5,
				"handcraft/training": 10,
			},
		},
		{
			Kind:   AdvantageNightVision,
			Values: []int{3},
		},
		{
			Kind:   AdvantageWeaponMaster,
			Values: []int{7},
			BonusTarget: &BonusTarget{
				AllowedSkills: []string{
					"combat/chainWeapons",
					"combat/daggers",
					"combat/slashingWeaponsSharpShort",
					"combat/slashingWeaponsBluntShort",
					"combat/thrustingWeapons1h",
					"combat/slashingWeaponsSharpLong",
					"combat/slashingWeaponsBluntLong",
					"combat/thrustingWeapons2h",
				},
				Mod: 10,
			},
		},
	}

	out := make(map[string]TraitDef, len(defs))
	for _, def := range defs {
		out[def.Kind] = def
	}
	return out
}

func defaultDisadvantages() map[string]TraitDef {
	defs := []TraitDef{
		{Kind: DisadvantageAllergy, Values: []int{1, 3}},
		{
			Kind:      DisadvantageFearOfHeights,
			Values:    []int{3},
			SkillMods: map[string]int{"body/climbing": -10},
		},
		{
			Kind:   DisadvantageBadEyesight,
			Values: []int{4},
			SkillMods: map[string]int{
				"body/sharpnessOfSenses": -10,
				"nature/tracking":        -5,
			},
		},
		{
			Kind:          DisadvantageCowardice,
			Values:        []int{4},
			AttributeMods: map[sheet.AttributeName]int{sheet.AttributeCourage: -1},
		},
		{
			Kind:       DisadvantagePhysicalWeakness,
			Values:     []int{5},
			CostShifts: []sheet.SkillCategory{sheet.SkillCategoryBody},
		},
		{
			Kind:       DisadvantageSociallyAwkward,
			Values:     []int{5},
			CostShifts: []sheet.SkillCategory{sheet.SkillCategorySocial},
		},
		{
			Kind:       DisadvantageTechnicalIneptitude,
			Values:     []int{5},
			CostShifts: []sheet.SkillCategory{sheet.SkillCategoryHandcraft},
		},
	}

	out := make(map[string]TraitDef, len(defs))
	for _, def := range defs {
		out[def.Kind] = def
	}
	return out
}

// Creation holds the constants used by character assembly
type Creation struct {
	StartLevel       int
	AttributePoints  int
	GenerationPoints int
	AdventurePoints  float64
	ProfessionBonus  int
	HobbyBonus       int
	MaxFreeSkills    int
	StarterSkills    []string
}

// DefaultCreation returns the compiled creation constants
func DefaultCreation() Creation {
	return Creation{
		StartLevel:       1,
		AttributePoints:  40,
		GenerationPoints: 10,
		AdventurePoints:  100,
		ProfessionBonus:  50,
		HobbyBonus:       25,
		MaxFreeSkills:    3,
		StarterSkills: []string{
			"body/athletics",
			"body/climbing",
			"body/bodyControl",
			"body/sneaking",
			"body/swimming",
			"body/selfControl",
			"body/hiding",
			"body/sharpnessOfSenses",
			"social/persuading",
			"social/knowledgeOfHumanNature",
			"nature/orientation",
			"combat/barehanded",
		},
	}
}
