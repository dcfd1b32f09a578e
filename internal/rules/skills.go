package rules

import (
	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
)

// SkillDef describes one skill of the catalog
type SkillDef struct {
	ID           string
	Category     sheet.SkillCategory
	Name         string
	CostCategory sheet.CostCategory
	Combat       *CombatDef
}

// CombatDef marks a skill as a combat skill
type CombatDef struct {
	Category sheet.CombatCategory
	Handling int
}

// SkillID joins a category and a skill name into a skill id
func SkillID(category sheet.SkillCategory, name string) string {
	return string(category) + "/" + name
}

// Default cost categories by skill group
const (
	DefaultSkillCostCategory  = sheet.CostCategory1
	DefaultCombatCostCategory = sheet.CostCategory2
)

var nonCombatSkillNames = []struct {
	category sheet.SkillCategory
	names    []string
}{
	{sheet.SkillCategoryBody, []string{
		"athletics", "juggleries", "climbing", "bodyControl", "riding", "sneaking",
		"swimming", "selfControl", "hiding", "singing", "sharpnessOfSenses",
		"dancing", "quaffing", "pickpocketing",
	}},
	{sheet.SkillCategorySocial, []string{
		"seduction", "etiquette", "teaching", "acting", "writtenExpression",
		"streetKnowledge", "knowledgeOfHumanNature", "persuading", "convincing",
		"bargaining",
	}},
	{sheet.SkillCategoryNature, []string{
		"tracking", "knottingSkills", "trapping", "fishing", "orientation",
		"wildernessLife",
	}},
	{sheet.SkillCategoryKnowledge, []string{
		"anatomy", "architecture", "geography", "history", "petrology", "botany",
		"philosophy", "astronomy", "mathematics", "knowledgeOfTheLaw",
		"estimating", "zoology", "technology", "chemistry", "warfare", "itSkills",
		"mechanics",
	}},
	{sheet.SkillCategoryHandcraft, []string{
		"training", "woodwork", "foodProcessing", "leatherProcessing", "metalwork",
		"stonework", "fabricProcessing", "alcoholProduction", "steeringVehicles",
		"fineMechanics", "cheating", "firstAid", "calmingSbDown",
		"drawingAndPainting", "lockpicking",
	}},
}

var combatSkills = []struct {
	name     string
	category sheet.CombatCategory
	handling int
}{
	{"martialArts", sheet.CombatCategoryMelee, 1},
	{"barehanded", sheet.CombatCategoryMelee, 0},
	{"chainWeapons", sheet.CombatCategoryMelee, 3},
	{"daggers", sheet.CombatCategoryMelee, 1},
	{"slashingWeaponsSharpShort", sheet.CombatCategoryMelee, 2},
	{"slashingWeaponsBluntShort", sheet.CombatCategoryMelee, 2},
	{"thrustingWeapons1h", sheet.CombatCategoryMelee, 2},
	{"slashingWeaponsSharpLong", sheet.CombatCategoryMelee, 4},
	{"slashingWeaponsBluntLong", sheet.CombatCategoryMelee, 4},
	{"thrustingWeapons2h", sheet.CombatCategoryMelee, 3},
	{"missile", sheet.CombatCategoryRanged, 2},
	{"firearmSimple", sheet.CombatCategoryRanged, 1},
	{"firearmMedium", sheet.CombatCategoryRanged, 2},
	{"firearmComplex", sheet.CombatCategoryRanged, 3},
	{"heavyWeapons", sheet.CombatCategoryRanged, 4},
}

func defaultSkills() (map[string]SkillDef, []string) {
	skills := make(map[string]SkillDef)
	var order []string

	for _, group := range nonCombatSkillNames {
		for _, name := range group.names {
			id := SkillID(group.category, name)
			skills[id] = SkillDef{
				ID:           id,
				Category:     group.category,
				Name:         name,
				CostCategory: DefaultSkillCostCategory,
			}
			order = append(order, id)
		}
	}

	for _, cs := range combatSkills {
		id := SkillID(sheet.SkillCategoryCombat, cs.name)
		skills[id] = SkillDef{
			ID:           id,
			Category:     sheet.SkillCategoryCombat,
			Name:         cs.name,
			CostCategory: DefaultCombatCostCategory,
			Combat: &CombatDef{
				Category: cs.category,
				Handling: cs.handling,
			},
		}
		order = append(order, id)
	}

	return skills, order
}
