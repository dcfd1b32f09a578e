package testutils

import (
	"github.com/KirkDiggler/charsheet-api/internal/engine/assembly"
	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
	"github.com/KirkDiggler/charsheet-api/internal/rules"
)

const (
	// TestCharacterName is the default character name for test fixtures
	TestCharacterName = "Alrik Swiftfoot"

	// TestCharacterID is the id assigned to fixture characters
	TestCharacterID = "char-test-001"
)

// CreateTestAttributes returns an allocation that uses the full attribute budget
func CreateTestAttributes() map[sheet.AttributeName]int {
	return map[sheet.AttributeName]int{
		sheet.AttributeCourage:          3,
		sheet.AttributeIntelligence:     5,
		sheet.AttributeConcentration:    5,
		sheet.AttributeCharisma:         4,
		sheet.AttributeMentalResilience: 4,
		sheet.AttributeDexterity:        7,
		sheet.AttributeEndurance:        6,
		sheet.AttributeStrength:         6,
	}
}

// CreateTestRequest returns a valid creation request with sensible defaults
func CreateTestRequest(userID string) assembly.Request {
	return assembly.Request{
		UserID:     userID,
		Name:       TestCharacterName,
		Attributes: CreateTestAttributes(),
		Profession: sheet.Occupation{Name: "Hunter", SkillID: "nature/tracking"},
		Hobby:      sheet.Occupation{Name: "Angler", SkillID: "nature/knottingSkills"},
		Advantages: []sheet.Trait{
			{Kind: rules.AdvantageBrave, Value: 2},
		},
		Disadvantages: []sheet.Trait{
			{Kind: rules.DisadvantageAllergy, Info: "cats", Value: 1},
		},
		FreeSkills: []string{"combat/daggers", "combat/missile"},
	}
}

// CreateTestCharacter assembles a fully formed test character
func CreateTestCharacter(r *rules.Rules, userID string) *sheet.Character {
	c, err := assembly.New(r).Assemble(CreateTestRequest(userID))
	if err != nil {
		panic(err)
	}
	c.CharacterID = TestCharacterID
	c.CreatedAt = 1700000000
	return c
}
