package engine

import "github.com/KirkDiggler/charsheet-api/internal/entities/sheet"

// Character event types published on the event bus
const (
	EventCharacterCreated = "charsheet.character.created"
	EventCharacterChanged = "charsheet.character.changed"
	EventCharacterLevelUp = "charsheet.character.level_up"
	EventCharacterDeleted = "charsheet.character.deleted"
)

// PriceIncreaseInput describes a skill increase to price
type PriceIncreaseInput struct {
	CurrentValue   int
	Points         int
	Category       sheet.CostCategory
	LearningMethod sheet.LearningMethod
}

// GetLevelUpOptionsOutput lists the options for the next level
type GetLevelUpOptionsOutput struct {
	NextLevel   int
	Options     []sheet.LevelUpOption
	OptionsHash string
}
