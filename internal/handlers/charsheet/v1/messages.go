package v1

import (
	"github.com/KirkDiggler/charsheet-api/internal/engine/mutation"
	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
	"github.com/KirkDiggler/charsheet-api/internal/services/character"
)

// Request and response messages of charsheet.v1.CharacterService.
// The caller's user ID travels in the x-user-id metadata key, never in a
// message.

// Character lifecycle

type CreateCharacterRequest struct {
	Name          string                      `json:"name"`
	Attributes    map[sheet.AttributeName]int `json:"attributes,omitempty"`
	Profession    sheet.Occupation            `json:"profession"`
	Hobby         sheet.Occupation            `json:"hobby"`
	Advantages    []sheet.Trait               `json:"advantages,omitempty"`
	Disadvantages []sheet.Trait               `json:"disadvantages,omitempty"`
	BonusSkills   map[string]string           `json:"bonusSkills,omitempty"`
	FreeSkills    []string                    `json:"freeSkills,omitempty"`
}

type CreateCharacterResponse struct {
	Character     *sheet.Character     `json:"character"`
	HistoryRecord *sheet.HistoryRecord `json:"historyRecord"`
}

type GetCharacterRequest struct {
	CharacterID string `json:"characterId"`
}

type GetCharacterResponse struct {
	Character *sheet.Character `json:"character"`
}

type ListCharactersRequest struct{}

type ListCharactersResponse struct {
	Characters []*sheet.Character `json:"characters"`
}

type DeleteCharacterRequest struct {
	CharacterID string `json:"characterId"`
}

type DeleteCharacterResponse struct {
	DeletedHistoryRecords int64 `json:"deletedHistoryRecords"`
}

// Field group updates

type UpdateAttributeRequest struct {
	CharacterID string              `json:"characterId"`
	Attribute   sheet.AttributeName `json:"attribute"`
	Start       *mutation.Set[int]  `json:"start,omitempty"`
	Current     *mutation.Increase  `json:"current,omitempty"`
	Mod         *mutation.Set[int]  `json:"mod,omitempty"`
	Comment     string              `json:"comment,omitempty"`
}

type UpdateAttributeResponse struct {
	Attribute       character.Change[sheet.Attribute] `json:"attribute"`
	Derived         character.Derived                 `json:"derived"`
	AttributePoints *sheet.PointsChange               `json:"attributePoints,omitempty"`
	HistoryRecord   *sheet.HistoryRecord              `json:"historyRecord"`
}

type UpdateSkillRequest struct {
	CharacterID    string               `json:"characterId"`
	SkillID        string               `json:"skillId"`
	Activated      *mutation.Set[bool]  `json:"activated,omitempty"`
	Start          *mutation.Set[int]   `json:"start,omitempty"`
	Current        *mutation.Increase   `json:"current,omitempty"`
	Mod            *mutation.Set[int]   `json:"mod,omitempty"`
	LearningMethod sheet.LearningMethod `json:"learningMethod,omitempty"`
	Comment        string               `json:"comment,omitempty"`
}

type UpdateSkillResponse struct {
	Skill           character.Change[sheet.Skill] `json:"skill"`
	Derived         character.Derived             `json:"derived"`
	AdventurePoints *sheet.PointsChange           `json:"adventurePoints,omitempty"`
	HistoryRecord   *sheet.HistoryRecord          `json:"historyRecord"`
}

type UpdateBaseValueRequest struct {
	CharacterID string              `json:"characterId"`
	BaseValue   sheet.BaseValueName `json:"baseValue"`
	Start       *mutation.Set[int]  `json:"start,omitempty"`
	Mod         *mutation.Set[int]  `json:"mod,omitempty"`
	Comment     string              `json:"comment,omitempty"`
}

type UpdateBaseValueResponse struct {
	BaseValue     character.Change[sheet.BaseValue] `json:"baseValue"`
	Derived       character.Derived                 `json:"derived"`
	HistoryRecord *sheet.HistoryRecord              `json:"historyRecord"`
}

type UpdateCombatStatsRequest struct {
	CharacterID        string             `json:"characterId"`
	SkillID            string             `json:"skillId"`
	SkilledAttackValue *mutation.Set[int] `json:"skilledAttackValue,omitempty"`
	SkilledParadeValue *mutation.Set[int] `json:"skilledParadeValue,omitempty"`
	Comment            string             `json:"comment,omitempty"`
}

type UpdateCombatStatsResponse struct {
	CombatStats   character.Change[sheet.CombatValues] `json:"combatStats"`
	HistoryRecord *sheet.HistoryRecord                 `json:"historyRecord"`
}

// PointsUpdate changes one calculation-point budget
type PointsUpdate struct {
	Start *mutation.Set[float64]  `json:"start,omitempty"`
	Total *mutation.FloatIncrease `json:"total,omitempty"`
}

type UpdateCalculationPointsRequest struct {
	CharacterID     string        `json:"characterId"`
	AdventurePoints *PointsUpdate `json:"adventurePoints,omitempty"`
	AttributePoints *PointsUpdate `json:"attributePoints,omitempty"`
	Comment         string        `json:"comment,omitempty"`
}

type UpdateCalculationPointsResponse struct {
	CalculationPoints character.Change[sheet.CalculationPoints] `json:"calculationPoints"`
	HistoryRecord     *sheet.HistoryRecord                      `json:"historyRecord"`
}

// Level-up

type GetLevelUpOptionsRequest struct {
	CharacterID string `json:"characterId"`
}

type GetLevelUpOptionsResponse struct {
	Level       int                   `json:"level"`
	NextLevel   int                   `json:"nextLevel"`
	Options     []sheet.LevelUpOption `json:"options"`
	OptionsHash string                `json:"optionsHash"`
}

type ApplyLevelUpRequest struct {
	CharacterID  string                  `json:"characterId"`
	InitialLevel int                     `json:"initialLevel"`
	OptionsHash  string                  `json:"optionsHash"`
	Effect       sheet.LevelUpEffectKind `json:"effect"`
	Roll         *int                    `json:"roll,omitempty"`
	Comment      string                  `json:"comment,omitempty"`
}

type ApplyLevelUpResponse struct {
	Level            character.Change[int]              `json:"level"`
	Effect           sheet.LevelUpEffectKind            `json:"effect"`
	Roll             int                                `json:"roll,omitempty"`
	BaseValue        *character.Change[sheet.BaseValue] `json:"baseValue,omitempty"`
	Derived          character.Derived                  `json:"derived"`
	SpecialAbilities []string                           `json:"specialAbilities,omitempty"`
	HistoryRecord    *sheet.HistoryRecord               `json:"historyRecord"`
}

// Audit log

type ListHistoryRequest struct {
	CharacterID string `json:"characterId"`
	AfterNumber int64  `json:"afterNumber,omitempty"`
	PageSize    int    `json:"pageSize,omitempty"`
}

type ListHistoryResponse struct {
	Records []*sheet.HistoryRecord `json:"records"`
	HasMore bool                   `json:"hasMore"`
}
