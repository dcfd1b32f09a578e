package rules

import (
	"math"

	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
)

// Unlimited stands in for "no cap" in selection counts and cooldowns. It is
// kept well inside int32 so option lists serialize the same on every client.
const Unlimited = math.MaxInt32

// RerollAbility is the special ability granted by the reroll unlock
const RerollAbility = "Reroll: once per session, reroll one failed check and keep the better result"

// LevelUpEffect is one selectable level-up effect
type LevelUpEffect struct {
	Kind              sheet.LevelUpEffectKind
	FirstLevel        int
	CooldownLevels    int
	MaxSelectionCount int

	// Dice is set for roll-based effects; the rolled value is the delta.
	Dice string

	// Delta is the fixed increase for non-dice effects.
	Delta int

	Target  sheet.BaseValueName
	Ability string
}

func defaultLevelUpEffects() []LevelUpEffect {
	return []LevelUpEffect{
		{
			Kind:              sheet.EffectHPRoll,
			FirstLevel:        2,
			CooldownLevels:    0,
			MaxSelectionCount: Unlimited,
			Dice:              "1d4",
			Target:            sheet.BaseValueHealthPoints,
		},
		{
			Kind:              sheet.EffectArmorLevelRoll,
			FirstLevel:        2,
			CooldownLevels:    2,
			MaxSelectionCount: Unlimited,
			Dice:              "1d2",
			Target:            sheet.BaseValueNaturalArmor,
		},
		{
			Kind:              sheet.EffectInitiativePlusOne,
			FirstLevel:        2,
			CooldownLevels:    1,
			MaxSelectionCount: Unlimited,
			Delta:             1,
			Target:            sheet.BaseValueInitiative,
		},
		{
			Kind:              sheet.EffectLuckPlusOne,
			FirstLevel:        2,
			CooldownLevels:    2,
			MaxSelectionCount: 3,
			Delta:             1,
			Target:            sheet.BaseValueLuckPoints,
		},
		{
			Kind:              sheet.EffectBonusActionPlusOne,
			FirstLevel:        6,
			CooldownLevels:    9,
			MaxSelectionCount: 3,
			Delta:             1,
			Target:            sheet.BaseValueBonusActions,
		},
		{
			Kind:              sheet.EffectLegendaryActionPlusOne,
			FirstLevel:        11,
			CooldownLevels:    9,
			MaxSelectionCount: 3,
			Delta:             1,
			Target:            sheet.BaseValueLegendaryActions,
		},
		{
			Kind:              sheet.EffectRerollUnlock,
			FirstLevel:        2,
			CooldownLevels:    Unlimited,
			MaxSelectionCount: 1,
			Ability:           RerollAbility,
		},
	}
}
