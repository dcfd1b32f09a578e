package sheet

// AttributeName identifies one of the eight fixed attributes
type AttributeName string

// Attribute constants
const (
	AttributeCourage          AttributeName = "courage"
	AttributeIntelligence     AttributeName = "intelligence"
	AttributeConcentration    AttributeName = "concentration"
	AttributeCharisma         AttributeName = "charisma"
	AttributeMentalResilience AttributeName = "mentalResilience"
	AttributeDexterity        AttributeName = "dexterity"
	AttributeEndurance        AttributeName = "endurance"
	AttributeStrength         AttributeName = "strength"
)

// AttributeNames lists all attributes in sheet order
func AttributeNames() []AttributeName {
	return []AttributeName{
		AttributeCourage,
		AttributeIntelligence,
		AttributeConcentration,
		AttributeCharisma,
		AttributeMentalResilience,
		AttributeDexterity,
		AttributeEndurance,
		AttributeStrength,
	}
}

// BaseValueName identifies a derived secondary statistic
type BaseValueName string

// Base value constants
const (
	BaseValueHealthPoints     BaseValueName = "healthPoints"
	BaseValueMentalHealth     BaseValueName = "mentalHealth"
	BaseValueArmorLevel       BaseValueName = "armorLevel"
	BaseValueNaturalArmor     BaseValueName = "naturalArmor"
	BaseValueInitiative       BaseValueName = "initiativeBaseValue"
	BaseValueAttack           BaseValueName = "attackBaseValue"
	BaseValueParade           BaseValueName = "paradeBaseValue"
	BaseValueRangedAttack     BaseValueName = "rangedAttackBaseValue"
	BaseValueLuckPoints       BaseValueName = "luckPoints"
	BaseValueBonusActions     BaseValueName = "bonusActionsPerCombatRound"
	BaseValueLegendaryActions BaseValueName = "legendaryActions"
)

// BaseValueNames lists all base values in sheet order
func BaseValueNames() []BaseValueName {
	return []BaseValueName{
		BaseValueHealthPoints,
		BaseValueMentalHealth,
		BaseValueArmorLevel,
		BaseValueNaturalArmor,
		BaseValueInitiative,
		BaseValueAttack,
		BaseValueParade,
		BaseValueRangedAttack,
		BaseValueLuckPoints,
		BaseValueBonusActions,
		BaseValueLegendaryActions,
	}
}

// SkillCategory groups skills
type SkillCategory string

// Skill category constants
const (
	SkillCategoryCombat    SkillCategory = "combat"
	SkillCategoryBody      SkillCategory = "body"
	SkillCategorySocial    SkillCategory = "social"
	SkillCategoryNature    SkillCategory = "nature"
	SkillCategoryKnowledge SkillCategory = "knowledge"
	SkillCategoryHandcraft SkillCategory = "handcraft"
)

// CombatCategory splits combat skills into melee and ranged
type CombatCategory string

// Combat category constants
const (
	CombatCategoryMelee  CombatCategory = "melee"
	CombatCategoryRanged CombatCategory = "ranged"
)

// CostCategory is the tier that prices a skill increase
type CostCategory string

// Cost category constants, ordered cheapest first
const (
	CostCategory0 CostCategory = "CAT_0"
	CostCategory1 CostCategory = "CAT_1"
	CostCategory2 CostCategory = "CAT_2"
	CostCategory3 CostCategory = "CAT_3"
	CostCategory4 CostCategory = "CAT_4"
)

// CostCategories lists all cost categories cheapest first
func CostCategories() []CostCategory {
	return []CostCategory{CostCategory0, CostCategory1, CostCategory2, CostCategory3, CostCategory4}
}

// Tier returns the zero-based tier of the category, or -1 if unknown
func (c CostCategory) Tier() int {
	for i, cat := range CostCategories() {
		if cat == c {
			return i
		}
	}
	return -1
}

// LearningMethod scales the price of an activation or increase
type LearningMethod string

// Learning method constants
const (
	LearningMethodFree      LearningMethod = "FREE"
	LearningMethodLowPriced LearningMethod = "LOW_PRICED"
	LearningMethodNormal    LearningMethod = "NORMAL"
	LearningMethodExpensive LearningMethod = "EXPENSIVE"
)

// LevelUpEffectKind identifies a selectable level-up effect
type LevelUpEffectKind string

// Level-up effect constants
const (
	EffectHPRoll                 LevelUpEffectKind = "hpRoll"
	EffectArmorLevelRoll         LevelUpEffectKind = "armorLevelRoll"
	EffectInitiativePlusOne      LevelUpEffectKind = "initiativePlusOne"
	EffectLuckPlusOne            LevelUpEffectKind = "luckPlusOne"
	EffectBonusActionPlusOne     LevelUpEffectKind = "bonusActionPlusOne"
	EffectLegendaryActionPlusOne LevelUpEffectKind = "legendaryActionPlusOne"
	EffectRerollUnlock           LevelUpEffectKind = "rerollUnlock"
)

// HistoryRecordType classifies an audit record
type HistoryRecordType string

// History record type constants
const (
	HistoryCharacterCreated         HistoryRecordType = "CHARACTER_CREATED"
	HistoryAttributeChanged         HistoryRecordType = "ATTRIBUTE_CHANGED"
	HistorySkillChanged             HistoryRecordType = "SKILL_CHANGED"
	HistoryBaseValueChanged         HistoryRecordType = "BASE_VALUE_CHANGED"
	HistoryCombatValuesChanged      HistoryRecordType = "COMBAT_VALUES_CHANGED"
	HistoryCalculationPointsChanged HistoryRecordType = "CALCULATION_POINTS_CHANGED"
	HistoryLevelUpApplied           HistoryRecordType = "LEVEL_UP_APPLIED"
)

// EntityTypeCharacter is the entity type reported by Character
const EntityTypeCharacter = "character"
