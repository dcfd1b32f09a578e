package derive_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/charsheet-api/internal/engine/derive"
	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
	"github.com/KirkDiggler/charsheet-api/internal/rules"
	"github.com/KirkDiggler/charsheet-api/internal/testutils"
)

type DeriveTestSuite struct {
	suite.Suite
	rules      *rules.Rules
	propagator *derive.Propagator
	character  *sheet.Character
}

func TestDeriveSuite(t *testing.T) {
	suite.Run(t, new(DeriveTestSuite))
}

func (s *DeriveTestSuite) SetupTest() {
	s.rules = rules.Default()
	s.propagator = derive.New(s.rules)
	s.character = testutils.CreateTestCharacter(s.rules, "user-1")
}

func (s *DeriveTestSuite) assertCombatFormulas(c *sheet.Character) {
	for _, def := range s.rules.Skills() {
		if def.Combat == nil {
			continue
		}
		stats := c.CombatStats[def.ID]
		attackName, paradeName := rules.CombatBaseValues(def.Combat.Category)
		attack := c.BaseValues[attackName]
		s.Equal(stats.SkilledAttackValue+attack.Current+attack.Mod, stats.AttackValue, def.ID)
		if def.Combat.Category == sheet.CombatCategoryRanged {
			s.Zero(stats.ParadeValue, def.ID)
			s.Zero(stats.SkilledParadeValue, def.ID)
			continue
		}
		parade := c.BaseValues[paradeName]
		s.Equal(stats.SkilledParadeValue+parade.Current+parade.Mod, stats.ParadeValue, def.ID)
	}
}

func (s *DeriveTestSuite) TestDeriveBaseValuesOnlyFormulaValues() {
	derived := s.propagator.DeriveBaseValues(s.character.Attributes)

	s.Contains(derived, sheet.BaseValueHealthPoints)
	s.Contains(derived, sheet.BaseValueAttack)
	s.NotContains(derived, sheet.BaseValueArmorLevel)
	s.NotContains(derived, sheet.BaseValueLegendaryActions)

	endurance := s.character.Attributes[sheet.AttributeEndurance].Value()
	strength := s.character.Attributes[sheet.AttributeStrength].Value()
	s.Equal(2*endurance+strength, derived[sheet.BaseValueHealthPoints])
}

func (s *DeriveTestSuite) TestCourageModChangeIsSelective() {
	before := s.character.Clone()

	courage := s.character.Attributes[sheet.AttributeCourage]
	courage.Mod = 10
	s.character.Attributes[sheet.AttributeCourage] = courage

	changes := s.propagator.AttributeChanged(s.character, sheet.AttributeCourage)

	s.Contains(changes.BaseValues, sheet.BaseValueAttack)
	s.NotEqual(before.BaseValues[sheet.BaseValueAttack].Current, s.character.BaseValues[sheet.BaseValueAttack].Current)
	s.NotEqual(*before.BaseValues[sheet.BaseValueAttack].ByFormula, *s.character.BaseValues[sheet.BaseValueAttack].ByFormula)

	for _, untouched := range []sheet.BaseValueName{
		sheet.BaseValueHealthPoints,
		sheet.BaseValueMentalHealth,
		sheet.BaseValueParade,
		sheet.BaseValueRangedAttack,
	} {
		s.NotContains(changes.BaseValues, untouched)
		s.True(before.BaseValues[untouched].Equal(s.character.BaseValues[untouched]), untouched)
	}

	// attack base value feeds melee only
	for _, id := range changes.CombatStats {
		def, ok := s.rules.Skill(id)
		s.Require().True(ok)
		s.Equal(sheet.CombatCategoryMelee, def.Combat.Category)
	}
	for _, def := range s.rules.CombatSkills(sheet.CombatCategoryRanged) {
		s.Equal(before.CombatStats[def.ID], s.character.CombatStats[def.ID])
	}
	s.assertCombatFormulas(s.character)
}

func (s *DeriveTestSuite) TestUnusedAttributeTriggersNothing() {
	charisma := s.character.Attributes[sheet.AttributeCharisma]
	charisma.Current += 20
	s.character.Attributes[sheet.AttributeCharisma] = charisma

	changes := s.propagator.AttributeChanged(s.character, sheet.AttributeCharisma)
	s.True(changes.Empty())
}

func (s *DeriveTestSuite) TestCurrentIncludesLevelUps() {
	hp := s.character.BaseValues[sheet.BaseValueHealthPoints]
	hp.ByLvlUp = sheet.IntPtr(4)
	s.character.BaseValues[sheet.BaseValueHealthPoints] = hp

	endurance := s.character.Attributes[sheet.AttributeEndurance]
	endurance.Current++
	s.character.Attributes[sheet.AttributeEndurance] = endurance

	s.propagator.AttributeChanged(s.character, sheet.AttributeEndurance)

	hp = s.character.BaseValues[sheet.BaseValueHealthPoints]
	s.Equal(*hp.ByFormula+4, hp.Current)
}

func (s *DeriveTestSuite) TestRangedBaseValueModOnlyTouchesRanged() {
	ranged := s.character.BaseValues[sheet.BaseValueRangedAttack]
	ranged.Mod = 5
	s.character.BaseValues[sheet.BaseValueRangedAttack] = ranged

	changes := s.propagator.BaseValueChanged(s.character, sheet.BaseValueRangedAttack)

	s.NotEmpty(changes.CombatStats)
	for _, id := range changes.CombatStats {
		def, _ := s.rules.Skill(id)
		s.Equal(sheet.CombatCategoryRanged, def.Combat.Category)
	}
	s.assertCombatFormulas(s.character)
}

func (s *DeriveTestSuite) TestSkillChangeOnlyRecomputesThatSkill() {
	before := s.character.Clone()

	daggers := s.character.Skills["combat/daggers"]
	daggers.Current += 12
	s.character.Skills["combat/daggers"] = daggers

	changes := s.propagator.SkillChanged(s.character, "combat/daggers")

	s.Equal([]string{"combat/daggers"}, changes.CombatStats)
	s.Equal(before.CombatStats["combat/daggers"].AvailablePoints+12, s.character.CombatStats["combat/daggers"].AvailablePoints)
	s.Equal(before.CombatStats["combat/barehanded"], s.character.CombatStats["combat/barehanded"])
}

func (s *DeriveTestSuite) TestNonCombatSkillHasNoDerivedValues() {
	changes := s.propagator.SkillChanged(s.character, "body/athletics")
	s.True(changes.Empty())
}

func (s *DeriveTestSuite) TestDeriveCombatStatsRangedForcesZeroParade() {
	stats := derive.DeriveCombatStats(
		sheet.Skill{Current: 20},
		sheet.CombatValues{SkilledAttackValue: 5, SkilledParadeValue: 7, ParadeValue: 12},
		sheet.CombatCategoryRanged,
		sheet.BaseValue{Current: 8, Mod: 1},
		sheet.BaseValue{},
	)
	s.Equal(14, stats.AttackValue)
	s.Zero(stats.ParadeValue)
	s.Zero(stats.SkilledParadeValue)
	s.Equal(15, stats.AvailablePoints)
}

func (s *DeriveTestSuite) TestAllSeedsEverything() {
	c := testutils.CreateTestCharacter(s.rules, "user-2")
	for name, bv := range c.BaseValues {
		bv.ByFormula = nil
		c.BaseValues[name] = bv
	}
	c.CombatStats = nil

	s.propagator.All(c)

	for _, name := range sheet.BaseValueNames() {
		def, _ := s.rules.BaseValue(name)
		bv := c.BaseValues[name]
		if def.Formula != nil {
			s.Require().NotNil(bv.ByFormula, name)
			s.Equal(*bv.ByFormula+sheet.IntValue(bv.ByLvlUp), bv.Current, name)
		} else {
			s.Nil(bv.ByFormula, name)
		}
	}
	s.assertCombatFormulas(c)
}
