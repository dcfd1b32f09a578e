package levelup_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/charsheet-api/internal/engine/levelup"
	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
	"github.com/KirkDiggler/charsheet-api/internal/errors"
	"github.com/KirkDiggler/charsheet-api/internal/rules"
	"github.com/KirkDiggler/charsheet-api/internal/testutils"
)

type fixedRoller struct {
	value int
}

// Minimal implementation to satisfy dice.Roller interface
func (r *fixedRoller) Roll(_ int) (int, error) { return r.value, nil }
func (r *fixedRoller) RollN(count, _ int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i] = r.value
	}
	return out, nil
}

type LevelUpTestSuite struct {
	suite.Suite
	rules   *rules.Rules
	machine *levelup.Machine
}

func TestLevelUpSuite(t *testing.T) {
	suite.Run(t, new(LevelUpTestSuite))
}

func (s *LevelUpTestSuite) SetupTest() {
	s.rules = rules.Default()
	s.machine = levelup.New(s.rules, &fixedRoller{value: 3})
}

func (s *LevelUpTestSuite) optionFor(options []sheet.LevelUpOption, kind sheet.LevelUpEffectKind) sheet.LevelUpOption {
	for _, opt := range options {
		if opt.Kind == kind {
			return opt
		}
	}
	s.FailNow("option not found", kind)
	return sheet.LevelUpOption{}
}

func (s *LevelUpTestSuite) characterAt(level int) *sheet.Character {
	c := testutils.CreateTestCharacter(s.rules, "user-1")
	c.Level = level
	return c
}

func (s *LevelUpTestSuite) apply(c *sheet.Character, kind sheet.LevelUpEffectKind, roll *int) (*levelup.Result, error) {
	hash, err := levelup.OptionsHash(s.machine.Options(c.Level+1, c.LevelUpProgress))
	s.Require().NoError(err)
	return s.machine.Apply(c, levelup.ApplyInput{
		InitialLevel: c.Level,
		OptionsHash:  hash,
		Effect:       kind,
		Roll:         roll,
	})
}

func (s *LevelUpTestSuite) TestOptionsListEveryEffect() {
	options := s.machine.Options(2, sheet.LevelUpProgress{})
	s.Len(options, len(s.rules.LevelUpEffects()))
	for _, opt := range options {
		if opt.Allowed {
			s.Empty(opt.ReasonIfDenied, opt.Kind)
		} else {
			s.NotEmpty(opt.ReasonIfDenied, opt.Kind)
		}
	}
	s.Equal("1d4", s.optionFor(options, sheet.EffectHPRoll).DiceExpression)
	s.Nil(s.optionFor(options, sheet.EffectHPRoll).LastChosenLevel)
}

func (s *LevelUpTestSuite) TestLegendaryActionGatedByFirstLevel() {
	s.Run("denied when reaching level 10", func() {
		opt := s.optionFor(s.machine.Options(10, sheet.LevelUpProgress{}), sheet.EffectLegendaryActionPlusOne)
		s.False(opt.Allowed)
		s.Contains(opt.ReasonIfDenied, "level 11")
	})

	s.Run("denied apply at level 9", func() {
		c := s.characterAt(9)
		_, err := s.apply(c, sheet.EffectLegendaryActionPlusOne, nil)
		s.Require().Error(err)
		s.True(errors.IsInvalidArgument(err))
		s.Equal("InvalidEffect", errors.GetMeta(err)["reason"])
		s.Equal(9, c.Level)
	})

	s.Run("applied at level 20", func() {
		c := s.characterAt(20)
		before := c.BaseValues[sheet.BaseValueLegendaryActions]

		result, err := s.apply(c, sheet.EffectLegendaryActionPlusOne, nil)
		s.Require().NoError(err)
		s.Equal(21, result.Level)
		s.Equal(1, result.Delta)

		after := c.BaseValues[sheet.BaseValueLegendaryActions]
		s.Equal(21, c.Level)
		s.Equal(before.Current+1, after.Current)
		s.Equal(sheet.IntValue(before.ByLvlUp)+1, sheet.IntValue(after.ByLvlUp))
		s.Equal(sheet.EffectLegendaryActionPlusOne, c.LevelUpProgress.EffectsByLevel[21])

		progress := c.LevelUpProgress.Effects[sheet.EffectLegendaryActionPlusOne]
		s.Equal(1, progress.SelectionCount)
		s.Equal(21, progress.FirstChosenLevel)
		s.Equal(21, progress.LastChosenLevel)
	})
}

func (s *LevelUpTestSuite) TestSecondApplyWithSameLevelConflicts() {
	c := s.characterAt(1)
	hash, err := levelup.OptionsHash(s.machine.Options(2, c.LevelUpProgress))
	s.Require().NoError(err)
	input := levelup.ApplyInput{InitialLevel: 1, OptionsHash: hash, Effect: sheet.EffectInitiativePlusOne}

	_, err = s.machine.Apply(c, input)
	s.Require().NoError(err)

	_, err = s.machine.Apply(c, input)
	s.Require().Error(err)
	s.True(errors.IsConflict(err))
	s.Equal(2, c.Level)
}

func (s *LevelUpTestSuite) TestStaleHashConflicts() {
	c := s.characterAt(4)
	staleHash, err := levelup.OptionsHash(s.machine.Options(5, c.LevelUpProgress))
	s.Require().NoError(err)

	// progress changes behind the caller's back at the same level
	c.LevelUpProgress.Effects[sheet.EffectLuckPlusOne] = sheet.EffectProgress{
		SelectionCount: 1, FirstChosenLevel: 4, LastChosenLevel: 4,
	}

	_, err = s.machine.Apply(c, levelup.ApplyInput{
		InitialLevel: 4,
		OptionsHash:  staleHash,
		Effect:       sheet.EffectHPRoll,
	})
	s.Require().Error(err)
	s.True(errors.IsConflict(err))
	s.Equal("optionsHash", errors.GetMeta(err)["field"])
	s.Equal(4, c.Level)
}

func (s *LevelUpTestSuite) TestHashIsDeterministic() {
	a, err := levelup.OptionsHash(s.machine.Options(7, sheet.LevelUpProgress{}))
	s.Require().NoError(err)
	b, err := levelup.OptionsHash(s.machine.Options(7, sheet.LevelUpProgress{}))
	s.Require().NoError(err)
	s.Equal(a, b)

	c, err := levelup.OptionsHash(s.machine.Options(8, sheet.LevelUpProgress{}))
	s.Require().NoError(err)
	s.NotEqual(a, c)
}

func (s *LevelUpTestSuite) TestCooldownAndCap() {
	c := s.characterAt(1)

	_, err := s.apply(c, sheet.EffectLuckPlusOne, nil)
	s.Require().NoError(err)

	// chosen reaching 2, cooldown 2: denied reaching 3, allowed reaching 4
	opt := s.optionFor(s.machine.Options(3, c.LevelUpProgress), sheet.EffectLuckPlusOne)
	s.False(opt.Allowed)
	s.Contains(opt.ReasonIfDenied, "cooldown")
	s.Require().NotNil(opt.LastChosenLevel)
	s.Equal(2, *opt.LastChosenLevel)

	_, err = s.apply(c, sheet.EffectHPRoll, nil)
	s.Require().NoError(err)
	_, err = s.apply(c, sheet.EffectLuckPlusOne, nil)
	s.Require().NoError(err)
	_, err = s.apply(c, sheet.EffectHPRoll, nil)
	s.Require().NoError(err)
	_, err = s.apply(c, sheet.EffectLuckPlusOne, nil)
	s.Require().NoError(err)

	s.Equal(6, c.Level)
	opt = s.optionFor(s.machine.Options(20, c.LevelUpProgress), sheet.EffectLuckPlusOne)
	s.False(opt.Allowed)
	s.Equal(3, opt.SelectionCount)
	s.LessOrEqual(opt.SelectionCount, opt.MaxSelectionCount)
}

func (s *LevelUpTestSuite) TestRerollUnlockOnce() {
	c := s.characterAt(3)

	result, err := s.apply(c, sheet.EffectRerollUnlock, nil)
	s.Require().NoError(err)
	s.Equal(rules.RerollAbility, result.Ability)
	s.Contains(c.SpecialAbilities, rules.RerollAbility)

	opt := s.optionFor(s.machine.Options(30, c.LevelUpProgress), sheet.EffectRerollUnlock)
	s.False(opt.Allowed)
	s.NotEmpty(opt.ReasonIfDenied)
}

func (s *LevelUpTestSuite) TestDiceEffects() {
	s.Run("server rolls when no roll supplied", func() {
		c := s.characterAt(1)
		before := c.BaseValues[sheet.BaseValueHealthPoints]

		result, err := s.apply(c, sheet.EffectHPRoll, nil)
		s.Require().NoError(err)
		s.Equal(3, result.Delta)
		s.Equal(before.Current+3, c.BaseValues[sheet.BaseValueHealthPoints].Current)
	})

	s.Run("supplied roll in range", func() {
		c := s.characterAt(1)
		roll := 4
		result, err := s.apply(c, sheet.EffectHPRoll, &roll)
		s.Require().NoError(err)
		s.Equal(4, result.Delta)
	})

	s.Run("supplied roll out of range", func() {
		c := s.characterAt(1)
		roll := 5
		_, err := s.apply(c, sheet.EffectHPRoll, &roll)
		s.Require().Error(err)
		s.True(errors.IsInvalidArgument(err))
		s.Equal(1, c.Level)
	})

	s.Run("roll on a fixed effect", func() {
		c := s.characterAt(1)
		roll := 1
		_, err := s.apply(c, sheet.EffectInitiativePlusOne, &roll)
		s.True(errors.IsInvalidArgument(err))
	})
}

func (s *LevelUpTestSuite) TestUnknownEffect() {
	c := s.characterAt(5)
	_, err := s.apply(c, "flyPlusOne", nil)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *LevelUpTestSuite) TestParseDice() {
	count, size, err := levelup.ParseDice("2d6")
	s.Require().NoError(err)
	s.Equal(2, count)
	s.Equal(6, size)

	for _, bad := range []string{"d6", "2x6", "0d4", ""} {
		_, _, err := levelup.ParseDice(bad)
		s.Error(err, bad)
	}
}
