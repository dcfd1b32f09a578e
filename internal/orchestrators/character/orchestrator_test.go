package character_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/charsheet-api/internal/engine"
	"github.com/KirkDiggler/charsheet-api/internal/engine/mutation"
	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
	"github.com/KirkDiggler/charsheet-api/internal/errors"
	"github.com/KirkDiggler/charsheet-api/internal/orchestrators/character"
	mockclock "github.com/KirkDiggler/charsheet-api/internal/pkg/clock/mock"
	"github.com/KirkDiggler/charsheet-api/internal/pkg/idgen"
	characterrepo "github.com/KirkDiggler/charsheet-api/internal/repositories/character"
	historyrepo "github.com/KirkDiggler/charsheet-api/internal/repositories/history"
	"github.com/KirkDiggler/charsheet-api/internal/rules"
	charactersvc "github.com/KirkDiggler/charsheet-api/internal/services/character"
	"github.com/KirkDiggler/charsheet-api/internal/testutils"
)

const testUserID = "user_456"

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mr           *miniredis.Miniredis
	cleanup      func()
	characters   characterrepo.Repository
	history      historyrepo.Repository
	orchestrator *character.Orchestrator
	ctx          context.Context
	ref          charactersvc.CharacterRef
	created      *sheet.Character
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	client, mr, cleanup := testutils.CreateTestRedis(s.T())
	s.mr = mr
	s.cleanup = cleanup
	s.ctx = context.Background()

	var err error
	s.characters, err = characterrepo.NewRedis(&characterrepo.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.history, err = historyrepo.NewRedis(&historyrepo.RedisConfig{Client: client})
	s.Require().NoError(err)

	clk := mockclock.NewMockClock(s.ctrl)
	clk.EXPECT().Now().Return(time.Unix(1700000000, 0)).AnyTimes()

	eng, err := engine.New(&engine.Config{
		Rules:    rules.Default(),
		EventBus: events.NewBus(),
	})
	s.Require().NoError(err)

	s.orchestrator, err = character.New(&character.Config{
		CharacterRepo:        s.characters,
		HistoryRepo:          s.history,
		Engine:               eng,
		Clock:                clk,
		CharacterIDGenerator: idgen.NewSequential("char"),
		RecordIDGenerator:    idgen.NewSequential("rec"),
	})
	s.Require().NoError(err)

	req := testutils.CreateTestRequest(testUserID)
	out, err := s.orchestrator.CreateCharacter(s.ctx, &charactersvc.CreateCharacterInput{
		UserID:        req.UserID,
		Name:          req.Name,
		Attributes:    req.Attributes,
		Profession:    req.Profession,
		Hobby:         req.Hobby,
		Advantages:    req.Advantages,
		Disadvantages: req.Disadvantages,
		FreeSkills:    req.FreeSkills,
	})
	s.Require().NoError(err)
	s.created = out.Character
	s.ref = charactersvc.CharacterRef{UserID: testUserID, CharacterID: out.Character.CharacterID}
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.cleanup()
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) load() *sheet.Character {
	out, err := s.orchestrator.GetCharacter(s.ctx, &charactersvc.GetCharacterInput{CharacterRef: s.ref})
	s.Require().NoError(err)
	return out.Character
}

func (s *OrchestratorTestSuite) records() []*sheet.HistoryRecord {
	out, err := s.orchestrator.ListHistory(s.ctx, &charactersvc.ListHistoryInput{CharacterRef: s.ref})
	s.Require().NoError(err)
	return out.Records
}

// raiseSkill increases a skill from its stored value
func (s *OrchestratorTestSuite) raiseSkill(id string, points int, method sheet.LearningMethod) *charactersvc.UpdateSkillOutput {
	stored := s.load().Skills[id]
	out, err := s.orchestrator.UpdateSkill(s.ctx, &charactersvc.UpdateSkillInput{
		CharacterRef:   s.ref,
		SkillID:        id,
		Current:        &mutation.Increase{InitialValue: stored.Current, IncreasedPoints: points},
		LearningMethod: method,
	})
	s.Require().NoError(err)
	return out
}

func (s *OrchestratorTestSuite) grantAttributePoints(points float64) {
	stored := s.load().CalculationPoints.AttributePoints
	_, err := s.orchestrator.UpdateCalculationPoints(s.ctx, &charactersvc.UpdateCalculationPointsInput{
		CharacterRef: s.ref,
		AttributePoints: &charactersvc.PointsUpdate{
			Total: &mutation.FloatIncrease{InitialValue: stored.Total, IncreasedPoints: points},
		},
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TestCreateCharacterWritesFirstRecord() {
	s.Equal("char_1", s.created.CharacterID)
	s.Equal(int64(1700000000), s.created.CreatedAt)
	s.Equal(s.created, s.load())

	records := s.records()
	s.Require().Len(records, 1)
	s.Equal(int64(1), records[0].Number)
	s.Equal(sheet.HistoryCharacterCreated, records[0].Type)
	s.Equal("rec_1", records[0].ID)
	s.Equal(int64(1700000000000), records[0].Timestamp)
	s.JSONEq("null", string(records[0].Data.Old))
	s.Require().NotNil(records[0].CalculationPoints.AdventurePoints)
	s.Equal(100.0, records[0].CalculationPoints.AdventurePoints.New.Available)
}

func (s *OrchestratorTestSuite) TestCreateCharacterValidation() {
	_, err := s.orchestrator.CreateCharacter(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.CreateCharacter(s.ctx, &charactersvc.CreateCharacterInput{UserID: "someone-else"})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	list, err := s.orchestrator.ListCharacters(s.ctx, &charactersvc.ListCharactersInput{UserID: "someone-else"})
	s.Require().NoError(err)
	s.Empty(list.Characters)
}

func (s *OrchestratorTestSuite) TestFreeActivationChangesOnlyThatSkill() {
	before := s.load()

	out, err := s.orchestrator.UpdateSkill(s.ctx, &charactersvc.UpdateSkillInput{
		CharacterRef:   s.ref,
		SkillID:        "nature/fishing",
		Activated:      &mutation.Set[bool]{InitialValue: false, NewValue: true},
		LearningMethod: sheet.LearningMethodFree,
	})
	s.Require().NoError(err)
	s.True(out.Skill.New.Activated)
	s.Zero(out.Skill.New.TotalCost)
	s.Nil(out.AdventurePoints)
	s.Require().NotNil(out.HistoryRecord)
	s.Equal(int64(2), out.HistoryRecord.Number)
	s.Equal(sheet.HistorySkillChanged, out.HistoryRecord.Type)
	s.Equal(sheet.LearningMethodFree, out.HistoryRecord.LearningMethod)

	after := s.load()
	s.Equal(before.CalculationPoints, after.CalculationPoints)
	for id, skill := range before.Skills {
		if id == "nature/fishing" {
			continue
		}
		s.Equal(skill, after.Skills[id], id)
	}
}

func (s *OrchestratorTestSuite) TestActivationFeeIsDebited() {
	out, err := s.orchestrator.UpdateSkill(s.ctx, &charactersvc.UpdateSkillInput{
		CharacterRef:   s.ref,
		SkillID:        "nature/fishing",
		Activated:      &mutation.Set[bool]{InitialValue: false, NewValue: true},
		Current:        &mutation.Increase{InitialValue: 0, IncreasedPoints: 2},
		LearningMethod: sheet.LearningMethodNormal,
	})
	s.Require().NoError(err)

	// fee plus two points, one debit
	s.Require().NotNil(out.AdventurePoints)
	s.Equal(48.0, out.AdventurePoints.New.Available)
	s.Equal(52.0, out.Skill.New.TotalCost)
	s.Equal(2, out.Skill.New.Current)
}

func (s *OrchestratorTestSuite) TestSkillIncreaseIsPricedAndIdempotent() {
	s.raiseSkill("body/athletics", 16, sheet.LearningMethodNormal)
	before := s.load()

	input := &charactersvc.UpdateSkillInput{
		CharacterRef:   s.ref,
		SkillID:        "body/athletics",
		Current:        &mutation.Increase{InitialValue: 16, IncreasedPoints: 3},
		LearningMethod: sheet.LearningMethodLowPriced,
	}
	out, err := s.orchestrator.UpdateSkill(s.ctx, input)
	s.Require().NoError(err)
	s.Equal(19, out.Skill.New.Current)
	s.Require().NotNil(out.AdventurePoints)
	s.Equal(before.CalculationPoints.AdventurePoints.Available-1.5, out.AdventurePoints.New.Available)
	s.Require().NotNil(out.HistoryRecord)
	s.Equal(sheet.LearningMethodLowPriced, out.HistoryRecord.LearningMethod)

	s.Run("retry is a no-op", func() {
		retry, err := s.orchestrator.UpdateSkill(s.ctx, input)
		s.Require().NoError(err)
		s.Nil(retry.HistoryRecord)
		s.Nil(retry.AdventurePoints)
		s.Equal(retry.Skill.Old, retry.Skill.New)
		s.Equal(19, retry.Skill.New.Current)

		after := s.load()
		s.Equal(out.AdventurePoints.New, after.CalculationPoints.AdventurePoints)
		s.Len(s.records(), 3)
	})

	s.Run("stale initial value conflicts", func() {
		_, err := s.orchestrator.UpdateSkill(s.ctx, &charactersvc.UpdateSkillInput{
			CharacterRef:   s.ref,
			SkillID:        "body/athletics",
			Current:        &mutation.Increase{InitialValue: 10, IncreasedPoints: 3},
			LearningMethod: sheet.LearningMethodLowPriced,
		})
		s.Require().Error(err)
		s.True(errors.IsConflict(err))
		meta := errors.GetMeta(err)
		s.Equal("body/athletics.current", meta["field"])
		s.Equal(19, meta["actual"])
	})
}

func (s *OrchestratorTestSuite) TestBudgetConservation() {
	before := s.load()
	s.raiseSkill("body/athletics", 5, sheet.LearningMethodNormal)
	s.raiseSkill("combat/daggers", 4, sheet.LearningMethodExpensive)
	after := s.load()

	var costBefore, costAfter float64
	for id, skill := range before.Skills {
		costBefore += skill.TotalCost
		costAfter += after.Skills[id].TotalCost
	}
	spent := before.CalculationPoints.AdventurePoints.Available - after.CalculationPoints.AdventurePoints.Available
	s.Positive(spent)
	s.InDelta(costAfter-costBefore, spent, 1e-9)
}

func (s *OrchestratorTestSuite) TestSkillRules() {
	s.Run("skills cannot be deactivated", func() {
		_, err := s.orchestrator.UpdateSkill(s.ctx, &charactersvc.UpdateSkillInput{
			CharacterRef: s.ref,
			SkillID:      "body/athletics",
			Activated:    &mutation.Set[bool]{InitialValue: true, NewValue: false},
		})
		s.True(errors.IsConflict(err))
		s.True(s.load().Skills["body/athletics"].Activated)
	})

	s.Run("inactive skills cannot be increased", func() {
		_, err := s.orchestrator.UpdateSkill(s.ctx, &charactersvc.UpdateSkillInput{
			CharacterRef:   s.ref,
			SkillID:        "nature/fishing",
			Current:        &mutation.Increase{InitialValue: 0, IncreasedPoints: 1},
			LearningMethod: sheet.LearningMethodNormal,
		})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("learning method is required to pay", func() {
		_, err := s.orchestrator.UpdateSkill(s.ctx, &charactersvc.UpdateSkillInput{
			CharacterRef: s.ref,
			SkillID:      "body/athletics",
			Current:      &mutation.Increase{InitialValue: 0, IncreasedPoints: 1},
		})
		s.True(errors.IsInvalidArgument(err))
		s.Equal("InvalidLearningMethod", errors.GetMeta(err)["reason"])
	})

	s.Run("zero increase", func() {
		_, err := s.orchestrator.UpdateSkill(s.ctx, &charactersvc.UpdateSkillInput{
			CharacterRef:   s.ref,
			SkillID:        "body/athletics",
			Current:        &mutation.Increase{InitialValue: 0, IncreasedPoints: 0},
			LearningMethod: sheet.LearningMethodNormal,
		})
		s.True(errors.IsInvalidArgument(err))
		s.Equal(mutation.ReasonInvalidPoints, errors.GetMeta(err)["reason"])
	})

	s.Run("unknown skill", func() {
		_, err := s.orchestrator.UpdateSkill(s.ctx, &charactersvc.UpdateSkillInput{
			CharacterRef: s.ref,
			SkillID:      "body/flying",
			Mod:          &mutation.Set[int]{InitialValue: 0, NewValue: 1},
		})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("over budget", func() {
		_, err := s.orchestrator.UpdateSkill(s.ctx, &charactersvc.UpdateSkillInput{
			CharacterRef:   s.ref,
			SkillID:        "body/athletics",
			Current:        &mutation.Increase{InitialValue: 0, IncreasedPoints: 101},
			LearningMethod: sheet.LearningMethodNormal,
		})
		s.True(errors.IsInsufficientBudget(err))
		s.Equal(0, s.load().Skills["body/athletics"].Current)
	})

	s.Len(s.records(), 1)
}

func (s *OrchestratorTestSuite) TestAttributeIncreaseSpendsAttributePoints() {
	_, err := s.orchestrator.UpdateAttribute(s.ctx, &charactersvc.UpdateAttributeInput{
		CharacterRef: s.ref,
		Attribute:    sheet.AttributeStrength,
		Current:      &mutation.Increase{InitialValue: 6, IncreasedPoints: 2},
	})
	s.Require().Error(err)
	s.True(errors.IsInsufficientBudget(err))
	s.Equal("attributePoints", errors.GetMeta(err)["budget"])

	s.grantAttributePoints(10)

	out, err := s.orchestrator.UpdateAttribute(s.ctx, &charactersvc.UpdateAttributeInput{
		CharacterRef: s.ref,
		Attribute:    sheet.AttributeStrength,
		Current:      &mutation.Increase{InitialValue: 6, IncreasedPoints: 2},
		Comment:      "training",
	})
	s.Require().NoError(err)
	s.Equal(8, out.Attribute.New.Current)
	s.Equal(2.0, out.Attribute.New.TotalCost)
	s.Require().NotNil(out.AttributePoints)
	s.Equal(sheet.Points{Available: 8, Total: 10}, out.AttributePoints.New)

	stored := s.load()
	s.Equal(out.Attribute.New, stored.Attributes[sheet.AttributeStrength])
	for name, change := range out.Derived.BaseValues {
		s.Equal(change.New, stored.BaseValues[name], name)
		s.NotEqual(change.Old, change.New, name)
	}
	for id, change := range out.Derived.CombatStats {
		s.Equal(change.New, stored.CombatStats[id], id)
	}

	s.Require().NotNil(out.HistoryRecord)
	s.Equal("training", out.HistoryRecord.Comment)
	s.Equal(string(sheet.AttributeStrength), out.HistoryRecord.Name)
}

func (s *OrchestratorTestSuite) TestAttributeValidation() {
	tests := []struct {
		name  string
		input *charactersvc.UpdateAttributeInput
	}{
		{
			name:  "nil input",
			input: nil,
		},
		{
			name:  "unknown attribute",
			input: &charactersvc.UpdateAttributeInput{CharacterRef: s.ref, Attribute: "luck", Mod: &mutation.Set[int]{NewValue: 1}},
		},
		{
			name:  "nothing to change",
			input: &charactersvc.UpdateAttributeInput{CharacterRef: s.ref, Attribute: sheet.AttributeCourage},
		},
		{
			name: "negative start",
			input: &charactersvc.UpdateAttributeInput{
				CharacterRef: s.ref,
				Attribute:    sheet.AttributeCourage,
				Start:        &mutation.Set[int]{InitialValue: 3, NewValue: -1},
			},
		},
		{
			name:  "missing character id",
			input: &charactersvc.UpdateAttributeInput{CharacterRef: charactersvc.CharacterRef{UserID: testUserID}},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			_, err := s.orchestrator.UpdateAttribute(s.ctx, tc.input)
			s.True(errors.IsInvalidArgument(err), "got %v", err)
		})
	}
}

func (s *OrchestratorTestSuite) TestAttributeModPropagates() {
	out, err := s.orchestrator.UpdateAttribute(s.ctx, &charactersvc.UpdateAttributeInput{
		CharacterRef: s.ref,
		Attribute:    sheet.AttributeDexterity,
		Mod:          &mutation.Set[int]{InitialValue: 0, NewValue: 3},
	})
	s.Require().NoError(err)
	s.Nil(out.AttributePoints)
	s.NotEmpty(out.Derived.BaseValues)

	stored := s.load()
	s.Equal(3, stored.Attributes[sheet.AttributeDexterity].Mod)
	for name, change := range out.Derived.BaseValues {
		s.Equal(change.New, stored.BaseValues[name], name)
	}
}

func (s *OrchestratorTestSuite) TestBaseValueModReachesMeleeSkillsOnly() {
	before := s.load().BaseValues[sheet.BaseValueAttack]

	out, err := s.orchestrator.UpdateBaseValue(s.ctx, &charactersvc.UpdateBaseValueInput{
		CharacterRef: s.ref,
		BaseValue:    sheet.BaseValueAttack,
		Mod:          &mutation.Set[int]{InitialValue: before.Mod, NewValue: before.Mod + 2},
	})
	s.Require().NoError(err)
	s.Equal(before.Mod+2, out.BaseValue.New.Mod)
	s.Empty(out.Derived.BaseValues)

	s.Require().Contains(out.Derived.CombatStats, "combat/daggers")
	s.NotContains(out.Derived.CombatStats, "combat/missile")
	daggers := out.Derived.CombatStats["combat/daggers"]
	s.Equal(daggers.Old.AttackValue+2, daggers.New.AttackValue)
	s.Equal(daggers.Old.ParadeValue, daggers.New.ParadeValue)

	records := s.records()
	s.Require().Len(records, 2)
	s.Equal(sheet.HistoryBaseValueChanged, records[1].Type)
	s.Nil(records[1].CalculationPoints.AdventurePoints)
}

func (s *OrchestratorTestSuite) TestCombatStatsDistribution() {
	s.raiseSkill("combat/daggers", 4, sheet.LearningMethodNormal)

	out, err := s.orchestrator.UpdateCombatStats(s.ctx, &charactersvc.UpdateCombatStatsInput{
		CharacterRef:       s.ref,
		SkillID:            "combat/daggers",
		SkilledAttackValue: &mutation.Set[int]{InitialValue: 0, NewValue: 3},
		SkilledParadeValue: &mutation.Set[int]{InitialValue: 0, NewValue: 1},
	})
	s.Require().NoError(err)
	s.Equal(0, out.CombatStats.New.AvailablePoints)
	s.Equal(out.CombatStats.Old.AttackValue+3, out.CombatStats.New.AttackValue)
	s.Equal(out.CombatStats.Old.ParadeValue+1, out.CombatStats.New.ParadeValue)

	s.Run("cannot distribute more than the skill holds", func() {
		_, err := s.orchestrator.UpdateCombatStats(s.ctx, &charactersvc.UpdateCombatStatsInput{
			CharacterRef:       s.ref,
			SkillID:            "combat/daggers",
			SkilledAttackValue: &mutation.Set[int]{InitialValue: 3, NewValue: 4},
		})
		s.True(errors.IsInsufficientBudget(err))
		s.Equal("availablePoints", errors.GetMeta(err)["budget"])
	})

	s.Run("ranged skills have no parade", func() {
		_, err := s.orchestrator.UpdateCombatStats(s.ctx, &charactersvc.UpdateCombatStatsInput{
			CharacterRef:       s.ref,
			SkillID:            "combat/missile",
			SkilledParadeValue: &mutation.Set[int]{InitialValue: 0, NewValue: 1},
		})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("non-combat skill", func() {
		_, err := s.orchestrator.UpdateCombatStats(s.ctx, &charactersvc.UpdateCombatStatsInput{
			CharacterRef:       s.ref,
			SkillID:            "body/athletics",
			SkilledAttackValue: &mutation.Set[int]{InitialValue: 0, NewValue: 1},
		})
		s.True(errors.IsInvalidArgument(err))
	})
}

func (s *OrchestratorTestSuite) TestCalculationPointsGrant() {
	out, err := s.orchestrator.UpdateCalculationPoints(s.ctx, &charactersvc.UpdateCalculationPointsInput{
		CharacterRef: s.ref,
		AdventurePoints: &charactersvc.PointsUpdate{
			Total: &mutation.FloatIncrease{InitialValue: 100, IncreasedPoints: 25.5},
		},
		Comment: "session reward",
	})
	s.Require().NoError(err)
	s.Equal(sheet.Points{Start: 100, Available: 125.5, Total: 125.5}, out.CalculationPoints.New.AdventurePoints)
	s.Require().NotNil(out.HistoryRecord)
	s.Require().NotNil(out.HistoryRecord.CalculationPoints.AdventurePoints)
	s.Nil(out.HistoryRecord.CalculationPoints.AttributePoints)

	_, err = s.orchestrator.UpdateCalculationPoints(s.ctx, &charactersvc.UpdateCalculationPointsInput{
		CharacterRef: s.ref,
		AdventurePoints: &charactersvc.PointsUpdate{
			Total: &mutation.FloatIncrease{InitialValue: 100, IncreasedPoints: -1},
		},
	})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.UpdateCalculationPoints(s.ctx, &charactersvc.UpdateCalculationPointsInput{
		CharacterRef:    s.ref,
		AdventurePoints: &charactersvc.PointsUpdate{},
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestLevelUp() {
	options, err := s.orchestrator.GetLevelUpOptions(s.ctx, &charactersvc.GetLevelUpOptionsInput{CharacterRef: s.ref})
	s.Require().NoError(err)
	s.Equal(1, options.Level)
	s.Equal(2, options.NextLevel)
	s.NotEmpty(options.OptionsHash)

	luck := s.load().BaseValues[sheet.BaseValueLuckPoints]
	input := &charactersvc.ApplyLevelUpInput{
		CharacterRef: s.ref,
		InitialLevel: 1,
		OptionsHash:  options.OptionsHash,
		Effect:       sheet.EffectLuckPlusOne,
	}
	out, err := s.orchestrator.ApplyLevelUp(s.ctx, input)
	s.Require().NoError(err)
	s.Equal(charactersvc.Change[int]{Old: 1, New: 2}, out.Level)
	s.Require().NotNil(out.BaseValue)
	s.Equal(luck, out.BaseValue.Old)
	s.Equal(luck.Current+1, out.BaseValue.New.Current)
	s.Require().NotNil(out.HistoryRecord)
	s.Equal(sheet.HistoryLevelUpApplied, out.HistoryRecord.Type)
	s.Equal(string(sheet.EffectLuckPlusOne), out.HistoryRecord.Name)

	stored := s.load()
	s.Equal(2, stored.Level)
	s.Equal(sheet.EffectLuckPlusOne, stored.LevelUpProgress.EffectsByLevel[2])

	s.Run("repeating the same level-up conflicts", func() {
		_, err := s.orchestrator.ApplyLevelUp(s.ctx, input)
		s.Require().Error(err)
		s.True(errors.IsConflict(err))
		s.Equal(2, s.load().Level)
		s.Len(s.records(), 2)
	})

	s.Run("stale options hash conflicts", func() {
		_, err := s.orchestrator.ApplyLevelUp(s.ctx, &charactersvc.ApplyLevelUpInput{
			CharacterRef: s.ref,
			InitialLevel: 2,
			OptionsHash:  options.OptionsHash,
			Effect:       sheet.EffectHPRoll,
		})
		s.True(errors.IsConflict(err))
	})

	s.Run("dice effect with a supplied roll", func() {
		next, err := s.orchestrator.GetLevelUpOptions(s.ctx, &charactersvc.GetLevelUpOptionsInput{CharacterRef: s.ref})
		s.Require().NoError(err)

		roll := 3
		out, err := s.orchestrator.ApplyLevelUp(s.ctx, &charactersvc.ApplyLevelUpInput{
			CharacterRef: s.ref,
			InitialLevel: 2,
			OptionsHash:  next.OptionsHash,
			Effect:       sheet.EffectHPRoll,
			Roll:         &roll,
		})
		s.Require().NoError(err)
		s.Equal(3, out.Roll)
		s.Equal(charactersvc.Change[int]{Old: 2, New: 3}, out.Level)
		s.Require().NotNil(out.BaseValue)
		s.Equal(out.BaseValue.Old.Current+3, out.BaseValue.New.Current)
	})
}

// failingWrites fails every UpdateFields call from the failFrom-th on,
// counting from zero
type failingWrites struct {
	characterrepo.Repository
	failFrom int
	calls    int
}

func (r *failingWrites) UpdateFields(
	ctx context.Context,
	input characterrepo.UpdateFieldsInput,
) (*characterrepo.UpdateFieldsOutput, error) {
	n := r.calls
	r.calls++
	if n >= r.failFrom {
		return nil, errors.Unavailable("redis went away")
	}
	return r.Repository.UpdateFields(ctx, input)
}

// orchestratorWith builds an orchestrator over the suite's stores with repo in
// front of the character store
func (s *OrchestratorTestSuite) orchestratorWith(repo characterrepo.Repository) *character.Orchestrator {
	clk := mockclock.NewMockClock(s.ctrl)
	clk.EXPECT().Now().Return(time.Unix(1700000000, 0)).AnyTimes()

	eng, err := engine.New(&engine.Config{Rules: rules.Default(), EventBus: events.NewBus()})
	s.Require().NoError(err)

	o, err := character.New(&character.Config{
		CharacterRepo:        repo,
		HistoryRepo:          s.history,
		Engine:               eng,
		Clock:                clk,
		CharacterIDGenerator: idgen.NewSequential("char"),
		RecordIDGenerator:    idgen.NewSequential("rec-retry"),
	})
	s.Require().NoError(err)
	return o
}

func (s *OrchestratorTestSuite) TestLevelUpIsWrittenWhole() {
	options, err := s.orchestrator.GetLevelUpOptions(s.ctx, &charactersvc.GetLevelUpOptionsInput{CharacterRef: s.ref})
	s.Require().NoError(err)

	luck := s.load().BaseValues[sheet.BaseValueLuckPoints]
	input := &charactersvc.ApplyLevelUpInput{
		CharacterRef: s.ref,
		InitialLevel: 1,
		OptionsHash:  options.OptionsHash,
		Effect:       sheet.EffectLuckPlusOne,
	}

	s.Run("a failed write stores nothing", func() {
		o := s.orchestratorWith(&failingWrites{Repository: s.characters})
		_, err := o.ApplyLevelUp(s.ctx, input)
		s.True(errors.IsUnavailable(err))

		stored := s.load()
		s.Equal(1, stored.Level)
		s.Empty(stored.LevelUpProgress.EffectsByLevel)
		s.Equal(luck, stored.BaseValues[sheet.BaseValueLuckPoints])
		s.Len(s.records(), 1)
	})

	s.Run("no second write is needed", func() {
		o := s.orchestratorWith(&failingWrites{Repository: s.characters, failFrom: 1})
		_, err := o.ApplyLevelUp(s.ctx, input)
		s.Require().NoError(err)

		stored := s.load()
		s.Equal(2, stored.Level)
		s.Equal(sheet.EffectLuckPlusOne, stored.LevelUpProgress.EffectsByLevel[2])
		s.Equal(luck.Current+1, stored.BaseValues[sheet.BaseValueLuckPoints].Current)
		s.Len(s.records(), 2)
	})
}

func (s *OrchestratorTestSuite) TestLevelUpRejectsDisallowedEffect() {
	options, err := s.orchestrator.GetLevelUpOptions(s.ctx, &charactersvc.GetLevelUpOptionsInput{CharacterRef: s.ref})
	s.Require().NoError(err)

	_, err = s.orchestrator.ApplyLevelUp(s.ctx, &charactersvc.ApplyLevelUpInput{
		CharacterRef: s.ref,
		InitialLevel: 1,
		OptionsHash:  options.OptionsHash,
		Effect:       sheet.EffectLegendaryActionPlusOne,
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Equal(1, s.load().Level)
}

func (s *OrchestratorTestSuite) TestConcurrentIncreasesDebitOnce() {
	s.raiseSkill("body/athletics", 10, sheet.LearningMethodNormal)
	before := s.load()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, points := range []int{3, 5} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.orchestrator.UpdateSkill(s.ctx, &charactersvc.UpdateSkillInput{
				CharacterRef:   s.ref,
				SkillID:        "body/athletics",
				Current:        &mutation.Increase{InitialValue: 10, IncreasedPoints: points},
				LearningMethod: sheet.LearningMethodNormal,
			})
		}()
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		s.True(errors.IsConflict(err), "got %v", err)
	}
	s.Equal(1, succeeded)

	after := s.load()
	raised := after.Skills["body/athletics"].Current - 10
	s.Contains([]int{3, 5}, raised)
	spent := before.CalculationPoints.AdventurePoints.Available - after.CalculationPoints.AdventurePoints.Available
	s.InDelta(float64(raised), spent, 1e-9)
}

func (s *OrchestratorTestSuite) TestHistoryPagingAndOwnership() {
	for i := 0; i < 3; i++ {
		s.raiseSkill("body/climbing", 1, sheet.LearningMethodNormal)
	}

	page, err := s.orchestrator.ListHistory(s.ctx, &charactersvc.ListHistoryInput{
		CharacterRef: s.ref,
		AfterNumber:  1,
		PageSize:     2,
	})
	s.Require().NoError(err)
	s.Require().Len(page.Records, 2)
	s.True(page.HasMore)
	s.Equal(int64(2), page.Records[0].Number)
	s.Equal(int64(3), page.Records[1].Number)

	_, err = s.orchestrator.ListHistory(s.ctx, &charactersvc.ListHistoryInput{
		CharacterRef: charactersvc.CharacterRef{UserID: "someone-else", CharacterID: s.ref.CharacterID},
	})
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.ListHistory(s.ctx, &charactersvc.ListHistoryInput{CharacterRef: s.ref, PageSize: -1})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestDeleteCharacterRemovesHistory() {
	s.raiseSkill("body/climbing", 1, sheet.LearningMethodNormal)

	out, err := s.orchestrator.DeleteCharacter(s.ctx, &charactersvc.DeleteCharacterInput{CharacterRef: s.ref})
	s.Require().NoError(err)
	s.Equal(int64(2), out.DeletedHistoryRecords)

	_, err = s.orchestrator.GetCharacter(s.ctx, &charactersvc.GetCharacterInput{CharacterRef: s.ref})
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.DeleteCharacter(s.ctx, &charactersvc.DeleteCharacterInput{CharacterRef: s.ref})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestUpdateMissingCharacter() {
	_, err := s.orchestrator.UpdateBaseValue(s.ctx, &charactersvc.UpdateBaseValueInput{
		CharacterRef: charactersvc.CharacterRef{UserID: testUserID, CharacterID: "missing"},
		BaseValue:    sheet.BaseValueArmorLevel,
		Mod:          &mutation.Set[int]{InitialValue: 0, NewValue: 1},
	})
	s.True(errors.IsNotFound(err))
}
