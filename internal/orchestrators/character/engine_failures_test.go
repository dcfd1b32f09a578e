package character_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/charsheet-api/internal/engine"
	"github.com/KirkDiggler/charsheet-api/internal/engine/assembly"
	enginemock "github.com/KirkDiggler/charsheet-api/internal/engine/mock"
	"github.com/KirkDiggler/charsheet-api/internal/engine/mutation"
	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
	"github.com/KirkDiggler/charsheet-api/internal/errors"
	"github.com/KirkDiggler/charsheet-api/internal/orchestrators/character"
	mockclock "github.com/KirkDiggler/charsheet-api/internal/pkg/clock/mock"
	idgenmock "github.com/KirkDiggler/charsheet-api/internal/pkg/idgen/mock"
	characterrepo "github.com/KirkDiggler/charsheet-api/internal/repositories/character"
	characterrepomock "github.com/KirkDiggler/charsheet-api/internal/repositories/character/mock"
	historyrepo "github.com/KirkDiggler/charsheet-api/internal/repositories/history"
	historyrepomock "github.com/KirkDiggler/charsheet-api/internal/repositories/history/mock"
	"github.com/KirkDiggler/charsheet-api/internal/rules"
	charactersvc "github.com/KirkDiggler/charsheet-api/internal/services/character"
	"github.com/KirkDiggler/charsheet-api/internal/testutils"
)

type OrchestratorMockTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockEngine      *enginemock.MockEngine
	mockCharRepo    *characterrepomock.MockRepository
	mockHistoryRepo *historyrepomock.MockRepository
	mockCharIDs     *idgenmock.MockGenerator
	mockRecordIDs   *idgenmock.MockGenerator
	orchestrator    *character.Orchestrator
	ctx             context.Context
}

func TestOrchestratorMockSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorMockTestSuite))
}

func (s *OrchestratorMockTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockEngine = enginemock.NewMockEngine(s.ctrl)
	s.mockCharRepo = characterrepomock.NewMockRepository(s.ctrl)
	s.mockHistoryRepo = historyrepomock.NewMockRepository(s.ctrl)
	s.mockCharIDs = idgenmock.NewMockGenerator(s.ctrl)
	s.mockRecordIDs = idgenmock.NewMockGenerator(s.ctrl)
	s.ctx = context.Background()

	clk := mockclock.NewMockClock(s.ctrl)
	clk.EXPECT().Now().Return(time.Unix(1700000000, 0)).AnyTimes()

	var err error
	s.orchestrator, err = character.New(&character.Config{
		CharacterRepo:        s.mockCharRepo,
		HistoryRepo:          s.mockHistoryRepo,
		Engine:               s.mockEngine,
		Clock:                clk,
		CharacterIDGenerator: s.mockCharIDs,
		RecordIDGenerator:    s.mockRecordIDs,
	})
	s.Require().NoError(err)
}

func (s *OrchestratorMockTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorMockTestSuite) TestNewValidatesConfig() {
	_, err := character.New(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = character.New(&character.Config{})
	s.Require().Error(err)
	s.Contains(err.Error(), "CharacterRepo")
}

func (s *OrchestratorMockTestSuite) TestCreateCharacterAssemblyFailureStoresNothing() {
	s.mockEngine.EXPECT().
		AssembleCharacter(gomock.Any()).
		Return(nil, errors.InvalidArgument("name is required"))

	out, err := s.orchestrator.CreateCharacter(s.ctx, &charactersvc.CreateCharacterInput{UserID: testUserID})
	s.Nil(out)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorMockTestSuite) TestCreateCharacterSurvivesPublishFailure() {
	assembled := testutils.CreateTestCharacter(rules.Default(), testUserID)
	assembled.CharacterID = ""

	s.mockEngine.EXPECT().
		AssembleCharacter(&assembly.Request{UserID: testUserID, Name: "Alrik"}).
		Return(assembled, nil)
	s.mockCharIDs.EXPECT().Generate().Return("char-9")
	s.mockRecordIDs.EXPECT().Generate().Return("rec-9")

	gomock.InOrder(
		s.mockCharRepo.EXPECT().
			Create(s.ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, input characterrepo.CreateInput) (*characterrepo.CreateOutput, error) {
				s.Equal("char-9", input.Character.CharacterID)
				s.Equal(int64(1700000000), input.Character.CreatedAt)
				return &characterrepo.CreateOutput{Character: input.Character}, nil
			}),
		s.mockHistoryRepo.EXPECT().
			Append(s.ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, input historyrepo.AppendInput) (*historyrepo.AppendOutput, error) {
				s.Equal(sheet.HistoryCharacterCreated, input.Record.Type)
				s.Equal("rec-9", input.Record.ID)
				record := *input.Record
				record.Number = 1
				return &historyrepo.AppendOutput{Record: &record}, nil
			}),
		s.mockEngine.EXPECT().
			PublishCharacterEvent(s.ctx, engine.EventCharacterCreated, gomock.Any()).
			Return(errors.Unavailable("bus closed")),
	)

	out, err := s.orchestrator.CreateCharacter(s.ctx, &charactersvc.CreateCharacterInput{
		UserID: testUserID,
		Name:   "Alrik",
	})
	s.Require().NoError(err)
	s.Equal("char-9", out.Character.CharacterID)
	s.Equal(int64(1), out.HistoryRecord.Number)
}

func (s *OrchestratorMockTestSuite) TestCreateCharacterStorageFailure() {
	s.mockEngine.EXPECT().
		AssembleCharacter(gomock.Any()).
		Return(testutils.CreateTestCharacter(rules.Default(), testUserID), nil)
	s.mockCharIDs.EXPECT().Generate().Return("char-9")
	s.mockCharRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		Return(nil, errors.Internal("redis down"))

	_, err := s.orchestrator.CreateCharacter(s.ctx, &charactersvc.CreateCharacterInput{UserID: testUserID})
	s.Require().Error(err)
	s.Contains(err.Error(), "failed to store character")
}

func (s *OrchestratorMockTestSuite) TestPriceErrorStopsBeforeWriting() {
	c := testutils.CreateTestCharacter(rules.Default(), testUserID)

	s.mockEngine.EXPECT().Skill("body/athletics").Return(rules.SkillDef{ID: "body/athletics"}, true)
	s.mockCharRepo.EXPECT().
		Get(gomock.Any(), characterrepo.GetInput{UserID: testUserID, CharacterID: c.CharacterID}).
		Return(&characterrepo.GetOutput{Character: c}, nil)
	s.mockEngine.EXPECT().
		PriceIncrease(&engine.PriceIncreaseInput{
			CurrentValue:   0,
			Points:         2,
			Category:       sheet.CostCategory1,
			LearningMethod: sheet.LearningMethodNormal,
		}).
		Return(0.0, errors.Internal("cost table missing"))

	_, err := s.orchestrator.UpdateSkill(s.ctx, &charactersvc.UpdateSkillInput{
		CharacterRef:   charactersvc.CharacterRef{UserID: testUserID, CharacterID: c.CharacterID},
		SkillID:        "body/athletics",
		Current:        &mutation.Increase{InitialValue: 0, IncreasedPoints: 2},
		LearningMethod: sheet.LearningMethodNormal,
	})
	s.Require().Error(err)
	s.True(errors.IsInternal(err))
}
