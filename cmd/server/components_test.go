package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/charsheet-api/internal/config"
	"github.com/KirkDiggler/charsheet-api/internal/engine/mutation"
	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
	"github.com/KirkDiggler/charsheet-api/internal/services/character"
	"github.com/KirkDiggler/charsheet-api/internal/testutils"
)

type ComponentsTestSuite struct {
	suite.Suite
	mr  *miniredis.Miniredis
	cfg *config.Config
	ctx context.Context
}

func TestComponentsSuite(t *testing.T) {
	suite.Run(t, new(ComponentsTestSuite))
}

func (s *ComponentsTestSuite) SetupTest() {
	s.mr = miniredis.RunT(s.T())
	s.ctx = context.Background()
	s.cfg = &config.Config{
		Port:            50051,
		ShutdownTimeout: time.Second,
		Redis:           config.RedisConfig{Addrs: []string{s.mr.Addr()}},
		History:         config.HistoryConfig{Backend: config.HistoryBackendRedis},
		Log:             config.LogConfig{Level: "INFO", Format: "text"},
	}
}

func (s *ComponentsTestSuite) createAndRaise(svc character.Service) *character.ListHistoryOutput {
	req := testutils.CreateTestRequest("user-1")
	created, err := svc.CreateCharacter(s.ctx, &character.CreateCharacterInput{
		UserID:        req.UserID,
		Name:          req.Name,
		Attributes:    req.Attributes,
		Profession:    req.Profession,
		Hobby:         req.Hobby,
		Advantages:    req.Advantages,
		Disadvantages: req.Disadvantages,
		BonusSkills:   req.BonusSkills,
		FreeSkills:    req.FreeSkills,
	})
	s.Require().NoError(err)

	ref := character.CharacterRef{UserID: "user-1", CharacterID: created.Character.CharacterID}
	athletics := created.Character.Skills["body/athletics"]
	_, err = svc.UpdateSkill(s.ctx, &character.UpdateSkillInput{
		CharacterRef:   ref,
		SkillID:        "body/athletics",
		Current:        &mutation.Increase{InitialValue: athletics.Current, IncreasedPoints: 1},
		LearningMethod: sheet.LearningMethodNormal,
	})
	s.Require().NoError(err)

	history, err := svc.ListHistory(s.ctx, &character.ListHistoryInput{CharacterRef: ref})
	s.Require().NoError(err)
	return history
}

func (s *ComponentsTestSuite) TestRedisHistory() {
	comps, err := buildComponents(s.ctx, s.cfg)
	s.Require().NoError(err)
	defer func() { s.NoError(comps.Close()) }()

	history := s.createAndRaise(comps.service)
	s.Require().Len(history.Records, 2)
	s.Equal(sheet.HistoryCharacterCreated, history.Records[0].Type)
	s.Equal(sheet.HistorySkillChanged, history.Records[1].Type)
}

func (s *ComponentsTestSuite) TestSQLiteHistory() {
	s.cfg.History = config.HistoryConfig{
		Backend:    config.HistoryBackendSQLite,
		SQLitePath: filepath.Join(s.T().TempDir(), "history.db"),
	}

	comps, err := buildComponents(s.ctx, s.cfg)
	s.Require().NoError(err)

	history := s.createAndRaise(comps.service)
	s.Len(history.Records, 2)
	s.Require().NoError(comps.Close())

	_, err = os.Stat(s.cfg.History.SQLitePath)
	s.NoError(err)
}

func (s *ComponentsTestSuite) TestCostTableOverride() {
	path := filepath.Join(s.T().TempDir(), "costs.yaml")
	s.Require().NoError(os.WriteFile(path, []byte("activation_fee: 40\n"), 0o600))

	r, err := loadRules(path)
	s.Require().NoError(err)
	s.InDelta(40, r.Costs().ActivationFee, 0.001)

	_, err = loadRules(filepath.Join(s.T().TempDir(), "missing.yaml"))
	s.Error(err)
}

func (s *ComponentsTestSuite) TestRedisUnavailable() {
	s.cfg.Redis.Addrs = []string{"127.0.0.1:1"}

	_, err := buildComponents(s.ctx, s.cfg)
	s.Error(err)
}
