package history_test

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
	"github.com/KirkDiggler/charsheet-api/internal/errors"
	"github.com/KirkDiggler/charsheet-api/internal/repositories/history"
	"github.com/KirkDiggler/charsheet-api/internal/testutils"
)

const (
	testUserID      = "user_456"
	testCharacterID = "char-test-001"
)

// storeSuite runs the same behavior checks against every history store
type storeSuite struct {
	suite.Suite
	repo history.Repository
	ctx  context.Context
}

func (s *storeSuite) record(id string, recordType sheet.HistoryRecordType) *sheet.HistoryRecord {
	return &sheet.HistoryRecord{
		Type:      recordType,
		Name:      "courage",
		ID:        id,
		Timestamp: 1700000000,
		Data: sheet.Change{
			Old: json.RawMessage(`{"current":3}`),
			New: json.RawMessage(`{"current":4}`),
		},
		CalculationPoints: sheet.PointsChanges{
			AttributePoints: &sheet.PointsChange{
				Old: sheet.Points{Start: 40, Available: 0, Total: 40},
				New: sheet.Points{Start: 40, Available: 0, Total: 40},
			},
		},
		LearningMethod: sheet.LearningMethodNormal,
		Comment:        "trained all winter",
	}
}

func (s *storeSuite) appendRecords(ids ...string) {
	for _, id := range ids {
		_, err := s.repo.Append(s.ctx, history.AppendInput{
			UserID:      testUserID,
			CharacterID: testCharacterID,
			Record:      s.record(id, sheet.HistoryAttributeChanged),
		})
		s.Require().NoError(err)
	}
}

func (s *storeSuite) TestConcurrentAppends() {
	const perCharacter = 10
	characters := []string{testCharacterID, "char-test-002"}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers = map[string][]int64{}
		errs    []error
	)
	for _, characterID := range characters {
		for i := 0; i < perCharacter; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				out, err := s.repo.Append(s.ctx, history.AppendInput{
					UserID:      testUserID,
					CharacterID: characterID,
					Record:      s.record(fmt.Sprintf("%s-rec-%d", characterID, i), sheet.HistoryAttributeChanged),
				})
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					errs = append(errs, err)
					return
				}
				numbers[characterID] = append(numbers[characterID], out.Record.Number)
			}()
		}
	}
	wg.Wait()

	s.Require().Empty(errs)
	for _, characterID := range characters {
		got := numbers[characterID]
		slices.Sort(got)
		s.Equal([]int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, got, characterID)
	}
}

func (s *storeSuite) TestAppendNumbersFromOne() {
	out, err := s.repo.Append(s.ctx, history.AppendInput{
		UserID:      testUserID,
		CharacterID: testCharacterID,
		Record:      s.record("rec-1", sheet.HistoryCharacterCreated),
	})
	s.Require().NoError(err)
	s.Equal(int64(1), out.Record.Number)

	out, err = s.repo.Append(s.ctx, history.AppendInput{
		UserID:      testUserID,
		CharacterID: testCharacterID,
		Record:      s.record("rec-2", sheet.HistoryAttributeChanged),
	})
	s.Require().NoError(err)
	s.Equal(int64(2), out.Record.Number)

	// numbering is per character
	out, err = s.repo.Append(s.ctx, history.AppendInput{
		UserID:      testUserID,
		CharacterID: "char-test-002",
		Record:      s.record("rec-3", sheet.HistoryCharacterCreated),
	})
	s.Require().NoError(err)
	s.Equal(int64(1), out.Record.Number)
}

func (s *storeSuite) TestAppendDoesNotMutateInput() {
	rec := s.record("rec-1", sheet.HistoryCharacterCreated)
	_, err := s.repo.Append(s.ctx, history.AppendInput{UserID: testUserID, CharacterID: testCharacterID, Record: rec})
	s.Require().NoError(err)
	s.Zero(rec.Number)
}

func (s *storeSuite) TestAppendValidation() {
	testCases := []struct {
		name  string
		input history.AppendInput
	}{
		{name: "missing user", input: history.AppendInput{CharacterID: testCharacterID, Record: s.record("a", sheet.HistorySkillChanged)}},
		{name: "missing character", input: history.AppendInput{UserID: testUserID, Record: s.record("a", sheet.HistorySkillChanged)}},
		{name: "missing record", input: history.AppendInput{UserID: testUserID, CharacterID: testCharacterID}},
		{name: "missing type", input: history.AppendInput{UserID: testUserID, CharacterID: testCharacterID, Record: s.record("a", "")}},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Append(s.ctx, tc.input)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *storeSuite) TestListRoundTrip() {
	s.appendRecords("rec-1")

	out, err := s.repo.List(s.ctx, history.ListInput{UserID: testUserID, CharacterID: testCharacterID})
	s.Require().NoError(err)
	s.Require().Len(out.Records, 1)
	s.False(out.HasMore)

	got := out.Records[0]
	s.Equal(int64(1), got.Number)
	s.Equal("rec-1", got.ID)
	s.Equal(sheet.HistoryAttributeChanged, got.Type)
	s.Equal("courage", got.Name)
	s.Equal(int64(1700000000), got.Timestamp)
	s.JSONEq(`{"current":3}`, string(got.Data.Old))
	s.JSONEq(`{"current":4}`, string(got.Data.New))
	s.Require().NotNil(got.CalculationPoints.AttributePoints)
	s.Nil(got.CalculationPoints.AdventurePoints)
	s.Equal(40.0, got.CalculationPoints.AttributePoints.New.Total)
	s.Equal(sheet.LearningMethodNormal, got.LearningMethod)
	s.Equal("trained all winter", got.Comment)
}

func (s *storeSuite) TestListPaging() {
	s.appendRecords("rec-1", "rec-2", "rec-3", "rec-4", "rec-5")

	page, err := s.repo.List(s.ctx, history.ListInput{UserID: testUserID, CharacterID: testCharacterID, Limit: 2})
	s.Require().NoError(err)
	s.True(page.HasMore)
	s.Require().Len(page.Records, 2)
	s.Equal("rec-1", page.Records[0].ID)
	s.Equal("rec-2", page.Records[1].ID)

	page, err = s.repo.List(s.ctx, history.ListInput{UserID: testUserID, CharacterID: testCharacterID, AfterNumber: 2, Limit: 2})
	s.Require().NoError(err)
	s.True(page.HasMore)
	s.Equal(int64(3), page.Records[0].Number)

	page, err = s.repo.List(s.ctx, history.ListInput{UserID: testUserID, CharacterID: testCharacterID, AfterNumber: 4, Limit: 2})
	s.Require().NoError(err)
	s.False(page.HasMore)
	s.Require().Len(page.Records, 1)
	s.Equal("rec-5", page.Records[0].ID)
}

func (s *storeSuite) TestListEmpty() {
	out, err := s.repo.List(s.ctx, history.ListInput{UserID: testUserID, CharacterID: "nobody"})
	s.Require().NoError(err)
	s.Empty(out.Records)
	s.False(out.HasMore)

	_, err = s.repo.List(s.ctx, history.ListInput{UserID: testUserID})
	s.True(errors.IsInvalidArgument(err))
}

func (s *storeSuite) TestDeleteAllRestartsNumbering() {
	s.appendRecords("rec-1", "rec-2")

	out, err := s.repo.DeleteAll(s.ctx, history.DeleteAllInput{UserID: testUserID, CharacterID: testCharacterID})
	s.Require().NoError(err)
	s.Equal(int64(2), out.Deleted)

	list, err := s.repo.List(s.ctx, history.ListInput{UserID: testUserID, CharacterID: testCharacterID})
	s.Require().NoError(err)
	s.Empty(list.Records)

	appended, err := s.repo.Append(s.ctx, history.AppendInput{
		UserID:      testUserID,
		CharacterID: testCharacterID,
		Record:      s.record("rec-9", sheet.HistoryCharacterCreated),
	})
	s.Require().NoError(err)
	s.Equal(int64(1), appended.Record.Number)
}

type RedisHistoryTestSuite struct {
	storeSuite
	mr      *miniredis.Miniredis
	cleanup func()
}

func TestRedisHistorySuite(t *testing.T) {
	suite.Run(t, new(RedisHistoryTestSuite))
}

func (s *RedisHistoryTestSuite) SetupTest() {
	client, mr, cleanup := testutils.CreateTestRedis(s.T())
	s.mr = mr
	s.cleanup = cleanup

	repo, err := history.NewRedis(&history.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisHistoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisHistoryTestSuite) TestNewRedisRequiresClient() {
	_, err := history.NewRedis(nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisHistoryTestSuite) TestKeys() {
	s.appendRecords("rec-1")

	key := "charsheet_history:" + testUserID + ":" + testCharacterID
	s.True(s.mr.Exists(key))
	seq, err := s.mr.Get(key + ":seq")
	s.Require().NoError(err)
	s.Equal("1", seq)
}

type SQLiteHistoryTestSuite struct {
	storeSuite
	store *history.SQLiteStore
	path  string
}

func TestSQLiteHistorySuite(t *testing.T) {
	suite.Run(t, new(SQLiteHistoryTestSuite))
}

func (s *SQLiteHistoryTestSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "history.db")
	store, err := history.OpenSQLite(s.path)
	s.Require().NoError(err)
	s.store = store
	s.repo = store
	s.ctx = context.Background()
}

func (s *SQLiteHistoryTestSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func (s *SQLiteHistoryTestSuite) TestOpenRequiresPath() {
	_, err := history.OpenSQLite("  ")
	s.True(errors.IsInvalidArgument(err))
}

func (s *SQLiteHistoryTestSuite) TestReopenKeepsRecords() {
	s.appendRecords("rec-1", "rec-2")
	s.Require().NoError(s.store.Close())

	// migrations are applied once; reopening must not fail on existing tables
	store, err := history.OpenSQLite(s.path)
	s.Require().NoError(err)
	s.store = store

	out, err := store.List(s.ctx, history.ListInput{UserID: testUserID, CharacterID: testCharacterID})
	s.Require().NoError(err)
	s.Len(out.Records, 2)
}
