package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogService "quizku_backend/internals/features/quiz/catalog/service"
	"quizku_backend/internals/testutil"
)

// smallCatalog mirrors the production layout at a size tests can reason
// about: two modules sharing the section key "0-0-0".
func smallCatalog(t *testing.T) *catalogService.Catalog {
	t.Helper()
	c, err := catalogService.FromKeys([]catalogService.QuestionKey{
		{ModuleName: "network", SectionKey: "0-0-0"},
		{ModuleName: "network", SectionKey: "0-0-1"},
		{ModuleName: "network", SectionKey: "0-0-2"},
		{ModuleName: "security", SectionKey: "0-0-0"},
		{ModuleName: "security", SectionKey: "0-0-1"},
	})
	require.NoError(t, err)
	return c
}

func TestGetCurrentCycleFreshUser(t *testing.T) {
	db := testutil.DB(t)
	svc := NewProgressService(smallCatalog(t))

	cycle, err := svc.GetCurrentCycle(db, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 1, cycle)
}

func TestGetCurrentCycleRequiresUser(t *testing.T) {
	db := testutil.DB(t)
	svc := NewProgressService(smallCatalog(t))

	_, err := svc.GetCurrentCycle(db, uuid.Nil)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestRecordAnswerValidation(t *testing.T) {
	db := testutil.DB(t)
	svc := NewProgressService(smallCatalog(t))
	userID := uuid.New()

	_, err := svc.RecordAnswer(db, uuid.Nil, "network", "0-0-0", true, 1)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = svc.RecordAnswer(db, userID, "", "0-0-0", true, 1)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.RecordAnswer(db, userID, "network", "  ", true, 1)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.RecordAnswer(db, userID, "history", "0-0-0", true, 1)
	assert.ErrorIs(t, err, ErrInvalidReference)

	_, err = svc.RecordAnswer(db, userID, "network", "9-9-9", true, 1)
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestRecordAnswerRepeatedAttempts(t *testing.T) {
	db := testutil.DB(t)
	svc := NewProgressService(smallCatalog(t))
	userID := uuid.New()

	// Wrong first, right second: one record, both attempts counted, the
	// correctness flag follows the latest attempt.
	rec, err := svc.RecordAnswer(db, userID, "network", "0-0-0", false, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.UserQuizProgressAnswerCount)
	assert.Equal(t, 0, rec.UserQuizProgressCorrectCount)
	assert.True(t, rec.UserQuizProgressIsCompleted)
	assert.False(t, rec.UserQuizProgressIsCorrect)

	rec, err = svc.RecordAnswer(db, userID, "network", "0-0-0", true, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.UserQuizProgressAnswerCount)
	assert.Equal(t, 1, rec.UserQuizProgressCorrectCount)
	assert.True(t, rec.UserQuizProgressIsCorrect)

	rows, err := svc.ListProgress(db, userID, 1, "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.LessOrEqual(t, rows[0].UserQuizProgressCorrectCount, rows[0].UserQuizProgressAnswerCount)
}

func TestRecordAnswerAnotherWrongAttemptKeepsFlagsHonest(t *testing.T) {
	db := testutil.DB(t)
	svc := NewProgressService(smallCatalog(t))
	userID := uuid.New()

	_, err := svc.RecordAnswer(db, userID, "network", "0-0-0", true, 1)
	require.NoError(t, err)
	rec, err := svc.RecordAnswer(db, userID, "network", "0-0-0", false, 1)
	require.NoError(t, err)

	// Latest attempt wins the flag, counters never decrease.
	assert.Equal(t, 2, rec.UserQuizProgressAnswerCount)
	assert.Equal(t, 1, rec.UserQuizProgressCorrectCount)
	assert.False(t, rec.UserQuizProgressIsCorrect)
	assert.True(t, rec.UserQuizProgressIsCompleted)
}

func TestGetStatsFreshCycle(t *testing.T) {
	db := testutil.DB(t)
	svc := NewProgressService(smallCatalog(t))

	stats, err := svc.GetStats(db, uuid.New(), 1)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalQuestions)
	assert.Equal(t, 0, stats.CompletedQuestions)
	assert.Equal(t, 0, stats.CorrectRate)
	assert.Equal(t, ModuleStat{Total: 3}, stats.ModuleStats["network"])
	assert.Equal(t, ModuleStat{Total: 2}, stats.ModuleStats["security"])
}

func TestGetStatsCountsSharedSectionKeysPerModule(t *testing.T) {
	db := testutil.DB(t)
	svc := NewProgressService(smallCatalog(t))
	userID := uuid.New()

	// "0-0-0" exists in both modules; answering both must count twice.
	_, err := svc.RecordAnswer(db, userID, "network", "0-0-0", true, 1)
	require.NoError(t, err)
	_, err = svc.RecordAnswer(db, userID, "security", "0-0-0", true, 1)
	require.NoError(t, err)

	stats, err := svc.GetStats(db, userID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.CompletedQuestions)
	assert.Equal(t, 1, stats.ModuleStats["network"].Completed)
	assert.Equal(t, 1, stats.ModuleStats["security"].Completed)
	assert.Equal(t, 100, stats.CorrectRate)
}

func TestGetStatsCorrectRateRounding(t *testing.T) {
	db := testutil.DB(t)
	svc := NewProgressService(smallCatalog(t))
	userID := uuid.New()

	// 1 correct out of 3 attempts on one question: 33.33 -> 33.
	_, err := svc.RecordAnswer(db, userID, "network", "0-0-1", false, 1)
	require.NoError(t, err)
	_, err = svc.RecordAnswer(db, userID, "network", "0-0-1", false, 1)
	require.NoError(t, err)
	_, err = svc.RecordAnswer(db, userID, "network", "0-0-1", true, 1)
	require.NoError(t, err)

	stats, err := svc.GetStats(db, userID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CompletedQuestions)
	assert.Equal(t, 33, stats.CorrectRate)

	// One more correct answer elsewhere: 2/4 -> 50.
	_, err = svc.RecordAnswer(db, userID, "security", "0-0-1", true, 1)
	require.NoError(t, err)
	stats, err = svc.GetStats(db, userID, 1)
	require.NoError(t, err)
	assert.Equal(t, 50, stats.CorrectRate)
}

func TestGetStatsRejectsBadCycle(t *testing.T) {
	db := testutil.DB(t)
	svc := NewProgressService(smallCatalog(t))

	_, err := svc.GetStats(db, uuid.New(), 0)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.GetStats(db, uuid.Nil, 1)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestListProgressModuleFilter(t *testing.T) {
	db := testutil.DB(t)
	svc := NewProgressService(smallCatalog(t))
	userID := uuid.New()

	_, err := svc.RecordAnswer(db, userID, "network", "0-0-0", true, 1)
	require.NoError(t, err)
	_, err = svc.RecordAnswer(db, userID, "security", "0-0-0", true, 1)
	require.NoError(t, err)

	rows, err := svc.ListProgress(db, userID, 1, "network")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "network", rows[0].UserQuizProgressModuleName)

	_, err = svc.ListProgress(db, userID, 1, "history")
	assert.ErrorIs(t, err, ErrInvalidReference)

	all, err := svc.ListProgress(db, userID, 1, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRecordAnswerIsolatedPerUser(t *testing.T) {
	db := testutil.DB(t)
	svc := NewProgressService(smallCatalog(t))
	alice, bob := uuid.New(), uuid.New()

	_, err := svc.RecordAnswer(db, alice, "network", "0-0-0", true, 1)
	require.NoError(t, err)

	stats, err := svc.GetStats(db, bob, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.CompletedQuestions)
}
