package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	progressModel "quizku_backend/internals/features/progress/progress/model"
	progressService "quizku_backend/internals/features/progress/progress/service"
	catalogService "quizku_backend/internals/features/quiz/catalog/service"
	"quizku_backend/internals/testutil"
)

func testCatalog(t *testing.T) *catalogService.Catalog {
	t.Helper()
	c, err := catalogService.FromKeys([]catalogService.QuestionKey{
		{ModuleName: "database", SectionKey: "q1"},
		{ModuleName: "database", SectionKey: "q2"},
		{ModuleName: "database", SectionKey: "q3"},
		{ModuleName: "network", SectionKey: "q1"},
		{ModuleName: "network", SectionKey: "q2"},
	})
	require.NoError(t, err)
	return c
}

func countRecords(t *testing.T, db *gorm.DB, userID uuid.UUID, cycle int) int64 {
	t.Helper()
	var n int64
	err := db.Model(&progressModel.UserQuizProgressModel{}).
		Where("user_quiz_progress_user_id = ?", userID).
		Where("user_quiz_progress_cycle_number = ?", cycle).
		Count(&n).Error
	require.NoError(t, err)
	return n
}

func TestStartNewCycleFreshUserOpensCycleOne(t *testing.T) {
	db := testutil.DB(t)
	svc := NewCycleService(testCatalog(t))
	userID := uuid.New()

	cycle, err := svc.StartNewCycle(db, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, cycle)
	assert.EqualValues(t, 5, countRecords(t, db, userID, 1))

	// Every seeded record starts zero-valued.
	var rows []progressModel.UserQuizProgressModel
	require.NoError(t, db.Where("user_quiz_progress_user_id = ?", userID).Find(&rows).Error)
	for _, r := range rows {
		assert.Zero(t, r.UserQuizProgressAnswerCount)
		assert.Zero(t, r.UserQuizProgressCorrectCount)
		assert.False(t, r.UserQuizProgressIsCompleted)
	}
}

func TestStartNewCycleFullCatalog(t *testing.T) {
	db := testutil.DB(t)
	catalog := catalogService.Default()
	svc := NewCycleService(catalog)
	userID := uuid.New()

	cycle, err := svc.StartNewCycle(db, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, cycle)
	assert.EqualValues(t, catalog.TotalQuestions(), countRecords(t, db, userID, 1))

	audit, err := svc.AuditCycle(db, userID, 1)
	require.NoError(t, err)
	assert.Equal(t, AuditStatusComplete, audit.Status)
}

func TestStartNewCycleAdvancesWithoutGating(t *testing.T) {
	db := testutil.DB(t)
	svc := NewCycleService(testCatalog(t))
	userID := uuid.New()

	_, err := svc.StartNewCycle(db, userID)
	require.NoError(t, err)

	// Cycle 1 is far from done; advancement is still allowed.
	_, err = svc.Progress.RecordAnswer(db, userID, "database", "q1", true, 1)
	require.NoError(t, err)

	cycle, err := svc.StartNewCycle(db, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, cycle)
	assert.EqualValues(t, 5, countRecords(t, db, userID, 2))

	current, err := svc.GetCurrentCycle(db, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, current)

	// Cycle 1 history stays intact.
	assert.EqualValues(t, 5, countRecords(t, db, userID, 1))
}

func TestStartNewCycleRequiresUser(t *testing.T) {
	db := testutil.DB(t)
	svc := NewCycleService(testCatalog(t))

	_, err := svc.StartNewCycle(db, uuid.Nil)
	assert.ErrorIs(t, err, progressService.ErrNotAuthenticated)
}

func TestReconcileCycleInsertsOnlyMissingSubset(t *testing.T) {
	db := testutil.DB(t)
	svc := NewCycleService(testCatalog(t))
	userID := uuid.New()

	_, err := svc.StartNewCycle(db, userID)
	require.NoError(t, err)

	// Answer a question, then simulate a partial failure by deleting two
	// untouched rows.
	_, err = svc.Progress.RecordAnswer(db, userID, "database", "q1", true, 1)
	require.NoError(t, err)
	require.NoError(t, db.
		Where("user_quiz_progress_user_id = ?", userID).
		Where("user_quiz_progress_module_name = ?", "network").
		Delete(&progressModel.UserQuizProgressModel{}).Error)
	assert.EqualValues(t, 3, countRecords(t, db, userID, 1))

	inserted, err := svc.ReconcileCycle(db, userID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	assert.EqualValues(t, 5, countRecords(t, db, userID, 1))

	// The answered record survived untouched.
	var rec progressModel.UserQuizProgressModel
	require.NoError(t, db.
		Where("user_quiz_progress_user_id = ?", userID).
		Where("user_quiz_progress_module_name = ?", "database").
		Where("user_quiz_progress_section_key = ?", "q1").
		First(&rec).Error)
	assert.Equal(t, 1, rec.UserQuizProgressAnswerCount)

	// A second reconcile is a no-op.
	inserted, err = svc.ReconcileCycle(db, userID, 1)
	require.NoError(t, err)
	assert.Zero(t, inserted)
}

func TestResetCycleIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	svc := NewCycleService(testCatalog(t))
	userID := uuid.New()

	_, err := svc.StartNewCycle(db, userID)
	require.NoError(t, err)

	require.NoError(t, svc.ResetCycle(db, userID, 1, ""))
	assert.EqualValues(t, 0, countRecords(t, db, userID, 1))

	// Resetting an already-empty cycle succeeds.
	require.NoError(t, svc.ResetCycle(db, userID, 1, ""))
}

func TestResetCycleModuleScope(t *testing.T) {
	db := testutil.DB(t)
	svc := NewCycleService(testCatalog(t))
	userID := uuid.New()

	_, err := svc.StartNewCycle(db, userID)
	require.NoError(t, err)

	require.NoError(t, svc.ResetCycle(db, userID, 1, "network"))
	assert.EqualValues(t, 3, countRecords(t, db, userID, 1))

	err = svc.ResetCycle(db, userID, 1, "history")
	assert.ErrorIs(t, err, progressService.ErrInvalidReference)
}

func TestAuditCycleStatuses(t *testing.T) {
	db := testutil.DB(t)
	svc := NewCycleService(testCatalog(t))
	userID := uuid.New()

	// No records at all.
	audit, err := svc.AuditCycle(db, userID, 1)
	require.NoError(t, err)
	assert.Equal(t, AuditStatusUntouched, audit.Status)
	assert.Len(t, audit.MissingKeys, 5)

	// Freshly seeded cycle is structurally complete even with no answers.
	_, err = svc.StartNewCycle(db, userID)
	require.NoError(t, err)
	audit, err = svc.AuditCycle(db, userID, 1)
	require.NoError(t, err)
	assert.Equal(t, AuditStatusComplete, audit.Status)
	assert.Equal(t, 5, audit.DistinctKeys)
	assert.Empty(t, audit.MissingKeys)

	// Losing rows breaks it.
	require.NoError(t, db.
		Where("user_quiz_progress_user_id = ?", userID).
		Where("user_quiz_progress_section_key = ?", "q2").
		Delete(&progressModel.UserQuizProgressModel{}).Error)
	audit, err = svc.AuditCycle(db, userID, 1)
	require.NoError(t, err)
	assert.Equal(t, AuditStatusIncomplete, audit.Status)
	assert.ElementsMatch(t, []string{"database/q2", "network/q2"}, audit.MissingKeys)
}

func TestAuditCycleFlagsExtraKeys(t *testing.T) {
	db := testutil.DB(t)
	svc := NewCycleService(testCatalog(t))
	userID := uuid.New()

	_, err := svc.StartNewCycle(db, userID)
	require.NoError(t, err)

	// A row outside the catalog, as an out-of-band writer would leave it.
	require.NoError(t, db.Create(&progressModel.UserQuizProgressModel{
		UserQuizProgressUserID:      userID,
		UserQuizProgressModuleName:  "legacy",
		UserQuizProgressSectionKey:  "q9",
		UserQuizProgressCycleNumber: 1,
	}).Error)

	audit, err := svc.AuditCycle(db, userID, 1)
	require.NoError(t, err)
	assert.Equal(t, AuditStatusIncomplete, audit.Status)
	assert.Equal(t, []string{"legacy/q9"}, audit.ExtraKeys)
}

func TestAuditAllCyclesReportsOnlyViolations(t *testing.T) {
	db := testutil.DB(t)
	svc := NewCycleService(testCatalog(t))
	healthy, broken := uuid.New(), uuid.New()

	_, err := svc.StartNewCycle(db, healthy)
	require.NoError(t, err)
	_, err = svc.StartNewCycle(db, broken)
	require.NoError(t, err)
	require.NoError(t, db.
		Where("user_quiz_progress_user_id = ?", broken).
		Where("user_quiz_progress_module_name = ?", "database").
		Delete(&progressModel.UserQuizProgressModel{}).Error)

	violations, err := svc.AuditAllCycles(db)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, broken, violations[0].UserID)
	assert.Equal(t, AuditStatusIncomplete, violations[0].Status)
}
