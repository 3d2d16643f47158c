package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"quizku_backend/internals/features/progress/daily_activities/model"
	"quizku_backend/internals/testutil"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRecordDailyActivityMergesSameDay(t *testing.T) {
	db := testutil.DB(t)
	svc := NewDailyActivityService()
	userID := uuid.New()

	require.NoError(t, svc.RecordDailyActivity(db, userID, "database", 1, 1, 3, 1))
	require.NoError(t, svc.RecordDailyActivity(db, userID, "database", 2, 0, 5, 0))

	rows, err := svc.GetDailyActivities(db, userID, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].UserDailyActivityQuestionsAttempted)
	assert.Equal(t, 1, rows[0].UserDailyActivityQuestionsCorrect)
	assert.Equal(t, 8, rows[0].UserDailyActivityTimeSpentMinutes)
	assert.Equal(t, 1, rows[0].UserDailyActivitySectionsCompleted)
}

func TestRecordDailyActivitySplitsByModule(t *testing.T) {
	db := testutil.DB(t)
	svc := NewDailyActivityService()
	userID := uuid.New()

	require.NoError(t, svc.RecordDailyActivity(db, userID, "database", 1, 1, 1, 1))
	require.NoError(t, svc.RecordDailyActivity(db, userID, "network", 1, 0, 1, 1))

	rows, err := svc.GetDailyActivities(db, userID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestStreakSameDayIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	svc := NewDailyActivityService()
	userID := uuid.New()

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.RecordDailyActivity(db, userID, "database", 1, 1, 1, 0))
	}

	streak, err := svc.GetStreak(db, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, streak.UserStreakCurrentStreak)
	assert.Equal(t, 1, streak.UserStreakLongestStreak)
	assert.Equal(t, 1, streak.UserStreakTotalDaysLearned)
}

func TestStreakConsecutiveDays(t *testing.T) {
	db := testutil.DB(t)
	svc := NewDailyActivityService()
	userID := uuid.New()

	require.NoError(t, svc.touchStreak(db, userID, day("2026-03-01")))
	require.NoError(t, svc.touchStreak(db, userID, day("2026-03-02")))
	require.NoError(t, svc.touchStreak(db, userID, day("2026-03-03")))

	streak, err := svc.GetStreak(db, userID)
	require.NoError(t, err)
	assert.Equal(t, 3, streak.UserStreakCurrentStreak)
	assert.Equal(t, 3, streak.UserStreakLongestStreak)
	assert.Equal(t, 3, streak.UserStreakTotalDaysLearned)
}

func TestStreakGapResetsCurrentKeepsLongest(t *testing.T) {
	db := testutil.DB(t)
	svc := NewDailyActivityService()
	userID := uuid.New()

	require.NoError(t, svc.touchStreak(db, userID, day("2026-03-01")))
	require.NoError(t, svc.touchStreak(db, userID, day("2026-03-02")))
	require.NoError(t, svc.touchStreak(db, userID, day("2026-03-03")))
	// Two days off.
	require.NoError(t, svc.touchStreak(db, userID, day("2026-03-06")))

	streak, err := svc.GetStreak(db, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, streak.UserStreakCurrentStreak)
	assert.Equal(t, 3, streak.UserStreakLongestStreak)
	assert.Equal(t, 4, streak.UserStreakTotalDaysLearned)

	// Build past the old record.
	require.NoError(t, svc.touchStreak(db, userID, day("2026-03-07")))
	require.NoError(t, svc.touchStreak(db, userID, day("2026-03-08")))
	require.NoError(t, svc.touchStreak(db, userID, day("2026-03-09")))
	require.NoError(t, svc.touchStreak(db, userID, day("2026-03-10")))

	streak, err = svc.GetStreak(db, userID)
	require.NoError(t, err)
	assert.Equal(t, 5, streak.UserStreakCurrentStreak)
	assert.Equal(t, 5, streak.UserStreakLongestStreak)
	assert.Equal(t, 8, streak.UserStreakTotalDaysLearned)
}

func TestStreakRepeatedSameDateTouchIsNoOp(t *testing.T) {
	db := testutil.DB(t)
	svc := NewDailyActivityService()
	userID := uuid.New()

	require.NoError(t, svc.touchStreak(db, userID, day("2026-03-01")))
	require.NoError(t, svc.touchStreak(db, userID, day("2026-03-02")))
	require.NoError(t, svc.touchStreak(db, userID, day("2026-03-02")))
	require.NoError(t, svc.touchStreak(db, userID, day("2026-03-02")))

	streak, err := svc.GetStreak(db, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, streak.UserStreakCurrentStreak)
	assert.Equal(t, 2, streak.UserStreakTotalDaysLearned)
}

func TestGetStreakUnknownUserIsZeroValued(t *testing.T) {
	db := testutil.DB(t)
	svc := NewDailyActivityService()
	userID := uuid.New()

	streak, err := svc.GetStreak(db, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, streak.UserStreakUserID)
	assert.Zero(t, streak.UserStreakCurrentStreak)
	assert.Zero(t, streak.UserStreakLongestStreak)
	assert.Zero(t, streak.UserStreakTotalDaysLearned)
	assert.True(t, time.Time(streak.UserStreakLastActivityDate).IsZero())
}

func TestGetDailyActivitiesDateRange(t *testing.T) {
	db := testutil.DB(t)
	svc := NewDailyActivityService()
	userID := uuid.New()

	// Backdated rows inserted directly; RecordDailyActivity always writes
	// "today".
	for _, d := range []string{"2026-03-01", "2026-03-02", "2026-03-05"} {
		require.NoError(t, db.Create(&model.UserDailyActivityModel{
			UserDailyActivityUserID:             userID,
			UserDailyActivityActivityDate:       datatypes.Date(day(d)),
			UserDailyActivityModuleName:         "database",
			UserDailyActivityQuestionsAttempted: 1,
		}).Error)
	}

	rows, err := svc.GetDailyActivities(db, userID, day("2026-03-02"), day("2026-03-05"))
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = svc.GetDailyActivities(db, userID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
