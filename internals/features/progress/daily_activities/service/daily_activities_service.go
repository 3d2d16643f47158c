package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quizku_backend/internals/features/progress/daily_activities/model"
)

type DailyActivityService struct{}

func NewDailyActivityService() *DailyActivityService { return &DailyActivityService{} }

// DateOnly truncates a timestamp to its calendar date.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDate(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

/* ---------------------------------------------------
   Daily activity: additive upsert on (user, date, module)
--------------------------------------------------- */

func (s *DailyActivityService) RecordDailyActivity(
	tx *gorm.DB,
	userID uuid.UUID,
	moduleName string,
	attempted, correct, minutes, sectionsCompleted int,
) error {
	if userID == uuid.Nil {
		return errors.New("missing user id")
	}

	now := time.Now()
	today := DateOnly(now)

	row := model.UserDailyActivityModel{
		UserDailyActivityUserID:             userID,
		UserDailyActivityActivityDate:       datatypes.Date(today),
		UserDailyActivityModuleName:         moduleName,
		UserDailyActivityQuestionsAttempted: attempted,
		UserDailyActivityQuestionsCorrect:   correct,
		UserDailyActivityTimeSpentMinutes:   minutes,
		UserDailyActivitySectionsCompleted:  sectionsCompleted,
	}

	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_daily_activity_user_id"},
			{Name: "user_daily_activity_activity_date"},
			{Name: "user_daily_activity_module_name"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"user_daily_activity_questions_attempted": gorm.Expr("user_daily_activities.user_daily_activity_questions_attempted + ?", attempted),
			"user_daily_activity_questions_correct":   gorm.Expr("user_daily_activities.user_daily_activity_questions_correct + ?", correct),
			"user_daily_activity_time_spent_minutes":  gorm.Expr("user_daily_activities.user_daily_activity_time_spent_minutes + ?", minutes),
			"user_daily_activity_sections_completed":  gorm.Expr("user_daily_activities.user_daily_activity_sections_completed + ?", sectionsCompleted),
			"updated_at":                              now,
		}),
	}).Create(&row).Error; err != nil {
		return err
	}

	return s.touchStreak(tx, userID, today)
}

/* ---------------------------------------------------
   Streak: at most one effective transition per day
--------------------------------------------------- */

func (s *DailyActivityService) touchStreak(tx *gorm.DB, userID uuid.UUID, today time.Time) error {
	// Ensure one row per user exists (idempotent).
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.UserStreakModel{UserStreakUserID: userID}).Error; err != nil {
		return err
	}

	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var streak model.UserStreakModel
	if err := q.Where("user_streak_user_id = ?", userID).
		First(&streak).Error; err != nil {
		return err
	}

	last := time.Time(streak.UserStreakLastActivityDate)
	if !last.IsZero() && sameDate(last, today) {
		// Already counted today.
		return nil
	}

	yesterday := today.AddDate(0, 0, -1)
	current := 1
	if !last.IsZero() && sameDate(last, yesterday) {
		current = streak.UserStreakCurrentStreak + 1
	}
	longest := streak.UserStreakLongestStreak
	if current > longest {
		longest = current
	}

	// The date guard keeps a concurrent same-day writer from counting twice.
	return tx.Model(&model.UserStreakModel{}).
		Where("user_streak_user_id = ?", userID).
		Where("user_streak_last_activity_date IS NULL OR user_streak_last_activity_date < ?", today).
		Updates(map[string]interface{}{
			"user_streak_current_streak":     current,
			"user_streak_longest_streak":     longest,
			"user_streak_last_activity_date": datatypes.Date(today),
			"user_streak_total_days_learned": gorm.Expr("user_streak_total_days_learned + 1"),
		}).Error
}

/* ---------------------------------------------------
   Readers
--------------------------------------------------- */

func (s *DailyActivityService) GetStreak(tx *gorm.DB, userID uuid.UUID) (*model.UserStreakModel, error) {
	var streak model.UserStreakModel
	if err := tx.Where("user_streak_user_id = ?", userID).First(&streak).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No activity yet: zero-valued state, not an error.
			return &model.UserStreakModel{UserStreakUserID: userID}, nil
		}
		return nil, err
	}
	return &streak, nil
}

func (s *DailyActivityService) GetDailyActivities(tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]model.UserDailyActivityModel, error) {
	var rows []model.UserDailyActivityModel
	q := tx.Where("user_daily_activity_user_id = ?", userID)
	if !from.IsZero() {
		q = q.Where("user_daily_activity_activity_date >= ?", DateOnly(from))
	}
	if !to.IsZero() {
		q = q.Where("user_daily_activity_activity_date <= ?", DateOnly(to))
	}
	if err := q.Order("user_daily_activity_activity_date ASC, user_daily_activity_module_name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
