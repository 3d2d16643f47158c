package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserDailyActivityModel accumulates one row per (user, date, module).
// Counters are merged additively on same-day activity.
type UserDailyActivityModel struct {
	UserDailyActivityID           uint           `gorm:"column:user_daily_activity_id;primaryKey" json:"user_daily_activity_id"`
	UserDailyActivityUserID       uuid.UUID      `gorm:"column:user_daily_activity_user_id;type:uuid;not null;uniqueIndex:idx_user_daily_activity_key;index" json:"user_daily_activity_user_id"`
	UserDailyActivityActivityDate datatypes.Date `gorm:"column:user_daily_activity_activity_date;not null;uniqueIndex:idx_user_daily_activity_key" json:"user_daily_activity_activity_date"`
	UserDailyActivityModuleName   string         `gorm:"column:user_daily_activity_module_name;type:varchar(64);not null;uniqueIndex:idx_user_daily_activity_key" json:"user_daily_activity_module_name"`

	UserDailyActivityQuestionsAttempted int `gorm:"column:user_daily_activity_questions_attempted;not null;default:0" json:"user_daily_activity_questions_attempted"`
	UserDailyActivityQuestionsCorrect   int `gorm:"column:user_daily_activity_questions_correct;not null;default:0" json:"user_daily_activity_questions_correct"`
	UserDailyActivityTimeSpentMinutes   int `gorm:"column:user_daily_activity_time_spent_minutes;not null;default:0" json:"user_daily_activity_time_spent_minutes"`
	UserDailyActivitySectionsCompleted  int `gorm:"column:user_daily_activity_sections_completed;not null;default:0" json:"user_daily_activity_sections_completed"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserDailyActivityModel) TableName() string {
	return "user_daily_activities"
}

// UserStreakModel holds one row per user. last_activity_date drives the
// once-per-day transition; re-entries on the same date never change it.
type UserStreakModel struct {
	UserStreakID               uint           `gorm:"column:user_streak_id;primaryKey" json:"user_streak_id"`
	UserStreakUserID           uuid.UUID      `gorm:"column:user_streak_user_id;type:uuid;not null;unique" json:"user_streak_user_id"`
	UserStreakCurrentStreak    int            `gorm:"column:user_streak_current_streak;not null;default:0" json:"user_streak_current_streak"`
	UserStreakLongestStreak    int            `gorm:"column:user_streak_longest_streak;not null;default:0" json:"user_streak_longest_streak"`
	UserStreakLastActivityDate datatypes.Date `gorm:"column:user_streak_last_activity_date" json:"user_streak_last_activity_date"`
	UserStreakTotalDaysLearned int            `gorm:"column:user_streak_total_days_learned;not null;default:0" json:"user_streak_total_days_learned"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserStreakModel) TableName() string {
	return "user_streaks"
}
