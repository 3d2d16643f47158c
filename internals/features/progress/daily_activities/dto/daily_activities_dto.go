package dto

import (
	"time"

	"quizku_backend/internals/features/progress/daily_activities/model"
)

// ============================
// Response DTO
// ============================

type DailyActivityDTO struct {
	ActivityDate       string `json:"activity_date"`
	ModuleName         string `json:"module_name"`
	QuestionsAttempted int    `json:"questions_attempted"`
	QuestionsCorrect   int    `json:"questions_correct"`
	TimeSpentMinutes   int    `json:"time_spent_minutes"`
	SectionsCompleted  int    `json:"sections_completed"`
}

type StreakDTO struct {
	CurrentStreak    int    `json:"current_streak"`
	LongestStreak    int    `json:"longest_streak"`
	LastActivityDate string `json:"last_activity_date,omitempty"`
	TotalDaysLearned int    `json:"total_days_learned"`
}

// ============================
// Converter
// ============================

func ToDailyActivityDTO(m model.UserDailyActivityModel) DailyActivityDTO {
	return DailyActivityDTO{
		ActivityDate:       time.Time(m.UserDailyActivityActivityDate).Format("2006-01-02"),
		ModuleName:         m.UserDailyActivityModuleName,
		QuestionsAttempted: m.UserDailyActivityQuestionsAttempted,
		QuestionsCorrect:   m.UserDailyActivityQuestionsCorrect,
		TimeSpentMinutes:   m.UserDailyActivityTimeSpentMinutes,
		SectionsCompleted:  m.UserDailyActivitySectionsCompleted,
	}
}

func ToStreakDTO(m model.UserStreakModel) StreakDTO {
	dto := StreakDTO{
		CurrentStreak:    m.UserStreakCurrentStreak,
		LongestStreak:    m.UserStreakLongestStreak,
		TotalDaysLearned: m.UserStreakTotalDaysLearned,
	}
	if last := time.Time(m.UserStreakLastActivityDate); !last.IsZero() {
		dto.LastActivityDate = last.Format("2006-01-02")
	}
	return dto
}
