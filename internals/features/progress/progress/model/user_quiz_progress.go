package model

import (
	"time"

	"github.com/google/uuid"
)

// UserQuizProgressModel is the atomic progress unit: one row per
// (user, module, section, cycle). Completion is derived from
// user_quiz_progress_answer_count > 0; the boolean flag is kept in sync but
// the count is the ground truth every aggregate query relies on.
type UserQuizProgressModel struct {
	UserQuizProgressID          uint      `gorm:"column:user_quiz_progress_id;primaryKey" json:"user_quiz_progress_id"`
	UserQuizProgressUserID      uuid.UUID `gorm:"column:user_quiz_progress_user_id;type:uuid;not null;uniqueIndex:idx_user_quiz_progress_key;index" json:"user_quiz_progress_user_id"`
	UserQuizProgressModuleName  string    `gorm:"column:user_quiz_progress_module_name;type:varchar(64);not null;uniqueIndex:idx_user_quiz_progress_key" json:"user_quiz_progress_module_name"`
	UserQuizProgressSectionKey  string    `gorm:"column:user_quiz_progress_section_key;type:varchar(64);not null;uniqueIndex:idx_user_quiz_progress_key" json:"user_quiz_progress_section_key"`
	UserQuizProgressCycleNumber int       `gorm:"column:user_quiz_progress_cycle_number;not null;default:1;uniqueIndex:idx_user_quiz_progress_key" json:"user_quiz_progress_cycle_number"`

	UserQuizProgressAnswerCount  int  `gorm:"column:user_quiz_progress_answer_count;not null;default:0" json:"user_quiz_progress_answer_count"`
	UserQuizProgressCorrectCount int  `gorm:"column:user_quiz_progress_correct_count;not null;default:0" json:"user_quiz_progress_correct_count"`
	UserQuizProgressIsCompleted  bool `gorm:"column:user_quiz_progress_is_completed;not null;default:false" json:"user_quiz_progress_is_completed"`
	UserQuizProgressIsCorrect    bool `gorm:"column:user_quiz_progress_is_correct;not null;default:false" json:"user_quiz_progress_is_correct"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserQuizProgressModel) TableName() string {
	return "user_quiz_progress"
}
