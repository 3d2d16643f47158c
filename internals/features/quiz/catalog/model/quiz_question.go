package model

import (
	"time"
)

type QuizQuestionModel struct {
	QuizQuestionID         uint      `gorm:"column:quiz_question_id;primaryKey" json:"quiz_question_id"`
	QuizQuestionModuleName string    `gorm:"column:quiz_question_module_name;type:varchar(64);not null;uniqueIndex:idx_quiz_question_module_section" json:"quiz_question_module_name"`
	QuizQuestionSectionKey string    `gorm:"column:quiz_question_section_key;type:varchar(64);not null;uniqueIndex:idx_quiz_question_module_section" json:"quiz_question_section_key"`
	QuizQuestionOrder      int       `gorm:"column:quiz_question_order;not null;default:0" json:"quiz_question_order"`
	QuizQuestionCreatedAt  time.Time `gorm:"column:quiz_question_created_at;autoCreateTime" json:"quiz_question_created_at"`
}

func (QuizQuestionModel) TableName() string {
	return "quiz_questions"
}
