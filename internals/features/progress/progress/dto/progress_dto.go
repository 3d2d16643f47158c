package dto

import (
	"time"

	"quizku_backend/internals/features/progress/progress/model"
	"quizku_backend/internals/features/progress/progress/service"
)

// ============================
// Request DTO
// ============================

type RecordAnswerRequest struct {
	ModuleName       string `json:"module_name" validate:"required,max=64"`
	SectionKey       string `json:"section_key" validate:"required,max=64"`
	IsCorrect        bool   `json:"is_correct"`
	TimeSpentMinutes int    `json:"time_spent_minutes" validate:"gte=0,lte=1440"`
}

// ============================
// Response DTO
// ============================

type ProgressDTO struct {
	ModuleName   string    `json:"module_name"`
	SectionKey   string    `json:"section_key"`
	CycleNumber  int       `json:"cycle_number"`
	AnswerCount  int       `json:"answer_count"`
	CorrectCount int       `json:"correct_count"`
	IsCompleted  bool      `json:"is_completed"`
	IsCorrect    bool      `json:"is_correct"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CycleStatsDTO struct {
	CycleNumber        int                           `json:"cycle_number"`
	TotalQuestions     int                           `json:"total_questions"`
	CompletedQuestions int                           `json:"completed_questions"`
	CorrectRate        int                           `json:"correct_rate"`
	ModuleStats        map[string]service.ModuleStat `json:"module_stats"`
}

// ============================
// Converter
// ============================

func ToProgressDTO(m model.UserQuizProgressModel) ProgressDTO {
	return ProgressDTO{
		ModuleName:   m.UserQuizProgressModuleName,
		SectionKey:   m.UserQuizProgressSectionKey,
		CycleNumber:  m.UserQuizProgressCycleNumber,
		AnswerCount:  m.UserQuizProgressAnswerCount,
		CorrectCount: m.UserQuizProgressCorrectCount,
		IsCompleted:  m.UserQuizProgressIsCompleted,
		IsCorrect:    m.UserQuizProgressIsCorrect,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToCycleStatsDTO(s service.CycleStats) CycleStatsDTO {
	return CycleStatsDTO{
		CycleNumber:        s.CycleNumber,
		TotalQuestions:     s.TotalQuestions,
		CompletedQuestions: s.CompletedQuestions,
		CorrectRate:        s.CorrectRate,
		ModuleStats:        s.ModuleStats,
	}
}
