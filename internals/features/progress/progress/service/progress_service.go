package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dailyService "quizku_backend/internals/features/progress/daily_activities/service"
	"quizku_backend/internals/features/progress/progress/model"
	catalogService "quizku_backend/internals/features/quiz/catalog/service"
)

// ProgressService is the single writer of user_quiz_progress. All mutation
// goes through RecordAnswer; nothing else touches the table directly.
type ProgressService struct {
	Catalog *catalogService.Catalog
	Daily   *dailyService.DailyActivityService
}

func NewProgressService(catalog *catalogService.Catalog) *ProgressService {
	return &ProgressService{
		Catalog: catalog,
		Daily:   dailyService.NewDailyActivityService(),
	}
}

/* ---------------------------------------------------
   Current cycle
--------------------------------------------------- */

// GetCurrentCycle returns the highest cycle number the user has records in,
// or 1 for a fresh user.
func (s *ProgressService) GetCurrentCycle(db *gorm.DB, userID uuid.UUID) (int, error) {
	if userID == uuid.Nil {
		return 0, ErrNotAuthenticated
	}
	var cycle int
	err := db.Model(&model.UserQuizProgressModel{}).
		Where("user_quiz_progress_user_id = ?", userID).
		Select("COALESCE(MAX(user_quiz_progress_cycle_number), 1)").
		Scan(&cycle).Error
	if err != nil {
		return 0, err
	}
	if cycle < 1 {
		cycle = 1
	}
	return cycle, nil
}

/* ---------------------------------------------------
   Progress Writer
--------------------------------------------------- */

// RecordAnswer records one attempt against a question in the user's current
// cycle. Counters are incremented inside a single upsert statement so
// concurrent submissions of the same question never lose an update; the
// completion/correct flags are last-write-wins.
func (s *ProgressService) RecordAnswer(
	db *gorm.DB,
	userID uuid.UUID,
	moduleName, sectionKey string,
	isCorrect bool,
	minutes int,
) (*model.UserQuizProgressModel, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	moduleName = strings.TrimSpace(moduleName)
	sectionKey = strings.TrimSpace(sectionKey)
	if moduleName == "" || sectionKey == "" {
		return nil, fmt.Errorf("%w: module_name and section_key are required", ErrValidation)
	}
	if !s.Catalog.Has(moduleName, sectionKey) {
		return nil, fmt.Errorf("%w: %s/%s", ErrInvalidReference, moduleName, sectionKey)
	}

	correctInc := 0
	if isCorrect {
		correctInc = 1
	}

	var record model.UserQuizProgressModel
	err := db.Transaction(func(tx *gorm.DB) error {
		cycle, err := s.GetCurrentCycle(tx, userID)
		if err != nil {
			return err
		}

		now := time.Now()
		row := model.UserQuizProgressModel{
			UserQuizProgressUserID:       userID,
			UserQuizProgressModuleName:   moduleName,
			UserQuizProgressSectionKey:   sectionKey,
			UserQuizProgressCycleNumber:  cycle,
			UserQuizProgressAnswerCount:  1,
			UserQuizProgressCorrectCount: correctInc,
			UserQuizProgressIsCompleted:  true,
			UserQuizProgressIsCorrect:    isCorrect,
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_quiz_progress_user_id"},
				{Name: "user_quiz_progress_module_name"},
				{Name: "user_quiz_progress_section_key"},
				{Name: "user_quiz_progress_cycle_number"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"user_quiz_progress_answer_count":  gorm.Expr("user_quiz_progress.user_quiz_progress_answer_count + 1"),
				"user_quiz_progress_correct_count": gorm.Expr("user_quiz_progress.user_quiz_progress_correct_count + ?", correctInc),
				"user_quiz_progress_is_completed":  true,
				"user_quiz_progress_is_correct":    isCorrect,
				"updated_at":                       now,
			}),
		}).Create(&row).Error; err != nil {
			return err
		}

		if err := tx.
			Where("user_quiz_progress_user_id = ?", userID).
			Where("user_quiz_progress_module_name = ?", moduleName).
			Where("user_quiz_progress_section_key = ?", sectionKey).
			Where("user_quiz_progress_cycle_number = ?", cycle).
			First(&record).Error; err != nil {
			return err
		}

		// First attempt on this question this cycle counts as a newly
		// completed section in the daily ledger.
		sectionsCompleted := 0
		if record.UserQuizProgressAnswerCount == 1 {
			sectionsCompleted = 1
		}
		return s.Daily.RecordDailyActivity(tx, userID, moduleName, 1, correctInc, minutes, sectionsCompleted)
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

/* ---------------------------------------------------
   Progress Reader / Aggregator
--------------------------------------------------- */

type ModuleStat struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

type CycleStats struct {
	CycleNumber        int                   `json:"cycle_number"`
	TotalQuestions     int                   `json:"total_questions"`
	CompletedQuestions int                   `json:"completed_questions"`
	CorrectRate        int                   `json:"correct_rate"`
	ModuleStats        map[string]ModuleStat `json:"module_stats"`
}

// GetStats aggregates one cycle. Completion is counted over the composite
// (module_name, section_key) key — section keys repeat across modules, so
// counting section keys alone would collapse distinct questions.
func (s *ProgressService) GetStats(db *gorm.DB, userID uuid.UUID, cycleNumber int) (*CycleStats, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	if cycleNumber < 1 {
		return nil, fmt.Errorf("%w: cycle number must be >= 1", ErrValidation)
	}

	stats := &CycleStats{
		CycleNumber:    cycleNumber,
		TotalQuestions: s.Catalog.TotalQuestions(),
		ModuleStats:    make(map[string]ModuleStat, len(s.Catalog.Modules())),
	}
	for _, m := range s.Catalog.Modules() {
		stats.ModuleStats[m] = ModuleStat{Total: s.Catalog.ModuleCount(m)}
	}

	// Per-module completion. Section keys are unique inside a module, so a
	// DISTINCT within each module group preserves composite-key semantics.
	var moduleRows []struct {
		ModuleName string
		Completed  int
	}
	if err := db.Model(&model.UserQuizProgressModel{}).
		Select("user_quiz_progress_module_name AS module_name, COUNT(DISTINCT user_quiz_progress_section_key) AS completed").
		Where("user_quiz_progress_user_id = ?", userID).
		Where("user_quiz_progress_cycle_number = ?", cycleNumber).
		Where("user_quiz_progress_answer_count > 0").
		Group("user_quiz_progress_module_name").
		Scan(&moduleRows).Error; err != nil {
		return nil, err
	}
	for _, r := range moduleRows {
		ms := stats.ModuleStats[r.ModuleName]
		ms.Completed = r.Completed
		stats.ModuleStats[r.ModuleName] = ms
		stats.CompletedQuestions += r.Completed
	}

	var sums struct {
		AnswerSum  int64
		CorrectSum int64
	}
	if err := db.Model(&model.UserQuizProgressModel{}).
		Select("COALESCE(SUM(user_quiz_progress_answer_count), 0) AS answer_sum, COALESCE(SUM(user_quiz_progress_correct_count), 0) AS correct_sum").
		Where("user_quiz_progress_user_id = ?", userID).
		Where("user_quiz_progress_cycle_number = ?", cycleNumber).
		Scan(&sums).Error; err != nil {
		return nil, err
	}
	if sums.AnswerSum > 0 {
		stats.CorrectRate = int(math.Round(float64(sums.CorrectSum) * 100 / float64(sums.AnswerSum)))
	}

	return stats, nil
}

// ListProgress returns a user's records in one cycle, optionally scoped to a
// module. Read-only; dashboards never mutate.
func (s *ProgressService) ListProgress(db *gorm.DB, userID uuid.UUID, cycleNumber int, moduleName string) ([]model.UserQuizProgressModel, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	q := db.
		Where("user_quiz_progress_user_id = ?", userID).
		Where("user_quiz_progress_cycle_number = ?", cycleNumber)
	if moduleName != "" {
		if !s.Catalog.HasModule(moduleName) {
			return nil, fmt.Errorf("%w: module %s", ErrInvalidReference, moduleName)
		}
		q = q.Where("user_quiz_progress_module_name = ?", moduleName)
	}

	var rows []model.UserQuizProgressModel
	if err := q.
		Order("user_quiz_progress_module_name ASC, user_quiz_progress_section_key ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
