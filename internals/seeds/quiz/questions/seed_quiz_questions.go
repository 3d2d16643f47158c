package questions

import (
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quizku_backend/internals/features/quiz/catalog/model"
	catalogService "quizku_backend/internals/features/quiz/catalog/service"
)

// SeedQuizQuestions fills quiz_questions from the default catalog definition.
// Idempotent: existing (module, section) pairs are left alone.
func SeedQuizQuestions(db *gorm.DB) error {
	catalog := catalogService.Default()

	var count int64
	if err := db.Model(&model.QuizQuestionModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count == int64(catalog.TotalQuestions()) {
		log.Println("[INFO] quiz_questions already seeded, skipping")
		return nil
	}

	rows := make([]model.QuizQuestionModel, 0, catalog.TotalQuestions())
	order := 0
	lastModule := ""
	for _, k := range catalog.Keys() {
		if k.ModuleName != lastModule {
			lastModule = k.ModuleName
			order = 0
		}
		order++
		rows = append(rows, model.QuizQuestionModel{
			QuizQuestionModuleName: k.ModuleName,
			QuizQuestionSectionKey: k.SectionKey,
			QuizQuestionOrder:      order,
		})
	}

	if err := db.
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(rows, 500).Error; err != nil {
		log.Printf("[ERROR] Failed to seed quiz_questions: %v", err)
		return err
	}

	log.Printf("[INFO] quiz_questions seeded: %d rows", len(rows))
	return nil
}
