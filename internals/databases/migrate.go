package database

import (
	"log"

	catalogModel "quizku_backend/internals/features/quiz/catalog/model"

	dailyModel "quizku_backend/internals/features/progress/daily_activities/model"
	progressModel "quizku_backend/internals/features/progress/progress/model"
)

// Migrate creates/updates the engine tables, including the composite unique
// indexes the upserts rely on.
func Migrate() {
	if err := DB.AutoMigrate(
		&catalogModel.QuizQuestionModel{},
		&progressModel.UserQuizProgressModel{},
		&dailyModel.UserDailyActivityModel{},
		&dailyModel.UserStreakModel{},
	); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	log.Println("✅ Migration complete.")
}
