package seeds

import (
	"log"

	questions "quizku_backend/internals/seeds/quiz/questions"

	"gorm.io/gorm"
)

// Run executes the seeders that must have run before the app serves traffic.
func Run(db *gorm.DB) {
	if err := questions.SeedQuizQuestions(db); err != nil {
		log.Fatalf("❌ Seeding quiz questions failed: %v", err)
	}
}
