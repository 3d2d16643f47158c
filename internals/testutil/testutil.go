package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	dailyModel "quizku_backend/internals/features/progress/daily_activities/model"
	progressModel "quizku_backend/internals/features/progress/progress/model"
	catalogModel "quizku_backend/internals/features/quiz/catalog/model"
)

// DB opens a fresh in-memory SQLite database with the engine schema migrated.
// Each call returns an isolated database, so tests never see each other's rows.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	// A named shared in-memory database keeps every pooled connection on the
	// same data; the random name isolates tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&catalogModel.QuizQuestionModel{},
		&progressModel.UserQuizProgressModel{},
		&dailyModel.UserDailyActivityModel{},
		&dailyModel.UserStreakModel{},
	); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		// Single connection sidesteps SQLITE_BUSY under parallel writes.
		sqlDB.SetMaxOpenConns(1)
		tb.Cleanup(func() { _ = sqlDB.Close() })
	}
	return db
}
