package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dailyController "quizku_backend/internals/features/progress/daily_activities/controller"
)

func DailyActivityRoutes(router fiber.Router, db *gorm.DB) {
	controller := dailyController.NewDailyActivityController(db)

	router.Get("/progress/streak", controller.GetStreak)
	router.Get("/progress/daily", controller.GetDailyActivities)
}
