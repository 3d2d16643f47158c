package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	cycleRoute "quizku_backend/internals/features/progress/cycles/route"
	dailyRoute "quizku_backend/internals/features/progress/daily_activities/route"
	progressRoute "quizku_backend/internals/features/progress/progress/route"
	catalogService "quizku_backend/internals/features/quiz/catalog/service"
)

func ProgressRoutes(user fiber.Router, admin fiber.Router, db *gorm.DB, catalog *catalogService.Catalog) {
	progressRoute.UserProgressRoutes(user, db, catalog)
	cycleRoute.UserCycleRoutes(user, db, catalog)
	dailyRoute.DailyActivityRoutes(user, db)

	cycleRoute.AdminCycleRoutes(admin, db, catalog)
}
