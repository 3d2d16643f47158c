package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	progressController "quizku_backend/internals/features/progress/progress/controller"
	catalogService "quizku_backend/internals/features/quiz/catalog/service"
	"quizku_backend/internals/middlewares"
)

func UserProgressRoutes(router fiber.Router, db *gorm.DB, catalog *catalogService.Catalog) {
	controller := progressController.NewProgressController(db, catalog)

	progressRoutes := router.Group("/progress")
	progressRoutes.Get("/", controller.GetProgress)
	progressRoutes.Post("/", middlewares.SubmitRateLimiter(), controller.RecordAnswer)
	progressRoutes.Get("/stats", controller.GetStats)
}
