package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	cycleController "quizku_backend/internals/features/progress/cycles/controller"
	catalogService "quizku_backend/internals/features/quiz/catalog/service"
)

func UserCycleRoutes(router fiber.Router, db *gorm.DB, catalog *catalogService.Catalog) {
	controller := cycleController.NewCycleController(db, catalog)

	router.Get("/progress/cycles/current", controller.GetCurrentCycle)
	router.Post("/progress/cycles", controller.StartNewCycle)
	router.Delete("/progress", controller.ResetCycle)
}
