package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	cycleController "quizku_backend/internals/features/progress/cycles/controller"
	catalogService "quizku_backend/internals/features/quiz/catalog/service"
)

func AdminCycleRoutes(router fiber.Router, db *gorm.DB, catalog *catalogService.Catalog) {
	controller := cycleController.NewCycleController(db, catalog)

	router.Get("/progress/audit/:user_id/:cycle", controller.AuditCycle)
	router.Post("/progress/reconcile/:user_id/:cycle", controller.ReconcileCycle)
}
