package route

import (
	"github.com/gofiber/fiber/v2"

	catalogController "quizku_backend/internals/features/quiz/catalog/controller"
	"quizku_backend/internals/features/quiz/catalog/service"
)

func CatalogRoutes(router fiber.Router, catalog *service.Catalog) {
	controller := catalogController.NewCatalogController(catalog)
	catalogRoutes := router.Group("/quiz/catalog")

	catalogRoutes.Get("/", controller.GetCatalog)
}
