package details

import (
	"github.com/gofiber/fiber/v2"

	catalogRoute "quizku_backend/internals/features/quiz/catalog/route"
	catalogService "quizku_backend/internals/features/quiz/catalog/service"
)

func QuizRoutes(user fiber.Router, catalog *catalogService.Catalog) {
	catalogRoute.CatalogRoutes(user, catalog)
}
