package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	routeDetails "quizku_backend/internals/route/details"

	catalogService "quizku_backend/internals/features/quiz/catalog/service"
	authMiddleware "quizku_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, catalog *catalogService.Catalog) {
	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE (user) group...")
	user := app.Group("/api/u",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
		authMiddleware.IsAdmin(),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Setting up ProgressRoutes...")
	routeDetails.ProgressRoutes(user, admin, db, catalog)

	log.Println("[INFO] Setting up QuizRoutes...")
	routeDetails.QuizRoutes(user, catalog)
}
