package controller

import (
	"github.com/gofiber/fiber/v2"

	"quizku_backend/internals/features/quiz/catalog/service"
	helper "quizku_backend/internals/helpers"
)

type CatalogController struct {
	Catalog *service.Catalog
}

func NewCatalogController(catalog *service.Catalog) *CatalogController {
	return &CatalogController{Catalog: catalog}
}

// GET /api/u/quiz/catalog
func (ctrl *CatalogController) GetCatalog(c *fiber.Ctx) error {
	type moduleEntry struct {
		ModuleName    string `json:"module_name"`
		QuestionCount int    `json:"question_count"`
	}

	modules := make([]moduleEntry, 0, len(ctrl.Catalog.Modules()))
	for _, m := range ctrl.Catalog.Modules() {
		modules = append(modules, moduleEntry{
			ModuleName:    m,
			QuestionCount: ctrl.Catalog.ModuleCount(m),
		})
	}

	return helper.Success(c, "Catalog retrieved", fiber.Map{
		"total_questions": ctrl.Catalog.TotalQuestions(),
		"modules":         modules,
	})
}
