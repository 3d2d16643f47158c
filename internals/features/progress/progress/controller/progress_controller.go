package controller

import (
	"errors"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizku_backend/internals/features/progress/progress/dto"
	"quizku_backend/internals/features/progress/progress/service"
	catalogService "quizku_backend/internals/features/quiz/catalog/service"
	helper "quizku_backend/internals/helpers"
)

var validateProgress = validator.New()

type ProgressController struct {
	DB      *gorm.DB
	Service *service.ProgressService
}

func NewProgressController(db *gorm.DB, catalog *catalogService.Catalog) *ProgressController {
	return &ProgressController{DB: db, Service: service.NewProgressService(catalog)}
}

func mapServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return helper.Error(c, fiber.StatusUnauthorized, "Not authenticated")
	case errors.Is(err, service.ErrValidation):
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidReference):
		return helper.Error(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrIntegrityViolation):
		return helper.Error(c, fiber.StatusConflict, err.Error())
	default:
		log.Printf("[ERROR] progress: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Internal server error")
	}
}

// =============================
// ✍️ Record Answer
// =============================

// POST /api/u/progress
func (ctrl *ProgressController) RecordAnswer(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.RecordAnswerRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateProgress.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	record, err := ctrl.Service.RecordAnswer(
		ctrl.DB.WithContext(c.UserContext()),
		userID, body.ModuleName, body.SectionKey, body.IsCorrect, body.TimeSpentMinutes,
	)
	if err != nil {
		return mapServiceError(c, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusOK, "Answer recorded", dto.ToProgressDTO(*record))
}

// =============================
// 📄 Get Progress
// =============================

// GET /api/u/progress?module_name=database&cycle=2
func (ctrl *ProgressController) GetProgress(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	db := ctrl.DB.WithContext(c.UserContext())

	cycle, err := ctrl.cycleParam(c, db, userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	rows, err := ctrl.Service.ListProgress(db, userID, cycle, c.Query("module_name"))
	if err != nil {
		return mapServiceError(c, err)
	}

	result := make([]dto.ProgressDTO, 0, len(rows))
	for _, r := range rows {
		result = append(result, dto.ToProgressDTO(r))
	}

	return helper.Success(c, "Progress retrieved", fiber.Map{
		"cycle_number": cycle,
		"records":      result,
	})
}

// =============================
// 📊 Get Stats
// =============================

// GET /api/u/progress/stats?cycle=2
func (ctrl *ProgressController) GetStats(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	db := ctrl.DB.WithContext(c.UserContext())

	cycle, err := ctrl.cycleParam(c, db, userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	stats, err := ctrl.Service.GetStats(db, userID, cycle)
	if err != nil {
		return mapServiceError(c, err)
	}

	return helper.Success(c, "Stats retrieved", dto.ToCycleStatsDTO(*stats))
}

// cycleParam reads ?cycle= and falls back to the user's current cycle.
func (ctrl *ProgressController) cycleParam(c *fiber.Ctx, db *gorm.DB, userID uuid.UUID) (int, error) {
	if v := c.Query("cycle"); v != "" {
		cycle, err := strconv.Atoi(v)
		if err != nil || cycle < 1 {
			return 0, service.ErrValidation
		}
		return cycle, nil
	}
	return ctrl.Service.GetCurrentCycle(db, userID)
}
