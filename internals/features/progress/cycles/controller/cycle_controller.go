package controller

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizku_backend/internals/features/progress/cycles/service"
	progressService "quizku_backend/internals/features/progress/progress/service"
	catalogService "quizku_backend/internals/features/quiz/catalog/service"
	helper "quizku_backend/internals/helpers"
)

type CycleController struct {
	DB      *gorm.DB
	Service *service.CycleService
}

func NewCycleController(db *gorm.DB, catalog *catalogService.Catalog) *CycleController {
	return &CycleController{DB: db, Service: service.NewCycleService(catalog)}
}

func mapCycleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, progressService.ErrNotAuthenticated):
		return helper.Error(c, fiber.StatusUnauthorized, "Not authenticated")
	case errors.Is(err, progressService.ErrValidation):
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, progressService.ErrInvalidReference):
		return helper.Error(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, progressService.ErrIntegrityViolation):
		return helper.Error(c, fiber.StatusConflict, err.Error())
	default:
		log.Printf("[ERROR] cycles: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Internal server error")
	}
}

// =============================
// 🔁 Current Cycle
// =============================

// GET /api/u/progress/cycles/current
func (ctrl *CycleController) GetCurrentCycle(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	cycle, err := ctrl.Service.GetCurrentCycle(ctrl.DB.WithContext(c.UserContext()), userID)
	if err != nil {
		return mapCycleError(c, err)
	}
	return helper.Success(c, "Current cycle retrieved", fiber.Map{"cycle_number": cycle})
}

// =============================
// 🚀 Start New Cycle
// =============================

// POST /api/u/progress/cycles
func (ctrl *CycleController) StartNewCycle(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	cycle, err := ctrl.Service.StartNewCycle(ctrl.DB.WithContext(c.UserContext()), userID)
	if err != nil {
		return mapCycleError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "New cycle started", fiber.Map{"cycle_number": cycle})
}

// =============================
// 🗑️ Reset Cycle
// =============================

// DELETE /api/u/progress?cycle=2&module_name=database
func (ctrl *CycleController) ResetCycle(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	db := ctrl.DB.WithContext(c.UserContext())

	cycle := 0
	if v := c.Query("cycle"); v != "" {
		cycle, err = strconv.Atoi(v)
		if err != nil || cycle < 1 {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid cycle number")
		}
	} else {
		cycle, err = ctrl.Service.GetCurrentCycle(db, userID)
		if err != nil {
			return mapCycleError(c, err)
		}
	}

	if err := ctrl.Service.ResetCycle(db, userID, cycle, c.Query("module_name")); err != nil {
		return mapCycleError(c, err)
	}
	return helper.Success(c, "Cycle reset", fiber.Map{"cycle_number": cycle})
}

// =============================
// 🩺 Admin: Audit & Reconcile
// =============================

func (ctrl *CycleController) userCycleParams(c *fiber.Ctx) (uuid.UUID, int, error) {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return uuid.Nil, 0, fiber.NewError(fiber.StatusBadRequest, "Invalid user_id")
	}
	cycle, err := strconv.Atoi(c.Params("cycle"))
	if err != nil || cycle < 1 {
		return uuid.Nil, 0, fiber.NewError(fiber.StatusBadRequest, "Invalid cycle number")
	}
	return userID, cycle, nil
}

// GET /api/a/progress/audit/:user_id/:cycle
func (ctrl *CycleController) AuditCycle(c *fiber.Ctx) error {
	userID, cycle, err := ctrl.userCycleParams(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	audit, err := ctrl.Service.AuditCycle(ctrl.DB.WithContext(c.UserContext()), userID, cycle)
	if err != nil {
		return mapCycleError(c, err)
	}
	return helper.Success(c, "Cycle audited", audit)
}

// POST /api/a/progress/reconcile/:user_id/:cycle
func (ctrl *CycleController) ReconcileCycle(c *fiber.Ctx) error {
	userID, cycle, err := ctrl.userCycleParams(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	inserted, err := ctrl.Service.ReconcileCycle(ctrl.DB.WithContext(c.UserContext()), userID, cycle)
	if err != nil {
		return mapCycleError(c, err)
	}
	return helper.Success(c, "Cycle reconciled", fiber.Map{
		"cycle_number":     cycle,
		"inserted_records": inserted,
	})
}
