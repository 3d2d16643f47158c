package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizku_backend/internals/features/progress/daily_activities/dto"
	"quizku_backend/internals/features/progress/daily_activities/service"
	helper "quizku_backend/internals/helpers"
)

type DailyActivityController struct {
	DB      *gorm.DB
	Service *service.DailyActivityService
}

func NewDailyActivityController(db *gorm.DB) *DailyActivityController {
	return &DailyActivityController{DB: db, Service: service.NewDailyActivityService()}
}

// =============================
// 🔥 Get Streak
// =============================

// GET /api/u/progress/streak
func (ctrl *DailyActivityController) GetStreak(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	streak, err := ctrl.Service.GetStreak(ctrl.DB.WithContext(c.UserContext()), userID)
	if err != nil {
		log.Printf("[ERROR] Failed to load streak for %s: %v", userID, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to retrieve streak")
	}

	return helper.Success(c, "Streak retrieved", dto.ToStreakDTO(*streak))
}

// =============================
// 📅 Get Daily Activities
// =============================

// GET /api/u/progress/daily?from=2026-01-01&to=2026-01-31
func (ctrl *DailyActivityController) GetDailyActivities(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var from, to time.Time
	if v := c.Query("from"); v != "" {
		from, err = time.Parse("2006-01-02", v)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid 'from' date, expected YYYY-MM-DD")
		}
	}
	if v := c.Query("to"); v != "" {
		to, err = time.Parse("2006-01-02", v)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid 'to' date, expected YYYY-MM-DD")
		}
	}

	rows, err := ctrl.Service.GetDailyActivities(ctrl.DB.WithContext(c.UserContext()), userID, from, to)
	if err != nil {
		log.Printf("[ERROR] Failed to load daily activities for %s: %v", userID, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to retrieve daily activities")
	}

	result := make([]dto.DailyActivityDTO, 0, len(rows))
	for _, r := range rows {
		result = append(result, dto.ToDailyActivityDTO(r))
	}

	return helper.Success(c, "Daily activities retrieved", result)
}
