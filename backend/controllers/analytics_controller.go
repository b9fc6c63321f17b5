package controllers

import (
	"time"

	"habitvault/backend/config"
	"habitvault/backend/models"
	"habitvault/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AnalyticsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAnalyticsController(db *gorm.DB, cfg *config.Config) *AnalyticsController {
	return &AnalyticsController{DB: db, Cfg: cfg}
}

// activeHabits loads the user's non-archived habits with their ledgers.
// Archive filtering happens here; the aggregators see only what counts.
func (ac *AnalyticsController) activeHabits(userID uint) ([]models.Habit, error) {
	var habits []models.Habit
	err := ac.DB.
		Preload("CheckIns", func(db *gorm.DB) *gorm.DB { return db.Order("date DESC") }).
		Where("user_id = ? AND is_archived = ?", userID, false).
		Order("created_at DESC").
		Find(&habits).Error
	return habits, err
}

// GetStats returns the user's habit summary statistics.
func (ac *AnalyticsController) GetStats(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	habits, err := ac.activeHabits(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not fetch habits")
	}

	return utils.Success(c, fiber.StatusOK, models.SummaryStats(habits))
}

// GetTrends returns the daily completion-rate series for the requested
// time range (week by default).
func (ac *AnalyticsController) GetTrends(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	habits, err := ac.activeHabits(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not fetch habits")
	}

	timeRange := c.Query("timeRange", "week")
	return utils.Success(c, fiber.StatusOK, models.DailyTrend(habits, timeRange, time.Now()))
}

// GetRanking returns the user's habits ordered by completion rate.
func (ac *AnalyticsController) GetRanking(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	habits, err := ac.activeHabits(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not fetch habits")
	}

	return utils.Success(c, fiber.StatusOK, models.Ranking(habits))
}
