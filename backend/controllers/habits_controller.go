package controllers

import (
	"encoding/json"
	"strconv"
	"time"

	"habitvault/backend/config"
	"habitvault/backend/models"
	"habitvault/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HabitsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewHabitsController(db *gorm.DB, cfg *config.Config) *HabitsController {
	return &HabitsController{DB: db, Cfg: cfg}
}

// parseDate accepts full timestamps and plain calendar dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

// findHabit loads one of the user's habits with its ledger, newest entry
// first so the in-memory ordering invariant holds straight from the query.
func (hc *HabitsController) findHabit(habitID, userID uint) (*models.Habit, error) {
	var habit models.Habit
	err := hc.DB.
		Preload("CheckIns", func(db *gorm.DB) *gorm.DB { return db.Order("date DESC") }).
		Where("id = ? AND user_id = ?", habitID, userID).
		First(&habit).Error
	if err != nil {
		return nil, err
	}
	return &habit, nil
}

// GetHabits lists the user's non-archived habits, newest first.
func (hc *HabitsController) GetHabits(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, hc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var habits []models.Habit
	if err := hc.DB.
		Preload("CheckIns", func(db *gorm.DB) *gorm.DB { return db.Order("date DESC") }).
		Where("user_id = ? AND is_archived = ?", userID, false).
		Order("created_at DESC").
		Find(&habits).Error; err != nil {
		return utils.InternalServerError(c, "Could not fetch habits")
	}

	return utils.Success(c, fiber.StatusOK, habits)
}

type habitInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	TargetDays  []int  `json:"targetDays"`
	StartDate   string `json:"startDate"`
}

func validTargetDays(days []int) bool {
	for _, d := range days {
		if d < 0 || d > 6 {
			return false
		}
	}
	return true
}

// CreateHabit creates a habit for the user. Target days default to every day
// of the week, start date to now.
func (hc *HabitsController) CreateHabit(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, hc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input habitInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Name == "" {
		return utils.BadRequest(c, "Name is required")
	}

	targetDays := input.TargetDays
	if len(targetDays) == 0 {
		targetDays = models.DefaultTargetDays()
	}
	if !validTargetDays(targetDays) {
		return utils.BadRequest(c, "targetDays must be weekday indices 0-6")
	}

	startDate := time.Now()
	if input.StartDate != "" {
		startDate, err = parseDate(input.StartDate)
		if err != nil {
			return utils.BadRequest(c, "Invalid startDate format")
		}
	}

	habit := models.Habit{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		TargetDays:  targetDays,
		StartDate:   startDate,
	}

	if err := hc.DB.Create(&habit).Error; err != nil {
		return utils.InternalServerError(c, "Could not create habit")
	}

	return utils.Created(c, habit)
}

type habitUpdateInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	TargetDays  *[]int  `json:"targetDays"`
	IsArchived  *bool   `json:"isArchived"`
}

// UpdateHabit applies a partial update. Only name, description, targetDays
// and isArchived may change; anything else in the body is rejected.
func (hc *HabitsController) UpdateHabit(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, hc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	habitID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid habit ID")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	allowed := map[string]bool{"name": true, "description": true, "targetDays": true, "isArchived": true}
	for key := range raw {
		if !allowed[key] {
			return utils.BadRequest(c, "Invalid updates")
		}
	}

	var input habitUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	habit, err := hc.findHabit(uint(habitID), userID)
	if err != nil {
		return utils.NotFound(c, "Habit not found")
	}

	if input.Name != nil {
		if *input.Name == "" {
			return utils.BadRequest(c, "Name is required")
		}
		habit.Name = *input.Name
	}
	if input.Description != nil {
		habit.Description = *input.Description
	}
	if input.TargetDays != nil {
		if !validTargetDays(*input.TargetDays) {
			return utils.BadRequest(c, "targetDays must be weekday indices 0-6")
		}
		habit.TargetDays = *input.TargetDays
	}
	if input.IsArchived != nil {
		habit.IsArchived = *input.IsArchived
	}

	if err := hc.DB.Omit("CheckIns").Save(habit).Error; err != nil {
		return utils.InternalServerError(c, "Could not update habit")
	}

	return utils.Success(c, fiber.StatusOK, habit)
}

// DeleteHabit removes a habit and its check-in ledger.
func (hc *HabitsController) DeleteHabit(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, hc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	habitID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid habit ID")
	}

	habit, err := hc.findHabit(uint(habitID), userID)
	if err != nil {
		return utils.NotFound(c, "Habit not found")
	}

	err = hc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("habit_id = ?", habit.ID).Delete(&models.CheckIn{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Habit{}, habit.ID).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete habit")
	}

	return utils.Success(c, fiber.StatusOK, habit)
}

type checkInInput struct {
	Date   string  `json:"date"`
	Status *string `json:"status"`
}

// CheckIn upserts one day's entry in the habit's ledger and recomputes the
// cached streaks before anything is persisted, so the ledger and streak
// fields always change together. A null status clears the day.
func (hc *HabitsController) CheckIn(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, hc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	habitID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid habit ID")
	}

	var input checkInInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	date, err := parseDate(input.Date)
	if err != nil {
		return utils.BadRequest(c, "Invalid date format")
	}

	habit, err := hc.findHabit(uint(habitID), userID)
	if err != nil {
		return utils.NotFound(c, "Habit not found")
	}

	if err := habit.UpsertCheckIn(date, input.Status, time.Now()); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	// Replace the stored ledger wholesale, the way the upsert replaced it in
	// memory, then persist the recomputed streak fields in the same
	// transaction.
	err = hc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("habit_id = ?", habit.ID).Delete(&models.CheckIn{}).Error; err != nil {
			return err
		}
		if len(habit.CheckIns) > 0 {
			rows := make([]models.CheckIn, len(habit.CheckIns))
			for i, ci := range habit.CheckIns {
				rows[i] = models.CheckIn{HabitID: habit.ID, Date: ci.Date, Status: ci.Status}
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
			habit.CheckIns = rows
		}
		return tx.Model(&models.Habit{}).Where("id = ?", habit.ID).
			Updates(map[string]interface{}{
				"streak_current":       habit.Streaks.Current,
				"streak_longest":       habit.Streaks.Longest,
				"streak_last_check_in": habit.Streaks.LastCheckIn,
			}).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not save check-in")
	}

	return utils.Success(c, fiber.StatusOK, habit)
}

// GetHistory returns the habit's check-ins, optionally windowed by
// startDate/endDate query parameters, along with the streak snapshot.
func (hc *HabitsController) GetHistory(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, hc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	habitID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid habit ID")
	}

	habit, err := hc.findHabit(uint(habitID), userID)
	if err != nil {
		return utils.NotFound(c, "Habit not found")
	}

	checkIns := habit.CheckIns

	if s := c.Query("startDate"); s != "" {
		start, err := parseDate(s)
		if err != nil {
			return utils.BadRequest(c, "Invalid startDate format")
		}
		filtered := checkIns[:0]
		for _, ci := range checkIns {
			if !ci.Date.Before(start) {
				filtered = append(filtered, ci)
			}
		}
		checkIns = filtered
	}

	if s := c.Query("endDate"); s != "" {
		end, err := parseDate(s)
		if err != nil {
			return utils.BadRequest(c, "Invalid endDate format")
		}
		filtered := checkIns[:0]
		for _, ci := range checkIns {
			if !ci.Date.After(end) {
				filtered = append(filtered, ci)
			}
		}
		checkIns = filtered
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"habit": fiber.Map{
			"id":      habit.ID,
			"name":    habit.Name,
			"streaks": habit.Streaks,
		},
		"checkIns": checkIns,
	})
}

// GetTodayHabits lists habits scheduled for today's weekday that have not
// been completed today.
func (hc *HabitsController) GetTodayHabits(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, hc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var habits []models.Habit
	if err := hc.DB.
		Preload("CheckIns", func(db *gorm.DB) *gorm.DB { return db.Order("date DESC") }).
		Where("user_id = ? AND is_archived = ?", userID, false).
		Find(&habits).Error; err != nil {
		return utils.InternalServerError(c, "Could not fetch habits")
	}

	now := time.Now()
	today := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		if !h.TargetsWeekday(now.Weekday()) {
			continue
		}
		if ci := h.CheckInOn(now); ci != nil && ci.Status == models.StatusCompleted {
			continue
		}
		today = append(today, h)
	}

	return utils.Success(c, fiber.StatusOK, today)
}
