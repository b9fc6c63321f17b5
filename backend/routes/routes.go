package routes

import (
	"habitvault/backend/config"
	"habitvault/backend/controllers"
	"habitvault/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	authMiddleware := middleware.AuthMiddleware(cfg)
	app.Get("/api/auth/me", authMiddleware, authController.Me)

	// Habit routes
	habitsController := controllers.NewHabitsController(db, cfg)
	habits := app.Group("/api/habits", authMiddleware)
	habits.Get("/", habitsController.GetHabits)
	habits.Post("/", habitsController.CreateHabit)
	habits.Get("/today", habitsController.GetTodayHabits)
	habits.Patch("/:id", habitsController.UpdateHabit)
	habits.Delete("/:id", habitsController.DeleteHabit)
	habits.Post("/:id/check-in", habitsController.CheckIn)
	habits.Get("/:id/history", habitsController.GetHistory)

	// Analytics routes
	analyticsController := controllers.NewAnalyticsController(db, cfg)
	analytics := app.Group("/api/analytics", authMiddleware)
	analytics.Get("/stats", analyticsController.GetStats)
	analytics.Get("/trends", analyticsController.GetTrends)
	analytics.Get("/ranking", analyticsController.GetRanking)
}
