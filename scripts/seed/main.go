package main

import (
	"log"
	"math/rand"
	"time"

	"habitvault/backend/config"
	"habitvault/backend/models"
	"habitvault/backend/utils"

	"golang.org/x/crypto/bcrypt"
)

type seedHabit struct {
	name        string
	description string
	targetDays  []int
}

var seedHabits = []seedHabit{
	{"Morning Meditation", "15 minutes of mindfulness meditation every morning", []int{0, 1, 2, 3, 4, 5, 6}},
	{"Exercise", "30 minutes workout session", []int{1, 3, 5}},
	{"Read Books", "Read for 30 minutes before bed", []int{0, 1, 2, 3, 4, 5, 6}},
	{"Drink Water", "Drink 8 glasses of water daily", []int{0, 1, 2, 3, 4, 5, 6}},
	{"Learn Programming", "Code practice for 1 hour", []int{1, 2, 3, 4, 5}},
	{"Practice Guitar", "Practice guitar for 20 minutes", []int{2, 4, 6}},
	{"Journal Writing", "Write daily reflections before bed", []int{0, 1, 2, 3, 4, 5, 6}},
	{"Healthy Breakfast", "Start day with a nutritious breakfast", []int{1, 2, 3, 4, 5}},
	{"Evening Walk", "30 minutes walking after dinner", []int{0, 2, 4, 6}},
	{"Language Learning", "Practice Spanish for 15 minutes", []int{1, 3, 5}},
	{"Family Time", "Quality time with family - games or conversation", []int{0}},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error hashing demo password: %v", err)
	}

	user := models.User{Email: "demo@habitvault.local"}
	if err := db.Where(models.User{Email: user.Email}).
		Attrs(models.User{Name: "Demo User", PasswordHash: string(hash)}).
		FirstOrCreate(&user).Error; err != nil {
		log.Fatalf("Error creating demo user: %v", err)
	}

	// Clear the user's existing habits before reseeding.
	var oldIDs []uint
	db.Model(&models.Habit{}).Where("user_id = ?", user.ID).Pluck("id", &oldIDs)
	if len(oldIDs) > 0 {
		db.Where("habit_id IN ?", oldIDs).Delete(&models.CheckIn{})
		db.Delete(&models.Habit{}, oldIDs)
	}

	now := time.Now()
	start := now.AddDate(0, 0, -30)

	for _, sh := range seedHabits {
		habit := models.Habit{
			UserID:      user.ID,
			Name:        sh.name,
			Description: sh.description,
			TargetDays:  sh.targetDays,
			StartDate:   start,
		}

		// Replay the month chronologically, one upsert per day, so the
		// longest-streak watermark reflects the whole history rather than
		// just the final day's current streak.
		end := models.NormalizeDay(now)
		for day := models.NormalizeDay(start); !day.After(end); day = day.AddDate(0, 0, 1) {
			if !habit.TargetsWeekday(day.Weekday()) {
				continue
			}
			status := models.StatusCompleted
			if rand.Float64() >= 0.8 {
				status = models.StatusMissed
			}
			if err := habit.UpsertCheckIn(day, &status, day.Add(12*time.Hour)); err != nil {
				log.Fatalf("Error seeding check-in for %q: %v", sh.name, err)
			}
		}

		if err := db.Create(&habit).Error; err != nil {
			log.Fatalf("Error creating habit %q: %v", sh.name, err)
		}

		log.Printf("Seeded %q: %d check-ins, current streak %d, longest %d",
			habit.Name, len(habit.CheckIns), habit.Streaks.Current, habit.Streaks.Longest)
	}

	log.Println("Habits seeded successfully!")
}
