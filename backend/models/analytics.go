package models

import (
	"math"
	"sort"
	"time"
)

// Summary is the aggregate view over a user's habits.
type Summary struct {
	TotalHabits       int        `json:"totalHabits"`
	TotalCheckIns     int        `json:"totalCheckIns"`
	CompletedCheckIns int        `json:"completedCheckIns"`
	CompletionRate    float64    `json:"completionRate"`
	BestHabit         *BestHabit `json:"bestHabit"`
}

type BestHabit struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Streak int    `json:"streak"`
}

// TrendPoint is one calendar day in the daily trend series.
type TrendPoint struct {
	Date           string  `json:"date"`
	CompletionRate float64 `json:"completionRate"`
	Completed      int     `json:"completed"`
	Total          int     `json:"total"`
}

// HabitRank is one habit's row in the performance ranking.
type HabitRank struct {
	ID                uint    `json:"id"`
	Name              string  `json:"name"`
	CompletionRate    float64 `json:"completionRate"`
	CurrentStreak     int     `json:"currentStreak"`
	LongestStreak     int     `json:"longestStreak"`
	TotalCheckIns     int     `json:"totalCheckIns"`
	CompletedCheckIns int     `json:"completedCheckIns"`
}

// completionRate is completed/total as a percentage rounded to one decimal,
// 0 when there is nothing to divide by.
func completionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*1000) / 10
}

// SummaryStats aggregates check-in counts and the best longest streak across
// the given habits. Callers pass only the habits that should count (already
// scoped to one user, archived ones filtered out).
func SummaryStats(habits []Habit) Summary {
	s := Summary{TotalHabits: len(habits)}

	bestStreak := 0
	for _, h := range habits {
		s.TotalCheckIns += len(h.CheckIns)
		for _, ci := range h.CheckIns {
			if ci.Status == StatusCompleted {
				s.CompletedCheckIns++
			}
		}
		if h.Streaks.Longest > bestStreak {
			bestStreak = h.Streaks.Longest
			s.BestHabit = &BestHabit{
				ID:     h.ID,
				Name:   h.Name,
				Streak: h.Streaks.Longest,
			}
		}
	}

	s.CompletionRate = completionRate(s.CompletedCheckIns, s.TotalCheckIns)
	return s
}

// TrendRangeStart maps a time-range selector to the start of the trend
// window. Unrecognized selectors collapse the window to "now".
func TrendRangeStart(timeRange string, now time.Time) time.Time {
	switch timeRange {
	case "week":
		return now.AddDate(0, 0, -7)
	case "month":
		return now.AddDate(0, -1, 0)
	default:
		return now
	}
}

// DailyTrend merges every habit's check-ins into one bucket per calendar day
// between the window start and now, inclusive, and reports each day's
// completion rate in chronological order.
func DailyTrend(habits []Habit, timeRange string, now time.Time) []TrendPoint {
	start := TrendRangeStart(timeRange, now)

	var points []TrendPoint
	index := make(map[string]int)
	for d, end := NormalizeDay(start), NormalizeDay(now); !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		index[key] = len(points)
		points = append(points, TrendPoint{Date: key})
	}

	for _, h := range habits {
		for _, ci := range h.CheckIns {
			if ci.Date.Before(start) || ci.Date.After(now) {
				continue
			}
			i, ok := index[NormalizeDay(ci.Date).Format("2006-01-02")]
			if !ok {
				continue
			}
			points[i].Total++
			if ci.Status == StatusCompleted {
				points[i].Completed++
			}
		}
	}

	for i := range points {
		points[i].CompletionRate = completionRate(points[i].Completed, points[i].Total)
	}

	return points
}

// Ranking scores each habit by completion rate, best first. The sort is
// stable so habits with equal rates keep their input order.
func Ranking(habits []Habit) []HabitRank {
	ranks := make([]HabitRank, 0, len(habits))
	for _, h := range habits {
		completed := 0
		for _, ci := range h.CheckIns {
			if ci.Status == StatusCompleted {
				completed++
			}
		}
		ranks = append(ranks, HabitRank{
			ID:                h.ID,
			Name:              h.Name,
			CompletionRate:    completionRate(completed, len(h.CheckIns)),
			CurrentStreak:     h.Streaks.Current,
			LongestStreak:     h.Streaks.Longest,
			TotalCheckIns:     len(h.CheckIns),
			CompletedCheckIns: completed,
		})
	}

	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].CompletionRate > ranks[j].CompletionRate
	})

	return ranks
}
