package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildHabit replays completed/missed days through the upsert so the ledger
// invariants hold exactly as they would in production.
func buildHabit(t *testing.T, id uint, name string, completedDays, missedDays []int) Habit {
	t.Helper()
	habit := Habit{Name: name}
	habit.ID = id
	for _, n := range completedDays {
		assert.NoError(t, habit.UpsertCheckIn(daysAgo(n), status(StatusCompleted), testNow))
	}
	for _, n := range missedDays {
		assert.NoError(t, habit.UpsertCheckIn(daysAgo(n), status(StatusMissed), testNow))
	}
	return habit
}

func TestSummaryStatsEmpty(t *testing.T) {
	s := SummaryStats(nil)

	assert.Equal(t, 0, s.TotalHabits)
	assert.Equal(t, 0, s.TotalCheckIns)
	assert.Equal(t, 0, s.CompletedCheckIns)
	assert.Equal(t, float64(0), s.CompletionRate)
	assert.Nil(t, s.BestHabit)
}

func TestSummaryStatsCounts(t *testing.T) {
	habit := buildHabit(t, 1, "Reading",
		[]int{0, 1, 2, 3, 4, 5, 6}, // 7 completed
		[]int{7, 8, 9},             // 3 missed
	)

	s := SummaryStats([]Habit{habit})

	assert.Equal(t, 1, s.TotalHabits)
	assert.Equal(t, 10, s.TotalCheckIns)
	assert.Equal(t, 7, s.CompletedCheckIns)
	assert.Equal(t, 70.0, s.CompletionRate)
}

func TestSummaryBestHabitFirstWins(t *testing.T) {
	a := Habit{Name: "A", Streaks: Streaks{Longest: 5}}
	a.ID = 1
	b := Habit{Name: "B", Streaks: Streaks{Longest: 5}}
	b.ID = 2

	s := SummaryStats([]Habit{a, b})

	if assert.NotNil(t, s.BestHabit) {
		assert.Equal(t, uint(1), s.BestHabit.ID)
		assert.Equal(t, "A", s.BestHabit.Name)
		assert.Equal(t, 5, s.BestHabit.Streak)
	}
}

func TestSummaryBestHabitAbsentWhenAllZero(t *testing.T) {
	a := Habit{Name: "A"}
	b := Habit{Name: "B"}

	s := SummaryStats([]Habit{a, b})
	assert.Nil(t, s.BestHabit)
}

func TestRankingEmpty(t *testing.T) {
	assert.Empty(t, Ranking(nil))
}

func TestRankingSortedAndStable(t *testing.T) {
	a := buildHabit(t, 1, "A", []int{0}, []int{1})      // 50%
	b := buildHabit(t, 2, "B", []int{0}, nil)           // 100%
	c := buildHabit(t, 3, "C", []int{0, 1}, []int{2, 3}) // 50%

	ranks := Ranking([]Habit{a, b, c})

	assert.Len(t, ranks, 3)
	assert.Equal(t, uint(2), ranks[0].ID)
	// Equal rates keep input order: A before C.
	assert.Equal(t, uint(1), ranks[1].ID)
	assert.Equal(t, uint(3), ranks[2].ID)

	assert.Equal(t, 100.0, ranks[0].CompletionRate)
	assert.Equal(t, 50.0, ranks[1].CompletionRate)
	assert.Equal(t, 4, ranks[2].TotalCheckIns)
	assert.Equal(t, 2, ranks[2].CompletedCheckIns)
}

func TestDailyTrendWeekEmpty(t *testing.T) {
	points := DailyTrend(nil, "week", testNow)

	// now-7d through now inclusive.
	assert.Len(t, points, 8)
	assert.Equal(t, NormalizeDay(testNow.AddDate(0, 0, -7)).Format("2006-01-02"), points[0].Date)
	assert.Equal(t, NormalizeDay(testNow).Format("2006-01-02"), points[7].Date)
	for _, p := range points {
		assert.Equal(t, 0, p.Total)
		assert.Equal(t, 0, p.Completed)
		assert.Equal(t, float64(0), p.CompletionRate)
	}
}

func TestDailyTrendUnknownRangeSingleBucket(t *testing.T) {
	points := DailyTrend(nil, "bogus", testNow)
	assert.Len(t, points, 1)
	assert.Equal(t, NormalizeDay(testNow).Format("2006-01-02"), points[0].Date)
}

func TestDailyTrendMonthAttribution(t *testing.T) {
	habit := buildHabit(t, 1, "Exercise", []int{2, 5, 10}, nil)

	points := DailyTrend([]Habit{habit}, "month", testNow)

	assert.Equal(t, NormalizeDay(testNow.AddDate(0, -1, 0)).Format("2006-01-02"), points[0].Date)
	assert.Equal(t, NormalizeDay(testNow).Format("2006-01-02"), points[len(points)-1].Date)

	hot := map[string]bool{
		NormalizeDay(daysAgo(2)).Format("2006-01-02"):  true,
		NormalizeDay(daysAgo(5)).Format("2006-01-02"):  true,
		NormalizeDay(daysAgo(10)).Format("2006-01-02"): true,
	}

	seen := 0
	for _, p := range points {
		if hot[p.Date] {
			seen++
			assert.Equal(t, 1, p.Total)
			assert.Equal(t, 1, p.Completed)
			assert.Equal(t, 100.0, p.CompletionRate)
		} else {
			assert.Equal(t, 0, p.Total)
			assert.Equal(t, 0, p.Completed)
			assert.Equal(t, float64(0), p.CompletionRate)
		}
	}
	assert.Equal(t, 3, seen)
}

func TestDailyTrendMergesHabits(t *testing.T) {
	a := buildHabit(t, 1, "A", []int{1}, nil)
	b := buildHabit(t, 2, "B", nil, []int{1})

	points := DailyTrend([]Habit{a, b}, "week", testNow)

	key := NormalizeDay(daysAgo(1)).Format("2006-01-02")
	var found *TrendPoint
	for i := range points {
		if points[i].Date == key {
			found = &points[i]
		}
	}
	if assert.NotNil(t, found) {
		assert.Equal(t, 2, found.Total)
		assert.Equal(t, 1, found.Completed)
		assert.Equal(t, 50.0, found.CompletionRate)
	}
}

func TestCompletionRateRounding(t *testing.T) {
	habit := buildHabit(t, 1, "A", []int{0}, []int{1, 2}) // 1/3 -> 33.3
	ranks := Ranking([]Habit{habit})
	assert.Equal(t, 33.3, ranks[0].CompletionRate)
}
