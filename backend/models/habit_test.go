package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Fixed clock away from any DST transition so midnight gaps are exactly 24h.
var testNow = time.Date(2026, 8, 20, 12, 0, 0, 0, time.Local)

func daysAgo(n int) time.Time {
	return testNow.AddDate(0, 0, -n)
}

func status(s string) *string {
	return &s
}

func TestUpsertRemovesDayOnNilStatus(t *testing.T) {
	habit := Habit{}

	err := habit.UpsertCheckIn(testNow, status(StatusCompleted), testNow)
	assert.NoError(t, err)
	assert.Len(t, habit.CheckIns, 1)

	err = habit.UpsertCheckIn(testNow, nil, testNow)
	assert.NoError(t, err)
	assert.Empty(t, habit.CheckIns)
	assert.Equal(t, 0, habit.Streaks.Current)
	assert.Nil(t, habit.Streaks.LastCheckIn)
}

func TestUpsertReplacesSameDay(t *testing.T) {
	habit := Habit{}

	assert.NoError(t, habit.UpsertCheckIn(testNow, status(StatusCompleted), testNow))
	// A different time of day still resolves to the same calendar day.
	later := testNow.Add(5 * time.Hour)
	assert.NoError(t, habit.UpsertCheckIn(later, status(StatusMissed), testNow))

	assert.Len(t, habit.CheckIns, 1)
	assert.Equal(t, StatusMissed, habit.CheckIns[0].Status)
	assert.Equal(t, NormalizeDay(testNow), habit.CheckIns[0].Date)
}

func TestUpsertKeepsDescendingOrder(t *testing.T) {
	habit := Habit{}

	for _, n := range []int{3, 1, 4, 0, 2} {
		assert.NoError(t, habit.UpsertCheckIn(daysAgo(n), status(StatusCompleted), testNow))
	}

	assert.Len(t, habit.CheckIns, 5)
	for i := 1; i < len(habit.CheckIns); i++ {
		assert.True(t, habit.CheckIns[i-1].Date.After(habit.CheckIns[i].Date),
			"check-ins must stay sorted newest first")
	}
}

func TestUpsertRejectsUnknownStatus(t *testing.T) {
	habit := Habit{}
	assert.NoError(t, habit.UpsertCheckIn(daysAgo(1), status(StatusCompleted), testNow))

	err := habit.UpsertCheckIn(testNow, status("skipped"), testNow)
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Len(t, habit.CheckIns, 1, "ledger must be untouched on invalid input")
}

func TestUpsertRejectsZeroDate(t *testing.T) {
	habit := Habit{}
	err := habit.UpsertCheckIn(time.Time{}, status(StatusCompleted), testNow)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestCalculateStreaksEmptyLedger(t *testing.T) {
	habit := Habit{Streaks: Streaks{Longest: 5}}

	habit.CalculateStreaks(testNow)

	assert.Equal(t, 0, habit.Streaks.Current)
	assert.Equal(t, 5, habit.Streaks.Longest)
	assert.Nil(t, habit.Streaks.LastCheckIn)
}

func TestCurrentStreakChain(t *testing.T) {
	habit := Habit{}
	for n := 2; n >= 0; n-- {
		assert.NoError(t, habit.UpsertCheckIn(daysAgo(n), status(StatusCompleted), testNow))
	}

	assert.Equal(t, 3, habit.Streaks.Current)
	assert.Equal(t, 3, habit.Streaks.Longest)
	if assert.NotNil(t, habit.Streaks.LastCheckIn) {
		assert.Equal(t, NormalizeDay(testNow), *habit.Streaks.LastCheckIn)
	}
}

func TestCurrentStreakBreaksOnGap(t *testing.T) {
	habit := Habit{}
	assert.NoError(t, habit.UpsertCheckIn(daysAgo(2), status(StatusCompleted), testNow))
	assert.NoError(t, habit.UpsertCheckIn(daysAgo(0), status(StatusCompleted), testNow))

	// The skipped day leaves a 48h gap, so only today counts.
	assert.Equal(t, 1, habit.Streaks.Current)
}

func TestMissedEntriesDoNotCount(t *testing.T) {
	habit := Habit{}
	assert.NoError(t, habit.UpsertCheckIn(daysAgo(2), status(StatusCompleted), testNow))
	assert.NoError(t, habit.UpsertCheckIn(daysAgo(0), status(StatusMissed), testNow))

	// The only completed entry is beyond the 24h window from now.
	assert.Equal(t, 0, habit.Streaks.Current)
	// lastCheckIn still reflects the newest record of any status.
	if assert.NotNil(t, habit.Streaks.LastCheckIn) {
		assert.Equal(t, NormalizeDay(testNow), *habit.Streaks.LastCheckIn)
	}
}

func TestLongestIsAWatermark(t *testing.T) {
	habit := Habit{}
	for n := 2; n >= 0; n-- {
		assert.NoError(t, habit.UpsertCheckIn(daysAgo(n), status(StatusCompleted), testNow))
	}
	assert.Equal(t, 3, habit.Streaks.Longest)

	// Removing entries drops the current streak but never the longest.
	prev := habit.Streaks.Longest
	for n := 0; n <= 2; n++ {
		assert.NoError(t, habit.UpsertCheckIn(daysAgo(n), nil, testNow))
		assert.GreaterOrEqual(t, habit.Streaks.Longest, prev)
		prev = habit.Streaks.Longest
	}

	assert.Empty(t, habit.CheckIns)
	assert.Equal(t, 0, habit.Streaks.Current)
	assert.Equal(t, 3, habit.Streaks.Longest)
}

func TestScheduledHabitCannotHoldChain(t *testing.T) {
	// Mon/Wed/Fri habit completed on three consecutive scheduled days two
	// weeks back. The 24h window never bridges the 48h spacing, so even at
	// upsert time the chain never grows past one, and by now it is gone.
	habit := Habit{TargetDays: []int{1, 3, 5}}

	day := NormalizeDay(testNow).AddDate(0, 0, -16)
	for day.Weekday() != time.Monday {
		day = day.AddDate(0, 0, -1)
	}
	for _, offset := range []int{0, 2, 4} {
		d := day.AddDate(0, 0, offset)
		assert.NoError(t, habit.UpsertCheckIn(d, status(StatusCompleted), d.Add(12*time.Hour)))
	}

	assert.Equal(t, 1, habit.Streaks.Longest)

	habit.CalculateStreaks(testNow)
	assert.Equal(t, 0, habit.Streaks.Current)
	assert.Equal(t, 1, habit.Streaks.Longest)
}

func TestTargetsWeekday(t *testing.T) {
	habit := Habit{TargetDays: []int{1, 3, 5}}
	assert.True(t, habit.TargetsWeekday(time.Monday))
	assert.False(t, habit.TargetsWeekday(time.Sunday))
}
