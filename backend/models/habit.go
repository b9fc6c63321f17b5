package models

import (
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"
)

// Check-in statuses. A day with no opinion has no CheckIn row at all.
const (
	StatusCompleted = "completed"
	StatusMissed    = "missed"
)

var (
	ErrInvalidStatus = errors.New("status must be 'completed' or 'missed'")
	ErrInvalidDate   = errors.New("invalid check-in date")
)

type Habit struct {
	gorm.Model
	UserID      uint      `gorm:"index" json:"userId"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	TargetDays  []int     `gorm:"serializer:json" json:"targetDays"` // 0=Sunday .. 6=Saturday
	StartDate   time.Time `json:"startDate"`
	CheckIns    []CheckIn `gorm:"foreignKey:HabitID" json:"checkIns"`
	Streaks     Streaks   `gorm:"embedded;embeddedPrefix:streak_" json:"streaks"`
	IsArchived  bool      `gorm:"default:false" json:"isArchived"`
}

// CheckIn is one day's entry in a habit's ledger. There is at most one row
// per habit per calendar day; UpsertCheckIn maintains that invariant.
type CheckIn struct {
	ID      uint      `gorm:"primaryKey" json:"-"`
	HabitID uint      `gorm:"index" json:"-"`
	Date    time.Time `gorm:"not null" json:"date"`
	Status  string    `gorm:"not null" json:"status"`
}

// Streaks is derived state cached on the habit. Only CalculateStreaks writes
// these fields; Longest is a watermark and never decreases.
type Streaks struct {
	Current     int        `gorm:"default:0" json:"current"`
	Longest     int        `gorm:"default:0" json:"longest"`
	LastCheckIn *time.Time `json:"lastCheckIn"`
}

// DefaultTargetDays returns every day of the week.
func DefaultTargetDays() []int {
	return []int{0, 1, 2, 3, 4, 5, 6}
}

func ValidStatus(s string) bool {
	return s == StatusCompleted || s == StatusMissed
}

// NormalizeDay strips the time-of-day component, leaving local midnight.
// Day identity everywhere in the ledger is the local calendar date.
func NormalizeDay(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// UpsertCheckIn records status for a single day: any existing entry for that
// day is removed, a new one is added when status is non-nil, the ledger is
// re-sorted newest first and streaks are recomputed. A nil status reverts the
// day to "no record". The ledger is left untouched when the input is invalid.
func (h *Habit) UpsertCheckIn(day time.Time, status *string, now time.Time) error {
	if day.IsZero() {
		return ErrInvalidDate
	}
	if status != nil && !ValidStatus(*status) {
		return ErrInvalidStatus
	}

	day = NormalizeDay(day)

	kept := h.CheckIns[:0]
	for _, ci := range h.CheckIns {
		if !NormalizeDay(ci.Date).Equal(day) {
			kept = append(kept, ci)
		}
	}
	h.CheckIns = kept

	if status != nil {
		h.CheckIns = append(h.CheckIns, CheckIn{
			HabitID: h.ID,
			Date:    day,
			Status:  *status,
		})
	}

	sort.Slice(h.CheckIns, func(i, j int) bool {
		return h.CheckIns[i].Date.After(h.CheckIns[j].Date)
	})

	h.CalculateStreaks(now)
	return nil
}

// CalculateStreaks refreshes the cached streak fields from the check-in
// ledger. The current streak walks completed entries newest first from "now",
// counting while each entry is within 24 hours of the previous one; the first
// larger gap breaks the chain. The walk is anchored to the clock, not to the
// habit's target days, so a habit scheduled every other day cannot hold a
// chain. Longest only ever rises.
func (h *Habit) CalculateStreaks(now time.Time) {
	if len(h.CheckIns) == 0 {
		h.Streaks.Current = 0
		if h.Streaks.Longest < 0 {
			h.Streaks.Longest = 0
		}
		h.Streaks.LastCheckIn = nil
		return
	}

	last := h.CheckIns[0].Date
	h.Streaks.LastCheckIn = &last

	completed := make([]CheckIn, 0, len(h.CheckIns))
	for _, ci := range h.CheckIns {
		if ci.Status == StatusCompleted {
			completed = append(completed, ci)
		}
	}
	sort.Slice(completed, func(i, j int) bool {
		return completed[i].Date.After(completed[j].Date)
	})

	if len(completed) == 0 {
		h.Streaks.Current = 0
		return
	}

	current := 0
	cursor := now
	for _, ci := range completed {
		diff := cursor.Sub(ci.Date)
		if diff < 0 {
			diff = -diff
		}
		if diff > 24*time.Hour {
			break
		}
		current++
		cursor = ci.Date
	}

	h.Streaks.Current = current
	if current > h.Streaks.Longest {
		h.Streaks.Longest = current
	}
}

// TargetsWeekday reports whether the habit is scheduled on the given weekday.
func (h *Habit) TargetsWeekday(weekday time.Weekday) bool {
	for _, d := range h.TargetDays {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

// CheckInOn returns the ledger entry for the given day, if any.
func (h *Habit) CheckInOn(day time.Time) *CheckIn {
	day = NormalizeDay(day)
	for i := range h.CheckIns {
		if NormalizeDay(h.CheckIns[i].Date).Equal(day) {
			return &h.CheckIns[i]
		}
	}
	return nil
}
