package gameweek

import (
	"strings"
	"time"
)

// Status is derived from the round dates on every read and never stored.
type Status string

const (
	StatusUpcoming  Status = "Upcoming"
	StatusCurrent   Status = "Current"
	StatusCompleted Status = "Completed"
)

// Gameweek is a numbered, dated window of the competition.
type Gameweek struct {
	ID        int64
	Number    int
	StartDate time.Time
	EndDate   time.Time
}

// Status derives the lifecycle state at now.
func (g Gameweek) Status(now time.Time) Status {
	return DeriveStatus(g, now)
}

// Contains reports whether t falls inside [StartDate, EndDate] by calendar date.
func (g Gameweek) Contains(t time.Time) bool {
	day := DateOnly(t)
	return !day.Before(DateOnly(g.StartDate)) && !day.After(DateOnly(g.EndDate))
}

// DeriveStatus compares calendar dates only; both boundary days count as Current.
func DeriveStatus(g Gameweek, now time.Time) Status {
	today := DateOnly(now)
	switch {
	case today.Before(DateOnly(g.StartDate)):
		return StatusUpcoming
	case today.After(DateOnly(g.EndDate)):
		return StatusCompleted
	default:
		return StatusCurrent
	}
}

// DateOnly truncates t to midnight UTC of its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseStatus(value string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "upcoming":
		return StatusUpcoming, true
	case "current":
		return StatusCurrent, true
	case "completed":
		return StatusCompleted, true
	default:
		return "", false
	}
}
