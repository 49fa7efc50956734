package fixture

import (
	"strings"
	"time"
)

type Status string

const (
	StatusScheduled Status = "Scheduled"
	StatusLive      Status = "Live"
	StatusFinished  Status = "Finished"
	StatusPostponed Status = "Postponed"
	StatusCancelled Status = "Cancelled"
)

var statuses = []Status{StatusScheduled, StatusLive, StatusFinished, StatusPostponed, StatusCancelled}

// ParseStatus accepts any casing of a known status name.
func ParseStatus(value string) (Status, bool) {
	v := strings.TrimSpace(value)
	for _, s := range statuses {
		if strings.EqualFold(v, string(s)) {
			return s, true
		}
	}
	return "", false
}

func (s Status) Valid() bool {
	for _, known := range statuses {
		if s == known {
			return true
		}
	}
	return false
}

// AllowsScores reports whether scores may be set while a match is in this status.
func (s Status) AllowsScores() bool {
	return s == StatusLive || s == StatusFinished
}

// Match is a single fixture between two teams inside one gameweek.
type Match struct {
	ID               int64
	GameweekID       int64
	HomeTeamID       int64
	AwayTeamID       int64
	MatchDate        time.Time
	Status           Status
	HomeScore        *int
	AwayScore        *int
	RescheduleReason *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CreateCommand carries a new fixture. An empty Status defaults to Scheduled.
type CreateCommand struct {
	GameweekID int64
	HomeTeamID int64
	AwayTeamID int64
	MatchDate  time.Time
	Status     Status
}

// UpdateCommand is a partial update: nil fields keep the stored value.
// RescheduleReason is applied whenever supplied, and an empty string clears it.
// ClearRescheduleReason clears it regardless of RescheduleReason.
type UpdateCommand struct {
	ID                    int64
	GameweekID            *int64
	HomeTeamID            *int64
	AwayTeamID            *int64
	MatchDate             *time.Time
	Status                *Status
	HomeScore             *int
	AwayScore             *int
	RescheduleReason      *string
	ClearRescheduleReason bool
}

func (c UpdateCommand) touchesScores() bool {
	return c.HomeScore != nil || c.AwayScore != nil
}

// Merge applies the supplied fields of cmd on top of existing.
func Merge(existing Match, cmd UpdateCommand) Match {
	out := existing
	if cmd.GameweekID != nil {
		out.GameweekID = *cmd.GameweekID
	}
	if cmd.HomeTeamID != nil {
		out.HomeTeamID = *cmd.HomeTeamID
	}
	if cmd.AwayTeamID != nil {
		out.AwayTeamID = *cmd.AwayTeamID
	}
	if cmd.MatchDate != nil {
		out.MatchDate = *cmd.MatchDate
	}
	if cmd.Status != nil {
		out.Status = *cmd.Status
	}
	if cmd.HomeScore != nil {
		v := *cmd.HomeScore
		out.HomeScore = &v
	}
	if cmd.AwayScore != nil {
		v := *cmd.AwayScore
		out.AwayScore = &v
	}
	switch {
	case cmd.ClearRescheduleReason:
		out.RescheduleReason = nil
	case cmd.RescheduleReason != nil && *cmd.RescheduleReason == "":
		out.RescheduleReason = nil
	case cmd.RescheduleReason != nil:
		v := *cmd.RescheduleReason
		out.RescheduleReason = &v
	}
	return out
}

// SortField names the orderings a match listing accepts.
type SortField string

const (
	SortByMatchDate      SortField = "match_date"
	SortByGameweekNumber SortField = "gameweek_number"
)

// Filter narrows a match listing. Zero values mean "any".
type Filter struct {
	GameweekID int64
	TeamID     int64
	Status     Status
	DateFrom   *time.Time
	DateTo     *time.Time
	Sort       SortField
	Descending bool
	Page       int
	Limit      int
}
