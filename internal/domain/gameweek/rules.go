package gameweek

import (
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
)

// DateLayout is how round boundaries are rendered in messages and payloads.
const DateLayout = "2006-01-02"

const (
	maxPastStartYears = 1
	maxFutureEndYears = 2

	fieldNumber     = "number"
	fieldStartDate  = "startDate"
	fieldEndDate    = "endDate"
	fieldGameweekID = "id"
)

// ValidateDateRange requires start to fall on a strictly earlier calendar day than end.
func ValidateDateRange(start, end time.Time) error {
	if !DateOnly(start).Before(DateOnly(end)) {
		return rule.Structural(fieldStartDate, "Start date must be before end date")
	}
	return nil
}

// ValidateCreate checks a round's number and dates relative to now.
// The first failing check wins.
func ValidateCreate(number int, start, end, now time.Time) error {
	if number <= 0 {
		return rule.Structural(fieldNumber, "Gameweek number must be greater than zero")
	}
	if err := ValidateDateRange(start, end); err != nil {
		return err
	}

	today := DateOnly(now)
	if DateOnly(start).Before(today.AddDate(-maxPastStartYears, 0, 0)) {
		return rule.Structural(fieldStartDate, "Start date cannot be more than 1 year in the past")
	}
	if DateOnly(end).After(today.AddDate(maxFutureEndYears, 0, 0)) {
		return rule.Structural(fieldEndDate, "End date cannot be more than 2 years in the future")
	}

	return nil
}

// ValidateUnique rejects number when any other round already uses it.
// excludingID is the round being updated, or 0 on create.
func ValidateUnique(number int, existing []Gameweek, excludingID int64) error {
	for _, g := range existing {
		if g.Number == number && g.ID != excludingID {
			return rule.Conflict(fieldNumber, "Gameweek with number %d already exists", number)
		}
	}
	return nil
}

// ValidateDeletable blocks deletion while the round owns fixtures.
func ValidateDeletable(id int64, matchCount int) error {
	if matchCount > 0 {
		return rule.Conflict(fieldGameweekID, "Cannot delete gameweek with ID %d because it has associated matches. Please delete matches first.", id)
	}
	return nil
}

// ValidateID rejects non-positive identifiers.
func ValidateID(id int64) error {
	if id <= 0 {
		return rule.Structural(fieldGameweekID, "ID must be greater than 0")
	}
	return nil
}
