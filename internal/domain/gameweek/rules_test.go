package gameweek

import (
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDeriveStatus(t *testing.T) {
	g := Gameweek{ID: 1, Number: 20, StartDate: day(2026, 1, 15), EndDate: day(2026, 1, 17)}

	tests := []struct {
		name string
		now  time.Time
		want Status
	}{
		{name: "day before start", now: time.Date(2026, 1, 14, 23, 59, 59, 0, time.UTC), want: StatusUpcoming},
		{name: "start day midnight", now: day(2026, 1, 15), want: StatusCurrent},
		{name: "start day evening", now: time.Date(2026, 1, 15, 21, 0, 0, 0, time.UTC), want: StatusCurrent},
		{name: "inside window", now: time.Date(2026, 1, 16, 12, 0, 0, 0, time.UTC), want: StatusCurrent},
		{name: "end day late", now: time.Date(2026, 1, 17, 23, 59, 0, 0, time.UTC), want: StatusCurrent},
		{name: "day after end", now: day(2026, 1, 18), want: StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(g, tt.now))
			assert.Equal(t, tt.want, g.Status(tt.now))
		})
	}
}

func TestDeriveStatus_IgnoresTimeOfDayOnStoredDates(t *testing.T) {
	g := Gameweek{StartDate: time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC), EndDate: time.Date(2026, 3, 3, 6, 0, 0, 0, time.UTC)}

	assert.Equal(t, StatusCurrent, DeriveStatus(g, time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)))
	assert.Equal(t, StatusCurrent, DeriveStatus(g, time.Date(2026, 3, 3, 22, 0, 0, 0, time.UTC)))
}

func TestGameweek_Contains(t *testing.T) {
	g := Gameweek{StartDate: day(2026, 1, 15), EndDate: day(2026, 1, 17)}

	assert.True(t, g.Contains(time.Date(2026, 1, 15, 20, 0, 0, 0, time.UTC)))
	assert.True(t, g.Contains(time.Date(2026, 1, 17, 23, 0, 0, 0, time.UTC)))
	assert.False(t, g.Contains(day(2026, 1, 14)))
	assert.False(t, g.Contains(day(2026, 1, 20)))
}

func TestValidateDateRange(t *testing.T) {
	require.NoError(t, ValidateDateRange(day(2026, 1, 15), day(2026, 1, 16)))

	err := ValidateDateRange(day(2026, 1, 15), time.Date(2026, 1, 15, 22, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.Equal(t, "Start date must be before end date", err.Error())

	err = ValidateDateRange(day(2026, 1, 17), day(2026, 1, 15))
	require.Error(t, err)
	kind, ok := rule.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, rule.KindStructural, kind)
}

func TestValidateCreate(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		number  int
		start   time.Time
		end     time.Time
		wantErr string
	}{
		{name: "valid", number: 20, start: day(2026, 1, 15), end: day(2026, 1, 17)},
		{name: "zero number", number: 0, start: day(2026, 1, 15), end: day(2026, 1, 17), wantErr: "Gameweek number must be greater than zero"},
		{name: "number checked before dates", number: -1, start: day(2026, 1, 17), end: day(2026, 1, 15), wantErr: "Gameweek number must be greater than zero"},
		{name: "same day", number: 1, start: day(2026, 1, 15), end: day(2026, 1, 15), wantErr: "Start date must be before end date"},
		{name: "start exactly one year back", number: 1, start: day(2025, 1, 10), end: day(2025, 1, 12)},
		{name: "start too old", number: 1, start: day(2025, 1, 9), end: day(2025, 1, 12), wantErr: "Start date cannot be more than 1 year in the past"},
		{name: "end exactly two years ahead", number: 1, start: day(2028, 1, 1), end: day(2028, 1, 10)},
		{name: "end too far", number: 1, start: day(2028, 1, 1), end: day(2028, 1, 11), wantErr: "End date cannot be more than 2 years in the future"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreate(tt.number, tt.start, tt.end, now)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.ErrorIs(t, err, rule.ErrStructural)
		})
	}
}

func TestValidateCreate_IsRepeatable(t *testing.T) {
	now := day(2026, 1, 10)
	first := ValidateCreate(0, day(2026, 1, 15), day(2026, 1, 17), now)
	second := ValidateCreate(0, day(2026, 1, 15), day(2026, 1, 17), now)
	assert.Equal(t, first, second)
}

func TestValidateUnique(t *testing.T) {
	existing := []Gameweek{
		{ID: 7, Number: 7},
		{ID: 8, Number: 8},
	}

	require.NoError(t, ValidateUnique(9, existing, 0))
	require.NoError(t, ValidateUnique(7, existing, 7), "a round never conflicts with itself")

	err := ValidateUnique(8, existing, 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, rule.ErrConflict)
	assert.Equal(t, "Gameweek with number 8 already exists", err.Error())

	err = ValidateUnique(7, existing, 0)
	assert.ErrorIs(t, err, rule.ErrConflict)
}

func TestValidateDeletable(t *testing.T) {
	require.NoError(t, ValidateDeletable(3, 0))

	err := ValidateDeletable(3, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, rule.ErrConflict)
	assert.Equal(t, "Cannot delete gameweek with ID 3 because it has associated matches. Please delete matches first.", err.Error())
}

func TestParseStatus(t *testing.T) {
	got, ok := ParseStatus(" current ")
	require.True(t, ok)
	assert.Equal(t, StatusCurrent, got)

	_, ok = ParseStatus("live")
	assert.False(t, ok)
}
