package playerstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRow() RawRow {
	return RawRow{
		ColPlayerID:      "17",
		ColMatchID:       "4",
		ColFantasyPoints: "12",
		ColMinutesPlayed: "90",
		ColPrice:         "6.5",
		ColGoals:         "1",
		ColAssists:       "2",
		ColInTeamOfWeek:  "true",
		ColHealthStatus:  "Kontuzjowany",
	}
}

func TestValidateRecord_Valid(t *testing.T) {
	rec, err := ValidateRecord(1, validRow())
	require.NoError(t, err)

	assert.Equal(t, int64(17), rec.PlayerID)
	require.NotNil(t, rec.MatchID)
	assert.Equal(t, int64(4), *rec.MatchID)
	assert.Equal(t, 12, rec.FantasyPoints)
	assert.Equal(t, 90, rec.MinutesPlayed)
	assert.InDelta(t, 6.5, rec.Price, 0.0001)
	assert.Equal(t, 1, rec.Goals)
	assert.Equal(t, 2, rec.Assists)
	assert.True(t, rec.InTeamOfWeek)
	assert.False(t, rec.PredictedStart)
	assert.Equal(t, HealthInjured, rec.HealthStatus)
}

func TestValidateRecord_Defaults(t *testing.T) {
	rec, err := ValidateRecord(1, RawRow{
		ColPlayerID:      "3",
		ColFantasyPoints: "0",
		ColMinutesPlayed: "0",
		ColPrice:         "4",
		ColMatchID:       "",
		ColHealthStatus:  "  ",
	})
	require.NoError(t, err)

	assert.Nil(t, rec.MatchID, "empty match_id means no match")
	assert.Equal(t, DefaultHealthStatus, rec.HealthStatus)
	assert.Zero(t, rec.Goals)
	assert.False(t, rec.InTeamOfWeek)
}

func TestValidateRecord_ClampsNegativeCounts(t *testing.T) {
	row := validRow()
	row[ColGoals] = "-2"
	row[ColOwnGoals] = "-1"
	row[ColSaves] = "3"

	rec, err := ValidateRecord(1, row)
	require.NoError(t, err)
	assert.Zero(t, rec.Goals)
	assert.Zero(t, rec.OwnGoals)
	assert.Equal(t, 3, rec.Saves)
}

func TestValidateRecord_RowErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(RawRow)
		want   string
	}{
		{name: "missing player", mutate: func(r RawRow) { delete(r, ColPlayerID) }, want: "Row 7: Missing required field: player_id"},
		{name: "blank price", mutate: func(r RawRow) { r[ColPrice] = " " }, want: "Row 7: Missing required field: price"},
		{name: "malformed points", mutate: func(r RawRow) { r[ColFantasyPoints] = "ten" }, want: "Row 7: Invalid fantasy_points value (ten), must be a whole number"},
		{name: "points too high", mutate: func(r RawRow) { r[ColFantasyPoints] = "150" }, want: "Row 7: Invalid fantasy_points value (150), must be 0-100"},
		{name: "points negative", mutate: func(r RawRow) { r[ColFantasyPoints] = "-1" }, want: "Row 7: Invalid fantasy_points value (-1), must be 0-100"},
		{name: "minutes too high", mutate: func(r RawRow) { r[ColMinutesPlayed] = "121" }, want: "Row 7: Invalid minutes_played value (121), must be 0-120"},
		{name: "player zero", mutate: func(r RawRow) { r[ColPlayerID] = "0" }, want: "Row 7: Invalid player_id value (0), must be greater than 0"},
		{name: "negative price", mutate: func(r RawRow) { r[ColPrice] = "-0.5" }, want: "Row 7: Invalid price value (-0.5), must be 0 or greater"},
		{name: "bad match", mutate: func(r RawRow) { r[ColMatchID] = "x1" }, want: "Row 7: Invalid match_id value (x1), must be a positive whole number"},
		{name: "bad count", mutate: func(r RawRow) { r[ColAssists] = "1.5" }, want: "Row 7: Invalid assists value (1.5), must be a whole number"},
		{name: "bad bool", mutate: func(r RawRow) { r[ColPredictedStart] = "maybe" }, want: "Row 7: Invalid predicted_start value (maybe), must be true or false"},
		{name: "unknown field", mutate: func(r RawRow) { r["column_21"] = "x" }, want: "Row 7: Unexpected field: column_21"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := validRow()
			tt.mutate(row)

			_, err := ValidateRecord(7, row)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())

			var rowErr *RowError
			require.ErrorAs(t, err, &rowErr)
			assert.Equal(t, 7, rowErr.Row)
		})
	}
}

func TestValidateRecord_BoolSpellings(t *testing.T) {
	for raw, want := range map[string]bool{"1": true, "TRUE": true, "yes": true, "0": false, "no": false, "False": false} {
		row := validRow()
		row[ColPredictedStart] = raw
		rec, err := ValidateRecord(1, row)
		require.NoError(t, err, raw)
		assert.Equal(t, want, rec.PredictedStart, raw)
	}
}

func TestValidateHeader(t *testing.T) {
	require.NoError(t, ValidateHeader([]string{"\ufeffPlayer_ID", "fantasy_points", " minutes_played ", "price", "goals"}))

	tests := []struct {
		name   string
		header []string
		want   string
	}{
		{name: "empty", header: nil, want: "CSV file has no header row"},
		{name: "missing required", header: []string{"player_id", "fantasy_points", "price"}, want: "Missing required column in CSV header: minutes_played"},
		{name: "unknown", header: []string{"player_id", "fantasy_points", "minutes_played", "price", "xg"}, want: "Unknown column in CSV header: xg"},
		{name: "duplicate", header: []string{"player_id", "price", "fantasy_points", "minutes_played", "price"}, want: "Duplicate column in CSV header: price"},
		{name: "blank", header: []string{"player_id", "", "price"}, want: "CSV header contains an empty column name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHeader(tt.header)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestNormalizeFilter(t *testing.T) {
	f, err := NormalizeFilter(Filter{Limit: 500, Page: 0})
	require.NoError(t, err)
	assert.Equal(t, 100, f.Limit)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, SortByFantasyPoints, f.Sort)

	f, err = NormalizeFilter(Filter{Limit: 0, Page: 3})
	require.NoError(t, err)
	assert.Equal(t, 50, f.Limit)
	assert.Equal(t, 3, f.Page)

	_, err = NormalizeFilter(Filter{MatchID: -1})
	assert.EqualError(t, err, "MatchId must be greater than 0")
}

func TestParseSort(t *testing.T) {
	got, err := ParseSort("Goals")
	require.NoError(t, err)
	assert.Equal(t, SortByGoals, got)

	_, err = ParseSort("form")
	assert.Error(t, err)
}
