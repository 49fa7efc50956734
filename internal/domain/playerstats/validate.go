package playerstats

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	MaxFantasyPoints = 100
	MaxMinutesPlayed = 120
)

// ValidateRecord turns one raw row into a Record, or a *RowError naming the
// offending field and value. rowNumber is only used for the message.
//
// Negative counting fields are clamped to zero rather than rejected.
func ValidateRecord(rowNumber int, row RawRow) (Record, error) {
	fail := func(format string, args ...any) (Record, error) {
		return Record{}, &RowError{Row: rowNumber, Reason: fmt.Sprintf(format, args...)}
	}

	if unknown := unknownFields(row); len(unknown) > 0 {
		return fail("Unexpected field: %s", strings.Join(unknown, ", "))
	}

	playerID, err := requiredInt(row, ColPlayerID)
	if err != nil {
		return fail("%s", err.Error())
	}
	fantasyPoints, err := requiredInt(row, ColFantasyPoints)
	if err != nil {
		return fail("%s", err.Error())
	}
	minutesPlayed, err := requiredInt(row, ColMinutesPlayed)
	if err != nil {
		return fail("%s", err.Error())
	}
	price, err := requiredFloat(row, ColPrice)
	if err != nil {
		return fail("%s", err.Error())
	}

	if playerID <= 0 {
		return fail("Invalid %s value (%d), must be greater than 0", ColPlayerID, playerID)
	}
	if fantasyPoints < 0 || fantasyPoints > MaxFantasyPoints {
		return fail("Invalid %s value (%d), must be 0-%d", ColFantasyPoints, fantasyPoints, MaxFantasyPoints)
	}
	if minutesPlayed < 0 || minutesPlayed > MaxMinutesPlayed {
		return fail("Invalid %s value (%d), must be 0-%d", ColMinutesPlayed, minutesPlayed, MaxMinutesPlayed)
	}
	if price < 0 {
		return fail("Invalid %s value (%s), must be 0 or greater", ColPrice, strings.TrimSpace(row[ColPrice]))
	}

	rec := Record{
		PlayerID:      int64(playerID),
		FantasyPoints: fantasyPoints,
		MinutesPlayed: minutesPlayed,
		Price:         price,
		HealthStatus:  DefaultHealthStatus,
	}

	if raw := strings.TrimSpace(row[ColMatchID]); raw != "" {
		matchID, convErr := strconv.ParseInt(raw, 10, 64)
		if convErr != nil || matchID <= 0 {
			return fail("Invalid %s value (%s), must be a positive whole number", ColMatchID, raw)
		}
		rec.MatchID = &matchID
	}

	counts := make(map[string]int, len(countColumns))
	for _, col := range countColumns {
		v, convErr := optionalCount(row, col)
		if convErr != nil {
			return fail("%s", convErr.Error())
		}
		counts[col] = v
	}
	rec.Goals = counts[ColGoals]
	rec.Assists = counts[ColAssists]
	rec.YellowCards = counts[ColYellowCards]
	rec.RedCards = counts[ColRedCards]
	rec.Saves = counts[ColSaves]
	rec.PenaltiesSaved = counts[ColPenaltiesSaved]
	rec.PenaltiesWon = counts[ColPenaltiesWon]
	rec.PenaltiesScored = counts[ColPenaltiesScored]
	rec.PenaltiesCaused = counts[ColPenaltiesCaused]
	rec.PenaltiesMissed = counts[ColPenaltiesMissed]
	rec.LottoAssists = counts[ColLottoAssists]
	rec.OwnGoals = counts[ColOwnGoals]

	if rec.InTeamOfWeek, err = optionalBool(row, ColInTeamOfWeek); err != nil {
		return fail("%s", err.Error())
	}
	if rec.PredictedStart, err = optionalBool(row, ColPredictedStart); err != nil {
		return fail("%s", err.Error())
	}
	if hs := strings.TrimSpace(row[ColHealthStatus]); hs != "" {
		rec.HealthStatus = hs
	}

	return rec, nil
}

func unknownFields(row RawRow) []string {
	var out []string
	for key := range row {
		if !IsKnownColumn(key) {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

func requiredInt(row RawRow, col string) (int, error) {
	raw, ok := row[col]
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return 0, fmt.Errorf("Missing required field: %s", col)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("Invalid %s value (%s), must be a whole number", col, raw)
	}
	return v, nil
}

func requiredFloat(row RawRow, col string) (float64, error) {
	raw, ok := row[col]
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return 0, fmt.Errorf("Missing required field: %s", col)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("Invalid %s value (%s), must be a number", col, raw)
	}
	return v, nil
}

func optionalCount(row RawRow, col string) (int, error) {
	raw := strings.TrimSpace(row[col])
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("Invalid %s value (%s), must be a whole number", col, raw)
	}
	if v < 0 {
		return 0, nil
	}
	return v, nil
}

func optionalBool(row RawRow, col string) (bool, error) {
	raw := strings.TrimSpace(row[col])
	if raw == "" {
		return false, nil
	}
	switch strings.ToLower(raw) {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("Invalid %s value (%s), must be true or false", col, raw)
	}
	return v, nil
}
