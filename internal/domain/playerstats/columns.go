package playerstats

import (
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
)

const (
	ColPlayerID        = "player_id"
	ColMatchID         = "match_id"
	ColFantasyPoints   = "fantasy_points"
	ColMinutesPlayed   = "minutes_played"
	ColGoals           = "goals"
	ColAssists         = "assists"
	ColYellowCards     = "yellow_cards"
	ColRedCards        = "red_cards"
	ColSaves           = "saves"
	ColPenaltiesSaved  = "penalties_saved"
	ColPenaltiesWon    = "penalties_won"
	ColPenaltiesScored = "penalties_scored"
	ColPenaltiesCaused = "penalties_caused"
	ColPenaltiesMissed = "penalties_missed"
	ColLottoAssists    = "lotto_assists"
	ColOwnGoals        = "own_goals"
	ColInTeamOfWeek    = "in_team_of_week"
	ColPrice           = "price"
	ColPredictedStart  = "predicted_start"
	ColHealthStatus    = "health_status"
)

// RequiredColumns must be present in every import header and every row.
var RequiredColumns = []string{ColPlayerID, ColFantasyPoints, ColMinutesPlayed, ColPrice}

var countColumns = []string{
	ColGoals, ColAssists, ColYellowCards, ColRedCards, ColSaves,
	ColPenaltiesSaved, ColPenaltiesWon, ColPenaltiesScored, ColPenaltiesCaused,
	ColPenaltiesMissed, ColLottoAssists, ColOwnGoals,
}

var knownColumns = func() map[string]struct{} {
	out := map[string]struct{}{
		ColPlayerID: {}, ColMatchID: {}, ColFantasyPoints: {}, ColMinutesPlayed: {},
		ColInTeamOfWeek: {}, ColPrice: {}, ColPredictedStart: {}, ColHealthStatus: {},
	}
	for _, c := range countColumns {
		out[c] = struct{}{}
	}
	return out
}()

// IsKnownColumn reports whether name is part of the import format.
func IsKnownColumn(name string) bool {
	_, ok := knownColumns[name]
	return ok
}

// NormalizeColumn lower-cases and trims a header cell.
func NormalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
}

// ValidateHeader rejects a whole file whose header is missing required columns,
// repeats a column or carries columns the format does not know.
func ValidateHeader(header []string) error {
	if len(header) == 0 {
		return rule.Structural("file", "CSV file has no header row")
	}

	seen := make(map[string]struct{}, len(header))
	for _, raw := range header {
		col := NormalizeColumn(raw)
		if col == "" {
			return rule.Structural("file", "CSV header contains an empty column name")
		}
		if !IsKnownColumn(col) {
			return rule.Structural("file", "Unknown column in CSV header: %s", col)
		}
		if _, dup := seen[col]; dup {
			return rule.Structural("file", "Duplicate column in CSV header: %s", col)
		}
		seen[col] = struct{}{}
	}
	for _, col := range RequiredColumns {
		if _, ok := seen[col]; !ok {
			return rule.Structural("file", "Missing required column in CSV header: %s", col)
		}
	}
	return nil
}
