package playerstats

import (
	"errors"
	"fmt"
	"time"
)

const DefaultHealthStatus = "Pewny"

// Health statuses the data provider uses. Other values are stored as given.
const (
	HealthAvailable = "Pewny"
	HealthInjured   = "Kontuzjowany"
	HealthDoubtful  = "Wątpliwy"
	HealthSuspended = "Zawieszony"
)

// ErrStorage marks a failure of the batch upsert itself, as opposed to a bad row.
var ErrStorage = errors.New("player stats storage unavailable")

// Record is one validated performance line for a player, optionally tied to a match.
type Record struct {
	ID              int64
	PlayerID        int64
	MatchID         *int64
	FantasyPoints   int
	MinutesPlayed   int
	Goals           int
	Assists         int
	YellowCards     int
	RedCards        int
	Saves           int
	PenaltiesSaved  int
	PenaltiesWon    int
	PenaltiesScored int
	PenaltiesCaused int
	PenaltiesMissed int
	LottoAssists    int
	OwnGoals        int
	InTeamOfWeek    bool
	Price           float64
	PredictedStart  bool
	HealthStatus    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Key is the natural upsert key.
type Key struct {
	PlayerID int64
	MatchID  int64 // 0 when the record carries no match
}

func (r Record) Key() Key {
	k := Key{PlayerID: r.PlayerID}
	if r.MatchID != nil {
		k.MatchID = *r.MatchID
	}
	return k
}

// RawRow is one tokenized import line keyed by lower-cased column name.
type RawRow map[string]string

// RowError is a per-row import failure. It never aborts the surrounding batch.
type RowError struct {
	Row    int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("Row %d: %s", e.Row, e.Reason)
}

// ImportSummary is the outcome of one import batch.
type ImportSummary struct {
	BatchID       string
	Success       bool
	ImportedCount int
	SkippedCount  int
	Errors        []string
	// StoreErr is the upsert failure behind a failed batch, nil otherwise.
	StoreErr error
}

// SortField names the orderings a stats listing accepts.
type SortField string

const (
	SortByFantasyPoints SortField = "fantasy_points"
	SortByPrice         SortField = "price"
	SortByMinutesPlayed SortField = "minutes_played"
	SortByGoals         SortField = "goals"
	SortByAssists       SortField = "assists"
)

// Filter narrows a stats listing. Zero ids mean "any".
type Filter struct {
	MatchID    int64
	PlayerID   int64
	Sort       SortField
	Descending bool
	Page       int
	Limit      int
}
