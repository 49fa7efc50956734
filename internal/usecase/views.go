package usecase

import (
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-coach/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-coach/internal/domain/paging"
	"github.com/riskibarqy/fantasy-coach/internal/domain/playerstats"
)

// GameweekView is a round with its status derived at read time.
type GameweekView struct {
	gameweek.Gameweek
	Status gameweek.Status
}

// GameweekDetail adds the round's fixtures to the view.
type GameweekDetail struct {
	GameweekView
	Matches []MatchSummary
}

type MatchSummary struct {
	MatchID      int64
	HomeTeamName string
	AwayTeamName string
	HomeScore    *int
	AwayScore    *int
	MatchDate    time.Time
	Status       fixture.Status
}

type TeamRef struct {
	ID        int64
	Name      string
	ShortCode string
	CrestURL  string
	IsActive  bool
}

type GameweekRef struct {
	ID     int64
	Number int
}

// MatchView is a match joined with its round and both teams.
type MatchView struct {
	fixture.Match
	Gameweek GameweekRef
	HomeTeam TeamRef
	AwayTeam TeamRef
}

type MatchPage struct {
	Items []MatchView
	Page  paging.Result
}

type PlayerStatsPage struct {
	Items []playerstats.Record
	Page  paging.Result
}
