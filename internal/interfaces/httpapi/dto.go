package httpapi

import (
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/domain/paging"
	"github.com/riskibarqy/fantasy-coach/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-coach/internal/domain/team"
	"github.com/riskibarqy/fantasy-coach/internal/usecase"
)

type gameweekRequest struct {
	Number    int    `json:"number"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
}

type teamRequest struct {
	Name      string `json:"name"`
	ShortCode string `json:"shortCode"`
	CrestURL  string `json:"crestUrl"`
	IsActive  *bool  `json:"isActive"`
}

type createMatchRequest struct {
	GameweekID int64      `json:"gameweekId"`
	HomeTeamID int64      `json:"homeTeamId"`
	AwayTeamID int64      `json:"awayTeamId"`
	MatchDate  *time.Time `json:"matchDate" validate:"required"`
	Status     string     `json:"status"`
}

// updateMatchRequest treats a missing key and an explicit null the same way:
// the stored value is kept.
type updateMatchRequest struct {
	GameweekID            *int64     `json:"gameweekId"`
	HomeTeamID            *int64     `json:"homeTeamId"`
	AwayTeamID            *int64     `json:"awayTeamId"`
	MatchDate             *time.Time `json:"matchDate"`
	Status                *string    `json:"status"`
	HomeScore             *int       `json:"homeScore"`
	AwayScore             *int       `json:"awayScore"`
	RescheduleReason      *string    `json:"rescheduleReason"`
	ClearRescheduleReason bool       `json:"clearRescheduleReason"`
}

type gameweekDTO struct {
	ID        int64  `json:"id"`
	Number    int    `json:"number"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Status    string `json:"status"`
}

type gameweekDetailDTO struct {
	gameweekDTO
	Matches []matchSummaryDTO `json:"matches"`
}

type matchSummaryDTO struct {
	MatchID      int64     `json:"matchId"`
	HomeTeamName string    `json:"homeTeamName"`
	AwayTeamName string    `json:"awayTeamName"`
	HomeScore    *int      `json:"homeScore"`
	AwayScore    *int      `json:"awayScore"`
	MatchDate    time.Time `json:"matchDate"`
	Status       string    `json:"status"`
}

type teamDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortCode string `json:"shortCode"`
	CrestURL  string `json:"crestUrl,omitempty"`
	IsActive  bool   `json:"isActive"`
}

type gameweekRefDTO struct {
	ID     int64 `json:"id"`
	Number int   `json:"number"`
}

type matchDTO struct {
	ID               int64          `json:"id"`
	Gameweek         gameweekRefDTO `json:"gameweek"`
	HomeTeam         teamDTO        `json:"homeTeam"`
	AwayTeam         teamDTO        `json:"awayTeam"`
	MatchDate        time.Time      `json:"matchDate"`
	Status           string         `json:"status"`
	HomeScore        *int           `json:"homeScore"`
	AwayScore        *int           `json:"awayScore"`
	RescheduleReason *string        `json:"rescheduleReason"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

type paginationDTO struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type pageDTO[T any] struct {
	Items      []T           `json:"items"`
	Pagination paginationDTO `json:"pagination"`
}

type playerStatsDTO struct {
	ID              int64   `json:"id"`
	PlayerID        int64   `json:"playerId"`
	MatchID         *int64  `json:"matchId"`
	FantasyPoints   int     `json:"fantasyPoints"`
	MinutesPlayed   int     `json:"minutesPlayed"`
	Goals           int     `json:"goals"`
	Assists         int     `json:"assists"`
	YellowCards     int     `json:"yellowCards"`
	RedCards        int     `json:"redCards"`
	Saves           int     `json:"saves"`
	PenaltiesSaved  int     `json:"penaltiesSaved"`
	PenaltiesWon    int     `json:"penaltiesWon"`
	PenaltiesScored int     `json:"penaltiesScored"`
	PenaltiesCaused int     `json:"penaltiesCaused"`
	PenaltiesMissed int     `json:"penaltiesMissed"`
	LottoAssists    int     `json:"lottoAssists"`
	OwnGoals        int     `json:"ownGoals"`
	InTeamOfWeek    bool    `json:"inTeamOfWeek"`
	Price           float64 `json:"price"`
	PredictedStart  bool    `json:"predictedStart"`
	HealthStatus    string  `json:"healthStatus"`
}

type importSummaryDTO struct {
	BatchID       string   `json:"batchId"`
	Success       bool     `json:"success"`
	ImportedCount int      `json:"importedCount"`
	SkippedCount  int      `json:"skippedCount"`
	Errors        []string `json:"errors"`
}

func gameweekToDTO(v usecase.GameweekView) gameweekDTO {
	return gameweekDTO{
		ID:        v.ID,
		Number:    v.Number,
		StartDate: v.StartDate.Format(dateLayout),
		EndDate:   v.EndDate.Format(dateLayout),
		Status:    string(v.Status),
	}
}

func gameweekDetailToDTO(v usecase.GameweekDetail) gameweekDetailDTO {
	matches := make([]matchSummaryDTO, 0, len(v.Matches))
	for _, m := range v.Matches {
		matches = append(matches, matchSummaryDTO{
			MatchID:      m.MatchID,
			HomeTeamName: m.HomeTeamName,
			AwayTeamName: m.AwayTeamName,
			HomeScore:    m.HomeScore,
			AwayScore:    m.AwayScore,
			MatchDate:    m.MatchDate,
			Status:       string(m.Status),
		})
	}
	return gameweekDetailDTO{gameweekDTO: gameweekToDTO(v.GameweekView), Matches: matches}
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{ID: t.ID, Name: t.Name, ShortCode: t.ShortCode, CrestURL: t.CrestURL, IsActive: t.IsActive}
}

func teamRefToDTO(t usecase.TeamRef) teamDTO {
	return teamDTO{ID: t.ID, Name: t.Name, ShortCode: t.ShortCode, CrestURL: t.CrestURL, IsActive: t.IsActive}
}

func matchToDTO(v usecase.MatchView) matchDTO {
	return matchDTO{
		ID:               v.ID,
		Gameweek:         gameweekRefDTO{ID: v.Gameweek.ID, Number: v.Gameweek.Number},
		HomeTeam:         teamRefToDTO(v.HomeTeam),
		AwayTeam:         teamRefToDTO(v.AwayTeam),
		MatchDate:        v.MatchDate,
		Status:           string(v.Status),
		HomeScore:        v.HomeScore,
		AwayScore:        v.AwayScore,
		RescheduleReason: v.RescheduleReason,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

func paginationToDTO(p paging.Result) paginationDTO {
	return paginationDTO{Page: p.Page, Limit: p.Limit, Total: p.Total, TotalPages: p.TotalPages}
}

func playerStatsToDTO(r playerstats.Record) playerStatsDTO {
	return playerStatsDTO{
		ID:              r.ID,
		PlayerID:        r.PlayerID,
		MatchID:         r.MatchID,
		FantasyPoints:   r.FantasyPoints,
		MinutesPlayed:   r.MinutesPlayed,
		Goals:           r.Goals,
		Assists:         r.Assists,
		YellowCards:     r.YellowCards,
		RedCards:        r.RedCards,
		Saves:           r.Saves,
		PenaltiesSaved:  r.PenaltiesSaved,
		PenaltiesWon:    r.PenaltiesWon,
		PenaltiesScored: r.PenaltiesScored,
		PenaltiesCaused: r.PenaltiesCaused,
		PenaltiesMissed: r.PenaltiesMissed,
		LottoAssists:    r.LottoAssists,
		OwnGoals:        r.OwnGoals,
		InTeamOfWeek:    r.InTeamOfWeek,
		Price:           r.Price,
		PredictedStart:  r.PredictedStart,
		HealthStatus:    r.HealthStatus,
	}
}

func importSummaryToDTO(s playerstats.ImportSummary) importSummaryDTO {
	errs := s.Errors
	if errs == nil {
		errs = []string{}
	}
	return importSummaryDTO{
		BatchID:       s.BatchID,
		Success:       s.Success,
		ImportedCount: s.ImportedCount,
		SkippedCount:  s.SkippedCount,
		Errors:        errs,
	}
}
