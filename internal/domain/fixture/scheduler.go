package fixture

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/riskibarqy/fantasy-coach/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
	"github.com/riskibarqy/fantasy-coach/internal/domain/team"
)

const MaxRescheduleReasonLength = 500

// GameweekLookup resolves rounds by id.
type GameweekLookup interface {
	GetByID(ctx context.Context, id int64) (gameweek.Gameweek, bool, error)
}

// TeamLookup resolves teams by id.
type TeamLookup interface {
	GetByID(ctx context.Context, id int64) (team.Team, bool, error)
}

// DuplicateChecker reports whether the ordered (home, away) pair already plays in a gameweek.
type DuplicateChecker interface {
	ExistsBetween(ctx context.Context, homeTeamID, awayTeamID, gameweekID int64) (bool, error)
}

// Scheduler validates fixture commands against rounds, teams and existing fixtures.
// It holds no state of its own; uniqueness is a read-then-decide check and the
// store's unique index is what ultimately settles concurrent creates.
type Scheduler struct {
	gameweeks GameweekLookup
	teams     TeamLookup
	matches   DuplicateChecker
}

func NewScheduler(gameweeks GameweekLookup, teams TeamLookup, matches DuplicateChecker) *Scheduler {
	return &Scheduler{gameweeks: gameweeks, teams: teams, matches: matches}
}

// ValidateCreate runs the creation checks in order and returns the match ready to persist.
func (s *Scheduler) ValidateCreate(ctx context.Context, cmd CreateCommand) (Match, error) {
	if cmd.GameweekID <= 0 {
		return Match{}, rule.Structural("gameweekId", "GameweekId must be greater than zero")
	}
	if cmd.HomeTeamID <= 0 {
		return Match{}, rule.Structural("homeTeamId", "HomeTeamId must be greater than zero")
	}
	if cmd.AwayTeamID <= 0 {
		return Match{}, rule.Structural("awayTeamId", "AwayTeamId must be greater than zero")
	}
	status := cmd.Status
	if status == "" {
		status = StatusScheduled
	}
	if !status.Valid() {
		return Match{}, invalidStatus(status)
	}
	if cmd.HomeTeamID == cmd.AwayTeamID {
		return Match{}, sameTeams()
	}

	gw, err := s.requireGameweek(ctx, cmd.GameweekID)
	if err != nil {
		return Match{}, err
	}
	home, err := s.requireTeam(ctx, cmd.HomeTeamID, "Home")
	if err != nil {
		return Match{}, err
	}
	away, err := s.requireTeam(ctx, cmd.AwayTeamID, "Away")
	if err != nil {
		return Match{}, err
	}
	if err := team.ValidateActive(home, "Home"); err != nil {
		return Match{}, err
	}
	if err := team.ValidateActive(away, "Away"); err != nil {
		return Match{}, err
	}
	if err := validateWindow(gw, cmd); err != nil {
		return Match{}, err
	}
	if err := s.ensureNotScheduled(ctx, home, away, gw); err != nil {
		return Match{}, err
	}

	return Match{
		GameweekID: cmd.GameweekID,
		HomeTeamID: cmd.HomeTeamID,
		AwayTeamID: cmd.AwayTeamID,
		MatchDate:  cmd.MatchDate,
		Status:     status,
	}, nil
}

// ValidateUpdate checks only what the partial command touches, against the merged result.
func (s *Scheduler) ValidateUpdate(ctx context.Context, cmd UpdateCommand, existing Match) (Match, error) {
	if err := validateUpdateShape(cmd); err != nil {
		return Match{}, err
	}

	merged := Merge(existing, cmd)
	if merged.HomeTeamID == merged.AwayTeamID {
		return Match{}, sameTeams()
	}

	var gw gameweek.Gameweek
	gwResolved := false
	if cmd.GameweekID != nil || cmd.MatchDate != nil {
		resolved, err := s.requireGameweek(ctx, merged.GameweekID)
		if err != nil {
			return Match{}, err
		}
		if !resolved.Contains(merged.MatchDate) {
			return Match{}, outsideWindow(resolved)
		}
		gw, gwResolved = resolved, true
	}

	home, homeResolved, err := s.resolveChangedTeam(ctx, cmd.HomeTeamID, "Home")
	if err != nil {
		return Match{}, err
	}
	away, awayResolved, err := s.resolveChangedTeam(ctx, cmd.AwayTeamID, "Away")
	if err != nil {
		return Match{}, err
	}

	pairChanged := merged.GameweekID != existing.GameweekID ||
		merged.HomeTeamID != existing.HomeTeamID ||
		merged.AwayTeamID != existing.AwayTeamID
	if pairChanged {
		if !gwResolved {
			if gw, err = s.requireGameweek(ctx, merged.GameweekID); err != nil {
				return Match{}, err
			}
		}
		if !homeResolved {
			if home, err = s.requireTeam(ctx, merged.HomeTeamID, "Home"); err != nil {
				return Match{}, err
			}
		}
		if !awayResolved {
			if away, err = s.requireTeam(ctx, merged.AwayTeamID, "Away"); err != nil {
				return Match{}, err
			}
		}
		if err := s.ensureNotScheduled(ctx, home, away, gw); err != nil {
			return Match{}, err
		}
	}

	if cmd.touchesScores() && !merged.Status.AllowsScores() {
		return Match{}, rule.Conflict("status", "Scores can only be updated for live or finished matches")
	}

	return merged, nil
}

func validateUpdateShape(cmd UpdateCommand) error {
	if cmd.ID <= 0 {
		return rule.Structural("id", "Id must be greater than zero")
	}
	if cmd.GameweekID != nil && *cmd.GameweekID <= 0 {
		return rule.Structural("gameweekId", "GameweekId must be greater than zero")
	}
	if cmd.HomeTeamID != nil && *cmd.HomeTeamID <= 0 {
		return rule.Structural("homeTeamId", "HomeTeamId must be greater than zero")
	}
	if cmd.AwayTeamID != nil && *cmd.AwayTeamID <= 0 {
		return rule.Structural("awayTeamId", "AwayTeamId must be greater than zero")
	}
	if cmd.Status != nil && !cmd.Status.Valid() {
		return invalidStatus(*cmd.Status)
	}
	if cmd.HomeScore != nil && *cmd.HomeScore < 0 {
		return rule.Structural("homeScore", "Home score cannot be negative")
	}
	if cmd.AwayScore != nil && *cmd.AwayScore < 0 {
		return rule.Structural("awayScore", "Away score cannot be negative")
	}
	if cmd.RescheduleReason != nil && utf8.RuneCountInString(*cmd.RescheduleReason) > MaxRescheduleReasonLength {
		return rule.Structural("rescheduleReason", "Reschedule reason cannot exceed 500 characters")
	}
	return nil
}

func (s *Scheduler) resolveChangedTeam(ctx context.Context, id *int64, side string) (team.Team, bool, error) {
	if id == nil {
		return team.Team{}, false, nil
	}
	t, err := s.requireTeam(ctx, *id, side)
	if err != nil {
		return team.Team{}, false, err
	}
	if err := team.ValidateActive(t, side); err != nil {
		return team.Team{}, false, err
	}
	return t, true, nil
}

func (s *Scheduler) requireGameweek(ctx context.Context, id int64) (gameweek.Gameweek, error) {
	gw, exists, err := s.gameweeks.GetByID(ctx, id)
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("get gameweek %d: %w", id, err)
	}
	if !exists {
		return gameweek.Gameweek{}, rule.NotFound("gameweekId", "Gameweek with ID %d not found", id)
	}
	return gw, nil
}

func (s *Scheduler) requireTeam(ctx context.Context, id int64, side string) (team.Team, error) {
	t, exists, err := s.teams.GetByID(ctx, id)
	if err != nil {
		return team.Team{}, fmt.Errorf("get %s team %d: %w", side, id, err)
	}
	if !exists {
		return team.Team{}, rule.NotFound(fieldForSide(side), "%s team with ID %d not found", side, id)
	}
	return t, nil
}

func (s *Scheduler) ensureNotScheduled(ctx context.Context, home, away team.Team, gw gameweek.Gameweek) error {
	exists, err := s.matches.ExistsBetween(ctx, home.ID, away.ID, gw.ID)
	if err != nil {
		return fmt.Errorf("check existing match: %w", err)
	}
	if exists {
		return rule.Conflict("homeTeamId", "A match between %s and %s already exists in gameweek %d", home.Name, away.Name, gw.Number)
	}
	return nil
}

func validateWindow(gw gameweek.Gameweek, cmd CreateCommand) error {
	if !gw.Contains(cmd.MatchDate) {
		return outsideWindow(gw)
	}
	return nil
}

func outsideWindow(gw gameweek.Gameweek) *rule.Rejection {
	return rule.Conflict("matchDate", "Match date must be between %s and %s",
		gw.StartDate.UTC().Format(gameweek.DateLayout),
		gw.EndDate.UTC().Format(gameweek.DateLayout),
	)
}

func sameTeams() *rule.Rejection {
	return rule.Conflict("awayTeamId", "Home team and away team cannot be the same")
}

func invalidStatus(s Status) *rule.Rejection {
	return rule.Structural("status", "Status '%s' is not one of Scheduled, Live, Finished, Postponed, Cancelled", s)
}

func fieldForSide(side string) string {
	if side == "Home" {
		return "homeTeamId"
	}
	return "awayTeamId"
}
