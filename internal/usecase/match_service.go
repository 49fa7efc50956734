package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-coach/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-coach/internal/domain/paging"
	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
	"github.com/riskibarqy/fantasy-coach/internal/domain/team"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
)

type MatchService struct {
	matchRepo    fixture.Repository
	gameweekRepo gameweek.Repository
	teamRepo     team.Repository
	scheduler    *fixture.Scheduler
	logger       *logging.Logger
	now          func() time.Time
}

func NewMatchService(
	matchRepo fixture.Repository,
	gameweekRepo gameweek.Repository,
	teamRepo team.Repository,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		matchRepo:    matchRepo,
		gameweekRepo: gameweekRepo,
		teamRepo:     teamRepo,
		scheduler:    fixture.NewScheduler(gameweekRepo, teamRepo, matchRepo),
		logger:       logger,
		now:          time.Now,
	}
}

func (s *MatchService) List(ctx context.Context, filter fixture.Filter) (MatchPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	if err := fixture.ValidateFilter(filter); err != nil {
		return MatchPage{}, err
	}
	if filter.Sort == "" {
		filter.Sort = fixture.SortByMatchDate
	}

	items, total, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return MatchPage{}, fmt.Errorf("list matches: %w", err)
	}

	views, err := newMatchViewer(s.gameweekRepo, s.teamRepo).views(ctx, items)
	if err != nil {
		return MatchPage{}, err
	}
	return MatchPage{Items: views, Page: paging.NewResult(filter.PageRequest(), total)}, nil
}

func (s *MatchService) Get(ctx context.Context, id int64) (MatchView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get")
	defer span.End()

	if id <= 0 {
		return MatchView{}, rule.Structural("id", "Id must be greater than zero")
	}
	item, err := s.load(ctx, id)
	if err != nil {
		return MatchView{}, err
	}
	return newMatchViewer(s.gameweekRepo, s.teamRepo).view(ctx, item)
}

// Create schedules a fixture after every scheduling rule has passed.
func (s *MatchService) Create(ctx context.Context, cmd fixture.CreateCommand) (MatchView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Create")
	defer span.End()

	item, err := s.scheduler.ValidateCreate(ctx, cmd)
	if err != nil {
		logRejection(ctx, s.logger, "match.create", err)
		return MatchView{}, err
	}

	now := s.now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	created, err := s.matchRepo.Create(ctx, item)
	if err != nil {
		return MatchView{}, fmt.Errorf("create match: %w", err)
	}
	s.logger.InfoContext(ctx, "match created",
		"match_id", created.ID,
		"gameweek_id", created.GameweekID,
		"home_team_id", created.HomeTeamID,
		"away_team_id", created.AwayTeamID,
	)
	return newMatchViewer(s.gameweekRepo, s.teamRepo).view(ctx, created)
}

// Update applies a partial command. Only supplied fields are re-validated.
func (s *MatchService) Update(ctx context.Context, cmd fixture.UpdateCommand) (MatchView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Update")
	defer span.End()

	if cmd.ID <= 0 {
		return MatchView{}, rule.Structural("id", "Id must be greater than zero")
	}
	existing, err := s.load(ctx, cmd.ID)
	if err != nil {
		return MatchView{}, err
	}

	merged, err := s.scheduler.ValidateUpdate(ctx, cmd, existing)
	if err != nil {
		logRejection(ctx, s.logger, "match.update", err)
		return MatchView{}, err
	}
	merged.UpdatedAt = s.now().UTC()

	if err := s.matchRepo.Update(ctx, merged); err != nil {
		return MatchView{}, fmt.Errorf("update match: %w", err)
	}
	s.logger.InfoContext(ctx, "match updated", "match_id", merged.ID, "status", string(merged.Status))
	return newMatchViewer(s.gameweekRepo, s.teamRepo).view(ctx, merged)
}

func (s *MatchService) load(ctx context.Context, id int64) (fixture.Match, error) {
	item, exists, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return fixture.Match{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return fixture.Match{}, rule.NotFound("id", "Match with ID %d not found", id)
	}
	return item, nil
}

// matchViewer joins matches with their round and teams, resolving each id once.
type matchViewer struct {
	gameweeks fixture.GameweekLookup
	teams     fixture.TeamLookup
	gwByID    map[int64]GameweekRef
	teamByID  map[int64]TeamRef
}

func newMatchViewer(gameweeks fixture.GameweekLookup, teams fixture.TeamLookup) *matchViewer {
	return &matchViewer{
		gameweeks: gameweeks,
		teams:     teams,
		gwByID:    make(map[int64]GameweekRef),
		teamByID:  make(map[int64]TeamRef),
	}
}

func (v *matchViewer) views(ctx context.Context, items []fixture.Match) ([]MatchView, error) {
	out := make([]MatchView, 0, len(items))
	for _, item := range items {
		view, err := v.view(ctx, item)
		if err != nil {
			return nil, err
		}
		out = append(out, view)
	}
	return out, nil
}

func (v *matchViewer) view(ctx context.Context, item fixture.Match) (MatchView, error) {
	gw, err := v.gameweek(ctx, item.GameweekID)
	if err != nil {
		return MatchView{}, err
	}
	home, err := v.team(ctx, item.HomeTeamID)
	if err != nil {
		return MatchView{}, err
	}
	away, err := v.team(ctx, item.AwayTeamID)
	if err != nil {
		return MatchView{}, err
	}
	return MatchView{Match: item, Gameweek: gw, HomeTeam: home, AwayTeam: away}, nil
}

func (v *matchViewer) gameweek(ctx context.Context, id int64) (GameweekRef, error) {
	if ref, ok := v.gwByID[id]; ok {
		return ref, nil
	}
	gw, exists, err := v.gameweeks.GetByID(ctx, id)
	if err != nil {
		return GameweekRef{}, fmt.Errorf("get gameweek by id: %w", err)
	}
	ref := GameweekRef{ID: id}
	if exists {
		ref.Number = gw.Number
	}
	v.gwByID[id] = ref
	return ref, nil
}

func (v *matchViewer) team(ctx context.Context, id int64) (TeamRef, error) {
	if ref, ok := v.teamByID[id]; ok {
		return ref, nil
	}
	t, exists, err := v.teams.GetByID(ctx, id)
	if err != nil {
		return TeamRef{}, fmt.Errorf("get team by id: %w", err)
	}
	ref := TeamRef{ID: id}
	if exists {
		ref = TeamRef{ID: t.ID, Name: t.Name, ShortCode: t.ShortCode, CrestURL: t.CrestURL, IsActive: t.IsActive}
	}
	v.teamByID[id] = ref
	return ref, nil
}
