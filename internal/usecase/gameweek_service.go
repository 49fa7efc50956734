package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-coach/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
	"github.com/riskibarqy/fantasy-coach/internal/domain/team"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
)

// GameweekInput is the payload for creating or replacing a round.
type GameweekInput struct {
	Number    int
	StartDate time.Time
	EndDate   time.Time
}

type GameweekService struct {
	gameweekRepo gameweek.Repository
	matchRepo    fixture.Repository
	teamRepo     team.Repository
	logger       *logging.Logger
	now          func() time.Time
}

func NewGameweekService(
	gameweekRepo gameweek.Repository,
	matchRepo fixture.Repository,
	teamRepo team.Repository,
	logger *logging.Logger,
) *GameweekService {
	if logger == nil {
		logger = logging.Default()
	}

	return &GameweekService{
		gameweekRepo: gameweekRepo,
		matchRepo:    matchRepo,
		teamRepo:     teamRepo,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *GameweekService) List(ctx context.Context, filter gameweek.Filter) ([]GameweekView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.List")
	defer span.End()

	items, err := s.gameweekRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gameweeks: %w", err)
	}

	now := s.now()
	filtered := filter.Apply(items, now)
	out := make([]GameweekView, 0, len(filtered))
	for _, item := range filtered {
		out = append(out, GameweekView{Gameweek: item, Status: item.Status(now)})
	}
	return out, nil
}

// Get returns the round with its status and a summary line per fixture.
func (s *GameweekService) Get(ctx context.Context, id int64) (GameweekDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.Get")
	defer span.End()

	if err := gameweek.ValidateID(id); err != nil {
		return GameweekDetail{}, err
	}
	item, err := s.load(ctx, id)
	if err != nil {
		return GameweekDetail{}, err
	}

	matches, err := s.matchRepo.ListByGameweek(ctx, id)
	if err != nil {
		return GameweekDetail{}, fmt.Errorf("list matches by gameweek: %w", err)
	}

	viewer := newMatchViewer(s.gameweekRepo, s.teamRepo)
	viewer.gwByID[item.ID] = GameweekRef{ID: item.ID, Number: item.Number}
	views, err := viewer.views(ctx, matches)
	if err != nil {
		return GameweekDetail{}, err
	}
	summaries := make([]MatchSummary, 0, len(views))
	for _, v := range views {
		summaries = append(summaries, MatchSummary{
			MatchID:      v.ID,
			HomeTeamName: displayName(v.HomeTeam),
			AwayTeamName: displayName(v.AwayTeam),
			HomeScore:    v.HomeScore,
			AwayScore:    v.AwayScore,
			MatchDate:    v.MatchDate,
			Status:       v.Status,
		})
	}

	return GameweekDetail{
		GameweekView: GameweekView{Gameweek: item, Status: item.Status(s.now())},
		Matches:      summaries,
	}, nil
}

func (s *GameweekService) Create(ctx context.Context, input GameweekInput) (GameweekView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.Create")
	defer span.End()

	now := s.now()
	if err := s.validate(ctx, 0, input, now); err != nil {
		logRejection(ctx, s.logger, "gameweek.create", err)
		return GameweekView{}, err
	}

	created, err := s.gameweekRepo.Create(ctx, gameweek.Gameweek{
		Number:    input.Number,
		StartDate: gameweek.DateOnly(input.StartDate),
		EndDate:   gameweek.DateOnly(input.EndDate),
	})
	if err != nil {
		return GameweekView{}, fmt.Errorf("create gameweek: %w", err)
	}

	s.logger.InfoContext(ctx, "gameweek created", "gameweek_id", created.ID, "number", created.Number)
	return GameweekView{Gameweek: created, Status: created.Status(now)}, nil
}

// Update replaces number and dates. The same rules as creation apply, and the
// round never conflicts with its own number.
func (s *GameweekService) Update(ctx context.Context, id int64, input GameweekInput) (GameweekView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.Update")
	defer span.End()

	if err := gameweek.ValidateID(id); err != nil {
		return GameweekView{}, err
	}
	if _, err := s.load(ctx, id); err != nil {
		return GameweekView{}, err
	}

	now := s.now()
	if err := s.validate(ctx, id, input, now); err != nil {
		logRejection(ctx, s.logger, "gameweek.update", err)
		return GameweekView{}, err
	}

	updated := gameweek.Gameweek{
		ID:        id,
		Number:    input.Number,
		StartDate: gameweek.DateOnly(input.StartDate),
		EndDate:   gameweek.DateOnly(input.EndDate),
	}
	if err := s.gameweekRepo.Update(ctx, updated); err != nil {
		return GameweekView{}, fmt.Errorf("update gameweek: %w", err)
	}

	s.logger.InfoContext(ctx, "gameweek updated", "gameweek_id", id, "number", updated.Number)
	return GameweekView{Gameweek: updated, Status: updated.Status(now)}, nil
}

// Delete refuses to remove a round that still owns fixtures.
func (s *GameweekService) Delete(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.Delete")
	defer span.End()

	if err := gameweek.ValidateID(id); err != nil {
		return err
	}
	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	count, err := s.matchRepo.CountByGameweek(ctx, id)
	if err != nil {
		return fmt.Errorf("count matches by gameweek: %w", err)
	}
	if err := gameweek.ValidateDeletable(id, count); err != nil {
		logRejection(ctx, s.logger, "gameweek.delete", err)
		return err
	}

	if err := s.gameweekRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete gameweek: %w", err)
	}
	s.logger.InfoContext(ctx, "gameweek deleted", "gameweek_id", id)
	return nil
}

func (s *GameweekService) validate(ctx context.Context, id int64, input GameweekInput, now time.Time) error {
	if err := gameweek.ValidateCreate(input.Number, input.StartDate, input.EndDate, now); err != nil {
		return err
	}

	same, exists, err := s.gameweekRepo.GetByNumber(ctx, input.Number)
	if err != nil {
		return fmt.Errorf("get gameweek by number: %w", err)
	}
	if !exists {
		return nil
	}
	return gameweek.ValidateUnique(input.Number, []gameweek.Gameweek{same}, id)
}

func (s *GameweekService) load(ctx context.Context, id int64) (gameweek.Gameweek, error) {
	item, exists, err := s.gameweekRepo.GetByID(ctx, id)
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("get gameweek by id: %w", err)
	}
	if !exists {
		return gameweek.Gameweek{}, rule.NotFound("id", "Gameweek with ID %d not found", id)
	}
	return item, nil
}

func displayName(ref TeamRef) string {
	if ref.Name == "" {
		return "Unknown"
	}
	return ref.Name
}
