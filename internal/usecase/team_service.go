package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
	"github.com/riskibarqy/fantasy-coach/internal/domain/team"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
)

// TeamInput is the payload for creating or replacing a team. A nil IsActive
// means active on create and unchanged on update.
type TeamInput struct {
	Name      string
	ShortCode string
	CrestURL  string
	IsActive  *bool
}

type TeamService struct {
	teamRepo team.Repository
	logger   *logging.Logger
}

func NewTeamService(teamRepo team.Repository, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamService{teamRepo: teamRepo, logger: logger}
}

func (s *TeamService) List(ctx context.Context, filter team.Filter) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	items, err := s.teamRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

func (s *TeamService) Get(ctx context.Context, id int64) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Get")
	defer span.End()

	if id <= 0 {
		return team.Team{}, rule.Structural("id", "ID must be greater than 0")
	}
	return s.load(ctx, id)
}

func (s *TeamService) Create(ctx context.Context, input TeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	input = trimTeamInput(input)
	if err := s.validate(ctx, 0, input); err != nil {
		logRejection(ctx, s.logger, "team.create", err)
		return team.Team{}, err
	}

	item := team.Team{
		Name:      input.Name,
		ShortCode: input.ShortCode,
		CrestURL:  input.CrestURL,
		IsActive:  true,
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	created, err := s.teamRepo.Create(ctx, item)
	if err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}
	s.logger.InfoContext(ctx, "team created", "team_id", created.ID, "short_code", created.ShortCode)
	return created, nil
}

func (s *TeamService) Update(ctx context.Context, id int64, input TeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Update")
	defer span.End()

	if id <= 0 {
		return team.Team{}, rule.Structural("id", "ID must be greater than 0")
	}
	existing, err := s.load(ctx, id)
	if err != nil {
		return team.Team{}, err
	}

	input = trimTeamInput(input)
	if err := s.validate(ctx, id, input); err != nil {
		logRejection(ctx, s.logger, "team.update", err)
		return team.Team{}, err
	}

	updated := team.Team{
		ID:        id,
		Name:      input.Name,
		ShortCode: input.ShortCode,
		CrestURL:  input.CrestURL,
		IsActive:  existing.IsActive,
	}
	if input.IsActive != nil {
		updated.IsActive = *input.IsActive
	}
	if err := s.teamRepo.Update(ctx, updated); err != nil {
		return team.Team{}, fmt.Errorf("update team: %w", err)
	}
	s.logger.InfoContext(ctx, "team updated", "team_id", id, "active", updated.IsActive)
	return updated, nil
}

func (s *TeamService) validate(ctx context.Context, id int64, input TeamInput) error {
	if err := team.ValidateFields(input.Name, input.ShortCode, input.CrestURL); err != nil {
		return err
	}
	existing, err := s.teamRepo.List(ctx, team.Filter{})
	if err != nil {
		return fmt.Errorf("list teams: %w", err)
	}
	return team.ValidateUnique(input.Name, input.ShortCode, existing, id)
}

func (s *TeamService) load(ctx context.Context, id int64) (team.Team, error) {
	item, exists, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return team.Team{}, rule.NotFound("id", "Team with ID %d not found", id)
	}
	return item, nil
}

func trimTeamInput(input TeamInput) TeamInput {
	input.Name = strings.TrimSpace(input.Name)
	input.ShortCode = strings.TrimSpace(input.ShortCode)
	input.CrestURL = strings.TrimSpace(input.CrestURL)
	return input
}
