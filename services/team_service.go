package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/fitness-challenge/models"
	"github.com/Dosada05/fitness-challenge/repositories"
)

type TeamService interface {
	Create(ctx context.Context, creatorID int, input CreateTeamInput) (*models.Team, error)
	Get(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	Join(ctx context.Context, userID, teamID int) error
	Leave(ctx context.Context, userID int) error
}

type CreateTeamInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type teamService struct {
	teamRepo repositories.TeamRepository
	userRepo repositories.UserRepository
}

func NewTeamService(teamRepo repositories.TeamRepository, userRepo repositories.UserRepository) TeamService {
	return &teamService{teamRepo: teamRepo, userRepo: userRepo}
}

// Create makes the team and enrolls the creator as its first member.
func (s *teamService) Create(ctx context.Context, creatorID int, input CreateTeamInput) (*models.Team, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrTeamNameRequired
	}

	team := &models.Team{
		Name:        input.Name,
		Description: strings.TrimSpace(input.Description),
		CreatorID:   creatorID,
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameTaken
		case errors.Is(err, repositories.ErrTeamCreatorInvalid):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	if err := s.userRepo.SetTeam(ctx, creatorID, &team.ID); err != nil {
		return nil, fmt.Errorf("failed to enroll creator into team: %w", err)
	}

	return team, nil
}

func (s *teamService) Get(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	members, err := s.userRepo.ListByTeamID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	for i := range members {
		members[i].PasswordHash = ""
	}
	team.Members = members
	team.MemberCount = len(members)

	return team, nil
}

func (s *teamService) List(ctx context.Context) ([]models.Team, error) {
	return s.teamRepo.List(ctx)
}

// Join reassigns membership atomically: a user already on a team is moved to
// the new one in a single update, no explicit leave required.
func (s *teamService) Join(ctx context.Context, userID, teamID int) error {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return err
	}

	if err := s.userRepo.SetTeam(ctx, userID, &teamID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserNotFound):
			return ErrUserNotFound
		case errors.Is(err, repositories.ErrUserTeamInvalid):
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to join team: %w", err)
	}
	return nil
}

func (s *teamService) Leave(ctx context.Context, userID int) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.TeamID == nil {
		return ErrUserNotInTeam
	}

	if err := s.userRepo.SetTeam(ctx, userID, nil); err != nil {
		return fmt.Errorf("failed to leave team: %w", err)
	}
	return nil
}
