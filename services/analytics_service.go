package services

import (
	"context"
	"errors"
	"time"

	"github.com/Dosada05/fitness-challenge/models"
	"github.com/Dosada05/fitness-challenge/repositories"
)

const (
	ScopeGlobal = "global"
	ScopeTeam   = "team"
)

const (
	defaultLeaderboardLimit = 50
	maxLeaderboardLimit     = 200
	defaultWeeks            = 12
	maxWeeks                = 52
)

// AnalyticsService answers the read-only aggregation queries. Results are
// computed on demand; nothing is cached, so they are always fresh relative to
// the latest performance writes.
type AnalyticsService interface {
	UserTotalPoints(ctx context.Context, userID int, from, to *time.Time) (float64, error)
	Leaderboard(ctx context.Context, scope string, teamID *int, limit int) ([]models.LeaderboardRow, error)
	TeamTotalPoints(ctx context.Context, teamID int) (float64, error)
	TeamLeaderboard(ctx context.Context, limit int) ([]models.TeamLeaderboardRow, error)
	SportLeaderboard(ctx context.Context, sportID, limit int) ([]models.SportLeaderboardRow, error)
	DemographicBreakdown(ctx context.Context, dimension string) ([]models.DemographicBucket, error)
	WeeklyProgress(ctx context.Context, userID, weeks int) ([]models.WeeklyProgressRow, error)
}

type analyticsService struct {
	analyticsRepo repositories.AnalyticsRepository
	teamRepo      repositories.TeamRepository
	sportRepo     repositories.SportRepository
}

func NewAnalyticsService(
	analyticsRepo repositories.AnalyticsRepository,
	teamRepo repositories.TeamRepository,
	sportRepo repositories.SportRepository,
) AnalyticsService {
	return &analyticsService{
		analyticsRepo: analyticsRepo,
		teamRepo:      teamRepo,
		sportRepo:     sportRepo,
	}
}

func (s *analyticsService) UserTotalPoints(ctx context.Context, userID int, from, to *time.Time) (float64, error) {
	return s.analyticsRepo.UserTotalPoints(ctx, userID, from, to)
}

func (s *analyticsService) Leaderboard(ctx context.Context, scope string, teamID *int, limit int) ([]models.LeaderboardRow, error) {
	limit = clampLimit(limit, defaultLeaderboardLimit, maxLeaderboardLimit)

	switch scope {
	case ScopeGlobal, "":
		return s.analyticsRepo.Leaderboard(ctx, nil, limit)
	case ScopeTeam:
		if teamID == nil {
			return nil, ErrTeamScopeRequired
		}
		if _, err := s.teamRepo.GetByID(ctx, *teamID); err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return nil, ErrTeamNotFound
			}
			return nil, err
		}
		return s.analyticsRepo.Leaderboard(ctx, teamID, limit)
	default:
		return nil, ErrInvalidScope
	}
}

func (s *analyticsService) TeamTotalPoints(ctx context.Context, teamID int) (float64, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return 0, ErrTeamNotFound
		}
		return 0, err
	}
	return s.analyticsRepo.TeamTotalPoints(ctx, teamID)
}

func (s *analyticsService) TeamLeaderboard(ctx context.Context, limit int) ([]models.TeamLeaderboardRow, error) {
	return s.analyticsRepo.TeamLeaderboard(ctx, clampLimit(limit, defaultLeaderboardLimit, maxLeaderboardLimit))
}

func (s *analyticsService) SportLeaderboard(ctx context.Context, sportID, limit int) ([]models.SportLeaderboardRow, error) {
	if _, err := s.sportRepo.GetByID(ctx, sportID); err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, err
	}
	return s.analyticsRepo.SportLeaderboard(ctx, sportID, clampLimit(limit, defaultLeaderboardLimit, maxLeaderboardLimit))
}

func (s *analyticsService) DemographicBreakdown(ctx context.Context, dimension string) ([]models.DemographicBucket, error) {
	buckets, err := s.analyticsRepo.DemographicBreakdown(ctx, dimension)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidDimension) {
			return nil, ErrInvalidDimension
		}
		return nil, err
	}
	return buckets, nil
}

func (s *analyticsService) WeeklyProgress(ctx context.Context, userID, weeks int) ([]models.WeeklyProgressRow, error) {
	return s.analyticsRepo.WeeklyProgress(ctx, userID, clampLimit(weeks, defaultWeeks, maxWeeks))
}

func clampLimit(v, def, max int) int {
	if v <= 0 {
		return def
	}
	if v > max {
		return max
	}
	return v
}
