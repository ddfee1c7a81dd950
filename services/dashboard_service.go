package services

import (
	"context"
	"errors"

	"github.com/Dosada05/fitness-challenge/models"
	"github.com/Dosada05/fitness-challenge/repositories"
	"golang.org/x/sync/errgroup"
)

const dashboardRecentLimit = 10

type DashboardService interface {
	GetDashboard(ctx context.Context, userID int) (*models.Dashboard, error)
}

type dashboardService struct {
	userRepo      repositories.UserRepository
	perfRepo      repositories.PerformanceRepository
	analyticsRepo repositories.AnalyticsRepository
}

func NewDashboardService(
	userRepo repositories.UserRepository,
	perfRepo repositories.PerformanceRepository,
	analyticsRepo repositories.AnalyticsRepository,
) DashboardService {
	return &dashboardService{
		userRepo:      userRepo,
		perfRepo:      perfRepo,
		analyticsRepo: analyticsRepo,
	}
}

// GetDashboard assembles the self view. The four aggregates are independent
// reads, so they run concurrently.
func (s *dashboardService) GetDashboard(ctx context.Context, userID int) (*models.Dashboard, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var dashboard models.Dashboard

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.analyticsRepo.UserStats(gCtx, userID)
		if err != nil {
			return err
		}
		dashboard.Stats = *stats
		return nil
	})

	g.Go(func() error {
		rank, err := s.analyticsRepo.UserRank(gCtx, userID)
		if err != nil {
			return err
		}
		dashboard.Rank = *rank
		return nil
	})

	g.Go(func() error {
		breakdown, err := s.analyticsRepo.SportBreakdown(gCtx, userID)
		if err != nil {
			return err
		}
		dashboard.SportBreakdown = breakdown
		return nil
	})

	g.Go(func() error {
		recent, err := s.perfRepo.ListByUserID(gCtx, userID, dashboardRecentLimit, 0)
		if err != nil {
			return err
		}
		dashboard.Recent = recent
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dashboard, nil
}
