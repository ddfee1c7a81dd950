package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/fitness-challenge/feed"
	"github.com/Dosada05/fitness-challenge/models"
	"github.com/Dosada05/fitness-challenge/repositories"
	"github.com/Dosada05/fitness-challenge/scoring"
)

const dateLayout = "2006-01-02"

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// FeedBroadcaster is what the service needs from the live feed hub.
type FeedBroadcaster interface {
	BroadcastEvent(event feed.Event)
}

type PerformanceService interface {
	Record(ctx context.Context, userID int, input RecordPerformanceInput) (*models.Performance, error)
	History(ctx context.Context, userID, limit, offset int) ([]models.Performance, error)
}

type RecordPerformanceInput struct {
	SportID int     `json:"sport_id"`
	Value   float64 `json:"value"`
	Date    string  `json:"date"`
	Notes   *string `json:"notes,omitempty"`
}

type performanceService struct {
	perfRepo  repositories.PerformanceRepository
	sportRepo repositories.SportRepository
	userRepo  repositories.UserRepository
	hub       FeedBroadcaster
}

// NewPerformanceService accepts a nil hub; recording then simply skips the
// live broadcast.
func NewPerformanceService(
	perfRepo repositories.PerformanceRepository,
	sportRepo repositories.SportRepository,
	userRepo repositories.UserRepository,
	hub FeedBroadcaster,
) PerformanceService {
	return &performanceService{
		perfRepo:  perfRepo,
		sportRepo: sportRepo,
		userRepo:  userRepo,
		hub:       hub,
	}
}

// Record validates the entry, computes the point total once and stores it
// frozen on the row. Any valid calendar date is accepted, future included.
// Resubmitting the same entry creates a new row on purpose: deduplication is
// the user's responsibility.
func (s *performanceService) Record(ctx context.Context, userID int, input RecordPerformanceInput) (*models.Performance, error) {
	if input.Value < 0 {
		return nil, ErrNegativeValue
	}

	date, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	sport, err := s.sportRepo.GetByID(ctx, input.SportID)
	if err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, err
	}

	points, err := scoring.ComputePoints(sport.PointsPerUnit, input.Value)
	if err != nil {
		if errors.Is(err, scoring.ErrNegativeValue) {
			return nil, ErrNegativeValue
		}
		return nil, fmt.Errorf("failed to compute points: %w", err)
	}

	perf := &models.Performance{
		UserID:       userID,
		SportID:      sport.ID,
		Value:        input.Value,
		Points:       points,
		DateRecorded: date,
		Notes:        normalizeOptional(input.Notes),
	}

	if err := s.perfRepo.Create(ctx, perf); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPerformanceUserInvalid):
			return nil, ErrUserNotFound
		case errors.Is(err, repositories.ErrPerformanceSportInvalid):
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to store performance: %w", err)
	}

	perf.SportName = sport.Name
	perf.SportUnit = sport.Unit

	if s.hub != nil {
		s.hub.BroadcastEvent(feed.Event{
			Type: "PERFORMANCE_RECORDED",
			Payload: feed.PerformanceEvent{
				Username:  user.Username,
				SportName: sport.Name,
				Value:     perf.Value,
				Unit:      sport.Unit,
				Points:    perf.Points,
				Date:      perf.DateRecorded.Format(dateLayout),
			},
		})
	}

	return perf, nil
}

func (s *performanceService) History(ctx context.Context, userID, limit, offset int) ([]models.Performance, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.perfRepo.ListByUserID(ctx, userID, limit, offset)
}
