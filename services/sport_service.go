package services

import (
	"context"
	"errors"

	"github.com/Dosada05/fitness-challenge/models"
	"github.com/Dosada05/fitness-challenge/repositories"
)

// SportService exposes the sport catalogue read-only. The catalogue is seeded
// at startup and edited out of band by operators.
type SportService interface {
	List(ctx context.Context) ([]models.Sport, error)
	Get(ctx context.Context, id int) (*models.Sport, error)
}

type sportService struct {
	sportRepo repositories.SportRepository
}

func NewSportService(sportRepo repositories.SportRepository) SportService {
	return &sportService{sportRepo: sportRepo}
}

func (s *sportService) List(ctx context.Context) ([]models.Sport, error) {
	return s.sportRepo.GetAll(ctx)
}

func (s *sportService) Get(ctx context.Context, id int) (*models.Sport, error) {
	sport, err := s.sportRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, err
	}
	return sport, nil
}
