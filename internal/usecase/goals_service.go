package usecase

import (
	"context"

	"github.com/menuplanner/backend/internal/domain"
)

// GoalsService reads and updates the nutrition goals
type GoalsService struct {
	repo domain.GoalsRepository
}

func NewGoalsService(repo domain.GoalsRepository) *GoalsService {
	return &GoalsService{repo: repo}
}

func (s *GoalsService) Get(ctx context.Context) (domain.Goals, error) {
	return s.repo.Get(ctx)
}

// Set replaces all goals; negative values are rejected
func (s *GoalsService) Set(ctx context.Context, goals domain.Goals) (domain.Goals, error) {
	if err := goals.Validate(); err != nil {
		return domain.Goals{}, err
	}
	if err := s.repo.Save(ctx, goals); err != nil {
		return domain.Goals{}, err
	}
	return goals, nil
}
