package memory

import (
	"context"
	"sync"

	"github.com/menuplanner/backend/internal/domain"
)

// GoalsStore keeps the nutrition goals in memory; zero goals until saved
type GoalsStore struct {
	mu    sync.RWMutex
	goals domain.Goals
}

func NewGoalsStore() *GoalsStore {
	return &GoalsStore{}
}

func (s *GoalsStore) Get(ctx context.Context) (domain.Goals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.goals, nil
}

func (s *GoalsStore) Save(ctx context.Context, goals domain.Goals) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = goals
	return nil
}
