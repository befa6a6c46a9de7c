package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/menuplanner/backend/internal/domain"
)

// GoalsStore keeps the single nutrition_goals row
type GoalsStore struct {
	pool *pgxpool.Pool
}

func NewGoalsStore(pool *pgxpool.Pool) *GoalsStore {
	return &GoalsStore{pool: pool}
}

// Get returns zero goals until Save is called
func (s *GoalsStore) Get(ctx context.Context) (domain.Goals, error) {
	var g domain.Goals
	err := s.pool.QueryRow(ctx, `
		SELECT calories, protein_g, fat_g, carbohydrates_g FROM nutrition_goals WHERE id = 1
	`).Scan(&g.Calories, &g.Protein, &g.Fat, &g.Carbohydrates)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Goals{}, nil
	}
	if err != nil {
		return domain.Goals{}, mapError(err, "nutrition goals")
	}
	return g, nil
}

func (s *GoalsStore) Save(ctx context.Context, g domain.Goals) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO nutrition_goals (id, calories, protein_g, fat_g, carbohydrates_g, updated_at)
		VALUES (1, $1, $2, $3, $4, now())
		ON CONFLICT (id) DO UPDATE
		SET calories = EXCLUDED.calories,
		    protein_g = EXCLUDED.protein_g,
		    fat_g = EXCLUDED.fat_g,
		    carbohydrates_g = EXCLUDED.carbohydrates_g,
		    updated_at = EXCLUDED.updated_at
	`, g.Calories, g.Protein, g.Fat, g.Carbohydrates)

	return mapError(err, "nutrition goals")
}
