package postgres

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Storage bundles the Postgres repositories over one connection pool
type Storage struct {
	pool        *pgxpool.Pool
	ingredients *IngredientStore
	dishes      *DishStore
	goals       *GoalsStore
}

// New connects to databaseURL and verifies the connection
func New(ctx context.Context, databaseURL string) (*Storage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Printf("[Postgres] Connected (max conns %d)", pool.Config().MaxConns)
	return &Storage{
		pool:        pool,
		ingredients: NewIngredientStore(pool),
		dishes:      NewDishStore(pool),
		goals:       NewGoalsStore(pool),
	}, nil
}

func (s *Storage) Ingredients() *IngredientStore { return s.ingredients }
func (s *Storage) Dishes() *DishStore { return s.dishes }
func (s *Storage) Goals() *GoalsStore { return s.goals }

// Ping checks the database is reachable
func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Storage) Close() {
	s.pool.Close()
}

// querier is satisfied by both the pool and a transaction
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// limitArg turns a non-positive limit into NULL, which Postgres treats as no limit
func limitArg(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}
