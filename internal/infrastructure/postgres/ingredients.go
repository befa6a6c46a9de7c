package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/menuplanner/backend/internal/domain"
)

const ingredientColumns = `id, name, calories, protein_g, fat_g, carbohydrates_g`

// Byte order on the lowered name, then on the name itself
const orderByName = `ORDER BY lower(name) COLLATE "C", name COLLATE "C"`

// IngredientStore is a Postgres domain.IngredientRepository.
// The unique index on lower(name) enforces case-insensitive uniqueness.
type IngredientStore struct {
	pool *pgxpool.Pool
}

func NewIngredientStore(pool *pgxpool.Pool) *IngredientStore {
	return &IngredientStore{pool: pool}
}

func (s *IngredientStore) Create(ctx context.Context, ingredient *domain.Ingredient) error {
	n := ingredient.Nutrients
	err := s.pool.QueryRow(ctx, `
		INSERT INTO ingredients (name, calories, protein_g, fat_g, carbohydrates_g)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, ingredient.Name, n.Calories, n.Protein, n.Fat, n.Carbohydrates).Scan(&ingredient.ID)

	return mapError(err, fmt.Sprintf("ingredient %q", ingredient.Name))
}

func (s *IngredientStore) Update(ctx context.Context, ingredient *domain.Ingredient) error {
	n := ingredient.Nutrients
	err := s.pool.QueryRow(ctx, `
		UPDATE ingredients
		SET calories = $2, protein_g = $3, fat_g = $4, carbohydrates_g = $5
		WHERE lower(name) = lower($1)
		RETURNING id, name
	`, ingredient.Name, n.Calories, n.Protein, n.Fat, n.Carbohydrates).Scan(&ingredient.ID, &ingredient.Name)

	return mapError(err, fmt.Sprintf("ingredient %q", ingredient.Name))
}

func (s *IngredientStore) Delete(ctx context.Context, name string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM ingredients WHERE lower(name) = lower($1)`, name)
	if err != nil {
		return mapError(err, fmt.Sprintf("ingredient %q", name))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: ingredient %q", domain.ErrNotFound, name)
	}
	return nil
}

func (s *IngredientStore) GetByName(ctx context.Context, name string) (*domain.Ingredient, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+ingredientColumns+` FROM ingredients WHERE lower(name) = lower($1)`, name)

	ingredient, err := scanIngredient(row)
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("ingredient %q", name))
	}
	return &ingredient, nil
}

func (s *IngredientStore) List(ctx context.Context, skip, limit int) ([]domain.Ingredient, error) {
	return s.query(ctx, `SELECT `+ingredientColumns+` FROM ingredients `+orderByName+` OFFSET $1 LIMIT $2`,
		skip, limitArg(limit))
}

func (s *IngredientStore) Search(ctx context.Context, query string, limit int) ([]domain.Ingredient, error) {
	return s.query(ctx, `SELECT `+ingredientColumns+` FROM ingredients
		WHERE strpos(lower(name), lower($1)) > 0 `+orderByName+` LIMIT $2`,
		query, limitArg(limit))
}

func (s *IngredientStore) All(ctx context.Context) ([]domain.Ingredient, error) {
	return s.query(ctx, `SELECT `+ingredientColumns+` FROM ingredients `+orderByName)
}

func (s *IngredientStore) query(ctx context.Context, sql string, args ...any) ([]domain.Ingredient, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err, "ingredients")
	}
	defer rows.Close()

	ingredients := []domain.Ingredient{}
	for rows.Next() {
		ingredient, err := scanIngredient(rows)
		if err != nil {
			return nil, mapError(err, "ingredients")
		}
		ingredients = append(ingredients, ingredient)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "ingredients")
	}
	return ingredients, nil
}

func scanIngredient(row pgx.Row) (domain.Ingredient, error) {
	var ing domain.Ingredient
	err := row.Scan(
		&ing.ID,
		&ing.Name,
		&ing.Nutrients.Calories,
		&ing.Nutrients.Protein,
		&ing.Nutrients.Fat,
		&ing.Nutrients.Carbohydrates,
	)
	return ing, err
}
