package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/menuplanner/backend/internal/domain"
)

// DishStore is a Postgres domain.DishRepository. A dish row and its
// dish_ingredients rows are always written in one transaction.
type DishStore struct {
	pool *pgxpool.Pool
}

func NewDishStore(pool *pgxpool.Pool) *DishStore {
	return &DishStore{pool: pool}
}

func (s *DishStore) Create(ctx context.Context, dish *domain.Dish) error {
	subject := fmt.Sprintf("dish %q", dish.Name)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return mapError(err, subject)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, `INSERT INTO dishes (name) VALUES ($1) RETURNING id`, dish.Name).Scan(&id)
	if err != nil {
		return mapError(err, subject)
	}

	if err := insertLines(ctx, tx, id, dish.Ingredients); err != nil {
		return mapError(err, subject)
	}

	if err := tx.Commit(ctx); err != nil {
		return mapError(err, subject)
	}

	dish.ID = id
	return nil
}

func (s *DishStore) ReplaceIngredients(ctx context.Context, id int64, items []domain.IngredientAmount) (*domain.Dish, error) {
	subject := fmt.Sprintf("dish %d", id)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, mapError(err, subject)
	}
	defer tx.Rollback(ctx)

	dish, err := getDish(ctx, tx, `SELECT id, name FROM dishes WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		return nil, mapError(err, subject)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM dish_ingredients WHERE dish_id = $1`, id); err != nil {
		return nil, mapError(err, subject)
	}
	if err := insertLines(ctx, tx, id, items); err != nil {
		return nil, mapError(err, subject)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapError(err, subject)
	}

	dish.Ingredients = append([]domain.IngredientAmount(nil), items...)
	return &dish, nil
}

func (s *DishStore) Rename(ctx context.Context, id int64, name string) (*domain.Dish, error) {
	subject := fmt.Sprintf("dish %q", name)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, mapError(err, subject)
	}
	defer tx.Rollback(ctx)

	dish, err := getDish(ctx, tx, `UPDATE dishes SET name = $2 WHERE id = $1 RETURNING id, name`, id, name)
	if err != nil {
		return nil, mapError(err, subject)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapError(err, subject)
	}
	return &dish, nil
}

func (s *DishStore) Delete(ctx context.Context, id int64) error {
	// dish_ingredients rows go with the dish through ON DELETE CASCADE
	tag, err := s.pool.Exec(ctx, `DELETE FROM dishes WHERE id = $1`, id)
	if err != nil {
		return mapError(err, fmt.Sprintf("dish %d", id))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: dish %d", domain.ErrNotFound, id)
	}
	return nil
}

func (s *DishStore) GetByID(ctx context.Context, id int64) (*domain.Dish, error) {
	dish, err := getDish(ctx, s.pool, `SELECT id, name FROM dishes WHERE id = $1`, id)
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("dish %d", id))
	}
	return &dish, nil
}

func (s *DishStore) GetByName(ctx context.Context, name string, caseInsensitive bool) (*domain.Dish, error) {
	sql := `SELECT id, name FROM dishes WHERE name = $1`
	if caseInsensitive {
		sql = `SELECT id, name FROM dishes WHERE lower(name) = lower($1)`
	}

	dish, err := getDish(ctx, s.pool, sql, name)
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("dish %q", name))
	}
	return &dish, nil
}

func (s *DishStore) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM dishes WHERE lower(name) = lower($1) AND id <> $2)
	`, name, excludeID).Scan(&exists)
	if err != nil {
		return false, mapError(err, fmt.Sprintf("dish %q", name))
	}
	return exists, nil
}

func (s *DishStore) List(ctx context.Context, skip, limit int) ([]domain.Dish, error) {
	return s.query(ctx, `SELECT id, name FROM dishes `+orderByName+`, id OFFSET $1 LIMIT $2`,
		skip, limitArg(limit))
}

func (s *DishStore) Search(ctx context.Context, query string, limit int) ([]domain.Dish, error) {
	return s.query(ctx, `SELECT id, name FROM dishes
		WHERE strpos(lower(name), lower($1)) > 0 `+orderByName+`, id LIMIT $2`,
		query, limitArg(limit))
}

// GetMany returns dishes in the order of ids, ignoring unknown and repeated ids
func (s *DishStore) GetMany(ctx context.Context, ids []int64) ([]domain.Dish, error) {
	if len(ids) == 0 {
		return []domain.Dish{}, nil
	}

	found, err := s.query(ctx, `SELECT id, name FROM dishes WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]domain.Dish, len(found))
	for _, d := range found {
		byID[d.ID] = d
	}

	dishes := make([]domain.Dish, 0, len(found))
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			dishes = append(dishes, d)
			delete(byID, id)
		}
	}
	return dishes, nil
}

// query loads dish rows and then their compositions with a second query
func (s *DishStore) query(ctx context.Context, sql string, args ...any) ([]domain.Dish, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err, "dishes")
	}

	dishes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Dish, error) {
		var d domain.Dish
		err := row.Scan(&d.ID, &d.Name)
		return d, err
	})
	if err != nil {
		return nil, mapError(err, "dishes")
	}

	if err := loadCompositions(ctx, s.pool, dishes); err != nil {
		return nil, mapError(err, "dishes")
	}
	return dishes, nil
}

// getDish runs a query returning (id, name) and loads that dish's composition
func getDish(ctx context.Context, q querier, sql string, args ...any) (domain.Dish, error) {
	var dish domain.Dish
	if err := q.QueryRow(ctx, sql, args...).Scan(&dish.ID, &dish.Name); err != nil {
		return domain.Dish{}, err
	}

	dishes := []domain.Dish{dish}
	if err := loadCompositions(ctx, q, dishes); err != nil {
		return domain.Dish{}, err
	}
	return dishes[0], nil
}

// loadCompositions fills Ingredients for every dish, in stored position order
func loadCompositions(ctx context.Context, q querier, dishes []domain.Dish) error {
	if len(dishes) == 0 {
		return nil
	}

	ids := make([]int64, len(dishes))
	index := make(map[int64]int, len(dishes))
	for i := range dishes {
		ids[i] = dishes[i].ID
		index[dishes[i].ID] = i
		dishes[i].Ingredients = []domain.IngredientAmount{}
	}

	rows, err := q.Query(ctx, `
		SELECT dish_id, ingredient_name, amount
		FROM dish_ingredients
		WHERE dish_id = ANY($1)
		ORDER BY dish_id, position
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			dishID int64
			item   domain.IngredientAmount
		)
		if err := rows.Scan(&dishID, &item.Name, &item.Amount); err != nil {
			return err
		}
		i := index[dishID]
		dishes[i].Ingredients = append(dishes[i].Ingredients, item)
	}
	return rows.Err()
}

// insertLines writes a composition with one batch round trip
func insertLines(ctx context.Context, tx pgx.Tx, dishID int64, items []domain.IngredientAmount) error {
	if len(items) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for pos, item := range items {
		batch.Queue(`
			INSERT INTO dish_ingredients (dish_id, ingredient_name, amount, position)
			VALUES ($1, $2, $3, $4)
		`, dishID, item.Name, item.Amount, pos)
	}

	results := tx.SendBatch(ctx, batch)
	for range items {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return err
		}
	}
	return results.Close()
}
