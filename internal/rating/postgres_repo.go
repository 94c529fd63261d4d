package rating

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (repo *PostgresRepo) RecordChange(ctx context.Context, c *Change) error {
	const insertSQL = `
		INSERT INTO rating_changes (store_id, user_id, rating, status, error, requested_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6)
		RETURNING id::text`

	if err := repo.db.QueryRow(ctx, insertSQL, c.StoreID, c.UserID, c.Rating, c.Status, c.Error, c.RequestedAt).Scan(&c.ID); err != nil {
		return fmt.Errorf("insert rating change: %w", err)
	}
	return nil
}

func (repo *PostgresRepo) ListChanges(ctx context.Context, storeID string, limit int) ([]Change, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `
		SELECT id::text, store_id, COALESCE(user_id, ''), rating, status, error, requested_at
		FROM rating_changes
		WHERE store_id = $1
		ORDER BY requested_at DESC
		LIMIT $2`

	rows, err := repo.db.Query(ctx, query, storeID, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Change, error) {
		var c Change
		err := row.Scan(&c.ID, &c.StoreID, &c.UserID, &c.Rating, &c.Status, &c.Error, &c.RequestedAt)
		return c, err
	})
}
