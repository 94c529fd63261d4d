package storefront

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRunRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRunRepo(db *pgxpool.Pool) *PostgresRunRepo {
	return &PostgresRunRepo{db: db}
}

func (r *PostgresRunRepo) CreateRun(ctx context.Context, run *Run) (string, error) {
	const sql = `
		INSERT INTO refresh_runs (started_at, status)
		VALUES ($1, $2)
		RETURNING id::text`

	var id string
	err := r.db.QueryRow(ctx, sql, run.StartedAt, run.Status).Scan(&id)
	return id, err
}

func (r *PostgresRunRepo) UpdateRun(ctx context.Context, run *Run) error {
	const sql = `
		UPDATE refresh_runs SET
			finished_at = $1,
			status = $2,
			stores_resolved = $3,
			books_resolved = $4,
			unresolved_references = $5,
			skipped_resources = $6,
			batch_key = $7,
			flags_fetched = $8,
			flags_matched = $9,
			error = $10
		WHERE id = $11::text::bigint`

	_, err := r.db.Exec(ctx, sql,
		run.FinishedAt, run.Status, run.StoresResolved, run.BooksResolved, run.Unresolved,
		run.Skipped, run.BatchKey, run.FlagsFetched, run.FlagsMatched, run.Error, run.ID)
	return err
}

func (r *PostgresRunRepo) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	const sql = `
		SELECT id::text, started_at, finished_at, status, stores_resolved, books_resolved,
			unresolved_references, skipped_resources, batch_key, flags_fetched, flags_matched, error
		FROM refresh_runs
		ORDER BY started_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, sql, limit)
	if err != nil {
		return nil, fmt.Errorf("list refresh runs: %w", err)
	}
	runs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Run, error) {
		var run Run
		err := row.Scan(&run.ID, &run.StartedAt, &run.FinishedAt, &run.Status, &run.StoresResolved,
			&run.BooksResolved, &run.Unresolved, &run.Skipped, &run.BatchKey, &run.FlagsFetched,
			&run.FlagsMatched, &run.Error)
		return run, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan refresh runs: %w", err)
	}
	return runs, nil
}
