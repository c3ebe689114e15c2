// Package queries provides PostgreSQL-backed storage for student queries.
package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"factforum/internal/common"
	"factforum/internal/dbx"
	"factforum/internal/server/models"
)

// PostgresRepository implements query storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, query *models.Query) (*models.Query, error) {
	q :=
		`INSERT INTO queries (title, description, student_id, created_at, answered)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, q,
		query.Title, query.Description, query.StudentID, query.CreatedAt, query.Answered).Scan(&query.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return query, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Query, error) {
	q :=
		`SELECT id, title, description, student_id, created_at, answered FROM queries
		 WHERE id = $1
		 `

	query := &models.Query{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&query.ID, &query.Title, &query.Description, &query.StudentID, &query.CreatedAt, &query.Answered)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return query, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Query, error) {
	q :=
		`SELECT id, title, description, student_id, created_at, answered FROM queries
		 ORDER BY id
		 `

	return r.list(ctx, q)
}

func (r *PostgresRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Query, error) {
	q :=
		`SELECT id, title, description, student_id, created_at, answered FROM queries
		 WHERE student_id = $1
		 ORDER BY id
		 `

	return r.list(ctx, q, studentID)
}

// MarkAnswered flips the answered flag to true. The WHERE clause makes the
// transition one-way and idempotent: a query that is already answered is
// left untouched, so concurrent responders cannot race it back to false.
func (r *PostgresRepository) MarkAnswered(ctx context.Context, id int64) error {
	q :=
		`UPDATE queries SET answered = true
		 WHERE id = $1 AND answered = false
		 `

	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	q :=
		`DELETE FROM queries
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM queries`)
}

func (r *PostgresRepository) CountAnswered(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM queries WHERE answered = true`)
}

func (r *PostgresRepository) CountByStudent(ctx context.Context, studentID int64) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM queries WHERE student_id = $1`, studentID)
}

func (r *PostgresRepository) list(ctx context.Context, q string, args ...any) ([]*models.Query, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Query
	for rows.Next() {
		var item models.Query
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Description, &item.StudentID, &item.CreatedAt, &item.Answered,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) count(ctx context.Context, q string, args ...any) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
