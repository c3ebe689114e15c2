// Package responses provides PostgreSQL-backed storage for faculty responses.
package responses

import (
	"context"
	"fmt"

	"factforum/internal/common"
	"factforum/internal/dbx"
	"factforum/internal/server/models"
)

// PostgresRepository implements response storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, response *models.Response) (*models.Response, error) {
	q :=
		`INSERT INTO responses (query_id, faculty_id, content, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, q,
		response.QueryID, response.FacultyID, response.Content, response.CreatedAt).Scan(&response.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return response, nil
}

// ListByQuery returns a query's responses ordered by creation time ascending.
func (r *PostgresRepository) ListByQuery(ctx context.Context, queryID int64) ([]models.Response, error) {
	q :=
		`SELECT id, query_id, faculty_id, content, created_at FROM responses
		 WHERE query_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, q, queryID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Response
	for rows.Next() {
		var item models.Response
		if err := rows.Scan(&item.ID, &item.QueryID, &item.FacultyID, &item.Content, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListByFaculty returns a faculty member's responses joined with the parent
// query's title and description.
func (r *PostgresRepository) ListByFaculty(ctx context.Context, facultyID int64) ([]models.FacultyResponse, error) {
	q :=
		`SELECT r.id, r.content, q.title, q.description, r.created_at
		 FROM responses r
		 JOIN queries q ON q.id = r.query_id
		 WHERE r.faculty_id = $1
		 ORDER BY r.created_at
		 `

	rows, err := r.db.QueryContext(ctx, q, facultyID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.FacultyResponse
	for rows.Next() {
		var item models.FacultyResponse
		if err := rows.Scan(&item.ResponseID, &item.Content, &item.QueryTitle, &item.QueryDescription, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	q :=
		`DELETE FROM responses
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

// DeleteByQuery removes every response attached to the query and returns the
// number of rows deleted. Deleting zero rows is not an error.
func (r *PostgresRepository) DeleteByQuery(ctx context.Context, queryID int64) (int64, error) {
	q :=
		`DELETE FROM responses
		 WHERE query_id = $1
		 `

	res, err := r.db.ExecContext(ctx, q, queryID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM responses`)
}

// CountDistinctQueries counts queries referenced by at least one response.
// This is the response-presence definition of "answered"; it can run behind
// the answered flag once responses are deleted.
func (r *PostgresRepository) CountDistinctQueries(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(DISTINCT query_id) FROM responses`)
}

func (r *PostgresRepository) CountByFaculty(ctx context.Context, facultyID int64) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM responses WHERE faculty_id = $1`, facultyID)
}

func (r *PostgresRepository) count(ctx context.Context, q string, args ...any) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
