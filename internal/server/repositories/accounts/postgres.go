// Package accounts provides the PostgreSQL-backed credential store.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"factforum/internal/common"
	"factforum/internal/dbx"
	"factforum/internal/server/models"
)

const uniqueViolationCode = "23505"

// PostgresRepository implements account storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new account. Username uniqueness is enforced by the
// database; a duplicate yields common.ErrorConflict.
func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	query :=
		`INSERT INTO accounts (username, password_hash, role, active)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.Username, account.PasswordHash, account.Role.String(), account.Active).Scan(&account.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query :=
		`SELECT id, username, password_hash, role, active FROM accounts
		 WHERE username = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query :=
		`SELECT id, username, password_hash, role, active FROM accounts
		 WHERE id = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// List returns all accounts ordered by id.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Account, error) {
	query :=
		`SELECT id, username, password_hash, role, active FROM accounts
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Account
	for rows.Next() {
		var item models.Account
		var role string
		if err := rows.Scan(&item.ID, &item.Username, &item.PasswordHash, &role, &item.Active); err != nil {
			return nil, err
		}
		item.Role = models.Role(role)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) UpdateRole(ctx context.Context, id int64, role models.Role) error {
	query :=
		`UPDATE accounts SET role = $2
		 WHERE id = $1
		 `

	return r.execExpectingRow(ctx, query, id, role.String())
}

// UpdateActive sets the active flag. Setting an already-set flag is not an
// error; the row just stays as it was.
func (r *PostgresRepository) UpdateActive(ctx context.Context, id int64, active bool) error {
	query :=
		`UPDATE accounts SET active = $2
		 WHERE id = $1
		 `

	return r.execExpectingRow(ctx, query, id, active)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query :=
		`DELETE FROM accounts
		 WHERE id = $1
		 `

	return r.execExpectingRow(ctx, query, id)
}

// CountByRole returns the number of accounts per role.
func (r *PostgresRepository) CountByRole(ctx context.Context) (map[models.Role]int64, error) {
	query :=
		`SELECT role, COUNT(*) FROM accounts
		 GROUP BY role
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make(map[models.Role]int64)
	for rows.Next() {
		var role string
		var n int64
		if err := rows.Scan(&role, &n); err != nil {
			return nil, err
		}
		result[models.Role(role)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Account, error) {
	account := &models.Account{}
	var role string
	err := row.Scan(&account.ID, &account.Username, &account.PasswordHash, &role, &account.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	account.Role = models.Role(role)
	return account, nil
}

func (r *PostgresRepository) execExpectingRow(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
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
