// Package memory provides an in-memory RepositoryManager. It backs tests and
// keeps the repository contracts honest without a running database; the DBTX
// argument is accepted for interface compatibility and ignored.
package memory

import (
	"context"
	"database/sql"
	"sync"

	"factforum/internal/dbx"
	"factforum/internal/server/repositories/accounts"
	"factforum/internal/server/repositories/queries"
	"factforum/internal/server/repositories/responses"
)

type Manager struct {
	mu        sync.Mutex
	accounts  *AccountRepository
	queries   *QueryRepository
	responses *ResponseRepository
}

func NewManager() *Manager {
	m := &Manager{}
	m.accounts = &AccountRepository{mu: &m.mu, items: map[int64]*accountRow{}}
	m.queries = &QueryRepository{mu: &m.mu, items: map[int64]*queryRow{}}
	m.responses = &ResponseRepository{mu: &m.mu, items: map[int64]*responseRow{}, queries: m.queries}
	return m
}

func (m *Manager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (m *Manager) Accounts(db dbx.DBTX) accounts.Repository   { return m.accounts }
func (m *Manager) Queries(db dbx.DBTX) queries.Repository     { return m.queries }
func (m *Manager) Responses(db dbx.DBTX) responses.Repository { return m.responses }
