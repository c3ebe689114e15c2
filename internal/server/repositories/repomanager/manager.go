package repomanager

import (
	"context"
	"database/sql"

	"factforum/internal/dbx"
	"factforum/internal/server/repositories/accounts"
	"factforum/internal/server/repositories/queries"
	"factforum/internal/server/repositories/responses"
)

// RepositoryManager vends repositories bound to a DBTX, so the same
// constructors serve both plain connections and in-flight transactions.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Queries(db dbx.DBTX) queries.Repository
	Responses(db dbx.DBTX) responses.Repository
}
