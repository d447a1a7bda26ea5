package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/guidstore/internal/dbx"
	"github.com/dmitrijs2005/guidstore/internal/server/repositories/records"
)

// RepositoryManager vends repository implementations bound to a DBTX
// and owns schema migration.
type RepositoryManager interface {
	Records(db dbx.DBTX) records.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
