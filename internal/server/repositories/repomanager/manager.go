package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/reviewvault/internal/dbx"
	"github.com/dmitrijs2005/reviewvault/internal/server/repositories/ledger"
	"github.com/dmitrijs2005/reviewvault/internal/server/repositories/movies"
	"github.com/dmitrijs2005/reviewvault/internal/server/repositories/reviews"
	"github.com/dmitrijs2005/reviewvault/internal/server/repositories/vaults"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Vaults(db dbx.DBTX) vaults.Repository
	Ledger(db dbx.DBTX) ledger.Repository
	Movies(db dbx.DBTX) movies.Repository
	Reviews(db dbx.DBTX) reviews.Repository
}
