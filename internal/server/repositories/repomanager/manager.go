package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/coursehub/internal/dbx"
	"github.com/dmitrijs2005/coursehub/internal/server/repositories/courses"
	"github.com/dmitrijs2005/coursehub/internal/server/repositories/principals"
	"github.com/dmitrijs2005/coursehub/internal/server/repositories/purchases"
)

// RepositoryManager vends repositories bound to a DBTX, which lets services
// run the same repository code on a *sql.DB or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) principals.Repository
	Admins(db dbx.DBTX) principals.Repository
	Courses(db dbx.DBTX) courses.Repository
	Purchases(db dbx.DBTX) purchases.Repository
}
