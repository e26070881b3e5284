package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophstore/internal/dbx"
	"github.com/dmitrijs2005/gophstore/internal/server/repositories/files"
	"github.com/dmitrijs2005/gophstore/internal/server/repositories/folders"
	"github.com/dmitrijs2005/gophstore/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can run
// the same repository code against *sql.DB or an open transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Folders(db dbx.DBTX) folders.Repository
	Files(db dbx.DBTX) files.Repository
}
