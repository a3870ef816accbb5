package repomanager

import (
	"context"
	"database/sql"

	"github.com/ganatecnica/obradiary/internal/dbx"
	"github.com/ganatecnica/obradiary/internal/server/repositories/diary"
	"github.com/ganatecnica/obradiary/internal/server/repositories/documents"
	"github.com/ganatecnica/obradiary/internal/server/repositories/projects"
	"github.com/ganatecnica/obradiary/internal/server/repositories/roles"
	"github.com/ganatecnica/obradiary/internal/server/repositories/workers"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Workers(db dbx.DBTX) workers.Repository
	Roles(db dbx.DBTX) roles.Repository
	Projects(db dbx.DBTX) projects.Repository
	Diary(db dbx.DBTX) diary.Repository
	Documents(db dbx.DBTX) documents.Repository
}
