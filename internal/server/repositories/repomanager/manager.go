package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/fitquest/internal/dbx"
	"github.com/dmitrijs2005/fitquest/internal/server/repositories/users"
	"github.com/dmitrijs2005/fitquest/internal/server/repositories/water"
	"github.com/dmitrijs2005/fitquest/internal/server/repositories/workouts"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Water(db dbx.DBTX) water.Repository
	Workouts(db dbx.DBTX) workouts.Repository
}
