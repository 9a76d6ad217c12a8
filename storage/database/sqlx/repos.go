// Package sqlxrepos implements the domain repositories against Postgres.
package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/kocha/core"
)

type repository struct {
	db *sqlx.DB
}

func newRepository(db *sql.DB) repository {
	return repository{db: sqlx.NewDb(db, "postgres")}
}

// getExec returns the executor to run a query on: the service-supplied one
// (e.g. a transaction) when given, the repo's DB otherwise. sqlx.DB and
// sqlx.Tx both satisfy core.DBExecutor and sqlx.ExtContext.
func (repo repository) getExec(svcExec []core.DBExecutor) sqlx.ExtContext {
	if len(svcExec) > 0 {
		if ext, ok := svcExec[0].(sqlx.ExtContext); ok {
			return ext
		}
	}
	return repo.db
}
