package database

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"

	dbmigrate "bookstore/database"
)

// New opens a pooled *sql.DB over the pgx stdlib driver and applies
// pending migrations before handing the handle out.
func New(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if err := dbmigrate.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
