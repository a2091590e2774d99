package app

import (
	"database/sql"
	_ "embed"

	"github.com/ogefest/fbrowser/internal/logging"

	_ "modernc.org/sqlite"
)

//go:embed init.sql
var initSQL string

func RunMigrations(db *sql.DB) error {
	_, err := db.Exec(initSQL)
	if err != nil {
		return err
	}
	logging.L().Debug("migrations applied successfully")
	return nil
}
