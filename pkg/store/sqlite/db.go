package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const AuditTableSchema = `
	CREATE TABLE IF NOT EXISTS audit_entries (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		type TEXT NOT NULL,
		at TEXT NOT NULL,
		category TEXT,
		user TEXT,
		session_id TEXT,
		score_before REAL NOT NULL DEFAULT 0,
		score_after REAL NOT NULL DEFAULT 0,
		metadata JSON
	);
`

var bootQueries = []string{
	AuditTableSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	if settings.DbPath == "" {
		return nil, fmt.Errorf("db path is required")
	}

	db, err := sql.Open("sqlite", settings.DbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	for _, query := range bootQueries {
		if _, err := db.Exec(query); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap schema: %w", err)
		}
	}

	return db, nil
}
