package db

import "database/sql"

const schemaSQL = `
-- Favorite characters (denormalized copy of the displayed fields)
CREATE TABLE IF NOT EXISTS characters (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  guid TEXT NOT NULL,                  -- e.g., "fav-5f0c..."
  name TEXT NOT NULL,                  -- informal key, not unique
  text TEXT NOT NULL DEFAULT '',       -- description as displayed
  image_path TEXT,                     -- thumbnail path without extension
  image_extension TEXT,
  faved_at INTEGER NOT NULL            -- unix millis
);

CREATE INDEX IF NOT EXISTS idx_characters_name ON characters(name);
`

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// InitSchema initializes the heroes schema.
func InitSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(schemaSQL); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
