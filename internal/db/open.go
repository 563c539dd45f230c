package db

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const (
	databaseFile  = "heroes.db"
	favoritesFile = "favorites.jsonl"
)

// DatabasePath returns the SQLite path inside a data dir.
func DatabasePath(dataDir string) string {
	return filepath.Join(dataDir, databaseFile)
}

// FavoritesLogPath returns the favorites JSONL path inside a data dir.
func FavoritesLogPath(dataDir string) string {
	return filepath.Join(dataDir, favoritesFile)
}

// OpenDatabase opens the SQLite database in dataDir, creating the directory
// if needed. The database is rebuilt from favorites.jsonl when the log is
// newer than the database file.
func OpenDatabase(dataDir string) (*sql.DB, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	dbPath := DatabasePath(dataDir)

	dbExists := true
	if _, err := os.Stat(dbPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			dbExists = false
		} else {
			return nil, err
		}
	}

	jsonlMtime := getJSONLMtime(dataDir)
	var dbMtime int64
	if dbExists {
		info, err := os.Stat(dbPath)
		if err != nil {
			return nil, err
		}
		dbMtime = info.ModTime().UnixMilli()
	}

	shouldRebuild := jsonlMtime > 0 && (!dbExists || jsonlMtime > dbMtime)

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := InitSchema(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	if shouldRebuild {
		if err := RebuildDatabaseFromJSONL(conn, dataDir); err != nil {
			_ = conn.Close()
			return nil, err
		}
		touchDatabaseFile(dataDir)
	}

	return conn, nil
}

func getJSONLMtime(dataDir string) int64 {
	info, err := os.Stat(FavoritesLogPath(dataDir))
	if err != nil {
		return 0
	}
	return info.ModTime().UnixMilli()
}

// touchDatabaseFile marks the database as current after a log append or a
// rebuild so the next open does not rebuild needlessly.
func touchDatabaseFile(dataDir string) {
	now := time.Now()
	_ = os.Chtimes(DatabasePath(dataDir), now, now)
}
