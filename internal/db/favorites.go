package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/adamavenir/heroes/internal/types"
)

// Favorites is the favorites store: SQLite for reads, with every change also
// appended to the favorites log.
type Favorites struct {
	db      *sql.DB
	dataDir string
}

// NewFavorites returns a store backed by conn that logs to dataDir.
func NewFavorites(conn *sql.DB, dataDir string) *Favorites {
	return &Favorites{db: conn, dataDir: dataDir}
}

// Add stores info as a new favorite record. The row is only committed once
// the log append succeeds.
func (f *Favorites) Add(info types.CharacterInfo) error {
	tx, err := f.db.Begin()
	if err != nil {
		return fmt.Errorf("save favorite %q: %w", info.Name, err)
	}
	defer func() { _ = tx.Rollback() }()

	record, err := InsertFavorite(tx, types.FavoriteFromInfo(info))
	if err != nil {
		return fmt.Errorf("save favorite %q: %w", info.Name, err)
	}
	if err := AppendFavoriteAdd(f.dataDir, record); err != nil {
		return fmt.Errorf("log favorite %q: %w", info.Name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save favorite %q: %w", info.Name, err)
	}
	return nil
}

// All returns the deduplicated favorites.
func (f *Favorites) All() ([]types.CharacterInfo, error) {
	return GetFavorites(f.db)
}

// DeleteByName removes every favorite with exactly this name. Nothing is
// removed when the log append fails.
func (f *Favorites) DeleteByName(name string) (int64, error) {
	tx, err := f.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("delete favorite %q: %w", name, err)
	}
	defer func() { _ = tx.Rollback() }()

	removed, err := DeleteFavoritesByName(tx, name)
	if err != nil {
		return 0, fmt.Errorf("delete favorite %q: %w", name, err)
	}
	if removed == 0 {
		return 0, nil
	}
	if err := AppendFavoriteRemove(f.dataDir, name, time.Now().UnixMilli()); err != nil {
		return 0, fmt.Errorf("log delete %q: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("delete favorite %q: %w", name, err)
	}
	return removed, nil
}

// IsFavorite reports whether any record carries this name.
func (f *Favorites) IsFavorite(name string) (bool, error) {
	return IsFavorite(f.db, name)
}

// Names returns the set of favorited names.
func (f *Favorites) Names() (map[string]bool, error) {
	return GetFavoriteNames(f.db)
}
