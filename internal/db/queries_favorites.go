package db

import (
	"database/sql"
	"time"

	"github.com/adamavenir/heroes/internal/core"
	"github.com/adamavenir/heroes/internal/types"
	"github.com/google/uuid"
)

// InsertFavorite stores a favorite record. It does not check for an existing
// record with the same name. GUID and FavedAt are filled in when empty.
func InsertFavorite(db DBTX, record types.FavoriteRecord) (types.FavoriteRecord, error) {
	if record.GUID == "" {
		record.GUID = "fav-" + uuid.NewString()
	}
	if record.FavedAt == 0 {
		record.FavedAt = time.Now().UnixMilli()
	}
	_, err := db.Exec(`
		INSERT INTO characters (guid, name, text, image_path, image_extension, faved_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, record.GUID, record.Name, record.Text, record.ImagePath, record.ImageExtension, record.FavedAt)
	if err != nil {
		return types.FavoriteRecord{}, err
	}
	return record, nil
}

// GetFavoriteRecords returns every stored record in insertion order.
func GetFavoriteRecords(db DBTX) ([]types.FavoriteRecord, error) {
	rows, err := db.Query(`
		SELECT guid, name, text, image_path, image_extension, faved_at
		FROM characters
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []types.FavoriteRecord
	for rows.Next() {
		var r types.FavoriteRecord
		var path, ext sql.NullString
		if err := rows.Scan(&r.GUID, &r.Name, &r.Text, &path, &ext, &r.FavedAt); err != nil {
			return nil, err
		}
		if path.Valid {
			r.ImagePath = &path.String
		}
		if ext.Valid {
			r.ImageExtension = &ext.String
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// GetFavorites returns stored favorites as a set of CharacterInfo values.
// Records that are equal on all four fields collapse into one entry; records
// that share a name but differ elsewhere stay separate. Order follows the
// first occurrence of each value.
func GetFavorites(db DBTX) ([]types.CharacterInfo, error) {
	records, err := GetFavoriteRecords(db)
	if err != nil {
		return nil, err
	}
	seen := make(map[types.CharacterInfo]struct{}, len(records))
	out := make([]types.CharacterInfo, 0, len(records))
	for _, r := range records {
		info := RecordToInfo(r)
		if _, ok := seen[info]; ok {
			continue
		}
		seen[info] = struct{}{}
		out = append(out, info)
	}
	return out, nil
}

// RecordToInfo projects a stored record, substituting the placeholder image
// for missing thumbnail fields.
func RecordToInfo(r types.FavoriteRecord) types.CharacterInfo {
	info := types.CharacterInfo{
		Name:               r.Name,
		Description:        r.Text,
		ThumbnailPath:      core.ImageNotAvailablePath,
		ThumbnailExtension: core.ImageNotAvailableExtension,
	}
	if r.ImagePath != nil {
		info.ThumbnailPath = *r.ImagePath
	}
	if r.ImageExtension != nil {
		info.ThumbnailExtension = *r.ImageExtension
	}
	return info
}

// DeleteFavoritesByName removes every record whose name matches exactly and
// returns how many were removed.
func DeleteFavoritesByName(db DBTX, name string) (int64, error) {
	result, err := db.Exec(`DELETE FROM characters WHERE name = ?`, name)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// IsFavorite checks if any record has exactly this name.
func IsFavorite(db DBTX, name string) (bool, error) {
	row := db.QueryRow(`SELECT 1 FROM characters WHERE name = ? LIMIT 1`, name)
	var exists int
	err := row.Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetFavoriteNames returns the distinct favorited names.
func GetFavoriteNames(db DBTX) (map[string]bool, error) {
	rows, err := db.Query(`SELECT DISTINCT name FROM characters`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names[name] = true
	}
	return names, rows.Err()
}

// ClearFavorites removes every record.
func ClearFavorites(db DBTX) error {
	_, err := db.Exec(`DELETE FROM characters`)
	return err
}
