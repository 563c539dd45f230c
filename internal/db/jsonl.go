package db

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/adamavenir/heroes/internal/types"
)

const (
	recordTypeFavoriteAdd    = "favorite_add"
	recordTypeFavoriteRemove = "favorite_remove"
)

// FavoriteAddJSONLRecord represents a favorite being stored.
type FavoriteAddJSONLRecord struct {
	Type           string  `json:"type"` // "favorite_add"
	GUID           string  `json:"guid"`
	Name           string  `json:"name"`
	Text           string  `json:"text"`
	ImagePath      *string `json:"image_path,omitempty"`
	ImageExtension *string `json:"image_extension,omitempty"`
	FavedAt        int64   `json:"faved_at"`
}

// FavoriteRemoveJSONLRecord represents a delete-by-name.
type FavoriteRemoveJSONLRecord struct {
	Type string `json:"type"` // "favorite_remove"
	Name string `json:"name"`
	TS   int64  `json:"ts"`
}

// FavoriteEvent is one replayable entry of the favorites log.
type FavoriteEvent struct {
	Type   string
	Record types.FavoriteRecord // set for favorite_add
	Name   string               // set for favorite_remove
	TS     int64
}

// AppendFavoriteAdd appends an add record to the favorites log.
func AppendFavoriteAdd(dataDir string, record types.FavoriteRecord) error {
	entry := FavoriteAddJSONLRecord{
		Type:           recordTypeFavoriteAdd,
		GUID:           record.GUID,
		Name:           record.Name,
		Text:           record.Text,
		ImagePath:      record.ImagePath,
		ImageExtension: record.ImageExtension,
		FavedAt:        record.FavedAt,
	}
	if err := appendJSONLine(FavoritesLogPath(dataDir), entry); err != nil {
		return err
	}
	touchDatabaseFile(dataDir)
	return nil
}

// AppendFavoriteRemove appends a delete-by-name record to the favorites log.
func AppendFavoriteRemove(dataDir, name string, ts int64) error {
	entry := FavoriteRemoveJSONLRecord{
		Type: recordTypeFavoriteRemove,
		Name: name,
		TS:   ts,
	}
	if err := appendJSONLine(FavoritesLogPath(dataDir), entry); err != nil {
		return err
	}
	touchDatabaseFile(dataDir)
	return nil
}

// ReadFavoriteEvents reads the favorites log in file order. Unknown or
// malformed lines are skipped.
func ReadFavoriteEvents(dataDir string) ([]FavoriteEvent, error) {
	lines, err := readJSONLLines(FavoritesLogPath(dataDir))
	if err != nil {
		return nil, err
	}

	events := make([]FavoriteEvent, 0, len(lines))
	for _, line := range lines {
		var envelope struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal([]byte(line), &envelope); err != nil {
			continue
		}
		switch envelope.Type {
		case recordTypeFavoriteAdd:
			var rec FavoriteAddJSONLRecord
			if err := json.Unmarshal([]byte(line), &rec); err != nil {
				continue
			}
			events = append(events, FavoriteEvent{
				Type: rec.Type,
				Record: types.FavoriteRecord{
					GUID:           rec.GUID,
					Name:           rec.Name,
					Text:           rec.Text,
					ImagePath:      rec.ImagePath,
					ImageExtension: rec.ImageExtension,
					FavedAt:        rec.FavedAt,
				},
				TS: rec.FavedAt,
			})
		case recordTypeFavoriteRemove:
			var rec FavoriteRemoveJSONLRecord
			if err := json.Unmarshal([]byte(line), &rec); err != nil {
				continue
			}
			events = append(events, FavoriteEvent{Type: rec.Type, Name: rec.Name, TS: rec.TS})
		}
	}
	return events, nil
}

// RebuildDatabaseFromJSONL replaces the characters table with a replay of the
// favorites log, inside one transaction.
func RebuildDatabaseFromJSONL(conn *sql.DB, dataDir string) error {
	events, err := ReadFavoriteEvents(dataDir)
	if err != nil {
		return err
	}

	tx, err := conn.Begin()
	if err != nil {
		return err
	}
	if err := replayFavoriteEvents(tx, events); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("rebuild favorites: %w", err)
	}
	return tx.Commit()
}

func replayFavoriteEvents(db DBTX, events []FavoriteEvent) error {
	if err := ClearFavorites(db); err != nil {
		return err
	}
	for _, event := range events {
		switch event.Type {
		case recordTypeFavoriteAdd:
			if _, err := InsertFavorite(db, event.Record); err != nil {
				return err
			}
		case recordTypeFavoriteRemove:
			if _, err := DeleteFavoritesByName(db, event.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

func readJSONLLines(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	truncated := false
	if info, err := file.Stat(); err == nil && info.Size() > 0 {
		buf := make([]byte, 1)
		if _, err := file.ReadAt(buf, info.Size()-1); err == nil {
			truncated = buf[0] != '\n'
		}
	}

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if truncated && len(lines) > 0 {
		log.Printf("warning: truncated JSONL line skipped in %s", filePath)
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

func appendJSONLine(filePath string, record any) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return atomicAppend(filePath, data)
}

func atomicAppend(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return err
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN)

	if _, err := f.Write(append(data, '\n')); err != nil {
		return err
	}

	return f.Sync()
}
