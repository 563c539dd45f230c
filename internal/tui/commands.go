package tui

import (
	"context"
	"path/filepath"

	"github.com/adamavenir/heroes/internal/listing"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

type charactersLoadedMsg struct {
	state listing.State
}

type favoritesChangedMsg struct{}

// loadCharactersCmd fetches off the update loop; the list's current state is
// reported so a stale fetch never overwrites a newer one.
func loadCharactersCmd(list *listing.CharacterList) tea.Cmd {
	return func() tea.Msg {
		list.Load(context.Background())
		return charactersLoadedMsg{state: list.State()}
	}
}

func newFavoritesWatcher(dataDir string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: the log may not exist yet.
	if err := watcher.Add(dataDir); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	return watcher, nil
}

// waitForFavoritesChange blocks until the favorites log is written.
// The update loop re-arms it after every favoritesChangedMsg.
func waitForFavoritesChange(watcher *fsnotify.Watcher, logPath string) tea.Cmd {
	if watcher == nil {
		return nil
	}
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != filepath.Clean(logPath) {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) {
					return favoritesChangedMsg{}
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
			}
		}
	}
}
