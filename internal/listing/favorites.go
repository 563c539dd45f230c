package listing

import (
	"log"
	"sync"

	"github.com/adamavenir/heroes/internal/core"
	"github.com/adamavenir/heroes/internal/types"
)

// FavoriteStore persists favorites.
type FavoriteStore interface {
	Add(info types.CharacterInfo) error
	All() ([]types.CharacterInfo, error)
	DeleteByName(name string) (int64, error)
}

// Favorites mirrors CharacterList for the local favorites store.
// Store failures are logged and swallowed; the held list is left unchanged.
type Favorites struct {
	store    FavoriteStore
	onChange func([]types.CharacterInfo)

	mu    sync.Mutex
	items []types.CharacterInfo
}

// NewFavorites returns an empty view-model over store; call Reload to fill it.
func NewFavorites(store FavoriteStore, onChange func([]types.CharacterInfo)) *Favorites {
	return &Favorites{store: store, onChange: onChange}
}

// Reload reads every favorite from the store.
func (f *Favorites) Reload() []types.CharacterInfo {
	items, err := f.store.All()
	if err != nil {
		log.Printf("warning: load favorites: %v", err)
		return f.Items()
	}
	f.publish(items)
	return items
}

func (f *Favorites) publish(items []types.CharacterInfo) {
	f.mu.Lock()
	f.items = items
	onChange := f.onChange
	f.mu.Unlock()

	if onChange != nil {
		onChange(items)
	}
}

// Items returns the last loaded favorites.
func (f *Favorites) Items() []types.CharacterInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items
}

// IsFavorite reports whether a loaded favorite has this name.
func (f *Favorites) IsFavorite(name string) bool {
	for _, item := range f.Items() {
		if item.Name == name {
			return true
		}
	}
	return false
}

// Toggle removes every favorite named like info when one exists, otherwise
// stores info. The store decides which, not the cached items. It returns
// whether info is a favorite afterwards.
func (f *Favorites) Toggle(info types.CharacterInfo) bool {
	items, err := f.store.All()
	if err != nil {
		log.Printf("warning: load favorites: %v", err)
		return f.IsFavorite(info.Name)
	}
	f.publish(items)

	if f.IsFavorite(info.Name) {
		f.Delete(info.Name)
		return f.IsFavorite(info.Name)
	}
	if err := f.store.Add(info); err != nil {
		log.Printf("warning: save favorite: %v", err)
		return false
	}
	f.Reload()
	return f.IsFavorite(info.Name)
}

// Delete removes every favorite with exactly this name.
func (f *Favorites) Delete(name string) {
	if _, err := f.store.DeleteByName(name); err != nil {
		log.Printf("warning: delete favorite: %v", err)
		return
	}
	f.Reload()
}

// Filtered returns favorites narrowed by a search query.
func (f *Favorites) Filtered(query string) []types.CharacterInfo {
	return core.FilterByName(f.Items(), query)
}
