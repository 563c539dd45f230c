package tui

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/adamavenir/heroes/internal/db"
	"github.com/adamavenir/heroes/internal/listing"
	"github.com/adamavenir/heroes/internal/types"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// Options configure the browser.
type Options struct {
	Fetcher listing.Fetcher
	Store   listing.FavoriteStore
	DataDir string
}

// Run starts the browser and blocks until the user quits.
func Run(opts Options) error {
	if os.Getenv("HEROES_DEBUG") != "" {
		f, err := tea.LogToFile(filepath.Join(opts.DataDir, "debug.log"), "heroes")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		// Log lines would tear the alt screen.
		log.SetOutput(io.Discard)
		defer log.SetOutput(os.Stderr)
	}

	model := NewModel(opts)
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

type tab int

const (
	tabCharacters tab = iota
	tabFavorites
)

// Model implements the browser UI.
type Model struct {
	characters   *listing.CharacterList
	favorites    *listing.Favorites
	watcher      *fsnotify.Watcher
	favoritesLog string
	copyText     func(string) error

	tab        tab
	search     textinput.Model
	cursor     int
	offset     int
	detail     *types.CharacterInfo
	detailView viewport.Model
	listState  listing.State
	loading    bool
	status     string
	width      int
	height     int
}

// NewModel builds the browser with favorites loaded and the first fetch
// pending in Init.
func NewModel(opts Options) *Model {
	search := textinput.New()
	search.Placeholder = "Search characters"
	search.Prompt = "/ "
	search.CharLimit = 64

	m := &Model{
		characters:   listing.NewCharacterList(opts.Fetcher, nil),
		favorites:    listing.NewFavorites(opts.Store, nil),
		copyText:     clipboard.WriteAll,
		search:       search,
		detailView:   viewport.New(0, 0),
		listState:    listing.Idle{},
		width:        80,
		height:       24,
		favoritesLog: db.FavoritesLogPath(opts.DataDir),
	}
	m.favorites.Reload()

	if opts.DataDir != "" {
		if w, err := newFavoritesWatcher(opts.DataDir); err != nil {
			log.Printf("warning: watch favorites: %v", err)
		} else {
			m.watcher = w
		}
	}
	return m
}

// Close stops the favorites watcher.
func (m *Model) Close() {
	if m.watcher != nil {
		_ = m.watcher.Close()
		m.watcher = nil
	}
}

func (m *Model) Init() tea.Cmd {
	m.loading = true
	return tea.Batch(loadCharactersCmd(m.characters), waitForFavoritesChange(m.watcher, m.favoritesLog))
}

// visibleItems is the current tab's list after the search filter.
func (m *Model) visibleItems() []types.CharacterInfo {
	query := m.search.Value()
	if m.tab == tabFavorites {
		return m.favorites.Filtered(query)
	}
	return m.characters.Filtered(query)
}

func (m *Model) selected() (types.CharacterInfo, bool) {
	items := m.visibleItems()
	if m.cursor < 0 || m.cursor >= len(items) {
		return types.CharacterInfo{}, false
	}
	return items[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.visibleItems())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	rows := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// listHeight is the number of rows available for list entries.
func (m *Model) listHeight() int {
	// header, search line, blank, footer, status
	h := m.height - 5
	if h < 1 {
		h = 1
	}
	return h
}
