package tui

import (
	"fmt"

	"github.com/adamavenir/heroes/internal/core"
	"github.com/adamavenir/heroes/internal/types"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = msg.Width - 4
		m.resizeDetail()
		m.renderDetail()
		m.clampCursor()
		return m, nil
	case charactersLoadedMsg:
		m.loading = false
		m.listState = msg.state
		m.clampCursor()
		return m, nil
	case favoritesChangedMsg:
		m.favorites.Reload()
		m.renderDetail()
		m.clampCursor()
		return m, waitForFavoritesChange(m.watcher, m.favoritesLog)
	case tea.KeyMsg:
		if m.search.Focused() {
			return m.handleSearchKey(msg)
		}
		if m.detail != nil {
			return m.handleDetailKey(msg)
		}
		return m.handleListKey(msg)
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.search.Blur()
		m.search.SetValue("")
		m.cursor, m.offset = 0, 0
		return m, nil
	case "enter":
		m.search.Blur()
		return m, nil
	case "up", "down":
		m.search.Blur()
		return m.handleListKey(msg)
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.cursor, m.offset = 0, 0
	}
	return m, cmd
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q", "backspace":
		m.detail = nil
		return m, nil
	case "f":
		m.toggleFavorite(*m.detail)
		m.renderDetail()
		return m, nil
	case "y":
		m.copyImageURL(m.detail.ThumbnailPath, m.detail.ThumbnailExtension)
		return m, nil
	}
	var cmd tea.Cmd
	m.detailView, cmd = m.detailView.Update(msg)
	return m, cmd
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab", "shift+tab":
		if m.tab == tabCharacters {
			m.tab = tabFavorites
		} else {
			m.tab = tabCharacters
		}
		m.cursor, m.offset = 0, 0
		m.status = ""
	case "/":
		m.status = ""
		return m, m.search.Focus()
	case "esc":
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.cursor, m.offset = 0, 0
		}
	case "up", "k":
		m.cursor--
		m.clampCursor()
	case "down", "j":
		m.cursor++
		m.clampCursor()
	case "home", "g":
		m.cursor = 0
		m.clampCursor()
	case "end", "G":
		m.cursor = len(m.visibleItems()) - 1
		m.clampCursor()
	case "enter":
		if item, ok := m.selected(); ok {
			m.detail = &item
			m.resizeDetail()
			m.renderDetail()
		}
	case "f":
		if item, ok := m.selected(); ok {
			m.toggleFavorite(item)
			m.clampCursor()
		}
	case "d":
		if m.tab != tabFavorites {
			return m, nil
		}
		if item, ok := m.selected(); ok {
			m.favorites.Delete(item.Name)
			m.status = fmt.Sprintf("Unfaved %s", item.Name)
			m.clampCursor()
		}
	case "y":
		if item, ok := m.selected(); ok {
			m.copyImageURL(item.ThumbnailPath, item.ThumbnailExtension)
		}
	case "r":
		if m.loading {
			return m, nil
		}
		m.loading = true
		m.status = ""
		return m, loadCharactersCmd(m.characters)
	}
	return m, nil
}

func (m *Model) toggleFavorite(item types.CharacterInfo) {
	if m.favorites.Toggle(item) {
		m.status = fmt.Sprintf("Faved %s", item.Name)
	} else {
		m.status = fmt.Sprintf("Unfaved %s", item.Name)
	}
}

func (m *Model) copyImageURL(path, extension string) {
	url := core.ImageURL(path, extension)
	if err := m.copyText(url); err != nil {
		m.status = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	m.status = "Copied " + url
}

func (m *Model) resizeDetail() {
	height := m.height - 3
	if height < 1 {
		height = 1
	}
	m.detailView.Width = m.width
	m.detailView.Height = height
}
