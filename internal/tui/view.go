package tui

import (
	"fmt"
	"strings"

	"github.com/adamavenir/heroes/internal/core"
	"github.com/adamavenir/heroes/internal/listing"
	"github.com/adamavenir/heroes/internal/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const nameColumn = 28

func (m *Model) View() string {
	if m.detail != nil {
		return m.detailView.View() + "\n" + m.footer()
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	if m.search.Focused() || m.search.Value() != "" {
		b.WriteString(m.search.View())
	} else {
		b.WriteString(helpStyle.Render("/ to search"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m *Model) renderTabs() string {
	characters := "Characters"
	if loaded, ok := m.listState.(listing.Loaded); ok {
		characters = fmt.Sprintf("Characters (%d)", len(loaded.Characters))
	}
	favorites := fmt.Sprintf("Favorites (%d)", len(m.favorites.Items()))

	if m.tab == tabCharacters {
		return lipgloss.JoinHorizontal(lipgloss.Top, tabActiveStyle.Render(characters), tabInactiveStyle.Render(favorites))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabInactiveStyle.Render(characters), tabActiveStyle.Render(favorites))
}

func (m *Model) renderBody() string {
	if m.tab == tabCharacters {
		switch state := m.listState.(type) {
		case listing.Idle:
			return metaStyle.Render("Loading characters...")
		case listing.Failed:
			return errorStyle.Render(fmt.Sprintf("Could not load characters: %v", state.Err)) + "\n" +
				helpStyle.Render("press r to retry")
		case listing.Loaded:
			if state.Empty() {
				return metaStyle.Render("No characters")
			}
		}
	} else if len(m.favorites.Items()) == 0 {
		return metaStyle.Render("No favorites yet. Press f on a character to fave it.")
	}

	items := m.visibleItems()
	if len(items) == 0 {
		return metaStyle.Render(fmt.Sprintf("No matches for %q", m.search.Value()))
	}

	end := m.offset + m.listHeight()
	if end > len(items) {
		end = len(items)
	}
	rows := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		rows = append(rows, m.renderRow(items[i], i == m.cursor))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderRow(item types.CharacterInfo, selected bool) string {
	marker := "  "
	if selected {
		marker = cursorStyle.Render("› ")
	}
	star := "  "
	if m.favorites.IsFavorite(item.Name) {
		star = favoriteStyle.Render("★ ")
	}

	name := runewidth.FillRight(runewidth.Truncate(item.Name, nameColumn, "…"), nameColumn)
	if selected {
		name = cursorStyle.Render(name)
	} else {
		name = nameStyle.Render(name)
	}

	remaining := m.width - nameColumn - 6
	if remaining < 8 {
		return marker + star + name
	}
	description := strings.Join(strings.Fields(item.Description), " ")
	description = runewidth.Truncate(description, remaining, "…")
	return marker + star + name + "  " + descriptionStyle.Render(description)
}

func (m *Model) renderDetail() {
	if m.detail == nil {
		return
	}
	item := *m.detail
	width := m.width - 2
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(item.Name))
	if m.favorites.IsFavorite(item.Name) {
		b.WriteString(" " + favoriteStyle.Render("★ faved"))
	}
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Render(item.Description))
	b.WriteString("\n\n")
	b.WriteString(metaStyle.Render("Image: " + core.ImageURL(item.ThumbnailPath, item.ThumbnailExtension)))

	m.detailView.SetContent(b.String())
	m.detailView.GotoTop()
}

func (m *Model) footer() string {
	var help string
	switch {
	case m.detail != nil:
		help = "f fave · y copy image · esc back"
	case m.search.Focused():
		help = "enter done · esc clear"
	case m.tab == tabFavorites:
		help = "↑/↓ move · enter detail · d delete · y copy image · tab switch · q quit"
	default:
		help = "↑/↓ move · enter detail · f fave · y copy image · r reload · tab switch · q quit"
	}

	line := helpStyle.Render(help)
	if m.loading && m.listState != nil {
		if _, idle := m.listState.(listing.Idle); !idle {
			line += "  " + metaStyle.Render("reloading...")
		}
	}
	if m.status != "" {
		line += "\n" + statusStyle.Render(m.status)
	}
	return line
}
