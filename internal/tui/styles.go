package tui

import "github.com/charmbracelet/lipgloss"

var (
	tabActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("161")).Padding(0, 1)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	cursorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	favoriteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	nameStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	descriptionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	metaStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
)
