package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the dashboard.
type Theme struct {
	Name string

	Title   string
	Border  string
	Text    string
	Muted   string
	Accent  string
	Success string
	Warning string
	Danger  string
}

// Styles holds the derived lipgloss styles.
type Styles struct {
	Title   lipgloss.Style
	Border  lipgloss.Style
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Title)).Bold(true),
		Border:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Border)),
		Text:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
	}
}

var themes = []Theme{
	{
		Name:    "Cypherpunk",
		Title:   "#50fa7b",
		Border:  "#2d5c3f",
		Text:    "#d8ffe8",
		Muted:   "#5f8a70",
		Accent:  "#8be9fd",
		Success: "#50fa7b",
		Warning: "#f1fa8c",
		Danger:  "#ff5555",
	},
	{
		Name:    "Dracula",
		Title:   "#bd93f9",
		Border:  "#44475a",
		Text:    "#f8f8f2",
		Muted:   "#6272a4",
		Accent:  "#8be9fd",
		Success: "#50fa7b",
		Warning: "#f1fa8c",
		Danger:  "#ff5555",
	},
	{
		Name:    "Mono",
		Title:   "#ffffff",
		Border:  "#666666",
		Text:    "#dddddd",
		Muted:   "#888888",
		Accent:  "#ffffff",
		Success: "#dddddd",
		Warning: "#bbbbbb",
		Danger:  "#ffffff",
	},
}

// GetTheme returns the named theme, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the name of the theme after the given one, wrapping.
func NextTheme(name string) string {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}
