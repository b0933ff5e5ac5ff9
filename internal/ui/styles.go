package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Label       lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Searching   lipgloss.Style
	Result      lipgloss.Style
	Selected    lipgloss.Style
	Highlight   lipgloss.Style
	Toggle      lipgloss.Style
	ToggleOn    lipgloss.Style
	Help        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Label:       lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Dim:         lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Searching:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Result:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Selected:    lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Toggle:      lipgloss.NewStyle().Faint(true),
		ToggleOn:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Help:        lipgloss.NewStyle().Faint(true),
	}
}
