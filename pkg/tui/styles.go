package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

// Accent styles a string with the accent color for CLI output.
func Accent(s string) string {
	return accentStyle.Render(s)
}

// Success styles a success message.
func Success(s string) string {
	return successStyle.Render(s)
}

// Error styles an error message.
func Error(s string) string {
	return errorStyle.Render(s)
}

// Theme returns the huh theme used by the interactive pickers.
func Theme() *huh.Theme {
	t := huh.ThemeCharm()
	p := lipgloss.Color("45")

	t.Focused.Title = t.Focused.Title.Foreground(p).Bold(true)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(p)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(p)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(p)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(p)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(lipgloss.Color("0")).Background(p)

	return t
}
