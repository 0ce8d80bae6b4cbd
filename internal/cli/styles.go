// Package cli renders metalcycle results in the terminal: lipgloss styles,
// tables, JSON/YAML encoding, prompts, progress and interrupt handling.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette. Greens for circular outcomes, amber and brick for linear ones.
var (
	LeafColor  = lipgloss.Color("#2E9E6A")
	MossColor  = lipgloss.Color("#7BC8A4")
	AmberColor = lipgloss.Color("#F2B134")
	BrickColor = lipgloss.Color("#D9534F")
	SlateColor = lipgloss.Color("#6C7A89")
)

var (
	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(LeafColor).MarginBottom(1)

	// SubtitleStyle describes the scenario under a title.
	SubtitleStyle = lipgloss.NewStyle().Italic(true).Foreground(SlateColor)

	// TableHeaderStyle is used for column headings.
	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(LeafColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().Bold(true)

	SuccessStyle = lipgloss.NewStyle().Foreground(LeafColor)
	InfoStyle    = lipgloss.NewStyle().Foreground(MossColor)
	WarningStyle = lipgloss.NewStyle().Foreground(AmberColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(BrickColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SlateColor)

	// PromptStyle is used for questions that wait for input.
	PromptStyle = lipgloss.NewStyle().Bold(true).Foreground(AmberColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	CycleIcon   = "♻️"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a section title.
func FormatTitle(title string) string {
	return TitleStyle.Render(CycleIcon + " " + title)
}

// FormatPrompt formats a question.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " ")
}

// ScoreStyle colours a 0-100 score by band: 80 and above green, 40 and
// above amber, below 40 brick.
func ScoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return SuccessStyle
	case score >= 40:
		return WarningStyle
	default:
		return ErrorStyle
	}
}
