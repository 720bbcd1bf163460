package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/mvg/internal/urls"
	"github.com/muurk/mvg/internal/version"
)

// AppName is shown in the header bar
const AppName = "MVG ROUTE PLANNER"

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants for responsive terminal width
const (
	MinTerminalWidth  = 72 // Minimum supported terminal width
	MinTerminalHeight = 20 // Minimum supported terminal height
)

// Color palette
var (
	PrimaryColor = lipgloss.Color("#005BAC") // MVG blue
	AccentColor  = lipgloss.Color("#7D56F4") // Purple
	WarningColor = lipgloss.Color("#FFA500") // Orange
	ErrorColor   = lipgloss.Color("#FF0000") // Red
	SuccessColor = lipgloss.Color("#43BF6D") // Green

	TextColor   = lipgloss.Color("#FFFFFF") // White
	SubtleColor = lipgloss.Color("#626262") // Gray
	BorderColor = lipgloss.Color("#005BAC") // Same as primary
)

// Common styles
var (
	// Field box, not focused
	FieldStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 1)

	// Field box with focus in Normal or Selecting mode
	FocusedFieldStyle = FieldStyle.
				BorderForeground(PrimaryColor).
				Foreground(TextColor)

	// Field box being edited
	EditingFieldStyle = FieldStyle.
				BorderForeground(WarningColor).
				Foreground(WarningColor)

	// Field box title
	FieldTitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// Routes table header
	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(AccentColor).
				Bold(true)

	// Selected routes table row
	TableSelectedStyle = lipgloss.NewStyle().
				Reverse(true)

	// Help text style
	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// Status bar style
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// Mode badge style
	ModeStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(PrimaryColor).
			Bold(true).
			Padding(0, 1)

	// Spinner style
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// Error panel style
	ErrorBoxStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor).
			Padding(1, 2)

	// Hint text inside error panels
	HintStyle = lipgloss.NewStyle().
			Foreground(TextColor)
)

// BuildHeaderContent creates header content with app name and GitHub URL
func BuildHeaderContent() string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " " + AppVersion())

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(urls.Project)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

// RenderApplicationContainer wraps a screen in the header, footer and outer border,
// filling the whole terminal.
func RenderApplicationContainer(content string, footerText string, terminalWidth int, terminalHeight int) string {
	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	inner := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(BuildHeaderContent()),
		lipgloss.NewStyle().Width(terminalWidth-4).Render(content),
		footerStyle.Render(HelpStyle.Render(footerText)),
	)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2).
		Height(terminalHeight - 2).
		AlignVertical(lipgloss.Top).
		Render(inner)

	return lipgloss.Place(terminalWidth, terminalHeight, lipgloss.Left, lipgloss.Top, bordered)
}

// SafePanelWidth keeps an error panel inside the terminal
func SafePanelWidth(requestedWidth, terminalWidth int) int {
	maxWidth := terminalWidth - 4
	if maxWidth < 40 {
		maxWidth = 40
	}
	if requestedWidth < maxWidth {
		return requestedWidth
	}
	return maxWidth
}

// fieldStyle picks the box style for a field given focus and editing state
func fieldStyle(focused, editing bool) lipgloss.Style {
	switch {
	case focused && editing:
		return EditingFieldStyle
	case focused:
		return FocusedFieldStyle
	default:
		return FieldStyle
	}
}
