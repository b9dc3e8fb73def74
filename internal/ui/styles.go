package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - all colors meet WCAG AA contrast (4.5:1) on both black and dark surfaces
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BlueColor      = lipgloss.Color("#60A5FA") // Blue

	// Convenience styles for colors
	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning   = lipgloss.NewStyle().Foreground(WarningColor)
	Error     = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)
	Info      = lipgloss.NewStyle().Foreground(BlueColor)

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor)

	ProviderBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(BlueColor)

	PackageName = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor)

	PackageVersion = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	InstalledMark = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	Index = lipgloss.NewStyle().
		Foreground(MutedColor)

	CommandEcho = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)
)

// Status glyphs prefixed to console messages
const (
	glyphSuccess = "✓"
	glyphError   = "✗"
	glyphWarn    = "!"
	glyphInfo    = "·"
	glyphTask    = "→"
)
