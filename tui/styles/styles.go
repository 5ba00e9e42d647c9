package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Primary colors
	PrimaryColor   = lipgloss.Color("#34D399") // Emerald
	SecondaryColor = lipgloss.Color("#10B981") // Deep emerald
	AccentColor    = lipgloss.Color("#F59E0B") // Amber

	// Sentiment colors
	PositiveColor = lipgloss.Color("#34D399")
	NegativeColor = lipgloss.Color("#F87171")
	NeutralColor  = lipgloss.Color("#9CA3AF")

	// Background colors
	BackgroundColor      = lipgloss.Color("#1F2937")
	PanelBackgroundColor = lipgloss.Color("#111827")
	BorderColor          = lipgloss.Color("#374151")
	FocusBorderColor     = lipgloss.Color("#10B981")

	// Text colors
	TextColor          = lipgloss.Color("#F9FAFB")
	TextSecondaryColor = lipgloss.Color("#9CA3AF")
	TextMutedColor     = lipgloss.Color("#6B7280")
)

// Panel styles
var (
	// Base card style
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	// Highlighted card style
	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(FocusBorderColor).
				Padding(0, 1)

	// Card title style
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Padding(0, 1)

	// Header row style
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextSecondaryColor)

	// Row styles
	RowStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Background(lipgloss.Color("#374151"))
)

// Text styles
var (
	BrandStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	TaglineStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor)

	LabelStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	PositiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PositiveColor)

	NegativeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(NegativeColor)

	NeutralStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(NeutralColor)

	LinkStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Underline(true)

	// Keyword and narrative chips
	ChipStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Background(lipgloss.Color("#064E3B")).
			Padding(0, 1)

	NegativeChipStyle = lipgloss.NewStyle().
				Foreground(NegativeColor).
				Background(lipgloss.Color("#450A0A")).
				Padding(0, 1)

	ErrorBannerStyle = lipgloss.NewStyle().
				Foreground(NegativeColor).
				Border(lipgloss.NormalBorder()).
				BorderForeground(NegativeColor).
				Padding(0, 1)
)

// Input styles
var (
	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(FocusBorderColor).
				Padding(0, 1)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(TextMutedColor)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(PanelBackgroundColor).
			Background(SecondaryColor).
			Padding(0, 1)
)

// Tab styles
var (
	TabStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 2)

	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			Background(lipgloss.Color("#064E3B")).
			Padding(0, 2)
)

// Status bar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(BackgroundColor).
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	StatusBarDescStyle = lipgloss.NewStyle().
				Foreground(TextSecondaryColor)
)

// Helper function to render a title bar for a card
func RenderTitle(title string, focused bool) string {
	style := TitleStyle
	if focused {
		style = style.Foreground(FocusBorderColor)
	}
	return style.Render(title)
}

// RenderKey renders one "key description" status bar hint.
func RenderKey(key, desc string) string {
	return StatusBarKeyStyle.Render(key) + StatusBarDescStyle.Render(" "+desc)
}
