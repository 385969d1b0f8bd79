// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Hints, help text, footers
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"}

	// Prompt
	PromptSymbolColor = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"}
	PromptBorderColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	PromptFocusColor  = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	PromptSymbolStyle = lipgloss.NewStyle().Foreground(PromptSymbolColor).Bold(true)
	PlaceholderStyle  = lipgloss.NewStyle().Foreground(TextPlaceholderColor)
	CursorStyle       = lipgloss.NewStyle().Reverse(true)

	// Transcript entries
	EntryHeaderStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true)
)

// PromptBorder returns the box drawn around the input.
func PromptBorder(focused bool) lipgloss.Style {
	color := PromptBorderColor
	if focused {
		color = PromptFocusColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1)
}
