package styles

import (
	"github.com/allbin/ledlink"
	"github.com/allbin/ledlink/internal/tui/colors"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Header styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Mauve).
			Background(colors.Surface0).
			Padding(0, 1)

	// Outcome styles
	OutcomeStateStyle = lipgloss.NewStyle().
				Foreground(colors.Green).
				Bold(true)

	OutcomeTimeoutStyle = lipgloss.NewStyle().
				Foreground(colors.Yellow).
				Bold(true)

	OutcomeErrorStyle = lipgloss.NewStyle().
				Foreground(colors.Red).
				Bold(true)

	// Table styles
	TableBaseStyle = lipgloss.NewStyle().
			Foreground(colors.Text).
			BorderForeground(colors.Surface2).
			Align(lipgloss.Left)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(colors.Subtext0).
				Bold(true)

	// Error styles
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Red)

	// Info styles
	InfoStyle = lipgloss.NewStyle().
			Foreground(colors.Overlay0).
			Italic(true)
)

// OutcomeStyle picks the style an exchange outcome is shown in
func OutcomeStyle(outcome ledlink.Outcome) lipgloss.Style {
	switch outcome {
	case ledlink.OutcomeState, ledlink.OutcomeSent:
		return OutcomeStateStyle
	case ledlink.OutcomeTimeout:
		return OutcomeTimeoutStyle
	default:
		return OutcomeErrorStyle
	}
}

// SwatchStyle fills a cell with the device color
func SwatchStyle(c ledlink.Color) lipgloss.Style {
	return lipgloss.NewStyle().Background(colors.FromHSV(c))
}
