// Package ui provides the terminal status surface for the click engine.
package ui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color scheme used throughout the application
type Colors struct {
	Subtle    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Special   lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor
}

var defaultColors = Colors{
	Subtle:    lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"},
	Highlight: lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"},
	Special:   lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"},
	Warning:   lipgloss.AdaptiveColor{Light: "#C08000", Dark: "#F5C26B"},
	Error:     lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF4040"},
}

// Style represents a collection of styles used in the application
type Style struct {
	Title          lipgloss.Style
	ActiveStatus   lipgloss.Style
	InactiveStatus lipgloss.Style
	Label          lipgloss.Style
	Value          lipgloss.Style
	Counter        lipgloss.Style
	Notice         lipgloss.Style
	Help           lipgloss.Style
	Error          lipgloss.Style
	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
	Panel          lipgloss.Style
}

// DefaultStyle returns the default style configuration
func DefaultStyle() Style {
	base := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)

	return Style{
		Title: base.
			Bold(true).
			Foreground(defaultColors.Highlight),

		ActiveStatus: base.
			Bold(true).
			Foreground(defaultColors.Special),

		InactiveStatus: base.
			Foreground(defaultColors.Subtle),

		Label: base.
			Width(12).
			Foreground(defaultColors.Subtle),

		Value: lipgloss.NewStyle(),

		Counter: lipgloss.NewStyle().
			Bold(true).
			Foreground(defaultColors.Highlight),

		Notice: base.
			Foreground(defaultColors.Warning),

		Help: base.
			Foreground(defaultColors.Subtle),

		Error: base.
			Foreground(defaultColors.Error),

		ProgressFilled: lipgloss.NewStyle().
			Background(defaultColors.Special),

		ProgressEmpty: lipgloss.NewStyle().
			Background(defaultColors.Subtle),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(defaultColors.Highlight).
			Padding(0, 1),
	}
}

// Current holds the current style configuration
var Current = DefaultStyle()
