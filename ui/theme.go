package ui

import "github.com/charmbracelet/lipgloss"

// Raw SGR sequences injected around preview lines. Injection keeps whatever
// styling the backend already emitted, where a lipgloss re-render would not.
const (
	// Dark gray background (ANSI 256 color 238) for the hover span.
	spanBgStart = "\x1b[48;5;238m"
	spanBgEnd   = "\x1b[49m"

	// Underline for the viewport-local pattern match tier.
	matchStart = "\x1b[4m"
	matchEnd   = "\x1b[24m"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)

	focusedBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("4"))

	unfocusedBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8"))

	gutterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// gutterMark is the marker drawn beside highlighted preview lines.
const gutterMark = "▌"
