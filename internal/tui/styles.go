package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/gabrielfornes/flowsheet/internal/flowsheet"
)

// renderMarkdown renders markdown content using glamour.
func renderMarkdown(width int, content string) string {
	if content == "" {
		return ""
	}

	// A fixed style avoids slow terminal background detection.
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	out, err := r.Render(content)
	if err != nil {
		return content
	}

	return strings.TrimSpace(out)
}

// Colors
var (
	colorPrimary   = lipgloss.Color("#5FB3B3") // clinic teal
	colorSecondary = lipgloss.Color("#A8D8B9") // soft green
	colorMuted     = lipgloss.Color("#666666")
	colorHighlight = lipgloss.Color("#F2F7F7")
	colorDanger    = lipgloss.Color("#E06C75")
	colorWarning   = lipgloss.Color("#E5C07B")
	colorPulse     = lipgloss.Color("#2B4F4F")
	colorLink      = lipgloss.Color("#61AFEF")
)

// Layout styles
var (
	// App-level wrapper
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	// Title bar
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)


	// Focused pane border
	focusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(1, 2)
)

// Row styles
var (
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorHighlight).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	pulseStyle = lipgloss.NewStyle().
			Background(colorPulse)

	removingStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Strikethrough(true)

	todayStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	linkStyle = lipgloss.NewStyle().
			Foreground(colorLink).
			Underline(true)

	dropMarkerStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)
)

// Help bar
var (
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	helpBarStyle = lipgloss.NewStyle().
			MarginTop(1)
)

// Status messages
var (
	successStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger)
)

// Misc
var (
	cursorStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	groupHeaderStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	tagStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	paneHeaderStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)
)

// statusChip renders the completion chip of a record.
func statusChip(s flowsheet.Status) string {
	switch s {
	case flowsheet.StatusDone:
		return successStyle.Render("● " + s.Label())
	case flowsheet.StatusInProgress:
		return todayStyle.Render("◐ " + s.Label())
	default:
		return mutedStyle.Render("○ " + s.Label())
	}
}

// helpEntry renders a single "[key] description" help item.
func helpEntry(key, desc string) string {
	return helpKeyStyle.Render("["+key+"]") + " " + helpDescStyle.Render(desc)
}

// Constants for layout
const (
	defaultTerminalWidth  = 80
	defaultTerminalHeight = 24

	// Lines above the document body: app padding, title, totals, blank.
	bodyTop = 4
	// Lines below the document body: status, help margin, help, padding.
	footerHeight = 4

	pickerCellWidth = 26
	maxCodeRows     = 8
)
