package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gabrielfornes/flowsheet/internal/flowsheet"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Flowsheet") + "  " + mutedStyle.Render(time.Now().Format("Mon Jan 2, 2006")))
	b.WriteString("\n")
	b.WriteString(m.viewTotals())
	b.WriteString("\n\n")

	if m.overlay.Kind == flowsheet.OverlayHEPPreview {
		b.WriteString(m.viewPreview())
	} else {
		b.WriteString(m.viewBody())
	}
	b.WriteString("\n")
	b.WriteString(m.viewStatus())
	b.WriteString("\n")
	b.WriteString(m.viewHelp())

	return appStyle.MaxWidth(m.width).MaxHeight(m.height).Render(b.String())
}

func (m Model) viewTotals() string {
	t := m.doc.Totals()
	hep := len(m.doc.Checked())
	return mutedStyle.Render(fmt.Sprintf("%d min · %s · %s · %s in HEP",
		t.Minutes, plural(t.Units, "unit"), plural(len(m.doc.Groups), "group"), plural(hep, "exercise")))
}

// viewBody renders the visible window of the document, padded to a fixed
// height so the footer does not jump.
func (m Model) viewBody() string {
	lines, _, _ := m.layout()
	h := m.bodyHeight()

	out := make([]string, 0, h)
	for i := m.offset; i < len(lines) && len(out) < h; i++ {
		out = append(out, lines[i].text)
	}
	for len(out) < h {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

func (m Model) viewPreview() string {
	content := m.previewViewport.View()
	if m.previewRendered == "" {
		content = mutedStyle.Render("Rendering...")
	}
	pane := focusedBorderStyle.
		Width(m.previewViewport.Width + 4).
		Height(m.previewViewport.Height).
		Render(content)
	return paneHeaderStyle.Render("HEP preview") + "\n" + pane
}

func (m Model) viewStatus() string {
	switch {
	case m.statusMsg == "":
		return ""
	case m.statusErr:
		return errorStyle.Render(m.statusMsg)
	default:
		return successStyle.Render(m.statusMsg)
	}
}

func (m Model) viewHelp() string {
	switch {
	case m.overlay.Kind == flowsheet.OverlayHEPPreview:
		return helpBarStyle.Render(helpEntry("↑/↓", "scroll") + " " + helpEntry("s", "export") + " " + helpEntry("esc", "close"))
	case m.editing:
		return helpBarStyle.Render(helpEntry("tab", "next field") + " " + helpEntry("enter", "done") + " " +
			helpEntry("esc", "done") + " " + helpEntry(string(m.cfg.Editor.TriggerRune()), "library (empty name)"))
	case m.drag.Active():
		return helpBarStyle.Render(helpEntry("release", "drop") + " " + helpEntry("esc", "cancel"))
	}
	return helpBarStyle.Render(m.help.View(m.keys))
}
