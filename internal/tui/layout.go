package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gabrielfornes/flowsheet/internal/flowsheet"
)

// hitKind says what a body line is, for mouse hit-testing.
type hitKind int

const (
	hitNone hitKind = iota
	hitHeader
	hitRow
	hitListEnd
	hitPickerEntry
	hitCodeEntry
	hitMenuItem
	hitSuggestion
)

// hit is the target under one body line. For rows, index is the record's
// position in its group and line the line within the row. For picker grid
// lines, index is the first entry of the grid row.
type hit struct {
	kind    hitKind
	groupID string
	index   int
	line    int
}

type bodyLine struct {
	text string
	hit  hit
}

// Left edge of inline panels: app padding plus the panel gutter.
const (
	panelGutter = "    │ "
	panelLeft   = 2 + 6
)

// layout renders the document body as lines, each tagged with its hit target.
// It also returns the line of the cursor and the last line of the overlay
// opened under it (or -1).
func (m Model) layout() (lines []bodyLine, cursor, overlayEnd int) {
	cursor, overlayEnd = -1, -1
	add := func(text string, h hit) {
		lines = append(lines, bodyLine{text: text, hit: h})
	}
	mark := func() { overlayEnd = len(lines) - 1 }

	target, hasTarget := m.drag.Target()
	dragging := m.drag.Active()
	source := m.drag.Source()
	// No marker while the target is the dragged record's own slot.
	if hasTarget && target.GroupID == source.GroupID &&
		(target.Index == source.Index || target.Index == source.Index+1) {
		hasTarget = false
	}

	for _, g := range m.doc.Snapshot() {
		if m.groupID == g.ID && m.recordID == "" {
			cursor = len(lines)
		}
		add(m.renderHeader(g), hit{kind: hitHeader, groupID: g.ID})

		switch {
		case m.overlay.Is(flowsheet.OverlayGroupMenu, g.ID):
			lines = append(lines, m.renderMenu()...)
			mark()
		case m.overlay.Is(flowsheet.OverlayBillingField, g.ID):
			lines = append(lines, m.renderBilling(g)...)
			mark()
		}

		if g.Collapsed {
			add("", hit{})
			continue
		}

		for ri, r := range g.Records {
			if m.recordID == r.ID {
				cursor = len(lines)
			}
			before := dragging && hasTarget && target.GroupID == g.ID && target.Index == ri
			isSource := dragging && source.RecordID == r.ID
			for k, text := range m.renderRow(r, before, isSource) {
				line := k
				if line >= m.rowHeight() {
					line = m.rowHeight() - 1
				}
				add(text, hit{kind: hitRow, groupID: g.ID, index: ri, line: line})
			}

			switch {
			case m.overlay.Is(flowsheet.OverlayRecordMenu, r.ID):
				lines = append(lines, m.renderMenu()...)
				mark()
			case m.overlay.Is(flowsheet.OverlayPicker, r.ID) && m.picker != nil:
				lines = append(lines, m.renderPicker()...)
				mark()
			case m.overlay.Is(flowsheet.OverlayLinkTooltip, r.ID):
				lines = append(lines, m.renderLinkTooltip(r)...)
				mark()
			}
		}

		end := mutedStyle.Render("    + Add intervention")
		if dragging && hasTarget && target.GroupID == g.ID && target.Index == len(g.Records) {
			end = dropMarkerStyle.Render("  ▸ drop at end of group")
		}
		add(end, hit{kind: hitListEnd, groupID: g.ID, index: len(g.Records)})
		add("", hit{})
	}

	if len(m.doc.Groups) == 0 {
		add(mutedStyle.Render("  No groups yet. Press [a] to add CPT codes or [E] for an evaluation."), hit{})
	}

	if m.overlay.Kind == flowsheet.OverlayCodePicker || m.overlay.Kind == flowsheet.OverlayEvalPicker {
		lines = append(lines, m.renderCodePicker()...)
		mark()
		cursor = -1
	}
	return lines, cursor, overlayEnd
}

func (m Model) renderHeader(g flowsheet.Group) string {
	gutter := "  "
	if m.groupID == g.ID && m.recordID == "" {
		gutter = cursorStyle.Render("› ")
	}
	fold := "▾ "
	if g.Collapsed {
		fold = "▸ "
	}

	var b []string
	if g.Billing.Code != "" {
		b = append(b, g.Billing.Code)
	}
	if g.Billing.Modifier != "" {
		b = append(b, "mod "+g.Billing.Modifier)
	}
	t := flowsheet.GroupTotals(g)
	if g.Billing.Quantity != "" {
		b = append(b, fmt.Sprintf("%d min · %s", t.Minutes, plural(t.Units, "unit")))
	}
	if g.Billing.Provider != "" {
		b = append(b, g.Billing.Provider)
	}

	text := groupHeaderStyle.Render(fold+g.Label) + "  " + tagStyle.Render(g.Tag)
	if len(b) > 0 {
		text += "  " + mutedStyle.Render("["+strings.Join(b, " · ")+"]")
	}
	if g.Collapsed {
		text += "  " + mutedStyle.Render(fmt.Sprintf("(%d)", len(g.Records)))
	}
	if m.pulsing(g.ID) {
		text = pulseStyle.Render(text)
	}
	return gutter + text
}

// renderRow renders a record as rowHeight lines, more while details are
// being edited.
func (m Model) renderRow(r flowsheet.Record, dropBefore, isSource bool) []string {
	selected := m.recordID == r.ID
	editingThis := selected && m.editing

	gutter := "    "
	switch {
	case dropBefore:
		gutter = dropMarkerStyle.Render("  ▸ ")
	case selected:
		gutter = cursorStyle.Render("  › ")
	}

	check := "[ ]"
	if r.Checked {
		check = successStyle.Render("[x]")
	}

	var name string
	switch {
	case editingThis && m.field == fieldName:
		name = m.input.View()
	case r.Name == "" && r.Editable():
		name = mutedStyle.Render("Type " + string(m.cfg.Editor.TriggerRune()) + " to search the library")
	default:
		name = r.Name
		if _, linked := r.Linked(); linked {
			name = linkStyle.Render(r.Name) + " ↗"
		} else if selected {
			name = selectedItemStyle.Render(r.Name)
		} else {
			name = normalItemStyle.Render(r.Name)
		}
	}

	dose := m.fieldView(r, fieldSets, fmt.Sprint(r.Sets)) + "×" + m.fieldView(r, fieldReps, fmt.Sprint(r.Reps))
	weight := m.fieldView(r, fieldWeight, r.Weight)
	first := fmt.Sprintf("%s%s %s  %s  %s", gutter, check, statusChip(r.Status), name, mutedStyle.Render(dose))
	if weight != "" {
		first += mutedStyle.Render(" · ") + weight
	}
	if r.Today {
		first += "  " + todayStyle.Render("★ today")
	}

	out := []string{first}
	if editingThis && m.field == fieldDetails {
		for _, l := range strings.Split(m.details.View(), "\n") {
			out = append(out, "        "+l)
		}
	} else if m.rowHeight() > 1 {
		details := r.Details
		if i := strings.IndexByte(details, '\n'); i >= 0 {
			details = details[:i] + " …"
		}
		out = append(out, "        "+mutedStyle.Render(details))
	}
	for len(out) < m.rowHeight() {
		out = append(out, "")
	}

	for i := range out {
		switch {
		case m.fading(r.ID):
			out[i] = removingStyle.Render(out[i])
		case isSource:
			out[i] = mutedStyle.Render(out[i])
		case m.pulsing(r.ID):
			out[i] = pulseStyle.Render(out[i])
		}
	}
	return out
}

// fieldView shows the live input in place of the field being edited.
func (m Model) fieldView(r flowsheet.Record, f field, value string) string {
	if m.editing && m.recordID == r.ID && m.field == f {
		return "[" + m.input.View() + "]"
	}
	return value
}

func (m Model) renderMenu() []bodyLine {
	items := m.menuItems()
	out := make([]bodyLine, 0, len(items))
	for i, it := range items {
		text := "  " + it.label
		switch {
		case i == m.menuCursor:
			text = selectedItemStyle.Render("› " + it.label)
		case it.danger:
			text = errorStyle.Render(text)
		default:
			text = normalItemStyle.Render(text)
		}
		out = append(out, bodyLine{text: mutedStyle.Render(panelGutter) + text, hit: hit{kind: hitMenuItem, index: i}})
	}
	return out
}

func (m Model) renderPicker() []bodyLine {
	p := m.picker
	vis := p.Visible()
	cols := p.Columns
	if cols <= 0 {
		cols = flowsheet.DefaultColumns
	}
	gutter := mutedStyle.Render(panelGutter)

	query := m.input.View()
	if m.pickerInsert {
		query = m.query.View()
	}
	out := []bodyLine{{
		text: gutter + paneHeaderStyle.Render("Library") + "  " + query + "  " +
			mutedStyle.Render(fmt.Sprintf("%d results · %d selected", len(vis), len(p.Pending()))),
		hit: hit{kind: hitPickerEntry, index: -1},
	}}

	if p.Empty() {
		out = append(out, bodyLine{text: gutter + mutedStyle.Render("No exercises match."), hit: hit{kind: hitPickerEntry, index: -1}})
	}

	for start := 0; start < len(vis); start += cols {
		var cells []string
		for i := start; i < start+cols && i < len(vis); i++ {
			e := vis[i]
			mark := "  "
			if p.Selected(e) {
				mark = successStyle.Render("✓ ")
			}
			label := truncate(e.Name, pickerCellWidth-3)
			cell := lipgloss.NewStyle().Width(pickerCellWidth - 2).Render(label)
			if i == p.FocusIndex() {
				cell = selectedItemStyle.Render(cell)
			} else {
				cell = normalItemStyle.Render(cell)
			}
			cells = append(cells, mark+cell)
		}
		out = append(out, bodyLine{text: gutter + strings.Join(cells, ""), hit: hit{kind: hitPickerEntry, index: start}})
	}

	if e, ok := p.Focused(); ok && m.tooltipID == e.ID {
		desc := e.Description
		if desc == "" {
			desc = e.Region
		}
		if desc != "" {
			out = append(out, bodyLine{text: gutter + mutedStyle.Render(truncate(desc, pickerCellWidth*cols)), hit: hit{kind: hitPickerEntry, index: -1}})
		}
	}
	out = append(out, bodyLine{
		text: gutter + helpEntry("←↑↓→", "move") + " " + helpEntry("tab", "select") + " " +
			helpEntry("enter", "add") + " " + helpEntry("esc", "close"),
		hit: hit{kind: hitPickerEntry, index: -1},
	})
	return out
}

func (m Model) renderLinkTooltip(r flowsheet.Record) []bodyLine {
	l, ok := r.Linked()
	if !ok {
		return nil
	}
	text := mutedStyle.Render(panelGutter) + linkStyle.Render(l.URL) + "  " +
		helpEntry("o", "open") + " " + helpEntry("U", "unlink")
	return []bodyLine{{text: text}}
}

func (m Model) renderBilling(g flowsheet.Group) []bodyLine {
	gutter := mutedStyle.Render(panelGutter)
	values := []string{g.Billing.Code, g.Billing.Modifier, g.Billing.Quantity, g.Billing.Provider}

	var out []bodyLine
	for f := billingField(0); f < billingFieldCount; f++ {
		label := fmt.Sprintf("%-9s", f.label())
		v := values[f]
		if f == m.billingField {
			out = append(out, bodyLine{text: gutter + selectedItemStyle.Render(label) + m.input.View()})
			for i, s := range m.suggestions() {
				text := "    " + s.label
				if i == m.billingFocus {
					text = selectedItemStyle.Render("  › " + s.label)
				} else {
					text = mutedStyle.Render(text)
				}
				out = append(out, bodyLine{text: gutter + text, hit: hit{kind: hitSuggestion, index: i}})
			}
			continue
		}
		if f == billingQuantity && v != "" {
			t := flowsheet.GroupTotals(g)
			v += mutedStyle.Render(fmt.Sprintf("  (%d min = %s)", t.Minutes, plural(t.Units, "unit")))
		}
		out = append(out, bodyLine{text: gutter + mutedStyle.Render(label) + v})
	}
	out = append(out, bodyLine{text: gutter + helpEntry("tab", "next") + " " + helpEntry("↑/↓", "suggestion") + " " +
		helpEntry("enter", "pick") + " " + helpEntry("esc", "done")})
	return out
}

func (m Model) renderCodePicker() []bodyLine {
	gutter := mutedStyle.Render(panelGutter)
	title := "Add CPT codes"
	if m.overlay.Kind == flowsheet.OverlayEvalPicker {
		title = "Add evaluation"
	}
	vis := m.codes.Visible()
	out := []bodyLine{{text: gutter + paneHeaderStyle.Render(title) + "  " + m.query.View()}}
	if len(vis) == 0 {
		out = append(out, bodyLine{text: gutter + mutedStyle.Render("No codes match.")})
	}

	start := 0
	if f := m.codes.FocusIndex(); f >= maxCodeRows {
		start = f - maxCodeRows + 1
	}
	for i := start; i < len(vis) && i < start+maxCodeRows; i++ {
		o := vis[i]
		mark := "[ ] "
		if m.codes.Selected(o.Code) {
			mark = successStyle.Render("[x] ")
		}
		text := normalItemStyle.Render(o.Title())
		if i == m.codes.FocusIndex() {
			text = selectedItemStyle.Render("› " + o.Title())
		}
		out = append(out, bodyLine{text: gutter + mark + text, hit: hit{kind: hitCodeEntry, index: i}})
	}
	out = append(out, bodyLine{text: gutter + helpEntry("↑/↓", "move") + " " + helpEntry("tab", "select") + " " +
		helpEntry("enter", "add") + " " + helpEntry("esc", "cancel")})
	return out
}

func truncate(s string, n int) string {
	if n <= 1 || lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) > n-1 {
		r = r[:n-1]
	}
	return string(r) + "…"
}
