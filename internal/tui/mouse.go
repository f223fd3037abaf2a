package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gabrielfornes/flowsheet/internal/flowsheet"
)

// hitAt resolves the body line under screen row y.
func (m Model) hitAt(y int) hit {
	if y < bodyTop || y >= bodyTop+m.bodyHeight() {
		return hit{}
	}
	lines, _, _ := m.layout()
	i := y - bodyTop + m.offset
	if i < 0 || i >= len(lines) {
		return hit{}
	}
	return lines[i].hit
}

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.overlay.Kind == flowsheet.OverlayHEPPreview {
		var cmd tea.Cmd
		m.previewViewport, cmd = m.previewViewport.Update(msg)
		return m, cmd
	}

	h := m.hitAt(msg.Y)
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.moveCursor(-1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.moveCursor(1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		return m.mousePress(h, msg.X)
	case msg.Action == tea.MouseActionMotion && m.drag.Active():
		m.dragOver(h)
	case msg.Action == tea.MouseActionRelease && m.drag.Active():
		m.dragRelease(h)
	}
	return m, nil
}

// mousePress handles a left click. With an overlay open, clicks inside it act
// on it and clicks anywhere else close it. Otherwise a press on a row selects
// it and starts a drag.
func (m Model) mousePress(h hit, x int) (Model, tea.Cmd) {
	if (m.overlay.Kind == flowsheet.OverlayPicker && m.picker == nil) ||
		((m.overlay.Kind == flowsheet.OverlayCodePicker || m.overlay.Kind == flowsheet.OverlayEvalPicker) && m.codes == nil) {
		m.overlay = flowsheet.Overlay{}
		return m, nil
	}

	switch m.overlay.Kind {
	case flowsheet.OverlayPicker:
		if h.kind != hitPickerEntry {
			return m.commitPicker(m.picker.Dismiss())
		}
		if h.index >= 0 && x >= panelLeft {
			i := h.index + (x-panelLeft)/pickerCellWidth
			vis := m.picker.Visible()
			if i < h.index+m.picker.Columns && i < len(vis) {
				m.picker.SetFocus(i)
				m.picker.Toggle(vis[i])
			}
		}
		return m, nil

	case flowsheet.OverlayCodePicker, flowsheet.OverlayEvalPicker:
		if h.kind != hitCodeEntry {
			m.closeCodePicker()
			return m, nil
		}
		if vis := m.codes.Visible(); h.index < len(vis) {
			m.codes.Toggle(vis[h.index].Code)
		}
		return m, nil

	case flowsheet.OverlayRecordMenu, flowsheet.OverlayGroupMenu:
		if h.kind != hitMenuItem {
			m.overlay = flowsheet.Overlay{}
			return m, nil
		}
		items := m.menuItems()
		if h.index < len(items) {
			return m.runMenuAction(items[h.index].action)
		}
		return m, nil

	case flowsheet.OverlayBillingField:
		if h.kind != hitSuggestion {
			m.applyBilling(m.input.Value())
			m.closeBilling()
			return m, nil
		}
		m.pickSuggestion(h.index)
		return m, nil
	}

	switch h.kind {
	case hitHeader:
		m.stopEditing()
		m.groupID, m.recordID = h.groupID, ""
	case hitRow:
		g, ok := m.doc.Group(h.groupID)
		if !ok || h.index >= len(g.Records) {
			return m, nil
		}
		id := g.Records[h.index].ID
		if m.recordID != id {
			m.stopEditing()
		}
		m.groupID, m.recordID = h.groupID, id
		m.drag.Start(h.groupID, h.index, id)
	case hitListEnd:
		m.stopEditing()
		return m.addRow(h.groupID)
	}
	return m, nil
}

// dragOver resolves the drop target under the pointer. Offsets inside a row
// are measured at the centre of the terminal cell.
func (m *Model) dragOver(h hit) {
	switch h.kind {
	case hitRow:
		m.drag.OverRow(h.groupID, h.index, float64(h.line)+0.5, float64(m.rowHeight()))
	case hitListEnd:
		m.drag.OverListEnd(h.groupID, h.index)
	case hitHeader:
		if g, ok := m.doc.Group(h.groupID); ok && g.Collapsed {
			m.drag.OverListEnd(g.ID, len(g.Records))
		}
	}
}

// dragRelease drops onto the row or group end under the pointer; releasing
// anywhere else cancels the drag.
func (m *Model) dragRelease(h hit) {
	src := m.drag.Source()
	var moved bool
	switch h.kind {
	case hitRow:
		moved = m.drag.Drop(m.doc, h.groupID, h.index+1)
	case hitListEnd:
		moved = m.drag.Drop(m.doc, h.groupID, h.index)
	case hitHeader:
		g, ok := m.doc.Group(h.groupID)
		if !ok || !g.Collapsed {
			m.drag.Cancel()
			return
		}
		moved = m.drag.Drop(m.doc, g.ID, len(g.Records))
	default:
		m.drag.Cancel()
		return
	}
	if moved {
		m.log.Debug("record moved", "record", src.RecordID, "from_group", src.GroupID, "to_group", h.groupID)
	}
}
