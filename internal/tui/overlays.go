package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gabrielfornes/flowsheet/internal/flowsheet"
	"github.com/gabrielfornes/flowsheet/internal/storage"
)

// --- Catalog picker ---

// showPicker opens p. insert selects the record-menu flavour, where typing
// filters through a separate query and never touches the record's name.
func (m *Model) showPicker(p *flowsheet.Picker, insert bool) tea.Cmd {
	p.Columns = m.columns()
	m.picker = p
	m.pickerInsert = insert
	m.tooltipID = ""
	m.overlay = flowsheet.Overlay{Kind: flowsheet.OverlayPicker, ID: p.RecordID}
	if insert {
		m.query.SetValue("")
		m.query.Focus()
	}
	return m.startTooltip()
}

func (m *Model) openInsertPicker(recordID string) tea.Cmd {
	p, ok := flowsheet.OpenInsertPicker(m.doc, recordID, m.ref.Catalog)
	if !ok {
		return nil
	}
	m.stopEditing()
	return m.showPicker(p, true)
}

// startTooltip restarts the delay after which the focused entry's
// description is shown.
func (m *Model) startTooltip() tea.Cmd {
	m.tooltipID = ""
	if m.picker == nil {
		return nil
	}
	if _, ok := m.picker.Focused(); !ok {
		m.timers.Cancel(flowsheet.TimerKey{Kind: flowsheet.TimerTooltip, ID: m.picker.RecordID})
		return nil
	}
	return m.schedule(flowsheet.TimerTooltip, m.picker.RecordID, m.tooltipDelay())
}

func (m Model) updatePicker(msg tea.KeyMsg) (Model, tea.Cmd) {
	p := m.picker
	if p == nil {
		m.overlay = flowsheet.Overlay{}
		return m, nil
	}

	switch msg.String() {
	case "up":
		p.Move(flowsheet.Up)
		cmd := m.startTooltip()
		return m, cmd
	case "down":
		p.Move(flowsheet.Down)
		cmd := m.startTooltip()
		return m, cmd
	case "left":
		p.Move(flowsheet.Left)
		cmd := m.startTooltip()
		return m, cmd
	case "right":
		p.Move(flowsheet.Right)
		cmd := m.startTooltip()
		return m, cmd
	case "tab", "ctrl+@":
		p.ToggleFocused()
		return m, nil
	case "enter":
		return m.commitPicker(p.Confirm())
	case "esc":
		return m.commitPicker(p.Dismiss())
	}

	var cmd tea.Cmd
	if m.pickerInsert {
		m.query, cmd = m.query.Update(msg)
		p.SetQuery(m.query.Value())
	} else {
		// The name field is the query while the picker is open.
		m.input, cmd = m.input.Update(msg)
		m.doc.SetName(p.RecordID, m.input.Value())
		p.SetQuery(m.input.Value())
	}
	tip := m.startTooltip()
	return m, tea.Batch(cmd, tip)
}

// commitPicker closes the picker and turns entries into records.
func (m Model) commitPicker(entries []flowsheet.CatalogEntry) (Model, tea.Cmd) {
	p := m.picker
	m.picker = nil
	m.tooltipID = ""
	m.overlay = flowsheet.Overlay{}
	m.query.Blur()
	if p == nil {
		return m, nil
	}
	m.timers.Cancel(flowsheet.TimerKey{Kind: flowsheet.TimerTooltip, ID: p.RecordID})
	if len(entries) == 0 {
		return m, nil
	}

	ids := m.doc.Commit(p, entries, m.linkFor)
	m.stopEditing()
	m.log.Debug("picker committed", "record", p.RecordID, "entries", len(entries), "inserted", len(ids))
	m.setStatus("Added " + plural(len(entries), "exercise") + " from the library")

	var cmds []tea.Cmd
	for _, id := range ids {
		cmds = append(cmds, m.schedule(flowsheet.TimerPulse, id, m.pulseDelay()))
	}
	return m, tea.Batch(cmds...)
}

// --- Billing code pickers ---

func (m *Model) openCodePicker(kind flowsheet.OverlayKind) {
	options := m.ref.Codes
	if kind == flowsheet.OverlayEvalPicker {
		options = m.ref.EvalCodes
	}
	m.stopEditing()
	m.codes = flowsheet.NewCodePicker(options)
	m.overlay = flowsheet.Overlay{Kind: kind}
	m.query.SetValue("")
	m.query.Focus()
}

func (m Model) updateCodePicker(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.codes == nil {
		m.overlay = flowsheet.Overlay{}
		return m, nil
	}
	switch msg.String() {
	case "up":
		m.codes.Move(-1)
		return m, nil
	case "down":
		m.codes.Move(1)
		return m, nil
	case "tab", "ctrl+@":
		m.codes.ToggleFocused()
		return m, nil
	case "enter":
		return m.confirmCodes()
	case "esc":
		m.closeCodePicker()
		return m, nil
	}

	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	m.codes.SetQuery(m.query.Value())
	return m, cmd
}

func (m *Model) closeCodePicker() {
	m.codes = nil
	m.overlay = flowsheet.Overlay{}
	m.query.Blur()
}

func (m Model) confirmCodes() (Model, tea.Cmd) {
	options := m.codes.Confirm()
	m.closeCodePicker()
	if len(options) == 0 {
		return m, nil
	}
	ids := m.doc.AddGroups(options)
	m.groupID, m.recordID = ids[0], ""
	m.log.Debug("groups added", "count", len(ids))
	m.setStatus("Added " + plural(len(ids), "group"))

	var cmds []tea.Cmd
	for _, id := range ids {
		cmds = append(cmds, m.schedule(flowsheet.TimerPulse, id, m.pulseDelay()))
	}
	return m, tea.Batch(cmds...)
}

// --- Record and group menus ---

type menuAction int

const (
	actInsert menuAction = iota
	actOpenLink
	actUnlink
	actCheck
	actToday
	actMoveUp
	actMoveDown
	actDelete
	actAddRow
	actMarkDone
	actAddToHEP
	actBilling
	actCollapse
	actRemoveGroup
)

type menuItem struct {
	label  string
	action menuAction
	danger bool
}

func (m Model) menuItems() []menuItem {
	switch m.overlay.Kind {
	case flowsheet.OverlayRecordMenu:
		r, ok := m.doc.Record(m.overlay.ID)
		if !ok {
			return nil
		}
		items := []menuItem{{label: "Insert from library", action: actInsert}}
		if _, linked := r.Linked(); linked {
			items = append(items,
				menuItem{label: "Open in library", action: actOpenLink},
				menuItem{label: "Unlink from library", action: actUnlink},
			)
		}
		check := "Add to HEP"
		if r.Checked {
			check = "Remove from HEP"
		}
		today := "Mark to do today"
		if r.Today {
			today = "Clear to do today"
		}
		return append(items,
			menuItem{label: check, action: actCheck},
			menuItem{label: today, action: actToday},
			menuItem{label: "Move up", action: actMoveUp},
			menuItem{label: "Move down", action: actMoveDown},
			menuItem{label: "Delete intervention", action: actDelete, danger: true},
		)

	case flowsheet.OverlayGroupMenu:
		g, ok := m.doc.Group(m.overlay.ID)
		if !ok {
			return nil
		}
		collapse := "Collapse"
		if g.Collapsed {
			collapse = "Expand"
		}
		return []menuItem{
			{label: "Add intervention", action: actAddRow},
			{label: "Mark all done", action: actMarkDone},
			{label: "Add all to HEP", action: actAddToHEP},
			{label: "Edit billing", action: actBilling},
			{label: collapse, action: actCollapse},
			{label: "Remove group", action: actRemoveGroup, danger: true},
		}
	}
	return nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (Model, tea.Cmd) {
	items := m.menuItems()
	if len(items) == 0 {
		m.overlay = flowsheet.Overlay{}
		return m, nil
	}
	switch msg.String() {
	case "up", "k":
		m.menuCursor = (m.menuCursor - 1 + len(items)) % len(items)
	case "down", "j":
		m.menuCursor = (m.menuCursor + 1) % len(items)
	case "enter":
		if m.menuCursor >= 0 && m.menuCursor < len(items) {
			return m.runMenuAction(items[m.menuCursor].action)
		}
	case "esc", "m", "M", "q":
		m.overlay = flowsheet.Overlay{}
	}
	return m, nil
}

func (m Model) runMenuAction(a menuAction) (Model, tea.Cmd) {
	id := m.overlay.ID
	m.overlay = flowsheet.Overlay{}

	switch a {
	case actInsert:
		cmd := m.openInsertPicker(id)
		return m, cmd
	case actOpenLink:
		cmd := m.openLinkCmd(id)
		return m, cmd
	case actUnlink:
		m.unlink(id)
	case actCheck:
		m.doc.ToggleChecked(id)
	case actToday:
		m.doc.ToggleToday(id)
	case actMoveUp, actMoveDown:
		if m.doc.Nudge(id, a == actMoveUp) {
			m.log.Debug("record moved", "record", id, "up", a == actMoveUp)
		}
	case actDelete:
		cmd := m.scheduleRemoval(id)
		return m, cmd

	case actAddRow:
		return m.addRow(id)
	case actMarkDone:
		m.doc.MarkGroupDone(id)
	case actAddToHEP:
		m.doc.AddGroupToHEP(id)
	case actBilling:
		m.openBilling(id)
	case actCollapse:
		m.doc.ToggleCollapsed(id)
	case actRemoveGroup:
		g, _ := m.doc.Group(id)
		m.doc.RemoveGroup(id)
		m.log.Debug("group removed", "group", id, "records", len(g.Records))
		m.setStatus("Removed " + g.Label)
	}
	return m, nil
}

// --- Billing editor ---

type billingField int

const (
	billingCode billingField = iota
	billingModifier
	billingQuantity
	billingProvider
)

const billingFieldCount = 4

func (f billingField) label() string {
	switch f {
	case billingCode:
		return "Code"
	case billingModifier:
		return "Modifier"
	case billingQuantity:
		return "Minutes"
	default:
		return "Provider"
	}
}

type suggestion struct {
	value string
	label string
}

func (m *Model) openBilling(groupID string) {
	if _, ok := m.doc.Group(groupID); !ok {
		return
	}
	m.stopEditing()
	m.overlay = flowsheet.Overlay{Kind: flowsheet.OverlayBillingField, ID: groupID}
	m.billingField = billingCode
	m.loadBillingField()
}

func (m *Model) loadBillingField() {
	g, _ := m.doc.Group(m.overlay.ID)
	var v string
	switch m.billingField {
	case billingCode:
		v = g.Billing.Code
	case billingModifier:
		v = g.Billing.Modifier
	case billingQuantity:
		v = g.Billing.Quantity
	case billingProvider:
		v = g.Billing.Provider
	}
	m.input.SetValue(v)
	m.input.CursorEnd()
	m.input.Focus()
	m.billingFocus = -1
}

// suggestions lists the autocomplete choices for the billing field being
// edited, filtered by what has been typed.
func (m Model) suggestions() []suggestion {
	q := m.input.Value()
	var out []suggestion
	switch m.billingField {
	case billingCode:
		for _, o := range flowsheet.FilterCodes(m.ref.AllCodes(), q) {
			out = append(out, suggestion{value: o.Code, label: o.Title()})
		}
	case billingModifier:
		for _, o := range flowsheet.FilterCodes(m.ref.Modifiers, q) {
			out = append(out, suggestion{value: o.Code, label: o.Title()})
		}
	case billingProvider:
		for _, p := range flowsheet.FilterProviders(m.ref.Providers, q) {
			out = append(out, suggestion{value: p, label: p})
		}
	}
	if len(out) > maxCodeRows {
		out = out[:maxCodeRows]
	}
	return out
}

func (m *Model) applyBilling(v string) {
	var p flowsheet.BillingPatch
	switch m.billingField {
	case billingCode:
		p.Code = &v
	case billingModifier:
		p.Modifier = &v
	case billingQuantity:
		p.Quantity = &v
	case billingProvider:
		p.Provider = &v
	}
	m.doc.UpdateBilling(m.overlay.ID, p)
}

func (m *Model) switchBillingField(step int) {
	next := (int(m.billingField) + step + billingFieldCount) % billingFieldCount
	m.billingField = billingField(next)
	m.loadBillingField()
}

func (m *Model) closeBilling() {
	m.overlay = flowsheet.Overlay{}
	m.input.Blur()
	m.billingFocus = -1
}

// pickSuggestion applies the suggestion at i and moves on to the next field,
// closing the editor after the last one.
func (m *Model) pickSuggestion(i int) {
	sugg := m.suggestions()
	v := m.input.Value()
	if i >= 0 && i < len(sugg) {
		v = sugg[i].value
	}
	m.applyBilling(v)
	if m.billingField == billingProvider {
		m.closeBilling()
		return
	}
	m.switchBillingField(1)
}

func (m Model) updateBilling(msg tea.KeyMsg) (Model, tea.Cmd) {
	if _, ok := m.doc.Group(m.overlay.ID); !ok {
		m.closeBilling()
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.applyBilling(m.input.Value())
		m.closeBilling()
		return m, nil
	case "tab":
		m.applyBilling(m.input.Value())
		m.switchBillingField(1)
		return m, nil
	case "shift+tab":
		m.applyBilling(m.input.Value())
		m.switchBillingField(-1)
		return m, nil
	case "up":
		if m.billingFocus >= 0 {
			m.billingFocus--
		}
		return m, nil
	case "down":
		if m.billingFocus < len(m.suggestions())-1 {
			m.billingFocus++
		}
		return m, nil
	case "enter":
		m.pickSuggestion(m.billingFocus)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.billingFocus = -1
	if m.billingField == billingQuantity {
		m.applyBilling(m.input.Value())
	}
	return m, cmd
}

// --- HEP preview ---

func (m *Model) openPreview() tea.Cmd {
	m.stopEditing()
	checked := m.doc.Checked()
	m.preview = storage.RenderHEP("Home Exercise Plan · "+storage.TodayName(), checked)
	m.previewRendered = ""
	m.overlay = flowsheet.Overlay{Kind: flowsheet.OverlayHEPPreview}
	m.sizePreview()
	m.setStatus(fmt.Sprintf("%s in the plan", plural(len(checked), "exercise")))
	return m.renderMarkdownCmd(m.preview, m.previewViewport.Width)
}

func (m *Model) sizePreview() {
	w := m.width - 12
	if w < 20 {
		w = 20
	}
	h := m.bodyHeight() - 5
	if h < 3 {
		h = 3
	}
	m.previewViewport.Width = w
	m.previewViewport.Height = h
}

func (m Model) updatePreview(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "p", "q":
		m.overlay = flowsheet.Overlay{}
		return m, nil
	case "s", "enter":
		return m, m.exportHEP(m.preview)
	}
	var cmd tea.Cmd
	m.previewViewport, cmd = m.previewViewport.Update(msg)
	return m, cmd
}
