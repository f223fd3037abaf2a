package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gabrielfornes/flowsheet/internal/config"
	"github.com/gabrielfornes/flowsheet/internal/flowsheet"
	"github.com/gabrielfornes/flowsheet/internal/logger"
	"github.com/gabrielfornes/flowsheet/internal/storage"
)

// field is the record field being edited.
type field int

const (
	fieldName field = iota
	fieldDetails
	fieldSets
	fieldReps
	fieldWeight
)

var fieldOrder = []field{fieldName, fieldDetails, fieldSets, fieldReps, fieldWeight}

func (f field) label() string {
	switch f {
	case fieldName:
		return "name"
	case fieldDetails:
		return "details"
	case fieldSets:
		return "sets"
	case fieldReps:
		return "reps"
	default:
		return "weight"
	}
}

// Options configures a Model.
type Options struct {
	Store     *storage.Store
	Reference storage.Reference
	Config    config.Config
	Logger    *logger.Logger

	// OpenURL opens an outbound catalog link. Defaults to the platform opener.
	OpenURL func(string) error
}

// Model is the root Bubble Tea model for flowsheet.
type Model struct {
	store   *storage.Store
	ref     storage.Reference
	cfg     config.Config
	log     *logger.Logger
	openURL func(string) error
	keys    keyMap
	help    help.Model

	doc     *flowsheet.Document
	drag    flowsheet.Drag
	overlay flowsheet.Overlay
	timers  *flowsheet.Timers
	linkFor func(flowsheet.CatalogEntry) flowsheet.Link

	// Terminal dimensions and scroll position of the document body
	width  int
	height int
	offset int

	// Cursor: a group header when recordID is empty, a record otherwise
	groupID  string
	recordID string

	// Inline editing of the record under the cursor
	editing bool
	field   field
	input   textinput.Model
	details textarea.Model

	// Catalog picker; pickerInsert is set when it was opened from the record
	// menu, in which case typing goes to query instead of the name.
	picker       *flowsheet.Picker
	pickerInsert bool
	tooltipID    string // catalog entry whose description is shown
	query        textinput.Model

	// Billing code pickers
	codes *flowsheet.CodePicker

	// Record and group menus
	menuCursor int

	// Billing editor
	billingField billingField
	billingFocus int

	// Records fading out, oldest first
	removing []string

	// HEP preview
	preview         string
	previewRendered string
	previewViewport viewport.Model

	// Status message (shown until the next one)
	statusMsg string
	statusErr bool
}

// NewModel creates the editor, seeded with the reference groups.
func NewModel(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	open := opts.OpenURL
	if open == nil {
		open = openURL
	}

	doc := flowsheet.New(nil)
	doc.Seed(opts.Reference.Groups, opts.Reference.FallbackCode())

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 120
	input.Width = 40

	details := textarea.New()
	details.Placeholder = "Cues, details..."
	details.ShowLineNumbers = false
	details.SetWidth(60)
	details.SetHeight(3)

	query := textinput.New()
	query.Prompt = "/ "
	query.Placeholder = "Search..."
	query.CharLimit = 64

	m := Model{
		store:           opts.Store,
		ref:             opts.Reference,
		cfg:             opts.Config,
		log:             log,
		openURL:         open,
		keys:            defaultKeyMap(),
		help:            help.New(),
		doc:             doc,
		drag:            flowsheet.Drag{DeadZone: opts.Config.Editor.DeadZone},
		timers:          &flowsheet.Timers{},
		linkFor:         flowsheet.CatalogLinker(opts.Config.Catalog.LinkTemplate),
		width:           defaultTerminalWidth,
		height:          defaultTerminalHeight,
		input:           input,
		details:         details,
		query:           query,
		billingFocus:    -1,
		previewViewport: viewport.New(defaultTerminalWidth-8, defaultTerminalHeight-12),
	}
	if len(doc.Groups) > 0 {
		m.groupID = doc.Groups[0].ID
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("flowsheet")
}

// Document exposes the document being edited.
func (m Model) Document() *flowsheet.Document { return m.doc }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	prev := m.recordID

	var cmd tea.Cmd
	m, cmd = m.update(msg)

	m.syncCursor()
	follow := m.followLinkTooltip(prev)
	m.ensureVisible()
	return m, tea.Batch(cmd, follow)
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width - 4
		if m.overlay.Kind == flowsheet.OverlayHEPPreview {
			m.sizePreview()
			m.previewRendered = ""
			return m, m.renderMarkdownCmd(m.preview, m.previewViewport.Width)
		}
		return m, nil

	case timerFiredMsg:
		return m.handleTimer(msg.token)

	case markdownRenderedMsg:
		m.previewRendered = msg.content
		m.previewViewport.SetContent(m.previewRendered)
		return m, nil

	case exportWrittenMsg:
		if msg.err != nil {
			m.setError("Error exporting: " + msg.err.Error())
			m.log.Error("export failed", "err", msg.err)
			return m, nil
		}
		m.setStatus("Exported to exports/" + msg.name + ".md ✓")
		m.log.Debug("export written", "name", msg.name)
		return m, nil

	case urlOpenedMsg:
		if msg.err != nil {
			m.setError("Could not open link: " + msg.err.Error())
			m.log.Warn("open link failed", "url", msg.url, "err", msg.err)
		}
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, m.quit()
	}

	switch m.overlay.Kind {
	case flowsheet.OverlayPicker:
		return m.updatePicker(msg)
	case flowsheet.OverlayCodePicker, flowsheet.OverlayEvalPicker:
		return m.updateCodePicker(msg)
	case flowsheet.OverlayRecordMenu, flowsheet.OverlayGroupMenu:
		return m.updateMenu(msg)
	case flowsheet.OverlayBillingField:
		return m.updateBilling(msg)
	case flowsheet.OverlayHEPPreview:
		return m.updatePreview(msg)
	}

	if m.editing {
		return m.updateEditing(msg)
	}
	return m.updateDocument(msg)
}

// --- Document view ---

func (m Model) updateDocument(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.drag.Active() && msg.String() == "esc" {
		m.drag.Cancel()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case msg.String() == "esc":
		m.overlay = flowsheet.Overlay{}
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Edit):
		if m.recordID == "" {
			m.openBilling(m.groupID)
			return m, nil
		}
		return m.startEditing(fieldName)
	case key.Matches(msg, m.keys.NextField):
		if m.recordID != "" {
			return m.startEditing(fieldDetails)
		}

	case key.Matches(msg, m.keys.Status):
		m.doc.ToggleStatus(m.recordID)
	case key.Matches(msg, m.keys.Check):
		if m.recordID == "" {
			m.doc.AddGroupToHEP(m.groupID)
		} else {
			m.doc.ToggleChecked(m.recordID)
		}
	case key.Matches(msg, m.keys.CheckAll):
		m.doc.ToggleAllChecked()
	case key.Matches(msg, m.keys.Today):
		m.doc.ToggleToday(m.recordID)

	case key.Matches(msg, m.keys.Delete):
		if m.recordID != "" {
			cmd := m.scheduleRemoval(m.recordID)
			return m, cmd
		}
	case key.Matches(msg, m.keys.Undo):
		m.undoRemoval()

	case key.Matches(msg, m.keys.AddRow):
		return m.addRow(m.groupID)
	case key.Matches(msg, m.keys.AddGroups):
		m.openCodePicker(flowsheet.OverlayCodePicker)
	case key.Matches(msg, m.keys.AddEval):
		m.openCodePicker(flowsheet.OverlayEvalPicker)

	case key.Matches(msg, m.keys.RecordMenu):
		if m.recordID != "" {
			m.overlay = m.overlay.Toggle(flowsheet.OverlayRecordMenu, m.recordID)
			m.menuCursor = 0
		}
	case key.Matches(msg, m.keys.GroupMenu):
		if m.groupID != "" {
			m.overlay = m.overlay.Toggle(flowsheet.OverlayGroupMenu, m.groupID)
			m.menuCursor = 0
		}
	case key.Matches(msg, m.keys.Collapse):
		m.doc.ToggleCollapsed(m.groupID)
	case key.Matches(msg, m.keys.Billing):
		m.openBilling(m.groupID)

	case key.Matches(msg, m.keys.MoveUp):
		m.nudge(true)
	case key.Matches(msg, m.keys.MoveDown):
		m.nudge(false)

	case key.Matches(msg, m.keys.OpenLink):
		cmd := m.openLinkCmd(m.recordID)
		return m, cmd
	case key.Matches(msg, m.keys.Unlink):
		m.unlink(m.recordID)

	case key.Matches(msg, m.keys.Preview):
		cmd := m.openPreview()
		return m, cmd
	case key.Matches(msg, m.keys.Reset):
		m.reset()
	}
	return m, nil
}

func (m *Model) nudge(up bool) {
	if m.recordID == "" {
		return
	}
	if m.doc.Nudge(m.recordID, up) {
		m.log.Debug("record moved", "record", m.recordID, "up", up)
	}
}

func (m *Model) unlink(recordID string) {
	r, ok := m.doc.Record(recordID)
	if !ok {
		return
	}
	if _, linked := r.Linked(); !linked {
		return
	}
	m.doc.Unlink(recordID)
	if m.overlay.Is(flowsheet.OverlayLinkTooltip, recordID) {
		m.overlay = flowsheet.Overlay{}
	}
	m.setStatus("Unlinked " + r.Name)
}

func (m *Model) reset() {
	m.doc.Reset()
	m.timers.StopAll()
	m.drag.End()
	m.overlay = flowsheet.Overlay{}
	m.picker = nil
	m.codes = nil
	m.editing = false
	m.removing = nil
	m.groupID, m.recordID = "", ""
	m.offset = 0
	m.setStatus("Flowsheet reset")
	m.log.Info("flowsheet reset")
}

func (m Model) quit() tea.Cmd {
	m.timers.StopAll()
	m.log.Info("editor closed", "records", m.doc.Len())
	return tea.Quit
}

// --- Adding and removing rows ---

func (m Model) addRow(groupID string) (Model, tea.Cmd) {
	id := m.doc.AddRecord(groupID)
	if id == "" {
		return m, nil
	}
	if g, ok := m.doc.Group(groupID); ok && g.Collapsed {
		m.doc.ToggleCollapsed(groupID)
	}
	m.groupID, m.recordID = groupID, id
	m.log.Debug("record added", "group", groupID, "record", id)
	pulse := m.schedule(flowsheet.TimerPulse, id, m.pulseDelay())
	m, cmd := m.startEditing(fieldName)
	return m, tea.Batch(pulse, cmd)
}

// scheduleRemoval fades the record out and removes it when the removal timer
// fires. Until then the record is untouched and the removal can be undone.
func (m *Model) scheduleRemoval(recordID string) tea.Cmd {
	r, ok := m.doc.Record(recordID)
	if !ok {
		return nil
	}
	if m.timers.Pending(flowsheet.TimerKey{Kind: flowsheet.TimerRemoval, ID: recordID}) {
		return nil
	}
	m.removing = append(m.removing, recordID)
	name := r.Name
	if name == "" {
		name = "row"
	}
	m.setStatus("Deleting " + name + " (u to undo)")
	return m.schedule(flowsheet.TimerRemoval, recordID, m.removalDelay())
}

func (m *Model) undoRemoval() {
	for len(m.removing) > 0 {
		id := m.removing[len(m.removing)-1]
		m.removing = m.removing[:len(m.removing)-1]
		if m.timers.Cancel(flowsheet.TimerKey{Kind: flowsheet.TimerRemoval, ID: id}) {
			m.setStatus("Delete undone")
			return
		}
	}
}

func (m *Model) removeNow(recordID string) {
	for i, id := range m.removing {
		if id == recordID {
			m.removing = append(m.removing[:i:i], m.removing[i+1:]...)
			break
		}
	}
	if _, ok := m.doc.Record(recordID); !ok {
		return
	}

	if m.recordID == recordID {
		m.stopEditing()
		slots := m.slots()
		i := m.cursorIndex(slots)
		m.doc.RemoveRecord(recordID)
		next := m.slots()
		if len(next) == 0 {
			m.groupID, m.recordID = "", ""
		} else {
			if i >= len(next) {
				i = len(next) - 1
			}
			if i < 0 {
				i = 0
			}
			m.groupID, m.recordID = next[i].groupID, next[i].recordID
		}
	} else {
		m.doc.RemoveRecord(recordID)
	}
	m.timers.CancelID(recordID)
	m.log.Debug("record removed", "record", recordID)
}

// --- Editing ---

func (m Model) startEditing(f field) (Model, tea.Cmd) {
	r, ok := m.doc.Record(m.recordID)
	if !ok {
		return m, nil
	}
	if f == fieldName && !r.Editable() {
		m.setStatus("Name comes from the library. Press U to unlink it.")
		f = fieldDetails
	}
	m.editing = true
	cmd := m.focusField(f)
	return m, cmd
}

func (m *Model) stopEditing() {
	m.editing = false
	m.input.Blur()
	m.details.Blur()
}

func (m *Model) focusField(f field) tea.Cmd {
	r, ok := m.doc.Record(m.recordID)
	if !ok {
		m.stopEditing()
		return nil
	}
	m.field = f
	if f == fieldDetails {
		m.input.Blur()
		m.details.SetValue(r.Details)
		return m.details.Focus()
	}
	m.details.Blur()
	switch f {
	case fieldName:
		m.input.SetValue(r.Name)
	case fieldSets:
		m.input.SetValue(strconv.Itoa(r.Sets))
	case fieldReps:
		m.input.SetValue(strconv.Itoa(r.Reps))
	case fieldWeight:
		m.input.SetValue(r.Weight)
	}
	m.input.CursorEnd()
	return m.input.Focus()
}

// nextField steps through the editable fields, skipping a linked name.
func (m Model) nextField(step int) field {
	r, _ := m.doc.Record(m.recordID)
	i := 0
	for j, f := range fieldOrder {
		if f == m.field {
			i = j
		}
	}
	for range fieldOrder {
		i = (i + step + len(fieldOrder)) % len(fieldOrder)
		if fieldOrder[i] == fieldName && !r.Editable() {
			continue
		}
		return fieldOrder[i]
	}
	return m.field
}

func (m Model) updateEditing(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.stopEditing()
		return m, nil
	case "enter":
		if m.field != fieldDetails {
			m.stopEditing()
			return m, nil
		}
	case "tab":
		cmd := m.focusField(m.nextField(1))
		return m, cmd
	case "shift+tab":
		cmd := m.focusField(m.nextField(-1))
		return m, cmd
	}

	if m.field == fieldName && msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && m.input.Value() == "" {
		p, ok := flowsheet.OpenPicker(m.doc, m.recordID, msg.Runes[0], m.cfg.Editor.TriggerRune(), m.ref.Catalog)
		if ok {
			cmd := m.showPicker(p, false)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	if m.field == fieldDetails {
		m.details, cmd = m.details.Update(msg)
		m.doc.SetDetails(m.recordID, m.details.Value())
		return m, cmd
	}
	m.input, cmd = m.input.Update(msg)
	m.applyField()
	return m, cmd
}

// applyField writes the input value to the record as the user types.
func (m *Model) applyField() {
	v := m.input.Value()
	switch m.field {
	case fieldName:
		m.doc.SetName(m.recordID, v)
	case fieldSets:
		if n, ok := parseCount(v); ok {
			m.doc.UpdateRecord(m.recordID, flowsheet.RecordPatch{Sets: &n})
		}
	case fieldReps:
		if n, ok := parseCount(v); ok {
			m.doc.UpdateRecord(m.recordID, flowsheet.RecordPatch{Reps: &n})
		}
	case fieldWeight:
		m.doc.UpdateRecord(m.recordID, flowsheet.RecordPatch{Weight: &v})
	}
}

func parseCount(s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// --- Cursor ---

// slot is one cursor position: a group header or a visible record.
type slot struct {
	groupID  string
	recordID string
}

func (m Model) slots() []slot {
	var out []slot
	for _, g := range m.doc.Groups {
		out = append(out, slot{groupID: g.ID})
		if g.Collapsed {
			continue
		}
		for _, r := range g.Records {
			out = append(out, slot{groupID: g.ID, recordID: r.ID})
		}
	}
	return out
}

func (m Model) cursorIndex(slots []slot) int {
	for i, s := range slots {
		if s.groupID == m.groupID && s.recordID == m.recordID {
			return i
		}
	}
	return -1
}

func (m *Model) moveCursor(delta int) {
	slots := m.slots()
	if len(slots) == 0 {
		return
	}
	i := m.cursorIndex(slots) + delta
	if i < 0 {
		i = 0
	}
	if i >= len(slots) {
		i = len(slots) - 1
	}
	m.groupID, m.recordID = slots[i].groupID, slots[i].recordID
}

// syncCursor keeps the cursor on existing, visible items after the document
// changed underneath it. Records are followed by identifier across moves.
func (m *Model) syncCursor() {
	if m.recordID != "" {
		gi, _, ok := m.doc.FindRecord(m.recordID)
		switch {
		case !ok:
			m.recordID = ""
			m.editing = false
		case m.doc.Groups[gi].Collapsed:
			m.groupID, m.recordID = m.doc.Groups[gi].ID, ""
			m.editing = false
		default:
			m.groupID = m.doc.Groups[gi].ID
		}
	}
	if _, ok := m.doc.Group(m.groupID); !ok {
		m.recordID = ""
		m.groupID = ""
		if len(m.doc.Groups) > 0 {
			m.groupID = m.doc.Groups[0].ID
		}
	}
}

// followLinkTooltip shows the link tooltip of a linked record as soon as the
// cursor lands on it, and closes it shortly after the cursor leaves.
func (m *Model) followLinkTooltip(prev string) tea.Cmd {
	if prev == m.recordID {
		return nil
	}
	var cmds []tea.Cmd
	if prev != "" && m.overlay.Is(flowsheet.OverlayLinkTooltip, prev) {
		cmds = append(cmds, m.schedule(flowsheet.TimerLinkClose, prev, m.linkCloseDelay()))
	}
	if r, ok := m.doc.Record(m.recordID); ok {
		if _, linked := r.Linked(); linked && (!m.overlay.Open() || m.overlay.Kind == flowsheet.OverlayLinkTooltip) {
			m.overlay = flowsheet.Overlay{Kind: flowsheet.OverlayLinkTooltip, ID: r.ID}
			m.timers.Cancel(flowsheet.TimerKey{Kind: flowsheet.TimerLinkClose, ID: r.ID})
		}
	}
	return tea.Batch(cmds...)
}

// ensureVisible scrolls the document body so the cursor, and the overlay
// opened under it, stay on screen.
func (m *Model) ensureVisible() {
	lines, cursor, end := m.layout()
	h := m.bodyHeight()
	if end >= 0 && end >= m.offset+h {
		m.offset = end - h + 1
	}
	if cursor >= 0 && cursor < m.offset {
		m.offset = cursor
	}
	if cursor >= 0 && cursor >= m.offset+h {
		m.offset = cursor - h + 1
	}
	if limit := len(lines) - h; m.offset > limit {
		m.offset = limit
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m Model) bodyHeight() int {
	h := m.height - bodyTop - footerHeight
	if m.help.ShowAll {
		h -= 6
	}
	if h < 3 {
		h = 3
	}
	return h
}

// --- Timers ---

// schedule arms a timer and returns the tick that fires it.
func (m Model) schedule(kind flowsheet.TimerKind, id string, d time.Duration) tea.Cmd {
	tok := m.timers.Start(flowsheet.TimerKey{Kind: kind, ID: id})
	return tea.Tick(d, func(time.Time) tea.Msg { return timerFiredMsg{token: tok} })
}

func (m Model) handleTimer(tok flowsheet.Token) (Model, tea.Cmd) {
	if !m.timers.Fire(tok) {
		return m, nil
	}
	id := tok.Key.ID
	switch tok.Key.Kind {
	case flowsheet.TimerRemoval:
		m.removeNow(id)
	case flowsheet.TimerTooltip:
		if m.picker != nil && m.picker.RecordID == id {
			if e, ok := m.picker.Focused(); ok {
				m.tooltipID = e.ID
			}
		}
	case flowsheet.TimerLinkClose:
		if m.overlay.Is(flowsheet.OverlayLinkTooltip, id) && m.recordID != id {
			m.overlay = flowsheet.Overlay{}
		}
	}
	return m, nil
}

func (m Model) pulsing(id string) bool {
	return m.timers.Pending(flowsheet.TimerKey{Kind: flowsheet.TimerPulse, ID: id})
}

func (m Model) fading(id string) bool {
	return m.timers.Pending(flowsheet.TimerKey{Kind: flowsheet.TimerRemoval, ID: id})
}

func (m Model) pulseDelay() time.Duration {
	return orDefault(m.cfg.Timers.Pulse, 420*time.Millisecond)
}

func (m Model) removalDelay() time.Duration {
	return orDefault(m.cfg.Timers.Removal, 250*time.Millisecond)
}

func (m Model) tooltipDelay() time.Duration {
	return orDefault(m.cfg.Timers.Tooltip, 500*time.Millisecond)
}

func (m Model) linkCloseDelay() time.Duration {
	return orDefault(m.cfg.Timers.LinkTooltipClose, 100*time.Millisecond)
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

func (m Model) rowHeight() int {
	if m.cfg.Editor.RowHeight <= 0 {
		return 2
	}
	return m.cfg.Editor.RowHeight
}

func (m Model) columns() int {
	if m.cfg.Editor.PickerColumns <= 0 {
		return flowsheet.DefaultColumns
	}
	return m.cfg.Editor.PickerColumns
}

// --- Status ---

func (m *Model) setStatus(s string) {
	m.statusMsg = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.statusMsg = s
	m.statusErr = true
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
