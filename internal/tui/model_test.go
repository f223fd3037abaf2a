package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gabrielfornes/flowsheet/internal/config"
	"github.com/gabrielfornes/flowsheet/internal/flowsheet"
	"github.com/gabrielfornes/flowsheet/internal/storage"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	store, err := storage.New(filepath.Join(dir, "workspace"))
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	return NewModel(Options{
		Store:     store,
		Reference: storage.Defaults(),
		Config:    cfg,
		OpenURL:   func(string) error { return nil },
	})
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func keys(names ...string) []tea.Msg {
	out := make([]tea.Msg, 0, len(names))
	for _, n := range names {
		switch n {
		case "enter":
			out = append(out, tea.KeyMsg{Type: tea.KeyEnter})
		case "esc":
			out = append(out, tea.KeyMsg{Type: tea.KeyEsc})
		case "tab":
			out = append(out, tea.KeyMsg{Type: tea.KeyTab})
		case "up":
			out = append(out, tea.KeyMsg{Type: tea.KeyUp})
		case "down":
			out = append(out, tea.KeyMsg{Type: tea.KeyDown})
		default:
			out = append(out, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(n)})
		}
	}
	return out
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

// screenY returns the screen row of the first body line matching match.
func screenY(t *testing.T, m Model, match func(hit) bool) int {
	t.Helper()
	lines, _, _ := m.layout()
	for i, l := range lines {
		if match(l.hit) {
			return bodyTop + i - m.offset
		}
	}
	t.Fatalf("no body line matches")
	return -1
}

func rowY(t *testing.T, m Model, groupID string, index, line int) int {
	t.Helper()
	return screenY(t, m, func(h hit) bool {
		return h.kind == hitRow && h.groupID == groupID && h.index == index && h.line == line
	})
}

func recordNames(m Model, gi int) string {
	var out []string
	for _, r := range m.doc.Groups[gi].Records {
		out = append(out, r.Name)
	}
	return strings.Join(out, ",")
}

func fire(t *testing.T, m Model, kind flowsheet.TimerKind, id string) Model {
	t.Helper()
	tok, ok := m.timers.Live(flowsheet.TimerKey{Kind: kind, ID: id})
	if !ok {
		t.Fatalf("no %s timer armed for %s", kind, id)
	}
	return send(t, m, timerFiredMsg{token: tok})
}

func TestNewModelSeedsDocument(t *testing.T) {
	m := newTestModel(t)
	if len(m.doc.Groups) != 3 {
		t.Fatalf("expected 3 seed groups, got %d", len(m.doc.Groups))
	}
	if m.groupID != m.doc.Groups[0].ID || m.recordID != "" {
		t.Fatalf("expected cursor on first header, got %q/%q", m.groupID, m.recordID)
	}
	if got := m.doc.Groups[0].Billing.Code; got != "97110" {
		t.Fatalf("expected billing code from label, got %q", got)
	}
	if m.Document() != m.doc {
		t.Fatalf("Document: expected the edited document")
	}
}

func TestTriggerOpensPickerAndCommitLinks(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keys("n")...)
	if !m.editing || m.field != fieldName {
		t.Fatalf("new row: expected name editing, got editing=%v field=%v", m.editing, m.field)
	}
	id := m.recordID

	m = send(t, m, keys("/")...)
	if !m.overlay.Is(flowsheet.OverlayPicker, id) || m.picker == nil {
		t.Fatalf("trigger: expected picker on %s, got %+v", id, m.overlay)
	}
	if r, _ := m.doc.Record(id); r.Name != "" {
		t.Fatalf("trigger: expected name untouched, got %q", r.Name)
	}

	m = send(t, m, keys("enter")...)
	if m.overlay.Open() || m.picker != nil || m.editing {
		t.Fatalf("commit: expected picker closed and editing stopped")
	}
	r, _ := m.doc.Record(id)
	want := storage.Defaults().Catalog[0]
	if r.Name != want.Name {
		t.Fatalf("commit: expected %q, got %q", want.Name, r.Name)
	}
	l, linked := r.Linked()
	if !linked || l.Ref != want.Ref || !strings.Contains(l.URL, want.Ref) {
		t.Fatalf("commit: expected link to %s, got %+v (%v)", want.Ref, l, linked)
	}
	if len(m.doc.Groups[0].Records) != 4 {
		t.Fatalf("commit: expected populate in place, got %d records", len(m.doc.Groups[0].Records))
	}
}

func TestTriggerOnNamedRecordIsText(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keys("down", "enter", "/")...)
	if m.overlay.Kind == flowsheet.OverlayPicker {
		t.Fatalf("trigger on named record: picker should stay closed")
	}
	r, _ := m.doc.Record(m.recordID)
	if r.Name != "Seated Shoulder Flexion/" {
		t.Fatalf("expected trigger typed into name, got %q", r.Name)
	}
}

func TestPickerEscWithoutSelectionCommitsNothing(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keys("n", "/", "esc")...)
	if m.overlay.Open() {
		t.Fatalf("esc: expected picker closed")
	}
	r, _ := m.doc.Record(m.recordID)
	if r.Name != "" {
		t.Fatalf("esc: expected empty name, got %q", r.Name)
	}
	if len(m.doc.Groups[0].Records) != 4 {
		t.Fatalf("esc: expected no inserted rows, got %d", len(m.doc.Groups[0].Records))
	}
}

func TestInsertPickerMouseSelection(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keys("down", "m", "enter")...)
	anchor := m.recordID
	if !m.overlay.Is(flowsheet.OverlayPicker, anchor) || !m.pickerInsert {
		t.Fatalf("menu insert: expected insert picker, got %+v", m.overlay)
	}

	// Second column of the first grid row.
	y := screenY(t, m, func(h hit) bool { return h.kind == hitPickerEntry && h.index == 0 })
	m = send(t, m, mouse(tea.MouseActionPress, panelLeft+pickerCellWidth+1, y))
	catalog := storage.Defaults().Catalog
	if !m.picker.Selected(catalog[1]) || m.picker.FocusIndex() != 1 {
		t.Fatalf("click: expected %q selected and focused", catalog[1].Name)
	}

	// Clicking outside commits the pending selection.
	m = send(t, m, mouse(tea.MouseActionPress, 0, 0))
	if m.overlay.Open() {
		t.Fatalf("click outside: expected picker closed")
	}
	want := "Seated Shoulder Flexion," + catalog[1].Name + ",Resisted Row Pattern,Hip Bridge with March"
	if got := recordNames(m, 0); got != want {
		t.Fatalf("insert: expected %q, got %q", want, got)
	}
}

func TestDeleteIsDeferredAndUndoable(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keys("down")...)
	id := m.recordID

	m = send(t, m, keys("d")...)
	if _, ok := m.doc.Record(id); !ok {
		t.Fatalf("delete: record removed before the fade")
	}
	if !m.fading(id) {
		t.Fatalf("delete: expected removal timer")
	}

	m = send(t, m, keys("u")...)
	if m.fading(id) {
		t.Fatalf("undo: expected removal cancelled")
	}

	m = send(t, m, keys("d")...)
	m = fire(t, m, flowsheet.TimerRemoval, id)
	if _, ok := m.doc.Record(id); ok {
		t.Fatalf("timer fired: expected record removed")
	}
	if m.recordID != m.doc.Groups[0].Records[0].ID {
		t.Fatalf("expected cursor on the next row, got %q", m.recordID)
	}
}

func TestStaleTimerTokenIgnored(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keys("down", "d")...)
	id := m.recordID
	stale, _ := m.timers.Live(flowsheet.TimerKey{Kind: flowsheet.TimerRemoval, ID: id})

	m = send(t, m, keys("u", "d")...)
	m = send(t, m, timerFiredMsg{token: stale})
	if _, ok := m.doc.Record(id); !ok {
		t.Fatalf("stale token: record removed")
	}
	m = fire(t, m, flowsheet.TimerRemoval, id)
	if _, ok := m.doc.Record(id); ok {
		t.Fatalf("live token: expected record removed")
	}
}

func TestMouseDragWithinGroup(t *testing.T) {
	m := newTestModel(t)
	g := m.doc.Groups[0].ID

	m = send(t, m, mouse(tea.MouseActionPress, 10, rowY(t, m, g, 0, 0)))
	if !m.drag.Active() {
		t.Fatalf("press on row: expected drag")
	}
	// Lower half of the last row: after it.
	y := rowY(t, m, g, 2, 1)
	m = send(t, m,
		mouse(tea.MouseActionMotion, 10, y),
		mouse(tea.MouseActionRelease, 10, y),
	)
	if m.drag.Active() {
		t.Fatalf("release: expected drag ended")
	}
	want := "Resisted Row Pattern,Hip Bridge with March,Seated Shoulder Flexion"
	if got := recordNames(m, 0); got != want {
		t.Fatalf("drag: expected %q, got %q", want, got)
	}
}

func TestMouseDragAcrossGroups(t *testing.T) {
	m := newTestModel(t)
	from, to := m.doc.Groups[0].ID, m.doc.Groups[1].ID

	m = send(t, m, mouse(tea.MouseActionPress, 10, rowY(t, m, from, 0, 0)))
	end := screenY(t, m, func(h hit) bool { return h.kind == hitListEnd && h.groupID == to })
	m = send(t, m,
		mouse(tea.MouseActionMotion, 10, end),
		mouse(tea.MouseActionRelease, 10, end),
	)
	if got := recordNames(m, 1); got != "Single-leg Stance with Bands,BOSU Pelvic Shifts,Seated Shoulder Flexion" {
		t.Fatalf("drag across: unexpected target group %q", got)
	}
	if len(m.doc.Groups[0].Records) != 2 {
		t.Fatalf("drag across: expected source group to shrink")
	}
	if m.groupID != to {
		t.Fatalf("expected cursor to follow the moved record")
	}
}

func TestMouseReleaseOutsideCancelsDrag(t *testing.T) {
	m := newTestModel(t)
	g := m.doc.Groups[0].ID
	before := recordNames(m, 0)

	m = send(t, m,
		mouse(tea.MouseActionPress, 10, rowY(t, m, g, 0, 0)),
		mouse(tea.MouseActionMotion, 10, rowY(t, m, g, 2, 1)),
		mouse(tea.MouseActionRelease, 10, 0),
	)
	if m.drag.Active() {
		t.Fatalf("release outside: expected drag ended")
	}
	if got := recordNames(m, 0); got != before {
		t.Fatalf("release outside: expected %q, got %q", before, got)
	}
}

func TestEscCancelsDrag(t *testing.T) {
	m := newTestModel(t)
	g := m.doc.Groups[0].ID
	m = send(t, m, mouse(tea.MouseActionPress, 10, rowY(t, m, g, 1, 0)))
	m = send(t, m, keys("esc")...)
	if m.drag.Active() {
		t.Fatalf("esc: expected drag cancelled")
	}
}

func TestKeyboardNudge(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keys("down", "J")...)
	if got := recordNames(m, 0); got != "Resisted Row Pattern,Seated Shoulder Flexion,Hip Bridge with March" {
		t.Fatalf("nudge down: got %q", got)
	}
	if r, _ := m.doc.Record(m.recordID); r.Name != "Seated Shoulder Flexion" {
		t.Fatalf("nudge: expected cursor to follow the record")
	}
}

func TestBillingQuantityUpdatesTotals(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keys("b")...)
	if !m.overlay.Is(flowsheet.OverlayBillingField, m.doc.Groups[0].ID) {
		t.Fatalf("b: expected billing editor, got %+v", m.overlay)
	}
	m = send(t, m, keys("tab", "tab", "38")...)
	if m.billingField != billingQuantity {
		t.Fatalf("expected minutes field, got %v", m.billingField)
	}
	tot := m.doc.Totals()
	if tot.Minutes != 38 || tot.Units != flowsheet.Units(38) {
		t.Fatalf("totals: expected 38 min, got %+v", tot)
	}
	m = send(t, m, keys("esc")...)
	if m.overlay.Open() {
		t.Fatalf("esc: expected billing editor closed")
	}
	if q := m.doc.Groups[0].Billing.Quantity; q != "38" {
		t.Fatalf("quantity: expected 38, got %q", q)
	}
}

func TestBillingSuggestionClick(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keys("b", "tab")...)
	y := screenY(t, m, func(h hit) bool { return h.kind == hitSuggestion && h.index == 0 })
	m = send(t, m, mouse(tea.MouseActionPress, panelLeft+2, y))
	want := storage.Defaults().Modifiers[0].Code
	if got := m.doc.Groups[0].Billing.Modifier; got != want {
		t.Fatalf("suggestion click: expected modifier %q, got %q", want, got)
	}
	if m.billingField != billingQuantity {
		t.Fatalf("suggestion click: expected next field, got %v", m.billingField)
	}
}

func TestCodePickerAddsGroups(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keys("a")...)
	if m.overlay.Kind != flowsheet.OverlayCodePicker {
		t.Fatalf("a: expected code picker, got %+v", m.overlay)
	}
	m = send(t, m, keys("tab", "down", "tab", "enter")...)
	if len(m.doc.Groups) != 5 {
		t.Fatalf("expected 5 groups, got %d", len(m.doc.Groups))
	}
	codes := storage.Defaults().Codes
	if m.doc.Groups[3].Billing.Code != codes[0].Code || m.doc.Groups[4].Billing.Code != codes[1].Code {
		t.Fatalf("unexpected new groups %+v", m.doc.Groups[3:])
	}
	if m.groupID != m.doc.Groups[3].ID {
		t.Fatalf("expected cursor on the first new group")
	}
}

func TestEvalPickerCancel(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keys("E", "tab", "esc")...)
	if m.overlay.Open() || len(m.doc.Groups) != 3 {
		t.Fatalf("esc: expected nothing added, got %d groups", len(m.doc.Groups))
	}
}

func TestMenuClosesOnOutsideClick(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keys("down", "m")...)
	if m.overlay.Kind != flowsheet.OverlayRecordMenu {
		t.Fatalf("m: expected record menu")
	}
	g := m.doc.Groups[0].ID
	m = send(t, m, mouse(tea.MouseActionPress, 10, rowY(t, m, g, 1, 0)))
	if m.overlay.Open() {
		t.Fatalf("outside click: expected menu closed, got %+v", m.overlay)
	}
	if m.drag.Active() {
		t.Fatalf("outside click: should not start a drag")
	}
}

func TestOverlaysAreExclusive(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keys("M")...)
	if m.overlay.Kind != flowsheet.OverlayGroupMenu {
		t.Fatalf("M: expected group menu")
	}
	// "Edit billing" replaces the menu.
	m = send(t, m, keys("down", "down", "down", "enter")...)
	if m.overlay.Kind != flowsheet.OverlayBillingField {
		t.Fatalf("menu billing: expected billing editor, got %+v", m.overlay)
	}
}

func TestLinkTooltipFollowsCursor(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keys("n", "/", "enter")...)
	linked := m.recordID

	m = send(t, m, keys("up", "down")...)
	if !m.overlay.Is(flowsheet.OverlayLinkTooltip, linked) {
		t.Fatalf("landing on linked row: expected tooltip, got %+v", m.overlay)
	}
	m = send(t, m, keys("up")...)
	if !m.overlay.Is(flowsheet.OverlayLinkTooltip, linked) {
		t.Fatalf("leaving: tooltip should close only after the delay")
	}
	m = fire(t, m, flowsheet.TimerLinkClose, linked)
	if m.overlay.Open() {
		t.Fatalf("close timer: expected tooltip closed")
	}
}

func TestUnlinkMakesNameEditable(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keys("n", "/", "enter", "U")...)
	r, _ := m.doc.Record(m.recordID)
	if _, linked := r.Linked(); linked || !r.Editable() {
		t.Fatalf("U: expected unlinked record")
	}
	if r.Name == "" {
		t.Fatalf("U: expected name kept")
	}
}

func TestResetEmptiesDocument(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keys("down", "d", "R")...)
	if len(m.doc.Groups) != 0 || m.doc.Len() != 0 {
		t.Fatalf("reset: expected empty document")
	}
	if m.groupID != "" || m.recordID != "" || m.overlay.Open() {
		t.Fatalf("reset: expected cleared cursor and overlay")
	}
	if !strings.Contains(m.View(), "No groups yet") {
		t.Fatalf("reset: expected empty state in view")
	}
}

func TestViewShowsTotalsAndRows(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	v := m.View()
	for _, want := range []string{"Flowsheet", "Seated Shoulder Flexion", "0 min", "3 groups"} {
		if !strings.Contains(v, want) {
			t.Fatalf("view: expected %q in output", want)
		}
	}
}

func TestPreviewExport(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keys("down", "x", "p")...)
	if m.overlay.Kind != flowsheet.OverlayHEPPreview {
		t.Fatalf("p: expected preview, got %+v", m.overlay)
	}
	if !strings.Contains(m.preview, "Seated Shoulder Flexion") {
		t.Fatalf("preview: expected checked exercise, got %q", m.preview)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("s: expected export command")
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if em, ok := c().(exportWrittenMsg); ok {
				msg = em
			}
		}
	}
	written, ok := msg.(exportWrittenMsg)
	if !ok || written.err != nil {
		t.Fatalf("export: unexpected result %#v", msg)
	}
	if !m.store.ExportExists(written.name) {
		t.Fatalf("export: %s not written", written.name)
	}
}

func TestMouseDragBackToOwnRowIsNoop(t *testing.T) {
	m := newTestModel(t)
	g := m.doc.Groups[0].ID
	before := recordNames(m, 0)

	own := rowY(t, m, g, 0, 0)
	m = send(t, m,
		mouse(tea.MouseActionPress, 10, own),
		mouse(tea.MouseActionMotion, 10, rowY(t, m, g, 2, 1)),
		mouse(tea.MouseActionMotion, 10, own),
		mouse(tea.MouseActionRelease, 10, own),
	)
	if m.drag.Active() {
		t.Fatalf("release: expected drag ended")
	}
	if got := recordNames(m, 0); got != before {
		t.Fatalf("release on own row: expected %q, got %q", before, got)
	}
}

func TestDeadZoneKeepsTargetWithTallRows(t *testing.T) {
	m := newTestModel(t)
	m.cfg.Editor.RowHeight = 3
	g := m.doc.Groups[0].ID

	// Upper third of the last row targets "before it"; the middle third is
	// the dead zone and keeps that target.
	m = send(t, m,
		mouse(tea.MouseActionPress, 10, rowY(t, m, g, 0, 0)),
		mouse(tea.MouseActionMotion, 10, rowY(t, m, g, 2, 0)),
	)
	mid := rowY(t, m, g, 2, 1)
	m = send(t, m,
		mouse(tea.MouseActionMotion, 10, mid),
		mouse(tea.MouseActionRelease, 10, mid),
	)
	want := "Resisted Row Pattern,Seated Shoulder Flexion,Hip Bridge with March"
	if got := recordNames(m, 0); got != want {
		t.Fatalf("dead zone: expected %q, got %q", want, got)
	}
}

func TestRemovalKeepsEditOnAnotherRow(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keys("down", "d")...)
	removed := m.recordID

	m = send(t, m, keys("down", "enter")...)
	edited := m.recordID
	if !m.editing || edited == removed {
		t.Fatalf("expected editing another row, got editing=%v on %q", m.editing, edited)
	}

	m = fire(t, m, flowsheet.TimerRemoval, removed)
	if _, ok := m.doc.Record(removed); ok {
		t.Fatalf("timer fired: expected record removed")
	}
	if !m.editing || m.recordID != edited {
		t.Fatalf("removal elsewhere: expected edit on %q kept, got editing=%v on %q", edited, m.editing, m.recordID)
	}
}
