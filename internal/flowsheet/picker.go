package flowsheet

import (
	"fmt"
	"strings"
)

// DefaultColumns is the picker grid width.
const DefaultColumns = 3

// Direction is a keyboard move inside the picker grid.
type Direction int

const (
	Right Direction = iota
	Left
	Down
	Up
)

// Picker is the open catalog picker of one record. The query is the current
// text of the field the picker was opened from; clicks accumulate a pending
// selection that is committed when the picker closes.
type Picker struct {
	GroupID  string
	RecordID string
	RowIndex int // position of the record when the picker opened
	Query    string
	Columns  int

	candidates []CatalogEntry
	selected   []CatalogEntry
	focus      int
}

// OpenPicker opens the picker when typed is the trigger rune and the record
// has an empty, unlinked name. The trigger itself never becomes part of the
// name. candidates is the catalog, or a narrower override list.
func OpenPicker(d *Document, recordID string, typed, trigger rune, candidates []CatalogEntry) (*Picker, bool) {
	if typed != trigger {
		return nil, false
	}
	gi, ri, ok := d.FindRecord(recordID)
	if !ok {
		return nil, false
	}
	r := d.Groups[gi].Records[ri]
	if r.Name != "" || !r.Editable() {
		return nil, false
	}
	return newPicker(d.Groups[gi].ID, recordID, ri, candidates), true
}

// OpenInsertPicker opens the picker on any record, named or not. Nothing typed
// into the picker touches the record's name.
func OpenInsertPicker(d *Document, recordID string, candidates []CatalogEntry) (*Picker, bool) {
	gi, ri, ok := d.FindRecord(recordID)
	if !ok {
		return nil, false
	}
	return newPicker(d.Groups[gi].ID, recordID, ri, candidates), true
}

func newPicker(groupID, recordID string, index int, candidates []CatalogEntry) *Picker {
	return &Picker{
		GroupID:    groupID,
		RecordID:   recordID,
		RowIndex:   index,
		Columns:    DefaultColumns,
		candidates: candidates,
	}
}

// FilterCatalog returns the entries whose name contains query, ignoring case.
// An empty query keeps every entry.
func FilterCatalog(entries []CatalogEntry, query string) []CatalogEntry {
	q := strings.ToLower(query)
	if q == "" {
		return entries
	}
	var out []CatalogEntry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), q) {
			out = append(out, e)
		}
	}
	return out
}

// Visible returns the candidates matching the current query.
func (p *Picker) Visible() []CatalogEntry {
	return FilterCatalog(p.candidates, p.Query)
}

// Empty reports the "no results" state.
func (p *Picker) Empty() bool {
	return len(p.Visible()) == 0
}

// SetQuery replaces the filter text and keeps the focus inside the results.
func (p *Picker) SetQuery(q string) {
	p.Query = q
	n := len(p.Visible())
	switch {
	case n == 0:
		p.focus = -1
	case p.focus < 0 || p.focus >= n:
		p.focus = 0
	}
}

// Toggle adds entry to the pending selection, or removes it when already there.
func (p *Picker) Toggle(e CatalogEntry) {
	for i, s := range p.selected {
		if s.ID == e.ID {
			p.selected = append(p.selected[:i:i], p.selected[i+1:]...)
			return
		}
	}
	p.selected = append(p.selected, e)
}

// ToggleFocused toggles the entry under the keyboard focus.
func (p *Picker) ToggleFocused() {
	if e, ok := p.Focused(); ok {
		p.Toggle(e)
	}
}

// Selected reports whether entry is part of the pending selection.
func (p *Picker) Selected(e CatalogEntry) bool {
	for _, s := range p.selected {
		if s.ID == e.ID {
			return true
		}
	}
	return false
}

// Pending returns the pending selection in click order.
func (p *Picker) Pending() []CatalogEntry {
	return append([]CatalogEntry(nil), p.selected...)
}

// FocusIndex is the focused index into Visible, or -1.
func (p *Picker) FocusIndex() int { return p.focus }

// SetFocus focuses the visible entry at i (mouse hover).
func (p *Picker) SetFocus(i int) {
	if i >= 0 && i < len(p.Visible()) {
		p.focus = i
	}
}

// Focused returns the entry under the keyboard focus.
func (p *Picker) Focused() (CatalogEntry, bool) {
	vis := p.Visible()
	if p.focus < 0 || p.focus >= len(vis) {
		return CatalogEntry{}, false
	}
	return vis[p.focus], true
}

// Move shifts the focus through the grid.
func (p *Picker) Move(dir Direction) {
	p.focus = GridMove(p.focus, len(p.Visible()), p.columns(), dir)
}

func (p *Picker) columns() int {
	if p.Columns <= 0 {
		return DefaultColumns
	}
	return p.Columns
}

// GridMove computes the next focus index in a grid of total items laid out in
// rows of columns. Right/left run along rows and continue onto the next or
// previous row; up/down stay in the column and wrap around top and bottom.
// Moves that would leave the items keep the focus where it is.
func GridMove(focus, total, columns int, dir Direction) int {
	if total <= 0 {
		return -1
	}
	if focus < 0 {
		if dir == Up {
			return total - 1
		}
		return 0
	}
	row, col := focus/columns, focus%columns
	switch dir {
	case Right:
		next := focus + 1
		if col == columns-1 {
			next = (row + 1) * columns
		}
		if next < total {
			return next
		}
	case Left:
		if col > 0 {
			return focus - 1
		}
		if row == 0 {
			return focus
		}
		prevRow := row - 1
		inPrev := columns
		if rest := total - prevRow*columns; rest < inPrev {
			inPrev = rest
		}
		return prevRow*columns + inPrev - 1
	case Down:
		if next := focus + columns; next < total {
			return next
		}
		if col < total {
			return col
		}
	case Up:
		if focus >= columns {
			return focus - columns
		}
		lastRow := (total - 1) / columns
		if bottom := lastRow*columns + col; bottom < total {
			return bottom
		}
	}
	return focus
}

// Confirm returns what the confirmation key commits: the pending selection,
// or the focused entry alone when nothing is pending.
func (p *Picker) Confirm() []CatalogEntry {
	if len(p.selected) > 0 {
		return p.Pending()
	}
	if e, ok := p.Focused(); ok {
		return []CatalogEntry{e}
	}
	return nil
}

// Dismiss returns what closing the picker (cancel key or click outside)
// commits: the pending selection, which may be empty.
func (p *Picker) Dismiss() []CatalogEntry {
	return p.Pending()
}

// CatalogLinker builds the link of a record created from an entry. Entries
// without an external reference produce unlinked records. template receives
// the reference through a single %s verb.
func CatalogLinker(template string) func(CatalogEntry) Link {
	return func(e CatalogEntry) Link {
		ref := strings.TrimSpace(e.Ref)
		if ref == "" {
			return Unlinked{}
		}
		url := ""
		if template != "" {
			url = fmt.Sprintf(template, ref)
		}
		return Linked{Ref: ref, URL: url}
	}
}

// Commit turns the entries chosen in p into records.
//
// When the triggering record still has an empty name, the first entry
// populates it in place and the rest become new records right after it.
// Otherwise every entry becomes a new record after it. New records are
// contiguous and keep selection order. The triggering record is located by
// identifier; if it is gone, the position captured when the picker opened is
// used instead. Commit returns the identifiers of the inserted records.
func (d *Document) Commit(p *Picker, entries []CatalogEntry, link func(CatalogEntry) Link) []string {
	if p == nil || len(entries) == 0 {
		return nil
	}
	if link == nil {
		link = CatalogLinker("")
	}

	gi, ri, found := d.FindRecord(p.RecordID)
	at := 0
	if found {
		r := &d.Groups[gi].Records[ri]
		if r.Name == "" {
			r.Name = entries[0].Name
			r.Link = link(entries[0])
			entries = entries[1:]
		}
		at = ri + 1
	} else {
		gi = d.groupIndex(p.GroupID)
		if gi < 0 {
			return nil
		}
		at = clamp(p.RowIndex+1, 0, len(d.Groups[gi].Records))
	}
	if len(entries) == 0 {
		return nil
	}

	added := make([]Record, 0, len(entries))
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		r := newRecord(d.ids.NewRecordID())
		r.Name = e.Name
		r.Link = link(e)
		added = append(added, r)
		ids = append(ids, r.ID)
	}

	recs := d.Groups[gi].Records
	next := make([]Record, 0, len(recs)+len(added))
	next = append(next, recs[:at]...)
	next = append(next, added...)
	next = append(next, recs[at:]...)
	d.Groups[gi].Records = next
	return ids
}
