package flowsheet

// Move takes the record at fromIndex out of one group and inserts it into
// another (or the same) group at toIndex, as a single splice.
//
// toIndex is the insertion slot counted before removal, so a same-group move
// further down the list lands at toIndex-1 once the record has been taken out.
// Dropping a record onto its own slot (toIndex == fromIndex or fromIndex+1 in
// the same group) changes nothing. toIndex is clamped to the valid range.
func (d *Document) Move(fromGroupID string, fromIndex int, toGroupID string, toIndex int) bool {
	fi := d.groupIndex(fromGroupID)
	ti := d.groupIndex(toGroupID)
	if fi < 0 || ti < 0 {
		return false
	}
	from := d.Groups[fi].Records
	if fromIndex < 0 || fromIndex >= len(from) {
		return false
	}
	toIndex = clamp(toIndex, 0, len(d.Groups[ti].Records))

	if fi == ti {
		if toIndex == fromIndex || toIndex == fromIndex+1 {
			return false
		}
		if toIndex > fromIndex {
			toIndex--
		}
	}

	moved := from[fromIndex]
	d.Groups[fi].Records = append(from[:fromIndex:fromIndex], from[fromIndex+1:]...)

	to := d.Groups[ti].Records
	toIndex = clamp(toIndex, 0, len(to))
	next := make([]Record, 0, len(to)+1)
	next = append(next, to[:toIndex]...)
	next = append(next, moved)
	next = append(next, to[toIndex:]...)
	d.Groups[ti].Records = next
	return true
}

// Nudge moves a record one slot up or down. At the edge of a group the record
// crosses into the neighbouring group (end of the previous one, start of the
// next one).
func (d *Document) Nudge(recordID string, up bool) bool {
	gi, ri, ok := d.FindRecord(recordID)
	if !ok {
		return false
	}
	g := d.Groups[gi]
	switch {
	case up && ri > 0:
		return d.Move(g.ID, ri, g.ID, ri-1)
	case up && gi > 0:
		prev := d.Groups[gi-1]
		return d.Move(g.ID, ri, prev.ID, len(prev.Records))
	case !up && ri < len(g.Records)-1:
		return d.Move(g.ID, ri, g.ID, ri+2)
	case !up && gi < len(d.Groups)-1:
		return d.Move(g.ID, ri, d.Groups[gi+1].ID, 0)
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Source is the record a drag started from.
type Source struct {
	GroupID  string
	Index    int
	RecordID string
}

// Target is a resolved drop destination: an insertion slot in a group,
// counted before the dragged record is removed.
type Target struct {
	GroupID string
	Index   int
}

// Drag is the drag gesture state machine. The zero value is idle.
//
//	idle --Start--> dragging --OverRow/OverListEnd--> dragging(target)
//	dragging --Drop--> idle (move committed)
//	dragging --End/Cancel--> idle (document untouched)
type Drag struct {
	// DeadZone is the half-height of the band around a row's midpoint in
	// which the previous target is kept.
	DeadZone float64

	active    bool
	source    Source
	target    Target
	hasTarget bool
}

// Start begins dragging the record at index in groupID.
func (g *Drag) Start(groupID string, index int, recordID string) {
	g.active = true
	g.source = Source{GroupID: groupID, Index: index, RecordID: recordID}
	g.target = Target{}
	g.hasTarget = false
}

// Active reports whether a drag is in progress.
func (g *Drag) Active() bool { return g.active }

// Source returns the origin of the current drag.
func (g *Drag) Source() Source { return g.source }

// Target returns the currently resolved drop target.
func (g *Drag) Target() (Target, bool) {
	return g.target, g.active && g.hasTarget
}

// OverRow resolves the target while the pointer is over a row. offsetY is the
// pointer position relative to the top of the row and height the row height.
// The upper half means "before this row", the lower half "after this row".
// Inside the dead zone the previous target is kept if it already points at
// one of this row's two slots; otherwise the target defaults to "after".
// Over the dragged record's own row the target is its own slot, so a release
// there is a no-op.
func (g *Drag) OverRow(groupID string, index int, offsetY, height float64) {
	if !g.active {
		return
	}
	if groupID == g.source.GroupID && index == g.source.Index {
		g.target = Target{GroupID: groupID, Index: index}
		g.hasTarget = true
		return
	}
	mid := height / 2
	var slot int
	switch {
	case offsetY < mid-g.DeadZone:
		slot = index
	case offsetY > mid+g.DeadZone:
		slot = index + 1
	default:
		if g.hasTarget && g.target.GroupID == groupID &&
			(g.target.Index == index || g.target.Index == index+1) {
			return
		}
		slot = index + 1
	}
	g.target = Target{GroupID: groupID, Index: slot}
	g.hasTarget = true
}

// OverListEnd resolves the target while the pointer is over the empty space
// below the last row of a group: insert at the end.
func (g *Drag) OverListEnd(groupID string, length int) {
	if !g.active {
		return
	}
	g.target = Target{GroupID: groupID, Index: length}
	g.hasTarget = true
}

// Drop commits the drag onto groupID. The resolved target is used when it
// belongs to that group; otherwise fallback is used as the insertion slot.
// The dragged record is located by identifier first, so a source index that
// went stale mid-drag does not move the wrong row. The gesture always ends.
func (g *Drag) Drop(d *Document, groupID string, fallback int) bool {
	if !g.active {
		return false
	}
	defer g.End()

	slot := fallback
	if g.hasTarget && g.target.GroupID == groupID {
		slot = g.target.Index
	}

	fromGroup, fromIndex := g.source.GroupID, g.source.Index
	if gi, ri, ok := d.FindRecord(g.source.RecordID); ok {
		fromGroup, fromIndex = d.Groups[gi].ID, ri
	}
	return d.Move(fromGroup, fromIndex, groupID, slot)
}

// Cancel abandons the drag.
func (g *Drag) Cancel() { g.End() }

// End clears all drag state without touching the document. It covers both a
// drag-end event without a drop and an explicit cancel.
func (g *Drag) End() {
	dz := g.DeadZone
	*g = Drag{DeadZone: dz}
}
