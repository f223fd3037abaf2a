package flowsheet

import "regexp"

// Document is the flowsheet being edited: an ordered list of groups, each
// holding an ordered list of records.
//
// Every mutation is total. Operations addressed to a group or record that is
// not present do nothing, so stale handlers from rows that just went away
// cannot corrupt the document.
type Document struct {
	Groups []Group

	ids *IDSource
}

// New returns an empty document that draws identifiers from ids.
func New(ids *IDSource) *Document {
	if ids == nil {
		ids = NewIDSource()
	}
	return &Document{ids: ids}
}

// SeedGroup describes a group loaded from reference data.
type SeedGroup struct {
	Label         string       `yaml:"label"`
	Tag           string       `yaml:"tag"`
	Interventions []SeedRecord `yaml:"interventions"`
}

// SeedRecord describes a record loaded from reference data.
type SeedRecord struct {
	Name   string `yaml:"name"`
	Sets   int    `yaml:"sets"`
	Reps   int    `yaml:"reps"`
	Weight string `yaml:"weight"`
	Status string `yaml:"status"`
}

// Seed appends groups built from seed data. The billing code of each group
// defaults to the code found in its label.
func (d *Document) Seed(groups []SeedGroup, fallbackCode string) {
	for _, sg := range groups {
		code := DefaultCode(sg.Label, fallbackCode)
		g := Group{
			ID:      d.ids.NewGroupID(code),
			Label:   sg.Label,
			Tag:     sg.Tag,
			Billing: Billing{Code: code},
		}
		for _, sr := range sg.Interventions {
			r := newRecord(d.ids.NewRecordID())
			r.Name = sr.Name
			r.Sets = sr.Sets
			r.Reps = sr.Reps
			r.Weight = sr.Weight
			r.Status = ParseStatus(sr.Status)
			g.Records = append(g.Records, r)
		}
		d.Groups = append(d.Groups, g)
	}
}

var codePattern = regexp.MustCompile(`(\d{5}|[A-Z]\d{3,4})`)

// DefaultCode extracts a billing code such as "97110" or "A4466" from a group
// label, returning fallback when the label holds none.
func DefaultCode(label, fallback string) string {
	if m := codePattern.FindString(label); m != "" {
		return m
	}
	return fallback
}

// Snapshot returns a deep copy of the groups for rendering.
func (d *Document) Snapshot() []Group {
	out := make([]Group, len(d.Groups))
	for i, g := range d.Groups {
		g.Records = append([]Record(nil), g.Records...)
		out[i] = g
	}
	return out
}

// Len returns the total number of records across all groups.
func (d *Document) Len() int {
	n := 0
	for _, g := range d.Groups {
		n += len(g.Records)
	}
	return n
}

func (d *Document) groupIndex(groupID string) int {
	for i := range d.Groups {
		if d.Groups[i].ID == groupID {
			return i
		}
	}
	return -1
}

// Group returns the group with the given identifier.
func (d *Document) Group(groupID string) (Group, bool) {
	gi := d.groupIndex(groupID)
	if gi < 0 {
		return Group{}, false
	}
	return d.Groups[gi], true
}

// FindRecord locates a record by identifier.
func (d *Document) FindRecord(recordID string) (gi, ri int, ok bool) {
	for gi := range d.Groups {
		for ri := range d.Groups[gi].Records {
			if d.Groups[gi].Records[ri].ID == recordID {
				return gi, ri, true
			}
		}
	}
	return -1, -1, false
}

// Record returns the record with the given identifier.
func (d *Document) Record(recordID string) (Record, bool) {
	gi, ri, ok := d.FindRecord(recordID)
	if !ok {
		return Record{}, false
	}
	return d.Groups[gi].Records[ri], true
}

func (d *Document) record(recordID string) *Record {
	gi, ri, ok := d.FindRecord(recordID)
	if !ok {
		return nil
	}
	return &d.Groups[gi].Records[ri]
}

// AddGroup appends a group for a billing code and returns its identifier.
func (d *Document) AddGroup(code, label string) string {
	id := d.ids.NewGroupID(code)
	d.Groups = append(d.Groups, Group{
		ID:      id,
		Label:   label,
		Tag:     "Custom",
		Billing: Billing{Code: code},
	})
	return id
}

// AddGroups appends one group per option, in order.
func (d *Document) AddGroups(options []CodeOption) []string {
	ids := make([]string, 0, len(options))
	for _, o := range options {
		ids = append(ids, d.AddGroup(o.Code, o.Title()))
	}
	return ids
}

// RemoveGroup drops a group together with its records and billing selection.
func (d *Document) RemoveGroup(groupID string) {
	gi := d.groupIndex(groupID)
	if gi < 0 {
		return
	}
	d.Groups = append(d.Groups[:gi], d.Groups[gi+1:]...)
}

// AddRecord appends an empty record to a group and returns its identifier, or
// "" when the group does not exist.
func (d *Document) AddRecord(groupID string) string {
	gi := d.groupIndex(groupID)
	if gi < 0 {
		return ""
	}
	r := newRecord(d.ids.NewRecordID())
	d.Groups[gi].Records = append(d.Groups[gi].Records, r)
	return r.ID
}

// UpdateRecord applies a partial update. Name changes are ignored while the
// record is catalog-linked.
func (d *Document) UpdateRecord(recordID string, p RecordPatch) {
	if r := d.record(recordID); r != nil {
		p.apply(r)
	}
}

// SetName sets the free-text name of an unlinked record.
func (d *Document) SetName(recordID, name string) {
	d.UpdateRecord(recordID, RecordPatch{Name: &name})
}

// SetDetails sets the detail/cues text of a record.
func (d *Document) SetDetails(recordID, details string) {
	d.UpdateRecord(recordID, RecordPatch{Details: &details})
}

// UpdateBilling applies a partial update to a group's billing selection.
func (d *Document) UpdateBilling(groupID string, p BillingPatch) {
	gi := d.groupIndex(groupID)
	if gi < 0 {
		return
	}
	p.apply(&d.Groups[gi].Billing)
}

// RemoveRecord removes a record immediately.
func (d *Document) RemoveRecord(recordID string) {
	gi, ri, ok := d.FindRecord(recordID)
	if !ok {
		return
	}
	recs := d.Groups[gi].Records
	d.Groups[gi].Records = append(recs[:ri:ri], recs[ri+1:]...)
}

// ToggleStatus advances the completion status of a record.
func (d *Document) ToggleStatus(recordID string) {
	if r := d.record(recordID); r != nil {
		r.Status = r.Status.Toggle()
	}
}

// ToggleChecked flips HEP inclusion of a record.
func (d *Document) ToggleChecked(recordID string) {
	if r := d.record(recordID); r != nil {
		r.Checked = !r.Checked
	}
}

// ToggleToday flips the "to do today" marker of a record.
func (d *Document) ToggleToday(recordID string) {
	if r := d.record(recordID); r != nil {
		r.Today = !r.Today
	}
}

// Unlink breaks the catalog link of a record, restoring free-text editing.
// Identifier, name and position are kept.
func (d *Document) Unlink(recordID string) {
	if r := d.record(recordID); r != nil {
		r.Link = Unlinked{}
	}
}

// ToggleCollapsed flips the collapsed flag of a group.
func (d *Document) ToggleCollapsed(groupID string) {
	gi := d.groupIndex(groupID)
	if gi < 0 {
		return
	}
	d.Groups[gi].Collapsed = !d.Groups[gi].Collapsed
}

// MarkGroupDone sets every record of a group to done and adds it to the HEP.
func (d *Document) MarkGroupDone(groupID string) {
	gi := d.groupIndex(groupID)
	if gi < 0 {
		return
	}
	for ri := range d.Groups[gi].Records {
		d.Groups[gi].Records[ri].Status = StatusDone
		d.Groups[gi].Records[ri].Checked = true
	}
}

// AddGroupToHEP checks every record of a group.
func (d *Document) AddGroupToHEP(groupID string) {
	gi := d.groupIndex(groupID)
	if gi < 0 {
		return
	}
	for ri := range d.Groups[gi].Records {
		d.Groups[gi].Records[ri].Checked = true
	}
}

// AllChecked reports whether the document has records and all are checked.
func (d *Document) AllChecked() bool {
	n := 0
	for _, g := range d.Groups {
		for _, r := range g.Records {
			if !r.Checked {
				return false
			}
			n++
		}
	}
	return n > 0
}

// ToggleAllChecked checks every record, or unchecks every record when all are
// already checked.
func (d *Document) ToggleAllChecked() {
	next := !d.AllChecked()
	for gi := range d.Groups {
		for ri := range d.Groups[gi].Records {
			d.Groups[gi].Records[ri].Checked = next
		}
	}
}

// Checked returns the records included in the HEP, in document order.
func (d *Document) Checked() []Record {
	var out []Record
	for _, g := range d.Groups {
		for _, r := range g.Records {
			if r.Checked {
				out = append(out, r)
			}
		}
	}
	return out
}

// Reset empties the document.
func (d *Document) Reset() {
	d.Groups = nil
}
