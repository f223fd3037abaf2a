package flowsheet

import "strings"

// Status is the completion state of an intervention.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Toggle returns the next status for the completion toggle. Only todo and done
// are reachable this way: in-progress (seed data only) collapses to todo.
func (s Status) Toggle() Status {
	switch s {
	case StatusTodo:
		return StatusDone
	case StatusDone:
		return StatusTodo
	default:
		return StatusTodo
	}
}

// Label returns the chip text shown next to a row.
func (s Status) Label() string {
	switch s {
	case StatusDone:
		return "Done"
	case StatusInProgress:
		return "In progress"
	default:
		return "To do today"
	}
}

// ParseStatus maps seed/reference strings onto a Status. Unknown values are todo.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "done":
		return StatusDone
	case "in-progress", "in_progress", "doing":
		return StatusInProgress
	default:
		return StatusTodo
	}
}

// Link is the catalog linkage of a record: either Unlinked or Linked.
type Link interface {
	isLink()
}

// Unlinked records have a free-text name.
type Unlinked struct{}

// Linked records were populated from a catalog entry; their name is read-only
// until the link is removed.
type Linked struct {
	Ref string // external catalog identifier
	URL string // resource opened by the "open link" action
}

func (Unlinked) isLink() {}
func (Linked) isLink()   {}

// Record is one intervention line inside a group.
type Record struct {
	ID      string
	Name    string
	Details string
	Sets    int
	Reps    int
	Weight  string
	Status  Status
	Checked bool // included in the home exercise plan export
	Today   bool // flagged "to do today"
	Link    Link
}

// Linked reports the catalog link, if any.
func (r Record) Linked() (Linked, bool) {
	l, ok := r.Link.(Linked)
	return l, ok
}

// Editable reports whether the name accepts free text.
func (r Record) Editable() bool {
	_, linked := r.Linked()
	return !linked
}

func newRecord(id string) Record {
	return Record{ID: id, Status: StatusTodo, Link: Unlinked{}}
}

// RecordPatch is a partial update; nil fields are left unchanged.
type RecordPatch struct {
	Name    *string
	Details *string
	Sets    *int
	Reps    *int
	Weight  *string
	Status  *Status
	Checked *bool
	Today   *bool
}

func (p RecordPatch) apply(r *Record) {
	if p.Name != nil && r.Editable() {
		r.Name = *p.Name
	}
	if p.Details != nil {
		r.Details = *p.Details
	}
	if p.Sets != nil && *p.Sets >= 0 {
		r.Sets = *p.Sets
	}
	if p.Reps != nil && *p.Reps >= 0 {
		r.Reps = *p.Reps
	}
	if p.Weight != nil {
		r.Weight = *p.Weight
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.Checked != nil {
		r.Checked = *p.Checked
	}
	if p.Today != nil {
		r.Today = *p.Today
	}
}

// Billing is the per-group billing selection.
type Billing struct {
	Code     string
	Modifier string
	Quantity string
	Provider string
}

// BillingPatch is a partial update of a Billing; nil fields are left unchanged.
type BillingPatch struct {
	Code     *string
	Modifier *string
	Quantity *string
	Provider *string
}

func (p BillingPatch) apply(b *Billing) {
	if p.Code != nil {
		b.Code = *p.Code
	}
	if p.Modifier != nil {
		b.Modifier = *p.Modifier
	}
	if p.Quantity != nil {
		b.Quantity = *p.Quantity
	}
	if p.Provider != nil {
		b.Provider = *p.Provider
	}
}

// Group is a billing-code scoped, ordered list of records.
type Group struct {
	ID        string
	Label     string
	Tag       string
	Billing   Billing
	Collapsed bool
	Records   []Record
}

// CatalogEntry is an immutable exercise-library item.
type CatalogEntry struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Region      string `yaml:"region"`
	Ref         string `yaml:"ref"`
}

// CodeOption is one billing code choice.
type CodeOption struct {
	Code  string `yaml:"code"`
	Label string `yaml:"label"`
}

// Title is the display label used for groups created from the option.
func (o CodeOption) Title() string {
	return o.Code + " · " + o.Label
}

// Ptr is a small helper for building patches.
func Ptr[T any](v T) *T { return &v }
