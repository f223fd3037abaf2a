package flowsheet

// OverlayKind names the transient UI layer that is open.
type OverlayKind int

const (
	OverlayNone OverlayKind = iota
	OverlayRecordMenu
	OverlayPicker
	OverlayGroupMenu
	OverlayCodePicker
	OverlayEvalPicker
	OverlayBillingField
	OverlayLinkTooltip
	OverlayHEPPreview
)

// Overlay is the single open menu/picker/tooltip, keyed by the record or group
// it belongs to. Holding one value means two overlays can never be open at the
// same time.
type Overlay struct {
	Kind OverlayKind
	ID   string
}

// Open reports whether any overlay is open.
func (o Overlay) Open() bool { return o.Kind != OverlayNone }

// Is reports whether the overlay of kind for id is the open one.
func (o Overlay) Is(kind OverlayKind, id string) bool {
	return o.Kind == kind && o.ID == id
}

// Toggle closes the overlay when it is already open for id, and otherwise
// replaces whatever is open with it.
func (o Overlay) Toggle(kind OverlayKind, id string) Overlay {
	if o.Is(kind, id) {
		return Overlay{}
	}
	return Overlay{Kind: kind, ID: id}
}
