package flowsheet

// TimerKind names a cosmetic delayed action.
type TimerKind string

const (
	TimerPulse     TimerKind = "pulse"      // "just inserted" highlight
	TimerRemoval   TimerKind = "removal"    // deferred removal after the fade
	TimerTooltip   TimerKind = "tooltip"    // delayed catalog tooltip
	TimerLinkClose TimerKind = "link-close" // delayed close of the link tooltip
)

// TimerKey identifies one outstanding timer.
type TimerKey struct {
	Kind TimerKind
	ID   string
}

// Token is handed to whatever schedules the real clock. When the clock fires,
// the token is passed back to Fire, which tells whether it is still live.
type Token struct {
	Key TimerKey
	Gen uint64
}

// Timers keeps at most one live timer per key. Starting a timer for a key that
// already has one supersedes it, so deferred actions never stack up.
type Timers struct {
	gen  uint64
	live map[TimerKey]uint64
}

// Start arms a timer for key, replacing any earlier one.
func (t *Timers) Start(key TimerKey) Token {
	if t.live == nil {
		t.live = make(map[TimerKey]uint64)
	}
	t.gen++
	t.live[key] = t.gen
	return Token{Key: key, Gen: t.gen}
}

// Fire consumes tok and reports whether it was the live timer for its key.
// Superseded or cancelled tokens report false.
func (t *Timers) Fire(tok Token) bool {
	gen, ok := t.live[tok.Key]
	if !ok || gen != tok.Gen {
		return false
	}
	delete(t.live, tok.Key)
	return true
}

// Cancel disarms the timer for key and reports whether one was pending.
func (t *Timers) Cancel(key TimerKey) bool {
	if _, ok := t.live[key]; !ok {
		return false
	}
	delete(t.live, key)
	return true
}

// Pending reports whether a timer for key is armed.
func (t *Timers) Pending(key TimerKey) bool {
	_, ok := t.Live(key)
	return ok
}

// Live returns the token of the timer armed for key.
func (t *Timers) Live(key TimerKey) (Token, bool) {
	gen, ok := t.live[key]
	return Token{Key: key, Gen: gen}, ok
}

// CancelID disarms every timer belonging to id.
func (t *Timers) CancelID(id string) {
	for k := range t.live {
		if k.ID == id {
			delete(t.live, k)
		}
	}
}

// StopAll disarms every timer.
func (t *Timers) StopAll() {
	t.live = nil
}
