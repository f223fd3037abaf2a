package flowsheet

import "testing"

func TestTimersRearmSupersedes(t *testing.T) {
	var tm Timers
	key := TimerKey{Kind: TimerRemoval, ID: "r1"}
	first := tm.Start(key)
	second := tm.Start(key)
	if tm.Fire(first) {
		t.Fatalf("Fire(superseded): expected false")
	}
	if !tm.Fire(second) {
		t.Fatalf("Fire(live): expected true")
	}
	if tm.Fire(second) {
		t.Fatalf("Fire twice: expected false")
	}
}

func TestTimersCancel(t *testing.T) {
	var tm Timers
	key := TimerKey{Kind: TimerRemoval, ID: "r1"}
	tok := tm.Start(key)
	if !tm.Pending(key) {
		t.Fatalf("Pending: expected true")
	}
	if !tm.Cancel(key) {
		t.Fatalf("Cancel: expected a pending timer")
	}
	if tm.Fire(tok) {
		t.Fatalf("Fire after Cancel: expected false")
	}
	if tm.Cancel(key) {
		t.Fatalf("Cancel twice: expected false")
	}
}

func TestTimersStopAllAndCancelID(t *testing.T) {
	var tm Timers
	a := tm.Start(TimerKey{Kind: TimerPulse, ID: "r1"})
	b := tm.Start(TimerKey{Kind: TimerRemoval, ID: "r1"})
	c := tm.Start(TimerKey{Kind: TimerPulse, ID: "r2"})
	tm.CancelID("r1")
	if tm.Fire(a) || tm.Fire(b) {
		t.Fatalf("CancelID: r1 timers still live")
	}
	tm.StopAll()
	if tm.Fire(c) {
		t.Fatalf("StopAll: r2 timer still live")
	}
	// Still usable after StopAll.
	if !tm.Fire(tm.Start(TimerKey{Kind: TimerTooltip, ID: "x"})) {
		t.Fatalf("Start after StopAll: expected live timer")
	}
}

func TestTimersLive(t *testing.T) {
	var tm Timers
	key := TimerKey{Kind: TimerRemoval, ID: "r1"}
	if _, ok := tm.Live(key); ok {
		t.Fatalf("Live on empty timers: expected none")
	}
	first := tm.Start(key)
	second := tm.Start(key)
	tok, ok := tm.Live(key)
	if !ok || tok != second || tok == first {
		t.Fatalf("Live: expected %+v, got %+v (%v)", second, tok, ok)
	}
}

func TestOverlayExclusive(t *testing.T) {
	var o Overlay
	o = o.Toggle(OverlayRecordMenu, "r1")
	o = o.Toggle(OverlayPicker, "r2")
	if o.Is(OverlayRecordMenu, "r1") || !o.Is(OverlayPicker, "r2") {
		t.Fatalf("Toggle: expected picker to replace menu, got %+v", o)
	}
	o = o.Toggle(OverlayPicker, "r2")
	if o.Open() {
		t.Fatalf("Toggle same overlay: expected closed, got %+v", o)
	}
}
