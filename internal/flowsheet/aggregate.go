package flowsheet

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// MinutesPerUnit is the number of minutes billed as one unit.
const MinutesPerUnit = 5

// ParseMinutes reads a free-text quantity: every non-digit is dropped and the
// remaining digits are read as a number. Empty input and input without digits
// read as zero. Values too large for an int are clamped to math.MaxInt.
func ParseMinutes(s string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return 0
	}
	// On overflow ParseInt returns the clamped value with ErrRange.
	n, err := strconv.ParseInt(digits, 10, 0)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return int(n)
}

// Units converts minutes to billing units, rounding down.
func Units(minutes int) int {
	if minutes < 0 {
		minutes = 0
	}
	return minutes / MinutesPerUnit
}

// Totals is the derived billing summary. It is always recomputed from the
// billing quantities and never stored.
type Totals struct {
	Minutes int
	Units   int
}

// GroupTotals returns the minutes and units of one group.
func GroupTotals(g Group) Totals {
	m := ParseMinutes(g.Billing.Quantity)
	return Totals{Minutes: m, Units: Units(m)}
}

// TotalsFor sums minutes and per-quantity units. Units are floored per
// quantity before summing, so ["4", "4"] is 8 minutes but 0 units.
func TotalsFor(quantities []string) Totals {
	var t Totals
	for _, q := range quantities {
		m := ParseMinutes(q)
		t.Minutes = addSat(t.Minutes, m)
		t.Units = addSat(t.Units, Units(m))
	}
	return t
}

// addSat adds two non-negative ints, saturating at math.MaxInt.
func addSat(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// Totals computes the document-wide billing summary.
func (d *Document) Totals() Totals {
	qs := make([]string, len(d.Groups))
	for i, g := range d.Groups {
		qs[i] = g.Billing.Quantity
	}
	return TotalsFor(qs)
}

