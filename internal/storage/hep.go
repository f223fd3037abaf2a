package storage

import (
	"fmt"
	"strings"

	"github.com/gabrielfornes/flowsheet/internal/flowsheet"
)

// RenderHEP builds the markdown of a home exercise plan from the checked
// records, in the order given.
func RenderHEP(title string, records []flowsheet.Record) string {
	var b strings.Builder
	if title == "" {
		title = "Home Exercise Plan"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(records) == 0 {
		b.WriteString("_No exercises selected._\n")
		return b.String()
	}

	for i, r := range records {
		name := r.Name
		if name == "" {
			name = "Untitled exercise"
		}
		if l, ok := r.Linked(); ok && l.URL != "" {
			name = fmt.Sprintf("[%s](%s)", name, l.URL)
		}
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, name)

		var dose []string
		if r.Sets > 0 || r.Reps > 0 {
			dose = append(dose, fmt.Sprintf("%d × %d", r.Sets, r.Reps))
		}
		if w := strings.TrimSpace(r.Weight); w != "" {
			dose = append(dose, w)
		}
		if len(dose) > 0 {
			fmt.Fprintf(&b, "   - %s\n", strings.Join(dose, ", "))
		}
		if d := strings.TrimSpace(r.Details); d != "" {
			for _, line := range strings.Split(d, "\n") {
				fmt.Fprintf(&b, "   - %s\n", strings.TrimSpace(line))
			}
		}
	}
	return b.String()
}
