package flowsheet

import "strings"

// FilterCodes keeps the options whose code or label contains query, ignoring
// case. An empty query keeps every option.
func FilterCodes(options []CodeOption, query string) []CodeOption {
	q := strings.ToLower(query)
	if q == "" {
		return options
	}
	var out []CodeOption
	for _, o := range options {
		if strings.Contains(strings.ToLower(o.Code), q) || strings.Contains(strings.ToLower(o.Label), q) {
			out = append(out, o)
		}
	}
	return out
}

// FilterStrings keeps the values containing query, ignoring case.
func FilterStrings(values []string, query string) []string {
	q := strings.ToLower(query)
	if q == "" {
		return values
	}
	var out []string
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), q) {
			out = append(out, v)
		}
	}
	return out
}

// FilterProviders keeps the provider names matching query.
func FilterProviders(providers []string, query string) []string {
	return FilterStrings(providers, query)
}

// CodePicker is a searchable multi-select list of billing codes, used to add
// CPT groups and evaluation groups.
type CodePicker struct {
	Query string

	options  []CodeOption
	selected []string
	focus    int
}

// NewCodePicker returns a picker over options.
func NewCodePicker(options []CodeOption) *CodePicker {
	return &CodePicker{options: options}
}

// Visible returns the options matching the query.
func (p *CodePicker) Visible() []CodeOption {
	return FilterCodes(p.options, p.Query)
}

// SetQuery replaces the filter text and resets the focus to the first match.
func (p *CodePicker) SetQuery(q string) {
	p.Query = q
	p.focus = 0
}

// FocusIndex is the focused index into Visible.
func (p *CodePicker) FocusIndex() int { return p.focus }

// Move shifts the focus by delta, wrapping around.
func (p *CodePicker) Move(delta int) {
	n := len(p.Visible())
	if n == 0 {
		p.focus = 0
		return
	}
	p.focus = ((p.focus+delta)%n + n) % n
}

// Toggle flips the selection of code.
func (p *CodePicker) Toggle(code string) {
	for i, c := range p.selected {
		if c == code {
			p.selected = append(p.selected[:i:i], p.selected[i+1:]...)
			return
		}
	}
	p.selected = append(p.selected, code)
}

// ToggleFocused flips the selection of the focused option.
func (p *CodePicker) ToggleFocused() {
	vis := p.Visible()
	if p.focus >= 0 && p.focus < len(vis) {
		p.Toggle(vis[p.focus].Code)
	}
}

// Selected reports whether code is selected.
func (p *CodePicker) Selected(code string) bool {
	for _, c := range p.selected {
		if c == code {
			return true
		}
	}
	return false
}

// Confirm returns the selected options in selection order, or the focused
// option when nothing is selected.
func (p *CodePicker) Confirm() []CodeOption {
	var out []CodeOption
	for _, c := range p.selected {
		for _, o := range p.options {
			if o.Code == c {
				out = append(out, o)
				break
			}
		}
	}
	if len(out) > 0 {
		return out
	}
	vis := p.Visible()
	if p.focus >= 0 && p.focus < len(vis) {
		return []CodeOption{vis[p.focus]}
	}
	return nil
}
