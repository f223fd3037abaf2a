package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings of the document view.
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Edit       key.Binding
	NextField  key.Binding
	Status     key.Binding
	Check      key.Binding
	CheckAll   key.Binding
	Today      key.Binding
	Delete     key.Binding
	Undo       key.Binding
	AddRow     key.Binding
	AddGroups  key.Binding
	AddEval    key.Binding
	RecordMenu key.Binding
	GroupMenu  key.Binding
	Collapse   key.Binding
	Billing    key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	OpenLink   key.Binding
	Unlink     key.Binding
	Preview    key.Binding
	Reset      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Edit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		NextField:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Status:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done/todo")),
		Check:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "HEP")),
		CheckAll:   key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "HEP all")),
		Today:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Undo:       key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo delete")),
		AddRow:     key.NewBinding(key.WithKeys("n", "ctrl+n"), key.WithHelp("n", "new row")),
		AddGroups:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add CPT")),
		AddEval:    key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "add eval")),
		RecordMenu: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "row menu")),
		GroupMenu:  key.NewBinding(key.WithKeys("M"), key.WithHelp("M", "group menu")),
		Collapse:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "collapse")),
		Billing:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "billing")),
		MoveUp:     key.NewBinding(key.WithKeys("alt+up", "K"), key.WithHelp("alt+↑", "move up")),
		MoveDown:   key.NewBinding(key.WithKeys("alt+down", "J"), key.WithHelp("alt+↓", "move down")),
		OpenLink:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open link")),
		Unlink:     key.NewBinding(key.WithKeys("U"), key.WithHelp("U", "unlink")),
		Preview:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "HEP preview")),
		Reset:      key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Status, k.Check, k.AddRow, k.Delete, k.AddGroups, k.Preview, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.MoveUp, k.MoveDown, k.Collapse},
		{k.Edit, k.NextField, k.Status, k.Today, k.Check, k.CheckAll},
		{k.AddRow, k.Delete, k.Undo, k.RecordMenu, k.GroupMenu, k.Billing},
		{k.AddGroups, k.AddEval, k.OpenLink, k.Unlink, k.Preview, k.Reset, k.Quit},
	}
}
