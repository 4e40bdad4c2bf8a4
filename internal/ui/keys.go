package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	FocusSearch key.Binding
	NewEvent    key.Binding
	Escape      key.Binding
	Up          key.Binding
	Down        key.Binding
	Home        key.Binding
	End         key.Binding
	Enter       key.Binding
	Delete      key.Binding
	Edit        key.Binding
	Enhance     key.Binding
	NextField   key.Binding
	PrevField   key.Binding
	Submit      key.Binding
	Dismiss     key.Binding
	Confirm     key.Binding
	Cancel      key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		FocusSearch: key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "search")),
		NewEvent:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new event")),
		Escape:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Up:          key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:        key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Home:        key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		End:         key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "view all")),
		Enter:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Delete:      key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete")),
		Edit:        key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "edit")),
		Enhance:     key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "enhance")),
		NextField:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Submit:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Dismiss:     key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "dismiss")),
		Confirm:     key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
		Cancel:      key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "cancel")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// helpFor lists the bindings worth showing for the current mode.
func (k keyMap) helpFor(mode Mode, panel bool) []key.Binding {
	switch mode {
	case ModeForm:
		return []key.Binding{k.NextField, k.Submit, k.Enhance, k.Escape, k.Dismiss, k.Quit}
	case ModeConfirmDelete:
		return []key.Binding{k.Confirm, k.Cancel}
	case ModeDetail:
		return []key.Binding{k.Edit, k.Delete, k.FocusSearch, k.Escape, k.Dismiss, k.Quit}
	}
	if panel {
		return []key.Binding{k.Up, k.Down, k.Enter, k.Escape, k.Quit}
	}
	return []key.Binding{k.FocusSearch, k.NewEvent, k.Dismiss, k.Quit}
}
