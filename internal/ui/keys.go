package ui

import (
	"github.com/charmbracelet/bubbles/key"

	inputtypes "contentpicker/internal/ui/input/types"
)

// keyMap holds the bindings shown in the footer
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Search  key.Binding
	Select  key.Binding
	Cancel  key.Binding
	Remove  key.Binding
	Reorder key.Binding
	Drag    key.Binding
	Drop    key.Binding
	Preview key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Search:  key.NewBinding(key.WithKeys("tab", "/"), key.WithHelp("/", "search")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Remove:  key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
		Reorder: key.NewBinding(key.WithKeys("J", "K"), key.WithHelp("J/K", "reorder")),
		Drag:    key.NewBinding(key.WithKeys("m", " "), key.WithHelp("m", "move")),
		Drop:    key.NewBinding(key.WithKeys("enter", "m"), key.WithHelp("enter", "drop")),
		Preview: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// bindings returns the footer bindings for a mode, dropping those the
// current state does not allow
func (k keyMap) bindings(mode inputtypes.Mode, canSearch, canEdit, canReorder bool) []key.Binding {
	switch mode {
	case inputtypes.ModeSearch:
		return []key.Binding{k.Up, k.Down, k.Select, k.Cancel}
	case inputtypes.ModeDrag:
		return []key.Binding{k.Up, k.Down, k.Drop, k.Cancel}
	}

	out := []key.Binding{k.Up, k.Down}
	if canSearch {
		out = append(out, k.Search)
	}
	if canEdit {
		out = append(out, k.Remove)
	}
	if canReorder {
		out = append(out, k.Reorder, k.Drag)
	}
	return append(out, k.Preview, k.Help, k.Quit)
}
