package ui

import (
	"strings"

	"github.com/atomicstack/fpick/internal/picker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Home       key.Binding
	End        key.Binding
	DeleteBack key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
}

var keys = keyMap{
	Up:         key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
	PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
	Home:       key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
	End:        key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
	DeleteBack: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("⌫", "delete")),
	Confirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Cancel:     key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
}

// eventFor maps a key binding to a session event kind. Text input is
// handled separately by textEvents.
func (k keyMap) eventFor(msg tea.KeyMsg) (picker.EventKind, bool) {
	switch {
	case key.Matches(msg, k.Cancel):
		return picker.EventCancel, true
	case key.Matches(msg, k.Confirm):
		return picker.EventConfirm, true
	case key.Matches(msg, k.DeleteBack):
		return picker.EventDeleteBack, true
	case key.Matches(msg, k.Up):
		return picker.EventUp, true
	case key.Matches(msg, k.Down):
		return picker.EventDown, true
	case key.Matches(msg, k.PageUp):
		return picker.EventPageUp, true
	case key.Matches(msg, k.PageDown):
		return picker.EventPageDown, true
	case key.Matches(msg, k.Home):
		return picker.EventHome, true
	case key.Matches(msg, k.End):
		return picker.EventEnd, true
	}
	return 0, false
}

func (k keyMap) footer() string {
	bindings := []key.Binding{k.Up, k.Down, k.Confirm, k.Cancel}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}
