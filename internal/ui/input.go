package ui

import (
	"unicode"

	"github.com/atomicstack/fpick/internal/logging/events"
	"github.com/atomicstack/fpick/internal/picker"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.session.Done() {
		return tea.Quit
	}
	if kind, ok := keys.eventFor(keyMsg); ok {
		m.apply(picker.Event{Kind: kind, Page: m.pageSize()})
	} else if evs := textEvents(keyMsg); len(evs) > 0 {
		for _, ev := range evs {
			m.apply(ev)
		}
	} else {
		events.Session.Ignored(keyMsg.String())
		return nil
	}
	if m.session.Done() {
		return tea.Quit
	}
	return nil
}

// textEvents turns printable key input into insert events. Pasted text
// arrives as a single KeyRunes message and is inserted rune by rune.
func textEvents(msg tea.KeyMsg) []picker.Event {
	switch msg.Type {
	case tea.KeySpace:
		return []picker.Event{picker.Insert(' ')}
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return nil
		}
		out := make([]picker.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return nil
			}
			out = append(out, picker.Insert(r))
		}
		return out
	}
	return nil
}

func (m *Model) apply(ev picker.Event) {
	if !m.session.Handle(ev) {
		return
	}
	e := m.session.Engine()
	switch ev.Kind {
	case picker.EventInsertChar:
		m.caretDirty = true
		events.Query.Insert(e.Query(), e.Len())
	case picker.EventDeleteBack:
		m.caretDirty = true
		events.Query.Remove(e.Query(), e.Len())
	case picker.EventConfirm, picker.EventCancel:
		selection, _ := m.session.Result()
		events.Session.Finish(m.session.Outcome().String(), selection)
	default:
		events.Cursor.Move(ev.Kind.String(), e.Cursor())
	}
}

// pageSize reports the number of list rows on screen, or 0 when the height
// is unknown.
func (m *Model) pageSize() int {
	if rows := m.maxVisibleItems(); rows > 0 {
		return rows
	}
	return 0
}
