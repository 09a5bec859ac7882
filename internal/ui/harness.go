package ui

import (
	"github.com/atomicstack/fpick/internal/picker"
	tea "github.com/charmbracelet/bubbletea"
)

// Harness drives the UI model programmatically for tests and scripted runs.
type Harness struct {
	model *Model
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

// Type sends text one key press at a time, as a user typing it would.
func (h *Harness) Type(text string) {
	for _, r := range text {
		if r == ' ' {
			h.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{r}})
			continue
		}
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// Press sends one key press per key type.
func (h *Harness) Press(keys ...tea.KeyType) {
	for _, k := range keys {
		h.Send(tea.KeyMsg{Type: k})
	}
}

// processCmd runs cmd and feeds its message back into the model until the
// chain ends. Batched commands run one after another in batch order. Blink
// and tick commands sleep before they yield, so tests that trigger them with
// a focused caret or a pending status wait for that interval.
func (h *Harness) processCmd(cmd tea.Cmd) {
	for cmd != nil {
		switch msg := cmd().(type) {
		case nil, tea.QuitMsg:
			return
		case tea.BatchMsg:
			for _, child := range msg {
				h.processCmd(child)
			}
			return
		default:
			mdl, next := h.model.Update(msg)
			if updated, ok := mdl.(*Model); ok {
				h.model = updated
			}
			cmd = next
		}
	}
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}

// Session exposes the session driven by the model.
func (h *Harness) Session() *picker.Session {
	if h.model == nil {
		return nil
	}
	return h.model.session
}
