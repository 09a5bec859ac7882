package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/fpick/internal/picker"
	"github.com/atomicstack/fpick/internal/theme"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultPollInterval = 100 * time.Millisecond
	defaultInfoTTL      = 3 * time.Second
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// tickMsg drives the idle loop that expires status messages.
type tickMsg time.Time

// Options configures presentation. Zero values select terminal-sized output
// without a footer.
type Options struct {
	Width        int
	Height       int
	ShowFooter   bool
	PollInterval time.Duration
	// Status is shown below the list until InfoTTL elapses.
	Status  string
	InfoTTL time.Duration
}

// Model implements the Bubble Tea model for a picker session.
type Model struct {
	session *picker.Session

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool

	offset int

	infoMsg      string
	infoExpire   time.Time
	pollInterval time.Duration

	caret        cursor.Model
	caretFocused bool
	caretDirty   bool

	handlers map[reflect.Type]msgHandler
}

// NewModel wraps session for display.
func NewModel(session *picker.Session, opts Options) *Model {
	m := &Model{
		session:      session,
		showFooter:   opts.ShowFooter,
		pollInterval: opts.PollInterval,
	}
	if m.pollInterval <= 0 {
		m.pollInterval = defaultPollInterval
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	if opts.Status != "" {
		ttl := opts.InfoTTL
		if ttl <= 0 {
			ttl = defaultInfoTTL
		}
		m.setInfo(opts.Status, ttl)
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Query != nil {
		c.TextStyle = styles.Query.Copy()
	}
	c.SetChar(" ")
	m.caret = c
	m.registerHandlers()
	return m
}

// Session returns the session driven by the model.
func (m *Model) Session() *picker.Session {
	return m.session
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	m.caretFocused = true
	if cmd := m.caret.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.infoMsg != "" {
		cmds = append(cmds, m.tickCmd())
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if cmd := m.updateCaret(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tickMsg{}):           m.handleTickMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.caretDirty {
		m.caretDirty = false
		if m.caretFocused && !m.session.Done() {
			m.caret.Blink = false
			if cmd := m.caret.BlinkCmd(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) updateCaret(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.caret, cmd = m.caret.Update(msg)
	return cmd
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}

// handleTickMsg keeps ticking only while a status message is pending.
func (m *Model) handleTickMsg(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tickMsg); !ok {
		return nil
	}
	if m.currentInfo() == "" || m.session.Done() {
		return nil
	}
	return m.tickCmd()
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) setInfo(message string, ttl time.Duration) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(ttl)
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
