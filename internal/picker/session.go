package picker

import "fmt"

// EventKind enumerates the discrete inputs a session understands.
type EventKind int

const (
	EventInsertChar EventKind = iota
	EventDeleteBack
	EventUp
	EventDown
	EventPageUp
	EventPageDown
	EventHome
	EventEnd
	EventConfirm
	EventCancel
)

func (k EventKind) String() string {
	switch k {
	case EventInsertChar:
		return "insert"
	case EventDeleteBack:
		return "delete-back"
	case EventUp:
		return "up"
	case EventDown:
		return "down"
	case EventPageUp:
		return "page-up"
	case EventPageDown:
		return "page-down"
	case EventHome:
		return "home"
	case EventEnd:
		return "end"
	case EventConfirm:
		return "confirm"
	case EventCancel:
		return "cancel"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one input delivered to a session. Rune is used by
// EventInsertChar; Page by the paging kinds.
type Event struct {
	Kind EventKind
	Rune rune
	Page int
}

// Insert builds an EventInsertChar for r.
func Insert(r rune) Event {
	return Event{Kind: EventInsertChar, Rune: r}
}

// State is the session lifecycle phase.
type State int

const (
	Editing State = iota
	Finished
)

// Outcome records how a finished session ended.
type Outcome int

const (
	Pending Outcome = iota
	Confirmed
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	default:
		return "pending"
	}
}

// Session applies events to an Engine until confirm or cancel. Finished is
// terminal.
type Session struct {
	engine  *Engine
	state   State
	outcome Outcome
}

// NewSession starts an editing session over engine.
func NewSession(engine *Engine) *Session {
	return &Session{engine: engine}
}

// Engine exposes the underlying engine for read access.
func (s *Session) Engine() *Engine {
	return s.engine
}

// State returns the current phase.
func (s *Session) State() State {
	return s.state
}

// Outcome returns Pending while editing.
func (s *Session) Outcome() Outcome {
	return s.outcome
}

// Done reports whether the session reached Finished.
func (s *Session) Done() bool {
	return s.state == Finished
}

// Handle applies one event. It reports whether the query, view, cursor or
// state changed. Events after Finished are ignored.
func (s *Session) Handle(ev Event) bool {
	if s.state == Finished {
		return false
	}
	e := s.engine
	switch ev.Kind {
	case EventInsertChar:
		e.InsertChar(ev.Rune)
		return true
	case EventDeleteBack:
		if e.Query() == "" {
			return false
		}
		e.RemoveChar()
		return true
	case EventUp:
		return e.MoveCursor(Up)
	case EventDown:
		return e.MoveCursor(Down)
	case EventPageUp:
		return e.MoveCursorPage(-pageSize(ev.Page, e.Len()))
	case EventPageDown:
		return e.MoveCursorPage(pageSize(ev.Page, e.Len()))
	case EventHome:
		return e.MoveCursorHome()
	case EventEnd:
		return e.MoveCursorEnd()
	case EventConfirm:
		s.finish(Confirmed)
		return true
	case EventCancel:
		s.finish(Cancelled)
		return true
	}
	return false
}

// Result returns the confirmed selection. It is empty while editing and
// after cancel, regardless of the cursor.
func (s *Session) Result() (string, bool) {
	if s.state != Finished || s.outcome != Confirmed {
		return "", false
	}
	return s.engine.Selection()
}

func (s *Session) finish(outcome Outcome) {
	s.state = Finished
	s.outcome = outcome
}

// pageSize falls back to the whole view when the renderer has not reported
// a page height yet.
func pageSize(requested, total int) int {
	if requested <= 0 || requested > total {
		requested = total
	}
	if requested < 1 {
		requested = 1
	}
	return requested
}
