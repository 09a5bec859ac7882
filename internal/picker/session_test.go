package picker

import (
	"testing"

	"github.com/atomicstack/fpick/internal/match"
)

func feed(s *Session, events ...Event) {
	for _, ev := range events {
		s.Handle(ev)
	}
}

func TestSessionQueryScenario(t *testing.T) {
	for _, name := range match.Algorithms() {
		m, err := match.New(name)
		if err != nil {
			t.Fatalf("resolve %s: %v", name, err)
		}
		s := NewSession(New([]string{"main.rs", "app.rs", "ui/input.rs"}, m))
		feed(s, Insert('a'), Insert('p'), Insert('p'))
		snap := s.Engine().Snapshot()
		if snap.Query != "app" {
			t.Fatalf("%s: expected query app, got %q", name, snap.Query)
		}
		if len(snap.Entries) == 0 || snap.Entries[0].Candidate != "app.rs" {
			t.Fatalf("%s: expected app.rs ranked first, got %#v", name, snap.Entries)
		}
		// app.rs is the only candidate containing a-p-p, so Down is bounded.
		feed(s, Event{Kind: EventDown}, Event{Kind: EventConfirm})
		got, ok := s.Result()
		if !ok || got != "app.rs" {
			t.Fatalf("%s: expected app.rs, got %q (%v)", name, got, ok)
		}
	}
}

func TestSessionConfirmReturnsSecondRanked(t *testing.T) {
	s := NewSession(New([]string{"main.rs", "src/mapper.rs", "app.rs", "ui/input.rs"}, match.Smart{}))
	feed(s, Insert('a'), Insert('p'), Insert('p'))
	entries := s.Engine().Snapshot().Entries
	if len(entries) != 2 || entries[0].Candidate != "app.rs" {
		t.Fatalf("expected app.rs first of two matches, got %#v", entries)
	}
	second := entries[1].Candidate
	feed(s, Event{Kind: EventDown}, Event{Kind: EventConfirm})
	got, ok := s.Result()
	if !ok || got != second {
		t.Fatalf("expected second-ranked %q, got %q", second, got)
	}
	if got == "app.rs" {
		t.Fatalf("expected selection to differ from top entry")
	}
}

func TestSessionCancelYieldsNothing(t *testing.T) {
	s := NewSession(New([]string{"a.go", "b.go"}, nil))
	feed(s, Event{Kind: EventDown}, Event{Kind: EventCancel})
	if s.State() != Finished || s.Outcome() != Cancelled {
		t.Fatalf("expected cancelled finish, got %v/%v", s.State(), s.Outcome())
	}
	if sel, ok := s.Engine().Selection(); !ok || sel != "b.go" {
		t.Fatalf("expected engine selection b.go, got %q", sel)
	}
	if got, ok := s.Result(); ok || got != "" {
		t.Fatalf("expected no result after cancel, got %q", got)
	}
}

func TestSessionFinishedIsTerminal(t *testing.T) {
	s := NewSession(New([]string{"a.go", "b.go"}, nil))
	if !s.Handle(Event{Kind: EventConfirm}) {
		t.Fatalf("expected confirm to change state")
	}
	if s.Handle(Insert('x')) || s.Handle(Event{Kind: EventDown}) || s.Handle(Event{Kind: EventCancel}) {
		t.Fatalf("expected events after finish to be ignored")
	}
	if s.Engine().Query() != "" || s.Engine().Cursor() != 0 {
		t.Fatalf("expected engine untouched after finish")
	}
	if s.Outcome() != Confirmed {
		t.Fatalf("expected outcome to stay confirmed, got %v", s.Outcome())
	}
}

func TestSessionResultWhileEditing(t *testing.T) {
	s := NewSession(New([]string{"a.go"}, nil))
	if _, ok := s.Result(); ok {
		t.Fatalf("expected no result while editing")
	}
	if s.Outcome() != Pending || s.Done() {
		t.Fatalf("expected pending editing session")
	}
}

func TestSessionReportsChanges(t *testing.T) {
	s := NewSession(New([]string{"a", "b", "c"}, nil))
	if s.Handle(Event{Kind: EventDeleteBack}) {
		t.Fatalf("expected delete on empty query to report no change")
	}
	if s.Handle(Event{Kind: EventUp}) {
		t.Fatalf("expected up at top to report no change")
	}
	if !s.Handle(Event{Kind: EventPageDown, Page: 2}) || s.Engine().Cursor() != 2 {
		t.Fatalf("expected page down to cursor 2, got %d", s.Engine().Cursor())
	}
	if !s.Handle(Event{Kind: EventPageUp}) || s.Engine().Cursor() != 0 {
		t.Fatalf("expected page up with unknown size to reach 0, got %d", s.Engine().Cursor())
	}
	if !s.Handle(Event{Kind: EventEnd}) || !s.Handle(Event{Kind: EventHome}) {
		t.Fatalf("expected end and home to move")
	}
}

func TestEventKindString(t *testing.T) {
	if EventConfirm.String() != "confirm" || EventKind(99).String() != "EventKind(99)" {
		t.Fatalf("unexpected event kind names")
	}
}
