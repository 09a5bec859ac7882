// Package picker implements the incremental filter engine behind the
// interactive file picker and the session state machine that drives it.
//
// An Engine owns an immutable candidate set, the live query, the ranked view
// derived from both, and a cursor into that view. Every query edit rebuilds
// the view synchronously and resets the cursor; navigation never wraps.
// Renderers read a Snapshot and never hold a handle that can mutate state.
package picker

import (
	"sort"

	"github.com/atomicstack/fpick/internal/match"
)

// Direction selects single-step cursor movement.
type Direction int

const (
	Up Direction = iota
	Down
)

// Entry is one row of the ranked view.
type Entry struct {
	Candidate string
	Score     match.Score
	Scored    bool // false for pass-through rows produced by an empty query
	Positions []int
}

// Snapshot is a read-only copy of the engine state for one frame.
type Snapshot struct {
	Query   string
	Entries []Entry
	Cursor  int
	Total   int
}

// Engine is the selection core. The zero value is not usable; call New.
type Engine struct {
	candidates []string
	matcher    match.Matcher
	query      []rune
	view       []Entry
	cursor     int
}

// New builds an engine over a private copy of candidates with an empty query.
// A nil matcher selects the default smart matcher.
func New(candidates []string, m match.Matcher) *Engine {
	if m == nil {
		m = match.Smart{}
	}
	e := &Engine{
		candidates: append([]string(nil), candidates...),
		matcher:    m,
	}
	e.recompute()
	return e
}

// InsertChar appends r to the query and rebuilds the view.
func (e *Engine) InsertChar(r rune) {
	e.query = append(e.query, r)
	e.recompute()
}

// RemoveChar drops the last rune of the query and rebuilds the view. It is a
// no-op when the query is already empty.
func (e *Engine) RemoveChar() {
	if len(e.query) == 0 {
		return
	}
	e.query = e.query[:len(e.query)-1]
	e.recompute()
}

// MoveCursor moves one step in the given direction. It reports whether the
// cursor moved; at either boundary it does nothing.
func (e *Engine) MoveCursor(dir Direction) bool {
	switch dir {
	case Up:
		if e.cursor > 0 {
			e.cursor--
			return true
		}
	case Down:
		if e.cursor+1 < len(e.view) {
			e.cursor++
			return true
		}
	}
	return false
}

// MoveCursorPage moves the cursor by delta rows, clamped to the view.
func (e *Engine) MoveCursorPage(delta int) bool {
	if len(e.view) == 0 {
		e.cursor = 0
		return false
	}
	old := e.cursor
	e.cursor += delta
	if e.cursor < 0 {
		e.cursor = 0
	}
	if e.cursor >= len(e.view) {
		e.cursor = len(e.view) - 1
	}
	return e.cursor != old
}

// MoveCursorHome moves the cursor to the first row.
func (e *Engine) MoveCursorHome() bool {
	old := e.cursor
	e.cursor = 0
	return old != e.cursor
}

// MoveCursorEnd moves the cursor to the last row.
func (e *Engine) MoveCursorEnd() bool {
	if len(e.view) == 0 {
		e.cursor = 0
		return false
	}
	old := e.cursor
	e.cursor = len(e.view) - 1
	return old != e.cursor
}

// Selection returns the candidate under the cursor, if any.
func (e *Engine) Selection() (string, bool) {
	if len(e.view) == 0 {
		return "", false
	}
	return e.view[e.cursor].Candidate, true
}

// Query returns the current query text.
func (e *Engine) Query() string {
	return string(e.query)
}

// Cursor returns the highlighted row index.
func (e *Engine) Cursor() int {
	return e.cursor
}

// Len returns the number of rows in the ranked view.
func (e *Engine) Len() int {
	return len(e.view)
}

// Total returns the size of the candidate set.
func (e *Engine) Total() int {
	return len(e.candidates)
}

// Snapshot copies the state a renderer needs for one frame. Entry.Positions
// slices are shared with the engine and must be treated as read-only.
func (e *Engine) Snapshot() Snapshot {
	entries := make([]Entry, len(e.view))
	copy(entries, e.view)
	return Snapshot{
		Query:   string(e.query),
		Entries: entries,
		Cursor:  e.cursor,
		Total:   len(e.candidates),
	}
}

// recompute rebuilds the view from scratch and always leaves the cursor at 0.
// An empty query bypasses the matcher entirely.
func (e *Engine) recompute() {
	if len(e.query) == 0 {
		view := make([]Entry, len(e.candidates))
		for i, c := range e.candidates {
			view[i] = Entry{Candidate: c}
		}
		e.view = view
		e.cursor = 0
		return
	}
	query := string(e.query)
	view := make([]Entry, 0, len(e.candidates))
	for _, c := range e.candidates {
		res, ok := e.matcher.Match(c, query)
		if !ok {
			continue
		}
		view = append(view, Entry{Candidate: c, Score: res.Score, Scored: true, Positions: res.Positions})
	}
	sort.SliceStable(view, func(i, j int) bool {
		return view[i].Score > view[j].Score
	})
	e.view = view
	e.cursor = 0
}
