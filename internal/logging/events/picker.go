package events

import "github.com/atomicstack/fpick/internal/logging"

type QueryTracer struct{}

type CursorTracer struct{}

type SessionTracer struct{}

var (
	Query   = QueryTracer{}
	Cursor  = CursorTracer{}
	Session = SessionTracer{}
)

func (QueryTracer) Insert(query string, matches int) {
	logging.Trace("query.insert", map[string]interface{}{"query": query, "matches": matches})
}

func (QueryTracer) Remove(query string, matches int) {
	logging.Trace("query.remove", map[string]interface{}{"query": query, "matches": matches})
}

func (CursorTracer) Move(kind string, cursor int) {
	logging.Trace("cursor.move", map[string]interface{}{"kind": kind, "cursor": cursor})
}

func (SessionTracer) Finish(outcome, selection string) {
	logging.Trace("session.finish", map[string]interface{}{"outcome": outcome, "selection": selection})
}

func (SessionTracer) Ignored(key string) {
	logging.Trace("session.ignored-key", map[string]interface{}{"key": key})
}
