// Package ui contains the Bubble Tea program that drives an interactive
// picker session.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Each tea.Msg is
//     routed through a typed handler registry so key presses, window resizes
//     and idle ticks are handled by focused functions.
//   - Key presses are translated into picker.Event values by the keymap in
//     keys.go and applied to the picker.Session synchronously, so the ranked
//     view is rebuilt before Update returns.
//   - Once the session reaches its finished state the model asks the program
//     to quit; the caller reads the outcome from the session.
//
// State ownership:
//   - The session and its engine own the query, ranked view and cursor.
//   - The model owns presentation only: terminal size, the list viewport
//     offset, the query caret and transient status messages. None of it is
//     written back into the engine.
package ui
