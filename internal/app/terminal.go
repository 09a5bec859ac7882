package app

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// terminalOptions keeps stdout free for the answer. The UI renders to stderr,
// falling back to /dev/tty when stderr is redirected, and reads keys from
// /dev/tty when stdin is a pipe.
func terminalOptions() ([]tea.ProgramOption, func()) {
	var opts []tea.ProgramOption
	cleanup := func() {}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		opts = append(opts, tea.WithInputTTY())
	}
	var out io.Writer = os.Stderr
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		if tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0); err == nil {
			out = tty
			cleanup = func() { tty.Close() }
		}
	}
	opts = append(opts, tea.WithOutput(out))
	return opts, cleanup
}
