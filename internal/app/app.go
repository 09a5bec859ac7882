package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/atomicstack/fpick/internal/format/table"
	"github.com/atomicstack/fpick/internal/logging/events"
	"github.com/atomicstack/fpick/internal/match"
	"github.com/atomicstack/fpick/internal/picker"
	"github.com/atomicstack/fpick/internal/ui"
	"github.com/atomicstack/fpick/internal/walk"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoSelection reports that the session ended without a path to print,
// either by cancel or by confirming an empty view.
var ErrNoSelection = errors.New("no selection")

// Config describes user-provided application options.
type Config struct {
	Root         string
	Algorithm    string
	Hidden       bool
	NoIgnore     bool
	Exclude      []string
	PollInterval time.Duration
	Height       int
	ShowFooter   bool
	Query        string
	Filter       bool
	Scores       bool
}

// Run enumerates candidates, runs the interactive picker and returns the
// confirmed path.
func Run(ctx context.Context, cfg Config) (string, error) {
	session, stats, err := newSession(ctx, cfg)
	if err != nil {
		return "", err
	}
	model := ui.NewModel(session, ui.Options{
		Height:       cfg.Height,
		ShowFooter:   cfg.ShowFooter,
		PollInterval: cfg.PollInterval,
		Status:       statusLine(stats),
	})
	opts, cleanup := terminalOptions()
	defer cleanup()
	opts = append(opts, tea.WithAltScreen(), tea.WithContext(ctx))
	program := tea.NewProgram(model, opts...)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			events.App.Exit(picker.Cancelled.String(), nil)
			return "", ErrNoSelection
		}
		return "", fmt.Errorf("run picker: %w", err)
	}
	return result(session)
}

// Filter prints the ranked view for cfg.Query to w, one path per line, or a
// score table when cfg.Scores is set.
func Filter(ctx context.Context, cfg Config, w io.Writer) error {
	session, _, err := newSession(ctx, cfg)
	if err != nil {
		return err
	}
	snap := session.Engine().Snapshot()
	if len(snap.Entries) == 0 {
		events.App.Exit("no-matches", nil)
		return ErrNoSelection
	}
	lines := make([]string, 0, len(snap.Entries))
	if cfg.Scores {
		rows := make([][]string, 0, len(snap.Entries))
		for _, entry := range snap.Entries {
			score := "-"
			if entry.Scored {
				score = strconv.Itoa(int(entry.Score))
			}
			rows = append(rows, []string{score, entry.Candidate})
		}
		lines = table.Format(rows, []table.Alignment{table.AlignRight, table.AlignLeft})
	} else {
		for _, entry := range snap.Entries {
			lines = append(lines, entry.Candidate)
		}
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
	}
	return nil
}

// newSession walks cfg.Root and seeds a session with cfg.Query.
func newSession(ctx context.Context, cfg Config) (*picker.Session, walk.Stats, error) {
	matcher, err := match.New(cfg.Algorithm)
	if err != nil {
		return nil, walk.Stats{}, err
	}
	started := time.Now()
	files, stats, err := walk.Files(ctx, cfg.Root, walk.Options{
		Hidden:   cfg.Hidden,
		NoIgnore: cfg.NoIgnore,
		Exclude:  cfg.Exclude,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, stats, ErrNoSelection
		}
		return nil, stats, err
	}
	events.Walk.Done(cfg.Root, stats.Files, stats.Skipped, time.Since(started))
	engine := picker.New(files, matcher)
	session := picker.NewSession(engine)
	for _, r := range cfg.Query {
		session.Handle(picker.Insert(r))
	}
	return session, stats, nil
}

// result maps a finished session onto the printed answer.
func result(session *picker.Session) (string, error) {
	selection, ok := session.Result()
	events.App.Exit(session.Outcome().String(), nil)
	if !ok {
		return "", ErrNoSelection
	}
	return selection, nil
}

func statusLine(stats walk.Stats) string {
	if stats.Skipped > 0 {
		return fmt.Sprintf("%d files (%d unreadable entries skipped)", stats.Files, stats.Skipped)
	}
	return fmt.Sprintf("%d files", stats.Files)
}
