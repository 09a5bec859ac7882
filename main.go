package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/atomicstack/fpick/internal/app"
	"github.com/atomicstack/fpick/internal/config"
	"github.com/atomicstack/fpick/internal/logging"
	"github.com/atomicstack/fpick/internal/logging/events"
	"github.com/atomicstack/fpick/internal/theme"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	exitOK          = 0
	exitNoSelection = 1
	exitError       = 1
	exitConfig      = 2
)

// configError marks failures that happen before the picker starts.
type configError struct{ err error }

func (e configError) Error() string { return e.err.Error() }
func (e configError) Unwrap() error { return e.err }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Environ(), os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs the root command and maps its outcome onto an exit code.
func execute(ctx context.Context, args, environ []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(args, environ, stdout)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.ExecuteContext(ctx)
	var cfgErr configError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, app.ErrNoSelection):
		return exitNoSelection
	case errors.As(err, &cfgErr):
		fmt.Fprintln(stderr, errorLine("Configuration error: %v", cfgErr.err))
		return exitConfig
	default:
		logging.Error(err)
		fmt.Fprintln(stderr, errorLine("Error: %v", err))
		return exitError
	}
}

func newRootCmd(argv, environ []string, stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fpick [root]",
		Short: "Interactively pick a file by fuzzy name matching",
		Long: `fpick lists the files below root (default: the working directory),
narrows them as you type and prints the chosen path to stdout.

With --filter it skips the interactive session and prints every match for
the query, best first.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromFlags(cmd.Flags(), args, environ)
			if err != nil {
				return configError{err}
			}
			cfg.Args = append([]string(nil), argv...)
			logPath := cfg.Logging.FilePath
			if logPath == "" {
				logPath = logging.DefaultPath(environ)
			}
			logging.Configure(logPath)
			logging.SetTraceEnabled(cfg.Logging.Trace)
			traceStartup(cfg)

			if cfg.App.Filter {
				return app.Filter(cmd.Context(), cfg.App, stdout)
			}
			selection, err := app.Run(cmd.Context(), cfg.App)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(stdout, selection)
			return err
		},
	}
	config.AddFlags(cmd.Flags())
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return configError{err}
	})
	return cmd
}

func errorLine(format string, args ...interface{}) string {
	text := fmt.Sprintf(format, args...)
	if style := theme.Default().Error; style != nil {
		return style.Render(text)
	}
	return text
}

// traceStartup skips the tty probes entirely when tracing is off.
func traceStartup(cfg config.Config) {
	if !logging.TraceEnabled() {
		return
	}
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		} else {
			entry.IsTerminal = false
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
