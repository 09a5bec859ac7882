package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Root != "." {
		t.Fatalf("expected root '.', got %q", cfg.App.Root)
	}
	if cfg.App.Algorithm != "smart" {
		t.Fatalf("expected smart algorithm, got %q", cfg.App.Algorithm)
	}
	if cfg.App.PollInterval != DefaultPollInterval {
		t.Fatalf("expected poll interval %s, got %s", DefaultPollInterval, cfg.App.PollInterval)
	}
	if cfg.App.Filter || cfg.App.Hidden || cfg.Logging.Trace {
		t.Fatalf("expected boolean settings off by default, got %#v", cfg)
	}
}

func TestLoadArgsFlags(t *testing.T) {
	args := []string{
		"--algorithm", "fold",
		"--hidden",
		"--no-ignore",
		"-e", "vendor", "-e", "*.lock",
		"--poll-interval", "250ms",
		"--height", "12",
		"--footer",
		"--query", "app",
		"--trace",
		"--log-file", "trace.log",
		"src",
	}
	cfg, err := LoadArgs(args, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	app := cfg.App
	if app.Root != "src" || app.Algorithm != "fold" || !app.Hidden || !app.NoIgnore {
		t.Fatalf("unexpected app config %#v", app)
	}
	if !reflect.DeepEqual(app.Exclude, []string{"vendor", "*.lock"}) {
		t.Fatalf("expected exclude globs, got %v", app.Exclude)
	}
	if app.PollInterval != 250*time.Millisecond || app.Height != 12 || !app.ShowFooter {
		t.Fatalf("unexpected layout settings %#v", app)
	}
	if app.Query != "app" || app.Filter {
		t.Fatalf("expected interactive query 'app', got %#v", app)
	}
	if cfg.Logging.FilePath != "trace.log" || !cfg.Logging.Trace {
		t.Fatalf("unexpected logging config %#v", cfg.Logging)
	}
	if cfg.Flags["height"] != "12" || cfg.Flags["algorithm"] != "fold" {
		t.Fatalf("unexpected flags map %#v", cfg.Flags)
	}
	if !reflect.DeepEqual(cfg.Args, args) {
		t.Fatalf("expected args preserved, got %v", cfg.Args)
	}
}

func TestLoadArgsFilterMode(t *testing.T) {
	cfg, err := LoadArgs([]string{"--query", "ignored", "--filter", "app", "--scores"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.App.Filter || !cfg.App.Scores || cfg.App.Query != "app" {
		t.Fatalf("expected filter mode for 'app', got %#v", cfg.App)
	}
	empty, err := LoadArgs([]string{"--filter", ""}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !empty.App.Filter || empty.App.Query != "" {
		t.Fatalf("expected filter mode with empty query, got %#v", empty.App)
	}
}

func TestLoadArgsEnvironment(t *testing.T) {
	env := []string{
		"FPICK_ALGORITHM=literal",
		"FPICK_HIDDEN=true",
		"FPICK_EXCLUDE=vendor, node_modules ,",
		"FPICK_POLL_INTERVAL=50ms",
		"FPICK_HEIGHT=7",
		"FPICK_TRACE=1",
		"FPICK_LOG_FILE=/tmp/fpick.log",
	}
	cfg, err := LoadArgs(nil, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Algorithm != "literal" || !cfg.App.Hidden || cfg.App.Height != 7 {
		t.Fatalf("unexpected env config %#v", cfg.App)
	}
	if !reflect.DeepEqual(cfg.App.Exclude, []string{"vendor", "node_modules"}) {
		t.Fatalf("expected env exclude list, got %v", cfg.App.Exclude)
	}
	if cfg.App.PollInterval != 50*time.Millisecond {
		t.Fatalf("expected 50ms poll interval, got %s", cfg.App.PollInterval)
	}
	if !cfg.Logging.Trace || cfg.Logging.FilePath != "/tmp/fpick.log" {
		t.Fatalf("unexpected env logging %#v", cfg.Logging)
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	cfg, err := LoadArgs([]string{"--height", "3", "--algorithm", "smart"}, []string{"FPICK_HEIGHT=9", "FPICK_ALGORITHM=fold"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Height != 3 || cfg.App.Algorithm != "smart" {
		t.Fatalf("expected flags to win, got %#v", cfg.App)
	}
}

func TestInvalidEnvironmentFallsBack(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"FPICK_HEIGHT=tall", "FPICK_HIDDEN=maybe"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Height != 0 || cfg.App.Hidden {
		t.Fatalf("expected defaults for unparsable env, got %#v", cfg.App)
	}
}

func TestConfigFileLayer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fpick", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	body := strings.Join([]string{
		`algorithm = "fold"`,
		`height = 15`,
		`footer = true`,
		`exclude = ["target", "dist"]`,
		`poll-interval = "1s"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadArgs([]string{"--height", "4"}, []string{"XDG_CONFIG_HOME=" + dir, "FPICK_ALGORITHM=literal"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ConfigFile != path {
		t.Fatalf("expected config file %q, got %q", path, cfg.ConfigFile)
	}
	if cfg.App.Height != 4 {
		t.Fatalf("expected flag height 4, got %d", cfg.App.Height)
	}
	if cfg.App.Algorithm != "literal" {
		t.Fatalf("expected env algorithm literal, got %q", cfg.App.Algorithm)
	}
	if !cfg.App.ShowFooter || cfg.App.PollInterval != time.Second {
		t.Fatalf("expected file footer and poll interval, got %#v", cfg.App)
	}
	if !reflect.DeepEqual(cfg.App.Exclude, []string{"target", "dist"}) {
		t.Fatalf("expected file excludes, got %v", cfg.App.Exclude)
	}
}

func TestMissingConfigFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadArgs(nil, []string{"XDG_CONFIG_HOME=" + dir}); err != nil {
		t.Fatalf("expected missing default config to be ignored, got %v", err)
	}
	if _, err := LoadArgs([]string{"--config", filepath.Join(dir, "nope.toml")}, nil); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestLoadArgsRejectsInvalidSettings(t *testing.T) {
	cases := map[string][]string{
		"algorithm":     {"--algorithm", "regex"},
		"height":        {"--height", "-1"},
		"poll interval": {"--poll-interval", "0s"},
		"glob":          {"--exclude", "[unclosed"},
		"scores":        {"--scores"},
		"two roots":     {"a", "b"},
		"unknown flag":  {"--socket", "x"},
	}
	for name, args := range cases {
		if _, err := LoadArgs(args, nil); err == nil {
			t.Fatalf("%s: expected error for %v", name, args)
		}
	}
}
