package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/fpick/internal/app"
	"github.com/atomicstack/fpick/internal/match"
	"github.com/atomicstack/fpick/internal/walk"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config captures runtime configuration for the application.
type Config struct {
	App        app.Config
	Logging    Logging
	ConfigFile string
	Flags      map[string]string
	Args       []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envAlgorithm    = "FPICK_ALGORITHM"
	envHidden       = "FPICK_HIDDEN"
	envNoIgnore     = "FPICK_NO_IGNORE"
	envExclude      = "FPICK_EXCLUDE"
	envPollInterval = "FPICK_POLL_INTERVAL"
	envHeight       = "FPICK_HEIGHT"
	envShowFooter   = "FPICK_FOOTER"
	envTrace        = "FPICK_TRACE"
	envLogFile      = "FPICK_LOG_FILE"
	envConfigFile   = "FPICK_CONFIG"
)

const (
	flagAlgorithm    = "algorithm"
	flagHidden       = "hidden"
	flagNoIgnore     = "no-ignore"
	flagExclude      = "exclude"
	flagPollInterval = "poll-interval"
	flagHeight       = "height"
	flagFooter       = "footer"
	flagQuery        = "query"
	flagFilter       = "filter"
	flagScores       = "scores"
	flagTrace        = "trace"
	flagLogFile      = "log-file"
	flagConfig       = "config"
)

// DefaultPollInterval is the idle tick used by the interactive loop.
const DefaultPollInterval = 100 * time.Millisecond

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("fpick", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	AddFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg, err := FromFlags(fs, fs.Args(), environ)
	if err != nil {
		return Config{}, err
	}
	cfg.Args = append([]string(nil), args...)
	return cfg, nil
}

// AddFlags registers every setting on fs. Defaults are the built-in values;
// environment and config file layers are applied by FromFlags for flags the
// user did not set explicitly.
func AddFlags(fs *pflag.FlagSet) {
	fs.StringP(flagAlgorithm, "a", match.AlgorithmSmart, "matching algorithm ("+strings.Join(match.Algorithms(), ", ")+")")
	fs.BoolP(flagHidden, "H", false, "include hidden files and directories")
	fs.Bool(flagNoIgnore, false, "do not honour .gitignore files")
	fs.StringSliceP(flagExclude, "e", nil, "glob pattern to exclude (repeatable)")
	fs.Duration(flagPollInterval, DefaultPollInterval, "idle tick interval of the interactive loop")
	fs.Int(flagHeight, 0, "desired viewport height in rows (0 uses terminal height)")
	fs.Bool(flagFooter, false, "enable footer hint row")
	fs.StringP(flagQuery, "q", "", "initial query")
	fs.StringP(flagFilter, "f", "", "print candidates matching the query and exit")
	fs.Bool(flagScores, false, "with --filter, print a score table instead of bare paths")
	fs.Bool(flagTrace, false, "enable verbose JSON trace logging")
	fs.String(flagLogFile, "", "path to the log file")
	fs.StringP(flagConfig, "c", "", "path to a config file (toml, yaml or json)")
}

// FromFlags resolves a Config from a parsed flag set. Precedence per setting is
// explicit flag, then FPICK_* environment, then config file, then default.
// Positional args name the root directory.
func FromFlags(fs *pflag.FlagSet, positional []string, environ []string) (Config, error) {
	env := parseEnv(environ)
	if len(positional) > 1 {
		return Config{}, fmt.Errorf("expected at most one root directory, got %d", len(positional))
	}
	root := "."
	if len(positional) == 1 && strings.TrimSpace(positional[0]) != "" {
		root = positional[0]
	}

	configPath, explicit := configFilePath(fs, env)
	file, err := readConfigFile(configPath, explicit)
	if err != nil {
		return Config{}, err
	}
	r := resolver{flags: fs, env: env, file: file}

	filter, filterSet := r.flagOnlyString(flagFilter)
	query, _ := r.flagOnlyString(flagQuery)
	if filterSet {
		query = filter
	}
	scores, _ := fs.GetBool(flagScores)

	cfg := Config{
		App: app.Config{
			Root:         root,
			Algorithm:    r.str(flagAlgorithm, envAlgorithm),
			Hidden:       r.boolean(flagHidden, envHidden),
			NoIgnore:     r.boolean(flagNoIgnore, envNoIgnore),
			Exclude:      r.list(flagExclude, envExclude),
			PollInterval: r.duration(flagPollInterval, envPollInterval),
			Height:       r.integer(flagHeight, envHeight),
			ShowFooter:   r.boolean(flagFooter, envShowFooter),
			Query:        query,
			Filter:       filterSet,
			Scores:       scores,
		},
		Logging: Logging{
			FilePath: r.str(flagLogFile, envLogFile),
			Trace:    r.boolean(flagTrace, envTrace),
		},
		ConfigFile: configPath,
	}
	if file == nil {
		cfg.ConfigFile = ""
	}
	cfg.Flags = map[string]string{
		"root":         cfg.App.Root,
		"algorithm":    cfg.App.Algorithm,
		"hidden":       strconv.FormatBool(cfg.App.Hidden),
		"noIgnore":     strconv.FormatBool(cfg.App.NoIgnore),
		"exclude":      strings.Join(cfg.App.Exclude, ","),
		"pollInterval": cfg.App.PollInterval.String(),
		"height":       strconv.Itoa(cfg.App.Height),
		"footer":       strconv.FormatBool(cfg.App.ShowFooter),
		"query":        cfg.App.Query,
		"filter":       strconv.FormatBool(cfg.App.Filter),
		"scores":       strconv.FormatBool(cfg.App.Scores),
		"trace":        strconv.FormatBool(cfg.Logging.Trace),
		"logFile":      cfg.Logging.FilePath,
		"configFile":   cfg.ConfigFile,
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// configFilePath reports the config file to read and whether the user named
// it. A user-named file must exist; the XDG default is optional.
func configFilePath(fs *pflag.FlagSet, env map[string]string) (string, bool) {
	if fs.Changed(flagConfig) {
		path, _ := fs.GetString(flagConfig)
		return path, true
	}
	if v := strings.TrimSpace(env[envConfigFile]); v != "" {
		return v, true
	}
	if v := strings.TrimSpace(env["XDG_CONFIG_HOME"]); v != "" {
		return filepath.Join(v, "fpick", "config.toml"), false
	}
	if home := strings.TrimSpace(env["HOME"]); home != "" {
		return filepath.Join(home, ".config", "fpick", "config.toml"), false
	}
	return "", false
}

func readConfigFile(path string, explicit bool) (*viper.Viper, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("toml")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	return v, nil
}

// resolver layers flag, environment and config-file values for one setting.
// Config-file keys use the flag names.
type resolver struct {
	flags *pflag.FlagSet
	env   map[string]string
	file  *viper.Viper
}

func (r resolver) fromFile(name string) bool {
	return r.file != nil && r.file.IsSet(name)
}

func (r resolver) str(name, envKey string) string {
	v, _ := r.flags.GetString(name)
	if r.flags.Changed(name) {
		return v
	}
	if ev, ok := r.env[envKey]; ok {
		return ev
	}
	if r.fromFile(name) {
		return r.file.GetString(name)
	}
	return v
}

func (r resolver) flagOnlyString(name string) (string, bool) {
	v, _ := r.flags.GetString(name)
	return v, r.flags.Changed(name)
}

func (r resolver) boolean(name, envKey string) bool {
	v, _ := r.flags.GetBool(name)
	if r.flags.Changed(name) {
		return v
	}
	if _, ok := r.env[envKey]; ok {
		return envOrBool(r.env, envKey, v)
	}
	if r.fromFile(name) {
		return r.file.GetBool(name)
	}
	return v
}

func (r resolver) integer(name, envKey string) int {
	v, _ := r.flags.GetInt(name)
	if r.flags.Changed(name) {
		return v
	}
	if _, ok := r.env[envKey]; ok {
		return envOrInt(r.env, envKey, v)
	}
	if r.fromFile(name) {
		return r.file.GetInt(name)
	}
	return v
}

func (r resolver) duration(name, envKey string) time.Duration {
	v, _ := r.flags.GetDuration(name)
	if r.flags.Changed(name) {
		return v
	}
	if _, ok := r.env[envKey]; ok {
		return envOrDuration(r.env, envKey, v)
	}
	if r.fromFile(name) {
		return r.file.GetDuration(name)
	}
	return v
}

func (r resolver) list(name, envKey string) []string {
	v, _ := r.flags.GetStringSlice(name)
	if r.flags.Changed(name) {
		return v
	}
	if ev, ok := r.env[envKey]; ok {
		return splitList(ev)
	}
	if r.fromFile(name) {
		return r.file.GetStringSlice(name)
	}
	return v
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate rejects settings the picker cannot run with.
func Validate(cfg Config) error {
	if _, err := match.New(cfg.App.Algorithm); err != nil {
		return err
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	if cfg.App.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be > 0 (got %s)", cfg.App.PollInterval)
	}
	if _, err := walk.CompileExcludes(cfg.App.Exclude); err != nil {
		return err
	}
	if cfg.App.Scores && !cfg.App.Filter {
		return errors.New("--scores requires --filter")
	}
	return nil
}
